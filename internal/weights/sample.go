package weights

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aiotex/weighttracker/internal/period"
)

// DayFormat is the calendar date form used on the wire. Dates are local
// calendar days with no time or zone component.
const DayFormat = "2006-01-02"

const maxNotesLen = 100

var ErrInvalidSample = errors.New("invalid sample")

// ParseDay parses a YYYY-MM-DD calendar date.
func ParseDay(s string) (time.Time, error) {
	day, err := time.ParseInLocation(DayFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", period.ErrInvalidDate, s)
	}
	return day, nil
}

// Sample is one weight measurement. A user has at most one sample per
// calendar day; writes are upserts keyed on (user, day).
type Sample struct {
	ID       int
	UserID   int
	Day      time.Time
	WeightKg float64
	Notes    string
}

type sampleJSON struct {
	ID       int     `json:"id,omitempty"`
	Date     string  `json:"date"`
	WeightKg float64 `json:"weightKg"`
	Notes    string  `json:"notes,omitempty"`
}

func (s Sample) MarshalJSON() ([]byte, error) {
	return json.Marshal(sampleJSON{
		ID:       s.ID,
		Date:     s.Day.Format(DayFormat),
		WeightKg: s.WeightKg,
		Notes:    s.Notes,
	})
}

func (s *Sample) UnmarshalJSON(data []byte) error {
	var sj sampleJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return err
	}
	day, err := ParseDay(sj.Date)
	if err != nil {
		return err
	}
	s.ID = sj.ID
	s.Day = day
	s.WeightKg = sj.WeightKg
	s.Notes = sj.Notes
	return nil
}

func (s Sample) Validate() error {
	if s.WeightKg <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidSample)
	}
	if s.Day.IsZero() {
		return fmt.Errorf("%w: date not set", ErrInvalidSample)
	}
	if s.Notes != "" && len(s.Notes) > maxNotesLen {
		return fmt.Errorf("%w: notes longer than %d chars", ErrInvalidSample, maxNotesLen)
	}
	return nil
}
