package goals

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aiotex/weighttracker/internal/weights"
)

var ErrInvalidGoal = errors.New("invalid goal")

// Goal is a user's weight target. A user has at most one goal; setting a
// new direction is an update, not a second goal.
type Goal struct {
	UserID         int
	StartWeightKg  float64
	StartDate      time.Time
	TargetWeightKg float64
	TargetDate     time.Time
}

type goalJSON struct {
	StartWeightKg  float64 `json:"startWeightKg"`
	StartDate      string  `json:"startDate"`
	TargetWeightKg float64 `json:"targetWeightKg"`
	TargetDate     string  `json:"targetDate"`
}

func (g Goal) MarshalJSON() ([]byte, error) {
	return json.Marshal(goalJSON{
		StartWeightKg:  g.StartWeightKg,
		StartDate:      g.StartDate.Format(weights.DayFormat),
		TargetWeightKg: g.TargetWeightKg,
		TargetDate:     g.TargetDate.Format(weights.DayFormat),
	})
}

func (g *Goal) UnmarshalJSON(data []byte) error {
	var gj goalJSON
	if err := json.Unmarshal(data, &gj); err != nil {
		return err
	}
	startDate, err := weights.ParseDay(gj.StartDate)
	if err != nil {
		return err
	}
	targetDate, err := weights.ParseDay(gj.TargetDate)
	if err != nil {
		return err
	}
	g.StartWeightKg = gj.StartWeightKg
	g.StartDate = startDate
	g.TargetWeightKg = gj.TargetWeightKg
	g.TargetDate = targetDate
	return nil
}

func (g Goal) Validate() error {
	if g.StartWeightKg <= 0 || g.TargetWeightKg <= 0 {
		return fmt.Errorf("%w: weights must be positive", ErrInvalidGoal)
	}
	if g.StartDate.IsZero() || g.TargetDate.IsZero() {
		return fmt.Errorf("%w: dates not set", ErrInvalidGoal)
	}
	if !g.TargetDate.After(g.StartDate) {
		return fmt.Errorf("%w: target date must come after start date", ErrInvalidGoal)
	}
	return nil
}
