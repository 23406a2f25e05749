package period

import (
	"errors"
	"time"
)

var (
	ErrInvalidPeriod = errors.New("invalid period")
	ErrInvalidDate   = errors.New("invalid date")
)

// Key selects a reporting period.
type Key string

const (
	KeyWeek     Key = "week"
	KeyMonth    Key = "month"
	KeyQuarter  Key = "quarter"
	KeyHalfYear Key = "halfyear"
	KeyYear     Key = "year"
	KeyAll      Key = "all"
)

type Label struct {
	Short string `json:"short"`
	Long  string `json:"long"`
}

type Config struct {
	Key               Key
	ShortLabelAligned string
	ShortLabelRolling string
	LongLabelAligned  string
	LongLabelRolling  string
	DaysRolling       int
}

var configs = map[Key]Config{
	KeyWeek: {
		Key:               KeyWeek,
		ShortLabelAligned: "1W",
		ShortLabelRolling: "7d",
		LongLabelAligned:  "This Week",
		LongLabelRolling:  "Last 7 Days",
		DaysRolling:       7,
	},
	KeyMonth: {
		Key:               KeyMonth,
		ShortLabelAligned: "1M",
		ShortLabelRolling: "30d",
		LongLabelAligned:  "This Month",
		LongLabelRolling:  "Last 30 Days",
		DaysRolling:       30,
	},
	KeyQuarter: {
		Key:               KeyQuarter,
		ShortLabelAligned: "Q",
		ShortLabelRolling: "90d",
		LongLabelAligned:  "This Quarter",
		LongLabelRolling:  "Last 90 Days",
		DaysRolling:       90,
	},
	KeyHalfYear: {
		Key:               KeyHalfYear,
		ShortLabelAligned: "H",
		ShortLabelRolling: "180d",
		LongLabelAligned:  "This Half Year",
		LongLabelRolling:  "Last 180 Days",
		DaysRolling:       180,
	},
	KeyYear: {
		Key:               KeyYear,
		ShortLabelAligned: "1Y",
		ShortLabelRolling: "365d",
		LongLabelAligned:  "This Year",
		LongLabelRolling:  "Last 365 Days",
		DaysRolling:       365,
	},
	KeyAll: {
		Key:               KeyAll,
		ShortLabelAligned: "All",
		ShortLabelRolling: "All",
		LongLabelAligned:  "All Time",
		LongLabelRolling:  "All Time",
		DaysRolling:       0,
	},
}

// keys in selector display order
var available = []Key{KeyWeek, KeyMonth, KeyQuarter, KeyHalfYear, KeyYear, KeyAll}

func Available() []Key {
	keys := make([]Key, len(available))
	copy(keys, available)
	return keys
}

func ParseKey(s string) (Key, error) {
	key := Key(s)
	if _, ok := configs[key]; !ok {
		return "", ErrInvalidPeriod
	}
	return key, nil
}

func labelFor(c Config, aligned bool) Label {
	if aligned {
		return Label{Short: c.ShortLabelAligned, Long: c.LongLabelAligned}
	}
	return Label{Short: c.ShortLabelRolling, Long: c.LongLabelRolling}
}

// Period is an immutable descriptor of a resolved reporting period.
// Range is nil only for the "all" key, until the caller resolves it
// from the earliest known sample via Resolved.
type Period struct {
	Key             Key    `json:"key"`
	Label           Label  `json:"label"`
	Range           *Range `json:"range,omitempty"`
	DaysInPeriod    int    `json:"daysInPeriod"`
	CalendarAligned bool   `json:"calendarAligned"`
}

// New builds a period descriptor for the given key.
func New(key Key, opts Options) (Period, error) {
	config, ok := configs[key]
	if !ok {
		return Period{}, ErrInvalidPeriod
	}

	r, err := ResolveRange(key, opts)
	if err != nil {
		return Period{}, err
	}

	days := 0
	if r != nil {
		days = DaysInRange(*r)
	}

	return Period{
		Key:             key,
		Label:           labelFor(config, opts.alignToCalendar()),
		Range:           r,
		DaysInPeriod:    days,
		CalendarAligned: opts.alignToCalendar(),
	}, nil
}

// Unbounded reports whether the period has no resolved range yet.
func (p Period) Unbounded() bool {
	return p.Range == nil
}

// Resolved returns a copy of the period with its range set to [start, end].
// Used to back-fill an "all" period from the earliest stored sample, without
// mutating the original descriptor.
func (p Period) Resolved(start, end time.Time) Period {
	r := NewRange(start, end, end)
	p.Range = &r
	p.DaysInPeriod = DaysInRange(r)
	return p
}
