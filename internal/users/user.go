package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/aiotex/weighttracker/internal/weights"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already taken")
	ErrInvalidUser  = errors.New("invalid user")
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 6

type UnitPreference string

const (
	UnitsMetric   UnitPreference = "METRIC"
	UnitsImperial UnitPreference = "IMPERIAL"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

type User struct {
	ID           int
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string

	// profile
	HeightCm       *float64
	DateOfBirth    *time.Time
	Gender         Gender
	UnitPreference UnitPreference
	WeekStartsOn   int
	Avatar         string
}

type userJSON struct {
	ID             int      `json:"id"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	HeightCm       *float64 `json:"heightCm"`
	DateOfBirth    *string  `json:"dateOfBirth"`
	Gender         string   `json:"gender,omitempty"`
	UnitPreference string   `json:"unitPreference"`
	WeekStartsOn   int      `json:"weekStartsOn"`
	AvatarURL      *string  `json:"avatarUrl"`
}

func (u User) MarshalJSON() ([]byte, error) {
	uj := userJSON{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		HeightCm:       u.HeightCm,
		Gender:         string(u.Gender),
		UnitPreference: string(u.UnitPreference),
		WeekStartsOn:   u.WeekStartsOn,
	}
	if u.DateOfBirth != nil {
		dob := u.DateOfBirth.Format(weights.DayFormat)
		uj.DateOfBirth = &dob
	}
	if u.Avatar != "" {
		avatarURL := "/avatars/" + u.Avatar
		uj.AvatarURL = &avatarURL
	}
	return json.Marshal(uj)
}

func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func ValidUnitPreference(u UnitPreference) bool {
	return u == UnitsMetric || u == UnitsImperial
}

func ValidGender(g Gender) bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	if r.FirstName == "" || r.LastName == "" {
		return fmt.Errorf("%w: first and last name required", ErrInvalidUser)
	}
	if !ValidEmail(r.Email) {
		return fmt.Errorf("%w: invalid email", ErrInvalidUser)
	}
	if len(r.Password) < minPasswordLen {
		return fmt.Errorf("%w: password too short", ErrInvalidUser)
	}
	return nil
}

// ProfileUpdate carries a partial profile change. Nil fields are left as is.
type ProfileUpdate struct {
	FirstName      *string  `json:"firstName"`
	LastName       *string  `json:"lastName"`
	Email          *string  `json:"email"`
	Password       *string  `json:"password"`
	HeightCm       *float64 `json:"heightCm"`
	DateOfBirth    *string  `json:"dateOfBirth"`
	Gender         *string  `json:"gender"`
	UnitPreference *string  `json:"unitPreference"`
	WeekStartsOn   *int     `json:"weekStartsOn"`
}

func (pu ProfileUpdate) Validate() error {
	if pu.Email != nil && !ValidEmail(*pu.Email) {
		return fmt.Errorf("%w: invalid email", ErrInvalidUser)
	}
	if pu.Password != nil && len(*pu.Password) < minPasswordLen {
		return fmt.Errorf("%w: password too short", ErrInvalidUser)
	}
	if pu.HeightCm != nil && *pu.HeightCm <= 0 {
		return fmt.Errorf("%w: height must be positive", ErrInvalidUser)
	}
	if pu.DateOfBirth != nil {
		if _, err := weights.ParseDay(*pu.DateOfBirth); err != nil {
			return fmt.Errorf("%w: invalid date of birth", ErrInvalidUser)
		}
	}
	if pu.Gender != nil && !ValidGender(Gender(*pu.Gender)) {
		return fmt.Errorf("%w: invalid gender", ErrInvalidUser)
	}
	if pu.UnitPreference != nil && !ValidUnitPreference(UnitPreference(*pu.UnitPreference)) {
		return fmt.Errorf("%w: invalid unit preference", ErrInvalidUser)
	}
	if pu.WeekStartsOn != nil && *pu.WeekStartsOn != 0 && *pu.WeekStartsOn != 1 {
		return fmt.Errorf("%w: week starts on must be 0 or 1", ErrInvalidUser)
	}
	return nil
}

// Apply writes the update onto the user. The password hash has to be
// produced by the caller, Apply does not hash.
func (pu ProfileUpdate) Apply(u *User, passwordHash string) {
	if pu.FirstName != nil {
		u.FirstName = *pu.FirstName
	}
	if pu.LastName != nil {
		u.LastName = *pu.LastName
	}
	if pu.Email != nil {
		u.Email = *pu.Email
	}
	if passwordHash != "" {
		u.PasswordHash = passwordHash
	}
	if pu.HeightCm != nil {
		u.HeightCm = pu.HeightCm
	}
	if pu.DateOfBirth != nil {
		// already validated
		dob, _ := weights.ParseDay(*pu.DateOfBirth)
		u.DateOfBirth = &dob
	}
	if pu.Gender != nil {
		u.Gender = Gender(*pu.Gender)
	}
	if pu.UnitPreference != nil {
		u.UnitPreference = UnitPreference(*pu.UnitPreference)
	}
	if pu.WeekStartsOn != nil {
		u.WeekStartsOn = *pu.WeekStartsOn
	}
}
