package domain

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time expressed in seconds since midnight.
type TimeOfDay int

const secondsPerDay = 24 * 60 * 60

func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

// ParseTimeOfDay accepts "15:04" and "15:04:05".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimeOfDay(t.Hour(), t.Minute(), t.Second()), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < secondsPerDay
}

func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t) * time.Second
}

// On returns the instant at this time of day on the date of d, in d's location.
func (t TimeOfDay) On(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, int(t), 0, d.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, int(t)%3600/60, int(t)%60)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
