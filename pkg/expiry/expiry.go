package expiry

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"

	// WarningWindowDays is the upper bound (inclusive) of the warning band.
	// It is tuned separately from matching.ExpiringWindowDays.
	WarningWindowDays = 3

	DefaultExpiryDays = 14

	StatusExpired  = "expired"
	StatusExpiring = "expiring"
	StatusWarning  = "warning"
	StatusGood     = "good"
	StatusUnknown  = "unknown"
)

var ErrInvalidDate = errors.New("invalid date")

type Status struct {
	Status        string `json:"status"`
	Label         string `json:"label"`
	Critical      bool   `json:"critical"`
	DaysRemaining *int   `json:"days_remaining"`
}

// Midnight truncates t to 00:00 in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DaysRemaining returns whole days between the local midnight of now and the
// local midnight of date. ok is false when date is the zero time.
func DaysRemaining(date, now time.Time) (days int, ok bool) {
	if date.IsZero() {
		return 0, false
	}
	loc := now.Location()
	diff := Midnight(date, loc).Sub(Midnight(now, loc))
	return int(math.Round(diff.Hours() / 24)), true
}

func Classify(date, now time.Time) Status {
	days, ok := DaysRemaining(date, now)
	if !ok {
		return Status{Status: StatusUnknown, Label: "No expiry date"}
	}

	st := Status{DaysRemaining: &days}
	switch {
	case days < 0:
		n := -days
		st.Status = StatusExpired
		st.Label = fmt.Sprintf("Expired %d %s ago", n, plural(n, "day", "days"))
		st.Critical = true
	case days == 0:
		st.Status = StatusExpiring
		st.Label = "Expires today"
		st.Critical = true
	case days <= WarningWindowDays:
		st.Status = StatusWarning
		if days == 1 {
			st.Label = "Expires tomorrow"
		} else {
			st.Label = fmt.Sprintf("Expires in %d days", days)
		}
	default:
		st.Status = StatusGood
		st.Label = fmt.Sprintf("Expires in %d days", days)
	}
	return st
}

// RelativeDescription renders the distance to date the way list rows show it.
func RelativeDescription(date, now time.Time) string {
	days, ok := DaysRemaining(date, now)
	if !ok {
		return ""
	}

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 1 && days < 7:
		return fmt.Sprintf("In %d days", days)
	case days >= 7 && days < 14:
		return "In 1 week"
	case days >= 14 && days < 30:
		return fmt.Sprintf("In %d weeks", days/7)
	case days >= 30 && days < 60:
		return "In 1 month"
	case days >= 60:
		return fmt.Sprintf("In %d months", days/30)
	case days < -1 && days > -7:
		return fmt.Sprintf("%d days ago", -days)
	case days <= -7 && days > -14:
		return "1 week ago"
	case days <= -14 && days > -30:
		return fmt.Sprintf("%d weeks ago", -days/7)
	case days <= -30 && days > -60:
		return "1 month ago"
	default:
		return fmt.Sprintf("%d months ago", -days/30)
	}
}

func DefaultExpiryDate(now time.Time, days int) time.Time {
	if days <= 0 {
		days = DefaultExpiryDays
	}
	return Midnight(now, now.Location()).AddDate(0, 0, days)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// Parse accepts YYYY-MM-DD (interpreted in loc) or RFC3339.
func Parse(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.ParseInLocation(DateLayout, value, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, ErrInvalidDate
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
