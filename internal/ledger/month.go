package ledger

import (
	"time"
)

const monthLayout = "2006-01"

// MonthRange is the half-open UTC interval [Start, End) covering one calendar month.
type MonthRange struct {
	Token string
	Start time.Time
	End   time.Time
}

// ParseMonth turns a YYYY-MM token into its month range.
//
// The token must be exactly four year digits, a dash and two month digits.
// Month 00 or 13+, year 0000 and any trailing text yield ErrInvalidMonth.
func ParseMonth(token string) (MonthRange, error) {
	if len(token) != len(monthLayout) || token[4] != '-' {
		return MonthRange{}, ErrInvalidMonth
	}
	for i, r := range token {
		if i != 4 && (r < '0' || r > '9') {
			return MonthRange{}, ErrInvalidMonth
		}
	}
	t, err := time.ParseInLocation(monthLayout, token, time.UTC)
	if err != nil || t.Year() < 1 {
		return MonthRange{}, ErrInvalidMonth
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return MonthRange{
		Token: token,
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}, nil
}

// Contains reports whether t falls inside the range.
func (r MonthRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// DayKey is the UTC calendar day of t in YYYY-MM-DD form.
func DayKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}
