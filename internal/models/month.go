package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// PaymentGraceDays is the bookkeeping offset added to the start of the
// billing month to produce the payment due date
const PaymentGraceDays = 5

// MonthKey identifies a billing month at calendar-month granularity.
// Comparing two MonthKeys by equality replaces ad-hoc date truncation.
type MonthKey struct {
	Year  int `json:"year" example:"2024"`
	Month int `json:"month" example:"1"`
}

// ParseMonthKey parses a month in "YYYY-MM" form
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", s, err)
	}
	return MonthKey{Year: t.Year(), Month: int(t.Month())}, nil
}

// MonthKeyOf truncates a timestamp to its calendar month
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: int(t.Month())}
}

// String formats the month as "YYYY-MM"
func (m MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// Start returns the first instant of the month in UTC
func (m MonthKey) Start() time.Time {
	return time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC)
}

// DueDate returns the payment due date for the month (month start plus grace days)
func (m MonthKey) DueDate() time.Time {
	return m.Start().AddDate(0, 0, PaymentGraceDays)
}

// IsZero reports whether the key is unset
func (m MonthKey) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// MarshalJSON encodes the month as its "YYYY-MM" string form
func (m MonthKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts the "YYYY-MM" string form
func (m *MonthKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMonthKey(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
