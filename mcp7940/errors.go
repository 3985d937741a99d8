package mcp7940

import (
	"errors"
	"fmt"
)

var ErrInvalidAlarm = errors.New("mcp7940: invalid alarm")

// FieldError reports a time field the chip cannot represent.
type FieldError struct {
	Field string
	Value int
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("mcp7940: %s out of range: %d", e.Field, e.Value)
}

type fieldRange struct {
	name  string
	value int
	min   int
	max   int
}

func checkRanges(fields []fieldRange) error {
	for _, f := range fields {
		if f.value < f.min || f.value > f.max {
			return &FieldError{Field: f.name, Value: f.value}
		}
	}
	return nil
}

// Validate reports the first field of c outside what the chip can store. The driver
// never calls it: writes accept any value.
func (c CalendarTime) Validate() error {
	return checkRanges([]fieldRange{
		{"year", c.Year, century, century + 99},
		{"month", c.Month, 1, 12},
		{"day", c.Day, 1, 31},
		{"hour", c.Hour, 0, 23},
		{"minute", c.Minute, 0, 59},
		{"second", c.Second, 0, 59},
		{"weekday", c.Weekday, 0, 6},
	})
}

// Validate reports the first field of a outside what an alarm block can store.
func (a AlarmTime) Validate() error {
	return checkRanges([]fieldRange{
		{"month", a.Month, 1, 12},
		{"day", a.Day, 1, 31},
		{"hour", a.Hour, 0, 23},
		{"minute", a.Minute, 0, 59},
		{"second", a.Second, 0, 59},
		{"weekday", a.Weekday, 0, 6},
	})
}
