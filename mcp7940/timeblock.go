package mcp7940

import (
	"time"

	"github.com/ajanata/tinygo-drivers/internal/bcd"
)

// century is added to the two-digit year register. The chip has no century bit.
const century = 2000

const (
	timeBlockSize  = 7 // seconds through year
	alarmBlockSize = 6 // seconds through month, alarms have no year
)

// Field indexes within a time or alarm block, in register order.
const (
	fieldSeconds = iota
	fieldMinutes
	fieldHours
	fieldWeekday
	fieldDate
	fieldMonth
	fieldYear
)

// fieldMasks strip the control bits that share a byte with each field.
var fieldMasks = [timeBlockSize]uint8{0x7F, 0x7F, 0x3F, 0x07, 0x3F, 0x3F, 0xFF}

// CalendarTime is a wall clock time in calendar order. Weekday counts from 0; the chip
// counts from 1. YearDay is not stored by the chip: it reads back as 0 and is ignored
// on write.
type CalendarTime struct {
	Year    int
	Month   int
	Day     int
	Hour    int
	Minute  int
	Second  int
	Weekday int
	YearDay int
}

// AlarmTime is the part of a CalendarTime an alarm block can compare against.
type AlarmTime struct {
	Month   int
	Day     int
	Hour    int
	Minute  int
	Second  int
	Weekday int
}

// CalendarFromTime converts t, using t's own location.
func CalendarFromTime(t time.Time) CalendarTime {
	return CalendarTime{
		Year:    t.Year(),
		Month:   int(t.Month()),
		Day:     t.Day(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
		Weekday: int(t.Weekday()),
		YearDay: t.YearDay(),
	}
}

// Time returns c as a UTC time.Time. Weekday is not consulted.
func (c CalendarTime) Time() time.Time {
	return time.Date(c.Year, time.Month(c.Month), c.Day, c.Hour, c.Minute, c.Second, 0, time.UTC)
}

// Alarm returns the fields of c an alarm can match on.
func (c CalendarTime) Alarm() AlarmTime {
	return AlarmTime{
		Month:   c.Month,
		Day:     c.Day,
		Hour:    c.Hour,
		Minute:  c.Minute,
		Second:  c.Second,
		Weekday: c.Weekday,
	}
}

// fields returns c in register order, with the chip's weekday numbering.
func (c CalendarTime) fields() [timeBlockSize]int {
	return [timeBlockSize]int{
		fieldSeconds: c.Second,
		fieldMinutes: c.Minute,
		fieldHours:   c.Hour,
		fieldWeekday: c.Weekday + 1,
		fieldDate:    c.Day,
		fieldMonth:   c.Month,
		fieldYear:    c.Year % 100,
	}
}

func calendarFromFields(f [timeBlockSize]int) CalendarTime {
	return CalendarTime{
		Year:    f[fieldYear] + century,
		Month:   f[fieldMonth],
		Day:     f[fieldDate],
		Hour:    f[fieldHours],
		Minute:  f[fieldMinutes],
		Second:  f[fieldSeconds],
		Weekday: f[fieldWeekday] - 1,
	}
}

func (a AlarmTime) fields() [timeBlockSize]int {
	return [timeBlockSize]int{
		fieldSeconds: a.Second,
		fieldMinutes: a.Minute,
		fieldHours:   a.Hour,
		fieldWeekday: a.Weekday + 1,
		fieldDate:    a.Day,
		fieldMonth:   a.Month,
	}
}

func alarmFromFields(f [timeBlockSize]int) AlarmTime {
	return AlarmTime{
		Month:   f[fieldMonth],
		Day:     f[fieldDate],
		Hour:    f[fieldHours],
		Minute:  f[fieldMinutes],
		Second:  f[fieldSeconds],
		Weekday: f[fieldWeekday] - 1,
	}
}

// decodeBlock masks and converts each byte of buf, which holds the first len(buf)
// registers of a time or alarm block.
func decodeBlock(buf []byte) [timeBlockSize]int {
	var f [timeBlockSize]int
	for i, b := range buf {
		f[i] = bcd.ToDec(b & fieldMasks[i])
	}
	return f
}

// encodeBlock fills buf with the first len(buf) fields of f. Values are not range
// checked: an out of range value is truncated by the field mask.
func encodeBlock(buf []byte, f [timeBlockSize]int) {
	for i := range buf {
		buf[i] = bcd.FromDec(f[i]) & fieldMasks[i]
	}
}

func (d *Device) readBlock(reg uint8, n int) ([timeBlockSize]int, error) {
	buf := [timeBlockSize]byte{}
	if err := d.bus.ReadBlockData(d.Address, reg, buf[:n]); err != nil {
		return [timeBlockSize]int{}, err
	}
	return decodeBlock(buf[:n]), nil
}

// ReadTime reads the seven time registers.
func (d *Device) ReadTime() (CalendarTime, error) {
	f, err := d.readBlock(Time, timeBlockSize)
	if err != nil {
		return CalendarTime{}, err
	}
	return calendarFromFields(f), nil
}

// WriteTime writes t to the seven time registers in one block write. Fields are not
// validated, see CalendarTime.Validate. The write replaces whole bytes, so it also
// clears the oscillator start and battery backup enable bits; use Set, or Start and
// SetBatteryBackup afterwards, to keep the clock running.
func (d *Device) WriteTime(t CalendarTime) error {
	buf := [timeBlockSize]byte{}
	encodeBlock(buf[:], t.fields())
	return d.bus.WriteBlockData(d.Address, Time, buf[:])
}
