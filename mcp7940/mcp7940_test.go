package mcp7940

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestConfigure(t *testing.T) {
	c := qt.New(t)
	f := &fakeChip{}
	f.regs[Control] = 0xFF
	f.regs[Weekday] = 0x05
	d := NewBus(f)

	c.Assert(d.Configure(Config{}), qt.IsNil)
	c.Assert(f.regs[Control], qt.Equals, uint8(0))
	c.Assert(f.regs[Weekday], qt.Equals, uint8(0x0D))
	c.Assert(f.addr, qt.Equals, uint16(0x6F))
	c.Assert(f.ops, qt.DeepEquals, []string{"w 07", "r 03", "w 03"})

	ok, err := d.BatteryBackupEnabled()
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.Equals, true)
}

func TestConfigureAddressAndNoBattery(t *testing.T) {
	c := qt.New(t)
	f := &fakeChip{}
	f.regs[Weekday] = 0x0D
	d := New(f)

	c.Assert(d.Configure(Config{Address: 0x70, DisableBatteryBackup: true}), qt.IsNil)
	c.Assert(d.Address, qt.Equals, uint8(0x70))
	c.Assert(f.addr, qt.Equals, uint16(0x70))
	c.Assert(f.regs[Weekday], qt.Equals, uint8(0x05))
}

func TestConfigureBusError(t *testing.T) {
	c := qt.New(t)
	f := &fakeChip{failAt: 1}
	c.Assert(NewBus(f).Configure(Config{}), qt.Equals, errBus)
	c.Assert(f.ops, qt.HasLen, 1)
}

func TestStartStop(t *testing.T) {
	c := qt.New(t)
	f := &fakeChip{}
	f.regs[Seconds] = 0x30
	d := NewBus(f)

	c.Assert(d.Start(), qt.IsNil)
	c.Assert(f.regs[Seconds], qt.Equals, uint8(0xB0))
	started, err := d.IsStarted()
	c.Assert(err, qt.IsNil)
	c.Assert(started, qt.Equals, true)

	c.Assert(d.Stop(), qt.IsNil)
	c.Assert(f.regs[Seconds], qt.Equals, uint8(0x30))
	started, err = d.IsStarted()
	c.Assert(err, qt.IsNil)
	c.Assert(started, qt.Equals, false)
}

func TestBatteryBackupPreservesWeekday(t *testing.T) {
	c := qt.New(t)
	f := &fakeChip{}
	f.regs[Weekday] = 0x24
	d := NewBus(f)

	c.Assert(d.SetBatteryBackup(true), qt.IsNil)
	c.Assert(f.regs[Weekday], qt.Equals, uint8(0x2C))
	c.Assert(d.SetBatteryBackup(false), qt.IsNil)
	c.Assert(f.regs[Weekday], qt.Equals, uint8(0x24))
}

func TestClearOutput(t *testing.T) {
	c := qt.New(t)
	f := &fakeChip{}
	f.regs[Control] = 0xB0
	c.Assert(New(f).ClearOutput(), qt.IsNil)
	c.Assert(f.regs[Control], qt.Equals, uint8(0))
	c.Assert(f.ops, qt.DeepEquals, []string{"tx 07 w1 r0"})
}

func TestIsLeapYear(t *testing.T) {
	c := qt.New(t)
	for year, want := range map[int]bool{
		2000: true,
		1900: false,
		2024: true,
		2023: false,
		2100: false,
		2400: true,
	} {
		c.Assert(IsLeapYear(year), qt.Equals, want, qt.Commentf("year %d", year))
	}
}

func TestDeviceIsLeapYear(t *testing.T) {
	c := qt.New(t)
	f := &fakeChip{}
	f.regs[6] = 0x24
	d := NewBus(f)

	leap, err := d.IsLeapYear()
	c.Assert(err, qt.IsNil)
	c.Assert(leap, qt.Equals, true)

	f.regs[6] = 0x23
	leap, err = d.IsLeapYear()
	c.Assert(err, qt.IsNil)
	c.Assert(leap, qt.Equals, false)
}

func TestValidate(t *testing.T) {
	c := qt.New(t)
	good := CalendarTime{Year: 2024, Month: 6, Day: 15, Hour: 13, Minute: 45, Second: 30, Weekday: 3}
	c.Assert(good.Validate(), qt.IsNil)
	c.Assert(good.Alarm().Validate(), qt.IsNil)

	bad := good
	bad.Month = 13
	err := bad.Validate()
	c.Assert(err, qt.ErrorMatches, "mcp7940: month out of range: 13")
	var fe *FieldError
	c.Assert(errors.As(err, &fe), qt.Equals, true)
	c.Assert(fe.Field, qt.Equals, "month")

	bad = good
	bad.Year = 2100
	c.Assert(bad.Validate(), qt.ErrorMatches, "mcp7940: year out of range: 2100")

	alarm := good.Alarm()
	alarm.Hour = 25
	c.Assert(alarm.Validate(), qt.ErrorMatches, "mcp7940: hour out of range: 25")
}

func TestI2CBusLongBlock(t *testing.T) {
	c := qt.New(t)
	f := &fakeChip{}
	b := &i2cBus{i2c: f}

	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	c.Assert(b.WriteBlockData(Address, 0x08, data), qt.IsNil)
	c.Assert(f.regs[0x08:0x12], qt.DeepEquals, data)

	v, err := b.ReadReg(Address, 0x0A)
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, uint8(3))
	c.Assert(f.ops, qt.DeepEquals, []string{"tx 08 w10 r0", "tx 0a w0 r1"})
}

func TestI2CBusError(t *testing.T) {
	c := qt.New(t)
	d := New(&fakeChip{failAt: 1})
	_, err := d.IsStarted()
	c.Assert(err, qt.Equals, errBus)
}
