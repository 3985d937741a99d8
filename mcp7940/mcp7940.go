// Package mcp7940 implements a driver for the MCP7940 battery-backed Real-Time Clock (RTC), providing read-write of
// the current time, oscillator and battery backup control, and the two alarm-compare blocks. The chip's SRAM, power
// fail timestamps, digital trimming and square wave output remain unimplemented.
//
// The chip stores a two-digit year; this driver assumes the 21st century, so only years 2000 through 2099 survive a
// write followed by a read.
//
// Read-modify-write sequences are separate bus transactions and the driver does no locking. Callers sharing the bus
// must serialize every call themselves.
//
// Datasheet: https://ww1.microchip.com/downloads/en/DeviceDoc/20005010F.pdf
package mcp7940

import (
	"time"

	"tinygo.org/x/drivers"
)

type Device struct {
	bus     Bus
	Address uint8
}

type Config struct {
	// Address defaults to Address when zero.
	Address uint8
	// DisableBatteryBackup leaves the chip without a backup supply when main power fails.
	DisableBatteryBackup bool
}

// New creates a new driver on the specified preconfigured I2C bus.
func New(i2c drivers.I2C) *Device {
	return NewBus(&i2cBus{i2c: i2c})
}

// NewBus creates a new driver on a register oriented bus such as a Linux SMBus connection.
func NewBus(bus Bus) *Device {
	return &Device{
		bus:     bus,
		Address: Address,
	}
}

// Configure clears the control register, which turns off both alarms and drives the output low, and sets up battery
// backup.
func (d *Device) Configure(c Config) error {
	if c.Address != 0 {
		d.Address = c.Address
	}
	if err := d.ClearOutput(); err != nil {
		return err
	}
	return d.SetBatteryBackup(!c.DisableBatteryBackup)
}

// Start starts the oscillator.
func (d *Device) Start() error {
	return d.setBit(Seconds, bitST, 1)
}

// Stop stops the oscillator. The time registers keep their values while stopped.
func (d *Device) Stop() error {
	return d.setBit(Seconds, bitST, 0)
}

func (d *Device) IsStarted() (bool, error) {
	return d.flag(Seconds, bitST)
}

// SetBatteryBackup enables or disables switchover to the external battery.
func (d *Device) SetBatteryBackup(enable bool) error {
	return d.setBit(Weekday, bitVBATEN, b2u(enable))
}

func (d *Device) BatteryBackupEnabled() (bool, error) {
	return d.flag(Weekday, bitVBATEN)
}

// ClearOutput writes zero to the control register.
func (d *Device) ClearOutput() error {
	return d.bus.WriteReg(d.Address, Control, 0x00)
}

// IsLeapYear reports whether the year currently held by the chip is a leap year.
func (d *Device) IsLeapYear() (bool, error) {
	t, err := d.ReadTime()
	if err != nil {
		return false, err
	}
	return IsLeapYear(t.Year), nil
}

// Now reads the current time as a UTC time.Time. Unlike ReadTime it drops the leap
// year flag the chip reports in the month register.
func (d *Device) Now() (time.Time, error) {
	buf := [timeBlockSize]byte{}
	if err := d.bus.ReadBlockData(d.Address, Time, buf[:]); err != nil {
		return time.Time{}, err
	}
	buf[fieldMonth] &^= 1 << bitLPYR
	return calendarFromFields(decodeBlock(buf[:])).Time(), nil
}

// Set writes t to the chip. Unlike WriteTime it keeps the battery backup setting and
// leaves the oscillator running.
func (d *Device) Set(t time.Time) error {
	vbat, err := d.readBit(Weekday, bitVBATEN)
	if err != nil {
		return err
	}
	buf := [timeBlockSize]byte{}
	encodeBlock(buf[:], CalendarFromTime(t).fields())
	buf[fieldSeconds] |= 1 << bitST
	buf[fieldWeekday] |= vbat << bitVBATEN
	return d.bus.WriteBlockData(d.Address, Time, buf[:])
}

// IsLeapYear reports whether year is a leap year in the Gregorian calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && year%100 != 0 || year%400 == 0
}
