package mcp7940

// Alarm selects one of the two alarm-compare blocks.
type Alarm uint8

const (
	Alarm0 Alarm = iota
	Alarm1
)

// Polarity is the level the MFP output pin takes when an alarm fires.
type Polarity uint8

const (
	ActiveLow Polarity = iota
	ActiveHigh
)

type alarmRegisters struct {
	time      uint8 // first register of the block
	weekday   uint8 // weekday, match mask and interrupt flag
	enableBit uint8 // bit in Control
}

func (a Alarm) registers() (alarmRegisters, error) {
	switch a {
	case Alarm0:
		return alarmRegisters{time: Alarm0Time, weekday: Alarm0Weekday, enableBit: bitALM0EN}, nil
	case Alarm1:
		return alarmRegisters{time: Alarm1Time, weekday: Alarm1Weekday, enableBit: bitALM1EN}, nil
	}
	return alarmRegisters{}, ErrInvalidAlarm
}

// ConfigureAlarm writes t to the alarm block, enables the alarm, selects a match on
// every field and clears a pending interrupt flag. Fields are not validated. For
// Alarm0 the polarity bit, which shares the weekday register, is carried over.
func (d *Device) ConfigureAlarm(a Alarm, t AlarmTime) error {
	r, err := a.registers()
	if err != nil {
		return err
	}
	prev, err := d.bus.ReadReg(d.Address, r.weekday)
	if err != nil {
		return err
	}

	buf := [alarmBlockSize]byte{}
	encodeBlock(buf[:], t.fields())
	if a == Alarm0 {
		buf[fieldWeekday] |= prev & (1 << bitALMPOL)
	}
	err = d.bus.WriteBlockData(d.Address, r.time, buf[:])
	if err != nil {
		return err
	}

	err = d.setBit(Control, r.enableBit, 1)
	if err != nil {
		return err
	}

	v, err := d.bus.ReadReg(d.Address, r.weekday)
	if err != nil {
		return err
	}
	v |= matchAll
	v &^= 1 << bitALMIF
	return d.bus.WriteReg(d.Address, r.weekday, v)
}

// ReadAlarm reads back the time held in an alarm block.
func (d *Device) ReadAlarm(a Alarm) (AlarmTime, error) {
	r, err := a.registers()
	if err != nil {
		return AlarmTime{}, err
	}
	f, err := d.readBlock(r.time, alarmBlockSize)
	if err != nil {
		return AlarmTime{}, err
	}
	return alarmFromFields(f), nil
}

// DisableAlarm clears the alarm's enable bit. The alarm block is left as it was.
func (d *Device) DisableAlarm(a Alarm) error {
	r, err := a.registers()
	if err != nil {
		return err
	}
	return d.setBit(Control, r.enableBit, 0)
}

func (d *Device) AlarmEnabled(a Alarm) (bool, error) {
	r, err := a.registers()
	if err != nil {
		return false, err
	}
	return d.flag(Control, r.enableBit)
}

// AlarmFired reports whether the chip has set the alarm's interrupt flag.
func (d *Device) AlarmFired(a Alarm) (bool, error) {
	r, err := a.registers()
	if err != nil {
		return false, err
	}
	return d.flag(r.weekday, bitALMIF)
}

// ClearAlarm clears the interrupt flag so the alarm can fire again.
func (d *Device) ClearAlarm(a Alarm) error {
	r, err := a.registers()
	if err != nil {
		return err
	}
	return d.setBit(r.weekday, bitALMIF, 0)
}

// SetAlarmPolarity sets the output polarity. The chip has a single polarity bit, in the
// alarm 0 weekday register, shared by both alarms.
func (d *Device) SetAlarmPolarity(p Polarity) error {
	return d.setBit(Alarm0Weekday, bitALMPOL, uint8(p)&1)
}

func (d *Device) AlarmPolarity() (Polarity, error) {
	v, err := d.readBit(Alarm0Weekday, bitALMPOL)
	return Polarity(v), err
}
