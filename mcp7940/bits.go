package mcp7940

// setBit sets a single bit of a register to value (0 or 1), leaving the other bits as
// they were. The read and the write are separate bus transactions.
func (d *Device) setBit(reg, bit, value uint8) error {
	mask := uint8(1) << bit
	current, err := d.bus.ReadReg(d.Address, reg)
	if err != nil {
		return err
	}
	updated := current&^mask | (value<<bit)&mask
	return d.bus.WriteReg(d.Address, reg, updated)
}

// readBit returns a single bit of a register as 0 or 1.
func (d *Device) readBit(reg, bit uint8) (uint8, error) {
	v, err := d.bus.ReadReg(d.Address, reg)
	if err != nil {
		return 0, err
	}
	return (v >> bit) & 1, nil
}

func (d *Device) flag(reg, bit uint8) (bool, error) {
	v, err := d.readBit(reg, bit)
	return v == 1, err
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
