package mcp7940

import "tinygo.org/x/drivers"

// Bus is a register oriented two-wire transport. *smbus.Conn from
// github.com/go-daq/smbus implements it, and New adapts a drivers.I2C to it.
type Bus interface {
	ReadReg(addr, reg uint8) (uint8, error)
	WriteReg(addr, reg, v uint8) error
	ReadBlockData(addr, reg uint8, buf []byte) error
	WriteBlockData(addr, reg uint8, buf []byte) error
}

// i2cBus issues every register access as a single Tx, register pointer first.
type i2cBus struct {
	i2c drivers.I2C

	// Fixed buffers to avoid per-call heap allocations.
	w [1 + timeBlockSize]byte
	r [1]byte
}

func (b *i2cBus) ReadReg(addr, reg uint8) (uint8, error) {
	b.w[0] = reg
	if err := b.i2c.Tx(uint16(addr), b.w[:1], b.r[:]); err != nil {
		return 0, err
	}
	return b.r[0], nil
}

func (b *i2cBus) WriteReg(addr, reg, v uint8) error {
	b.w[0] = reg
	b.w[1] = v
	return b.i2c.Tx(uint16(addr), b.w[:2], nil)
}

func (b *i2cBus) ReadBlockData(addr, reg uint8, buf []byte) error {
	b.w[0] = reg
	return b.i2c.Tx(uint16(addr), b.w[:1], buf)
}

func (b *i2cBus) WriteBlockData(addr, reg uint8, buf []byte) error {
	w := b.w[:0]
	if len(buf) >= len(b.w) {
		w = make([]byte, 0, len(buf)+1)
	}
	w = append(w, reg)
	w = append(w, buf...)
	return b.i2c.Tx(uint16(addr), w, nil)
}
