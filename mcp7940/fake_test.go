package mcp7940

import (
	"errors"
	"fmt"

	"tinygo.org/x/drivers"
)

var (
	_ Bus         = (*fakeChip)(nil)
	_ drivers.I2C = (*fakeChip)(nil)
)

var errBus = errors.New("i2c: nack")

// fakeChip is a register file standing in for an MCP7940.
type fakeChip struct {
	regs [0x20]byte
	ops  []string
	addr uint16

	// failAt makes the n-th bus operation (1-based) fail with errBus.
	failAt int
}

func (f *fakeChip) op(format string, args ...interface{}) error {
	f.ops = append(f.ops, fmt.Sprintf(format, args...))
	if f.failAt != 0 && len(f.ops) == f.failAt {
		return errBus
	}
	return nil
}

func (f *fakeChip) ReadReg(addr, reg uint8) (uint8, error) {
	f.addr = uint16(addr)
	if err := f.op("r %02x", reg); err != nil {
		return 0, err
	}
	return f.regs[reg], nil
}

func (f *fakeChip) WriteReg(addr, reg, v uint8) error {
	f.addr = uint16(addr)
	if err := f.op("w %02x", reg); err != nil {
		return err
	}
	f.regs[reg] = v
	return nil
}

func (f *fakeChip) ReadBlockData(addr, reg uint8, buf []byte) error {
	f.addr = uint16(addr)
	if err := f.op("rb %02x %d", reg, len(buf)); err != nil {
		return err
	}
	copy(buf, f.regs[reg:])
	return nil
}

func (f *fakeChip) WriteBlockData(addr, reg uint8, buf []byte) error {
	f.addr = uint16(addr)
	if err := f.op("wb %02x %d", reg, len(buf)); err != nil {
		return err
	}
	copy(f.regs[reg:], buf)
	return nil
}

// Tx behaves like the chip on a raw I2C bus: the first written byte sets the register
// pointer, the rest are stored from there, then reads continue from the pointer.
func (f *fakeChip) Tx(addr uint16, w, r []byte) error {
	f.addr = addr
	if len(w) == 0 {
		return errors.New("fake: no register pointer")
	}
	if err := f.op("tx %02x w%d r%d", w[0], len(w)-1, len(r)); err != nil {
		return err
	}
	reg := w[0]
	copy(f.regs[reg:], w[1:])
	copy(r, f.regs[reg:])
	return nil
}
