// Package bcd converts between integers and packed binary-coded decimal bytes, where
// the high nibble holds the tens digit and the low nibble the ones digit.
package bcd

// ToDec converts a packed BCD byte to int. Callers mask off any non-data bits first.
func ToDec(b uint8) int {
	return int(b&0x0F) + int(b>>4)*10
}

// FromDec converts an int in [0, 99] to packed BCD. Values outside that range give
// undefined results.
func FromDec(v int) uint8 {
	return uint8((v/10)<<4 | v%10)
}
