// Package crc implements the 15-bit CRC of the CAN bus frame (CRC-15/CAN).
// Input is a sequence of bits in transmission order, not bytes,
// because CAN frames are not byte aligned.
package crc

const (
	// x^15 + x^14 + x^10 + x^8 + x^7 + x^4 + x^3 + 1
	Poly uint16 = 0x4599
	Mask uint16 = 0x7fff

	top uint16 = 0x4000
)

// Step feeds one bit into register.
// CRCNXT = NXTBIT xor CRC_RG(14); CRC_RG <<= 1; if CRCNXT { CRC_RG ^= Poly }
func Step(reg uint16, bit bool) uint16 {
	next := bit != (reg&top != 0)
	reg = (reg << 1) & Mask
	if next {
		reg ^= Poly
	}
	return reg
}

// Reference is the bit-serial definition, slow but obviously correct.
func Reference(bits []bool) uint16 {
	var reg uint16
	for _, b := range bits {
		reg = Step(reg, b)
	}
	return reg
}

// Fast is equivalent to Reference, processes whole bytes via CAN table.
func Fast(bits []bool) uint16 { return Update(0, CAN, bits) }

// Update continues CRC computation from reg.
// Full bytes (MSB first) go through table t, then 0-7 trailing bits bit by bit.
func Update(reg uint16, t *Table, bits []bool) uint16 {
	full := len(bits) &^ 7
	for i := 0; i < full; i += 8 {
		var b byte
		for _, bit := range bits[i : i+8] {
			b <<= 1
			if bit {
				b |= 1
			}
		}
		reg = ((reg << 8) ^ t[byte(reg>>7)^b]) & Mask
	}
	for _, bit := range bits[full:] {
		reg = Step(reg, bit)
	}
	return reg
}
