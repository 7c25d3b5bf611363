package crc

// Table maps byte value to register transition.
// Read-only after MakeTable, safe for concurrent use.
type Table [256]uint16

// CAN is built once at package init and never modified.
var CAN = MakeTable()

// MakeTable runs 8 zero-input steps from register byte<<7 for every byte value.
func MakeTable() *Table {
	t := new(Table)
	for i := range t {
		reg := (uint16(i) << 7) & Mask
		for j := 0; j < 8; j++ {
			if reg&top != 0 {
				reg = ((reg << 1) ^ Poly) & Mask
			} else {
				reg = (reg << 1) & Mask
			}
		}
		t[i] = reg
	}
	return t
}
