package crc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/temoto/cancrc/helpers"
)

func bytesBits(bs []byte) []bool {
	bits := make([]bool, 0, len(bs)*8)
	for _, b := range bs {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>uint(i))&1 == 1)
		}
	}
	return bits
}

func stringBits(s string) []bool {
	bits := make([]bool, len(s))
	for i, c := range s {
		bits[i] = c == '1'
	}
	return bits
}

func makeCheck(fun func([]bool) uint16, tag string) func(t *testing.T, bits []bool, expect uint16) {
	return func(t *testing.T, bits []bool, expect uint16) {
		t.Helper()
		if result := fun(bits); result != expect {
			t.Errorf("%s(%v) = %04x != %04x", tag, bits, result, expect)
		}
	}
}

func TestReference(t *testing.T) {
	t.Parallel()
	checkRef := makeCheck(Reference, "Reference")
	checkRef(t, nil, 0x0000)
	checkRef(t, stringBits("0"), 0x0000)
	checkRef(t, stringBits("0000000000000000"), 0x0000)
	checkRef(t, stringBits("1"), 0x4599)
	checkRef(t, stringBits("101"), 0x1d56)
	checkRef(t, stringBits("1101"), 0x6951)
	checkRef(t, bytesBits([]byte{0xaa}), 0x4391)
	checkRef(t, bytesBits([]byte{0xff}), 0x0095)
	// CRC-15/CAN catalogue check value
	checkRef(t, bytesBits([]byte("123456789")), 0x059e)
}

func TestFast(t *testing.T) {
	t.Parallel()
	checkFast := makeCheck(Fast, "Fast")
	checkFast(t, nil, 0x0000)
	checkFast(t, stringBits("1"), 0x4599)
	checkFast(t, stringBits("1101"), 0x6951)
	checkFast(t, bytesBits([]byte{0xaa}), 0x4391)
	checkFast(t, bytesBits(helpers.MustHex("0123456789abcdef")), 0x28e2)
	checkFast(t, bytesBits(helpers.MustHex("ffffffffffffffffffffffff")), 0x072a)
	checkFast(t, bytesBits([]byte("123456789")), 0x059e)
}

func TestTable(t *testing.T) {
	t.Parallel()
	tab := MakeTable()
	assert.Equal(t, uint16(0x0000), tab[0x00])
	assert.Equal(t, uint16(0x4599), tab[0x01])
	assert.Equal(t, uint16(0x4eab), tab[0x02])
	assert.Equal(t, uint16(0x0b32), tab[0x03])
	assert.Equal(t, uint16(0x2213), tab[0x80])
	assert.Equal(t, uint16(0x0095), tab[0xff])
	assert.Equal(t, tab, CAN)
	for i, v := range tab {
		assert.Zero(t, v&^Mask, "entry %02x exceeds 15 bits", i)
		// entry is Reference of the byte itself from zero register
		assert.Equal(t, Reference(bytesBits([]byte{byte(i)})), v, "entry %02x", i)
	}
}

func TestFastEqualsReferenceExhaustive(t *testing.T) {
	t.Parallel()
	for n := 1; n <= 12; n++ {
		bits := make([]bool, n)
		for v := 0; v < 1<<uint(n); v++ {
			for i := range bits {
				bits[i] = (v>>uint(n-1-i))&1 == 1
			}
			if r, f := Reference(bits), Fast(bits); r != f {
				t.Fatalf("n=%d v=%b Reference=%04x Fast=%04x", n, v, r, f)
			}
		}
	}
}

func TestFastEqualsReferenceRandom(t *testing.T) {
	t.Parallel()
	rnd := rand.New(rand.NewSource(0x4599))
	for i := 0; i < 20000; i++ {
		bits := make([]bool, 1+rnd.Intn(96))
		for j := range bits {
			bits[j] = rnd.Intn(2) == 1
		}
		if r, f := Reference(bits), Fast(bits); r != f {
			t.Fatalf("bits=%v Reference=%04x Fast=%04x", bits, r, f)
		}
	}
}

func TestUpdateChains(t *testing.T) {
	t.Parallel()
	bits := bytesBits([]byte("123456789"))
	for split := 0; split <= len(bits); split++ {
		reg := Update(0, CAN, bits[:split])
		reg = Update(reg, CAN, bits[split:])
		assert.Equal(t, uint16(0x059e), reg, "split=%d", split)
	}
}

func TestStepZero(t *testing.T) {
	t.Parallel()
	// zero register fed zero bits never changes
	var reg uint16
	for i := 0; i < 96; i++ {
		reg = Step(reg, false)
		assert.Zero(t, reg)
	}
}

func BenchmarkCRC(b *testing.B) {
	bits := bytesBits(helpers.MustHex("0123456789abcdef01234567"))
	for _, c := range []struct {
		name string
		fun  func([]bool) uint16
	}{
		{"reference", Reference},
		{"fast", Fast},
	} {
		fun := c.fun
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = fun(bits)
			}
		})
	}
}
