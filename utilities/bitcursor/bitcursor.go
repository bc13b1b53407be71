// Package bitcursor provides MSB-first bit-level readers and writers over byte
// buffers, with positions expressed as a byte offset plus a bit offset.
//
// Bit 0 of a byte is its most significant bit. Writing the values 0b101 (3
// bits) and 0b00001 (5 bits) to an empty buffer produces the single byte 0xA1.

package bitcursor

import (
	"fmt"
	"strings"
)

// Position is a location inside a byte buffer. Bit counts from the most
// significant bit of the byte at index Byte and is always in [0, 8).
type Position struct {
	Byte int
	Bit  uint8
}

// PositionOf converts an absolute bit offset into a [Position].
func PositionOf(bitOffset int) Position {
	return Position{Byte: bitOffset / 8, Bit: uint8(bitOffset % 8)}
}

// Offset returns the absolute bit offset of the position.
func (p Position) Offset() int {
	return p.Byte*8 + int(p.Bit)
}

// Advance returns the position `n` bits further along, carrying into the next
// byte as needed.
func (p Position) Advance(n int) Position {
	return PositionOf(p.Offset() + n)
}

// BytesUsed gives the number of bytes touched by everything before the
// position, i.e. the buffer length needed to hold that many bits.
func (p Position) BytesUsed() int {
	if p.Bit == 0 {
		return p.Byte
	}
	return p.Byte + 1
}

func (p Position) String() string {
	return fmt.Sprintf("byte %d bit %d", p.Byte, p.Bit)
}

// BitmapIndex converts an MSB-first bit offset into the index of the same bit
// in a [github.com/boljen/go-bitmap] bitmap, which numbers bits from the least
// significant end of each byte.
func BitmapIndex(bitOffset int) int {
	return bitOffset&^7 | (7 - bitOffset&7)
}

// Format renders a buffer as space-separated groups of four binary digits, for
// debugging packed output.
func Format(data []byte) string {
	var builder strings.Builder
	for i, b := range data {
		if i > 0 {
			builder.WriteByte(' ')
		}
		fmt.Fprintf(&builder, "%04b %04b", b>>4, b&0x0f)
	}
	return builder.String()
}
