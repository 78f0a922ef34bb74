// Package bits holds single-bit helpers for status bytes.
// Bit indexes run 0 (LSB) to 7 (MSB); higher indexes address nothing.
package bits

// Set returns b with bit i set.
func Set(b, i uint8) uint8 {
	return b | (1 << i)
}

// Clear returns b with bit i cleared.
func Clear(b, i uint8) uint8 {
	return b &^ (1 << i)
}

// Toggle returns b with bit i flipped.
func Toggle(b, i uint8) uint8 {
	return b ^ (1 << i)
}

// Test reports whether bit i of b is set.
func Test(b, i uint8) bool {
	return (b>>i)&1 != 0
}

// Val returns bit i of b as 0 or 1.
func Val(b, i uint8) uint8 {
	return (b >> i) & 1
}
