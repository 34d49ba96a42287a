package painter

// XORShift is Marsaglia's 64-bit xorshift generator with the (13, 7, 17)
// triple. The zero state is a fixed point; seed it with anything else.
type XORShift struct {
	state uint64
}

// NewXORShift returns a generator seeded with seed. A zero seed is replaced
// with 1.
func NewXORShift(seed uint64) *XORShift {
	if seed == 0 {
		seed = 1
	}
	return &XORShift{state: seed}
}

// Next advances the generator and returns the new state.
func (x *XORShift) Next() uint64 {
	s := x.state
	s ^= s << 13
	s ^= s >> 7
	s ^= s << 17
	x.state = s
	return s
}

// Uint8 returns the low byte of the next value.
func (x *XORShift) Uint8() uint8 {
	return uint8(x.Next())
}
