// Package rng implements a deterministic, seedable 32-bit Mersenne Twister
// (MT19937) together with uniform sampling helpers built on top of it:
// bias-free ranged integers, distinct-integer sets and lottery-style set
// draws from arbitrary pools.
//
// A generator is owned by a single goroutine. Re-seeding is legal at any
// time and immediately resets the output sequence.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"time"
)

const (
	stateSize = 624
	shiftSize = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff
	temperB   = 0x9d2c5680
	temperC   = 0xefc60000

	seedMultiplier = 1812433253
)

// MT19937 is a 32-bit Mersenne Twister with a 624-word state and period
// 2^19937-1. The zero value is not usable; construct with New or NewFromTime.
type MT19937 struct {
	state  [stateSize]uint32
	cursor int
}

// New returns a generator seeded with the given value.
func New(seed uint32) *MT19937 {
	m := &MT19937{}
	m.Seed(seed)
	return m
}

// NewFromTime returns a generator seeded from crypto/rand entropy, falling
// back to the wall clock if the entropy source fails.
func NewFromTime() *MT19937 {
	var b [4]byte
	if _, err := crand.Read(b[:]); err == nil {
		return New(binary.LittleEndian.Uint32(b[:]))
	}
	return New(uint32(time.Now().UnixNano()))
}

// Seed re-initializes the full state from a single 32-bit value. The cursor
// is set past the end of the state so the first extraction twists.
func (m *MT19937) Seed(seed uint32) {
	m.state[0] = seed
	for i := 1; i < stateSize; i++ {
		prev := m.state[i-1]
		m.state[i] = seedMultiplier*(prev^(prev>>30)) + uint32(i)
	}
	m.cursor = stateSize
}

// twist regenerates all 624 state words in place and rewinds the cursor.
func (m *MT19937) twist() {
	mag := [2]uint32{0, matrixA}

	var i int
	for ; i < stateSize-shiftSize; i++ {
		y := (m.state[i] & upperMask) | (m.state[i+1] & lowerMask)
		m.state[i] = m.state[i+shiftSize] ^ (y >> 1) ^ mag[y&1]
	}
	for ; i < stateSize-1; i++ {
		y := (m.state[i] & upperMask) | (m.state[i+1] & lowerMask)
		m.state[i] = m.state[i+shiftSize-stateSize] ^ (y >> 1) ^ mag[y&1]
	}
	y := (m.state[stateSize-1] & upperMask) | (m.state[0] & lowerMask)
	m.state[stateSize-1] = m.state[shiftSize-1] ^ (y >> 1) ^ mag[y&1]

	m.cursor = 0
}

// Uint32 extracts the next tempered 32-bit word. This is the only extraction
// primitive; every other sampling method is built on it.
func (m *MT19937) Uint32() uint32 {
	if m.cursor >= stateSize {
		m.twist()
	}

	y := m.state[m.cursor]
	m.cursor++

	y ^= y >> 11
	y ^= (y << 7) & temperB
	y ^= (y << 15) & temperC
	y ^= y >> 18

	return y
}

// Float64 returns a uniform float in [0, 1).
func (m *MT19937) Float64() float64 {
	return float64(m.Uint32()) / (1 << 32)
}

// Float64Inclusive returns a uniform float in [0, 1].
func (m *MT19937) Float64Inclusive() float64 {
	return float64(m.Uint32()) / ((1 << 32) - 1)
}

// Float64Open returns a uniform float strictly inside (0, 1).
func (m *MT19937) Float64Open() float64 {
	return (float64(m.Uint32()) + 0.5) / (1 << 32)
}

// FloatRange returns a uniform float in [min, max).
func (m *MT19937) FloatRange(min, max float64) float64 {
	return min + m.Float64()*(max-min)
}
