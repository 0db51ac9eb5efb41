package main

import (
	crand "crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"sync"
)

// GenerateID returns a random hex string of the given byte length
func GenerateID(byteLen int) string {
	b := make([]byte, byteLen)
	crand.Read(b)
	return hex.EncodeToString(b)
}

// GenerateUUID returns a random UUID v4 string
func GenerateUUID() string {
	b := make([]byte, 16)
	crand.Read(b)
	b[6] = (b[6] & 0x0f) | 0x40 // version 4
	b[8] = (b[8] & 0x3f) | 0x80 // variant 10
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}

// Clamp restricts v to [min, max]
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// round1 rounds to one decimal place for compact state snapshots
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Fast xorshift PRNG for gameplay randomness, seeded from crypto/rand.
// Gameplay rolls happen inside the tick loop, so this stays allocation-free.
var (
	rngMu    sync.Mutex
	rngState uint64
)

func init() {
	var seed [8]byte
	crand.Read(seed[:])
	rngState = binary.LittleEndian.Uint64(seed[:]) | 1
}

func xorshift() uint64 {
	rngMu.Lock()
	x := rngState
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	rngState = x
	rngMu.Unlock()
	return x
}

// randFloat returns a uniform float64 in [0, 1)
func randFloat() float64 {
	return float64(xorshift()>>11) / float64(1<<53)
}

// randInt returns a uniform int in [0, n)
func randInt(n int) int {
	if n <= 0 {
		return 0
	}
	return int(xorshift() % uint64(n))
}
