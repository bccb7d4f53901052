package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"math"
)

// ByteGenerator produces the deterministic byte stream for one
// (serverSeed, clientSeed, nonce) tuple. Each 32-byte block is
// HMAC-SHA256(serverSeed, "<clientSeed>:<nonce>:<block>") and the
// stream is the concatenation of blocks 0, 1, 2, ...
type ByteGenerator struct {
	serverSeed   string
	clientSeed   string
	nonce        uint64
	currentBlock uint64
	currentPos   int
	buffer       [32]byte
}

// NewByteGenerator positions a generator at the given byte cursor
// within the stream.
func NewByteGenerator(serverSeed, clientSeed string, nonce, cursor uint64) *ByteGenerator {
	bg := &ByteGenerator{
		serverSeed:   serverSeed,
		clientSeed:   clientSeed,
		nonce:        nonce,
		currentBlock: cursor / 32,
		currentPos:   int(cursor % 32),
	}

	bg.fillBlock()

	return bg
}

// Next returns the next byte from the stream.
func (bg *ByteGenerator) Next() byte {
	if bg.currentPos >= 32 {
		bg.currentBlock++
		bg.currentPos = 0
		bg.fillBlock()
	}

	b := bg.buffer[bg.currentPos]
	bg.currentPos++
	return b
}

// NextFloat consumes exactly 4 bytes and maps them into [0, 1).
func (bg *ByteGenerator) NextFloat() float64 {
	b0 := bg.Next()
	b1 := bg.Next()
	b2 := bg.Next()
	b3 := bg.Next()

	return bytesToFloat([4]byte{b0, b1, b2, b3})
}

func (bg *ByteGenerator) fillBlock() {
	h := hmac.New(sha256.New, []byte(bg.serverSeed))
	message := fmt.Sprintf("%s:%d:%d", bg.clientSeed, bg.nonce, bg.currentBlock)
	h.Write([]byte(message))
	copy(bg.buffer[:], h.Sum(nil))
}

// bytesToFloat interprets 4 bytes as a big-endian fraction:
// b0/256 + b1/256^2 + b2/256^3 + b3/256^4, equivalent to
// uint32(b0..b3) / 2^32. Always in [0, 1).
func bytesToFloat(bytes [4]byte) float64 {
	result := 0.0
	for i, b := range bytes {
		divider := math.Pow(256, float64(i+1))
		result += float64(b) / divider
	}
	return result
}

// Floats generates count floats starting from the given byte cursor.
func Floats(serverSeed, clientSeed string, nonce, cursor uint64, count int) []float64 {
	bg := NewByteGenerator(serverSeed, clientSeed, nonce, cursor)
	floats := make([]float64, count)

	for i := 0; i < count; i++ {
		floats[i] = bg.NextFloat()
	}

	return floats
}

// FloatsInto fills dst with floats, reusing its backing array when large
// enough. Used by hot simulation loops to avoid per-round allocation.
func FloatsInto(dst []float64, serverSeed, clientSeed string, nonce, cursor uint64, count int) []float64 {
	if len(dst) < count {
		dst = make([]float64, count)
	}

	bg := NewByteGenerator(serverSeed, clientSeed, nonce, cursor)

	for i := 0; i < count; i++ {
		dst[i] = bg.NextFloat()
	}

	return dst[:count]
}

// FloatAt returns the cursor-th float of the stream. Draw index cursor
// covers bytes [4*cursor, 4*cursor+4), so FloatAt(s, c, n, i) equals
// Floats(s, c, n, 0, i+1)[i]. Games use distinct draw indices to take
// multiple independent values within one round.
func FloatAt(serverSeed, clientSeed string, nonce, cursor uint64) float64 {
	return NewByteGenerator(serverSeed, clientSeed, nonce, cursor*4).NextFloat()
}

// IntAt maps the cursor-th float onto [0, modulus) by truncation.
func IntAt(serverSeed, clientSeed string, nonce, cursor, modulus uint64) uint64 {
	return uint64(math.Floor(FloatAt(serverSeed, clientSeed, nonce, cursor) * float64(modulus)))
}
