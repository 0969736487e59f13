// internal/rng/csprng.go
package rng

import (
    "crypto/aes"
    "crypto/cipher"
    "crypto/rand"
    "encoding/binary"
    "io"
    "sync"

    "github.com/rotisserie/eris"
)

// CSPRNG uses AES-CTR under the hood. It is seeded once from crypto/rand and
// backs unseeded simulations, which are not meant to be reproducible.
type CSPRNG struct {
    mu     sync.Mutex
    stream cipher.Stream
}

// NewCSPRNG initializes an AES-CTR generator with a key and IV from crypto/rand.
func NewCSPRNG() (*CSPRNG, error) {
    key := make([]byte, 32)
    if _, err := io.ReadFull(rand.Reader, key); err != nil {
        return nil, eris.Wrap(err, "rng: failed to get key from crypto/rand")
    }

    block, err := aes.NewCipher(key)
    if err != nil {
        return nil, eris.Wrap(err, "rng: aes.NewCipher failed")
    }

    var iv [aes.BlockSize]byte
    if _, err := io.ReadFull(rand.Reader, iv[:]); err != nil {
        return nil, eris.Wrap(err, "rng: failed to get IV from crypto/rand")
    }

    return &CSPRNG{stream: cipher.NewCTR(block, iv[:])}, nil
}

// Read fills buf with AES-CTR keystream bytes. It never fails.
func (c *CSPRNG) Read(buf []byte) (int, error) {
    c.mu.Lock()
    defer c.mu.Unlock()
    clear(buf) // XOR over zeroes yields the raw keystream
    c.stream.XORKeyStream(buf, buf)
    return len(buf), nil
}

// Uint64 returns a single 64-bit random word.
func (c *CSPRNG) Uint64() uint64 {
    var b [8]byte
    _, _ = c.Read(b[:])
    return binary.BigEndian.Uint64(b[:])
}

// Float64 returns a uniform value in [0,1) built from the top 53 bits of a word.
func (c *CSPRNG) Float64() float64 {
    return float64(c.Uint64()>>11) / (1 << 53)
}
