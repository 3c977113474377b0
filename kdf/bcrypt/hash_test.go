package bcrypt

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHashZero(t *testing.T) {
	var hpass, hsalt [digestSize]byte
	var out [HashSize]byte

	require.NoError(t, bcryptHash(&out, &hpass, &hsalt))
	assert.Equal(t, "460286e972fa833f8b1283ad8fa919fa29bde20e23329e774d8422bac0a7926c", hex.EncodeToString(out[:]))
}

func TestBcryptHashFreshState(t *testing.T) {
	var hpass, hsalt, other [digestSize]byte
	for i := range other {
		other[i] = byte(i)
	}
	var first, between, second [HashSize]byte

	require.NoError(t, bcryptHash(&first, &hpass, &hsalt))
	require.NoError(t, bcryptHash(&between, &other, &other))
	require.NoError(t, bcryptHash(&second, &hpass, &hsalt))

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, between)
}

func TestBcryptHashInputsUntouched(t *testing.T) {
	var hpass, hsalt [digestSize]byte
	for i := range hpass {
		hpass[i] = byte(i)
		hsalt[i] = byte(255 - i)
	}
	wantPass, wantSalt := hpass, hsalt
	var out [HashSize]byte

	require.NoError(t, bcryptHash(&out, &hpass, &hsalt))
	assert.Equal(t, wantPass, hpass)
	assert.Equal(t, wantSalt, hsalt)
}

func TestMagic(t *testing.T) {
	assert.Len(t, Magic, HashSize)
}

// Every offset below the key length must be written by exactly one
// (block, byte) pair.
func TestScatterCoversEveryLength(t *testing.T) {
	var sum [HashSize]byte
	for i := range sum {
		sum[i] = byte(i + 1)
	}

	for keyLen := 1; keyLen <= MaxKeyLen; keyLen++ {
		blocks := (keyLen + HashSize - 1) / HashSize
		hits := make([]int, keyLen)
		out := make([]byte, keyLen)
		for block := 1; block <= blocks; block++ {
			scatter(out, &sum, blocks, block)
			for i := range sum {
				if idx := i*blocks + block - 1; idx < keyLen {
					hits[idx]++
				}
			}
		}
		for idx, n := range hits {
			if n != 1 {
				t.Fatalf("keyLen %d: offset %d written %d times", keyLen, idx, n)
			}
			if out[idx] == 0 {
				t.Fatalf("keyLen %d: offset %d not written", keyLen, idx)
			}
		}
	}
}

func TestScatterInterleaves(t *testing.T) {
	var a, b [HashSize]byte
	for i := range a {
		a[i] = 0xa0
		b[i] = 0xb0
	}
	out := make([]byte, 5)

	scatter(out, &a, 2, 1)
	scatter(out, &b, 2, 2)

	assert.Equal(t, []byte{0xa0, 0xb0, 0xa0, 0xb0, 0xa0}, out)
}
