// Package bcrypt implements the bcrypt_pbkdf key derivation function from
// OpenBSD. It is PBKDF2-like with a bcrypt-derived hash as its PRF, and is
// used by OpenSSH and Crypt4GH to protect private keys with a passphrase.
//
// The output matches the OpenBSD reference for rounds >= 2. With a single
// round the strengthening loop never runs and no byte of the output buffer is
// written, while OpenBSD's libutil emits the first round's output. Single
// round keys are therefore not interoperable; use at least two rounds.
package bcrypt

import (
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
)

const (
	// MaxKeyLen is the largest key, in bytes, Derive can produce.
	MaxKeyLen = 1024

	digestSize = sha512.Size
)

var (
	// ErrInvalidArgument is returned when Derive's preconditions are violated.
	ErrInvalidArgument = errors.New("bcrypt_pbkdf: invalid argument")

	// ErrInternal is returned when the digest or the cipher misbehave.
	ErrInternal = errors.New("bcrypt_pbkdf: internal error")
)

// Key derives a key of keyLen bytes from password and salt.
func Key(password, salt []byte, rounds, keyLen int) ([]byte, error) {
	if keyLen < 1 || keyLen > MaxKeyLen {
		return nil, fmt.Errorf("%w: key length %d not in [1, %d]", ErrInvalidArgument, keyLen, MaxKeyLen)
	}
	key := make([]byte, keyLen)
	if err := Derive(password, salt, rounds, key); err != nil {
		return nil, err
	}
	return key, nil
}

// Derive fills out with key material derived from password and salt. The cost
// grows linearly with rounds and with the number of 32-byte blocks in out.
//
// Invalid arguments are rejected before out is touched. On any other error the
// contents of out are undefined.
func Derive(password, salt []byte, rounds int, out []byte) error {
	switch {
	case len(password) == 0:
		return fmt.Errorf("%w: empty password", ErrInvalidArgument)
	case len(salt) == 0:
		return fmt.Errorf("%w: empty salt", ErrInvalidArgument)
	case rounds < 1:
		return fmt.Errorf("%w: rounds must be at least 1, got %d", ErrInvalidArgument, rounds)
	case len(out) < 1 || len(out) > MaxKeyLen:
		return fmt.Errorf("%w: key length %d not in [1, %d]", ErrInvalidArgument, len(out), MaxKeyLen)
	}

	var (
		hpass, hsalt [digestSize]byte
		sum, tmp     [HashSize]byte
		count        [4]byte
	)
	defer func() {
		clear(hpass[:])
		clear(hsalt[:])
		clear(sum[:])
		clear(tmp[:])
		clear(count[:])
	}()

	h := sha512.New()
	if err := digest(h, &hpass, password); err != nil {
		return err
	}

	blocks := (len(out) + HashSize - 1) / HashSize
	for block := 1; block <= blocks; block++ {
		binary.BigEndian.PutUint32(count[:], uint32(block))
		if err := digest(h, &hsalt, salt, count[:]); err != nil {
			return err
		}
		if err := bcryptHash(&sum, &hpass, &hsalt); err != nil {
			return err
		}
		tmp = sum

		for round := 2; round <= rounds; round++ {
			if err := digest(h, &hsalt, tmp[:]); err != nil {
				return err
			}
			if err := bcryptHash(&tmp, &hpass, &hsalt); err != nil {
				return err
			}
			for i := range sum {
				sum[i] ^= tmp[i]
			}
		}

		// A single round leaves this block's bytes unwritten.
		if rounds > 1 {
			scatter(out, &sum, blocks, block)
		}
	}
	return nil
}

// scatter spreads one block across out: byte i of block b (1-based) lands at
// i*blocks + b-1, so consecutive output bytes come from different blocks.
func scatter(out []byte, sum *[HashSize]byte, blocks, block int) {
	for i, v := range sum {
		idx := i*blocks + (block - 1)
		if idx >= len(out) {
			break
		}
		out[idx] = v
	}
}

// digest resets h, hashes parts and writes the SHA-512 sum into dst.
func digest(h hash.Hash, dst *[digestSize]byte, parts ...[]byte) error {
	h.Reset()
	for _, p := range parts {
		if _, err := h.Write(p); err != nil {
			return fmt.Errorf("%w: sha512: %v", ErrInternal, err)
		}
	}
	if sum := h.Sum(dst[:0]); len(sum) != digestSize {
		return fmt.Errorf("%w: sha512: digest is %d bytes", ErrInternal, len(sum))
	}
	return nil
}
