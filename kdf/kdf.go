// Package kdf incorporates the KDFs (https://en.wikipedia.org/wiki/Key_derivation_function) used to turn a passphrase into key material.
package kdf

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/neicnordic/bcrypt-pbkdf/kdf/bcrypt"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// KeySize is the default length of a derived key.
const KeySize = chacha20poly1305.KeySize

var (
	// ErrUnknownKDF is returned by Lookup for names missing from KDFS.
	ErrUnknownKDF = errors.New("kdf: unknown key derivation function")

	// ErrSingleRound is returned by the bcrypt KDF for rounds == 1, which
	// would leave the key unwritten.
	ErrSingleRound = errors.New("kdf: bcrypt needs at least 2 rounds")
)

// KDFS is a map of KDF names to implementations.
var KDFS = map[string]KDF{
	"scrypt":             sCrypt{},
	"bcrypt":             bCrypt{},
	"pbkdf2_hmac_sha256": pbkdf2sha256{},
}

// KDF interface holding "Derive" method.
type KDF interface {
	Derive(rounds int, password, salt []byte, keyLen int) (derivedKey []byte, err error)
}

// Lookup returns the KDF registered under name.
func Lookup(name string) (KDF, error) {
	k, ok := KDFS[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKDF, name)
	}
	return k, nil
}

type sCrypt struct {
}

func (sCrypt) Derive(_ int, password, salt []byte, keyLen int) (derivedKey []byte, err error) {
	return scrypt.Key(password, salt, 1<<14, 8, 1, keyLen)
}

type bCrypt struct {
}

func (bCrypt) Derive(rounds int, password, salt []byte, keyLen int) (derivedKey []byte, err error) {
	if rounds == 1 {
		return nil, ErrSingleRound
	}
	return bcrypt.Key(password, salt, rounds, keyLen)
}

type pbkdf2sha256 struct {
}

func (pbkdf2sha256) Derive(rounds int, password, salt []byte, keyLen int) (derivedKey []byte, err error) {
	if rounds < 1 {
		return nil, fmt.Errorf("kdf: pbkdf2 rounds must be at least 1, got %d", rounds)
	}
	return pbkdf2.Key(password, salt, rounds, keyLen, sha256.New), nil
}
