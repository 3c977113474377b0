package kdf

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/neicnordic/bcrypt-pbkdf/kdf/bcrypt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

var testSalt = []byte{1, 2, 3, 4, 1, 2, 3, 4, 1, 2, 3, 4, 1, 2, 3, 4}

func TestSCrypt_Derive(t *testing.T) {
	derived, err := sCrypt{}.Derive(4, []byte("password"), testSalt, KeySize)
	if err != nil {
		t.Error(err)
	}
	if hex.EncodeToString(derived) != "1ac7b37b2173dcc95dd158c880e6de2caed7fcb0530ba86d343497b6cf6cd71f" {
		t.Fail()
	}
}

func TestBCrypt_Derive(t *testing.T) {
	derived, err := bCrypt{}.Derive(4, []byte("password"), testSalt, KeySize)
	if err != nil {
		t.Error(err)
	}
	if hex.EncodeToString(derived) != "f89795089a19a4f990a30ea1563cac4fa7e4655aea290219e88902a3125c351b" {
		t.Fail()
	}
}

func TestBCrypt_DeriveSingleRound(t *testing.T) {
	_, err := bCrypt{}.Derive(1, []byte("password"), testSalt, KeySize)
	assert.ErrorIs(t, err, ErrSingleRound)
}

func TestBCrypt_DeriveInvalid(t *testing.T) {
	_, err := bCrypt{}.Derive(0, []byte("password"), testSalt, KeySize)
	assert.ErrorIs(t, err, bcrypt.ErrInvalidArgument)

	_, err = bCrypt{}.Derive(4, nil, testSalt, KeySize)
	assert.ErrorIs(t, err, bcrypt.ErrInvalidArgument)
}

func TestPbkdf2sha256_Derive(t *testing.T) {
	derived, err := pbkdf2sha256{}.Derive(4, []byte("password"), testSalt, KeySize)
	require.NoError(t, err)
	assert.Equal(t, pbkdf2.Key([]byte("password"), testSalt, 4, KeySize, sha256.New), derived)
	assert.Len(t, derived, KeySize)

	_, err = pbkdf2sha256{}.Derive(0, []byte("password"), testSalt, KeySize)
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	for name := range KDFS {
		k, err := Lookup(name)
		require.NoError(t, err)
		assert.NotNil(t, k)
	}

	_, err := Lookup("argon2")
	assert.ErrorIs(t, err, ErrUnknownKDF)
}
