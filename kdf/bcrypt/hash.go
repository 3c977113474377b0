package bcrypt

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blowfish"
)

const (
	// HashSize is the size of a single bcrypt hash block in bytes.
	HashSize = 32

	// Magic is the plaintext encrypted by the expanded Blowfish state.
	Magic = "OxychromaticBlowfishSwatDynamite"

	expandRounds  = 64
	encryptRounds = 64
)

// bcryptHash is the expensive primitive: an Eksblowfish key schedule keyed by
// hpass and hsalt, followed by repeated encryption of Magic.
func bcryptHash(out *[HashSize]byte, hpass, hsalt *[digestSize]byte) error {
	c, err := blowfish.NewSaltedCipher(hpass[:], hsalt[:])
	if err != nil {
		return fmt.Errorf("%w: blowfish: %v", ErrInternal, err)
	}
	defer func() { *c = blowfish.Cipher{} }()

	for i := 0; i < expandRounds; i++ {
		blowfish.ExpandKey(hsalt[:], c)
		blowfish.ExpandKey(hpass[:], c)
	}

	var words [HashSize / 4]uint32
	for i := range words {
		words[i] = binary.BigEndian.Uint32([]byte(Magic[4*i : 4*i+4]))
	}

	var block [blowfish.BlockSize]byte
	for i := 0; i < len(words); i += 2 {
		binary.BigEndian.PutUint32(block[:4], words[i])
		binary.BigEndian.PutUint32(block[4:], words[i+1])
		for j := 0; j < encryptRounds; j++ {
			c.Encrypt(block[:], block[:])
		}
		words[i] = binary.BigEndian.Uint32(block[:4])
		words[i+1] = binary.BigEndian.Uint32(block[4:])
	}

	// The magic words go in big-endian but come out little-endian.
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[4*i:], w)
	}

	clear(words[:])
	clear(block[:])
	return nil
}
