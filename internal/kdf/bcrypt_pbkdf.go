package kdf

import (
	"crypto/sha512"
	"encoding/binary"
	"errors"

	"golang.org/x/crypto/blowfish"

	"kexd/internal/util/memzero"
)

const (
	// blockSize is the output of one bcrypt block hash: eight 32-bit
	// words.
	blockSize = 32
	// maxKeyLen bounds the requested output.
	maxKeyLen = 64 * blockSize
	// maxSaltLen bounds the salt.
	maxSaltLen = 1 << 20
)

// magic is the string the expanded Blowfish schedule encrypts; it fills
// exactly one block.
const magic = "OxychromaticBlowfishSwatDynamite"

var (
	ErrRounds          = errors.New("kdf: round count must be at least 1")
	ErrEmptyPassphrase = errors.New("kdf: empty passphrase")
	ErrEmptySalt       = errors.New("kdf: empty salt")
	ErrSaltTooLong     = errors.New("kdf: salt exceeds 1 MiB")
	ErrBadKeyLength    = errors.New("kdf: requested key length out of range")
)

// Key stretches passphrase into keyLen bytes of key material. It is a
// pure function: identical inputs always yield identical output, and no
// partial output is ever produced on error.
func Key(passphrase, salt []byte, rounds uint32, keyLen int) ([]byte, error) {
	if rounds < 1 {
		return nil, ErrRounds
	}
	if len(passphrase) == 0 {
		return nil, ErrEmptyPassphrase
	}
	if len(salt) == 0 {
		return nil, ErrEmptySalt
	}
	if len(salt) > maxSaltLen {
		return nil, ErrSaltTooLong
	}
	if keyLen <= 0 || keyLen > maxKeyLen {
		return nil, ErrBadKeyLength
	}

	stride := (keyLen + blockSize - 1) / blockSize
	amt := (keyLen + stride - 1) / stride

	shapass := sha512.Sum512(passphrase)
	defer memzero.Zero(shapass[:])

	countSalt := make([]byte, len(salt)+4)
	copy(countSalt, salt)

	key := make([]byte, keyLen)
	var out, tmp [blockSize]byte
	defer memzero.Zero(out[:])
	defer memzero.Zero(tmp[:])

	remaining := keyLen
	for count := uint32(1); remaining > 0; count++ {
		binary.BigEndian.PutUint32(countSalt[len(salt):], count)

		// First round salts with the counter-suffixed input salt;
		// later rounds re-salt with the previous raw output.
		shasalt := sha512.Sum512(countSalt)
		bcryptHash(tmp[:], shapass[:], shasalt[:])
		copy(out[:], tmp[:])

		for i := uint32(1); i < rounds; i++ {
			shasalt = sha512.Sum512(tmp[:])
			bcryptHash(tmp[:], shapass[:], shasalt[:])
			for j := range out {
				out[j] ^= tmp[j]
			}
		}
		memzero.Zero(shasalt[:])

		// Non-linear interleave: byte i of block count lands at
		// i*stride + (count-1). Slicing the output into sub-keys then
		// requires computing all of it.
		n := amt
		if n > remaining {
			n = remaining
		}
		written := 0
		for i := 0; i < n; i++ {
			dest := i*stride + int(count-1)
			if dest >= keyLen {
				break
			}
			key[dest] = out[i]
			written++
		}
		remaining -= written
	}

	return key, nil
}

// bcryptHash runs the bcrypt-derived block hash: a Blowfish state
// expanded 64 times over the hashed passphrase and salt, encrypting the
// magic block 64 times, assembled little-endian.
func bcryptHash(out, shapass, shasalt []byte) {
	c, err := blowfish.NewSaltedCipher(shapass, shasalt)
	if err != nil {
		// Key and salt lengths are fixed at 64 bytes here.
		panic(err)
	}
	for i := 0; i < 64; i++ {
		blowfish.ExpandKey(shasalt, c)
		blowfish.ExpandKey(shapass, c)
	}

	copy(out, magic)
	for i := 0; i < blockSize; i += 8 {
		for j := 0; j < 64; j++ {
			c.Encrypt(out[i:i+8], out[i:i+8])
		}
	}

	// The cipher operates on big-endian words; output bytes are
	// assembled little-endian.
	for i := 0; i < blockSize; i += 4 {
		out[i], out[i+1], out[i+2], out[i+3] = out[i+3], out[i+2], out[i+1], out[i]
	}
}
