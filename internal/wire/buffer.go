package wire

import (
	"encoding/binary"
	"errors"
	"math/big"
)

var (
	// ErrShortMessage is returned when a field extends past the end of
	// the message.
	ErrShortMessage = errors.New("wire: message truncated")
	// ErrNegativeMPInt is returned for mpints with the sign bit set;
	// nothing in the key exchange is negative.
	ErrNegativeMPInt = errors.New("wire: negative mpint")
	// ErrTrailingData is returned when a message carries bytes past its
	// last field.
	ErrTrailingData = errors.New("wire: trailing bytes after message")
)

// Buffer packs and unpacks the wire encoding: single bytes, big-endian
// uint32s, uint32-length-prefixed byte strings, and mpints (minimal
// two's-complement magnitude with a leading zero byte when the high bit
// of the magnitude is set).
//
// The zero value is an empty buffer ready for packing. Unpacking reads
// from the front; packing appends to the back.
type Buffer struct {
	buf []byte
	off int
}

// NewBuffer wraps payload for unpacking.
func NewBuffer(payload []byte) *Buffer {
	return &Buffer{buf: payload}
}

// Bytes returns the packed contents.
func (b *Buffer) Bytes() []byte { return b.buf[b.off:] }

// Remaining reports how many bytes are left to unpack.
func (b *Buffer) Remaining() int { return len(b.buf) - b.off }

func (b *Buffer) PutByte(v byte) {
	b.buf = append(b.buf, v)
}

func (b *Buffer) PutUint32(v uint32) {
	b.buf = binary.BigEndian.AppendUint32(b.buf, v)
}

func (b *Buffer) PutString(v []byte) {
	b.PutUint32(uint32(len(v)))
	b.buf = append(b.buf, v...)
}

// PutMPInt appends v as an mpint. v must not be negative; zero encodes as
// the empty string.
func (b *Buffer) PutMPInt(v *big.Int) {
	if v.Sign() == 0 {
		b.PutUint32(0)
		return
	}
	mag := v.Bytes()
	if mag[0]&0x80 != 0 {
		b.PutUint32(uint32(len(mag) + 1))
		b.buf = append(b.buf, 0)
		b.buf = append(b.buf, mag...)
		return
	}
	b.PutString(mag)
}

func (b *Buffer) Byte() (byte, error) {
	if b.Remaining() < 1 {
		return 0, ErrShortMessage
	}
	v := b.buf[b.off]
	b.off++
	return v, nil
}

func (b *Buffer) Uint32() (uint32, error) {
	if b.Remaining() < 4 {
		return 0, ErrShortMessage
	}
	v := binary.BigEndian.Uint32(b.buf[b.off:])
	b.off += 4
	return v, nil
}

func (b *Buffer) String() ([]byte, error) {
	n, err := b.Uint32()
	if err != nil {
		return nil, err
	}
	if uint32(b.Remaining()) < n {
		return nil, ErrShortMessage
	}
	v := append([]byte(nil), b.buf[b.off:b.off+int(n)]...)
	b.off += int(n)
	return v, nil
}

func (b *Buffer) MPInt() (*big.Int, error) {
	mag, err := b.String()
	if err != nil {
		return nil, err
	}
	if len(mag) > 0 && mag[0]&0x80 != 0 {
		return nil, ErrNegativeMPInt
	}
	return new(big.Int).SetBytes(mag), nil
}
