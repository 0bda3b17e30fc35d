package wire

import (
	"fmt"
	"math/big"
)

// Handshake message tags.
const (
	MsgNewKeys       = 21
	MsgKexDHInit     = 30
	MsgKexDHReply    = 31
	MsgKexDHGexReply = 33
)

// KexDHInit carries the initiator's ephemeral public value.
type KexDHInit struct {
	E *big.Int
}

func (m *KexDHInit) Marshal() []byte {
	var b Buffer
	b.PutByte(MsgKexDHInit)
	b.PutMPInt(m.E)
	return b.Bytes()
}

func ParseKexDHInit(payload []byte) (*KexDHInit, error) {
	b := NewBuffer(payload)
	tag, err := b.Byte()
	if err != nil {
		return nil, err
	}
	if tag != MsgKexDHInit {
		return nil, fmt.Errorf("wire: unexpected tag %d for KEXDH_INIT", tag)
	}
	e, err := b.MPInt()
	if err != nil {
		return nil, fmt.Errorf("wire: KEXDH_INIT: %w", err)
	}
	if b.Remaining() != 0 {
		return nil, ErrTrailingData
	}
	return &KexDHInit{E: e}, nil
}

// KexDHReply carries the responder's host key blob, ephemeral public
// value, and signature over the session identifier. Plain DH and
// group-exchange use different tags for the same payload shape.
type KexDHReply struct {
	Tag         byte
	HostKeyBlob []byte
	F           *big.Int
	Signature   []byte
}

func (m *KexDHReply) Marshal() []byte {
	var b Buffer
	b.PutByte(m.Tag)
	b.PutString(m.HostKeyBlob)
	b.PutMPInt(m.F)
	b.PutString(m.Signature)
	return b.Bytes()
}

func ParseKexDHReply(payload []byte) (*KexDHReply, error) {
	b := NewBuffer(payload)
	tag, err := b.Byte()
	if err != nil {
		return nil, err
	}
	if tag != MsgKexDHReply && tag != MsgKexDHGexReply {
		return nil, fmt.Errorf("wire: unexpected tag %d for KEXDH_REPLY", tag)
	}
	blob, err := b.String()
	if err != nil {
		return nil, fmt.Errorf("wire: KEXDH_REPLY host key: %w", err)
	}
	f, err := b.MPInt()
	if err != nil {
		return nil, fmt.Errorf("wire: KEXDH_REPLY public value: %w", err)
	}
	sig, err := b.String()
	if err != nil {
		return nil, fmt.Errorf("wire: KEXDH_REPLY signature: %w", err)
	}
	if b.Remaining() != 0 {
		return nil, ErrTrailingData
	}
	return &KexDHReply{Tag: tag, HostKeyBlob: blob, F: f, Signature: sig}, nil
}

// MarshalNewKeys returns the zero-payload NEWKEYS marker.
func MarshalNewKeys() []byte {
	return []byte{MsgNewKeys}
}

func ParseNewKeys(payload []byte) error {
	b := NewBuffer(payload)
	tag, err := b.Byte()
	if err != nil {
		return err
	}
	if tag != MsgNewKeys {
		return fmt.Errorf("wire: unexpected tag %d for NEWKEYS", tag)
	}
	if b.Remaining() != 0 {
		return ErrTrailingData
	}
	return nil
}
