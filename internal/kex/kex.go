package kex

import (
	"errors"
	"math/big"

	"kexd/internal/group"
)

var (
	// ErrBadState is returned when an entry point is invoked outside
	// the one state that accepts it. State transitions are one-way.
	ErrBadState = errors.New("kex: operation not valid in current handshake state")
	// ErrPeerValueRange is returned for an ephemeral public value
	// outside (1, p-1).
	ErrPeerValueRange = errors.New("kex: peer public value out of range")
	// ErrNoGroup is returned when a group-exchange variant starts
	// without a negotiated group.
	ErrNoGroup = errors.New("kex: no group negotiated")
	// ErrNotComplete is returned by Result before the shared secret and
	// session identifier exist.
	ErrNotComplete = errors.New("kex: handshake not complete")
)

// Transport delivers one completed outbound payload to the peer. Sending
// implies flushing; the handshake never buffers partial messages across
// calls, so an aborted handshake has nothing half-sent to reset.
type Transport interface {
	Send(payload []byte) error
}

// Config selects the key-exchange variant and supplies the handshake
// transcript the session identifier binds.
type Config struct {
	Algorithm  Algorithm
	Transcript Transcript
	// Group carries the negotiated modulus/generator for group-exchange
	// variants. Fixed-group variants ignore it. See group.FallbackGroup
	// and group.IsKnownGroup for how a server picks and a client vets
	// one.
	Group *group.Group
}

// Result is the session key material a completed handshake hands back.
// Verifying Signature against HostKeyBlob and SessionID is the caller's
// responsibility (see hostkey.Verify); the handshake only transports the
// material.
type Result struct {
	SharedSecret *big.Int
	SessionID    []byte
	HostKeyBlob  []byte
	Signature    []byte
}
