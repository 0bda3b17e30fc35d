package kex

import (
	"fmt"

	"kexd/internal/hostkey"
	"kexd/internal/wire"
)

// Server drives the responder side of the handshake. Start registers the
// handshake as waiting for the initiator; the transport layer feeds the
// init message to HandleInit when it arrives.
type Server struct {
	cfg Config
	key *hostkey.HostKey
	tr  Transport

	st  State
	ctx *context

	signature []byte
	sessionID []byte
}

// NewServer returns an idle server handshake signing with key.
func NewServer(cfg Config, key *hostkey.HostKey, tr Transport) *Server {
	return &Server{cfg: cfg, key: key, tr: tr, st: StateIdle}
}

// State reports the current handshake state.
func (s *Server) State() State { return s.st }

// HostKey returns the identity this handshake signs with.
func (s *Server) HostKey() *hostkey.HostKey { return s.key }

// HostKeyBlob returns the wire-format public key blob for the next
// negotiated identity.
func (s *Server) HostKeyBlob() []byte { return s.key.PublicBlob() }

// Start sets up the per-session context and waits for the initiator.
func (s *Server) Start() error {
	if s.st != StateIdle {
		return ErrBadState
	}
	ctx, err := newContext(s.cfg.Algorithm, s.cfg.Group)
	if err != nil {
		return s.fail(err)
	}
	s.ctx = ctx
	s.st = StateWaitingInit
	return nil
}

// HandleInit consumes the initiator's KEXDH_INIT: it validates the peer
// public value, generates the local ephemeral keypair, computes the
// shared secret, derives and signs the session identifier, then sends the
// variant-appropriate reply followed by NEWKEYS. Every failure destroys
// the secrets and lands in the error state; because payloads go out whole
// per Send, no partially-built reply can escape.
func (s *Server) HandleInit(payload []byte) error {
	if s.st != StateWaitingInit {
		return s.badState()
	}

	init, err := wire.ParseKexDHInit(payload)
	if err != nil {
		return s.fail(err)
	}
	if err := s.ctx.setPeerPublic(init.E); err != nil {
		return s.fail(err)
	}
	if err := s.ctx.generateKeypair(); err != nil {
		return s.fail(err)
	}
	if err := s.ctx.computeSharedSecret(); err != nil {
		return s.fail(err)
	}

	blob := s.key.PublicBlob()
	// Initiator's value is e in the hash, ours is f.
	s.sessionID = exchangeHash(s.cfg.Algorithm, s.cfg.Transcript,
		blob, s.ctx.grp, s.ctx.f, s.ctx.e, s.ctx.k)

	sig, err := s.key.Sign(s.sessionID)
	if err != nil {
		return s.fail(fmt.Errorf("kex: sign session id: %w", err))
	}
	s.signature = sig

	reply := wire.KexDHReply{
		Tag:         s.cfg.Algorithm.replyTag(),
		HostKeyBlob: blob,
		F:           s.ctx.e,
		Signature:   sig,
	}
	if err := s.tr.Send(reply.Marshal()); err != nil {
		return s.fail(fmt.Errorf("kex: send reply: %w", err))
	}
	if err := s.tr.Send(wire.MarshalNewKeys()); err != nil {
		return s.fail(fmt.Errorf("kex: send NEWKEYS: %w", err))
	}
	s.st = StateNewKeysSent
	return nil
}

// HandleNewKeys consumes the initiator's NEWKEYS marker and completes the
// handshake.
func (s *Server) HandleNewKeys(payload []byte) error {
	if s.st != StateNewKeysSent {
		return s.badState()
	}
	if err := wire.ParseNewKeys(payload); err != nil {
		return s.fail(err)
	}
	s.st = StateEstablished
	return nil
}

// Result returns the session key material once the shared secret and
// session identifier exist. The secret stays owned by the handshake;
// Close destroys it when the session has derived its keys.
func (s *Server) Result() (*Result, error) {
	if s.st != StateNewKeysSent && s.st != StateEstablished {
		return nil, ErrNotComplete
	}
	if s.ctx == nil || s.ctx.k == nil {
		return nil, ErrNotComplete
	}
	return &Result{
		SharedSecret: s.ctx.k,
		SessionID:    s.sessionID,
		HostKeyBlob:  s.key.PublicBlob(),
		Signature:    s.signature,
	}, nil
}

// Abort cancels the handshake: secrets are destroyed and the state
// machine lands in the absorbing error state.
func (s *Server) Abort() {
	s.ctx.destroy()
	s.ctx = nil
	if s.st != StateEstablished {
		s.st = StateError
	}
}

// Close destroys the secret material after the caller is done with
// Result. Safe to call in any state, any number of times.
func (s *Server) Close() {
	s.ctx.destroy()
	s.ctx = nil
}

func (s *Server) fail(err error) error {
	s.Abort()
	return err
}

// badState reports a message in the wrong state. A live handshake is
// poisoned by it; terminal states just reject it.
func (s *Server) badState() error {
	if s.st == StateEstablished || s.st == StateError {
		return ErrBadState
	}
	return s.fail(ErrBadState)
}
