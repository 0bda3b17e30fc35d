package kex

import (
	"fmt"

	"kexd/internal/wire"
)

// Client drives the initiator side of the handshake. The transport layer
// calls Start once, then feeds inbound payloads to HandleReply and
// HandleNewKeys as they arrive; the client never blocks waiting for a
// message itself.
type Client struct {
	cfg Config
	tr  Transport

	st  State
	ctx *context

	hostKeyBlob []byte
	signature   []byte
	sessionID   []byte
}

// NewClient returns an idle client handshake.
func NewClient(cfg Config, tr Transport) *Client {
	return &Client{cfg: cfg, tr: tr, st: StateIdle}
}

// State reports the current handshake state.
func (c *Client) State() State { return c.st }

// Start generates the ephemeral keypair and sends KEXDH_INIT. Any failure
// destroys the context and moves the handshake to the error state.
func (c *Client) Start() error {
	if c.st != StateIdle {
		return ErrBadState
	}

	ctx, err := newContext(c.cfg.Algorithm, c.cfg.Group)
	if err != nil {
		return c.fail(err)
	}
	c.ctx = ctx

	if err := c.ctx.generateKeypair(); err != nil {
		return c.fail(err)
	}

	init := wire.KexDHInit{E: c.ctx.e}
	c.st = StateInitSent
	if err := c.tr.Send(init.Marshal()); err != nil {
		return c.fail(fmt.Errorf("kex: send KEXDH_INIT: %w", err))
	}
	return nil
}

// HandleReply consumes the responder's reply: it imports the host key
// blob as the candidate server identity, validates the peer public value,
// computes the shared secret and session identifier, and sends NEWKEYS.
// Verifying the signature is the caller's job once Result is available.
func (c *Client) HandleReply(payload []byte) error {
	if c.st != StateInitSent {
		return c.badState()
	}

	reply, err := wire.ParseKexDHReply(payload)
	if err != nil {
		return c.fail(err)
	}
	c.hostKeyBlob = reply.HostKeyBlob
	c.signature = reply.Signature

	if err := c.ctx.setPeerPublic(reply.F); err != nil {
		return c.fail(err)
	}
	if err := c.ctx.computeSharedSecret(); err != nil {
		return c.fail(err)
	}

	c.sessionID = exchangeHash(c.cfg.Algorithm, c.cfg.Transcript,
		c.hostKeyBlob, c.ctx.grp, c.ctx.e, c.ctx.f, c.ctx.k)

	if err := c.tr.Send(wire.MarshalNewKeys()); err != nil {
		return c.fail(fmt.Errorf("kex: send NEWKEYS: %w", err))
	}
	c.st = StateNewKeysSent
	return nil
}

// HandleNewKeys consumes the responder's NEWKEYS marker and completes the
// handshake.
func (c *Client) HandleNewKeys(payload []byte) error {
	if c.st != StateNewKeysSent {
		return c.badState()
	}
	if err := wire.ParseNewKeys(payload); err != nil {
		return c.fail(err)
	}
	c.st = StateEstablished
	return nil
}

// Result returns the session key material once the shared secret and
// session identifier exist. The secret stays owned by the handshake;
// Close destroys it when the session has derived its keys.
func (c *Client) Result() (*Result, error) {
	if c.st != StateNewKeysSent && c.st != StateEstablished {
		return nil, ErrNotComplete
	}
	if c.ctx == nil || c.ctx.k == nil {
		return nil, ErrNotComplete
	}
	return &Result{
		SharedSecret: c.ctx.k,
		SessionID:    c.sessionID,
		HostKeyBlob:  c.hostKeyBlob,
		Signature:    c.signature,
	}, nil
}

// Abort cancels the handshake: secrets are destroyed and the state
// machine lands in the absorbing error state. A cancelled handshake is
// restarted from a fresh Client.
func (c *Client) Abort() {
	c.ctx.destroy()
	c.ctx = nil
	if c.st != StateEstablished {
		c.st = StateError
	}
}

// Close destroys the secret material after the caller is done with
// Result. Safe to call in any state, any number of times.
func (c *Client) Close() {
	c.ctx.destroy()
	c.ctx = nil
}

func (c *Client) fail(err error) error {
	c.Abort()
	return err
}

// badState reports a message in the wrong state. A live handshake is
// poisoned by it; terminal states just reject it.
func (c *Client) badState() error {
	if c.st == StateEstablished || c.st == StateError {
		return ErrBadState
	}
	return c.fail(ErrBadState)
}
