// Package kex implements the Diffie-Hellman key-exchange handshake for
// both sides of a session.
//
// # Flows
//
// Client:
//  1. Start: select group, generate ephemeral keypair, send KEXDH_INIT.
//  2. HandleReply: import host key blob, validate peer value, compute
//     shared secret and session identifier, send NEWKEYS.
//  3. HandleNewKeys: handshake established.
//
// Server:
//  1. Start: select group, wait for the initiator.
//  2. HandleInit: validate peer value, generate keypair, compute shared
//     secret, derive and sign the session identifier, send the reply
//     (KEXDH_REPLY, or KEX_DH_GEX_REPLY for group-exchange variants) and
//     NEWKEYS.
//  3. HandleNewKeys: handshake established.
//
// Each handshake is strictly sequential; the only suspension points are
// the transport's Send calls and the waits between Handle* invocations,
// which the embedding session performs. Handshakes share no mutable
// state with each other.
//
// # Errors and secret hygiene
//
// Any parse, policy, computation, signing, or send failure moves the
// state machine to the absorbing error state and destroys the private
// exponent and shared secret. There are no internal retries: a failed
// handshake is replaced by a fresh Client or Server. On success the
// secret lives until Close, giving the session time to derive its keys
// from Result.
//
// # Authentication
//
// The client imports the server's host key blob and exposes it with the
// signature through Result; checking that signature (hostkey.Verify) and
// deciding whether to trust the key are the caller's responsibility.
package kex
