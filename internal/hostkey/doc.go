// Package hostkey binds the handshake to a server identity.
//
// It wraps golang.org/x/crypto/ssh so the key-exchange core only deals in
// opaque blobs: exporting the public key in wire format, signing the
// session identifier on the server, and verifying that signature against
// the advertised blob on the client. Fingerprints are SHA256 strings for
// display.
package hostkey
