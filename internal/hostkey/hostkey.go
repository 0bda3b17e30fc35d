package hostkey

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/ssh"
)

// HostKey is a server identity: a signing key plus its wire-format
// public blob.
type HostKey struct {
	raw    ed25519.PrivateKey
	signer ssh.Signer
}

// Generate creates a fresh Ed25519 host key.
func Generate() (*HostKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return FromEd25519(priv)
}

// FromEd25519 wraps an existing Ed25519 private key.
func FromEd25519(priv ed25519.PrivateKey) (*HostKey, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("hostkey: bad private key length %d", len(priv))
	}
	signer, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		return nil, err
	}
	return &HostKey{raw: priv, signer: signer}, nil
}

// Ed25519 exposes the raw private key for storage.
func (k *HostKey) Ed25519() ed25519.PrivateKey { return k.raw }

// PublicBlob returns the wire-format public key blob sent to peers.
func (k *HostKey) PublicBlob() []byte {
	return k.signer.PublicKey().Marshal()
}

// Sign signs the session identifier, returning a wire-format signature
// blob.
func (k *HostKey) Sign(sessionID []byte) ([]byte, error) {
	sig, err := k.signer.Sign(rand.Reader, sessionID)
	if err != nil {
		return nil, err
	}
	return ssh.Marshal(sig), nil
}

// Fingerprint returns the SHA256 fingerprint of the public key.
func (k *HostKey) Fingerprint() string {
	return ssh.FingerprintSHA256(k.signer.PublicKey())
}

// Verify checks a signature blob over sessionID against a public key
// blob, as a client would after the handshake.
func Verify(pubBlob, sessionID, sigBlob []byte) error {
	pub, err := ssh.ParsePublicKey(pubBlob)
	if err != nil {
		return fmt.Errorf("hostkey: parse public blob: %w", err)
	}
	var sig ssh.Signature
	if err := ssh.Unmarshal(sigBlob, &sig); err != nil {
		return fmt.Errorf("hostkey: parse signature blob: %w", err)
	}
	return pub.Verify(sessionID, &sig)
}

// Fingerprint returns the SHA256 fingerprint of a public key blob.
func Fingerprint(pubBlob []byte) (string, error) {
	pub, err := ssh.ParsePublicKey(pubBlob)
	if err != nil {
		return "", fmt.Errorf("hostkey: parse public blob: %w", err)
	}
	return ssh.FingerprintSHA256(pub), nil
}
