// Package keystore persists the host key, sealed under a passphrase.
//
// The private key is encrypted with chacha20poly1305 under a key
// stretched by the bcrypt KDF, wrapped in a small versioned JSON blob
// alongside the salt and round count. A wrong passphrase and a tampered
// blob are indistinguishable and both surface as ErrWrongPassphrase.
package keystore
