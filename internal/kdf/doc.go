// Package kdf implements the bcrypt-based password key-derivation
// function used to protect stored private keys.
//
// It is PBKDF2 with the bcrypt block hash in place of HMAC: the
// passphrase is pre-hashed with SHA-512, each output block is produced by
// a 64-times-expanded Blowfish schedule iterated over the requested round
// count, and the per-block bytes are interleaved non-linearly across the
// output. The interleave is deliberate: a consumer slicing the derived
// key into sub-keys cannot reconstruct any sub-key without computing the
// whole output, closing the naive-PBKDF2 sub-key extraction weakness.
//
// The function is stateless and safe for concurrent callers with
// independent buffers. Intermediate key material is zeroed before
// release on every path.
package kdf
