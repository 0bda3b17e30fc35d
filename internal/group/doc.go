// Package group holds the fixed Diffie-Hellman groups and the policy that
// keeps peers inside them.
//
// The catalog is process-wide state: Init builds the four canonical
// safe-prime groups (1024/2048/4096/8192 bit, generator 2) once, Finalize
// tears them down. The embedding application serializes that lifecycle;
// everything in between is read-only and may be used from any number of
// concurrent handshakes.
//
// Policy entry points:
//
//   - IsKnownGroup rejects any modulus/generator pair that is not exactly
//     one of the canonical groups at its size tier (anti-downgrade check
//     for strict-group configurations).
//   - FallbackGroup hands out a deep copy of a canonical group when
//     group-exchange is negotiated without an external moduli source.
//
// The size tiers (below 3072 bits -> 2048-bit group, below 6144 ->
// 4096-bit, otherwise 8192-bit) are deployed wire behavior and must not be
// "corrected" to match the groups' actual bit lengths.
package group
