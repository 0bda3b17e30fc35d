// Package wire encodes and decodes the key-exchange handshake messages.
//
// The encoding is the protocol's canonical one: big-endian uint32 length
// prefixes for byte strings and minimal two's-complement mpints for big
// integers. Buffer gives typed pack/unpack; the message types pair a tag
// with Marshal/Parse functions. Any truncated, malformed, or
// trailing-garbage payload is a parse error, which the handshake treats
// as fatal.
package wire
