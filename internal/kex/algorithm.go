package kex

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"kexd/internal/group"
	"kexd/internal/wire"
)

// Algorithm identifies a negotiated key-exchange variant. Fixed-group
// variants pin one of the canonical groups; group-exchange variants use
// whatever group the session negotiated.
type Algorithm int

const (
	DHGroup1SHA1 Algorithm = iota
	DHGroup14SHA1
	DHGroup14SHA256
	DHGroup16SHA512
	DHGroup18SHA512
	DHGEXSHA1
	DHGEXSHA256
)

var algorithmNames = map[Algorithm]string{
	DHGroup1SHA1:    "diffie-hellman-group1-sha1",
	DHGroup14SHA1:   "diffie-hellman-group14-sha1",
	DHGroup14SHA256: "diffie-hellman-group14-sha256",
	DHGroup16SHA512: "diffie-hellman-group16-sha512",
	DHGroup18SHA512: "diffie-hellman-group18-sha512",
	DHGEXSHA1:       "diffie-hellman-group-exchange-sha1",
	DHGEXSHA256:     "diffie-hellman-group-exchange-sha256",
}

func (a Algorithm) String() string {
	if s, ok := algorithmNames[a]; ok {
		return s
	}
	return "unknown"
}

// AlgorithmByName resolves a negotiated algorithm name, reporting false
// for names this core does not implement.
func AlgorithmByName(name string) (Algorithm, bool) {
	for a, s := range algorithmNames {
		if s == name {
			return a, true
		}
	}
	return 0, false
}

// GroupExchange reports whether the variant negotiates its group at
// runtime.
func (a Algorithm) GroupExchange() bool {
	return a == DHGEXSHA1 || a == DHGEXSHA256
}

// newDigest returns the session-identifier digest for the variant.
func (a Algorithm) newDigest() hash.Hash {
	switch a {
	case DHGroup1SHA1, DHGroup14SHA1, DHGEXSHA1:
		return sha1.New()
	case DHGroup14SHA256, DHGEXSHA256:
		return sha256.New()
	default:
		return sha512.New()
	}
}

// fixedGroup returns the canonical group for a fixed-group variant, or
// nil for group-exchange variants and before group.Init.
func (a Algorithm) fixedGroup() *group.Group {
	switch a {
	case DHGroup1SHA1:
		return group.Group1()
	case DHGroup14SHA1, DHGroup14SHA256:
		return group.Group14()
	case DHGroup16SHA512:
		return group.Group16()
	case DHGroup18SHA512:
		return group.Group18()
	default:
		return nil
	}
}

// replyTag selects the responder's reply message tag; plain DH and
// group-exchange share the payload shape but not the tag.
func (a Algorithm) replyTag() byte {
	if a.GroupExchange() {
		return wire.MsgKexDHGexReply
	}
	return wire.MsgKexDHReply
}
