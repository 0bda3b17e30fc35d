package group

import (
	"errors"
	"fmt"
	"math/big"

	"kexd/internal/util/memzero"
)

// Safe-prime moduli for the canonical groups: RFC 2409 Oakley group 2
// (1024 bit) and RFC 3526 groups 14/16/18 (2048/4096/8192 bit). The
// generator is 2 for all of them.

var group1Hex = "FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74" +
	"020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437" +
	"4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED" +
	"EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE65381FFFFFFFFFFFFFFFF"

var group14Hex = "FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74" +
	"020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437" +
	"4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED" +
	"EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF05" +
	"98DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB" +
	"9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B" +
	"E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF695581718" +
	"3995497CEA956AE515D2261898FA051015728E5A8AACAA68FFFFFFFFFFFFFFFF"

var group16Hex = "FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74" +
	"020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437" +
	"4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED" +
	"EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF05" +
	"98DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB" +
	"9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B" +
	"E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF695581718" +
	"3995497CEA956AE515D2261898FA051015728E5A8AAAC42DAD33170D04507A33" +
	"A85521ABDF1CBA64ECFB850458DBEF0A8AEA71575D060C7DB3970F85A6E1E4C7" +
	"ABF5AE8CDB0933D71E8C94E04A25619DCEE3D2261AD2EE6BF12FFA06D98A0864" +
	"D87602733EC86A64521F2B18177B200CBBE117577A615D6C770988C0BAD946E2" +
	"08E24FA074E5AB3143DB5BFCE0FD108E4B82D120A92108011A723C12A787E6D7" +
	"88719A10BDBA5B2699C327186AF4E23C1A946834B6150BDA2583E9CA2AD44CE8" +
	"DBBBC2DB04DE8EF92E8EFC141FBECAA6287C59474E6BC05D99B2964FA090C3A2" +
	"233BA186515BE7ED1F612970CEE2D7AFB81BDD762170481CD0069127D5B05AA9" +
	"93B4EA988D8FDDC186FFB7DC90A6C08F4DF435C934063199FFFFFFFFFFFFFFFF"

var group18Hex = "FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74" +
	"020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437" +
	"4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED" +
	"EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF05" +
	"98DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB" +
	"9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B" +
	"E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF695581718" +
	"3995497CEA956AE515D2261898FA051015728E5A8AAAC42DAD33170D04507A33" +
	"A85521ABDF1CBA64ECFB850458DBEF0A8AEA71575D060C7DB3970F85A6E1E4C7" +
	"ABF5AE8CDB0933D71E8C94E04A25619DCEE3D2261AD2EE6BF12FFA06D98A0864" +
	"D87602733EC86A64521F2B18177B200CBBE117577A615D6C770988C0BAD946E2" +
	"08E24FA074E5AB3143DB5BFCE0FD108E4B82D120A92108011A723C12A787E6D7" +
	"88719A10BDBA5B2699C327186AF4E23C1A946834B6150BDA2583E9CA2AD44CE8" +
	"DBBBC2DB04DE8EF92E8EFC141FBECAA6287C59474E6BC05D99B2964FA090C3A2" +
	"233BA186515BE7ED1F612970CEE2D7AFB81BDD762170481CD0069127D5B05AA9" +
	"93B4EA988D8FDDC186FFB7DC90A6C08F4DF435C93402849236C3FAB4D27C7026" +
	"C1D4DCB2602646DEC9751E763DBA37BDF8FF9406AD9E530EE5DB382F413001AE" +
	"B06A53ED9027D831179727B0865A8918DA3EDBEBCF9B14ED44CE6CBACED4BB1B" +
	"DB7F1447E6CC254B332051512BD7AF426FB8F401378CD2BF5983CA01C64B92EC" +
	"F032EA15D1721D03F482D7CE6E74FEF6D55E702F46980C82B5A84031900B1C9E" +
	"59E7C97FBEC7E8F323A97A7E36CC88BE0F1D45B7FF585AC54BD407B22B4154AA" +
	"CC8F6D7EBF48E1D814CC5ED20F8037E0A79715EEF29BE32806A1D58BB7C5DA76" +
	"F550AA3D8A1FBFF0EB19CCB1A313D55CDA56C9EC2EF29632387FE8D76E3C0468" +
	"043E8F663F4860EE12BF2D5B0B7474D6E694F91E6DBE115974A3926F12FEE5E4" +
	"38777CB6A932DF8CD8BEC4D073B931BA3BC832B68D9DD300741FA7BF8AFC47ED" +
	"2576F6936BA424663AAB639C5AE4F5683423B4742BF1C978238F16CBE39D652D" +
	"E3FDB8BEFC848AD922222E04A4037C0713EB57A81A23F0C73473FC646CEA306B" +
	"4BCBC8862F8385DDFA9D4B7FA2C087E879683303ED5BDD3A062B3CF5B3A278A6" +
	"6D2A13F83F44F82DDF310EE074AB6A364597E899A0255DC164F31CC50846851D" +
	"F9AB48195DED7EA1B1D510BD7EE74D73FAF36BC31ECFA268359046F4EB879F92" +
	"4009438B481C6CD7889A002ED5EE382BC9190DA6FC026E479558E4475677E9AA" +
	"9E3050E2765694DFC81F56E880B96E7160C980DD98EDD3DFFFFFFFFFFFFFFFFF"

// generatorValue is fixed by the protocol.
const generatorValue = 2

// ErrNotInitialized is returned when a catalog operation runs before Init.
var ErrNotInitialized = errors.New("group: catalog not initialized")

var catalog struct {
	initialized bool
	generator   *big.Int
	group1      *Group
	group14     *Group
	group16     *Group
	group18     *Group
}

// Init builds the canonical groups and the shared generator. It is
// idempotent; a second call is a no-op. On failure everything already
// built is released and an error is returned. Callers serialize Init and
// Finalize; the built groups themselves are read-only and safe for
// concurrent use.
func Init() error {
	if catalog.initialized {
		return nil
	}

	catalog.generator = big.NewInt(generatorValue)

	for _, c := range []struct {
		hex  string
		bits int
		dst  **Group
	}{
		{group1Hex, 1024, &catalog.group1},
		{group14Hex, 2048, &catalog.group14},
		{group16Hex, 4096, &catalog.group16},
		{group18Hex, 8192, &catalog.group18},
	} {
		p, ok := new(big.Int).SetString(c.hex, 16)
		if !ok || p.BitLen() != c.bits {
			Finalize()
			return fmt.Errorf("group: bad %d-bit modulus constant", c.bits)
		}
		*c.dst = &Group{P: p, G: catalog.generator}
	}

	catalog.initialized = true
	return nil
}

// Finalize releases the canonical groups. Safe to call when the catalog
// was never initialized, or from a failed Init.
func Finalize() {
	for _, g := range []*Group{catalog.group1, catalog.group14, catalog.group16, catalog.group18} {
		if g != nil {
			memzero.ZeroWords(g.P)
		}
	}
	catalog.generator = nil
	catalog.group1 = nil
	catalog.group14 = nil
	catalog.group16 = nil
	catalog.group18 = nil
	catalog.initialized = false
}

// Group1 returns the canonical 1024-bit group, or nil before Init.
func Group1() *Group { return catalog.group1 }

// Group14 returns the canonical 2048-bit group, or nil before Init.
func Group14() *Group { return catalog.group14 }

// Group16 returns the canonical 4096-bit group, or nil before Init.
func Group16() *Group { return catalog.group16 }

// Group18 returns the canonical 8192-bit group, or nil before Init.
func Group18() *Group { return catalog.group18 }

// LookupByStrength returns the weakest canonical group considered strong
// enough for the requested modulus size, or nil before Init. The tier
// boundaries are the deployed protocol values and deliberately do not
// line up with the groups' actual bit lengths; interoperability depends
// on keeping them.
func LookupByStrength(bits int) *Group {
	switch {
	case bits < 3072:
		return catalog.group14
	case bits < 6144:
		return catalog.group16
	default:
		return catalog.group18
	}
}
