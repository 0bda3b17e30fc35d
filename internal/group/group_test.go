package group_test

import (
	"math/big"
	"os"
	"testing"

	"kexd/internal/group"
)

func TestMain(m *testing.M) {
	if err := group.Init(); err != nil {
		panic(err)
	}
	code := m.Run()
	group.Finalize()
	os.Exit(code)
}

func TestCanonicalGroups(t *testing.T) {
	cases := []struct {
		name string
		grp  *group.Group
		bits int
	}{
		{"group1", group.Group1(), 1024},
		{"group14", group.Group14(), 2048},
		{"group16", group.Group16(), 4096},
		{"group18", group.Group18(), 8192},
	}
	for _, c := range cases {
		if c.grp == nil {
			t.Fatalf("%s: nil after Init", c.name)
		}
		if got := c.grp.BitLen(); got != c.bits {
			t.Errorf("%s: bit length %d, want %d", c.name, got, c.bits)
		}
		if c.grp.G.Cmp(big.NewInt(2)) != 0 {
			t.Errorf("%s: generator %v, want 2", c.name, c.grp.G)
		}
	}
}

func TestLookupByStrengthTiers(t *testing.T) {
	cases := []struct {
		bits int
		want *group.Group
	}{
		{1024, group.Group14()},
		{2048, group.Group14()},
		{3071, group.Group14()},
		{3072, group.Group16()},
		{4096, group.Group16()},
		{6143, group.Group16()},
		{6144, group.Group18()},
		{8192, group.Group18()},
	}
	for _, c := range cases {
		if got := group.LookupByStrength(c.bits); got != c.want {
			t.Errorf("LookupByStrength(%d) = %d bits, want %d bits",
				c.bits, got.BitLen(), c.want.BitLen())
		}
	}
}

func TestFallbackGroupMonotonic(t *testing.T) {
	prev := 0
	for _, pmax := range []uint32{1024, 2048, 3072, 4096, 6144, 8192} {
		grp, err := group.FallbackGroup(pmax)
		if err != nil {
			t.Fatalf("FallbackGroup(%d): %v", pmax, err)
		}
		if grp.BitLen() < prev {
			t.Errorf("FallbackGroup(%d) = %d bits, smaller than previous %d bits",
				pmax, grp.BitLen(), prev)
		}
		prev = grp.BitLen()
	}
}

func TestFallbackGroupIsDeepCopy(t *testing.T) {
	grp, err := group.FallbackGroup(2048)
	if err != nil {
		t.Fatalf("FallbackGroup: %v", err)
	}
	if grp == group.Group14() || grp.P == group.Group14().P {
		t.Fatal("fallback group aliases the catalog")
	}

	grp.P.SetBit(grp.P, 0, 0)
	if group.Group14().P.Bit(0) != 1 {
		t.Fatal("mutating the fallback copy reached the canonical modulus")
	}
}

func TestIsKnownGroup(t *testing.T) {
	two := big.NewInt(2)
	for _, grp := range []*group.Group{group.Group14(), group.Group16(), group.Group18()} {
		if !group.IsKnownGroup(grp.P, two) {
			t.Errorf("canonical %d-bit group not recognized", grp.BitLen())
		}
	}

	// Wrong generator.
	if group.IsKnownGroup(group.Group14().P, big.NewInt(3)) {
		t.Error("accepted generator 3")
	}

	// Any single-bit mutation of a genuine modulus must be rejected.
	for _, bit := range []int{0, 1, 700, 2047} {
		p := new(big.Int).Set(group.Group14().P)
		p.SetBit(p, bit, p.Bit(bit)^1)
		if group.IsKnownGroup(p, two) {
			t.Errorf("accepted modulus with bit %d flipped", bit)
		}
	}

	// group1 sits in the group14 tier by bit length, so it must not pass.
	if group.IsKnownGroup(group.Group1().P, two) {
		t.Error("group1 modulus accepted against the group14 tier")
	}
}

func TestFinalizeAndReinit(t *testing.T) {
	defer func() {
		if err := group.Init(); err != nil {
			t.Fatalf("re-Init: %v", err)
		}
	}()

	// Idempotent while initialized.
	if err := group.Init(); err != nil {
		t.Fatalf("second Init: %v", err)
	}

	group.Finalize()
	group.Finalize() // safe when not initialized

	if group.Group14() != nil {
		t.Fatal("accessor non-nil after Finalize")
	}
	if _, err := group.FallbackGroup(2048); err != group.ErrNotInitialized {
		t.Fatalf("FallbackGroup after Finalize: %v, want ErrNotInitialized", err)
	}
	if group.IsKnownGroup(big.NewInt(7), big.NewInt(2)) {
		t.Fatal("IsKnownGroup true after Finalize")
	}
}
