package commands

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/spf13/cobra"

	"kexd/internal/group"
)

func groupsCmd() *cobra.Command {
	var check string

	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List canonical groups or check one against the policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if check != "" {
				return runGroupCheck(check)
			}
			for _, g := range []struct {
				name string
				grp  *group.Group
			}{
				{"group1", group.Group1()},
				{"group14", group.Group14()},
				{"group16", group.Group16()},
				{"group18", group.Group18()},
			} {
				fmt.Printf("%-8s %5d bits  generator %v\n", g.name, g.grp.BitLen(), g.grp.G)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&check, "check", "", "hex modulus, optionally :generator, to test against the known-group policy")
	return cmd
}

func runGroupCheck(check string) error {
	pHex, gDec, _ := strings.Cut(check, ":")
	p, ok := new(big.Int).SetString(pHex, 16)
	if !ok {
		return fmt.Errorf("bad hex modulus")
	}
	g := big.NewInt(2)
	if gDec != "" {
		if _, ok := g.SetString(gDec, 10); !ok {
			return fmt.Errorf("bad generator")
		}
	}
	if group.IsKnownGroup(p, g) {
		fmt.Printf("known group (%d bits)\n", p.BitLen())
		return nil
	}
	return fmt.Errorf("not a known group (%d bits)", p.BitLen())
}
