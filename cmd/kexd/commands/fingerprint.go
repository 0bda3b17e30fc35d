package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the stored host key fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := store.LoadHostKey(passphrase)
			if err != nil {
				return err
			}
			fmt.Printf("Fingerprint: %s\n", key.Fingerprint())
			return nil
		},
	}
}
