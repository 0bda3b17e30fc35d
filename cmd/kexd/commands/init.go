package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"kexd/internal/hostkey"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a host key and store it securely",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			if store.HasHostKey() {
				return fmt.Errorf("host key already exists in %s", home)
			}
			key, err := hostkey.Generate()
			if err != nil {
				return err
			}
			if err := store.SaveHostKey(passphrase, key); err != nil {
				return err
			}
			fmt.Printf("Host key created.\nFingerprint: %s\n", key.Fingerprint())
			return nil
		},
	}
}
