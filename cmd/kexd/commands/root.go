package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"kexd/internal/group"
	"kexd/internal/keystore"
)

var (
	home       string
	passphrase string
	store      *keystore.FileStore
)

func Execute() error {
	root := &cobra.Command{
		Use:   "kexd",
		Short: "Diffie-Hellman key-exchange core utilities",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".kexd")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			store = keystore.NewFileStore(home)

			return group.Init()
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.kexd)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the host key")

	root.AddCommand(initCmd(), fingerprintCmd(), groupsCmd(), deriveCmd(), demoCmd())

	defer group.Finalize()
	return root.Execute()
}
