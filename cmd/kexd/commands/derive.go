package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"kexd/internal/kdf"
)

func deriveCmd() *cobra.Command {
	var (
		saltHex string
		rounds  uint32
		length  int
	)

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Stretch the passphrase into key material with the bcrypt KDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			salt, err := hex.DecodeString(saltHex)
			if err != nil {
				return fmt.Errorf("bad hex salt: %w", err)
			}
			key, err := kdf.Key([]byte(passphrase), salt, rounds, length)
			if err != nil {
				return err
			}
			fmt.Println(hex.EncodeToString(key))
			return nil
		},
	}

	cmd.Flags().StringVar(&saltHex, "salt", "", "hex-encoded salt")
	cmd.Flags().Uint32Var(&rounds, "rounds", 16, "KDF round count")
	cmd.Flags().IntVar(&length, "length", 32, "derived key length in bytes")
	return cmd
}
