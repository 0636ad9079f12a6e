package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"meshkeys/internal/crypto"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Provision fresh security materials with a random device key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			m, err := wire.Keyring.Create(passphrase)
			if err != nil {
				return err
			}
			fmt.Printf("Materials created.\nDevice key fingerprint: %s\n",
				crypto.Fingerprint(m.DevKey.Slice()))
			return nil
		},
	}
}
