package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"meshkeys/internal/crypto"
)

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Summarize the stored materials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			m, err := wire.Keyring.Load(passphrase)
			if err != nil {
				return err
			}
			fmt.Printf("Device key fingerprint: %s\n", crypto.Fingerprint(m.DevKey.Slice()))
			fmt.Printf("IV index: %d (update in progress: %t)\n", uint32(m.IVIndex), bool(m.IVUpdateFlag))
			fmt.Printf("Network keys: %d\n", m.NetKeys.Len())
			fmt.Printf("Application keys: %d\n", m.AppKeys.Len())
			return nil
		},
	}
}
