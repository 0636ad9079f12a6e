package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"meshkeys/internal/domain"
)

func netKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "netkey",
		Short: "Manage distributed network keys",
	}
	cmd.AddCommand(netKeyAddCmd(), netKeyListCmd(), netKeyRemoveCmd())
	return cmd
}

func netKeyAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <index> <hex-key>",
		Short: "Store a network key, deriving its full materials bundle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			raw, err := parseKeyHex(args[1])
			if err != nil {
				return err
			}
			replaced, err := wire.Keyring.AddNetKey(passphrase, domain.NetKeyIndex(index), raw)
			if err != nil {
				return err
			}
			if replaced {
				fmt.Printf("Replaced network key at index %d.\n", index)
			} else {
				fmt.Printf("Added network key at index %d.\n", index)
			}
			return nil
		},
	}
}

func netKeyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored network-key slots with phase and identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			m, err := wire.Keyring.Load(passphrase)
			if err != nil {
				return err
			}
			for _, index := range m.NetKeys.Indices() {
				phase := m.NetKeys.Get(index)
				tx := phase.TxKey()
				fmt.Printf("%4d  %-7s  nid 0x%02x  network id %s\n",
					uint16(index), phase.Phase(), uint8(tx.NetworkKeys.NID), tx.NetworkID)
			}
			if m.NetKeys.Len() == 0 {
				fmt.Println("No network keys stored.")
			}
			return nil
		},
	}
}

func netKeyRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <index>",
		Short: "Revoke a network key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			removed, err := wire.Keyring.RemoveNetKey(passphrase, domain.NetKeyIndex(index))
			if err != nil {
				return err
			}
			if !removed {
				fmt.Printf("No network key at index %d.\n", index)
				return nil
			}
			fmt.Printf("Removed network key at index %d.\n", index)
			return nil
		},
	}
}
