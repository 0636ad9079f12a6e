package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"meshkeys/internal/domain"
)

func appKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appkey",
		Short: "Manage distributed application keys",
	}
	cmd.AddCommand(appKeyAddCmd(), appKeyListCmd(), appKeyRemoveCmd())
	return cmd
}

func appKeyAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <net-index> <app-index> <hex-key>",
		Short: "Store an application key bound to a network-key slot",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			netIndex, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			appIndex, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			raw, err := parseKeyHex(args[2])
			if err != nil {
				return err
			}
			replaced, err := wire.Keyring.AddAppKey(passphrase,
				domain.NetKeyIndex(netIndex), domain.AppKeyIndex(appIndex), raw)
			if err != nil {
				return err
			}
			if replaced {
				fmt.Printf("Replaced application key at index %d.\n", appIndex)
			} else {
				fmt.Printf("Added application key at index %d.\n", appIndex)
			}
			return nil
		},
	}
}

func appKeyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored application-key slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			m, err := wire.Keyring.Load(passphrase)
			if err != nil {
				return err
			}
			for _, index := range m.AppKeys.Indices() {
				sm := m.AppKeys.Get(index)
				fmt.Printf("%4d  aid 0x%02x  net key index %d\n",
					uint16(index), uint8(sm.AID), uint16(sm.NetKeyIndex))
			}
			if m.AppKeys.Len() == 0 {
				fmt.Println("No application keys stored.")
			}
			return nil
		},
	}
}

func appKeyRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <index>",
		Short: "Revoke an application key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			removed, err := wire.Keyring.RemoveAppKey(passphrase, domain.AppKeyIndex(index))
			if err != nil {
				return err
			}
			if !removed {
				fmt.Printf("No application key at index %d.\n", index)
				return nil
			}
			fmt.Printf("Removed application key at index %d.\n", index)
			return nil
		},
	}
}
