package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"meshkeys/internal/domain"
)

func refreshCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Drive the Key Refresh Procedure for a network-key slot",
	}
	cmd.AddCommand(refreshBeginCmd(), refreshStepCmd("commit",
		"Switch transmission to the new key (phase1 -> phase2)",
		func(index domain.NetKeyIndex) error {
			return wire.Keyring.CommitRefresh(passphrase, index)
		}), refreshStepCmd("finalize",
		"Complete the rotation, revoking the old key (phase2 -> normal)",
		func(index domain.NetKeyIndex) error {
			return wire.Keyring.FinalizeRefresh(passphrase, index)
		}), refreshStepCmd("revert",
		"Abandon the rotation, restoring the old key",
		func(index domain.NetKeyIndex) error {
			return wire.Keyring.RevertRefresh(passphrase, index)
		}))
	return cmd
}

func refreshBeginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "begin <index> <hex-new-key>",
		Short: "Distribute a replacement key (normal -> phase1)",
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
			if err := wire.Keyring.BeginRefresh(passphrase, domain.NetKeyIndex(index), raw); err != nil {
				return err
			}
			fmt.Printf("Refresh begun at index %d; old key still transmits.\n", index)
			return nil
		},
	}
}

func refreshStepCmd(name, short string, step func(domain.NetKeyIndex) error) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <index>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			if err := step(domain.NetKeyIndex(index)); err != nil {
				return err
			}
			fmt.Printf("Refresh %s applied at index %d.\n", name, index)
			return nil
		},
	}
}
