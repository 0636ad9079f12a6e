package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"meshkeys/internal/domain"
)

func matchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Show the decrypt-candidate order for a short identifier",
	}
	cmd.AddCommand(matchNIDCmd(), matchAIDCmd())
	return cmd
}

func matchNIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nid <value>",
		Short: "List network-key candidates for a 7-bit NID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			v, err := strconv.ParseUint(args[0], 0, 8)
			if err != nil || !domain.NID(v).IsValid() {
				return fmt.Errorf("NID must be a 7-bit value, got %q", args[0])
			}
			m, err := wire.Keyring.Load(passphrase)
			if err != nil {
				return err
			}
			candidates := m.NetKeys.MatchingNID(domain.NID(v))
			for i, c := range candidates {
				fmt.Printf("%d. index %d  %s\n", i+1, uint16(c.Index), c.Materials)
			}
			if len(candidates) == 0 {
				fmt.Println("No configured network key shares this NID.")
			}
			return nil
		},
	}
}

func matchAIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aid <value>",
		Short: "List application-key candidates for a 6-bit AID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			v, err := strconv.ParseUint(args[0], 0, 8)
			if err != nil || !domain.AID(v).IsValid() {
				return fmt.Errorf("AID must be a 6-bit value, got %q", args[0])
			}
			m, err := wire.Keyring.Load(passphrase)
			if err != nil {
				return err
			}
			candidates := m.AppKeys.MatchingAID(domain.AID(v))
			for i, c := range candidates {
				fmt.Printf("%d. index %d  %s\n", i+1, uint16(c.Index), c.Materials)
			}
			if len(candidates) == 0 {
				fmt.Println("No configured application key shares this AID.")
			}
			return nil
		},
	}
}
