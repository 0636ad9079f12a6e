package commands

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"meshkeys/internal/app"
	"meshkeys/internal/domain"
)

var (
	home       string
	passphrase string
	wire       *app.Wire
)

// envDefaults fills flag defaults from MESHKEYS_* variables, so the
// passphrase can stay out of shell history.
type envDefaults struct {
	Home       string `envconfig:"HOME"`
	Passphrase string `envconfig:"PASSPHRASE"`
}

func Execute() error {
	var env envDefaults
	if err := envconfig.Process("meshkeys", &env); err != nil {
		return err
	}

	root := &cobra.Command{
		Use:   "meshkeys",
		Short: "Manage a mesh node's security materials",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				home = env.Home
			}
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".meshkeys")
			}
			if passphrase == "" {
				passphrase = env.Passphrase
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			wire = app.NewWire(app.Config{Home: home})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.meshkeys or $MESHKEYS_HOME)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the stored materials")

	root.AddCommand(initCmd(), netKeyCmd(), appKeyCmd(), refreshCmd(), matchCmd(), showCmd())
	return root.Execute()
}

func requirePassphrase() error {
	if passphrase == "" {
		return fmt.Errorf("passphrase required (-p or MESHKEYS_PASSPHRASE)")
	}
	return nil
}

// parseKeyHex decodes 16 bytes of hex key material.
func parseKeyHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("key must be hex: %w", err)
	}
	if len(b) != domain.KeyBytes {
		return nil, fmt.Errorf("key must be %d bytes, got %d", domain.KeyBytes, len(b))
	}
	return b, nil
}

// parseIndex parses a 12-bit key index.
func parseIndex(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("bad index %q: %w", s, err)
	}
	if v > domain.KeyIndexMax {
		return 0, fmt.Errorf("index %d exceeds 12 bits", v)
	}
	return uint16(v), nil
}
