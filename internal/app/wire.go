package app

import (
	"meshkeys/internal/services/keyring"
	"meshkeys/internal/store"
)

// Wire bundles the store and services for the CLI.
type Wire struct {
	Store   *store.FileStore
	Keyring *keyring.Service
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) *Wire {
	fs := store.NewFileStore(cfg.Home)
	return &Wire{
		Store:   fs,
		Keyring: keyring.New(fs),
	}
}
