// Package domain defines the core value types shared across the node.
// It contains plain types (identifiers, key material, phase tags) only.
package domain
