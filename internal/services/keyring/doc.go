// Package keyring provides the high-level operations over the device's
// stored security materials: provisioning, key distribution and
// revocation, and the local phase bookkeeping of the Key Refresh
// Procedure. The procedure's message exchange and timing live elsewhere;
// this service only performs the "store the next phase value" step.
package keyring
