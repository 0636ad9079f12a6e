// Package commands implements the meshkeys CLI: provisioning, network and
// application key management, Key Refresh Procedure steps, and candidate
// inspection for short-identifier matching.
package commands
