// Package materials holds and manages the node's cryptographic key
// material: network-key bundles with their Key Refresh phase state,
// application-key bundles, and the per-device aggregate.
//
// The receive path feeds a PDU's cleartext NID or AID into MatchingNID /
// MatchingAID and gets back an ordered candidate list; the authenticated
// decrypt step consumes candidates in that order until one verifies or
// the list is exhausted. The Key Refresh Procedure advances a slot by
// storing the next KeyPhase value into the NetKeyMap.
//
// Everything here is a pure, synchronous in-memory structure: no locks,
// no I/O, no goroutines. The host embeds it behind a single-writer /
// multiple-reader discipline.
package materials
