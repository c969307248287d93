// Package domain defines the core types for the E911 caller-ID audit.
//
// An extension registers with the switch from a network address. Extensions
// sharing an address are assumed to share a physical location, so they
// should carry the same emergency caller ID (CID).
//
// # Core Types
//
// AddressMap accumulates (address, extension) registrations from the
// registration listings and is later joined with the emergency CIDs found
// in the device database.
//
// Report is the sorted, render-ready view of an AddressMap: one Section per
// address, one Entry per extension. An Entry without a CID is kept and
// rendered with an explicit marker.
//
// Finding is a compliance observation derived from a Report: mixed CIDs at
// one address, one CID shared across addresses, or extensions missing a CID.
//
// # Address Handling
//
// Addresses are validated only by counting separators (IsDottedQuad), and
// sections are ordered by an AddressOrder strategy. The lexical strategy is
// the default and sorts addresses as plain strings.
package domain
