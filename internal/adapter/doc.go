// Package adapter reads registration and device data from an Asterisk switch.
//
// Data arrives as console text: the output of `asterisk -rx "<command>"`.
// A Runner produces that text, and the collectors in this package extract
// what the audit needs from it.
//
// # Runners
//
// ExecRunner invokes the local asterisk binary. SSHRunner runs the same
// command on a remote PBX over SSH. FileRunner replays output captured
// earlier, one file per command.
//
// # Collectors
//
// CollectSIPPeers reads `sip show peers`, CollectPJSIPContacts reads
// `pjsip show contacts`. Both write (address, extension) pairs into a
// caller-owned domain.AddressMap.
//
// ParseEmergencyCIDs reads `database show` and returns extension -> CID.
// It never touches the address map; the audit service owns the join.
//
// # Parse Policy
//
// Lines that do not match are noise, not errors. Collectors skip them
// silently and never fail.
package adapter
