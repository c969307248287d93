// Package service implements the E911 audit pipeline.
//
// # AuditService
//
// AuditService runs the registration listings (SIP, then PJSIP) into one
// caller-owned address map, reads emergency CIDs from a CIDSource, joins
// the two, and returns a sorted domain.Report.
//
// # CID Sources
//
// ConsoleCIDSource parses `database show` output through the same runner as
// the listings. StoreCIDSource reads astdb directly through a
// repository.DeviceStore. Both produce extension -> CID with identical
// matching rules.
//
// # Failure Policy
//
// A parse miss is never an error. A command or store that fails is logged
// and treated as empty output, so the report degrades to whatever data
// exists. With Strict set the failure aborts the run instead.
package service
