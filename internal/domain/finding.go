package domain

import (
	"fmt"
	"slices"
	"strings"
)

// FindingKind categorizes an E911 compliance observation
type FindingKind string

const (
	// FindingMixedCID - extensions at one address report different emergency CIDs
	FindingMixedCID FindingKind = "mixed_cid"
	// FindingSharedCID - one emergency CID is used from more than one address
	FindingSharedCID FindingKind = "shared_cid"
	// FindingMissingCID - an extension has no emergency CID at all
	FindingMissingCID FindingKind = "missing_cid"
)

// Finding is a compliance observation derived from a report
type Finding struct {
	Kind       FindingKind `json:"kind" yaml:"kind"`
	Address    string      `json:"address,omitempty" yaml:"address,omitempty"`
	CID        string      `json:"cid,omitempty" yaml:"cid,omitempty"`
	Extensions []string    `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	CIDs       []string    `json:"cids,omitempty" yaml:"cids,omitempty"`
	Addresses  []string    `json:"addresses,omitempty" yaml:"addresses,omitempty"`
}

// String renders a one-line description of the finding
func (f Finding) String() string {
	switch f.Kind {
	case FindingMixedCID:
		return fmt.Sprintf("%s %s: cids %s (extensions %s)",
			f.Kind, f.Address, strings.Join(f.CIDs, ", "), strings.Join(f.Extensions, ", "))
	case FindingSharedCID:
		return fmt.Sprintf("%s %s: addresses %s", f.Kind, f.CID, strings.Join(f.Addresses, ", "))
	case FindingMissingCID:
		return fmt.Sprintf("%s %s: extensions %s", f.Kind, f.Address, strings.Join(f.Extensions, ", "))
	default:
		return string(f.Kind)
	}
}

// Analyze derives findings from a report.
//
// Mixed CIDs only consider extensions that have a CID; extensions without
// one are reported separately as missing. Findings are ordered by kind
// (mixed, shared, missing) and then follow the report's section order.
func Analyze(r *Report) []Finding {
	var mixed, missing []Finding
	cidAddresses := make(map[string][]string)

	for _, s := range r.Sections {
		var cids, withCID, without []string
		for _, e := range s.Entries {
			if !e.HasCID() {
				without = append(without, e.Extension)
				continue
			}
			cid := *e.EmergencyCID
			withCID = append(withCID, e.Extension)
			if !slices.Contains(cids, cid) {
				cids = append(cids, cid)
			}
			if addrs := cidAddresses[cid]; len(addrs) == 0 || addrs[len(addrs)-1] != s.Address {
				cidAddresses[cid] = append(addrs, s.Address)
			}
		}

		if len(cids) > 1 {
			slices.Sort(cids)
			mixed = append(mixed, Finding{
				Kind:       FindingMixedCID,
				Address:    s.Address,
				CIDs:       cids,
				Extensions: withCID,
			})
		}
		if len(without) > 0 {
			missing = append(missing, Finding{
				Kind:       FindingMissingCID,
				Address:    s.Address,
				Extensions: without,
			})
		}
	}

	var shared []Finding
	for cid, addrs := range cidAddresses {
		if len(addrs) > 1 {
			shared = append(shared, Finding{Kind: FindingSharedCID, CID: cid, Addresses: addrs})
		}
	}
	slices.SortFunc(shared, func(a, b Finding) int { return strings.Compare(a.CID, b.CID) })

	findings := make([]Finding, 0, len(mixed)+len(shared)+len(missing))
	findings = append(findings, mixed...)
	findings = append(findings, shared...)
	findings = append(findings, missing...)
	return findings
}
