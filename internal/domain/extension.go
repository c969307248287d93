package domain

import (
	"slices"
	"strings"
)

// ExtensionRecord identifies one registered extension and where it registered from
type ExtensionRecord struct {
	Extension string `json:"extension" yaml:"extension"`
	Address   string `json:"address" yaml:"address"`
	// EmergencyCID is nil until joined with the device database, and stays nil
	// when the database has no entry for the extension
	EmergencyCID *string `json:"emergency_cid" yaml:"emergency_cid"`
}

// AddressGroup holds every extension registered from one address
type AddressGroup struct {
	Address string
	// Members maps extension -> emergency CID (nil when unknown)
	Members map[string]*string
}

// AddressMap accumulates registrations keyed by address.
// Both registration collectors write into the same map; the caller owns it.
type AddressMap struct {
	groups map[string]*AddressGroup
}

// NewAddressMap creates an empty address map
func NewAddressMap() *AddressMap {
	return &AddressMap{groups: make(map[string]*AddressGroup)}
}

// Upsert records extension at address with no CID.
// A repeated extension at the same address overwrites the earlier entry.
func (m *AddressMap) Upsert(address, extension string) {
	g, ok := m.groups[address]
	if !ok {
		g = &AddressGroup{Address: address, Members: make(map[string]*string)}
		m.groups[address] = g
	}
	g.Members[extension] = nil
}

// Len returns the number of distinct addresses
func (m *AddressMap) Len() int {
	return len(m.groups)
}

// ExtensionCount returns the number of (address, extension) entries
func (m *AddressMap) ExtensionCount() int {
	n := 0
	for _, g := range m.groups {
		n += len(g.Members)
	}
	return n
}

// ApplyCIDs sets the CID of every extension found in cids.
// Extensions missing from cids keep a nil CID. Returns the number of entries updated.
func (m *AddressMap) ApplyCIDs(cids map[string]string) int {
	updated := 0
	for _, g := range m.groups {
		for ext := range g.Members {
			cid, ok := cids[ext]
			if !ok {
				continue
			}
			g.Members[ext] = &cid
			updated++
		}
	}
	return updated
}

// Records flattens the map into records sorted by address (lexical) then extension
func (m *AddressMap) Records() []ExtensionRecord {
	var records []ExtensionRecord
	for _, g := range m.groups {
		for ext, cid := range g.Members {
			records = append(records, ExtensionRecord{Extension: ext, Address: g.Address, EmergencyCID: cid})
		}
	}
	slices.SortFunc(records, func(a, b ExtensionRecord) int {
		if c := strings.Compare(a.Address, b.Address); c != 0 {
			return c
		}
		return strings.Compare(a.Extension, b.Extension)
	})
	return records
}

// Report builds the sorted report view. Addresses follow order; extensions
// within an address are always sorted as strings.
func (m *AddressMap) Report(order AddressOrder) *Report {
	report := NewReport()
	for _, rec := range m.Records() {
		n := len(report.Sections)
		if n == 0 || report.Sections[n-1].Address != rec.Address {
			report.Sections = append(report.Sections, Section{Address: rec.Address})
			n++
		}
		s := &report.Sections[n-1]
		s.Entries = append(s.Entries, Entry{Extension: rec.Extension, EmergencyCID: rec.EmergencyCID})
	}

	slices.SortStableFunc(report.Sections, func(a, b Section) int {
		return order.Compare(a.Address, b.Address)
	})
	return report
}
