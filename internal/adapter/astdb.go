package adapter

import (
	"fmt"
	"regexp"
	"strings"

	"e911audit/internal/domain"
)

// emergencyCIDPattern matches e.g. "/DEVICE/814/emergency_cid      : 713652565"
var emergencyCIDPattern = regexp.MustCompile(`/DEVICE/(\d+)/emergency_cid\s+:\s+(\d+)`)

// ParseEmergencyCIDs extracts extension -> emergency CID from `database show` output.
// Every other key is ignored. When an extension repeats, the last line wins.
func ParseEmergencyCIDs(output string) map[string]string {
	cids := make(map[string]string)
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}

		m := emergencyCIDPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		cids[m[1]] = m[2]
	}
	return cids
}

// FormatDatabaseShow renders database rows the way `database show` prints them,
// so rows read straight from astdb go through ParseEmergencyCIDs unchanged.
func FormatDatabaseShow(entries []domain.DBEntry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%-49s : %s\n", e.Key, e.Value)
	}
	fmt.Fprintf(&b, "%d results found.\n", len(entries))
	return b.String()
}
