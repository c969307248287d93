package adapter

import (
	"strings"

	"e911audit/internal/domain"
)

// CollectSIPPeers extracts registered peers from `sip show peers` output.
//
// Format:
//
//	Name/username             Host                                    Dyn Forcerport Comedia    ACL Port     Status
//	122/122                   127.12.17.90                             D  Yes        Yes         A  11889    OK (34 ms)
//
// The extension is the part of column 0 before '/', the address is column 1.
// Rows with a non-numeric extension or an address without three dots are skipped.
func CollectSIPPeers(output string, addresses *domain.AddressMap) int {
	accepted := 0
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		ext, _, _ := strings.Cut(parts[0], "/")
		if !domain.IsNumeric(ext) {
			continue
		}

		ip := parts[1]
		if !domain.IsDottedQuad(ip) {
			continue
		}

		addresses.Upsert(ip, ext)
		accepted++
	}
	return accepted
}
