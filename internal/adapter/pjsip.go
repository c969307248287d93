package adapter

import (
	"regexp"
	"strings"

	"e911audit/internal/domain"
)

// contactPattern matches e.g. "Contact:  115/sip:115@127.153.63.153:5887;x-ast-orig-host=..."
// Group 1 is the extension from the contact URI, group 2 the address.
var contactPattern = regexp.MustCompile(`Contact:\s+\d+/sips?:(\d+)@(\d+\.\d+\.\d+\.\d+)`)

// CollectPJSIPContacts extracts registered contacts from `pjsip show contacts` output.
//
// Format:
//
//	Contact:  <Aor/ContactUri..............................> <Hash....> <Status> <RTT(ms)..>
//	Contact:  115/sip:115@127.153.63.153:5887;x-ast-orig-host= 47e23d99a7 Avail        62.119
//
// Lines without a contact URI are skipped.
func CollectPJSIPContacts(output string, addresses *domain.AddressMap) int {
	accepted := 0
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}

		m := contactPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		ext, ip := m[1], m[2]
		if !domain.IsDottedQuad(ip) {
			continue
		}

		addresses.Upsert(ip, ext)
		accepted++
	}
	return accepted
}
