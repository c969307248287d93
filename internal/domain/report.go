package domain

// Entry is one extension line of a report section
type Entry struct {
	Extension    string  `json:"extension" yaml:"extension"`
	EmergencyCID *string `json:"emergency_cid" yaml:"emergency_cid"`
}

// HasCID returns true if the extension has an emergency CID
func (e Entry) HasCID() bool {
	return e.EmergencyCID != nil
}

// CID returns the emergency CID, or fallback when there is none
func (e Entry) CID(fallback string) string {
	if e.EmergencyCID == nil {
		return fallback
	}
	return *e.EmergencyCID
}

// Section groups the entries registered from one address
type Section struct {
	Address string  `json:"address" yaml:"address"`
	Entries []Entry `json:"extensions" yaml:"extensions"`
}

// Report is the sorted audit result
type Report struct {
	Sections []Section `json:"sections" yaml:"sections"`
	Findings []Finding `json:"findings,omitempty" yaml:"findings,omitempty"`
}

// NewReport creates an empty report
func NewReport() *Report {
	return &Report{
		Sections: make([]Section, 0),
	}
}

// IsEmpty returns true when no extension was registered
func (r *Report) IsEmpty() bool {
	return len(r.Sections) == 0
}
