package domain

// DBEntry is one key/value row of the Asterisk internal database (astdb)
type DBEntry struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}
