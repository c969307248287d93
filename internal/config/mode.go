package config

// SourceMode defines where console output comes from
type SourceMode string

const (
	SourceLocal SourceMode = "local" // run the local asterisk binary
	SourceSSH   SourceMode = "ssh"   // run asterisk on a remote host over SSH
	SourceFile  SourceMode = "file"  // replay captured output from a directory
)

// Valid reports whether m is a known source mode
func (m SourceMode) Valid() bool {
	switch m {
	case SourceLocal, SourceSSH, SourceFile:
		return true
	default:
		return false
	}
}

// CIDBackend defines where emergency CIDs are read from
type CIDBackend string

const (
	CIDBackendCLI    CIDBackend = "cli"    // `database show` through the console source
	CIDBackendSQLite CIDBackend = "sqlite" // astdb.sqlite3 read directly
)

// Valid reports whether b is a known backend
func (b CIDBackend) Valid() bool {
	return b == CIDBackendCLI || b == CIDBackendSQLite
}
