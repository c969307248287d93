package adapter

import (
	"context"

	"e911audit/internal/domain"
)

// Console commands understood by the audit
const (
	CommandSIPPeers       = "sip show peers"
	CommandPJSIPContacts  = "pjsip show contacts"
	CommandDatabaseShow   = "database show"
	DefaultAsteriskBinary = "/usr/sbin/asterisk"
)

// Runner executes an Asterisk console command and returns its output
type Runner interface {
	// Name returns the runner identifier for logging
	Name() string

	// Run executes command (e.g. "sip show peers") and returns stdout
	Run(ctx context.Context, command string) (string, error)
}

// Listing pairs a console command with the collector that parses its output
type Listing struct {
	Name    string
	Command string
	// Collect parses output into addresses and returns the number of rows accepted
	Collect func(output string, addresses *domain.AddressMap) int
}

// DefaultListings are the registration listings, in the order they are collected.
// PJSIP runs last, so its entry wins when both report the same extension and address.
var DefaultListings = []Listing{
	{
		Name:    "sip",
		Command: CommandSIPPeers,
		Collect: CollectSIPPeers,
	},
	{
		Name:    "pjsip",
		Command: CommandPJSIPContacts,
		Collect: CollectPJSIPContacts,
	},
}
