// Package cli wires configuration, runners and the audit service behind the
// e911audit command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"e911audit/internal/adapter"
	"e911audit/internal/codec"
	"e911audit/internal/config"
	"e911audit/internal/logger"
	"e911audit/internal/repository/sqlite"
	"e911audit/internal/service"
)

// Version information, set by main
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

type rootFlags struct {
	configPath   string
	source       string
	captureDir   string
	format       string
	addressOrder string
	findings     bool
	strict       bool
	logLevel     string
}

// NewRootCommand builds the e911audit command tree
func NewRootCommand() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:   "e911audit",
		Short: "Audit emergency caller IDs of registered Asterisk extensions",
		Long: `e911audit lists every registered SIP and PJSIP extension grouped by the
address it registered from, with the emergency caller ID stored for it.

Extensions sharing an address share a location and should carry the same
emergency CID. Extensions without a CID are shown with an explicit marker.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			return runAudit(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default: search $E911AUDIT_CONFIG, ./e911audit.yaml, XDG, /etc)")
	pf.StringVar(&flags.source, "source", "", "console source: local, ssh or file")
	pf.StringVar(&flags.captureDir, "capture-dir", "", "directory of captured console output (source file)")
	pf.BoolVar(&flags.strict, "strict", false, "fail when a console command or the CID store fails")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	f := root.Flags()
	f.StringVar(&flags.format, "format", "", "report format: text, json or yaml")
	f.StringVar(&flags.addressOrder, "address-order", "", "address ordering: lexical or numeric")
	f.BoolVar(&flags.findings, "findings", false, "append compliance findings to the report")

	root.AddCommand(newCaptureCommand(&flags))
	root.AddCommand(newVersionCommand())

	return root
}

// Execute runs the command line and returns the process exit code
func Execute(ctx context.Context, args []string) int {
	root := NewRootCommand()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "e911audit: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads the config file and applies flags set on the command line
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	cfg, _, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("source") {
		cfg.Source = config.SourceMode(flags.source)
	}
	if changed("capture-dir") {
		cfg.Capture.Dir = flags.captureDir
		if !changed("source") {
			cfg.Source = config.SourceFile
		}
	}
	if changed("strict") {
		cfg.Strict = flags.strict
	}
	if changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if changed("format") {
		cfg.Report.Format = flags.format
	}
	if changed("address-order") {
		cfg.Report.AddressOrder = flags.addressOrder
	}
	if changed("findings") {
		cfg.Report.Findings = flags.findings
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newRunner builds the console runner for the configured source.
// The returned close function must be called when done.
func newRunner(cfg *config.Config, log *slog.Logger) (adapter.Runner, func() error) {
	noop := func() error { return nil }
	timeout := cfg.Asterisk.Timeout.Duration()

	switch cfg.Source {
	case config.SourceSSH:
		r := adapter.NewSSHRunner(adapter.SSHConfig{
			Host:       cfg.SSH.Host,
			Port:       cfg.SSH.Port,
			User:       cfg.SSH.User,
			KeyPath:    cfg.SSH.KeyPath,
			Passphrase: cfg.SSH.Passphrase,
			Password:   cfg.SSH.Password,
			KnownHosts: cfg.SSH.KnownHosts,
			Timeout:    timeout,
			Binary:     cfg.Asterisk.Binary,
		}, log)
		return r, r.Close
	case config.SourceFile:
		return adapter.NewFileRunner(cfg.Capture.Dir, log), noop
	default:
		return adapter.NewExecRunner(cfg.Asterisk.Binary, timeout, log), noop
	}
}

// newCIDSource builds the emergency CID source for the configured backend
func newCIDSource(cfg *config.Config, runner adapter.Runner) (service.CIDSource, func() error, error) {
	if cfg.CIDStore.Backend != config.CIDBackendSQLite {
		return service.NewConsoleCIDSource(runner), func() error { return nil }, nil
	}

	repo, err := sqlite.New(cfg.CIDStore.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open astdb %s: %w", cfg.CIDStore.Path, err)
	}
	return service.NewStoreCIDSource(repo), repo.Close, nil
}

func runAudit(ctx context.Context, cfg *config.Config, w io.Writer) error {
	log := logger.New(cfg.Log.Level)
	log.Debug("configuration", "summary", cfg.Summary())

	exporter, err := codec.ForFormat(cfg.Report.Format, cfg.Report.NullMarker)
	if err != nil {
		return err
	}

	runner, closeRunner := newRunner(cfg, log)
	defer closeRunner()

	cids, closeCIDs, err := newCIDSource(cfg, runner)
	if err != nil {
		return err
	}
	defer closeCIDs()

	svc := service.NewAuditService(runner, cids, service.AuditOptions{
		Order:    cfg.AddressOrder(),
		Findings: cfg.Report.Findings,
		Strict:   cfg.Strict,
	}, log)

	report, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	return exporter.Export(report, w)
}

func newCaptureCommand(flags *rootFlags) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Save console output for an offline audit",
		Long: `Run the console commands the audit reads and save their output, one file per
command, for a later run with --capture-dir.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if cfg.Source == config.SourceFile {
				return fmt.Errorf("capture needs a live source (local or ssh)")
			}

			log := logger.New(cfg.Log.Level)
			runner, closeRunner := newRunner(cfg, log)
			defer closeRunner()

			return capture(cmd.Context(), runner, outDir, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write captures to")
	return cmd
}

// capture writes the output of every audited command into dir
func capture(ctx context.Context, runner adapter.Runner, dir string, w io.Writer) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create capture dir: %w", err)
	}

	commands := []string{adapter.CommandSIPPeers, adapter.CommandPJSIPContacts, adapter.CommandDatabaseShow}
	for _, command := range commands {
		out, err := runner.Run(ctx, command)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, adapter.CaptureFileName(command))
		if err := os.WriteFile(path, []byte(out), 0o600); err != nil {
			return fmt.Errorf("write capture: %w", err)
		}
		fmt.Fprintf(w, "%s -> %s\n", command, path)
	}
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "e911audit version %s\n", Version)
			fmt.Fprintf(out, "commit: %s\n", Commit)
			fmt.Fprintf(out, "built: %s\n", Date)
			fmt.Fprintf(out, "go version: %s\n", runtime.Version())
		},
	}
}
