package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// SSHConfig holds connection settings for a remote PBX
type SSHConfig struct {
	Host string
	Port int
	User string
	// KeyPath is a private key file; Passphrase decrypts it when set
	KeyPath    string
	Passphrase string
	Password   string
	// KnownHosts enables host key verification when set
	KnownHosts string
	Timeout    time.Duration
	// Binary is the asterisk binary on the remote host
	Binary string
}

// SSHRunner runs asterisk console commands on a remote host over SSH.
// The connection is opened on first use and reused until Close.
type SSHRunner struct {
	cfg    SSHConfig
	log    *slog.Logger
	mu     sync.Mutex
	client *ssh.Client
}

// NewSSHRunner creates a new SSH runner
func NewSSHRunner(cfg SSHConfig, log *slog.Logger) *SSHRunner {
	if cfg.Port == 0 {
		cfg.Port = 22
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Binary == "" {
		cfg.Binary = DefaultAsteriskBinary
	}
	return &SSHRunner{cfg: cfg, log: log}
}

// Name returns the runner identifier
func (r *SSHRunner) Name() string {
	return "ssh"
}

// Run executes `<binary> -rx '<command>'` on the remote host
func (r *SSHRunner) Run(ctx context.Context, command string) (string, error) {
	client, err := r.connection(ctx)
	if err != nil {
		return "", err
	}

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	remote := r.cfg.Binary + " -rx " + shellQuote(command)
	r.log.Debug("executing", "host", r.cfg.Host, "cmd", remote)

	type result struct {
		out []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := session.Output(remote)
		done <- result{out, err}
	}()

	timer := time.NewTimer(r.cfg.Timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		if res.err != nil {
			var exitErr *ssh.ExitError
			if errors.As(res.err, &exitErr) {
				return "", fmt.Errorf("run %q: exit status %d", command, exitErr.ExitStatus())
			}
			return "", fmt.Errorf("run %q: %w", command, res.err)
		}
		return string(res.out), nil
	case <-timer.C:
		session.Signal(ssh.SIGKILL)
		return "", fmt.Errorf("run %q: command timeout", command)
	case <-ctx.Done():
		session.Signal(ssh.SIGKILL)
		return "", ctx.Err()
	}
}

// Close closes the underlying connection
func (r *SSHRunner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client == nil {
		return nil
	}
	err := r.client.Close()
	r.client = nil
	return err
}

func (r *SSHRunner) connection(ctx context.Context) (*ssh.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client != nil {
		return r.client, nil
	}
	client, err := r.connect(ctx)
	if err != nil {
		return nil, err
	}
	r.client = client
	return client, nil
}

// connect establishes an SSH connection to the configured host
func (r *SSHRunner) connect(ctx context.Context) (*ssh.Client, error) {
	config, err := r.buildClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to build SSH config: %w", err)
	}

	addr := net.JoinHostPort(r.cfg.Host, strconv.Itoa(r.cfg.Port))

	dialer := &net.Dialer{
		Timeout: r.cfg.Timeout,
	}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", addr, err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to establish SSH connection: %w", err)
	}

	r.log.Debug("ssh connected", "addr", addr, "user", r.cfg.User)
	return ssh.NewClient(sshConn, chans, reqs), nil
}

// buildClientConfig creates an SSH client config from key and/or password settings
func (r *SSHRunner) buildClientConfig() (*ssh.ClientConfig, error) {
	if r.cfg.User == "" {
		return nil, fmt.Errorf("ssh user not configured")
	}

	var auth []ssh.AuthMethod

	if r.cfg.KeyPath != "" {
		keyData, err := os.ReadFile(r.cfg.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("read private key: %w", err)
		}

		var signer ssh.Signer
		if r.cfg.Passphrase != "" {
			signer, err = ssh.ParsePrivateKeyWithPassphrase(keyData, []byte(r.cfg.Passphrase))
		} else {
			signer, err = ssh.ParsePrivateKey(keyData)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}

	if r.cfg.Password != "" {
		auth = append(auth, ssh.Password(r.cfg.Password))
	}

	if len(auth) == 0 {
		return nil, fmt.Errorf("no ssh key or password configured")
	}

	hostKeyCallback := ssh.InsecureIgnoreHostKey()
	if r.cfg.KnownHosts != "" {
		cb, err := knownhosts.New(r.cfg.KnownHosts)
		if err != nil {
			return nil, fmt.Errorf("load known_hosts: %w", err)
		}
		hostKeyCallback = cb
	} else {
		r.log.Warn("ssh host key verification disabled, set ssh.known_hosts to enable", "host", r.cfg.Host)
	}

	return &ssh.ClientConfig{
		User:            r.cfg.User,
		Auth:            auth,
		HostKeyCallback: hostKeyCallback,
		Timeout:         r.cfg.Timeout,
	}, nil
}

// shellQuote wraps s in single quotes for a POSIX shell
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
