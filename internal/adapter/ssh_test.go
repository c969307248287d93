package adapter

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// testSSHServer is a minimal exec-only SSH server answering asterisk commands
type testSSHServer struct {
	addr    string
	hostKey ssh.PublicKey
	// commands received, in order
	commands chan string
}

func newTestSSHServer(t *testing.T, password string, outputs map[string]string) *testSSHServer {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signer, err := ssh.NewSignerFromKey(priv)
	require.NoError(t, err)

	config := &ssh.ServerConfig{
		PasswordCallback: func(c ssh.ConnMetadata, pass []byte) (*ssh.Permissions, error) {
			if c.User() == "asterisk" && string(pass) == password {
				return nil, nil
			}
			return nil, fmt.Errorf("password rejected for %q", c.User())
		},
	}
	config.AddHostKey(signer)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	srv := &testSSHServer{
		addr:     ln.Addr().String(),
		hostKey:  signer.PublicKey(),
		commands: make(chan string, 16),
	}

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go srv.serve(conn, config, outputs)
		}
	}()

	return srv
}

func (s *testSSHServer) serve(conn net.Conn, config *ssh.ServerConfig, outputs map[string]string) {
	_, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		conn.Close()
		return
	}
	go ssh.DiscardRequests(reqs)

	for newCh := range chans {
		if newCh.ChannelType() != "session" {
			newCh.Reject(ssh.UnknownChannelType, "session only")
			continue
		}
		ch, requests, err := newCh.Accept()
		if err != nil {
			continue
		}
		go func() {
			defer ch.Close()
			for req := range requests {
				if req.Type != "exec" {
					req.Reply(false, nil)
					continue
				}
				var payload struct{ Command string }
				if err := ssh.Unmarshal(req.Payload, &payload); err != nil {
					req.Reply(false, nil)
					return
				}
				req.Reply(true, nil)
				s.commands <- payload.Command

				status := uint32(0)
				out, ok := outputs[payload.Command]
				if !ok {
					status = 1
				}
				ch.Write([]byte(out))
				ch.SendRequest("exit-status", false, ssh.Marshal(struct{ Status uint32 }{status}))
				return
			}
		}()
	}
}

func (s *testSSHServer) port(t *testing.T) int {
	t.Helper()
	_, portStr, err := net.SplitHostPort(s.addr)
	require.NoError(t, err)
	var port int
	_, err = fmt.Sscanf(portStr, "%d", &port)
	require.NoError(t, err)
	return port
}

func TestSSHRunner(t *testing.T) {
	peers := "122/122   127.12.17.90   D  Yes  Yes  A  11889  OK (34 ms)\n"
	srv := newTestSSHServer(t, "secret", map[string]string{
		"/usr/sbin/asterisk -rx 'sip show peers'": peers,
	})

	knownHostsPath := filepath.Join(t.TempDir(), "known_hosts")
	line := knownhosts.Line([]string{srv.addr}, srv.hostKey)
	require.NoError(t, os.WriteFile(knownHostsPath, []byte(line+"\n"), 0o600))

	r := NewSSHRunner(SSHConfig{
		Host:       "127.0.0.1",
		Port:       srv.port(t),
		User:       "asterisk",
		Password:   "secret",
		KnownHosts: knownHostsPath,
		Timeout:    5 * time.Second,
	}, discardLogger())
	defer r.Close()

	assert.Equal(t, "ssh", r.Name())

	out, err := r.Run(context.Background(), CommandSIPPeers)
	require.NoError(t, err)
	assert.Equal(t, peers, out)
	assert.Equal(t, "/usr/sbin/asterisk -rx 'sip show peers'", <-srv.commands)

	// Connection is reused; an unknown command exits non-zero
	_, err = r.Run(context.Background(), CommandDatabaseShow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit status 1")

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
}

func TestSSHRunnerAuthFailure(t *testing.T) {
	srv := newTestSSHServer(t, "secret", nil)

	r := NewSSHRunner(SSHConfig{
		Host:     "127.0.0.1",
		Port:     srv.port(t),
		User:     "asterisk",
		Password: "wrong",
		Timeout:  5 * time.Second,
	}, discardLogger())
	defer r.Close()

	_, err := r.Run(context.Background(), CommandSIPPeers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to establish SSH connection")
}

func TestSSHRunnerHostKeyMismatch(t *testing.T) {
	srv := newTestSSHServer(t, "secret", nil)

	_, otherPriv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	otherSigner, err := ssh.NewSignerFromKey(otherPriv)
	require.NoError(t, err)

	knownHostsPath := filepath.Join(t.TempDir(), "known_hosts")
	line := knownhosts.Line([]string{srv.addr}, otherSigner.PublicKey())
	require.NoError(t, os.WriteFile(knownHostsPath, []byte(line+"\n"), 0o600))

	r := NewSSHRunner(SSHConfig{
		Host:       "127.0.0.1",
		Port:       srv.port(t),
		User:       "asterisk",
		Password:   "secret",
		KnownHosts: knownHostsPath,
		Timeout:    5 * time.Second,
	}, discardLogger())
	defer r.Close()

	_, err = r.Run(context.Background(), CommandSIPPeers)
	assert.Error(t, err)
}

func TestSSHRunnerConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  SSHConfig
		want string
	}{
		{
			name: "no user",
			cfg:  SSHConfig{Host: "127.0.0.1", Password: "x"},
			want: "ssh user not configured",
		},
		{
			name: "no credentials",
			cfg:  SSHConfig{Host: "127.0.0.1", User: "asterisk"},
			want: "no ssh key or password configured",
		},
		{
			name: "missing key file",
			cfg:  SSHConfig{Host: "127.0.0.1", User: "asterisk", KeyPath: "/nonexistent/id_ed25519"},
			want: "read private key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewSSHRunner(tt.cfg, discardLogger())
			_, err := r.Run(context.Background(), CommandSIPPeers)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
