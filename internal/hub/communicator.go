package hub

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/deploytrace/deploytrace/internal/util/retry"
)

// Communicator executes commands on a remote host. It exists so SSHReader
// can be tested against a fake without a live SSH endpoint.
type Communicator interface {
	Execute(ctx context.Context, command string) (string, error)
}

// SSHCommunicator implements Communicator over the SSH protocol.
type SSHCommunicator struct {
	host       string
	port       string
	user       string
	privateKey []byte
}

// NewSSHCommunicator creates a communicator for user@host using the given
// private key file. Port defaults to 22 when empty.
func NewSSHCommunicator(host, port, user, keyPath string) (*SSHCommunicator, error) {
	key, err := os.ReadFile(keyPath) // #nosec G304
	if err != nil {
		return nil, transportFailure(fmt.Errorf("failed to read ssh key: %w", err))
	}
	if port == "" {
		port = "22"
	}
	return &SSHCommunicator{host: host, port: port, user: user, privateKey: key}, nil
}

// Execute runs a command on the remote host and returns its combined
// output. Dialing is retried with backoff; command failures are not.
func (c *SSHCommunicator) Execute(ctx context.Context, command string) (string, error) {
	signer, err := ssh.ParsePrivateKey(c.privateKey)
	if err != nil {
		return "", transportFailure(fmt.Errorf("failed to parse private key: %w", err))
	}

	config := &ssh.ClientConfig{
		User: c.user,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // #nosec G106 -- host key pinning is not configured for hub access
		Timeout:         10 * time.Second,
	}

	var client *ssh.Client
	err = retry.WithExponentialBackoff(ctx, func() error {
		var dialErr error
		client, dialErr = ssh.Dial("tcp", net.JoinHostPort(c.host, c.port), config)
		return dialErr
	}, retry.WithMaxRetries(3), retry.WithInitialDelay(2*time.Second))
	if err != nil {
		return "", transportFailure(fmt.Errorf("failed to dial %s: %w", c.host, err))
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return "", transportFailure(fmt.Errorf("failed to open session: %w", err))
	}
	defer session.Close()

	output, err := session.CombinedOutput(command)
	if err != nil {
		return string(output), fmt.Errorf("remote command failed: %w, output: %s", err, output)
	}
	return string(output), nil
}
