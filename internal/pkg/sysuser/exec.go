package sysuser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

const commandTimeout = 10 * time.Second

// Exec is a System implementation that shells out to id and chpasswd.
type Exec struct{}

// NewExec constructs an Exec system backend.
func NewExec() *Exec {
	return &Exec{}
}

// Exists runs `id <username>`; a non-zero exit means the account is unknown.
func (e *Exec) Exists(ctx context.Context, username string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	err := exec.CommandContext(ctx, "id", username).Run()
	if err == nil {
		return true, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}

	return false, fmt.Errorf("sysuser: id lookup: %w", err)
}

// Rotate feeds "username:credential" to chpasswd on stdin. The credential
// never appears in the process argument list.
func (e *Exec) Rotate(ctx context.Context, username, credential string) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "chpasswd")
	cmd.Stdin = bytes.NewReader([]byte(username + ":" + credential + "\n"))

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("sysuser: chpasswd: %w: %s", err, stderr.String())
	}
	return nil
}
