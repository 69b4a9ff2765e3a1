// Package sysuser checks and rotates local system accounts.
//
// The exec driver shells out to the usual Linux tools and needs the process
// to run with enough privilege for chpasswd. The static driver serves
// development and tests with a fixed user set and no-op rotation.
package sysuser

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDriver indicates an unsupported sysuser driver.
var ErrUnknownDriver = errors.New("sysuser: unknown driver")

const (
	// DriverExec selects the command-line backend (id, chpasswd).
	DriverExec = "exec"
	// DriverStatic selects the fixture backend.
	DriverStatic = "static"
)

// IdentityChecker reports whether a username exists on the host.
type IdentityChecker interface {
	// Exists reports whether the system account exists.
	Exists(ctx context.Context, username string) (bool, error)
}

// CredentialRotator replaces a system account's password.
type CredentialRotator interface {
	// Rotate sets the account's password to credential.
	Rotate(ctx context.Context, username, credential string) error
}

// System combines identity checks and credential rotation.
type System interface {
	IdentityChecker
	CredentialRotator
}

// FactoryOptions groups config for supported sysuser backends.
type FactoryOptions struct {
	// Static provides configuration for the static driver.
	Static StaticConfig
}

// NewFromDriver constructs a System implementation by driver name.
func NewFromDriver(driver string, opts FactoryOptions) (System, error) {
	switch strings.TrimSpace(driver) {
	case DriverExec, "":
		return NewExec(), nil
	case DriverStatic:
		return NewStatic(opts.Static), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
