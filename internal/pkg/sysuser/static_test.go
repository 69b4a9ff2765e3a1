package sysuser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticExists(t *testing.T) {
	sys := NewStatic(StaticConfig{Usernames: []string{"alice", "bob"}})

	ok, err := sys.Exists(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = sys.Exists(context.Background(), "mallory")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStaticRotate(t *testing.T) {
	sys := NewStatic(StaticConfig{Usernames: []string{"alice"}})

	err := sys.Rotate(context.Background(), "alice", "correct horse battery staple")
	require.NoError(t, err)
	assert.Equal(t, "correct horse battery staple", sys.Credential("alice"))
}

func TestStaticContextCanceled(t *testing.T) {
	sys := NewStatic(StaticConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sys.Exists(ctx, "alice")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, sys.Rotate(ctx, "alice", "pw"), context.Canceled)
}

func TestNewFromDriver(t *testing.T) {
	sys, err := NewFromDriver(DriverStatic, FactoryOptions{Static: StaticConfig{Usernames: []string{"alice"}}})
	require.NoError(t, err)
	assert.IsType(t, &Static{}, sys)

	sys, err = NewFromDriver(DriverExec, FactoryOptions{})
	require.NoError(t, err)
	assert.IsType(t, &Exec{}, sys)

	_, err = NewFromDriver("bogus", FactoryOptions{})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
