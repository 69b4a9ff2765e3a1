package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type enrollForm struct {
	Username string `validate:"required,linuxuser"`
	Email    string `validate:"required,email"`
}

type rotateForm struct {
	NewPassword string `validate:"required,credential"`
}

func TestValidateLinuxUser(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	valid := []string{"alice", "_daemon", "web-admin", "a", "user_01", "abcdefghijklmnopqrstuvwxyz_01234"}
	for _, u := range valid {
		assert.NoError(t, v.Validate(enrollForm{Username: u, Email: "a@b.com"}), "username %q", u)
	}

	invalid := []string{"Alice", "1user", "-dash", "user name", "user!", "abcdefghijklmnopqrstuvwxyz_012345"}
	for _, u := range invalid {
		err := v.Validate(enrollForm{Username: u, Email: "a@b.com"})
		require.Error(t, err, "username %q", u)

		var ve V10ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Values(), "username")
	}
}

func TestValidateCredential(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	assert.NoError(t, v.Validate(rotateForm{NewPassword: "12345678"}))
	assert.Error(t, v.Validate(rotateForm{NewPassword: "1234567"}))
	assert.Error(t, v.Validate(rotateForm{NewPassword: ""}))
}

func TestValidateFieldNamesAreSnakeCase(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	err = v.Validate(rotateForm{})
	require.Error(t, err)

	var ve V10ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Values(), "new_password")
}
