package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundraiser-display/internal/auth"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestTokenIsAdmin(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "s3cret")

	tok, err := execute(t, "--ttl", "1h")
	require.NoError(t, err)

	sub, err := auth.ParseToken([]byte("s3cret"), tok)
	require.NoError(t, err)
	assert.Equal(t, auth.AdminSubject, sub)
}

func TestTokenRequiresSecret(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "")

	_, err := execute(t)
	assert.ErrorContains(t, err, "ADMIN_JWT_SECRET")
}

func TestTokenRejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "s3cret")

	_, err := execute(t, "--ttl", "0s")
	assert.ErrorContains(t, err, "ttl must be positive")
}
