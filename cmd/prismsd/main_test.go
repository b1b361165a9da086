package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUsers(t *testing.T) {
	got, err := parseUsers([]string{"admin=secret", "guest=", "eq=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"admin": "secret", "guest": "", "eq": "a=b"}, got)

	_, err = parseUsers([]string{"nopassword"})
	assert.Error(t, err)
	_, err = parseUsers([]string{"=x"})
	assert.Error(t, err)
}
