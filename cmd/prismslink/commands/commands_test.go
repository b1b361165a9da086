package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCalls(t *testing.T) {
	calls, err := parseCalls([]string{"echo:ping", "files:download"})
	require.NoError(t, err)
	assert.Equal(t, []pluginCall{
		{plugin: "echo", method: "ping"},
		{plugin: "files", method: "download"},
	}, calls)

	for _, bad := range []string{"echo", "echo:"} {
		_, err := parseCalls([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestHashCmd(t *testing.T) {
	cmd := hashCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"--password", "ab",
		"--primary-mult", "3", "--primary-mod", "97",
		"--secondary-mult", "7", "--secondary-mod", "101",
	})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Key:          V\n")
}

func TestHashCmd_MismatchedParams(t *testing.T) {
	cmd := hashCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--password", "ab", "--primary-mult", "3,5", "--primary-mod", "97"})
	assert.Error(t, cmd.Execute())
}
