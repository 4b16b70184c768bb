package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_Short(t *testing.T) {
	assert.NotEmpty(t, versionCmd.Short)
}

func TestVersionCmd_Output(t *testing.T) {
	oldVersion := version
	defer func() { version = oldVersion }()
	version = "1.2.3"

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Equal(t, "jobradar version 1.2.3\n", buf.String())
}
