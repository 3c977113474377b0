package cli

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYesNo(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"maybe\nno\n", true, false},
		{"", true, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, yesNo(strings.NewReader(tt.input), io.Discard, "Overwrite?", tt.def), "input %q", tt.input)
	}
}

func TestReadPassword(t *testing.T) {
	password, err := ReadPassword(strings.NewReader("hunter2\nignored\n"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hunter2"), password)

	password, err = ReadPassword(strings.NewReader("no newline"))
	require.NoError(t, err)
	assert.Equal(t, []byte("no newline"), password)

	password, err = ReadPassword(strings.NewReader("crlf\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []byte("crlf"), password)

	_, err = ReadPassword(strings.NewReader("\n"))
	assert.Error(t, err)
}
