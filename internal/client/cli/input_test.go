package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubTerminal(t *testing.T, terminal bool, pw []byte, err error) {
	t.Helper()
	oldTerm, oldRead := isTerminal, readPassword
	t.Cleanup(func() { isTerminal, readPassword = oldTerm, oldRead })
	isTerminal = func(int) bool { return terminal }
	readPassword = func(int) ([]byte, error) { return pw, err }
}

func TestGetSimpleText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"line", "alice\n", "alice", nil},
		{"trims", "  bob \r\n", "bob", nil},
		{"partial at eof", "carol", "carol", nil},
		{"empty eof", "", "", io.EOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetSimpleText(bufio.NewReader(strings.NewReader(tt.input)), "Name", &out)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Name\n> ", out.String())
		})
	}
}

func TestGetPassword_PipedInput(t *testing.T) {
	stubTerminal(t, false, nil, nil)

	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("secret1\nnext\n"))
	pw, err := GetPassword(reader, "Enter password", &out)
	require.NoError(t, err)
	assert.Equal(t, "secret1", string(pw))
	assert.Equal(t, "Enter password: ", out.String())

	rest, err := readLine(reader)
	require.NoError(t, err)
	assert.Equal(t, "next", rest, "shared reader keeps the following line")
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true, []byte("hidden"), nil)

	var out bytes.Buffer
	pw, err := GetPassword(bufio.NewReader(strings.NewReader("")), "Enter password", &out)
	require.NoError(t, err)
	assert.Equal(t, "hidden", string(pw))
	assert.Equal(t, "Enter password: \n", out.String())
}

func TestGetPassword_TerminalError(t *testing.T) {
	boom := errors.New("boom")
	stubTerminal(t, true, nil, boom)

	_, err := GetPassword(bufio.NewReader(strings.NewReader("")), "p", io.Discard)
	require.ErrorIs(t, err, boom)
}

func TestWipe(t *testing.T) {
	b := []byte("secret")
	wipe(b)
	assert.Equal(t, make([]byte, 6), b)
}
