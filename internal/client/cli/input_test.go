package cli

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleText_EOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetWithDefault(t *testing.T) {
	var out bytes.Buffer
	got, err := GetWithDefault(rdr("\n"), "Title", "Old", &out)
	require.NoError(t, err)
	assert.Equal(t, "Old", got)
	assert.Contains(t, out.String(), "Title [Old]")

	got, err = GetWithDefault(rdr("New\n"), "Title", "Old", &out)
	require.NoError(t, err)
	assert.Equal(t, "New", got)
}

func TestGetChoice(t *testing.T) {
	opts := []string{"Auto-Mobiles", "Lathe"}
	tests := []struct {
		in, def, want string
	}{
		{"2\n", "", "Lathe"},
		{"lathe\n", "", "Lathe"},
		{"\n", "Auto-Mobiles", "Auto-Mobiles"},
		{"9\n", "", "9"},
		{"Welding\n", "", "Welding"},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := GetChoice(rdr(tt.in), "Category", opts, tt.def, &out)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Contains(t, out.String(), "  1) Auto-Mobiles\n  2) Lathe\n")
	}
}

func TestGetMultiline(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("a\nb\n\n"), "Description", "", &out)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", got)

	got, err = GetMultiline(rdr("\n"), "Description", "keep me", &out)
	require.NoError(t, err)
	assert.Equal(t, "keep me", got)

	got, err = GetMultiline(rdr("tail"), "Description", "", &out)
	require.NoError(t, err)
	assert.Equal(t, "tail", got)

	_, err = GetMultiline(rdr(""), "Description", "", &out)
	assert.ErrorIs(t, err, io.EOF)
}

func TestConfirm(t *testing.T) {
	for in, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "maybe\n": false} {
		var out bytes.Buffer
		got, err := Confirm(rdr(in), "Delete?", &out)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
		assert.Equal(t, "Delete? [y/N]: ", out.String())
	}
}
