package prefs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryMissingKeysReadAsZero(t *testing.T) {
	s := NewMemory()

	on, err := s.GetBool("autoapprove.auth_window")
	require.NoError(t, err)
	require.False(t, on)

	v, err := s.GetString("theme")
	require.NoError(t, err)
	require.Equal(t, "", v)
}

func TestMemoryRejectsEmptyKey(t *testing.T) {
	s := NewMemory()
	require.Error(t, s.SetString("", "x"))
	_, err := s.GetBool("")
	require.Error(t, err)
}

func TestBoltRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	s, err := OpenBolt(path)
	require.NoError(t, err)

	require.NoError(t, s.SetBool(AutoApproveKey("auth_window"), true))
	require.NoError(t, s.SetString(KeyTheme, "dark"))
	require.NoError(t, s.Close())

	// Reopen to verify the values actually hit disk.
	s, err = OpenBolt(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	on, err := s.GetBool(AutoApproveKey("auth_window"))
	require.NoError(t, err)
	require.True(t, on)

	theme, err := s.GetString(KeyTheme)
	require.NoError(t, err)
	require.Equal(t, "dark", theme)

	keys, err := s.Keys()
	require.NoError(t, err)
	require.Equal(t, []string{AutoApproveKey("auth_window"), KeyTheme}, keys)
}

func TestBoltDeleteAndLastWriteWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	s, err := OpenBolt(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.SetBool("flag", true))
	require.NoError(t, s.SetBool("flag", false))
	on, err := s.GetBool("flag")
	require.NoError(t, err)
	require.False(t, on)

	require.NoError(t, s.Delete("flag"))
	on, err = s.GetBool("flag")
	require.NoError(t, err)
	require.False(t, on)
}
