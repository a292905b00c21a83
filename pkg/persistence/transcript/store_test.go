package transcript

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oto-sh/oto/pkg/chat"
)

func TestAppendAndCount(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "transcripts.db"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	ctx := context.Background()
	u := chat.NewMessage(chat.RoleUser, "hello")
	a := chat.NewMessage(chat.RoleAgent, "hey there")

	require.NoError(t, s.Append(ctx, "sess-1", u))
	require.NoError(t, s.Append(ctx, "sess-1", a))
	// Duplicate message ids are ignored, not duplicated.
	require.NoError(t, s.Append(ctx, "sess-1", u))

	n, err := s.Count(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = s.Count(ctx, "sess-2")
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestAppendRejectsEmptySession(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "transcripts.db"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	err = s.Append(context.Background(), "", chat.NewMessage(chat.RoleUser, "x"))
	require.Error(t, err)
}
