package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oto-sh/oto/pkg/chat"
	"github.com/oto-sh/oto/pkg/onboarding"
)

func receive(t *testing.T, ch <-chan chat.Message) chat.Message {
	t.Helper()
	select {
	case m := <-ch:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for assistant reply")
		return chat.Message{}
	}
}

func TestSubmitPublishesScriptedReply(t *testing.T) {
	machine := onboarding.NewMachine()
	e := New(machine, WithDelay(0))
	defer func() { _ = e.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := e.Subscribe(ctx)
	require.NoError(t, err)

	e.Submit("hello")
	// The machine advances synchronously, before the delayed reply lands.
	require.Equal(t, 1, machine.Step())

	m := receive(t, ch)
	require.Equal(t, chat.RoleAgent, m.Role)
	require.Len(t, m.Options, 3)
	require.Nil(t, m.Action)
}

func TestActionRequestSurvivesTheBus(t *testing.T) {
	machine := onboarding.NewMachine()
	e := New(machine, WithDelay(0))
	defer func() { _ = e.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := e.Subscribe(ctx)
	require.NoError(t, err)

	e.Submit("hello")
	receive(t, ch)

	e.Submit("organize my work")
	m := receive(t, ch)
	require.NotNil(t, m.Action)
	require.Equal(t, chat.ActionOpenWindow, m.Action.Kind)
	require.Equal(t, "signup", m.Action.Data.ID)
	require.Equal(t, "auth_window", m.Action.AutoApproveKey)
}

func TestAuthenticatedTurnsBypassTheFunnel(t *testing.T) {
	machine := onboarding.NewMachine()
	e := New(machine, WithDelay(0))
	defer func() { _ = e.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := e.Subscribe(ctx)
	require.NoError(t, err)

	e.SubmitAuthenticated("hello")
	require.Equal(t, 0, machine.Step())

	m := receive(t, ch)
	require.Equal(t, chat.RoleAgent, m.Role)
	require.Nil(t, m.Action)
	require.Empty(t, m.Options)
}

func TestCloseDropsPendingReplies(t *testing.T) {
	machine := onboarding.NewMachine()
	e := New(machine, WithDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := e.Subscribe(ctx)
	require.NoError(t, err)

	e.Submit("hello")
	require.NoError(t, e.Close())

	select {
	case _, ok := <-ch:
		require.False(t, ok, "expected closed channel, not a reply")
	case <-time.After(200 * time.Millisecond):
	}
}
