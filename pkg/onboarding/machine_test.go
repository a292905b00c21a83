package onboarding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oto-sh/oto/pkg/chat"
)

func TestFirstMessageAlwaysWelcomes(t *testing.T) {
	for _, input := range []string{"hello", "what is this", ""} {
		m := NewMachine()
		reply := m.Advance(input)
		require.Equal(t, 1, m.Step())
		require.Len(t, reply.Options, 3)
		require.Nil(t, reply.Action)
	}
}

func TestWorkBranchProposesSignup(t *testing.T) {
	m := NewMachine()
	m.Advance("hi")

	reply := m.Advance("I want to organize my work")
	require.Equal(t, 2, m.Step())
	require.NotNil(t, reply.Action)
	require.Equal(t, chat.ActionOpenWindow, reply.Action.Kind)
	require.Equal(t, "signup", reply.Action.Data.ID)
}

func TestKeywordPriorityWorkBeatsPersonal(t *testing.T) {
	m := NewMachine()
	m.Advance("hi")

	reply := m.Advance("I want help at work but also have personal goals")
	require.NotNil(t, reply.Action)
	require.Equal(t, "signup", reply.Action.Data.ID)
	// The personal branch has different copy; matching "work" first is what
	// makes this reply carry the work wording.
	require.Contains(t, reply.Content, "client work")
}

func TestExploreBranchOffersOptionsWithoutAction(t *testing.T) {
	m := NewMachine()
	m.Advance("hi")

	reply := m.Advance("just exploring")
	require.Nil(t, reply.Action)
	require.Len(t, reply.Options, 2)
	require.Equal(t, "Create Account", reply.Options[0].Label)
	require.Equal(t, "I have an account", reply.Options[1].Label)
}

func TestFallbackBranchStillProposesSignup(t *testing.T) {
	m := NewMachine()
	m.Advance("hi")

	reply := m.Advance("zzz nothing matches this")
	require.Equal(t, 2, m.Step())
	require.NotNil(t, reply.Action)
	require.Equal(t, "signup", reply.Action.Data.ID)
}

func TestStepTwoBranches(t *testing.T) {
	cases := []struct {
		input    string
		windowID string
	}{
		{"create account", "signup"},
		{"signup please", "signup"},
		{"login", "login"},
		{"i have an account", "login"},
	}
	for _, tc := range cases {
		m := NewMachine()
		m.Advance("hi")
		m.Advance("just exploring")

		reply := m.Advance(tc.input)
		require.NotNil(t, reply.Action, "input %q", tc.input)
		require.Equal(t, tc.windowID, reply.Action.Data.ID, "input %q", tc.input)
		require.Equal(t, 3, m.Step())
	}
}

func TestStepTwoUnrecognizedRepromptsWithoutAdvancing(t *testing.T) {
	m := NewMachine()
	m.Advance("hi")
	m.Advance("just exploring")

	reply := m.Advance("maybe later")
	require.Nil(t, reply.Action)
	require.Equal(t, 2, m.Step())

	// Still able to finish afterwards.
	reply = m.Advance("create account")
	require.NotNil(t, reply.Action)
	require.Equal(t, 3, m.Step())
}

func TestStepIsMonotonic(t *testing.T) {
	m := NewMachine()
	inputs := []string{"hi", "work please", "create", "anything", "more", "noise"}
	last := 0
	for _, in := range inputs {
		m.Advance(in)
		require.GreaterOrEqual(t, m.Step(), last)
		last = m.Step()
	}
	require.Equal(t, 3, last)
}

func TestTerminalHoldingState(t *testing.T) {
	m := NewMachine()
	m.Advance("hi")
	m.Advance("work")
	m.Advance("create")

	first := m.Advance("hello?")
	second := m.Advance("anyone there?")
	require.Equal(t, first.Content, second.Content)
	require.Nil(t, first.Action)
	require.Equal(t, 3, m.Step())
}

func TestExploreEndToEndScenario(t *testing.T) {
	m := NewMachine()

	welcome := m.Advance("hello")
	require.Len(t, welcome.Options, 3)

	explore := m.Advance(welcome.Options[2].Input) // "Just Exploring"
	require.Len(t, explore.Options, 2)
	require.Nil(t, explore.Action)

	confirm := m.Advance(explore.Options[0].Input) // "Create Account"
	require.NotNil(t, confirm.Action)
	require.Equal(t, "Open Sign Up", confirm.Action.Label)
	require.Equal(t, "signup", confirm.Action.Data.ID)
}
