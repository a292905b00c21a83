// Package onboarding implements the guest funnel: a scripted, deterministic
// conversation that walks an unauthenticated visitor toward creating an
// account. Intent detection is deliberately keyword matching over an ordered
// rule list, so a real classifier can replace it later without changing the
// machine's shape or the reply contract.
package onboarding

import (
	"strings"
	"sync"

	"github.com/oto-sh/oto/pkg/chat"
	"github.com/oto-sh/oto/pkg/views"
)

// Reply is what the machine produces for one guest turn. It maps 1:1 onto an
// assistant chat.Message.
type Reply struct {
	Content string
	Options []chat.Option
	Action  *chat.ActionRequest
}

// Machine holds the per-session funnel cursor. The step only moves forward;
// it resets when the process does.
type Machine struct {
	mu   sync.Mutex
	step int
}

func NewMachine() *Machine { return &Machine{} }

func (m *Machine) Step() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step
}

// rule pairs a keyword predicate with the reply it produces. Rules are
// evaluated in order; the first match wins.
type rule struct {
	match   func(string) bool
	respond func() Reply
}

func containsAny(words ...string) func(string) bool {
	return func(input string) bool {
		for _, w := range words {
			if strings.Contains(input, w) {
				return true
			}
		}
		return false
	}
}

// Advance consumes one guest input and returns the scripted reply. The step
// cursor never decreases.
func (m *Machine) Advance(input string) Reply {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowered := strings.ToLower(input)
	switch {
	case m.step == 0:
		m.step = 1
		return welcomeReply()
	case m.step == 1:
		m.step = 2
		for _, r := range intentRules {
			if r.match(lowered) {
				return r.respond()
			}
		}
		return fallbackReply()
	case m.step == 2:
		for _, r := range authRules {
			if r.match(lowered) {
				m.step = 3
				return r.respond()
			}
		}
		// Unrecognized input re-prompts without advancing.
		return Reply{Content: "I can set you up either way — just say **sign up** to create an account, or **log in** if you already have one."}
	default:
		return Reply{Content: "Finish signing in using the window I opened for you, and your desktop will unlock."}
	}
}

// intentRules is the step-1 branch table. Order matters: "work" outranks
// "personal" outranks "explore".
var intentRules = []rule{
	{
		match: containsAny("work"),
		respond: func() Reply {
			return Reply{
				Content: "Great — Oto keeps your client work, newsletters and community in one place. Let's get you an account so nothing gets lost.",
				Action:  signupAction(),
			}
		},
	},
	{
		match: containsAny("personal"),
		respond: func() Reply {
			return Reply{
				Content: "Personal projects deserve good tooling too. Create an account and I'll set up a quiet little workspace for you.",
				Action:  signupAction(),
			}
		},
	},
	{
		match: containsAny("explore"),
		respond: func() Reply {
			return Reply{
				Content: "Feel free to look around! The Labs are open to everyone. When you want the full desktop, pick one of these:",
				Options: []chat.Option{
					{Label: "Create Account", Input: "create account", Variant: chat.OptionPrimary},
					{Label: "I have an account", Input: "i have an account", Variant: chat.OptionSecondary},
				},
			}
		},
	},
}

// authRules is the step-2 branch table.
var authRules = []rule{
	{
		match: containsAny("create", "signup", "sign up"),
		respond: func() Reply {
			return Reply{
				Content: "Perfect. I've prepared the signup window for you.",
				Action:  signupAction(),
			}
		},
	},
	{
		match: containsAny("login", "log in", "have"),
		respond: func() Reply {
			return Reply{
				Content: "Welcome back. Opening the sign-in window.",
				Action:  loginAction(),
			}
		},
	},
}

func welcomeReply() Reply {
	return Reply{
		Content: "Hey, I'm Oto — your studio assistant. What brings you here today?",
		Options: []chat.Option{
			{Label: "Organize my Work", Input: "organize my work", Variant: chat.OptionPrimary},
			{Label: "Personal Projects", Input: "personal projects", Variant: chat.OptionPrimary},
			{Label: "Just Exploring", Input: "just exploring", Variant: chat.OptionSecondary},
		},
	}
}

func fallbackReply() Reply {
	return Reply{
		Content: "Whatever you're building, the first step is the same: grab an account and the desktop is yours.",
		Action:  signupAction(),
	}
}

func signupAction() *chat.ActionRequest {
	return &chat.ActionRequest{
		Kind:           chat.ActionOpenWindow,
		Label:          "Open Sign Up",
		AutoApproveKey: "auth_window",
		Data: chat.OpenWindowData{
			ID:    "signup",
			Title: views.Signup.Title(),
			View:  views.Signup,
		},
	}
}

func loginAction() *chat.ActionRequest {
	return &chat.ActionRequest{
		Kind:           chat.ActionOpenWindow,
		Label:          "Open Log In",
		AutoApproveKey: "auth_window",
		Data: chat.OpenWindowData{
			ID:    "login",
			Title: views.Login.Title(),
			View:  views.Login,
		},
	}
}
