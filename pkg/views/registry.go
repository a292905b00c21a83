// Package views holds the closed set of app views the shell can mount inside
// a window, and the registry that lazily instantiates them.
package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/oto-sh/oto/pkg/api"
	"github.com/oto-sh/oto/pkg/prefs"
	"github.com/oto-sh/oto/pkg/session"
)

// ID identifies a view. The set is closed: the launchpad, the onboarding
// funnel and the window manager all dispatch on these values.
type ID string

const (
	Settings      ID = "settings"
	Contacts      ID = "contacts"
	Spaces        ID = "spaces"
	Conversations ID = "conversations"
	Articles      ID = "articles"
	Labs          ID = "labs"
	Agents        ID = "agents"
	Billing       ID = "billing"
	Login         ID = "login"
	Signup        ID = "signup"
)

// Title is the default window title for a view.
func (id ID) Title() string {
	switch id {
	case Settings:
		return "Settings"
	case Contacts:
		return "Contacts"
	case Spaces:
		return "Spaces"
	case Conversations:
		return "Conversations"
	case Articles:
		return "Articles"
	case Labs:
		return "Labs"
	case Agents:
		return "Agents"
	case Billing:
		return "Billing"
	case Login:
		return "Sign In"
	case Signup:
		return "Create your account"
	default:
		return string(id)
	}
}

// Env carries the collaborators a view may need. Views fetch their own data
// through API and degrade to an empty state on failure.
type Env struct {
	API     *api.Client
	Session session.Authority
	Prefs   prefs.Store

	// Authenticate is invoked when a login or signup form completes.
	Authenticate func(session.Session)
}

// Factory builds a fresh view instance. Views are instantiated lazily, only
// when a window for them is first opened.
type Factory func(Env) tea.Model

type Registry struct {
	factories map[ID]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: map[ID]Factory{}}
}

func (r *Registry) Register(id ID, f Factory) {
	r.factories[id] = f
}

// Resolve instantiates the view for id. Unknown ids are an error, not a
// silent blank window.
func (r *Registry) Resolve(id ID, env Env) (tea.Model, error) {
	f, ok := r.factories[id]
	if !ok {
		return nil, errors.Errorf("views: unknown view %q", id)
	}
	return f(env), nil
}

// RegisterBuiltins wires every shipped view into the registry.
func RegisterBuiltins(r *Registry) {
	r.Register(Settings, func(env Env) tea.Model { return NewSettings(env) })
	r.Register(Contacts, func(env Env) tea.Model { return NewContacts(env) })
	r.Register(Spaces, func(env Env) tea.Model { return NewSpaces(env) })
	r.Register(Conversations, func(env Env) tea.Model { return NewConversations(env) })
	r.Register(Articles, func(env Env) tea.Model { return NewArticles(env) })
	r.Register(Labs, func(env Env) tea.Model { return NewLabs(env) })
	r.Register(Agents, func(env Env) tea.Model { return NewAgents(env) })
	r.Register(Billing, func(env Env) tea.Model { return NewBilling(env) })
	r.Register(Login, func(env Env) tea.Model { return NewLogin(env) })
	r.Register(Signup, func(env Env) tea.Model { return NewSignup(env) })
}
