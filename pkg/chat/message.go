// Package chat defines the conversation data model shared by the home-screen
// timeline, the scripted reply engine and the transcript archive.
package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/oto-sh/oto/pkg/views"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

type OptionVariant string

const (
	OptionPrimary   OptionVariant = "primary"
	OptionSecondary OptionVariant = "secondary"
)

// Option is a quick-reply shortcut. Selecting it feeds Input back through the
// same pipeline as typed text.
type Option struct {
	Label   string        `json:"label"`
	Input   string        `json:"input"`
	Variant OptionVariant `json:"variant"`
}

type ActionKind string

const ActionOpenWindow ActionKind = "open_window"

// OpenWindowData names the window an action request wants materialized. The
// window manager receives these three values unchanged.
type OpenWindowData struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	View  views.ID `json:"view"`
}

// ActionRequest is a structured proposal embedded in a message, executed
// later by an action card rather than immediately on receipt.
type ActionRequest struct {
	Kind           ActionKind     `json:"kind"`
	Label          string         `json:"label"`
	AutoApproveKey string         `json:"auto_approve_key,omitempty"`
	Data           OpenWindowData `json:"data"`
}

// Message is one entry of the append-only session timeline. Messages are
// never mutated after creation and do not survive a restart.
type Message struct {
	ID        string         `json:"id"`
	Role      Role           `json:"role"`
	Content   string         `json:"content,omitempty"`
	Timestamp string         `json:"timestamp"`
	Options   []Option       `json:"options,omitempty"`
	Action    *ActionRequest `json:"action,omitempty"`
}

func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().Format("3:04 PM"),
	}
}
