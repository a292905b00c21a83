// Package windows is the single source of truth for which app windows are
// open. All mutations go through the Manager; nothing else touches the stack.
package windows

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Window is one open app surface. The stack index is the z-order: the last
// entry is on top and focused.
type Window struct {
	ID    string
	Title string
	App   tea.Model
}

type Manager struct {
	mu    sync.RWMutex
	stack []*Window
}

func NewManager() *Manager { return &Manager{} }

// Open mounts app under id. When a window with that id already exists, the
// existing one is brought to the front instead of being duplicated. An empty
// id is rejected so the stack can never hold an unaddressable window.
func (m *Manager) Open(id, title string, app tea.Model) error {
	if id == "" {
		log.Warn().Str("component", "window_manager").Msg("rejected open with empty window id")
		return errors.New("windows: empty window id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, w := range m.stack {
		if w.ID == id {
			m.stack = append(append(m.stack[:i], m.stack[i+1:]...), w)
			log.Debug().Str("component", "window_manager").Str("window_id", id).Msg("refocused existing window")
			return nil
		}
	}
	m.stack = append(m.stack, &Window{ID: id, Title: title, App: app})
	log.Debug().Str("component", "window_manager").Str("window_id", id).Str("title", title).Msg("opened window")
	return nil
}

// Close removes the window. Closing an id that is not open is a no-op.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, w := range m.stack {
		if w.ID == id {
			m.stack = append(m.stack[:i], m.stack[i+1:]...)
			log.Debug().Str("component", "window_manager").Str("window_id", id).Msg("closed window")
			return
		}
	}
}

// Focus brings id to the top of the stack. Returns false when absent.
func (m *Manager) Focus(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, w := range m.stack {
		if w.ID == id {
			m.stack = append(append(m.stack[:i], m.stack[i+1:]...), w)
			return true
		}
	}
	return false
}

// CycleFocus sends the focused window to the bottom, focusing the next one.
func (m *Manager) CycleFocus() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.stack) < 2 {
		return
	}
	top := m.stack[len(m.stack)-1]
	m.stack = append([]*Window{top}, m.stack[:len(m.stack)-1]...)
}

// Focused returns the top window.
func (m *Manager) Focused() (*Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.stack) == 0 {
		return nil, false
	}
	return m.stack[len(m.stack)-1], true
}

// Windows returns the stack bottom-to-top.
func (m *Manager) Windows() []*Window {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Window, len(m.stack))
	copy(out, m.stack)
	return out
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stack)
}

// SetApp swaps the mounted model for id, keeping its stack position. Used by
// the shell after routing an Update through a window's view.
func (m *Manager) SetApp(id string, app tea.Model) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.stack {
		if w.ID == id {
			w.App = app
			return
		}
	}
}
