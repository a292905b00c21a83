package prefs

import (
	"sort"
	"strconv"
	"sync"

	"github.com/pkg/errors"
)

// Store is the key-value capability used for device-local preferences.
// Implementations are last-write-wins; missing keys read as zero values
// rather than errors.
type Store interface {
	GetBool(key string) (bool, error)
	SetBool(key string, v bool) error
	GetString(key string) (string, error)
	SetString(key, v string) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

// Well-known preference keys.
const (
	KeyTheme              = "theme"
	KeyOnboardingDone     = "onboarding.done"
	KeyOnboardingAnswers  = "onboarding.answers"
	autoApprovePrefix     = "autoapprove."
)

// AutoApproveKey namespaces a per-action auto-approve flag.
func AutoApproveKey(action string) string {
	return autoApprovePrefix + action
}

// Memory is an in-memory Store for tests and ephemeral sessions.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

var _ Store = &Memory{}

func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) GetBool(key string) (bool, error) {
	if key == "" {
		return false, errors.New("prefs: empty key")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.values[key]
	if !ok {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.Wrapf(err, "prefs: key %s is not a bool", key)
	}
	return v, nil
}

func (m *Memory) SetBool(key string, v bool) error {
	return m.SetString(key, strconv.FormatBool(v))
}

func (m *Memory) GetString(key string) (string, error) {
	if key == "" {
		return "", errors.New("prefs: empty key")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *Memory) SetString(key, v string) error {
	if key == "" {
		return errors.New("prefs: empty key")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = v
	return nil
}

func (m *Memory) Delete(key string) error {
	if key == "" {
		return errors.New("prefs: empty key")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *Memory) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) Close() error { return nil }
