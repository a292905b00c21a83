package views

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestContactsFetchFailureRendersError(t *testing.T) {
	m := NewContacts(Env{})

	next, _ := m.Update(contactsLoadedMsg{err: errors.New("connection refused")})
	cm, ok := next.(ContactsModel)
	require.True(t, ok)

	out := cm.View()
	require.Contains(t, out, "Couldn't reach the server.")
	require.Contains(t, out, "No contacts yet.")
}

func TestBillingFetchFailureRendersError(t *testing.T) {
	m := NewBilling(Env{})

	next, _ := m.Update(profileLoadedMsg{err: errors.New("connection refused")})
	bm, ok := next.(BillingModel)
	require.True(t, ok)

	out := bm.View()
	require.Contains(t, out, "Couldn't load your plan.")
}
