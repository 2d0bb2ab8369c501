package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cineticket/portal/internal/core/domain"
	"github.com/cineticket/portal/internal/infrastructure/storage/memory"
)

func TestGates_AnonymousSession(t *testing.T) {
	st := newTestStore(memory.New())
	st.Restore(context.Background())

	assert.Equal(t, Decision{Redirect: "/login"}, AuthenticatedGate(st, "/login"))
	assert.Equal(t, Decision{Redirect: "/home"}, AdminGate(st, "/home"))
}

func TestGates_RegularUser(t *testing.T) {
	st := newTestStore(memory.New())
	require.NoError(t, st.Login(context.Background(), testIdentity(domain.RoleUser), tokenExpiringAt(t, now.Add(time.Hour))))

	assert.False(t, st.IsAdmin())
	assert.Equal(t, Decision{Allowed: true}, AuthenticatedGate(st, "/login"))
	assert.Equal(t, Decision{Redirect: "/home"}, AdminGate(st, "/home"))
}

func TestGates_Admin(t *testing.T) {
	st := newTestStore(memory.New())
	require.NoError(t, st.Login(context.Background(), testIdentity(domain.RoleAdminPrefix), tokenExpiringAt(t, now.Add(time.Hour))))

	assert.True(t, AuthenticatedGate(st, "/login").Allowed)
	assert.True(t, AdminGate(st, "/home").Allowed)
}

func TestGates_ReevaluatedAfterLogout(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(memory.New())
	require.NoError(t, st.Login(ctx, testIdentity(domain.RoleAdmin), tokenExpiringAt(t, now.Add(time.Hour))))
	require.True(t, AdminGate(st, "/home").Allowed)

	st.Logout(ctx)

	assert.False(t, AuthenticatedGate(st, "/login").Allowed)
	assert.False(t, AdminGate(st, "/home").Allowed)
}

func TestGates_NilState(t *testing.T) {
	assert.False(t, AuthenticatedGate(nil, "/login").Allowed)
	assert.False(t, AdminGate(nil, "/home").Allowed)
}
