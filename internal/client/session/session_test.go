package session

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gradebook/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_AuthenticationState(t *testing.T) {
	tests := []struct {
		name       string
		s          Session
		authed     bool
		consistent bool
	}{
		{name: "empty", s: Session{}, authed: false, consistent: true},
		{name: "both", s: Session{Role: models.RoleAdmin, AccessToken: "t1"}, authed: true, consistent: true},
		{name: "token only", s: Session{AccessToken: "t1"}, authed: false, consistent: false},
		{name: "role only", s: Session{Role: models.RoleTeacher}, authed: false, consistent: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.authed, tt.s.IsAuthenticated())
			assert.Equal(t, tt.consistent, tt.s.Consistent())
		})
	}
}

func TestFromLogin(t *testing.T) {
	s := FromLogin(&models.LoginResponse{
		AccessToken:        "tok",
		Role:               models.RoleTeacher,
		Username:           "teacher1",
		UserID:             42,
		MustChangePassword: true,
	})
	assert.Equal(t, Session{
		AccessToken:        "tok",
		UserID:             "42",
		Role:               models.RoleTeacher,
		Username:           "teacher1",
		MustChangePassword: true,
	}, s)
}

func TestMemoryStore_RoundTripAndClear(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	want := Session{AccessToken: "t", UserID: "1", Role: models.RoleAdmin, Username: "admin1"}
	require.NoError(t, m.Save(ctx, want))

	got, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	tok, err := m.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t", tok)

	require.NoError(t, m.Clear(ctx))
	assert.Equal(t, 0, m.Len())
	got, err = m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Session{}, got)
}

func TestMemoryStore_PartialRecord(t *testing.T) {
	m := NewMemoryStore()
	m.Set(KeyAccessToken, "t1")

	got, err := m.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, got.Consistent())
	assert.False(t, got.IsAuthenticated())
}
