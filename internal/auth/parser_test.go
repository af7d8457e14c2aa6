package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/checkbook-insights/internal/model"
)

func TestParserRoundTrip(t *testing.T) {
	parser := NewParser("secret")
	principal := model.Principal{UserID: uuid.New(), Role: model.RoleAdmin}

	token, err := parser.Issue(principal, time.Minute)
	require.NoError(t, err)

	got, err := parser.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, principal, got)
	assert.True(t, got.IsAdmin())
}

func TestParserRejects(t *testing.T) {
	parser := NewParser("secret")
	other := NewParser("other")
	principal := model.Principal{UserID: uuid.New()}

	foreign, err := other.Issue(principal, time.Minute)
	require.NoError(t, err)
	expired, err := parser.Issue(principal, -time.Minute)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":   "not-a-token",
		"signature": foreign,
		"expired":   expired,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parser.Parse(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestParserDefaultsRole(t *testing.T) {
	parser := NewParser("secret")
	token, err := parser.Issue(model.Principal{UserID: uuid.New()}, time.Minute)
	require.NoError(t, err)

	got, err := parser.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleViewer, got.Role)
}

func TestDisabledParser(t *testing.T) {
	assert.False(t, NewParser("  ").Enabled())
	_, err := NewParser("").Issue(model.Principal{}, time.Minute)
	assert.Error(t, err)
}
