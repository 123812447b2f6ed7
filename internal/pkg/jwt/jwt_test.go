package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")
	employeeID := "emp-1"

	token, expiresAt, err := svc.GenerateAccessToken(Identity{
		UserID:     "user-1",
		Email:      "asha@example.com",
		EmployeeID: &employeeID,
		Role:       RoleEmployee,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Positive(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(t.Context())
	require.NoError(t, err)

	identity, ok := IdentityFromClaims(claims)
	require.True(t, ok)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, RoleEmployee, identity.Role)
	require.NotNil(t, identity.EmployeeID)
	assert.Equal(t, "emp-1", *identity.EmployeeID)
}

func TestGenerateAccessToken_InvalidDuration(t *testing.T) {
	svc := NewJWTService("test-secret", "forever")
	_, _, err := svc.GenerateAccessToken(Identity{UserID: "u", Role: RoleHR})
	assert.Error(t, err)
}

func TestIdentityFromClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]interface{}
		ok     bool
	}{
		{"hr without employee", map[string]interface{}{"type": "access", "user_id": "u1", "role": "hr"}, true},
		{"refresh token rejected", map[string]interface{}{"type": "refresh", "user_id": "u1", "role": "hr"}, false},
		{"unknown role", map[string]interface{}{"type": "access", "user_id": "u1", "role": "admin"}, false},
		{"missing user", map[string]interface{}{"type": "access", "role": "hr"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, ok := IdentityFromClaims(tt.claims)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Nil(t, identity.EmployeeID)
			}
		})
	}
}

func TestIdentityFromContext(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	_, err := IdentityFromContext(t.Context())
	assert.ErrorIs(t, err, ErrMissingIdentity)

	token, _, err := svc.GenerateAccessToken(Identity{UserID: "u1", Role: RoleHR})
	require.NoError(t, err)
	ctx, err := ContextWithToken(t.Context(), svc.JWTAuth(), token)
	require.NoError(t, err)

	identity, err := IdentityFromContext(ctx)
	require.NoError(t, err)
	assert.True(t, identity.IsHR())
	assert.True(t, identity.CanAccessEmployee("anyone"))
}

func TestIdentity_CanAccessEmployee(t *testing.T) {
	own := "emp-1"
	identity := Identity{UserID: "u1", Role: RoleEmployee, EmployeeID: &own}
	assert.True(t, identity.CanAccessEmployee("emp-1"))
	assert.False(t, identity.CanAccessEmployee("emp-2"))
	assert.False(t, Identity{Role: RoleEmployee}.CanAccessEmployee("emp-1"))
}
