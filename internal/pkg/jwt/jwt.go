package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Role string

const (
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	return r == RoleHR || r == RoleEmployee
}

// Identity is what an access token asserts about its bearer. EmployeeID is
// nil for HR accounts not linked to an employee record.
type Identity struct {
	UserID     string
	Email      string
	EmployeeID *string
	Role       Role
}

type Service interface {
	GenerateAccessToken(identity Identity) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(identity Identity) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":     identity.UserID,
		"email":       identity.Email,
		"employee_id": valueOrNil(identity.EmployeeID),
		"role":        string(identity.Role),
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// IdentityFromClaims rebuilds the identity carried by verified token claims.
func IdentityFromClaims(claims map[string]interface{}) (Identity, bool) {
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return Identity{}, false
	}

	userID, _ := claims["user_id"].(string)
	role := Role(stringClaim(claims, "role"))
	if userID == "" || !role.Valid() {
		return Identity{}, false
	}

	identity := Identity{
		UserID: userID,
		Email:  stringClaim(claims, "email"),
		Role:   role,
	}
	if employeeID := stringClaim(claims, "employee_id"); employeeID != "" {
		identity.EmployeeID = &employeeID
	}
	return identity, true
}

func stringClaim(claims map[string]interface{}, key string) string {
	v, _ := claims[key].(string)
	return v
}

func valueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

var ErrMissingIdentity = errors.New("missing or invalid access token")

// IdentityFromContext reads the identity of the token verified by jwtauth.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrMissingIdentity, err)
	}
	identity, ok := IdentityFromClaims(claims)
	if !ok {
		return Identity{}, ErrMissingIdentity
	}
	return identity, nil
}

// ContextWithToken decodes token and attaches it the way jwtauth.Verifier does.
func ContextWithToken(ctx context.Context, auth *jwtauth.JWTAuth, token string) (context.Context, error) {
	decoded, err := auth.Decode(token)
	if err != nil {
		return ctx, err
	}
	return jwtauth.NewContext(ctx, decoded, nil), nil
}

// IsHR reports whether the identity may use HR-only operations.
func (i Identity) IsHR() bool {
	return i.Role == RoleHR
}

// CanAccessEmployee reports whether the identity may read data of employeeID.
func (i Identity) CanAccessEmployee(employeeID string) bool {
	return i.IsHR() || (i.EmployeeID != nil && *i.EmployeeID == employeeID)
}

// ContextWithIdentity issues a token for identity and attaches it to ctx.
func ContextWithIdentity(ctx context.Context, s Service, identity Identity) (context.Context, error) {
	token, _, err := s.GenerateAccessToken(identity)
	if err != nil {
		return ctx, err
	}
	return ContextWithToken(ctx, s.JWTAuth(), token)
}
