package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/solar-epc-api/pkg/jwt"
)

const secret = "solar-epc-secret"

func newSigner(t *testing.T, opts ...jwt.SignerOption) *jwt.Signer {
	t.Helper()
	s, err := jwt.NewSigner(secret, "solar-epc", time.Hour, opts...)
	require.NoError(t, err)
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// Roles
// ──────────────────────────────────────────────────────────────────────────────

func TestRole_Allows(t *testing.T) {
	assert.True(t, jwt.RoleAdmin.Allows(), "admin pasa en rutas solo-admin")
	assert.True(t, jwt.RoleAdmin.Allows(jwt.RoleStore))
	assert.True(t, jwt.RoleSales.Allows(jwt.RoleSales, jwt.RoleStore))
	assert.False(t, jwt.RoleSales.Allows(), "sin roles requeridos solo admin")
	assert.False(t, jwt.RoleStore.Allows(jwt.RoleSales))
	assert.False(t, jwt.Role("bodeguero").Valid())
}

// ──────────────────────────────────────────────────────────────────────────────
// Emisión y verificación
// ──────────────────────────────────────────────────────────────────────────────

func TestSigner_IssueAndVerify(t *testing.T) {
	s := newSigner(t)
	tok, err := s.Issue(jwt.Session{UserID: "u-1", CompanyID: "co-1", Role: jwt.RoleStore})
	require.NoError(t, err)

	sess, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, jwt.Session{UserID: "u-1", CompanyID: "co-1", Role: jwt.RoleStore}, sess)
}

func TestSigner_Issue_Validation(t *testing.T) {
	s := newSigner(t)
	_, err := s.Issue(jwt.Session{UserID: "u-1", CompanyID: "co-1", Role: "bodeguero"})
	assert.ErrorIs(t, err, jwt.ErrUnknownRole)
	_, err = s.Issue(jwt.Session{CompanyID: "co-1", Role: jwt.RoleSales})
	assert.Error(t, err)

	_, err = jwt.NewSigner("", "solar-epc", time.Hour)
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)
}

func TestSigner_TokenExpirado(t *testing.T) {
	past := newSigner(t, jwt.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }))
	tok, err := past.Issue(jwt.Session{UserID: "u-1", CompanyID: "co-1", Role: jwt.RoleAdmin})
	require.NoError(t, err)

	_, err = newSigner(t).Verify(tok)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestSigner_SecretOEmisorDistinto(t *testing.T) {
	tok, err := newSigner(t).Issue(jwt.Session{UserID: "u-1", CompanyID: "co-1", Role: jwt.RoleSales})
	require.NoError(t, err)

	other, err := jwt.NewSigner("otro-secret", "solar-epc", time.Hour)
	require.NoError(t, err)
	_, err = other.Verify(tok)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	otherIssuer, err := jwt.NewSigner(secret, "otro-emisor", time.Hour)
	require.NoError(t, err)
	_, err = otherIssuer.Verify(tok)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestSigner_RolDesconocidoEnToken(t *testing.T) {
	tok := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"iss": "solar-epc", "sub": "u-1", "company_id": "co-1", "role": "root",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = newSigner(t).Verify(signed)
	assert.ErrorIs(t, err, jwt.ErrUnknownRole)
}

func TestSigner_TokenSinRol(t *testing.T) {
	tok := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"iss": "solar-epc", "sub": "u-1", "company_id": "co-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)

	sess, err := newSigner(t).Verify(signed)
	require.NoError(t, err)
	assert.Empty(t, sess.Role)
}
