// Package jwt emite y verifica los tokens de sesión (HS256) de la API.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role rol de un usuario dentro de su empresa.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleSales Role = "sales" // cotizaciones, facturas, cobros, proyectos
	RoleStore Role = "store" // almacén: artículos y transacciones de inventario
)

// Valid indica si el rol es uno de los conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSales, RoleStore:
		return true
	}
	return false
}

// Allows admin pasa siempre; sin roles requeridos solo pasa admin.
func (r Role) Allows(required ...Role) bool {
	if r == RoleAdmin {
		return true
	}
	for _, want := range required {
		if r == want {
			return true
		}
	}
	return false
}

var (
	ErrEmptySecret  = errors.New("jwt: secret vacío")
	ErrInvalidToken = errors.New("jwt: token inválido o expirado")
	ErrUnknownRole  = errors.New("jwt: rol desconocido")
)

// Session identidad que viaja en el token. Role puede venir vacío en tokens emitidos
// antes de que existiera el claim; el middleware RBAC lo rechaza.
type Session struct {
	UserID    string
	CompanyID string
	Role      Role
}

type claims struct {
	jwt.RegisteredClaims
	CompanyID string `json:"company_id"`
	Role      Role   `json:"role,omitempty"`
}

// Signer emite y verifica tokens con un secreto compartido.
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// SignerOption ajusta un Signer.
type SignerOption func(*Signer)

// WithClock reemplaza el reloj usado para emitir y validar la expiración.
func WithClock(now func() time.Time) SignerOption {
	return func(s *Signer) { s.now = now }
}

// NewSigner construye el firmador. ttl ≤ 0 usa una hora.
func NewSigner(secret, issuer string, ttl time.Duration, opts ...SignerOption) (*Signer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	s := &Signer{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue firma un token para la sesión. El usuario viaja en el claim sub.
func (s *Signer) Issue(sess Session) (string, error) {
	if sess.UserID == "" || sess.CompanyID == "" {
		return "", fmt.Errorf("jwt: sesión sin usuario o empresa")
	}
	if !sess.Role.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, sess.Role)
	}
	now := s.now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   sess.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		CompanyID: sess.CompanyID,
		Role:      sess.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

// Verify valida firma, emisor y expiración y devuelve la sesión.
func (s *Signer) Verify(token string) (Session, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	var c claims
	if _, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Subject == "" || c.CompanyID == "" {
		return Session{}, fmt.Errorf("%w: sin usuario o empresa", ErrInvalidToken)
	}
	if c.Role != "" && !c.Role.Valid() {
		return Session{}, fmt.Errorf("%w: %q", ErrUnknownRole, c.Role)
	}
	return Session{UserID: c.Subject, CompanyID: c.CompanyID, Role: c.Role}, nil
}
