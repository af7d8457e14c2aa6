package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nurpe/checkbook-insights/internal/model"
)

var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Parser validates HS256 access tokens. A parser without a secret is
// disabled and every request passes.
type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(strings.TrimSpace(secret))}
}

func (p *Parser) Enabled() bool {
	return p != nil && len(p.secret) > 0
}

func (p *Parser) Parse(token string) (model.Principal, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		return p.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return model.Principal{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: subject is not a uuid", ErrInvalidToken)
	}
	role := c.Role
	if role == "" {
		role = model.RoleViewer
	}
	return model.Principal{UserID: userID, Role: role}, nil
}

// Issue signs a token for principal, valid for ttl. Used by the CLI and tests.
func (p *Parser) Issue(principal model.Principal, ttl time.Duration) (string, error) {
	if !p.Enabled() {
		return "", errors.New("no signing secret configured")
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: principal.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(p.secret)
}
