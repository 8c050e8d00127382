package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// claims accepts the subject as "id" for tokens minted before sub was used.
type claims struct {
	Name     string `json:"name,omitempty"`
	Role     Role   `json:"role,omitempty"`
	LegacyID string `json:"id,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates and issues HS256 access tokens.
type Verifier struct {
	key    []byte
	issuer string
	leeway time.Duration
	ttl    time.Duration
	now    func() time.Time
}

// NewVerifier creates a Verifier from a finalized Config.
func NewVerifier(cfg *Config) *Verifier {
	return &Verifier{
		key:    []byte(cfg.SigningKey),
		issuer: cfg.Issuer,
		leeway: cfg.LeewayDuration(),
		ttl:    cfg.TokenTTLDuration(),
		now:    time.Now,
	}
}

// Verify parses token and returns the identity it asserts. Every failure
// wraps ErrInvalidToken.
func (v *Verifier) Verify(token string) (*Identity, error) {
	var c claims

	_, err := jwt.ParseWithClaims(
		token,
		&c,
		func(*jwt.Token) (any, error) { return v.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithLeeway(v.leeway),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	subject := c.Subject
	if subject == "" {
		subject = c.LegacyID
	}
	if subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	role := c.Role
	if role != RoleAdmin {
		role = RoleUser
	}

	return &Identity{
		OwnerID: subject,
		Name:    c.Name,
		Role:    role,
	}, nil
}

// Issue mints a token for id that expires after the configured TTL.
func (v *Verifier) Issue(id Identity) (string, error) {
	now := v.now()

	c := claims{
		Name: id.Name,
		Role: id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer,
			Subject:   id.OwnerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(v.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
