// ABOUTME: Signed session tokens carrying identity and tenant claims
// ABOUTME: HS256 JWTs with a 7-day horizon; verification fails closed

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is how long an issued session stays valid.
const SessionTTL = 7 * 24 * time.Hour

// Token errors
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrInvalidPayload = errors.New("missing required claim")
	ErrNoSecret       = errors.New("session secret is not configured")
)

// SessionClaims are the identity facts embedded in a signed session token.
// Claims are immutable once issued; changing tenant or role means issuing
// a fresh token.
type SessionClaims struct {
	Subject   string
	Email     string
	Name      string
	OrgID     string
	OrgName   string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer signs and verifies session tokens with a symmetric secret.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

// NewIssuer creates a token issuer. An empty secret is a configuration
// error, never a silent fallback.
func NewIssuer(secret []byte) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &Issuer{secret: secret, now: time.Now}, nil
}

// WithClock overrides the issuer's time source. Tests use this to simulate
// token expiry without sleeping.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// Issue signs the claims with expiry SessionTTL from now. IssuedAt and
// ExpiresAt on the input are ignored and stamped fresh.
func (i *Issuer) Issue(claims SessionClaims) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      claims.Subject,
		"email":    claims.Email,
		"name":     claims.Name,
		"org_id":   claims.OrgID,
		"org_name": claims.OrgName,
		"role":     string(claims.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(SessionTTL).Unix(),
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify validates the token signature and expiry and extracts the session
// claims. Mandatory claims are sub, email and org_id; a structurally valid,
// unexpired token missing any of them fails with ErrInvalidPayload.
func (i *Issuer) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := &SessionClaims{
		Subject: stringClaim(mapClaims, "sub"),
		Email:   stringClaim(mapClaims, "email"),
		Name:    stringClaim(mapClaims, "name"),
		OrgID:   stringClaim(mapClaims, "org_id"),
		OrgName: stringClaim(mapClaims, "org_name"),
		Role:    Role(stringClaim(mapClaims, "role")),
	}

	for claim, value := range map[string]string{
		"sub":    claims.Subject,
		"email":  claims.Email,
		"org_id": claims.OrgID,
	} {
		if value == "" {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, claim)
		}
	}

	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	return claims, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
