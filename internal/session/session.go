package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalid is returned by Verify for every kind of bad token: malformed,
// tampered, signed with the wrong key, or expired. Callers must treat all of
// them as "no valid session" and never surface the distinction to the client.
var ErrInvalid = errors.New("invalid session token")

// Codec issues and verifies stateless session tokens. A token is an HS256
// JWT carrying the user's email as the subject claim plus issued-at and
// expiry timestamps; validity is fully determined by the token and the
// signing secret, with no server-side session store.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec creates a Codec signing with secret. Tokens expire ttl after
// issuance; a zero or negative ttl falls back to 24 hours.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the token lifetime, which is also the cookie max age.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue returns a signed token for the given email.
func (c *Codec) Issue(email string) (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify checks the token's signature and expiry and returns the embedded
// email. Every failure mode collapses into ErrInvalid; the wrapped cause is
// available for internal logging via errors.Unwrap.
func (c *Codec) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		if err == nil {
			err = jwt.ErrTokenUnverifiable
		}
		return "", errors.Join(ErrInvalid, err)
	}
	if claims.Subject == "" {
		return "", ErrInvalid
	}
	return claims.Subject, nil
}
