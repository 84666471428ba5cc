// internal/pkg/session/cookie.go
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const CookieName = "plotaura.sid"

// CookieCodec signs and verifies the session cookie value. The cookie
// carries only the opaque session id inside an HS256 token, so a client
// cannot mint or alter an id without the signing secret.
type CookieCodec struct {
	secret []byte
	secure bool
}

func NewCookieCodec(secret string, secure bool) *CookieCodec {
	return &CookieCodec{secret: []byte(secret), secure: secure}
}

// Encode produces the signed cookie value for a session id.
func (c *CookieCodec) Encode(sessionID string, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sessionID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("session: failed to sign cookie: %w", err)
	}
	return signed, nil
}

// Decode verifies a cookie value and extracts the session id. Any
// tampered, expired, or otherwise unverifiable value is reported as an
// error; the caller treats it as no cookie at all.
func (c *CookieCodec) Decode(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("session: invalid cookie: %w", err)
	}
	if claims.ID == "" {
		return "", fmt.Errorf("session: cookie carries no session id")
	}
	return claims.ID, nil
}

// SetCookie issues the session cookie. HttpOnly is unconditional; the
// Secure flag follows the codec's configuration.
func (c *CookieCodec) SetCookie(w http.ResponseWriter, value string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt) / time.Second),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie from the client.
func (c *CookieCodec) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
