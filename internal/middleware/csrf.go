package middleware

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	CSRFCookieName = "csrf_token"
	CSRFHeaderName = "X-CSRF-Token"

	csrfTokenTTL = time.Hour
)

// csrfExemptPaths skip validation: health probes and the token endpoint
// itself (needed to obtain the initial token).
var csrfExemptPaths = map[string]bool{
	"/":               true,
	"/health":         true,
	"/api/csrf-token": true,
}

// GenerateCSRFToken issues a signed token: random data and a timestamp,
// bound by an HMAC so the value cannot be forged.
func GenerateCSRFToken(secret string) string {
	nonce := make([]byte, 16)
	rand.Read(nonce)
	payload := fmt.Sprintf("%s:%d", hex.EncodeToString(nonce), time.Now().Unix())
	return payload + ":" + signCSRF(secret, payload)
}

// VerifyCSRFToken checks the signature and the token age.
func VerifyCSRFToken(secret, token string) bool {
	parts := strings.Split(token, ":")
	if len(parts) != 3 {
		return false
	}
	payload := parts[0] + ":" + parts[1]
	if !hmac.Equal([]byte(signCSRF(secret, payload)), []byte(parts[2])) {
		return false
	}
	issued, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return false
	}
	age := time.Since(time.Unix(issued, 0))
	return age >= 0 && age <= csrfTokenTTL
}

func signCSRF(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// SetCSRFCookie installs the double-submit cookie half of the token.
func SetCSRFCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Expires:  time.Now().Add(csrfTokenTTL),
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// ClearCSRFCookie expires the double-submit cookie, ending the CSRF
// session on logout.
func ClearCSRFCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CSRFCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// CSRFMiddleware validates the double-submit pair on every unsafe /api
// request: cookie and header must both be present, match, and carry a
// valid signature.
func CSRFMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}
		path := c.Path()
		if csrfExemptPaths[path] || !strings.HasPrefix(path, "/api/") {
			return c.Next()
		}

		cookie := c.Cookies(CSRFCookieName)
		header := c.Get(CSRFHeaderName)
		if cookie == "" || header == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "CSRF validation failed: missing token",
			})
		}
		if cookie != header {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "CSRF validation failed: token mismatch",
			})
		}
		if !VerifyCSRFToken(secret, header) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "CSRF validation failed: invalid or expired token",
			})
		}
		return c.Next()
	}
}
