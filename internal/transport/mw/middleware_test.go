package mw_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"io.ruvo/notification/internal/transport/mw"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func run(t *testing.T, authHeader string) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var userID string
	err := mw.JWTAuth(secret)(func(c echo.Context) error {
		userID, _ = c.Get("userID").(string)
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		return he.Code, ""
	}
	return rec.Code, userID
}

func validClaims() jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
}

func TestJWTAuth_Valid(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte(secret), validClaims())
	code, userID := run(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "user-42", userID)
}

func TestJWTAuth_Rejects(t *testing.T) {
	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	noSubject := validClaims()
	noSubject.Subject = ""

	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil

	tests := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc",
		"garbage":        "Bearer not.a.jwt",
		"wrong secret":   "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), validClaims()),
		"wrong alg":      "Bearer " + sign(t, jwt.SigningMethodHS512, []byte(secret), validClaims()),
		"expired":        "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), expired),
		"no subject":     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), noSubject),
		"no expiry":      "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), noExpiry),
	}
	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			code, _ := run(t, header)
			assert.Equal(t, http.StatusUnauthorized, code)
		})
	}
}
