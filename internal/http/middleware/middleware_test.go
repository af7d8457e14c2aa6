package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/checkbook-insights/internal/auth"
	"github.com/nurpe/checkbook-insights/internal/model"
)

func newEngine(parser *auth.Parser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger(zerolog.Nop()), Metrics())
	router.GET("/whoami", Auth(parser), func(c *gin.Context) {
		principal, ok := MustPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"ok": ok, "role": principal.Role})
	})
	return router
}

func TestAuthDisabled(t *testing.T) {
	router := newEngine(auth.NewParser(""))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":false,"role":""}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestAuthEnabled(t *testing.T) {
	parser := auth.NewParser("secret")
	router := newEngine(parser)
	token, err := parser.Issue(model.Principal{UserID: uuid.New(), Role: model.RoleAdmin}, time.Minute)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"invalid", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestRequestIDPropagates(t *testing.T) {
	router := newEngine(auth.NewParser(""))
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(RequestIDHeader, "abc")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
}
