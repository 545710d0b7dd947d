package adminauth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokens() TokenService {
	return TokenService{Secret: []byte("test-secret"), Issuer: "phoneflip", Duration: time.Hour}
}

func TestSignAndParse(t *testing.T) {
	ts := testTokens()

	token, exp, err := ts.Sign("ops")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := ts.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Operator)
	assert.Equal(t, "phoneflip", claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := testTokens().Sign("ops")
	require.NoError(t, err)

	other := TokenService{Secret: []byte("different"), Issuer: "phoneflip", Duration: time.Hour}
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	ts := testTokens()
	ts.Duration = -time.Minute

	token, _, err := ts.Sign("ops")
	require.NoError(t, err)

	_, err = ts.Parse(token)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ts := testTokens()

	r := gin.New()
	r.Use(Middleware(ts))
	r.GET("/guarded", func(c *gin.Context) {
		claims := c.MustGet(CtxClaimsKey).(*Claims)
		c.JSON(http.StatusOK, gin.H{"operator": claims.Operator})
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, _, err := ts.Sign("ops")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ops")
	})
}
