//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"hall-booking/internal/domain/user"
	"hall-booking/internal/handler/middleware"
	pkgjwt "hall-booking/internal/pkg/jwt"
	"hall-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims pkgjwt.Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims(role user.Role) pkgjwt.Claims {
	return pkgjwt.Claims{
		UserID: uuid.New(),
		Role:   role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestRequireAuth(t *testing.T) {
	m := middleware.NewAuthMiddleware(pkgjwt.NewValidator(testSecret))
	router := gin.New()
	gin.SetMode(gin.TestMode)
	router.GET("/protected", m.RequireAuth(), func(c *gin.Context) {
		actor, ok := middleware.GetActor(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "missing actor"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"actorId": actor.ID, "role": actor.Role.String()})
	})

	t.Run("valid token populates the actor", func(t *testing.T) {
		claims := validClaims(user.RoleUser)
		token := signToken(t, claims, testSecret)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil, token)

		var body map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		require.Equal(t, claims.UserID.String(), body["actorId"])
		require.Equal(t, "user", body["role"])
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		token := signToken(t, validClaims(user.RoleUser), "wrong-secret")

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil, token)
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("expired token", func(t *testing.T) {
		claims := validClaims(user.RoleUser)
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		token := signToken(t, claims, testSecret)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil, token)
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("unknown role", func(t *testing.T) {
		claims := validClaims(user.RoleUser)
		claims.Role = "superuser"
		token := signToken(t, claims, testSecret)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil, token)
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "")
	})
}

func TestRequireRole(t *testing.T) {
	m := middleware.NewAuthMiddleware(pkgjwt.NewValidator(testSecret))
	router := gin.New()
	gin.SetMode(gin.TestMode)
	router.POST("/staff-only", m.RequireAuth(), m.RequireRole(user.RoleStaff, user.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	cases := []struct {
		role       user.Role
		expectCode int
	}{
		{role: user.RoleStaff, expectCode: http.StatusNoContent},
		{role: user.RoleAdmin, expectCode: http.StatusNoContent},
		{role: user.RoleUser, expectCode: http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.role.String(), func(t *testing.T) {
			token := signToken(t, validClaims(tc.role), testSecret)

			rec := httptest.PerformRequest(t, router, http.MethodPost, "/staff-only", nil, token)
			require.Equal(t, tc.expectCode, rec.Code)
		})
	}
}
