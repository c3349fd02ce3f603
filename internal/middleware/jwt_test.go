package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
)

type stubValidator struct {
	claims *models.JWTClaims
	err    error
}

func (s *stubValidator) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	return s.claims, s.err
}

func TestAuthenticateSetsScopeFromClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validator := &stubValidator{claims: &models.JWTClaims{
		UserID:  "u1",
		Role:    models.RoleTeacher,
		GroupID: "g1",
	}}

	var scope models.AccessScope
	var userID string
	router := gin.New()
	router.Use(Authenticate(validator))
	router.GET("/", func(c *gin.Context) {
		scope = c.MustGet(ContextScope).(models.AccessScope)
		userID = c.GetString(ContextUserID)
		c.Status(http.StatusNoContent)
	})

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
	if scope.GroupID != "g1" || scope.CampusID != "" {
		t.Fatalf("unexpected scope: %+v", scope)
	}
	if userID != "u1" {
		t.Fatalf("unexpected user id: %s", userID)
	}
}

func TestAuthenticateMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Authenticate(&stubValidator{}))
	router.GET("/", func(c *gin.Context) {
		t.Fatal("handler should not run")
	})

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
}

func TestAuthenticateRejectsBadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validator := &stubValidator{err: appErrors.ErrUnauthorized}
	router := gin.New()
	router.Use(Authenticate(validator))
	router.GET("/", func(c *gin.Context) {
		t.Fatal("handler should not run")
	})

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer expired")
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name string
		role models.UserRole
		want int
	}{
		{"allowed", models.RoleAdmin, http.StatusNoContent},
		{"denied", models.RoleTeacher, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.Use(func(c *gin.Context) {
				c.Set(ContextRole, tc.role)
			})
			router.Use(RequireRoles(models.RoleAdmin, models.RoleRector))
			router.GET("/", func(c *gin.Context) {
				c.Status(http.StatusNoContent)
			})

			recorder := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			router.ServeHTTP(recorder, req)

			if recorder.Code != tc.want {
				t.Fatalf("unexpected status: %d", recorder.Code)
			}
		})
	}
}
