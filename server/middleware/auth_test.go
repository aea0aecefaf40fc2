package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/svcerrors/errors"
	"github.com/kbukum/svcerrors/server/middleware"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func authEngine(cfg middleware.AuthConfig) *gin.Engine {
	if cfg.Registry == nil {
		cfg.Registry = jsonRegistry()
	}
	r := gin.New()
	r.Use(middleware.Auth(cfg))
	r.GET("/*path", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})
	return r
}

func TestAuth(t *testing.T) {
	valid := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	expired := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	noExp := signToken(t, testSecret, jwt.MapClaims{"sub": "user-1"})

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantName   string
		wantBody   string
	}{
		{"valid token", "/api", "Bearer " + valid, http.StatusOK, "", "user-1"},
		{"lowercase scheme", "/api", "bearer " + valid, http.StatusOK, "", "user-1"},
		{"missing header", "/api", "", http.StatusUnauthorized, errors.NameUnauthorized, ""},
		{"bad format", "/api", "Token " + valid, http.StatusUnauthorized, errors.NameUnauthorized, ""},
		{"empty token", "/api", "Bearer ", http.StatusUnauthorized, errors.NameUnauthorized, ""},
		{"expired", "/api", "Bearer " + expired, http.StatusUnauthorized, errors.NameTokenExpired, ""},
		{"wrong signature", "/api", "Bearer " + wrongKey, http.StatusUnauthorized, errors.NameInvalidToken, ""},
		{"missing exp", "/api", "Bearer " + noExp, http.StatusUnauthorized, errors.NameInvalidToken, ""},
		{"garbage", "/api", "Bearer not.a.jwt", http.StatusUnauthorized, errors.NameInvalidToken, ""},
		{"skip path", "/health", "", http.StatusOK, "", ""},
	}

	r := authEngine(middleware.AuthConfig{Secret: testSecret, SkipPaths: []string{"/health"}})
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.path, http.NoBody)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d (%s)", tc.wantStatus, rr.Code, rr.Body.String())
			}
			if tc.wantName != "" {
				if body := decode(t, rr); body["name"] != tc.wantName {
					t.Errorf("expected %s, got %v", tc.wantName, body["name"])
				}
				return
			}
			if rr.Body.String() != tc.wantBody {
				t.Errorf("expected body %q, got %q", tc.wantBody, rr.Body.String())
			}
		})
	}
}

func TestAuth_RejectsUnexpectedAlgorithm(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest("GET", "/api", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	authEngine(middleware.AuthConfig{Secret: testSecret}).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestAuth_IssuerAndClaims(t *testing.T) {
	cfg := middleware.AuthConfig{Secret: testSecret, Issuer: "svcerrors", Registry: jsonRegistry()}
	r := gin.New()
	r.Use(middleware.Auth(cfg))
	r.GET("/", func(c *gin.Context) {
		claims, ok := c.Get(middleware.ContextKeyClaims)
		if !ok {
			t.Error("expected claims in context")
		}
		if _, ok := claims.(jwt.MapClaims); !ok {
			t.Errorf("expected jwt.MapClaims, got %T", claims)
		}
		c.String(http.StatusOK, c.GetString("role"))
	})

	good := signToken(t, testSecret, jwt.MapClaims{
		"iss": "svcerrors", "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	})
	bad := signToken(t, testSecret, jwt.MapClaims{
		"iss": "someone-else", "exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+good)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || rr.Body.String() != "admin" {
		t.Errorf("expected 200 admin, got %d %q", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest("GET", "/", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+bad)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong issuer, got %d", rr.Code)
	}
}
