package middleware

import (
	stderrors "errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/svcerrors/errors"
)

// ContextKeyClaims is the Gin context key holding the verified jwt.MapClaims.
const ContextKeyClaims = "claims"

// AuthConfig configures the JWT authentication middleware.
type AuthConfig struct {
	// Secret is the HMAC key for HS* tokens.
	Secret string
	// PublicKey verifies RS*/ES* tokens. When set, Secret is ignored.
	PublicKey interface{}
	// Methods lists the accepted signing algorithms. Defaults to HS256 for a
	// Secret and RS256/ES256 for a PublicKey.
	Methods []string
	// Issuer and Audience, when set, must match the token claims.
	Issuer   string
	Audience string
	// SkipPaths are URL path prefixes that bypass authentication.
	SkipPaths []string
	// Registry renders the rejection. Nil uses the process-wide registry.
	Registry *errors.Registry
}

// Auth returns a Gin middleware that verifies Bearer JWTs. A missing or
// malformed header is rejected with UNAUTHORIZED, an expired token with
// TOKEN_EXPIRED and any other verification failure with INVALID_TOKEN.
// Verified claims are stored under ContextKeyClaims and as individual keys;
// the subject is also stored as user_id.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	parser := jwt.NewParser(cfg.parserOptions()...)
	keyFunc := cfg.keyFunc()

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if strings.HasPrefix(path, skip) {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, cfg.Registry, errors.Unauthorized("Authorization header required."))
			return
		}

		scheme, raw, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || raw == "" {
			abortWithError(c, cfg.Registry, errors.Unauthorized("Invalid authorization header format."))
			return
		}

		claims := jwt.MapClaims{}
		if _, err := parser.ParseWithClaims(raw, claims, keyFunc); err != nil {
			if stderrors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, cfg.Registry, errors.TokenExpired().WithCause(err))
				return
			}
			abortWithError(c, cfg.Registry, errors.InvalidToken().WithCause(err))
			return
		}

		c.Set(ContextKeyClaims, claims)
		for key, value := range claims {
			c.Set(key, value)
		}
		if sub, err := claims.GetSubject(); err == nil && sub != "" {
			c.Set("user_id", sub)
		}
		c.Next()
	}
}

func (cfg AuthConfig) parserOptions() []jwt.ParserOption {
	methods := cfg.Methods
	if len(methods) == 0 {
		if cfg.PublicKey != nil {
			methods = []string{jwt.SigningMethodRS256.Alg(), jwt.SigningMethodES256.Alg()}
		} else {
			methods = []string{jwt.SigningMethodHS256.Alg()}
		}
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods(methods), jwt.WithExpirationRequired()}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	return opts
}

func (cfg AuthConfig) keyFunc() jwt.Keyfunc {
	return func(*jwt.Token) (interface{}, error) {
		if cfg.PublicKey != nil {
			return cfg.PublicKey, nil
		}
		return []byte(cfg.Secret), nil
	}
}
