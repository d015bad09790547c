package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yanqian/faq-autoreply/internal/infra/config"
)

// AdminClaims is the JWT payload accepted by the admin API.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

var errForbiddenRole = errors.New("token lacks the admin role")

func adminAuthMiddleware(cfg config.AdminConfig) gin.HandlerFunc {
	secret := []byte(cfg.JWTSecret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing authorization header", nil))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "invalid authorization header", nil))
			return
		}
		var claims AdminClaims
		_, err := parser.ParseWithClaims(strings.TrimSpace(parts[1]), &claims, func(*jwt.Token) (any, error) {
			return secret, nil
		})
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "invalid_token", errMessage(err), err))
			return
		}
		if claims.Role != cfg.Role {
			abortWithError(c, NewHTTPError(http.StatusForbidden, "forbidden", errForbiddenRole.Error(), errForbiddenRole))
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}
