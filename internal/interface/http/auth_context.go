package http

import (
	"github.com/gin-gonic/gin"
)

const (
	authClaimsKey = "auth_claims"
	requestIDKey  = "request_id"
)

func setClaims(c *gin.Context, claims AdminClaims) {
	c.Set(authClaimsKey, claims)
}

func getClaims(c *gin.Context) (AdminClaims, bool) {
	value, ok := c.Get(authClaimsKey)
	if !ok {
		return AdminClaims{}, false
	}
	claims, ok := value.(AdminClaims)
	return claims, ok
}

func getRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
