package api

import (
	"net/http"

	"github.com/zaikaman/KaspaClash-sub007/internal/constants"
	"github.com/gin-gonic/gin"
)

// WalletRequired validates the wallet address header and injects the
// normalized address into the request context.
func WalletRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		addr := normalizeWalletAddress(c.GetHeader(constants.HeaderWalletAddress))
		if addr == "" || !walletRegex.MatchString(addr) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidAddress})
			return
		}
		c.Set("walletAddress", addr)
		c.Next()
	}
}

// walletFromContext returns the authenticated wallet address injected by
// WalletRequired, empty when the middleware did not run.
func walletFromContext(c *gin.Context) string {
	if v, ok := c.Get("walletAddress"); ok {
		if s, _ := v.(string); s != "" {
			return s
		}
	}
	return ""
}
