package cookie

import (
	"github.com/gin-gonic/gin"
)

// Tokens are minted by the identity service and arrive either as a cookie or
// an Authorization header; only the read side lives here.
const (
	AccessTokenCookieName = "access_token"
)

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
