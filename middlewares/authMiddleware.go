package middlewares

import (
	"net/http"

	"github.com/allanweber/trading-journal-entry-sub000/utils"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates a bearer token when one is present and puts
// the journal owner's user id into the request context. Requests without
// a token pass through; handlers that need an owner reject them later.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.Request.Header.Get("Authorization")

		if auth == "" {
			c.Next()
			return
		}

		bearer := "Bearer "
		if len(auth) <= len(bearer) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		auth = auth[len(bearer):]

		validate, err := utils.JwtValidate(auth)
		if err != nil || !validate.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		customClaim, _ := validate.Claims.(*utils.JwtCustomClaim)

		ctx := utils.SetTokenInContext(c.Request.Context(), auth)
		ctx = utils.SetUserIdInContext(ctx, customClaim.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
