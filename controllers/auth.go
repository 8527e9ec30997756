package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/suraj4812010/Videotube/forms"
	"github.com/suraj4812010/Videotube/models"
	"github.com/suraj4812010/Videotube/service"
)

// userKey is the gin context key the auth gate stores the resolved user
// under.
const userKey = "user"

// AuthController handles authentication related operations
type AuthController struct {
	auth    *service.AuthService
	cookies CookieWriter
}

// NewAuthController creates and returns a new AuthController instance
func NewAuthController(auth *service.AuthService, cookies CookieWriter) *AuthController {
	return &AuthController{auth: auth, cookies: cookies}
}

// RequireAuth gates every protected route. It resolves the access token
// from the accessToken cookie or the Authorization header, verifies it,
// attaches the user to the request context and aborts with 401 on any
// failure, so no handler behind the gate runs on invalid auth.
func (ctrl AuthController) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := ctrl.auth.Authenticate(c.Request.Context(), accessTokenFrom(c))
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// RefreshToken exchanges a valid, still-current refresh token for a new
// pair, re-sets both cookies and returns the pair in the body.
func (ctrl AuthController) RefreshToken(c *gin.Context) {
	incoming, _ := c.Cookie("refreshToken")
	if incoming == "" {
		var tokenForm forms.Token
		_ = c.ShouldBindJSON(&tokenForm)
		incoming = tokenForm.RefreshToken
	}

	pair, err := ctrl.auth.Rotate(c.Request.Context(), incoming)
	if err != nil {
		abortWithError(c, err)
		return
	}

	ctrl.cookies.set(c, pair)
	c.JSON(http.StatusOK, pair)
}

// CurrentUser returns the user the auth gate attached to the context.
// It panics when called outside a gated route.
func CurrentUser(c *gin.Context) models.User {
	return c.MustGet(userKey).(models.User)
}

// accessTokenFrom pulls the access token from the cookie or, failing
// that, from an "Authorization: Bearer" header.
func accessTokenFrom(c *gin.Context) string {
	if token, err := c.Cookie("accessToken"); err == nil && token != "" {
		return token
	}

	header := c.GetHeader("Authorization")
	if rest, ok := strings.CutPrefix(header, "Bearer "); ok {
		return rest
	}

	return ""
}

// abortWithError renders the uniform failure body and short-circuits the
// handler chain.
func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(models.StatusOf(err), gin.H{"message": models.MessageOf(err)})
}
