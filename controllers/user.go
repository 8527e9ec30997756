package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/suraj4812010/Videotube/forms"
	"github.com/suraj4812010/Videotube/service"
)

// UserController handles user-related HTTP requests and responses
type UserController struct {
	user         *service.UserService
	auth         *service.AuthService
	recovery     *service.RecoveryService
	loginLimiter *service.RateLimiter
	resetLimiter *service.RateLimiter
	cookies      CookieWriter
}

// NewUserController creates and returns a new UserController instance
func NewUserController(
	user *service.UserService,
	auth *service.AuthService,
	recovery *service.RecoveryService,
	loginLimiter *service.RateLimiter,
	resetLimiter *service.RateLimiter,
	cookies CookieWriter,
) *UserController {
	return &UserController{
		user:         user,
		auth:         auth,
		recovery:     recovery,
		loginLimiter: loginLimiter,
		resetLimiter: resetLimiter,
		cookies:      cookies,
	}
}

var userForm = new(forms.UserForm)

// Register handles new user registration requests, validates input and creates a new user account
func (ctrl UserController) Register(c *gin.Context) {
	var registerForm forms.RegisterForm

	if err := c.ShouldBindJSON(&registerForm); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": userForm.Register(err)})
		return
	}

	user, err := ctrl.user.Register(c.Request.Context(), registerForm)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": user})
}

// Login authenticates the account by email or username, sets both token
// cookies and returns the user together with the pair.
func (ctrl UserController) Login(c *gin.Context) {
	var loginForm forms.LoginForm

	if validationErr := c.ShouldBindJSON(&loginForm); validationErr != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": userForm.Login(validationErr)})
		return
	}

	if err := ctrl.loginLimiter.Check(c.Request.Context(), "login", c.ClientIP()); err != nil {
		abortWithError(c, err)
		return
	}

	user, pair, err := ctrl.user.Login(c.Request.Context(), loginForm)
	if err != nil {
		abortWithError(c, err)
		return
	}
	ctrl.loginLimiter.Reset(c.Request.Context(), "login", c.ClientIP())

	ctrl.cookies.set(c, pair)
	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// Logout clears the stored refresh token for the caller and drops both
// cookies, invalidating every outstanding refresh token immediately.
func (ctrl UserController) Logout(c *gin.Context) {
	user := CurrentUser(c)

	if err := ctrl.auth.ClearSession(c.Request.Context(), user.ID); err != nil {
		abortWithError(c, err)
		return
	}

	ctrl.cookies.clear(c)
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// GetCurrentUser returns the sanitized account record of the caller
func (ctrl UserController) GetCurrentUser(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": CurrentUser(c)})
}

// ChangePassword verifies the old password and replaces it; outstanding
// refresh tokens are revoked in the process.
func (ctrl UserController) ChangePassword(c *gin.Context) {
	var form forms.ChangePasswordForm

	if err := c.ShouldBindJSON(&form); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": userForm.ChangePassword(err)})
		return
	}

	user := CurrentUser(c)
	if err := ctrl.user.ChangePassword(c.Request.Context(), user.ID, form.OldPassword, form.NewPassword); err != nil {
		abortWithError(c, err)
		return
	}

	ctrl.cookies.clear(c)
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// UpdateAccount updates the caller's profile fields
func (ctrl UserController) UpdateAccount(c *gin.Context) {
	var form forms.UpdateAccountForm

	if err := c.ShouldBindJSON(&form); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": userForm.UpdateAccount(err)})
		return
	}

	user := CurrentUser(c)
	updated, err := ctrl.user.UpdateAccount(c.Request.Context(), user.ID, form)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": updated})
}

// ForgotPassword starts the recovery flow. The response is the same
// generic confirmation whether or not the email belongs to an account.
func (ctrl UserController) ForgotPassword(c *gin.Context) {
	var form forms.ForgotPasswordForm

	if err := c.ShouldBindJSON(&form); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Please enter a valid email"})
		return
	}

	if err := ctrl.resetLimiter.Check(c.Request.Context(), "reset", c.ClientIP()); err != nil {
		abortWithError(c, err)
		return
	}

	if err := ctrl.recovery.RequestReset(c.Request.Context(), form.Email); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "If that email is registered, a reset link has been sent"})
}

// ResetPassword consumes a reset token from the URL path and sets the
// new password. Invalid or expired tokens get one generic 400.
func (ctrl UserController) ResetPassword(c *gin.Context) {
	var form forms.ResetPasswordForm

	if err := c.ShouldBindJSON(&form); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": userForm.ResetPassword(err)})
		return
	}

	if err := ctrl.recovery.ConsumeReset(c.Request.Context(), c.Param("token"), form.Password); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully"})
}
