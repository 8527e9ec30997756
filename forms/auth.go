package forms

// Token represents a refresh token structure used for token renewal.
// The field is optional in the body because the token may arrive in the
// refreshToken cookie instead.
type Token struct {
	RefreshToken string `form:"refreshToken" json:"refreshToken"`
}

// ForgotPasswordForm carries the email a recovery link is requested for
type ForgotPasswordForm struct {
	Email string `form:"email" json:"email" binding:"required,email"`
}

// ResetPasswordForm carries the replacement password; the reset token
// itself travels in the URL path
type ResetPasswordForm struct {
	Password string `form:"password" json:"password" binding:"required,min=6,max=64"`
}
