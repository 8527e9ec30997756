package forms

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// UserForm represents the base form structure for user-related forms
type UserForm struct{}

// LoginForm contains the fields required for user login. The account can
// be addressed by email or by username; one of the two must be present.
type LoginForm struct {
	Email    string `form:"email" json:"email" binding:"required_without=Username,omitempty,email"`
	Username string `form:"username" json:"username" binding:"required_without=Email,omitempty,min=3,max=30"`
	Password string `form:"password" json:"password" binding:"required,min=6,max=64"`
}

// RegisterForm contains the fields required for user registration
type RegisterForm struct {
	FullName string `form:"fullName" json:"fullName" binding:"required,min=1,max=100"`
	Username string `form:"username" json:"username" binding:"required,min=3,max=30,username"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required,min=6,max=64"`
}

// ChangePasswordForm carries the old and new password for a logged-in
// password change
type ChangePasswordForm struct {
	OldPassword string `form:"oldPassword" json:"oldPassword" binding:"required"`
	NewPassword string `form:"newPassword" json:"newPassword" binding:"required,min=6,max=64"`
}

// UpdateAccountForm carries the mutable profile fields
type UpdateAccountForm struct {
	FullName string `form:"fullName" json:"fullName" binding:"omitempty,min=1,max=100"`
	Email    string `form:"email" json:"email" binding:"omitempty,email"`
}

// Email validates and returns appropriate error messages for email field validation
func (f UserForm) Email(tag string, errMsg ...string) (message string) {
	switch tag {
	case "required", "required_without":
		if len(errMsg) == 0 {
			return "Please enter your email"
		}
		return errMsg[0]
	case "min", "max", "email":
		return "Please enter a valid email"
	default:
		return "Something went wrong, please try again later"
	}
}

// Username validates and returns appropriate error messages for username field validation
func (f UserForm) Username(tag string) (message string) {
	switch tag {
	case "required", "required_without":
		return "Please enter your username"
	case "min", "max", "username":
		return "Your username should be 3 to 30 letters, digits or underscores"
	default:
		return "Something went wrong, please try again later"
	}
}

// Password validates and returns appropriate error messages for password field validation
func (f UserForm) Password(tag string) (message string) {
	switch tag {
	case "required":
		return "Please enter your password"
	case "min", "max":
		return "Your password should be between 6 and 64 characters"
	case "eqfield":
		return "Your passwords does not match"
	default:
		return "Something went wrong, please try again later"
	}
}

// FullName validates and returns appropriate error messages for the full name field
func (f UserForm) FullName(tag string) (message string) {
	switch tag {
	case "required":
		return "Please enter your full name"
	case "min", "max":
		return "Your full name should be between 1 and 100 characters"
	default:
		return "Something went wrong, please try again later"
	}
}

// Login validates the login form and returns appropriate error messages
func (f UserForm) Login(err error) string {
	return f.fieldMessage(err)
}

// Register validates the registration form and returns appropriate error messages
func (f UserForm) Register(err error) string {
	return f.fieldMessage(err)
}

// ChangePassword validates the change-password form and returns appropriate error messages
func (f UserForm) ChangePassword(err error) string {
	return f.fieldMessage(err)
}

// UpdateAccount validates the update-account form and returns appropriate error messages
func (f UserForm) UpdateAccount(err error) string {
	return f.fieldMessage(err)
}

// ResetPassword validates the reset-password form and returns appropriate error messages
func (f UserForm) ResetPassword(err error) string {
	return f.fieldMessage(err)
}

func (f UserForm) fieldMessage(err error) string {
	switch err.(type) {
	case validator.ValidationErrors:

		if _, ok := err.(*json.UnmarshalTypeError); ok {
			return "Something went wrong, please try again later"
		}

		for _, err := range err.(validator.ValidationErrors) {
			switch err.Field() {
			case "Email":
				return f.Email(err.Tag())
			case "Username":
				return f.Username(err.Tag())
			case "FullName":
				return f.FullName(err.Tag())
			case "Password", "OldPassword", "NewPassword":
				return f.Password(err.Tag())
			}
		}

	default:
		return "Invalid request"
	}

	return "Something went wrong, please try again later"
}
