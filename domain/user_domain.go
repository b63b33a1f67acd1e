package domain

import "errors"

var (
	MessageSuccessRegister      = "register success"
	MessageSuccessLogin         = "login success"
	MessageSuccessGetMe         = "success get profile"
	MessageSuccessUpdateProfile = "profile updated successfully"

	MessageSuccessForgotPassword = "reset instructions sent"
	MessageSuccessResetPassword  = "password updated successfully"

	MessageFailedRegister       = "failed to register"
	MessageFailedLogin          = "failed to login"
	MessageFailedGetMe          = "failed to get profile"
	MessageFailedUpdateProfile  = "failed to update profile"
	MessageFailedForgotPassword = "failed to request password reset"
	MessageFailedResetPassword  = "failed to reset password"

	ErrUsernameTaken      = errors.New("username already taken")
	ErrCredentialsInvalid = errors.New("username or password invalid")
)

type (
	RegisterRequest struct {
		Username string `json:"username" validate:"required,min=3,max=32"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	ForgotPasswordRequest struct {
		Username string `json:"username" validate:"required"`
	}

	ResetPasswordRequest struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}

	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Username string `json:"username"`
		Token    string `json:"token"`
	}

	UserResponse struct {
		Username       string `json:"username"`
		Token          string `json:"token,omitempty"`
		Email          string `json:"email,omitempty"`
		ProfilePicture string `json:"profile_picture,omitempty"`
		Favourites     int    `json:"favourites"`
		Reviews        int    `json:"reviews"`
	}
)
