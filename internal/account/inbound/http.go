package inbound

import (
	"context"
	"net/http"

	"github.com/jzmart/account/internal/account/entity"
	"github.com/jzmart/account/internal/account/usecase"
	"github.com/jzmart/account/internal/pkg/router"
)

type uc interface {
	Health(ctx context.Context) string

	SendOTP(ctx context.Context, in usecase.SendOTPInput) error
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) error
	Signup(ctx context.Context, in usecase.SignupInput) (*usecase.SignupOutput, error)
	PasswordReset(ctx context.Context, in usecase.PasswordResetInput) error

	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	Logout(ctx context.Context) error

	Profile(ctx context.Context) (*entity.User, error)
	ProfileUpdate(ctx context.Context, in usecase.ProfileUpdateInput) (*entity.User, error)
	ProfileUpdateAvatar(ctx context.Context, in usecase.ProfileUpdateAvatarInput) (*usecase.ProfileUpdateAvatarOutput, error)
	ProfileDelete(ctx context.Context) error
	PasswordChange(ctx context.Context, in usecase.PasswordChangeInput) error
}

// PublicEndpoints lists the routes reachable without a session, keyed by method.
func PublicEndpoints() map[string][]string {
	return map[string][]string{
		http.MethodGet:  {"/api"},
		http.MethodPost: {"/api/auth/send-otp", "/api/auth/verify-otp", "/api/auth/signup", "/api/auth/login"},
		http.MethodPut:  {"/api/auth/reset-password"},
	}
}

// RegisterHTTPEndpoint mounts the account routes. secureCookie marks the
// session cookie Secure.
func RegisterHTTPEndpoint(r *router.Router, uc uc, secureCookie bool) {
	end := &HTTPEndpoint{uc: uc, secureCookie: secureCookie}

	r.GET("/api", end.Health)

	// OTP gated credentials
	r.POST("/api/auth/send-otp", end.SendOTP)
	r.POST("/api/auth/verify-otp", end.VerifyOTP)
	r.POST("/api/auth/signup", end.Signup)
	r.PUT("/api/auth/reset-password", end.ResetPassword)

	// Session
	r.POST("/api/auth/login", end.Login)
	r.POST("/api/auth/logout", end.Logout) // need authenticated

	// Profile (need authenticated)
	r.GET("/api/auth/profile", end.Profile)
	r.PUT("/api/auth/update-profile", end.ProfileUpdate)
	r.PUT("/api/auth/change-password", end.PasswordChange)
	r.PUT("/api/auth/update-avatar", end.ProfileUpdateAvatar)
	r.DELETE("/api/auth/delete-profile", end.ProfileDelete)
}
