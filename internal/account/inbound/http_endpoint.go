package inbound

import (
	"log/slog"

	"github.com/jzmart/account/internal/account/usecase"
	"github.com/jzmart/account/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the account workflows.
type HTTPEndpoint struct {
	uc           uc
	secureCookie bool
}

// Health reports liveness.
// @Summary API health
// @Tags Account
// @Produce json
// @Success 200 {object} router.successResponse "API is running"
// @Router /api [get]
func (h *HTTPEndpoint) Health(r *router.Request) (any, error) {
	return messageResponse(h.uc.Health(r.Context())), nil
}

// SendOTP emails a one-time password for registration or password reset.
// @Summary Send OTP
// @Description Issues a 6 digit code. Asking again while a code is live resends the same code and renews its expiry.
// @Tags Account, OTP
// @Accept json
// @Produce json
// @Param request body SendOTPRequest true "OTP request payload"
// @Success 200 {object} router.successResponse "OTP sent"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 409 {object} router.errorResponse "User already exists"
// @Failure 429 {object} router.errorResponse "OTP request already in progress"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/auth/send-otp [post]
func (h *HTTPEndpoint) SendOTP(r *router.Request) (any, error) {
	var req SendOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.SendOTP(r.Context(), usecase.SendOTPInput{
		Email:   req.Email,
		Purpose: req.Purpose,
	}); err != nil {
		return nil, err
	}

	return messageResponse("OTP sent successfully. Please check your email."), nil
}

// VerifyOTP checks a code without consuming it.
// @Summary Verify OTP
// @Tags Account, OTP
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "OTP verification payload"
// @Success 200 {object} router.successResponse "OTP verified"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 401 {object} router.errorResponse "Expired, missing or invalid OTP"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/auth/verify-otp [post]
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.VerifyOTP(r.Context(), usecase.VerifyOTPInput{
		Email:   req.Email,
		Purpose: req.Purpose,
		OTP:     req.OTP,
	}); err != nil {
		return nil, err
	}

	return messageResponse("OTP verified successfully"), nil
}

// Signup creates an account from a verified REGISTER code and starts a session.
// @Summary Sign up
// @Tags Account, Authentication
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup payload"
// @Success 201 {object} router.successResponse{data=UserResponse} "User registered"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 401 {object} router.errorResponse "Expired, missing or invalid OTP"
// @Failure 409 {object} router.errorResponse "User already exists"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/auth/signup [post]
func (h *HTTPEndpoint) Signup(r *router.Request) (any, error) {
	var req SignupRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Signup(r.Context(), usecase.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		OTP:      req.OTP,
		Purpose:  req.Purpose,
	})
	if err != nil {
		return nil, err
	}

	r.SetCookie(router.SessionCookie(out.Session.Token, out.Session.TTL, h.secureCookie))

	return SignupResponse{UserResponse: toUserResponse(out.User)}, nil
}

// ResetPassword sets a new password from a verified FORGOT_PASSWORD code.
// @Summary Reset password
// @Tags Account, Password
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset payload"
// @Success 200 {object} router.successResponse "Password reset"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 401 {object} router.errorResponse "Expired, missing or invalid OTP"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/auth/reset-password [put]
func (h *HTTPEndpoint) ResetPassword(r *router.Request) (any, error) {
	var req ResetPasswordRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordReset(r.Context(), usecase.PasswordResetInput{
		Email:    req.Email,
		Password: req.Password,
		OTP:      req.OTP,
		Purpose:  req.Purpose,
	}); err != nil {
		return nil, err
	}

	return messageResponse("Password reset successfully. Please login!"), nil
}

// Login authenticates with email and password and starts a session.
// @Summary Log in
// @Tags Account, Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=UserResponse} "Logged in"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 401 {object} router.errorResponse "Invalid credentials"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/auth/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	r.SetCookie(router.SessionCookie(out.Session.Token, out.Session.TTL, h.secureCookie))

	return LoginResponse{UserResponse: toUserResponse(out.User)}, nil
}

// Logout clears the session cookie.
// @Summary Log out
// @Tags Account, Authentication
// @Security CookieAuth
// @Produce json
// @Success 200 {object} router.successResponse "Logged out"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Router /api/auth/logout [post]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	if err := h.uc.Logout(r.Context()); err != nil {
		return nil, err
	}

	r.SetCookie(router.SessionCookie("", 0, h.secureCookie))

	return messageResponse("You have logged out successfully!"), nil
}

// Profile returns the current user.
// @Summary Get profile
// @Tags Account, Profile
// @Security CookieAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=UserResponse} "Profile"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "User not found"
// @Router /api/auth/profile [get]
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	user, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{UserResponse: toUserResponse(user)}, nil
}

// ProfileUpdate changes the provided profile fields.
// @Summary Update profile
// @Tags Account, Profile
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} router.successResponse{data=UserResponse} "Profile updated"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Router /api/auth/update-profile [put]
func (h *HTTPEndpoint) ProfileUpdate(r *router.Request) (any, error) {
	var req UpdateProfileRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	user, err := h.uc.ProfileUpdate(r.Context(), usecase.ProfileUpdateInput{
		Name:     req.Name,
		Phone:    req.Phone,
		City:     req.City,
		Address:  req.Address,
		Interest: req.Interest,
	})
	if err != nil {
		return nil, err
	}

	return UpdateProfileResponse{UserResponse: toUserResponse(user)}, nil
}

// PasswordChange replaces the password after checking the old one.
// @Summary Change password
// @Tags Account, Password
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Passwords"
// @Success 200 {object} router.successResponse "Password changed"
// @Failure 400 {object} router.errorResponse "Old password missing or incorrect"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Router /api/auth/change-password [put]
func (h *HTTPEndpoint) PasswordChange(r *router.Request) (any, error) {
	var req ChangePasswordRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordChange(r.Context(), usecase.PasswordChangeInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		return nil, err
	}

	return messageResponse("Password changed successfully"), nil
}

// ProfileUpdateAvatar stores a new avatar image.
// @Summary Update avatar
// @Tags Account, Profile
// @Security CookieAuth
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Avatar image (jpeg, png or webp)"
// @Success 200 {object} router.successResponse{data=UpdateAvatarResponse} "Avatar uploaded"
// @Failure 400 {object} router.errorResponse "Invalid or oversized image"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/auth/update-avatar [put]
func (h *HTTPEndpoint) ProfileUpdateAvatar(r *router.Request) (any, error) {
	ctx := r.Context()

	file, err := r.StreamSingleFile("avatar")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close file", "error", err)
		}
	}()

	out, err := h.uc.ProfileUpdateAvatar(ctx, usecase.ProfileUpdateAvatarInput{File: file})
	if err != nil {
		return nil, err
	}

	return UpdateAvatarResponse{Avatar: out.AvatarURL}, nil
}

// ProfileDelete removes the account and ends the session.
// @Summary Delete account
// @Tags Account, Profile
// @Security CookieAuth
// @Produce json
// @Success 200 {object} router.successResponse "Account deleted"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "User not found"
// @Router /api/auth/delete-profile [delete]
func (h *HTTPEndpoint) ProfileDelete(r *router.Request) (any, error) {
	if err := h.uc.ProfileDelete(r.Context()); err != nil {
		return nil, err
	}

	r.SetCookie(router.SessionCookie("", 0, h.secureCookie))

	return messageResponse("Account deleted successfully!"), nil
}
