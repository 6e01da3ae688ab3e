package inbound

import (
	"net/http"
	"time"

	"github.com/jzmart/account/internal/account/entity"
)

// messageResponse is a success envelope without data.
type messageResponse string

func (m messageResponse) Message() string { return string(m) }

func (messageResponse) Data() any { return nil }

type SendOTPRequest struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
}

type VerifyOTPRequest struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	OTP     string `json:"otp"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp"`
	Purpose  string `json:"purpose"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Purpose  string `json:"purpose"`
	OTP      string `json:"otp"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	Interest *string `json:"interest"`
	Phone    *string `json:"phone"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type UserResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	Address   string    `json:"address"`
	Interest  string    `json:"interest"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Phone:     u.Phone,
		City:      u.City,
		Address:   u.Address,
		Interest:  u.Interest,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type SignupResponse struct {
	UserResponse
}

func (SignupResponse) StatusCode() int { return http.StatusCreated }

func (SignupResponse) Message() string { return "User registered successfully!" }

type LoginResponse struct {
	UserResponse
}

func (LoginResponse) Message() string { return "Logged in successfully." }

type ProfileResponse struct {
	UserResponse
}

func (ProfileResponse) Message() string { return "Profile fetched successfully" }

type UpdateProfileResponse struct {
	UserResponse
}

func (UpdateProfileResponse) Message() string { return "Profile updated successfully" }

type UpdateAvatarResponse struct {
	Avatar string `json:"avatar"`
}

func (UpdateAvatarResponse) Message() string { return "Avatar Uploaded" }
