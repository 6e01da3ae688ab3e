package usecase

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/jzmart/account/internal/account/lifecycle"
	"github.com/jzmart/account/internal/pkg/goerror"
	"github.com/jzmart/account/internal/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSendOTP(t *testing.T) {
	tests := []struct {
		name     string
		in       SendOTPInput
		issueErr error
		wantCode goerror.Code
		wantMsg  string
	}{
		{name: "register", in: SendOTPInput{Email: " A@X.com", Purpose: "REGISTER"}},
		{name: "forgot", in: SendOTPInput{Email: "a@x.com", Purpose: "FORGOT_PASSWORD"}},
		{name: "missing email", in: SendOTPInput{Purpose: "REGISTER"}, wantCode: goerror.CodeInvalidInput},
		{name: "unknown purpose", in: SendOTPInput{Email: "a@x.com", Purpose: "LOGIN"}, wantCode: goerror.CodeInvalidInput},
		{name: "user exists", in: SendOTPInput{Email: "a@x.com", Purpose: "REGISTER"}, issueErr: lifecycle.ErrUserAlreadyExists, wantCode: goerror.CodeConflict, wantMsg: "User already exists."},
		{name: "user missing", in: SendOTPInput{Email: "a@x.com", Purpose: "FORGOT_PASSWORD"}, issueErr: lifecycle.ErrUserNotFound, wantCode: goerror.CodeNotFound, wantMsg: "User not found."},
		{name: "in progress", in: SendOTPInput{Email: "a@x.com", Purpose: "REGISTER"}, issueErr: lifecycle.ErrIssueInProgress, wantCode: goerror.CodeTooManyRequest},
		{name: "corrupt envelope", in: SendOTPInput{Email: "a@x.com", Purpose: "REGISTER"}, issueErr: lifecycle.ErrCorruptEnvelope, wantCode: goerror.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.otp.issueErr = tt.issueErr

			err := f.uc.SendOTP(context.Background(), tt.in)

			if tt.wantCode == 0 && tt.issueErr == nil {
				require.NoError(t, err)
				assert.Equal(t, []string{tt.in.Purpose + "|a@x.com"}, f.otp.issued)
				return
			}
			assertBusiness(t, err, tt.wantCode, tt.wantMsg)
		})
	}
}

func TestVerifyOTP(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.uc.VerifyOTP(ctx, VerifyOTPInput{Email: "a@x.com", Purpose: "REGISTER", OTP: "123456"}))
	assert.Empty(t, f.otp.consumed)

	err := f.uc.VerifyOTP(ctx, VerifyOTPInput{Email: "a@x.com", Purpose: "REGISTER", OTP: "654321"})
	assertBusiness(t, err, goerror.CodeUnauthorized, "Invalid OTP")

	err = f.uc.VerifyOTP(ctx, VerifyOTPInput{Email: "a@x.com", Purpose: "REGISTER", OTP: "12ab56"})
	assertBusiness(t, err, goerror.CodeInvalidInput, "")
}

func TestSignup(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		out, err := f.uc.Signup(context.Background(), SignupInput{
			Name: " Jane ", Email: "Jane@X.com", Password: "secret1", OTP: "123456", Purpose: "REGISTER",
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "jane@x.com", out.User.Email)
		assert.Equal(t, "Jane", out.User.Name)
		assert.NotEmpty(t, out.Session.Token)
		assert.Equal(t, f.jwt.TTL(), out.Session.TTL)
		assert.Equal(t, []int64{77}, f.otp.consumed)

		clm, err := f.jwt.Verify(out.Session.Token)
		require.NoError(t, err)
		assert.Equal(t, out.User.ID, clm.UserID)

		cred, err := f.repo.GetUserCredentialByEmail(context.Background(), "jane@x.com")
		require.NoError(t, err)
		assert.True(t, f.argon.Verify(cred.Password, "secret1"))
	})

	t.Run("short password is rejected before otp", func(t *testing.T) {
		f := newFixture(t)
		f.otp.verifyErr = lifecycle.ErrOtpExpiredOrMissing

		_, err := f.uc.Signup(context.Background(), SignupInput{Name: "Jane", Email: "j@x.com", Password: "123", OTP: "123456"})

		assertBusiness(t, err, goerror.CodeInvalidInput, "")
	})

	t.Run("existing user", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "j@x.com", "secret1")

		_, err := f.uc.Signup(context.Background(), SignupInput{Name: "Jane", Email: "j@x.com", Password: "secret1", OTP: "123456"})

		assertBusiness(t, err, goerror.CodeConflict, "User already exists.")
	})

	t.Run("otp failures leave no user", func(t *testing.T) {
		for _, verr := range []error{lifecycle.ErrOtpExpiredOrMissing, lifecycle.ErrInvalidOtp} {
			f := newFixture(t)
			f.otp.verifyErr = verr

			_, err := f.uc.Signup(context.Background(), SignupInput{Name: "Jane", Email: "j@x.com", Password: "secret1", OTP: "123456"})

			assertBusiness(t, err, goerror.CodeUnauthorized, "")
			assert.Empty(t, f.repo.users)
			assert.Empty(t, f.otp.consumed)
		}
	})

	t.Run("wrong purpose", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.Signup(context.Background(), SignupInput{Name: "Jane", Email: "j@x.com", Password: "secret1", OTP: "123456", Purpose: "FORGOT_PASSWORD"})

		assertBusiness(t, err, goerror.CodeInvalidInput, "")
	})
}

func TestPasswordReset(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "j@x.com", "oldpass")

		err := f.uc.PasswordReset(context.Background(), PasswordResetInput{Email: " J@x.com", Password: "newpass", OTP: "123456", Purpose: "FORGOT_PASSWORD"})

		require.NoError(t, err)
		assert.True(t, f.argon.Verify(f.repo.password[1], "newpass"))
		assert.Equal(t, []int64{77}, f.otp.consumed)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)

		err := f.uc.PasswordReset(context.Background(), PasswordResetInput{Email: "j@x.com", Password: "newpass", OTP: "123456"})

		assertBusiness(t, err, goerror.CodeNotFound, "User not found.")
	})

	t.Run("invalid otp keeps password", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "j@x.com", "oldpass")

		err := f.uc.PasswordReset(context.Background(), PasswordResetInput{Email: "j@x.com", Password: "newpass", OTP: "000000"})

		assertBusiness(t, err, goerror.CodeUnauthorized, "Invalid OTP")
		assert.True(t, f.argon.Verify(f.repo.password[1], "oldpass"))
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)
		f.repo.err = errors.New("db down")

		err := f.uc.PasswordReset(context.Background(), PasswordResetInput{Email: "j@x.com", Password: "newpass", OTP: "123456"})

		assertBusiness(t, err, goerror.CodeInternal, "")
	})
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, 1, "j@x.com", "secret1")
	ctx := context.Background()

	out, err := f.uc.Login(ctx, LoginInput{Email: "J@X.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.User.ID)
	assert.NotEmpty(t, out.Session.Token)

	_, err = f.uc.Login(ctx, LoginInput{Email: "j@x.com", Password: "wrong"})
	assertBusiness(t, err, goerror.CodeUnauthorized, "Invalid credentials.")

	_, err = f.uc.Login(ctx, LoginInput{Email: "ghost@x.com", Password: "secret1"})
	assertBusiness(t, err, goerror.CodeNotFound, "User not found.")
}

func TestLogin_UpgradesBcryptHash(t *testing.T) {
	f := newFixture(t)
	legacy, err := hash.NewBcrypt(bcrypt.MinCost, "").Hash("secret1")
	require.NoError(t, err)
	f.repo.add(userFixture(2, "old@x.com"), string(legacy))

	_, err = f.uc.Login(context.Background(), LoginInput{Email: "old@x.com", Password: "secret1"})

	require.NoError(t, err)
	assert.False(t, isBcrypt(f.repo.password[2]))
	assert.True(t, f.argon.Verify(f.repo.password[2], "secret1"))
}

func TestLogout(t *testing.T) {
	f := newFixture(t)

	assert.NoError(t, f.uc.Logout(authed(1, "j@x.com")))
	assertBusiness(t, f.uc.Logout(context.Background()), goerror.CodeUnauthorized, "")
}

func TestProfile(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, 1, "j@x.com", "secret1")

	u, err := f.uc.Profile(authed(1, "j@x.com"))
	require.NoError(t, err)
	assert.Equal(t, "j@x.com", u.Email)

	_, err = f.uc.Profile(authed(9, "gone@x.com"))
	assertBusiness(t, err, goerror.CodeNotFound, "User not found.")
}

func TestProfileUpdate(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, 1, "j@x.com", "secret1")
	ctx := authed(1, "j@x.com")

	city, phone := " Bandung ", "0812"
	u, err := f.uc.ProfileUpdate(ctx, ProfileUpdateInput{City: &city, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Bandung", u.City)
	assert.Equal(t, "0812", u.Phone)
	assert.Equal(t, "Seed", u.Name)

	u, err = f.uc.ProfileUpdate(ctx, ProfileUpdateInput{})
	require.NoError(t, err)
	assert.Equal(t, "Bandung", u.City)

	short := "J"
	_, err = f.uc.ProfileUpdate(ctx, ProfileUpdateInput{Name: &short})
	assertBusiness(t, err, goerror.CodeInvalidInput, "")
}

func TestPasswordChange(t *testing.T) {
	tests := []struct {
		name    string
		in      PasswordChangeInput
		code    goerror.Code
		msg     string
		changed bool
	}{
		{name: "missing old", in: PasswordChangeInput{NewPassword: "newpass"}, code: goerror.CodeInvalidInput, msg: "Old password is required"},
		{name: "wrong old", in: PasswordChangeInput{OldPassword: "nope", NewPassword: "newpass"}, code: goerror.CodeInvalidInput, msg: "Old password is incorrect"},
		{name: "short new", in: PasswordChangeInput{OldPassword: "secret1", NewPassword: "abc"}, code: goerror.CodeInvalidInput},
		{name: "success", in: PasswordChangeInput{OldPassword: "secret1", NewPassword: "newpass"}, changed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.seedUser(t, 1, "j@x.com", "secret1")

			err := f.uc.PasswordChange(authed(1, "j@x.com"), tt.in)

			if tt.changed {
				require.NoError(t, err)
				assert.True(t, f.argon.Verify(f.repo.password[1], "newpass"))
				return
			}
			assertBusiness(t, err, tt.code, tt.msg)
			assert.True(t, f.argon.Verify(f.repo.password[1], "secret1"))
		})
	}
}

func pngAvatar(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProfileUpdateAvatar(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, 1, "j@x.com", "secret1")
	f.repo.users[1].AvatarKey = "avatars/1/old.jpg"
	f.storage.objects["avatars-test/avatars/1/old.jpg"] = []byte("old")
	ctx := authed(1, "j@x.com")

	out, err := f.uc.ProfileUpdateAvatar(ctx, ProfileUpdateAvatarInput{File: bytes.NewReader(pngAvatar(t, 64, 40))})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/avatars-test/avatars/1/0190-avatar.jpg", out.AvatarURL)

	require.NoError(t, f.gm.Wait())

	stored := f.storage.objects["avatars-test/avatars/1/0190-avatar.jpg"]
	cfg, format, err := image.DecodeConfig(bytes.NewReader(stored))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 32, cfg.Width)
	assert.Equal(t, 32, cfg.Height)

	assert.Equal(t, []string{"avatars/1/old.jpg"}, f.storage.deleted)
	assert.Equal(t, out.AvatarURL, f.repo.users[1].Avatar)
}

func TestProfileUpdateAvatar_Rejects(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, 1, "j@x.com", "secret1")
	ctx := authed(1, "j@x.com")

	_, err := f.uc.ProfileUpdateAvatar(ctx, ProfileUpdateAvatarInput{})
	assertBusiness(t, err, goerror.CodeInvalidInput, "")

	_, err = f.uc.ProfileUpdateAvatar(ctx, ProfileUpdateAvatarInput{File: bytes.NewReader([]byte("not an image"))})
	assertBusiness(t, err, goerror.CodeInvalidInput, "")

	big := bytes.Repeat([]byte{0xff}, 300_000)
	_, err = f.uc.ProfileUpdateAvatar(ctx, ProfileUpdateAvatarInput{File: bytes.NewReader(big)})
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "avatar must be at most 200000 bytes", gerr.Fields()["avatar"])

	assert.Empty(t, f.storage.objects)
}

func TestProfileDelete(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, 1, "j@x.com", "secret1")
	f.repo.users[1].AvatarKey = "avatars/1/a.jpg"
	ctx := authed(1, "j@x.com")

	require.NoError(t, f.uc.ProfileDelete(ctx))
	require.NoError(t, f.gm.Wait())
	assert.Equal(t, []string{"avatars/1/a.jpg"}, f.storage.deleted)

	assertBusiness(t, f.uc.ProfileDelete(ctx), goerror.CodeNotFound, "User not found.")
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "API is running...!", f.uc.Health(context.Background()))
}
