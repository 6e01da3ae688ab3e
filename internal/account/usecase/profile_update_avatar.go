package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/jzmart/account/internal/pkg/goerror"
	"github.com/jzmart/account/internal/pkg/imaging"
	"github.com/jzmart/account/internal/pkg/jwt"
	"github.com/jzmart/account/internal/pkg/storage"
)

const (
	defaultAvatarMaxSize = 5 << 20
	defaultAvatarPixels  = 256
)

var errAvatarTooLarge = errors.New("avatar exceeds max size")

type ProfileUpdateAvatarInput struct {
	File io.Reader
}

type ProfileUpdateAvatarOutput struct {
	AvatarURL string
}

func (s *Usecase) ProfileUpdateAvatar(ctx context.Context, in ProfileUpdateAvatarInput) (*ProfileUpdateAvatarOutput, error) {
	ctx, span := s.startSpan(ctx, "ProfileUpdateAvatar")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Unauthorized, please login", goerror.CodeUnauthorized)
	}

	if in.File == nil {
		return nil, goerror.NewInvalidInput(nil, "avatar", "avatar file is required")
	}

	maxSize := s.cfg.GetInt64("modules.account.avatar.max_size_bytes")
	if maxSize <= 0 {
		maxSize = defaultAvatarMaxSize
	}
	size := s.cfg.GetInt("modules.account.avatar.size_px")
	if size <= 0 {
		size = defaultAvatarPixels
	}

	img, err := imaging.Square(&maxBytesReader{r: in.File, max: maxSize}, size)
	switch {
	case errors.Is(err, errAvatarTooLarge):
		return nil, goerror.NewInvalidInput(nil, "avatar", fmt.Sprintf("avatar must be at most %d bytes", maxSize))
	case errors.Is(err, imaging.ErrUnsupportedFormat), errors.Is(err, imaging.ErrTooLarge):
		return nil, goerror.NewInvalidInput(nil, "avatar", "avatar must be a JPEG, PNG or WebP image")
	case err != nil:
		slog.ErrorContext(ctx, "failed to process user avatar", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	bucket := s.cfg.GetString("modules.account.avatar.bucket")
	key := fmt.Sprintf("avatars/%d/%s.jpg", clm.UserID, s.uuid.Generate())

	_, err = s.storage.PutObject(ctx, bucket, key, bytes.NewReader(img), storage.PutOptions{
		Size:         int64(len(img)),
		ContentType:  imaging.ContentType,
		CacheControl: "public, max-age=31536000, immutable",
		Metadata:     map[string]string{"user_id": strconv.FormatInt(clm.UserID, 10)},
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to upload user avatar", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	avatarURL := s.storage.PublicURL(bucket, key)

	oldKey, err := s.repoDB.UpdateUserAvatar(ctx, clm.UserID, avatarURL, key)
	if errors.Is(err, goerror.ErrNotFound) {
		s.deleteAvatar(ctx, bucket, key)
		return nil, goerror.NewBusiness("User not found.", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to update user avatar", "user_id", clm.UserID, "error", err)
		s.deleteAvatar(ctx, bucket, key)
		return nil, goerror.NewServer(err)
	}

	s.deleteAvatar(ctx, bucket, oldKey)

	return &ProfileUpdateAvatarOutput{AvatarURL: avatarURL}, nil
}

// deleteAvatar removes an avatar object in the background. Empty keys are
// ignored.
func (s *Usecase) deleteAvatar(ctx context.Context, bucket, key string) {
	if key == "" {
		return
	}

	s.goroutine.Go(ctx, "delete-avatar", func(ctx context.Context) error {
		if err := s.storage.DeleteObject(ctx, bucket, key); err != nil {
			return fmt.Errorf("delete avatar %q: %w", key, err)
		}
		return nil
	})
}

type maxBytesReader struct {
	r     io.Reader
	max   int64
	read  int64
	buf   [1]byte
	ended bool
}

func (m *maxBytesReader) Read(p []byte) (int, error) {
	if m.read >= m.max {
		if m.ended {
			return 0, errAvatarTooLarge
		}

		n, err := m.r.Read(m.buf[:])
		if n > 0 {
			m.ended = true
			return 0, errAvatarTooLarge
		}
		if err == nil {
			m.ended = true
			return 0, errAvatarTooLarge
		}
		return 0, err
	}

	remaining := m.max - m.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := m.r.Read(p)
	m.read += int64(n)
	return n, err
}
