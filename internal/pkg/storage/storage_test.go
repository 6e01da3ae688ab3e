package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "https://cdn.jzmart.com/media/avatars/7/a%20b.jpg",
		joinURL("https://cdn.jzmart.com/", "media", "/avatars/7/a b.jpg"))
}

func TestNewFromDriver_Unknown(t *testing.T) {
	_, err := NewFromDriver(context.Background(), "ftp", FactoryOptions{})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestNewFromDriver_MinIOPublicURL(t *testing.T) {
	s, err := NewFromDriver(context.Background(), "MINIO", FactoryOptions{
		MinIO: MinIOOptions{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s"},
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/media/avatars/1/x.jpg", s.PublicURL("media", "avatars/1/x.jpg"))

	s, err = NewFromDriver(context.Background(), DriverMinIO, FactoryOptions{
		PublicBaseURL: "https://cdn.jzmart.com",
		MinIO:         MinIOOptions{Endpoint: "localhost:9000"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.jzmart.com/media/k.jpg", s.PublicURL("media", "k.jpg"))
}
