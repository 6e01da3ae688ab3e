package uid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowflake(t *testing.T) {
	s, err := NewSnowflake()
	require.NoError(t, err)

	a, b := s.Generate(), s.Generate()
	assert.Positive(t, a)
	assert.Greater(t, b, a)

	_, err = NewSnowflakeNode(4096)
	assert.Error(t, err)
}

func TestUUID(t *testing.T) {
	id := NewUUID().Generate()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}
