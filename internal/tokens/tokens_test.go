package tokens

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() UserClaims {
	return UserClaims{
		Email:   "reader@example.com",
		UserUID: uuid.NewString(),
		Role:    "user",
	}
}

func TestCodec_SignDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("test-secret"), "HS256")
	user := testUser()

	raw, err := codec.Sign(user, false, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims := codec.Decode(context.Background(), raw)
	require.NotNil(t, claims)

	assert.Equal(t, user.Email, claims.User.Email)
	assert.Equal(t, user.UserUID, claims.User.UserUID)
	assert.Equal(t, user.Role, claims.User.Role)
	assert.False(t, claims.Refresh)
	assert.NotEmpty(t, claims.ID)
}

func TestCodec_Decode_WrongSecret(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("test-secret"), "HS256")
	other := NewCodec([]byte("another-secret"), "HS256")

	raw, err := codec.Sign(testUser(), false, time.Minute)
	require.NoError(t, err)

	assert.Nil(t, other.Decode(context.Background(), raw))
}

func TestCodec_Decode_Expired(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("test-secret"), "HS256")

	raw, err := codec.Sign(testUser(), false, -time.Minute)
	require.NoError(t, err)

	assert.Nil(t, codec.Decode(context.Background(), raw))
}

func TestCodec_Decode_Garbage(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("test-secret"), "HS256")

	assert.Nil(t, codec.Decode(context.Background(), "not-a-token"))
	assert.Nil(t, codec.Decode(context.Background(), ""))
}

func TestCodec_IssuePair(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("test-secret"), "HS256")
	user := testUser()

	pair, err := codec.IssuePair(user)
	require.NoError(t, err)

	assert.Equal(t, TokenType, pair.TokenType)
	assert.EqualValues(t, AccessTokenTTL/time.Second, pair.AccessExp)
	assert.EqualValues(t, RefreshTokenTTL/time.Second, pair.RefreshExp)

	ctx := context.Background()

	access := codec.Decode(ctx, pair.AccessToken)
	require.NotNil(t, access)
	assert.False(t, access.Refresh)

	refresh := codec.Decode(ctx, pair.RefreshToken)
	require.NotNil(t, refresh)
	assert.True(t, refresh.Refresh)

	assert.NotEqual(t, access.ID, refresh.ID)

	require.NotNil(t, access.ExpiresAt)
	require.NotNil(t, refresh.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(AccessTokenTTL), access.ExpiresAt.Time, 5*time.Second)
	assert.WithinDuration(t, time.Now().Add(RefreshTokenTTL), refresh.ExpiresAt.Time, 5*time.Second)
}

func TestNewCodec_UnknownAlgorithmFallsBackToHS256(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("test-secret"), "RS999")
	raw, err := codec.Sign(testUser(), false, time.Minute)
	require.NoError(t, err)

	known := NewCodec([]byte("test-secret"), "HS256")
	assert.NotNil(t, known.Decode(context.Background(), raw))
}
