package tokens

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Skotchmaster/book_service/internal/logging"
)

const (
	AccessTokenTTL  = time.Hour
	RefreshTokenTTL = 48 * time.Hour

	TokenType = "Bearer"
)

type UserClaims struct {
	Email   string `json:"email"`
	UserUID string `json:"user_uid"`
	Role    string `json:"role"`
}

// Claims is the signed payload of both token kinds. Refresh is the only
// thing telling an access token apart from a refresh token.
type Claims struct {
	User    UserClaims `json:"user"`
	Refresh bool       `json:"refresh"`
	jwt.RegisteredClaims
}

type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	AccessExp    int64  `json:"access_exp"`
	RefreshExp   int64  `json:"refresh_exp"`
}

type Codec struct {
	secret []byte
	method jwt.SigningMethod
}

func NewCodec(secret []byte, algorithm string) Codec {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		method = jwt.SigningMethodHS256
	}
	return Codec{secret: secret, method: method}
}

func (c Codec) Sign(user UserClaims, refresh bool, ttl time.Duration) (string, error) {
	claims := Claims{
		User:    user,
		Refresh: refresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Decode verifies the signature and expiry of raw and returns its claims.
// Every failure mode (bad signature, wrong algorithm, malformed token,
// natural expiry) is logged and collapsed into a nil result so callers
// never have to tell them apart.
func (c Codec) Decode(ctx context.Context, raw string) *Claims {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != c.method.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid {
		logging.FromContext(ctx).Warn("token_decode_failed", "error", err)
		return nil
	}
	return &claims
}

// IssuePair builds an access/refresh pair for user. The two tokens share
// the identity snapshot but carry independent jti values, so revoking one
// never touches the other.
func (c Codec) IssuePair(user UserClaims) (*Pair, error) {
	access, err := c.Sign(user, false, AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := c.Sign(user, true, RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    TokenType,
		AccessExp:    int64(AccessTokenTTL / time.Second),
		RefreshExp:   int64(RefreshTokenTTL / time.Second),
	}, nil
}
