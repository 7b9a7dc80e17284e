package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/book_service/internal/hash"
	authmw "github.com/Skotchmaster/book_service/internal/middleware/auth"
	"github.com/Skotchmaster/book_service/internal/models"
	"github.com/Skotchmaster/book_service/internal/repo"
	"github.com/Skotchmaster/book_service/internal/service"
	"github.com/Skotchmaster/book_service/internal/tokens"
)

const testPassword = "handler-test-password"

type stubBlocklist struct {
	mu      sync.Mutex
	revoked map[string]bool
	err     error
}

func (s *stubBlocklist) Add(_ context.Context, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.revoked[jti] = true
	return nil
}

func (s *stubBlocklist) Contains(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[jti], nil
}

func (s *stubBlocklist) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

type recordedEvent struct {
	Topic string
	Key   string
	Body  []byte
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Topic: topic, Key: key, Body: body})
	return nil
}

func (p *recordingPublisher) onTopic(topic string) []recordedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []recordedEvent
	for _, e := range p.events {
		if e.Topic == topic {
			out = append(out, e)
		}
	}
	return out
}

type testEnv struct {
	E      *echo.Echo
	DB     *gorm.DB
	Codec  tokens.Codec
	BL     *stubBlocklist
	Events *recordingPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.Review{},
		&models.Tag{},
	))

	codec := tokens.NewCodec([]byte("handler-test-secret"), "HS256")
	bl := &stubBlocklist{revoked: make(map[string]bool)}
	events := &recordingPublisher{}
	r := repo.GormRepo{DB: db}

	authSvc := &service.AuthService{Repo: r, Codec: codec, Blocklist: bl}
	bookSvc := &service.BookService{Repo: r}
	reviewSvc := &service.ReviewService{Repo: r}
	tagSvc := &service.TagService{Repo: r}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:   &AuthHTTP{Svc: authSvc, Producer: events},
		BookHandler:   &BookHTTP{Svc: bookSvc, Producer: events},
		ReviewHandler: &ReviewHTTP{Svc: reviewSvc, Producer: events},
		TagHandler:    &TagHTTP{Svc: tagSvc},
		SearchHandler: &SearchHTTP{},
		Guard:         authmw.NewTokenGuard(codec, bl),
		BookSvc:       bookSvc,
		ReviewSvc:     reviewSvc,
	})

	return &testEnv{E: e, DB: db, Codec: codec, BL: bl, Events: events}
}

// createUser seeds a user straight into the DB and mints a token pair,
// bypassing the signup and login endpoints.
func (env *testEnv) createUser(t *testing.T, role string) (models.User, *tokens.Pair) {
	t.Helper()

	pwHash, err := hash.HashPassword(testPassword)
	require.NoError(t, err)

	uid := uuid.New()
	user := models.User{
		UID:          uid,
		Username:     "u" + uid.String()[:8],
		Email:        "u" + uid.String()[:8] + "@test.com",
		Role:         role,
		PasswordHash: pwHash,
	}
	require.NoError(t, env.DB.Create(&user).Error)

	pair, err := env.Codec.IssuePair(tokens.UserClaims{
		Email:   user.Email,
		UserUID: user.UID.String(),
		Role:    user.Role,
	})
	require.NoError(t, err)

	return user, pair
}

func (env *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
