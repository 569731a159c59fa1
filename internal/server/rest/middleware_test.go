package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/interntrack/internal/common"
	"github.com/dmitrijs2005/interntrack/internal/logging"
	"github.com/dmitrijs2005/interntrack/internal/server/auth"
	"github.com/dmitrijs2005/interntrack/internal/server/models"
	"github.com/dmitrijs2005/interntrack/internal/server/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeTokens struct {
	id  auth.Identity
	err error
}

func (f fakeTokens) Verify(string) (auth.Identity, error) { return f.id, f.err }

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeUsers struct{ err error }

func (f fakeUsers) Signup(context.Context, string, string) (*services.AuthResult, error) {
	return nil, f.err
}
func (f fakeUsers) Login(context.Context, string, string) (*services.AuthResult, error) {
	return nil, f.err
}

type fakeInternships struct {
	list []*models.Internship
	err  error
}

func (f fakeInternships) List(context.Context, int64, models.InternshipFilter) ([]*models.Internship, error) {
	return f.list, f.err
}
func (f fakeInternships) Get(context.Context, int64, int64) (*models.Internship, error) {
	return nil, f.err
}
func (f fakeInternships) Create(context.Context, int64, models.InternshipInput) (*models.Internship, error) {
	return nil, f.err
}
func (f fakeInternships) Update(context.Context, int64, int64, models.InternshipInput) error {
	return f.err
}
func (f fakeInternships) Delete(context.Context, int64, int64) error { return f.err }

// recordingLogger keeps error messages for assertions.
type recordingLogger struct {
	logging.Nop
	errors *[]string
}

func (l recordingLogger) Error(_ context.Context, msg string, args ...any) {
	*l.errors = append(*l.errors, msg)
}
func (l recordingLogger) With(...any) logging.Logger { return l }

func newFakeServer(us UserService, is InternshipService, tv TokenVerifier, hp Pinger) *Server {
	return NewServer(Options{}, logging.Nop{}, us, is, tv, hp)
}

// ---- tests ----

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"Bearer  abc", "", false},
		{"bearer abc", "", false},
		{"BEARER abc", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"", "", false},
		{"Token abc", "", false},
		{"Bearer a b", "", false},
	}

	for _, tt := range tests {
		token, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}

func TestAuthenticate_AttachesIdentity(t *testing.T) {
	s := newFakeServer(fakeUsers{}, fakeInternships{}, fakeTokens{id: auth.Identity{UserID: 9, Username: "zed"}}, fakePinger{})

	var got auth.Identity
	var ok bool
	h := s.authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = IdentityFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/internships?user_id=1", nil)
	req.Header.Set("Authorization", "Bearer t")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, ok)
	assert.Equal(t, auth.Identity{UserID: 9, Username: "zed"}, got)
}

func TestAuthenticate_RejectsWithoutCallingHandler(t *testing.T) {
	for _, verr := range []error{common.ErrInvalidToken, common.ErrTokenExpired} {
		s := newFakeServer(fakeUsers{}, fakeInternships{}, fakeTokens{err: verr}, fakePinger{})

		called := false
		h := s.authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

		req := httptest.NewRequest(http.MethodGet, "/internships", nil)
		req.Header.Set("Authorization", "Bearer t")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, verr.Error(), decodeError(t, rec))
	}
}

func TestIdentityFromContext_Missing(t *testing.T) {
	_, ok := IdentityFromContext(context.Background())
	assert.False(t, ok)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := requestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", maxRequestIDLength+1))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err, "oversized ids are replaced")
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	t.Run("wildcard preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/internships", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		cors([]string{"*"})(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("listed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/internships", nil)
		req.Header.Set("Origin", "https://app.example")
		rec := httptest.NewRecorder()
		cors([]string{"https://APP.example"})(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", rec.Header().Get("Vary"))
	})

	t.Run("unlisted origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/internships", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		cors([]string{"https://app.example"})(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestPreflightThroughFullChain(t *testing.T) {
	s := newFakeServer(fakeUsers{}, fakeInternships{}, fakeTokens{err: common.ErrInvalidToken}, fakePinger{})

	req := httptest.NewRequest(http.MethodOptions, "/internships/5", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "DELETE")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestWriteError_Mapping(t *testing.T) {
	var logged []string
	s := NewServer(Options{}, recordingLogger{errors: &logged}, fakeUsers{}, fakeInternships{}, fakeTokens{}, fakePinger{})

	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{common.InvalidInput("bad thing"), http.StatusBadRequest, "bad thing"},
		{common.ErrorDuplicateUsername, http.StatusConflict, "username already exists"},
		{common.ErrorInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{common.ErrorUnauthorized, http.StatusUnauthorized, "invalid token"},
		{common.ErrTokenExpired, http.StatusUnauthorized, "token expired"},
		{errors.Join(errors.New("ctx"), common.ErrorNotFound), http.StatusNotFound, "not found"},
		{errBodyTooLarge, http.StatusRequestEntityTooLarge, "request body too large"},
		{errors.New("db error: disk I/O error"), http.StatusInternalServerError, "internal error"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		s.writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
		assert.Equal(t, tt.status, rec.Code, tt.err.Error())
		assert.Equal(t, tt.msg, decodeError(t, rec))
	}

	assert.Equal(t, []string{"request failed"}, logged, "only unexpected errors are logged")
}

func TestStorageFailureIs500(t *testing.T) {
	s := newFakeServer(fakeUsers{err: errors.New("db error: locked")},
		fakeInternships{err: errors.New("db error: locked")},
		fakeTokens{id: auth.Identity{UserID: 1}}, fakePinger{})
	h := s.Handler()

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodPost, "/auth/signup", `{"username":"alice","password":"secret1"}`},
		{http.MethodPost, "/auth/login", `{"username":"alice","password":"secret1"}`},
		{http.MethodGet, "/internships", ""},
		{http.MethodDelete, "/internships/1", ""},
	} {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		req.Header.Set("Authorization", "Bearer t")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code, tc.path)
		assert.Equal(t, "internal error", decodeError(t, rec))
	}
}

func TestListNilBecomesEmptyArray(t *testing.T) {
	s := newFakeServer(fakeUsers{}, fakeInternships{}, fakeTokens{id: auth.Identity{UserID: 1}}, fakePinger{})

	req := httptest.NewRequest(http.MethodGet, "/internships", nil)
	req.Header.Set("Authorization", "Bearer t")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHealthz_Unavailable(t *testing.T) {
	s := newFakeServer(fakeUsers{}, fakeInternships{}, fakeTokens{}, fakePinger{err: errors.New("db gone")})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, rec.Body.String())
}

func TestServe_GracefulShutdown(t *testing.T) {
	s := newFakeServer(fakeUsers{}, fakeInternships{}, fakeTokens{}, fakePinger{})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_BadAddress(t *testing.T) {
	s := NewServer(Options{Address: "bad::addr::"}, logging.Nop{}, fakeUsers{}, fakeInternships{}, fakeTokens{}, fakePinger{})
	assert.Error(t, s.Run(context.Background()))
}
