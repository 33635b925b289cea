package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"user_auth/internal/db/dbtest"
	"user_auth/internal/service"
	"user_auth/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router   *gin.Engine
	users    *dbtest.MemoryUserStore
	profiles *dbtest.MemoryProfileStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	users := dbtest.NewMemoryUserStore()
	profiles := dbtest.NewMemoryProfileStore()
	auth := service.NewAuthService(users, utils.NewJWTSigner("test-secret", time.Hour))
	router := NewRouter(auth, service.NewProfileService(users, profiles))
	return &testServer{router: router, users: users, profiles: profiles}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *testServer) register(t *testing.T, username, email, password string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/register", "", gin.H{"username": username, "email": email, "password": password})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)["token"].(string)
}

func TestAliceScenario(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/register", "", gin.H{"username": "alice", "email": "alice@example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)
	reg := decode(t, w)
	assert.NotEmpty(t, reg["token"])
	user := reg["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "alice@example.com", user["email"])
	assert.NotContains(t, user, "password")

	w = s.do(t, http.MethodPost, "/login", "", gin.H{"username": "alice", "password": "wrongpass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Invalid credentials"}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/login", "", gin.H{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	token := decode(t, w)["token"].(string)

	w = s.do(t, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode(t, w)
	assert.Nil(t, got["profile"])
	assert.Equal(t, "alice", got["user"].(map[string]any)["username"])

	w = s.do(t, http.MethodPut, "/profile", token, gin.H{"age": 25, "dob": "1999-05-01", "contact": "9876543210"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"age":25,"dob":"1999-05-01","contact":"9876543210"}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile, err := json.Marshal(decode(t, w)["profile"])
	require.NoError(t, err)
	assert.JSONEq(t, `{"age":25,"dob":"1999-05-01","contact":"9876543210"}`, string(profile))
}

func TestRegister_Conflicts(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice", "alice@example.com", "secret1")

	w := s.do(t, http.MethodPost, "/register", "", gin.H{"username": "alice", "email": "alice@example.com", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Username already exists"}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/register", "", gin.H{"username": "bob", "email": "alice@example.com", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Email already exists"}`, w.Body.String())

	assert.Equal(t, 1, s.users.Inserts)
}

func TestRegister_Validation(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		body any
		msg  string
	}{
		{gin.H{"email": "a@example.com", "password": "pw"}, "Username is required"},
		{gin.H{"username": "a", "email": "nope", "password": "pw"}, "Invalid email address"},
		{gin.H{"username": "a", "email": "a@example.com"}, "Password is required"},
		{gin.H{"username": "a", "email": "a@example.com", "password": strings.Repeat("p", 80)}, "Password must be at most 72 bytes"},
		{gin.H{"username": strings.Repeat("u", 300), "email": "a@example.com", "password": "pw"}, "Username must be at most 255 characters"},
		{"{not json", "Invalid request"},
	}
	for _, tc := range cases {
		w := s.do(t, http.MethodPost, "/register", "", tc.body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, tc.msg, decode(t, w)["message"])
	}
	assert.Zero(t, s.users.Inserts)
}

func TestRegister_EmailTrimmedBeforeValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/register", "", gin.H{"username": "bob", "email": " Bob@Example.com ", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "bob@example.com", decode(t, w)["user"].(map[string]any)["email"])

	w = s.do(t, http.MethodPost, "/register", "", gin.H{"username": "bob2", "email": "bob@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Email already exists"}`, w.Body.String())
}

func TestLogin_GenericFailure(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice", "alice@example.com", "secret1")

	wrong := s.do(t, http.MethodPost, "/login", "", gin.H{"username": "alice", "password": "nope"})
	missing := s.do(t, http.MethodPost, "/login", "", gin.H{"username": "nobody", "password": "secret1"})
	empty := s.do(t, http.MethodPost, "/login", "", gin.H{})

	for _, w := range []*httptest.ResponseRecorder{wrong, missing, empty} {
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
	assert.Equal(t, wrong.Body.String(), missing.Body.String())
	assert.Equal(t, wrong.Body.String(), empty.Body.String())
}

func TestLogin_ServerError(t *testing.T) {
	s := newTestServer(t)
	s.users.Err = errors.New("connection refused")

	w := s.do(t, http.MethodPost, "/login", "", gin.H{"username": "alice", "password": "secret1"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Server error during login"}`, w.Body.String())
}

func TestProfile_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	for _, method := range []string{http.MethodGet, http.MethodPut} {
		w := s.do(t, method, "/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = s.do(t, method, "/profile", "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	expired, err := utils.NewJWTSigner("test-secret", -time.Minute).Sign(1)
	require.NoError(t, err)
	w := s.do(t, http.MethodGet, "/profile", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfile_UserVanished(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "alice", "alice@example.com", "secret1")
	s.users.Delete(1)

	w := s.do(t, http.MethodGet, "/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"User not found"}`, w.Body.String())
}

func TestUpdateProfile_ClearOnOmit(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "alice", "alice@example.com", "secret1")

	w := s.do(t, http.MethodPut, "/profile", token, gin.H{"age": 30, "dob": "2000-01-01", "contact": "1234567890"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPut, "/profile", token, gin.H{"age": 31})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"age":31,"dob":null,"contact":null}`, w.Body.String())
}

func TestUpdateProfile_LenientInput(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "alice", "alice@example.com", "secret1")

	w := s.do(t, http.MethodPut, "/profile", token, gin.H{"age": "42", "dob": "1999-05-01T00:00:00.000Z", "contact": ""})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"age":42,"dob":"1999-05-01","contact":null}`, w.Body.String())

	w = s.do(t, http.MethodPut, "/profile", token, gin.H{"age": "", "dob": ""})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"age":null,"dob":null,"contact":null}`, w.Body.String())
}

func TestUpdateProfile_Validation(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "alice", "alice@example.com", "secret1")

	bad := []any{
		gin.H{"age": 0},
		gin.H{"age": -1},
		gin.H{"age": "abc"},
		gin.H{"age": 2.5},
		gin.H{"dob": "yesterday"},
		gin.H{"dob": "2999-01-01"},
		gin.H{"contact": "12345"},
		gin.H{"contact": "abcdefghij"},
		"[1,2",
	}
	for _, body := range bad {
		w := s.do(t, http.MethodPut, "/profile", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%v", body)
	}

	w := s.do(t, http.MethodGet, "/profile", token, nil)
	assert.Nil(t, decode(t, w)["profile"])
}

func TestUpdateProfile_ServerError(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "alice", "alice@example.com", "secret1")
	s.profiles.Err = errors.New("mongo down")

	w := s.do(t, http.MethodPut, "/profile", token, gin.H{"age": 30})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Failed to update profile"}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/profile", token, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Failed to fetch profile"}`, w.Body.String())
}

func TestHealthAndNoRoute(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Not found"}`, w.Body.String())
}
