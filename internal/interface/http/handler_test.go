package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notesapp/notes-api/config"
	"github.com/notesapp/notes-api/internal/application"
	"github.com/notesapp/notes-api/internal/container"
	"github.com/notesapp/notes-api/internal/domain/entity"
	"github.com/notesapp/notes-api/internal/infrastructure/memory"
	handlers "github.com/notesapp/notes-api/internal/interface/http"
	"github.com/notesapp/notes-api/internal/router"
	"github.com/notesapp/notes-api/internal/router/modules"
	"github.com/notesapp/notes-api/pkg/helpers"
)

type testServer struct {
	engine *gin.Engine
	users  *memory.UserRepository
	notes  *memory.NoteRepository
	jwt    *helpers.JWTManager
}

// newTestServer wires the real modules over in-memory stores. Redis is
// left nil so the rate limiter is a no-op.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := memory.NewUserRepository()
	notes := memory.NewNoteRepository()
	jwt := helpers.NewJWTManager("test-access", "test-refresh", 15*time.Minute, 24*time.Hour)
	cookies := helpers.NewCookieManager("", false)

	container.SetConfig(config.Load())
	container.SetRedis(nil)
	container.SetJWT(jwt)
	container.SetCookies(cookies)

	authService := application.NewAuthService(users, jwt, nil)
	noteService := application.NewNoteService(notes, users, nil)
	authHandler := handlers.NewAuthHandler(authService, cookies, nil)
	noteHandler := handlers.NewNoteHandler(noteService, nil)

	engine := gin.New()
	reg := router.NewRegistry(engine)
	reg.Add(modules.NewAuthModule(authHandler))
	reg.Add(modules.NewNoteModule(noteHandler, users))
	reg.RegisterAll()

	return &testServer{engine: engine, users: users, notes: notes, jwt: jwt}
}

func (s *testServer) addUser(t *testing.T, email string) (id, token string) {
	t.Helper()
	u := &entity.User{Email: email, Name: email, Password: "x"}
	require.NoError(t, s.users.Create(context.Background(), u))
	tok, _, err := s.jwt.GenerateAccessToken(u.ID)
	require.NoError(t, err)
	return u.ID, tok
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

type noteDTO struct {
	ID                string   `json:"id"`
	OwnerID           string   `json:"ownerId"`
	Title             string   `json:"title"`
	Body              string   `json:"body"`
	SharedWithUserIDs []string `json:"sharedWithUserIds"`
	DateModified      *string  `json:"dateModified"`
}

func decodeNote(t *testing.T, w *httptest.ResponseRecorder) noteDTO {
	t.Helper()
	var n noteDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &n))
	return n
}

func TestSignupLoginRefreshLogout(t *testing.T) {
	s := newTestServer(t)

	// Signup
	w := s.do(http.MethodPost, "/api/auth/signup", "", `{"email":"alice@example.com","name":"Alice","password":"hunter22"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		UserID string `json:"userId"`
		Name   string `json:"name"`
		Email  string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.UserID)
	assert.Equal(t, "alice@example.com", created.Email)

	// Duplicate signup and incomplete payloads fail with 400.
	w = s.do(http.MethodPost, "/api/auth/signup", "", `{"email":"alice@example.com","name":"A","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(http.MethodPost, "/api/auth/signup", "", `{"email":"bob@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Login sets the refresh cookie and returns an access token.
	w = s.do(http.MethodPost, "/api/auth/login", "", `{"email":"alice@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.NotEmpty(t, login.AccessToken)

	cookies := w.Result().Cookies()
	var refresh *http.Cookie
	for _, ck := range cookies {
		if ck.Name == helpers.RefreshCookieName {
			refresh = ck
		}
	}
	require.NotNil(t, refresh, "login must set the jwt_cookie")
	assert.True(t, refresh.HttpOnly)

	// Wrong password is a plain 401.
	w = s.do(http.MethodPost, "/api/auth/login", "", `{"email":"alice@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Refresh with the cookie yields a fresh access token.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/refresh", nil)
	req.AddCookie(refresh)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "accessToken")

	// Refresh without a cookie is 401.
	w = s.do(http.MethodGet, "/api/auth/refresh", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Logout without a cookie: 204, no body.
	w = s.do(http.MethodPost, "/api/auth/logout", "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	// Logout with the cookie: 200 and the cookie is cleared.
	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(refresh)
	rec = httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Logged out.")
	var cleared *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == helpers.RefreshCookieName {
			cleared = ck
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestNotesRequireAuth(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/notes", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/notes", "", `{"title":"x"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPut, "/api/notes/00000000-0000-0000-0000-000000000000", "", `{"title":"x"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodDelete, "/api/notes/00000000-0000-0000-0000-000000000000", "", "").Code)
}

func TestNoteCRUD(t *testing.T) {
	s := newTestServer(t)
	_, aliceTok := s.addUser(t, "alice@example.com")

	// Create
	w := s.do(http.MethodPost, "/api/notes", aliceTok, `{"title":"x","body":"hello"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeNote(t, w)
	assert.NotEmpty(t, created.ID)
	assert.Nil(t, created.DateModified, "dateModified is absent until first update")

	// Missing title -> 400; duplicate title -> 400.
	w = s.do(http.MethodPost, "/api/notes", aliceTok, `{"body":"no title"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(http.MethodPost, "/api/notes", aliceTok, `{"title":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Duplicate title.")

	// Get
	w = s.do(http.MethodGet, "/api/notes/"+created.ID, aliceTok, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", decodeNote(t, w).Body)

	// Malformed and unknown ids.
	w = s.do(http.MethodGet, "/api/notes/not-a-uuid", aliceTok, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(http.MethodGet, "/api/notes/00000000-0000-0000-0000-000000000000", aliceTok, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Update
	w = s.do(http.MethodPut, "/api/notes/"+created.ID, aliceTok, `{"title":"x","body":"edited"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "x updated")
	w = s.do(http.MethodGet, "/api/notes/"+created.ID, aliceTok, "")
	updated := decodeNote(t, w)
	assert.Equal(t, "edited", updated.Body)
	assert.NotNil(t, updated.DateModified)

	// List
	w = s.do(http.MethodGet, "/api/notes", aliceTok, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []noteDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	// Delete
	w = s.do(http.MethodDelete, "/api/notes/"+created.ID, aliceTok, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(http.MethodGet, "/api/notes/"+created.ID, aliceTok, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSharingScenario(t *testing.T) {
	s := newTestServer(t)
	aliceID, aliceTok := s.addUser(t, "alice@example.com")
	bobID, bobTok := s.addUser(t, "bob@example.com")
	carolID, _ := s.addUser(t, "carol@example.com")

	w := s.do(http.MethodPost, "/api/notes", aliceTok, `{"title":"x"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	note := decodeNote(t, w)

	// Before sharing, Bob's direct fetch is Forbidden (the id lookup
	// already confirmed existence), and his list excludes it.
	w = s.do(http.MethodGet, "/api/notes/"+note.ID, bobTok, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodGet, "/api/notes", bobTok, "")
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	// Share with Bob.
	w = s.do(http.MethodPost, "/api/notes/"+note.ID+"/share", aliceTok, `{"sharedWithUserId":"`+bobID+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "x shared")

	// Bob reads it and sees only himself in the grantee list.
	w = s.do(http.MethodGet, "/api/notes/"+note.ID, bobTok, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{bobID}, decodeNote(t, w).SharedWithUserIDs)

	// Bob cannot mutate or re-share.
	w = s.do(http.MethodPut, "/api/notes/"+note.ID, bobTok, `{"title":"mine now"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodDelete, "/api/notes/"+note.ID, bobTok, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodPost, "/api/notes/"+note.ID+"/share", bobTok, `{"sharedWithUserId":"`+carolID+`"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Share preconditions on the owner side.
	w = s.do(http.MethodPost, "/api/notes/"+note.ID+"/share", aliceTok, `{"sharedWithUserId":"`+aliceID+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(http.MethodPost, "/api/notes/"+note.ID+"/share", aliceTok, `{"sharedWithUserId":"`+bobID+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Already shared with this user.")
	w = s.do(http.MethodPost, "/api/notes/"+note.ID+"/share", aliceTok, `{"sharedWithUserId":"00000000-0000-0000-0000-000000000000"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The owner still sees the real grantee list.
	w = s.do(http.MethodGet, "/api/notes/"+note.ID, aliceTok, "")
	assert.Equal(t, []string{bobID}, decodeNote(t, w).SharedWithUserIDs)
}

func TestSearchEndpoint(t *testing.T) {
	s := newTestServer(t)
	_, aliceTok := s.addUser(t, "alice@example.com")
	bobID, bobTok := s.addUser(t, "bob@example.com")

	w := s.do(http.MethodPost, "/api/notes", aliceTok, `{"title":"Grocery List","body":"Milk and eggs"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	note := decodeNote(t, w)
	w = s.do(http.MethodPost, "/api/notes/"+note.ID+"/share", aliceTok, `{"sharedWithUserId":"`+bobID+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// Case-insensitive substring match on title or body.
	w = s.do(http.MethodGet, "/api/search?q=GROCERY", aliceTok, "")
	require.Equal(t, http.StatusOK, w.Code)
	var results []noteDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 1)

	w = s.do(http.MethodGet, "/api/search?q=milk", bobTok, "")
	require.Equal(t, http.StatusOK, w.Code)
	results = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, []string{bobID}, results[0].SharedWithUserIDs)

	// Missing query and empty result set both report 404.
	w = s.do(http.MethodGet, "/api/search", aliceTok, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(http.MethodGet, "/api/search?q=zzz", aliceTok, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Unauthenticated search is 401.
	w = s.do(http.MethodGet, "/api/search?q=milk", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
