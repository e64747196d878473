package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-notes-api/internal/application"
	"github.com/oksasatya/go-notes-api/internal/domain/entity"
	repo "github.com/oksasatya/go-notes-api/internal/domain/repository"
	handlers "github.com/oksasatya/go-notes-api/internal/interface/http"
	"github.com/oksasatya/go-notes-api/internal/interface/middleware"
	"github.com/oksasatya/go-notes-api/internal/router"
	"github.com/oksasatya/go-notes-api/internal/router/modules"
	"github.com/oksasatya/go-notes-api/pkg/helpers"
	"github.com/oksasatya/go-notes-api/pkg/validation"
)

type stubUsers struct {
	byID       map[string]entity.User
	byUsername map[string]string
}

func (r *stubUsers) Create(_ context.Context, u *entity.User) error {
	if _, taken := r.byUsername[u.Username]; taken {
		return repo.ErrDuplicateUsername
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.byID[u.ID] = *u
	r.byUsername[u.Username] = u.ID
	return nil
}

func (r *stubUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (r *stubUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	id, ok := r.byUsername[username]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return r.GetByID(context.Background(), id)
}

type stubNotes struct {
	notes map[string]entity.Note
}

func (r *stubNotes) List(_ context.Context, userID string, f repo.NoteFilter) ([]entity.Note, error) {
	out := make([]entity.Note, 0)
	for _, n := range r.notes {
		if n.UserID != userID {
			continue
		}
		if f.SearchTerm != "" &&
			!strings.Contains(strings.ToLower(n.Title), strings.ToLower(f.SearchTerm)) &&
			!strings.Contains(strings.ToLower(n.Content), strings.ToLower(f.SearchTerm)) {
			continue
		}
		n.Tags = []entity.Tag{}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *stubNotes) GetByID(_ context.Context, userID, id string) (*entity.Note, error) {
	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return nil, repo.ErrNotFound
	}
	n.Tags = []entity.Tag{}
	return &n, nil
}

func (r *stubNotes) Create(_ context.Context, userID string, doc repo.NewNote) (*entity.Note, error) {
	now := time.Now()
	n := entity.Note{
		ID: uuid.NewString(), UserID: userID, Title: doc.Title, Content: doc.Content,
		FolderID: doc.FolderID, Tags: []entity.Tag{}, CreatedAt: now, UpdatedAt: now,
	}
	r.notes[n.ID] = n
	return &n, nil
}

func (r *stubNotes) Update(_ context.Context, userID, id string, ch repo.NoteChanges) (*entity.Note, error) {
	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return nil, repo.ErrNotFound
	}
	if ch.Title != nil {
		n.Title = *ch.Title
	}
	if ch.Content != nil {
		n.Content = *ch.Content
	}
	switch {
	case ch.ClearFolder:
		n.FolderID = nil
	case ch.FolderID != nil:
		n.FolderID = ch.FolderID
	}
	n.UpdatedAt = time.Now()
	n.Tags = []entity.Tag{}
	r.notes[id] = n
	return &n, nil
}

func (r *stubNotes) Delete(_ context.Context, userID, id string) error {
	if n, ok := r.notes[id]; ok && n.UserID == userID {
		delete(r.notes, id)
	}
	return nil
}

type stubFolders struct{}

func (stubFolders) CountOwned(_ context.Context, _, _ string) (int, error) { return 0, nil }

type stubTags struct{}

func (stubTags) CountOwned(_ context.Context, _ string, _ []string) (int, error) { return 0, nil }

func newTestLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestServer(t *testing.T) (*gin.Engine, *helpers.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	jwt := &helpers.JWTManager{Secret: []byte("test-secret"), TTL: time.Hour}
	logger := newTestLogger()
	userSvc := application.NewUserService(&stubUsers{byID: map[string]entity.User{}, byUsername: map[string]string{}}, jwt, logger)
	noteSvc := application.NewNoteService(&stubNotes{notes: map[string]entity.Note{}}, stubFolders{}, stubTags{}, nil, 0, logger)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	reg := router.NewRegistry(r)
	reg.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger)))
	reg.Add(modules.NewNoteModule(handlers.NewNoteHandler(noteSvc, logger), jwt))
	reg.RegisterAll()
	return r, jwt
}

func do(t *testing.T, r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type errBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func errMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var b errBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	return b.Message
}

func TestScenario_RegisterLoginNoteLifecycle(t *testing.T) {
	r, _ := newTestServer(t)

	// Register bob.
	w := do(t, r, http.MethodPost, "/api/users", "", `{"username":"bob","password":"password1"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "bob", created.Username)
	assert.Equal(t, "/api/users/"+created.ID, w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "password")

	// Login.
	w = do(t, r, http.MethodPost, "/api/login", "", `{"username":"bob","password":"password1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		AuthToken string `json:"authToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.AuthToken)

	// Empty list.
	w = do(t, r, http.MethodGet, "/api/notes", login.AuthToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	// Create a note.
	w = do(t, r, http.MethodPost, "/api/notes", login.AuthToken, `{"title":"x"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var note struct {
		ID       string  `json:"id"`
		UserID   string  `json:"userId"`
		Title    string  `json:"title"`
		FolderID *string `json:"folderId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &note))
	assert.Equal(t, created.ID, note.UserID)
	assert.Equal(t, "x", note.Title)
	assert.Nil(t, note.FolderID)
	assert.Equal(t, "/api/notes/"+note.ID, w.Header().Get("Location"))

	// Read it back.
	w = do(t, r, http.MethodGet, "/api/notes/"+note.ID, login.AuthToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"x"`)

	// Delete it, then it is gone.
	w = do(t, r, http.MethodDelete, "/api/notes/"+note.ID, login.AuthToken, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/api/notes/"+note.ID, login.AuthToken, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegister_Failures(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(t, r, http.MethodPost, "/api/users", "", `{"username":"bob","password":"short"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Password must be between 8 and 72 characters!", errMessage(t, w))

	w = do(t, r, http.MethodPost, "/api/users", "", `{"username":"bob","password":"password1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodPost, "/api/users", "", `{"username":"bob","password":"different9"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "username already exists", errMessage(t, w))
}

func TestLogin_Failures(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(t, r, http.MethodPost, "/api/users", "", `{"username":"bob","password":"password1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// Missing field fails fast with 400.
	w = do(t, r, http.MethodPost, "/api/login", "", `{"username":"bob"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown user and wrong password are the same generic 401.
	w = do(t, r, http.MethodPost, "/api/login", "", `{"username":"nobody","password":"password1"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	unknownMsg := errMessage(t, w)

	w = do(t, r, http.MethodPost, "/api/login", "", `{"username":"bob","password":"wrongpass"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, unknownMsg, errMessage(t, w))
}

func TestAuth_Rejections(t *testing.T) {
	r, jwt := newTestServer(t)

	// No token.
	w := do(t, r, http.MethodGet, "/api/notes", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token.
	w = do(t, r, http.MethodGet, "/api/notes", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Expired token: same generic rejection.
	expired := &helpers.JWTManager{Secret: jwt.Secret, TTL: -time.Minute}
	tok, _, err := expired.IssueToken(helpers.TokenUser{ID: uuid.NewString(), Username: "bob"})
	require.NoError(t, err)
	w = do(t, r, http.MethodGet, "/api/notes", tok, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Token signed with a different secret.
	forged := &helpers.JWTManager{Secret: []byte("other"), TTL: time.Hour}
	tok, _, err = forged.IssueToken(helpers.TokenUser{ID: uuid.NewString(), Username: "bob"})
	require.NoError(t, err)
	w = do(t, r, http.MethodGet, "/api/notes", tok, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNotes_PayloadFailures(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(t, r, http.MethodPost, "/api/users", "", `{"username":"bob","password":"password1"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w = do(t, r, http.MethodPost, "/api/login", "", `{"username":"bob","password":"password1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		AuthToken string `json:"authToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = do(t, r, http.MethodPost, "/api/notes", login.AuthToken, `{"content":"no title"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing `title` in request body", errMessage(t, w))

	w = do(t, r, http.MethodPost, "/api/notes", login.AuthToken, `{"title":"x","tags":"not-an-array"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "The tags property must be an array", errMessage(t, w))

	w = do(t, r, http.MethodGet, "/api/notes/not-a-uuid", login.AuthToken, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "The `id` is not valid", errMessage(t, w))

	w = do(t, r, http.MethodDelete, "/api/notes/not-a-uuid", login.AuthToken, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}
