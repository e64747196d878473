package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-notes-api/internal/domain/entity"
	repo "github.com/oksasatya/go-notes-api/internal/domain/repository"
	"github.com/oksasatya/go-notes-api/pkg/helpers"
)

type fakeUserRepo struct {
	byID       map[string]entity.User
	byUsername map[string]string // username -> id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]entity.User{}, byUsername: map[string]string{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
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

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	id, ok := r.byUsername[username]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return r.GetByID(context.Background(), id)
}

func newUserService(t *testing.T) *UserService {
	t.Helper()
	jwt := &helpers.JWTManager{Secret: []byte("test-secret"), TTL: time.Hour}
	return NewUserService(newFakeUserRepo(), jwt, nil)
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)
	u, err := svc.Register(context.Background(), map[string]any{
		"username": "bob", "password": "password1", "fullName": "Bob B.",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "bob", u.Username)
	assert.Equal(t, "Bob B.", u.FullName)
	assert.NotEqual(t, "password1", u.PasswordHash)
	assert.True(t, helpers.CompareHashAndPassword(u.PasswordHash, "password1"))
}

func TestRegister_FieldValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		raw     map[string]any
		wantMsg string
	}{
		{"missing username", map[string]any{"password": "password1"}, "Missing username in request"},
		{"missing password", map[string]any{"username": "bob"}, "Missing password in request"},
		{"non-string username", map[string]any{"username": 42.0, "password": "password1"}, "username should be a string!"},
		{"non-string password", map[string]any{"username": "bob", "password": true}, "password should be a string!"},
		{"non-string fullName", map[string]any{"username": "bob", "password": "password1", "fullName": 7.0}, "fullName should be a string!"},
		{"empty username", map[string]any{"username": "", "password": "password1"}, "Username can't be empty!"},
		{"password too short", map[string]any{"username": "bob", "password": "seven77"}, "Password must be between 8 and 72 characters!"},
		{"password too long", map[string]any{"username": "bob", "password": strings73()}, "Password must be between 8 and 72 characters!"},
		{"username whitespace", map[string]any{"username": " bob", "password": "password1"}, "username cannot contain leading or trailing spaces!"},
		{"password whitespace", map[string]any{"username": "bob", "password": "password1 "}, "password cannot contain leading or trailing spaces!"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := newUserService(t)
			_, err := svc.Register(context.Background(), tc.raw)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.wantMsg, ve.Message)
		})
	}
}

func TestRegister_PasswordLengthBoundaries(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)

	_, err := svc.Register(context.Background(), map[string]any{
		"username": "eight", "password": "12345678",
	})
	require.NoError(t, err, "8-character password must pass")

	pw72 := strings73()[:72]
	_, err = svc.Register(context.Background(), map[string]any{
		"username": "seventytwo", "password": pw72,
	})
	require.NoError(t, err, "72-character password must pass")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)
	_, err := svc.Register(context.Background(), map[string]any{"username": "bob", "password": "password1"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), map[string]any{"username": "bob", "password": "otherpassword", "fullName": "Other Bob"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin_TokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)
	u, err := svc.Register(context.Background(), map[string]any{"username": "bob", "password": "password1"})
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "bob", "password1")
	require.NoError(t, err)

	claims, err := svc.JWT.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Subject)
	assert.Equal(t, u.ID, claims.User.ID)
	assert.Equal(t, "bob", claims.User.Username)
}

func TestLogin_GenericFailure(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)
	_, err := svc.Register(context.Background(), map[string]any{"username": "bob", "password": "password1"})
	require.NoError(t, err)

	// Unknown user and wrong password are indistinguishable.
	_, unknownErr := svc.Login(context.Background(), "nobody", "password1")
	_, wrongErr := svc.Login(context.Background(), "bob", "wrongpassword")
	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
}

func strings73() string {
	b := make([]byte, 73)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}
