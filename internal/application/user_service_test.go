package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-api/internal/domain/entity"
	repo "auth-api/internal/domain/repository"
	"auth-api/pkg/helpers"
)

type mockUserRepo struct {
	byID    map[string]entity.User
	byEmail map[string]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byID:    make(map[string]entity.User),
		byEmail: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, u *entity.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return repo.ErrDuplicateEmail
	}
	now := time.Now()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	m.byID[u.ID] = *u
	m.byEmail[u.Email] = u.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	id, ok := m.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return m.GetByID(context.Background(), id)
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *mockUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := m.byID[u.ID]; !ok {
		return repo.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	m.byID[u.ID] = *u
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	u, ok := m.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	delete(m.byEmail, u.Email)
	delete(m.byID, id)
	return nil
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

func newTestService(r repo.UserRepository) *Service {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewService(r, jwt, nil, nil, "", nil, false, "auth-api")
}

func TestRegister_NewEmailSucceeds(t *testing.T) {
	m := newMockUserRepo()
	svc := newTestService(m)

	u, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ada",
		Email:    "ada@x.com",
		Password: "s3cret!",
	})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "ada@x.com", u.Email)
	assert.Equal(t, entity.ProviderLocal, u.Provider)

	// never the raw password, and not plaintext-recoverable
	assert.NotEqual(t, "s3cret!", u.PasswordHash)
	assert.NotContains(t, u.PasswordHash, "s3cret!")
	assert.True(t, helpers.CompareHashAndPassword(u.PasswordHash, "s3cret!"))
}

func TestRegister_DuplicateEmailFails(t *testing.T) {
	m := newMockUserRepo()
	svc := newTestService(m)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Ada", Email: "ada@x.com", Password: "s3cret!"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Name: "Eve", Email: "ada@x.com", Password: "different"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Len(t, m.byID, 1, "no record may be created on duplicate signup")
}

func TestRegister_DuplicateInsertRaceFails(t *testing.T) {
	m := newMockUserRepo()
	svc := newTestService(raceRepo{m})

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Ada", Email: "ada@x.com", Password: "s3cret!"})
	require.NoError(t, err)

	// raceRepo reports the email as free, so the service reaches the
	// insert and must map the unique violation to ErrEmailTaken.
	_, err = svc.Register(context.Background(), RegisterInput{Name: "Eve", Email: "ada@x.com", Password: "different"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Len(t, m.byID, 1)
}

// raceRepo simulates losing the check-then-insert race: the exists
// pre-check never fires, leaving the unique index as the only guard.
type raceRepo struct {
	*mockUserRepo
}

func (r raceRepo) ExistsByEmail(context.Context, string) (bool, error) {
	return false, nil
}

func TestRegister_SamePasswordDifferentHashes(t *testing.T) {
	m := newMockUserRepo()
	svc := newTestService(m)

	u1, err := svc.Register(context.Background(), RegisterInput{Name: "Ada", Email: "ada@x.com", Password: "same-password"})
	require.NoError(t, err)
	u2, err := svc.Register(context.Background(), RegisterInput{Name: "Bob", Email: "bob@x.com", Password: "same-password"})
	require.NoError(t, err)

	assert.NotEqual(t, u1.PasswordHash, u2.PasswordHash)
}

func TestRegister_RejectsEmptyInput(t *testing.T) {
	svc := newTestService(newMockUserRepo())

	cases := []RegisterInput{
		{Name: "", Email: "ada@x.com", Password: "s3cret!"},
		{Name: "Ada", Email: "", Password: "s3cret!"},
		{Name: "Ada", Email: "ada@x.com", Password: ""},
		{Name: "   ", Email: "ada@x.com", Password: "s3cret!"},
	}
	for _, in := range cases {
		_, err := svc.Register(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestLogin_TokenSubjectIsAccountID(t *testing.T) {
	m := newMockUserRepo()
	svc := newTestService(m)

	u, err := svc.Register(context.Background(), RegisterInput{Name: "Ada", Email: "ada@x.com", Password: "s3cret!"})
	require.NoError(t, err)

	token, exp, err := svc.Login(context.Background(), "ada@x.com", "s3cret!")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := svc.JWT.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Subject)
	assert.Equal(t, u.ID, claims.UserID)
	assert.True(t, claims.HasRole(entity.RoleUser))
}

func TestLogin_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	m := newMockUserRepo()
	svc := newTestService(m)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Ada", Email: "ada@x.com", Password: "s3cret!"})
	require.NoError(t, err)

	_, _, errUnknown := svc.Login(context.Background(), "nobody@x.com", "s3cret!")
	_, _, errWrong := svc.Login(context.Background(), "ada@x.com", "wrong")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrong)
}

func TestCurrentUser_ResolvesAndSurvivesDeletion(t *testing.T) {
	m := newMockUserRepo()
	svc := newTestService(m)

	u, err := svc.Register(context.Background(), RegisterInput{Name: "Ada", Email: "ada@x.com", Password: "s3cret!"})
	require.NoError(t, err)

	got, err := svc.CurrentUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "ada@x.com", got.Email)

	// account deleted after token issuance: explicit not-found, no panic
	require.NoError(t, m.Delete(context.Background(), u.ID))
	_, err = svc.CurrentUser(context.Background(), u.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSearchUsers_NoESConfigured(t *testing.T) {
	svc := newTestService(newMockUserRepo())

	hits, err := svc.SearchUsers(context.Background(), "ada", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
