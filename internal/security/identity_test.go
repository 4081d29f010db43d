package security

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"groupmanagement/internal/domain"
	"groupmanagement/internal/repository"
)

type authFixture struct {
	users  *MockUserRepo
	tokens *MockTokenRepo
	tm     TokenManager
	hasher *Hasher
	auth   *Authenticator
}

func newAuthFixture(fakeLogin bool) *authFixture {
	f := &authFixture{
		users:  new(MockUserRepo),
		tokens: new(MockTokenRepo),
		tm:     NewTokenManager(testSecret, time.Hour),
		hasher: NewHasher(bcrypt.MinCost),
	}
	uow := &fakeUnitOfWork{repos: repository.Repositories{Users: f.users, Tokens: f.tokens}}
	f.auth = NewAuthenticator(uow, f.tm, f.hasher, NewPolicy(fakeLogin))
	return f
}

func storedUser(email string) *domain.UserWithRolesInOrganizations {
	return &domain.UserWithRolesInOrganizations{
		ID:               uuid.New(),
		Email:            email,
		CreationDateTime: time.Now().UTC(),
		Organizations:    []domain.OrganizationRoles{{ID: uuid.New(), Roles: []string{domain.RoleAdmin}}},
	}
}

type staticClaims struct {
	TokenManager
	claims *UserClaims
}

func (s staticClaims) ValidateToken(string) (*UserClaims, error) {
	return s.claims, nil
}

func TestAuthenticate_BearerTokenMalformedUserID(t *testing.T) {
	f := newAuthFixture(false)
	uow := &fakeUnitOfWork{repos: repository.Repositories{Users: f.users, Tokens: f.tokens}}
	tm := staticClaims{claims: &UserClaims{UserID: "not-a-uuid", Type: TokenTypeAPI}}
	auth := NewAuthenticator(uow, tm, f.hasher, NewPolicy(false))

	_, err := auth.Authenticate(context.Background(), Credentials{BearerToken: "opaque"})

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	f.tokens.AssertNotCalled(t, "GetHash", mock.Anything, mock.Anything)
	f.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAuthenticate_NoCredentials(t *testing.T) {
	f := newAuthFixture(false)

	id, err := f.auth.Authenticate(context.Background(), Credentials{})

	require.NoError(t, err)
	assert.True(t, id.IsAnonymous())
}

func TestAuthenticate_BearerToken(t *testing.T) {
	ctx := context.Background()
	user := storedUser("jane@example.com")

	t.Run("valid token", func(t *testing.T) {
		f := newAuthFixture(false)
		signed, jti, err := f.tm.GenerateAPIToken(user.ID, user.Email)
		require.NoError(t, err)
		hash, err := f.hasher.Hash(jti)
		require.NoError(t, err)
		f.tokens.On("GetHash", ctx, user.ID).Return(hash, nil)
		f.users.On("GetByID", ctx, user.ID).Return(user, nil)

		id, err := f.auth.Authenticate(ctx, Credentials{BearerToken: signed})

		require.NoError(t, err)
		assert.Equal(t, user.ID, id.ID)
		assert.True(t, id.IsInRole(domain.RoleAdmin, user.Organizations[0].ID))
	})

	t.Run("replaced token is rejected", func(t *testing.T) {
		f := newAuthFixture(false)
		signed, _, err := f.tm.GenerateAPIToken(user.ID, user.Email)
		require.NoError(t, err)
		hash, err := f.hasher.Hash("newer-token-id")
		require.NoError(t, err)
		f.tokens.On("GetHash", ctx, user.ID).Return(hash, nil)

		_, err = f.auth.Authenticate(ctx, Credentials{BearerToken: signed})

		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		f.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("revoked token is rejected", func(t *testing.T) {
		f := newAuthFixture(false)
		signed, _, err := f.tm.GenerateAPIToken(user.ID, user.Email)
		require.NoError(t, err)
		f.tokens.On("GetHash", ctx, user.ID).Return("", domain.NotFoundError("token", user.ID))

		_, err = f.auth.Authenticate(ctx, Credentials{BearerToken: signed})

		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("garbage token", func(t *testing.T) {
		f := newAuthFixture(false)

		_, err := f.auth.Authenticate(ctx, Credentials{BearerToken: "garbage", HeaderEmail: "jane@example.com"})

		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("removed user", func(t *testing.T) {
		f := newAuthFixture(false)
		removedAt := time.Now().UTC()
		gone := storedUser("gone@example.com")
		gone.RemovalDateTime = &removedAt
		signed, jti, err := f.tm.GenerateAPIToken(gone.ID, gone.Email)
		require.NoError(t, err)
		hash, err := f.hasher.Hash(jti)
		require.NoError(t, err)
		f.tokens.On("GetHash", ctx, gone.ID).Return(hash, nil)
		f.users.On("GetByID", ctx, gone.ID).Return(gone, nil)

		_, err = f.auth.Authenticate(ctx, Credentials{BearerToken: signed})

		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}

func TestAuthenticate_ProxyHeaders(t *testing.T) {
	ctx := context.Background()

	t.Run("existing user", func(t *testing.T) {
		f := newAuthFixture(false)
		user := storedUser("jane@example.com")
		f.users.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)

		id, err := f.auth.Authenticate(ctx, Credentials{HeaderEmail: " jane@example.com "})

		require.NoError(t, err)
		assert.Equal(t, user.ID, id.ID)
		assert.False(t, id.NewlyCreated)
	})

	t.Run("first login creates the user", func(t *testing.T) {
		f := newAuthFixture(false)
		f.users.On("GetByEmail", ctx, "new@example.com").Return(nil, domain.NotFoundError("user", "new@example.com"))
		f.users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "new@example.com" && u.FirstName == "New" && u.LastName == "Person" && u.ID != uuid.Nil
		})).Return(nil)

		id, err := f.auth.Authenticate(ctx, Credentials{HeaderEmail: "new@example.com", HeaderFirst: "New", HeaderLast: "Person"})

		require.NoError(t, err)
		assert.True(t, id.NewlyCreated)
		assert.Equal(t, "new@example.com", id.Email)
		assert.Empty(t, id.RolesInOrganizations)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newAuthFixture(false)
		f.users.On("GetByEmail", ctx, "jane@example.com").Return(nil, errors.New("connection refused"))

		_, err := f.auth.Authenticate(ctx, Credentials{HeaderEmail: "jane@example.com"})

		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrUnauthenticated)
	})
}

func TestAuthenticate_FakeLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("ignored when disabled", func(t *testing.T) {
		f := newAuthFixture(false)

		id, err := f.auth.Authenticate(ctx, Credentials{FakeLoginEmail: "test@localhost"})

		require.NoError(t, err)
		assert.True(t, id.IsAnonymous())
		f.users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("known user when enabled", func(t *testing.T) {
		f := newAuthFixture(true)
		user := storedUser("test@localhost")
		f.users.On("GetByEmail", ctx, "test@localhost").Return(user, nil)

		id, err := f.auth.Authenticate(ctx, Credentials{FakeLoginEmail: "test@localhost"})

		require.NoError(t, err)
		assert.Equal(t, user.ID, id.ID)
	})

	t.Run("unknown user is anonymous", func(t *testing.T) {
		f := newAuthFixture(true)
		f.users.On("GetByEmail", ctx, "nobody@localhost").Return(nil, domain.NotFoundError("user", "nobody@localhost"))

		id, err := f.auth.Authenticate(ctx, Credentials{FakeLoginEmail: "nobody@localhost"})

		require.NoError(t, err)
		assert.True(t, id.IsAnonymous())
	})
}
