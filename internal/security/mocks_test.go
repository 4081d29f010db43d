package security

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"groupmanagement/internal/domain"
	"groupmanagement/internal/repository"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.UserWithRolesInOrganizations, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserWithRolesInOrganizations), args.Error(1)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserWithRolesInOrganizations, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserWithRolesInOrganizations), args.Error(1)
}
func (m *MockUserRepo) ListUsers(ctx context.Context) ([]domain.UserWithRolesInOrganizations, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.UserWithRolesInOrganizations), args.Error(1)
}
func (m *MockUserRepo) ListPublicUsers(ctx context.Context) ([]domain.UserWithRolesInOrganizations, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.UserWithRolesInOrganizations), args.Error(1)
}
func (m *MockUserRepo) ListUsersForAdminOrganizations(ctx context.Context, adminEmail string) ([]domain.UserWithRolesInOrganizations, error) {
	args := m.Called(ctx, adminEmail)
	return args.Get(0).([]domain.UserWithRolesInOrganizations), args.Error(1)
}
func (m *MockUserRepo) ListOrganizationUsers(ctx context.Context, orgID uuid.UUID) ([]domain.UserWithRoles, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.UserWithRoles), args.Error(1)
}
func (m *MockUserRepo) ListUserItems(ctx context.Context, publicOnly bool) ([]domain.PublicUserListItem, error) {
	args := m.Called(ctx, publicOnly)
	return args.Get(0).([]domain.PublicUserListItem), args.Error(1)
}
func (m *MockUserRepo) ListModifiedSince(ctx context.Context, ifModifiedSince string) ([]domain.PublicUserListItem, error) {
	args := m.Called(ctx, ifModifiedSince)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PublicUserListItem), args.Error(1)
}
func (m *MockUserRepo) Remove(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockTokenRepo
type MockTokenRepo struct {
	mock.Mock
}

func (m *MockTokenRepo) Save(ctx context.Context, userID uuid.UUID, tokenHash string) error {
	args := m.Called(ctx, userID, tokenHash)
	return args.Error(0)
}
func (m *MockTokenRepo) GetHash(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}
func (m *MockTokenRepo) Delete(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}


type fakeUnitOfWork struct {
	repos repository.Repositories
}

func (u *fakeUnitOfWork) WithinTransaction(ctx context.Context, fn func(repos repository.Repositories) error) error {
	return fn(u.repos)
}
