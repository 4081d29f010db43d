package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"groupmanagement/internal/domain"
	"groupmanagement/internal/repository"
)

// MockOrganizationRepo
type MockOrganizationRepo struct {
	mock.Mock
}

func (m *MockOrganizationRepo) Create(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrganizationRepo) Update(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrganizationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) List(ctx context.Context, includeRemoved bool) ([]domain.Organization, error) {
	args := m.Called(ctx, includeRemoved)
	return args.Get(0).([]domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) ListModifiedSince(ctx context.Context, ifModifiedSince string, onlyValid bool) ([]domain.Organization, error) {
	args := m.Called(ctx, ifModifiedSince, onlyValid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

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

// MockRoleRepo
type MockRoleRepo struct {
	mock.Mock
}

func (m *MockRoleRepo) AddUserToRole(ctx context.Context, email, role string, orgID uuid.UUID) error {
	args := m.Called(ctx, email, role, orgID)
	return args.Error(0)
}
func (m *MockRoleRepo) ClearRoles(ctx context.Context, orgID uuid.UUID) error {
	args := m.Called(ctx, orgID)
	return args.Error(0)
}
func (m *MockRoleRepo) ListAvailableRoles(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockRoleRepo) ListEmailsInRole(ctx context.Context, role string, orgID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, role, orgID)
	return args.Get(0).([]string), args.Error(1)
}

// MockRequestRepo
type MockRequestRepo struct {
	mock.Mock
}

func (m *MockRequestRepo) Add(ctx context.Context, email string, orgID uuid.UUID, role string) (int, error) {
	args := m.Called(ctx, email, orgID, role)
	return args.Int(0), args.Error(1)
}
func (m *MockRequestRepo) GetByID(ctx context.Context, id int) (*domain.UserRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserRequest), args.Error(1)
}
func (m *MockRequestRepo) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRequestRepo) ListForOrganizations(ctx context.Context, orgIDs []uuid.UUID) ([]domain.UserRequestWithOrganization, error) {
	args := m.Called(ctx, orgIDs)
	return args.Get(0).([]domain.UserRequestWithOrganization), args.Error(1)
}
func (m *MockRequestRepo) ListByEmail(ctx context.Context, email string) ([]domain.PublicUserRequest, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.PublicUserRequest), args.Error(1)
}
func (m *MockRequestRepo) ListUnsent(ctx context.Context) ([]domain.UserRequestWithOrganization, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.UserRequestWithOrganization), args.Error(1)
}
func (m *MockRequestRepo) MarkSent(ctx context.Context, ids []int) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
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

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendAcceptanceNotification(ctx context.Context, email, orgName string) error {
	args := m.Called(ctx, email, orgName)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingRequestsNotification(ctx context.Context, adminEmails []string, orgName string, count int) error {
	args := m.Called(ctx, adminEmails, orgName, count)
	return args.Error(0)
}

// fakeUnitOfWork runs fn against the mocks and counts outcomes.
type fakeUnitOfWork struct {
	repos     repository.Repositories
	commits   int
	rollbacks int
}

func (u *fakeUnitOfWork) WithinTransaction(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := fn(u.repos); err != nil {
		u.rollbacks++
		return err
	}
	u.commits++
	return nil
}

type mocks struct {
	orgs     *MockOrganizationRepo
	users    *MockUserRepo
	roles    *MockRoleRepo
	requests *MockRequestRepo
	tokens   *MockTokenRepo
	uow      *fakeUnitOfWork
}

func newMocks() *mocks {
	m := &mocks{
		orgs:     new(MockOrganizationRepo),
		users:    new(MockUserRepo),
		roles:    new(MockRoleRepo),
		requests: new(MockRequestRepo),
		tokens:   new(MockTokenRepo),
	}
	m.uow = &fakeUnitOfWork{repos: repository.Repositories{
		Organizations: m.orgs,
		Users:         m.users,
		Roles:         m.roles,
		Requests:      m.requests,
		Tokens:        m.tokens,
	}}
	return m
}

func superuser() *domain.Identity {
	return &domain.Identity{
		ID:                   uuid.New(),
		Email:                "super@example.com",
		Superuser:            true,
		RolesInOrganizations: map[uuid.UUID][]string{},
	}
}

func memberOf(email string, orgID uuid.UUID, roles ...string) *domain.Identity {
	return &domain.Identity{
		ID:                   uuid.New(),
		Email:                email,
		RolesInOrganizations: map[uuid.UUID][]string{orgID: roles},
	}
}
