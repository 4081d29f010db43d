package http

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"groupmanagement/internal/domain"
	"groupmanagement/internal/security"
)

// MockResolver
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Authenticate(ctx context.Context, c security.Credentials) (*domain.Identity, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

// MockOrganizationService
type MockOrganizationService struct {
	mock.Mock
}

func (m *MockOrganizationService) CreateOrganization(ctx context.Context, id *domain.Identity, data *domain.CreateOrganization) (uuid.UUID, error) {
	args := m.Called(ctx, id, data)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
func (m *MockOrganizationService) UpdateOrganization(ctx context.Context, id *domain.Identity, data *domain.UpdateOrganization) error {
	args := m.Called(ctx, id, data)
	return args.Error(0)
}
func (m *MockOrganizationService) GetOrganization(ctx context.Context, id *domain.Identity, orgID uuid.UUID) (*domain.OrganizationWithUsers, error) {
	args := m.Called(ctx, id, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganizationWithUsers), args.Error(1)
}
func (m *MockOrganizationService) ListOrganizations(ctx context.Context, showRemoved bool) ([]domain.OrganizationListItem, error) {
	args := m.Called(ctx, showRemoved)
	return args.Get(0).([]domain.OrganizationListItem), args.Error(1)
}
func (m *MockOrganizationService) ListRoles(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

// MockUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUsersForOwnOrganizations(ctx context.Context, id *domain.Identity) ([]domain.UserWithRolesInOrganizations, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.UserWithRolesInOrganizations), args.Error(1)
}
func (m *MockUserService) GetUsers(ctx context.Context, id *domain.Identity) ([]domain.UserWithRolesInOrganizations, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.UserWithRolesInOrganizations), args.Error(1)
}
func (m *MockUserService) GetTestUsers(ctx context.Context) ([]domain.UserWithRolesInOrganizations, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.UserWithRolesInOrganizations), args.Error(1)
}
func (m *MockUserService) RemoveUser(ctx context.Context, id *domain.Identity, email string) (bool, error) {
	args := m.Called(ctx, id, email)
	return args.Bool(0), args.Error(1)
}

// MockRequestService
type MockRequestService struct {
	mock.Mock
}

func (m *MockRequestService) GetAllUserRequests(ctx context.Context, id *domain.Identity) ([]domain.UserRequestWithOrganization, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.UserRequestWithOrganization), args.Error(1)
}
func (m *MockRequestService) AddUserRequest(ctx context.Context, id *domain.Identity, req *domain.UserRequestModel) error {
	args := m.Called(ctx, id, req)
	return args.Error(0)
}
func (m *MockRequestService) DeclineUserRequest(ctx context.Context, id *domain.Identity, requestID int) error {
	args := m.Called(ctx, id, requestID)
	return args.Error(0)
}
func (m *MockRequestService) AcceptUserRequest(ctx context.Context, id *domain.Identity, requestID int) error {
	args := m.Called(ctx, id, requestID)
	return args.Error(0)
}

// MockTokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) CreateToken(ctx context.Context, id *domain.Identity) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
func (m *MockTokenService) DeleteToken(ctx context.Context, id *domain.Identity) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type staticConfiguration domain.ConfigurationModel

func (s staticConfiguration) GetConfiguration(context.Context) domain.ConfigurationModel {
	return domain.ConfigurationModel(s)
}

// MockPublicAPIService
type MockPublicAPIService struct {
	mock.Mock
}

func (m *MockPublicAPIService) GetUserByEmail(ctx context.Context, email string) (*domain.UserWithRolesInOrganizations, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserWithRolesInOrganizations), args.Error(1)
}
func (m *MockPublicAPIService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.UserWithRolesInOrganizations, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserWithRolesInOrganizations), args.Error(1)
}
func (m *MockPublicAPIService) CreateUser(ctx context.Context, user *domain.NewUser) (*domain.UserWithRolesInOrganizations, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserWithRolesInOrganizations), args.Error(1)
}
func (m *MockPublicAPIService) ListUsers(ctx context.Context) ([]domain.PublicUserListItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PublicUserListItem), args.Error(1)
}
func (m *MockPublicAPIService) ListModifiedUsers(ctx context.Context, ifModifiedSince string) ([]domain.PublicUserListItem, error) {
	args := m.Called(ctx, ifModifiedSince)
	return args.Get(0).([]domain.PublicUserListItem), args.Error(1)
}
func (m *MockPublicAPIService) ListOrganizations(ctx context.Context, onlyValid bool) ([]domain.PublicOrganization, error) {
	args := m.Called(ctx, onlyValid)
	return args.Get(0).([]domain.PublicOrganization), args.Error(1)
}
func (m *MockPublicAPIService) ListModifiedOrganizations(ctx context.Context, ifModifiedSince string, onlyValid bool) ([]domain.PublicOrganization, error) {
	args := m.Called(ctx, ifModifiedSince, onlyValid)
	return args.Get(0).([]domain.PublicOrganization), args.Error(1)
}
func (m *MockPublicAPIService) AddUserRequest(ctx context.Context, email string, orgID uuid.UUID, role string) error {
	args := m.Called(ctx, email, orgID, role)
	return args.Error(0)
}
func (m *MockPublicAPIService) ListUserRequests(ctx context.Context, email string) ([]domain.PublicUserRequest, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.PublicUserRequest), args.Error(1)
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }
