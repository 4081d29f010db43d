package jobs

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"groupmanagement/internal/domain"
	"groupmanagement/internal/repository"
)

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

type fakeUnitOfWork struct {
	repos repository.Repositories
}

func (u *fakeUnitOfWork) WithinTransaction(ctx context.Context, fn func(repos repository.Repositories) error) error {
	return fn(u.repos)
}
