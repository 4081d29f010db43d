package service

import (
	"context"

	"github.com/google/uuid"

	"groupmanagement/internal/domain"
)

type OrganizationService interface {
	CreateOrganization(ctx context.Context, id *domain.Identity, data *domain.CreateOrganization) (uuid.UUID, error)
	UpdateOrganization(ctx context.Context, id *domain.Identity, data *domain.UpdateOrganization) error
	GetOrganization(ctx context.Context, id *domain.Identity, orgID uuid.UUID) (*domain.OrganizationWithUsers, error)
	ListOrganizations(ctx context.Context, showRemoved bool) ([]domain.OrganizationListItem, error)
	ListRoles(ctx context.Context) ([]string, error)
}

type UserService interface {
	GetUsersForOwnOrganizations(ctx context.Context, id *domain.Identity) ([]domain.UserWithRolesInOrganizations, error)
	GetUsers(ctx context.Context, id *domain.Identity) ([]domain.UserWithRolesInOrganizations, error)
	GetTestUsers(ctx context.Context) ([]domain.UserWithRolesInOrganizations, error)
	RemoveUser(ctx context.Context, id *domain.Identity, email string) (bool, error)
}

type RequestService interface {
	GetAllUserRequests(ctx context.Context, id *domain.Identity) ([]domain.UserRequestWithOrganization, error)
	AddUserRequest(ctx context.Context, id *domain.Identity, req *domain.UserRequestModel) error
	DeclineUserRequest(ctx context.Context, id *domain.Identity, requestID int) error
	AcceptUserRequest(ctx context.Context, id *domain.Identity, requestID int) error
}

type TokenService interface {
	CreateToken(ctx context.Context, id *domain.Identity) (string, error)
	DeleteToken(ctx context.Context, id *domain.Identity) (bool, error)
}

type ConfigurationService interface {
	GetConfiguration(ctx context.Context) domain.ConfigurationModel
}

// PublicAPIService serves integrating applications. Its callers are trusted
// services, so it performs no per-identity authorization.
type PublicAPIService interface {
	GetUserByEmail(ctx context.Context, email string) (*domain.UserWithRolesInOrganizations, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.UserWithRolesInOrganizations, error)
	CreateUser(ctx context.Context, user *domain.NewUser) (*domain.UserWithRolesInOrganizations, error)
	ListUsers(ctx context.Context) ([]domain.PublicUserListItem, error)
	ListModifiedUsers(ctx context.Context, ifModifiedSince string) ([]domain.PublicUserListItem, error)
	ListOrganizations(ctx context.Context, onlyValid bool) ([]domain.PublicOrganization, error)
	ListModifiedOrganizations(ctx context.Context, ifModifiedSince string, onlyValid bool) ([]domain.PublicOrganization, error)
	AddUserRequest(ctx context.Context, email string, orgID uuid.UUID, role string) error
	ListUserRequests(ctx context.Context, email string) ([]domain.PublicUserRequest, error)
}

type EmailService interface {
	SendAcceptanceNotification(ctx context.Context, email, orgName string) error
	SendPendingRequestsNotification(ctx context.Context, adminEmails []string, orgName string, count int) error
}
