package repository

import (
	"context"

	"github.com/google/uuid"

	"groupmanagement/internal/domain"
)

type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	Update(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	List(ctx context.Context, includeRemoved bool) ([]domain.Organization, error)
	// ListModifiedSince parses ifModifiedSince with ParseModifiedSince.
	ListModifiedSince(ctx context.Context, ifModifiedSince string, onlyValid bool) ([]domain.Organization, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.UserWithRolesInOrganizations, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserWithRolesInOrganizations, error)

	// Listings with roles per organization
	ListUsers(ctx context.Context) ([]domain.UserWithRolesInOrganizations, error)
	ListPublicUsers(ctx context.Context) ([]domain.UserWithRolesInOrganizations, error)
	ListUsersForAdminOrganizations(ctx context.Context, adminEmail string) ([]domain.UserWithRolesInOrganizations, error)
	ListOrganizationUsers(ctx context.Context, orgID uuid.UUID) ([]domain.UserWithRoles, error)

	// Flat listings for the public API
	ListUserItems(ctx context.Context, publicOnly bool) ([]domain.PublicUserListItem, error)
	ListModifiedSince(ctx context.Context, ifModifiedSince string) ([]domain.PublicUserListItem, error)

	// Remove soft-deletes the user and drops its role assignments, pending
	// requests and API token. It reports whether a live user was removed.
	Remove(ctx context.Context, email string) (bool, error)
}

type RoleRepository interface {
	// AddUserToRole is a no-op when the assignment already exists.
	AddUserToRole(ctx context.Context, email, role string, orgID uuid.UUID) error
	ClearRoles(ctx context.Context, orgID uuid.UUID) error
	ListAvailableRoles(ctx context.Context) ([]string, error)
	ListEmailsInRole(ctx context.Context, role string, orgID uuid.UUID) ([]string, error)
}

type RequestRepository interface {
	Add(ctx context.Context, email string, orgID uuid.UUID, role string) (int, error)
	GetByID(ctx context.Context, id int) (*domain.UserRequest, error)
	Delete(ctx context.Context, id int) error
	// ListForOrganizations lists requests of orgIDs, or of every organization when orgIDs is nil.
	ListForOrganizations(ctx context.Context, orgIDs []uuid.UUID) ([]domain.UserRequestWithOrganization, error)
	ListByEmail(ctx context.Context, email string) ([]domain.PublicUserRequest, error)
	ListUnsent(ctx context.Context) ([]domain.UserRequestWithOrganization, error)
	MarkSent(ctx context.Context, ids []int) error
}

type TokenRepository interface {
	Save(ctx context.Context, userID uuid.UUID, tokenHash string) error
	GetHash(ctx context.Context, userID uuid.UUID) (string, error)
	Delete(ctx context.Context, userID uuid.UUID) (bool, error)
}

// Repositories groups the repositories bound to one connection or transaction.
type Repositories struct {
	Organizations OrganizationRepository
	Users         UserRepository
	Roles         RoleRepository
	Requests      RequestRepository
	Tokens        TokenRepository
}

// UnitOfWork runs fn inside a single transaction. The transaction commits when
// fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	WithinTransaction(ctx context.Context, fn func(repos Repositories) error) error
}
