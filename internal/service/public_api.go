package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"groupmanagement/internal/domain"
	"groupmanagement/internal/logger"
	"groupmanagement/internal/repository"
	"groupmanagement/internal/security"
)

type publicAPIService struct {
	uow    repository.UnitOfWork
	policy *security.Policy
}

func NewPublicAPIService(uow repository.UnitOfWork, policy *security.Policy) PublicAPIService {
	return &publicAPIService{
		uow:    uow,
		policy: policy,
	}
}

func (s *publicAPIService) GetUserByEmail(ctx context.Context, email string) (*domain.UserWithRolesInOrganizations, error) {
	var user *domain.UserWithRolesInOrganizations
	err := s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		var err error
		user, err = repos.Users.GetByEmail(ctx, email)
		return err
	})
	return user, err
}

func (s *publicAPIService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.UserWithRolesInOrganizations, error) {
	var user *domain.UserWithRolesInOrganizations
	err := s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		var err error
		user, err = repos.Users.GetByID(ctx, id)
		return err
	})
	return user, err
}

// CreateUser stores a non-superuser and returns it with its (empty) roles.
// An email held by a live account is rejected; a removed account does not
// block the address.
func (s *publicAPIService) CreateUser(ctx context.Context, nu *domain.NewUser) (*domain.UserWithRolesInOrganizations, error) {
	email := strings.TrimSpace(nu.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.BadInputError("invalid email %q", nu.Email)
	}
	logger.EnterMethod(ctx, "publicAPIService.CreateUser", "email", email)

	user := &domain.User{
		ID:        uuid.New(),
		Email:     email,
		FirstName: nu.FirstName,
		LastName:  nu.LastName,
	}
	err := s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		existing, err := repos.Users.GetByEmail(ctx, email)
		switch {
		case err == nil && existing.RemovalDateTime == nil:
			return domain.BadInputError("user %q already exists", email)
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return err
		}
		return repos.Users.Create(ctx, user)
	})
	if err != nil {
		logger.ExitMethodWithError(ctx, "publicAPIService.CreateUser", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.ExitMethod(ctx, "publicAPIService.CreateUser", "userID", user.ID)
	return &domain.UserWithRolesInOrganizations{
		ID:               user.ID,
		Email:            user.Email,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		CreationDateTime: user.CreatedAt,
		Organizations:    []domain.OrganizationRoles{},
	}, nil
}

// ListUsers lists only public users while fake login is enabled.
func (s *publicAPIService) ListUsers(ctx context.Context) ([]domain.PublicUserListItem, error) {
	var items []domain.PublicUserListItem
	err := s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		var err error
		items, err = repos.Users.ListUserItems(ctx, s.policy.FakeLoginAllowed())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return items, nil
}

func (s *publicAPIService) ListModifiedUsers(ctx context.Context, ifModifiedSince string) ([]domain.PublicUserListItem, error) {
	var items []domain.PublicUserListItem
	err := s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		var err error
		items, err = repos.Users.ListModifiedSince(ctx, ifModifiedSince)
		return err
	})
	return items, err
}

func (s *publicAPIService) ListOrganizations(ctx context.Context, onlyValid bool) ([]domain.PublicOrganization, error) {
	var orgs []domain.Organization
	err := s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		var err error
		orgs, err = repos.Organizations.List(ctx, !onlyValid)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return toPublicOrganizations(orgs), nil
}

func (s *publicAPIService) ListModifiedOrganizations(ctx context.Context, ifModifiedSince string, onlyValid bool) ([]domain.PublicOrganization, error) {
	var orgs []domain.Organization
	err := s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		var err error
		orgs, err = repos.Organizations.ListModifiedSince(ctx, ifModifiedSince, onlyValid)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toPublicOrganizations(orgs), nil
}

func (s *publicAPIService) AddUserRequest(ctx context.Context, email string, orgID uuid.UUID, role string) error {
	if strings.TrimSpace(email) == "" {
		return domain.BadInputError("email is required")
	}
	return s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		return addRequest(ctx, repos, email, orgID, role)
	})
}

func (s *publicAPIService) ListUserRequests(ctx context.Context, email string) ([]domain.PublicUserRequest, error) {
	var requests []domain.PublicUserRequest
	err := s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		var err error
		requests, err = repos.Requests.ListByEmail(ctx, email)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}

func toPublicOrganizations(orgs []domain.Organization) []domain.PublicOrganization {
	result := make([]domain.PublicOrganization, 0, len(orgs))
	for i := range orgs {
		result = append(result, domain.NewPublicOrganization(&orgs[i]))
	}
	return result
}
