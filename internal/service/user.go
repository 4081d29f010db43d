package service

import (
	"context"
	"fmt"

	"groupmanagement/internal/domain"
	"groupmanagement/internal/logger"
	"groupmanagement/internal/repository"
	"groupmanagement/internal/security"
)

type userService struct {
	uow    repository.UnitOfWork
	policy *security.Policy
}

func NewUserService(uow repository.UnitOfWork, policy *security.Policy) UserService {
	return &userService{
		uow:    uow,
		policy: policy,
	}
}

// GetUsersForOwnOrganizations returns the public users for a superuser and
// the members of the caller's ADMIN organizations for everyone else.
func (s *userService) GetUsersForOwnOrganizations(ctx context.Context, id *domain.Identity) ([]domain.UserWithRolesInOrganizations, error) {
	if id.IsAnonymous() {
		return []domain.UserWithRolesInOrganizations{}, nil
	}
	return s.list(ctx, func(repos repository.Repositories) ([]domain.UserWithRolesInOrganizations, error) {
		if id.IsSuperuser() {
			return repos.Users.ListPublicUsers(ctx)
		}
		return repos.Users.ListUsersForAdminOrganizations(ctx, id.Email)
	})
}

func (s *userService) GetUsers(ctx context.Context, id *domain.Identity) ([]domain.UserWithRolesInOrganizations, error) {
	if !s.policy.CanBrowseUsers(id) {
		return []domain.UserWithRolesInOrganizations{}, nil
	}
	full := s.policy.CanShowAuthenticationDetails(id)
	return s.list(ctx, func(repos repository.Repositories) ([]domain.UserWithRolesInOrganizations, error) {
		if full {
			return repos.Users.ListUsers(ctx)
		}
		return repos.Users.ListPublicUsers(ctx)
	})
}

// GetTestUsers lists the fake-login candidates.
func (s *userService) GetTestUsers(ctx context.Context) ([]domain.UserWithRolesInOrganizations, error) {
	if !s.policy.FakeLoginAllowed() {
		return []domain.UserWithRolesInOrganizations{}, nil
	}
	return s.list(ctx, func(repos repository.Repositories) ([]domain.UserWithRolesInOrganizations, error) {
		return repos.Users.ListPublicUsers(ctx)
	})
}

func (s *userService) RemoveUser(ctx context.Context, id *domain.Identity, email string) (bool, error) {
	logger.EnterMethod(ctx, "userService.RemoveUser", "caller", id.GetEmail(), "email", email)

	if err := domain.Check(s.policy.CanRemoveUser(id), "remove user"); err != nil {
		logger.ExitMethodWithError(ctx, "userService.RemoveUser", err)
		return false, err
	}

	var removed bool
	err := s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		var err error
		removed, err = repos.Users.Remove(ctx, email)
		return err
	})
	if err != nil {
		logger.ExitMethodWithError(ctx, "userService.RemoveUser", err)
		return false, fmt.Errorf("failed to remove user: %w", err)
	}

	logger.ExitMethod(ctx, "userService.RemoveUser", "removed", removed)
	return removed, nil
}

func (s *userService) list(ctx context.Context, fn func(repos repository.Repositories) ([]domain.UserWithRolesInOrganizations, error)) ([]domain.UserWithRolesInOrganizations, error) {
	var users []domain.UserWithRolesInOrganizations
	err := s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		var err error
		users, err = fn(repos)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
