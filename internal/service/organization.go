package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"groupmanagement/internal/domain"
	"groupmanagement/internal/logger"
	"groupmanagement/internal/repository"
	"groupmanagement/internal/security"
)

type organizationService struct {
	uow    repository.UnitOfWork
	policy *security.Policy
}

func NewOrganizationService(uow repository.UnitOfWork, policy *security.Policy) OrganizationService {
	return &organizationService{
		uow:    uow,
		policy: policy,
	}
}

// CreateOrganization stores a new organization and makes every listed email
// its ADMIN. An unknown admin email aborts the whole creation.
func (s *organizationService) CreateOrganization(ctx context.Context, id *domain.Identity, data *domain.CreateOrganization) (uuid.UUID, error) {
	logger.EnterMethod(ctx, "organizationService.CreateOrganization", "caller", id.GetEmail())

	if err := domain.Check(s.policy.CanCreateOrganization(id), "create organization"); err != nil {
		logger.ExitMethodWithError(ctx, "organizationService.CreateOrganization", err)
		return uuid.Nil, err
	}

	org := &domain.Organization{
		ID:            uuid.New(),
		URL:           data.URL,
		NameFi:        data.NameFi,
		NameEn:        data.NameEn,
		NameSv:        data.NameSv,
		DescriptionFi: data.DescriptionFi,
		DescriptionEn: data.DescriptionEn,
		DescriptionSv: data.DescriptionSv,
	}

	err := s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		if err := repos.Organizations.Create(ctx, org); err != nil {
			return fmt.Errorf("failed to create organization: %w", err)
		}
		for _, email := range data.AdminUserEmails {
			if err := repos.Roles.AddUserToRole(ctx, email, domain.RoleAdmin, org.ID); err != nil {
				return fmt.Errorf("failed to add admin %s: %w", email, err)
			}
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError(ctx, "organizationService.CreateOrganization", err)
		return uuid.Nil, err
	}

	logger.ExitMethod(ctx, "organizationService.CreateOrganization", "orgID", org.ID)
	return org.ID, nil
}

// UpdateOrganization writes the organization fields and replaces its role
// assignments with data.UserRoles. A role outside the available set rejects
// the update before anything is written.
func (s *organizationService) UpdateOrganization(ctx context.Context, id *domain.Identity, data *domain.UpdateOrganization) error {
	orgID := data.Organization.ID
	logger.EnterMethod(ctx, "organizationService.UpdateOrganization", "caller", id.GetEmail(), "orgID", orgID)

	if err := domain.Check(s.policy.CanEditOrganization(id, orgID), "edit organization"); err != nil {
		logger.ExitMethodWithError(ctx, "organizationService.UpdateOrganization", err)
		return err
	}

	org := data.Organization
	err := s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		roles, err := repos.Roles.ListAvailableRoles(ctx)
		if err != nil {
			return fmt.Errorf("failed to list roles: %w", err)
		}
		for _, ur := range data.UserRoles {
			if !slices.Contains(roles, ur.Role) {
				return domain.BadInputError("unknown role %q", ur.Role)
			}
		}
		if err := repos.Organizations.Update(ctx, &org); err != nil {
			return fmt.Errorf("failed to update organization: %w", err)
		}
		if err := repos.Roles.ClearRoles(ctx, orgID); err != nil {
			return fmt.Errorf("failed to clear roles: %w", err)
		}
		for _, ur := range data.UserRoles {
			if err := repos.Roles.AddUserToRole(ctx, ur.UserEmail, ur.Role, orgID); err != nil {
				return fmt.Errorf("failed to add %s as %s: %w", ur.UserEmail, ur.Role, err)
			}
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError(ctx, "organizationService.UpdateOrganization", err)
		return err
	}

	logger.ExitMethod(ctx, "organizationService.UpdateOrganization", "roles", len(data.UserRoles))
	return nil
}

func (s *organizationService) GetOrganization(ctx context.Context, id *domain.Identity, orgID uuid.UUID) (*domain.OrganizationWithUsers, error) {
	if err := domain.Check(s.policy.CanViewOrganization(id, orgID), "view organization"); err != nil {
		return nil, err
	}

	result := &domain.OrganizationWithUsers{}
	err := s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		org, err := repos.Organizations.GetByID(ctx, orgID)
		if err != nil {
			return err
		}
		users, err := repos.Users.ListOrganizationUsers(ctx, orgID)
		if err != nil {
			return fmt.Errorf("failed to list organization users: %w", err)
		}
		roles, err := repos.Roles.ListAvailableRoles(ctx)
		if err != nil {
			return fmt.Errorf("failed to list roles: %w", err)
		}
		result.Organization = org
		result.Users = users
		result.AvailableRoles = roles
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *organizationService) ListOrganizations(ctx context.Context, showRemoved bool) ([]domain.OrganizationListItem, error) {
	var orgs []domain.Organization
	err := s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		var err error
		orgs, err = repos.Organizations.List(ctx, showRemoved)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}

	items := make([]domain.OrganizationListItem, 0, len(orgs))
	for i := range orgs {
		items = append(items, domain.NewOrganizationListItem(&orgs[i]))
	}
	return items, nil
}

func (s *organizationService) ListRoles(ctx context.Context) ([]string, error) {
	var roles []string
	err := s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		var err error
		roles, err = repos.Roles.ListAvailableRoles(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}
