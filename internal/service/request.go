package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"groupmanagement/internal/domain"
	"groupmanagement/internal/logger"
	"groupmanagement/internal/repository"
	"groupmanagement/internal/security"
)

const notificationTimeout = 30 * time.Second

type requestService struct {
	uow      repository.UnitOfWork
	policy   *security.Policy
	emailSvc EmailService
}

func NewRequestService(uow repository.UnitOfWork, policy *security.Policy, emailSvc EmailService) RequestService {
	return &requestService{
		uow:      uow,
		policy:   policy,
		emailSvc: emailSvc,
	}
}

// GetAllUserRequests lists every pending request for a superuser and the
// requests of the caller's ADMIN organizations for everyone else.
func (s *requestService) GetAllUserRequests(ctx context.Context, id *domain.Identity) ([]domain.UserRequestWithOrganization, error) {
	var scope []uuid.UUID
	if !id.IsSuperuser() {
		scope = id.Organizations(domain.RoleAdmin)
		if len(scope) == 0 {
			return []domain.UserRequestWithOrganization{}, nil
		}
	}

	var requests []domain.UserRequestWithOrganization
	err := s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		var err error
		requests, err = repos.Requests.ListForOrganizations(ctx, scope)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}

func (s *requestService) AddUserRequest(ctx context.Context, id *domain.Identity, req *domain.UserRequestModel) error {
	logger.EnterMethod(ctx, "requestService.AddUserRequest", "caller", id.GetEmail(), "orgID", req.OrganizationID, "role", req.Role)

	if err := domain.Check(s.policy.CanRequestMembership(id), "request membership"); err != nil {
		logger.ExitMethodWithError(ctx, "requestService.AddUserRequest", err)
		return err
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = id.Email
	}
	if !id.IsSuperuser() && !strings.EqualFold(email, id.Email) {
		err := domain.AuthorizationError("request membership for another user")
		logger.ExitMethodWithError(ctx, "requestService.AddUserRequest", err)
		return err
	}

	err := s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		return addRequest(ctx, repos, email, req.OrganizationID, req.Role)
	})
	if err != nil {
		logger.ExitMethodWithError(ctx, "requestService.AddUserRequest", err)
		return err
	}

	logger.ExitMethod(ctx, "requestService.AddUserRequest")
	return nil
}

// addRequest validates role and organization before storing the request.
func addRequest(ctx context.Context, repos repository.Repositories, email string, orgID uuid.UUID, role string) error {
	roles, err := repos.Roles.ListAvailableRoles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list roles: %w", err)
	}
	if !slices.Contains(roles, role) {
		return domain.BadInputError("unknown role %q", role)
	}
	if _, err := repos.Organizations.GetByID(ctx, orgID); err != nil {
		return err
	}
	if _, err := repos.Requests.Add(ctx, email, orgID, role); err != nil {
		return fmt.Errorf("failed to add request: %w", err)
	}
	return nil
}

func (s *requestService) DeclineUserRequest(ctx context.Context, id *domain.Identity, requestID int) error {
	logger.EnterMethod(ctx, "requestService.DeclineUserRequest", "caller", id.GetEmail(), "requestID", requestID)

	err := s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		req, err := repos.Requests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if err := domain.Check(s.policy.CanEditOrganization(id, req.OrganizationID), "decline request"); err != nil {
			return err
		}
		return repos.Requests.Delete(ctx, requestID)
	})
	if err != nil {
		logger.ExitMethodWithError(ctx, "requestService.DeclineUserRequest", err)
		return err
	}

	logger.ExitMethod(ctx, "requestService.DeclineUserRequest")
	return nil
}

// AcceptUserRequest resolves the request into a role assignment and then
// notifies the requester. A failed notification does not undo the accept.
func (s *requestService) AcceptUserRequest(ctx context.Context, id *domain.Identity, requestID int) error {
	logger.EnterMethod(ctx, "requestService.AcceptUserRequest", "caller", id.GetEmail(), "requestID", requestID)

	var (
		email   string
		orgName string
	)
	err := s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		req, err := repos.Requests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if err := domain.Check(s.policy.CanEditOrganization(id, req.OrganizationID), "accept request"); err != nil {
			return err
		}
		if err := repos.Requests.Delete(ctx, requestID); err != nil {
			return err
		}
		if err := repos.Roles.AddUserToRole(ctx, req.UserEmail, req.RoleName, req.OrganizationID); err != nil {
			return fmt.Errorf("failed to grant role: %w", err)
		}
		org, err := repos.Organizations.GetByID(ctx, req.OrganizationID)
		if err != nil {
			return err
		}
		email = req.UserEmail
		orgName = org.NameFi
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError(ctx, "requestService.AcceptUserRequest", err)
		return err
	}

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notificationTimeout)
	defer cancel()
	if err := s.emailSvc.SendAcceptanceNotification(notifyCtx, email, orgName); err != nil {
		logger.WarnContext(ctx, "Acceptance notification failed", "email", email, "error", err)
	}

	logger.ExitMethod(ctx, "requestService.AcceptUserRequest")
	return nil
}
