package security

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"groupmanagement/internal/domain"
	"groupmanagement/internal/logger"
	"groupmanagement/internal/repository"
)

// Credentials are the identity hints extracted from a request. At most one
// source is used: bearer token, then trusted proxy headers, then fake login.
type Credentials struct {
	BearerToken    string
	HeaderEmail    string
	HeaderFirst    string
	HeaderLast     string
	FakeLoginEmail string
}

// Authenticator resolves Credentials into an Identity.
type Authenticator struct {
	uow          repository.UnitOfWork
	tokenManager TokenManager
	hasher       *Hasher
	policy       *Policy
}

func NewAuthenticator(uow repository.UnitOfWork, tm TokenManager, hasher *Hasher, policy *Policy) *Authenticator {
	return &Authenticator{
		uow:          uow,
		tokenManager: tm,
		hasher:       hasher,
		policy:       policy,
	}
}

// Authenticate returns the caller identity. Missing credentials yield the
// anonymous identity; an invalid or revoked bearer token yields
// domain.ErrUnauthenticated.
func (a *Authenticator) Authenticate(ctx context.Context, c Credentials) (*domain.Identity, error) {
	switch {
	case c.BearerToken != "":
		return a.fromToken(ctx, c.BearerToken)
	case c.HeaderEmail != "":
		return a.fromHeaders(ctx, c)
	case c.FakeLoginEmail != "" && a.policy.FakeLoginAllowed():
		return a.fromFakeLogin(ctx, c.FakeLoginEmail)
	}
	return domain.AnonymousIdentity(), nil
}

func (a *Authenticator) fromToken(ctx context.Context, raw string) (*domain.Identity, error) {
	claims, err := a.tokenManager.ValidateToken(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}

	var identity *domain.Identity
	err = a.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		hash, err := repos.Tokens.GetHash(ctx, userID)
		if err != nil {
			return err
		}
		if err := a.hasher.Compare(hash, claims.ID); err != nil {
			return fmt.Errorf("%w: token revoked", domain.ErrUnauthenticated)
		}
		user, err := repos.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		identity = domain.IdentityFromUser(user)
		return nil
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown token", domain.ErrUnauthenticated)
	}
	if err != nil {
		return nil, err
	}
	if identity.RemovedAt != nil {
		return nil, fmt.Errorf("%w: user removed", domain.ErrUnauthenticated)
	}
	return identity, nil
}

// fromHeaders trusts the reverse proxy and creates the user on first login.
func (a *Authenticator) fromHeaders(ctx context.Context, c Credentials) (*domain.Identity, error) {
	email := strings.TrimSpace(c.HeaderEmail)
	var identity *domain.Identity
	err := a.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		user, err := repos.Users.GetByEmail(ctx, email)
		if err == nil {
			identity = domain.IdentityFromUser(user)
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		newUser := &domain.User{
			ID:        uuid.New(),
			Email:     email,
			FirstName: c.HeaderFirst,
			LastName:  c.HeaderLast,
		}
		if err := repos.Users.Create(ctx, newUser); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		logger.InfoContext(ctx, "Created user on first login", "user_id", newUser.ID, "email", email)

		identity = domain.IdentityFromUser(&domain.UserWithRolesInOrganizations{
			ID:               newUser.ID,
			Email:            newUser.Email,
			FirstName:        newUser.FirstName,
			LastName:         newUser.LastName,
			CreationDateTime: newUser.CreatedAt,
		})
		identity.NewlyCreated = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if identity.RemovedAt != nil {
		logger.WarnContext(ctx, "Login attempt by removed user", "email", email)
		return domain.AnonymousIdentity(), nil
	}
	return identity, nil
}

func (a *Authenticator) fromFakeLogin(ctx context.Context, email string) (*domain.Identity, error) {
	var identity *domain.Identity
	err := a.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		user, err := repos.Users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		identity = domain.IdentityFromUser(user)
		return nil
	})
	if errors.Is(err, domain.ErrNotFound) {
		logger.WarnContext(ctx, "Fake login with unknown email", "email", email)
		return domain.AnonymousIdentity(), nil
	}
	if err != nil {
		return nil, err
	}
	if identity.RemovedAt != nil {
		return domain.AnonymousIdentity(), nil
	}
	return identity, nil
}
