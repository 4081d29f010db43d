package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"groupmanagement/internal/domain"
	"groupmanagement/internal/logger"
	"groupmanagement/internal/repository"
	"groupmanagement/internal/security"
)

type tokenService struct {
	uow          repository.UnitOfWork
	tokenManager security.TokenManager
	hasher       *security.Hasher
}

func NewTokenService(uow repository.UnitOfWork, tm security.TokenManager, hasher *security.Hasher) TokenService {
	return &tokenService{
		uow:          uow,
		tokenManager: tm,
		hasher:       hasher,
	}
}

// CreateToken issues an API token for the caller, replacing any earlier one.
func (s *tokenService) CreateToken(ctx context.Context, id *domain.Identity) (string, error) {
	if err := requireUser(id); err != nil {
		return "", err
	}
	logger.EnterMethod(ctx, "tokenService.CreateToken", "userID", id.ID)

	token, jti, err := s.tokenManager.GenerateAPIToken(id.ID, id.Email)
	if err != nil {
		logger.ExitMethodWithError(ctx, "tokenService.CreateToken", err)
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	hash, err := s.hasher.Hash(jti)
	if err != nil {
		logger.ExitMethodWithError(ctx, "tokenService.CreateToken", err)
		return "", fmt.Errorf("failed to hash token id: %w", err)
	}

	err = s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		return repos.Tokens.Save(ctx, id.ID, hash)
	})
	if err != nil {
		logger.ExitMethodWithError(ctx, "tokenService.CreateToken", err)
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	logger.ExitMethod(ctx, "tokenService.CreateToken")
	return token, nil
}

// DeleteToken revokes the caller's API token and reports whether one existed.
func (s *tokenService) DeleteToken(ctx context.Context, id *domain.Identity) (bool, error) {
	if err := requireUser(id); err != nil {
		return false, err
	}

	var deleted bool
	err := s.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		var err error
		deleted, err = repos.Tokens.Delete(ctx, id.ID)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete token: %w", err)
	}
	logger.InfoContext(ctx, "API token revoked", "userID", id.ID, "existed", deleted)
	return deleted, nil
}

func requireUser(id *domain.Identity) error {
	if id.IsAnonymous() || id.ID == uuid.Nil {
		return fmt.Errorf("%w: a signed-in user is required", domain.ErrUnauthenticated)
	}
	return nil
}
