package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/lendbook/internal/auth"
	"github.com/mmynk/lendbook/internal/middleware"
	"github.com/mmynk/lendbook/internal/storage"
	"github.com/mmynk/lendbook/pkg/api"
)

// AccountService implements the AccountService RPC interface.
type AccountService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
	logger        *slog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store, logger *slog.Logger) *AccountService {
	return &AccountService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
		logger:        logger,
	}
}

// Register creates a new account and signs it in.
func (s *AccountService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	s.logger.Info("Register request", "username", req.Msg.Username)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	account, err := s.authenticator.Register(ctx, req.Msg.Username, req.Msg.FullName, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Error("Registration failed", "username", req.Msg.Username, "error", err)
		return nil, toConnectError(err)
	}

	token, err := s.jwtManager.Generate(account)
	if err != nil {
		s.logger.Error("Failed to generate token", "account_id", account.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Account registered successfully", "account_id", account.ID, "username", account.Username)
	return connect.NewResponse(&api.RegisterResponse{
		Account: toAPIAccount(account),
		Token:   token,
	}), nil
}

// Login authenticates an account and returns a session token.
func (s *AccountService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "username", req.Msg.Username)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	account, err := s.authenticator.Authenticate(ctx, req.Msg.Username, req.Msg.Password)
	if err != nil {
		s.logger.Error("Login failed", "username", req.Msg.Username, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if account == nil {
		s.logger.Warn("Login rejected", "username", req.Msg.Username)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, err := s.jwtManager.Generate(account)
	if err != nil {
		s.logger.Error("Failed to generate token", "account_id", account.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Account logged in successfully", "account_id", account.ID)
	return connect.NewResponse(&api.LoginResponse{
		Account: toAPIAccount(account),
		Token:   token,
	}), nil
}

// GetProfile returns the signed-in account.
func (s *AccountService) GetProfile(ctx context.Context, req *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	accountID := middleware.GetAccountID(ctx)
	if accountID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	account, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		s.logger.Error("GetProfile failed", "account_id", accountID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if account == nil {
		return nil, connect.NewError(connect.CodeNotFound, storage.ErrNotFound)
	}

	return connect.NewResponse(&api.GetProfileResponse{Account: toAPIAccount(account)}), nil
}

// UpdateProfile replaces username, full name and email. The password hash is
// replaced only when a new password is given.
func (s *AccountService) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	accountID := middleware.GetAccountID(ctx)
	if accountID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	s.logger.Info("UpdateProfile request", "account_id", accountID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	account, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		s.logger.Error("UpdateProfile failed to load account", "account_id", accountID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if account == nil {
		return nil, connect.NewError(connect.CodeNotFound, storage.ErrNotFound)
	}

	account.Username = req.Msg.Username
	account.FullName = req.Msg.FullName
	account.Email = req.Msg.Email
	if req.Msg.Password != "" {
		hash, err := s.authenticator.HashCredential(req.Msg.Password)
		if err != nil {
			return nil, toConnectError(err)
		}
		account.PasswordHash = hash
	}

	if err := s.store.UpdateAccount(ctx, account); err != nil {
		s.logger.Error("UpdateProfile failed", "account_id", accountID, "error", err)
		return nil, toConnectError(err)
	}

	updated, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		s.logger.Error("Failed to fetch updated account", "account_id", accountID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if updated == nil {
		return nil, connect.NewError(connect.CodeNotFound, storage.ErrNotFound)
	}

	s.logger.Info("Account updated", "account_id", accountID)
	return connect.NewResponse(&api.UpdateProfileResponse{Account: toAPIAccount(updated)}), nil
}
