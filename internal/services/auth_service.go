package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/shiptrain/portal/config"
	"github.com/shiptrain/portal/internal/cache"
	"github.com/shiptrain/portal/internal/fixtures"
	"github.com/shiptrain/portal/internal/models"
	apperrors "github.com/shiptrain/portal/pkg/errors"
	"github.com/shiptrain/portal/pkg/jwt"
	"github.com/shiptrain/portal/pkg/logger"
	"github.com/shiptrain/portal/pkg/metrics"
)

var (
	ErrInvalidCredentials = apperrors.ErrInvalidCredentials
	ErrSessionNotFound    = apperrors.ErrSessionExpired
	ErrUnknownSurface     = errors.New("unknown login surface")
)

// AuthService authenticates fixture accounts. The training surface gets a
// server-side session id, the marketplace surface a signed bearer token.
type AuthService struct {
	store    *fixtures.Store
	sessions *cache.SessionCache
	tokens   *jwt.TokenManager
}

// NewAuthService creates a new AuthService
func NewAuthService(store *fixtures.Store, sessions *cache.SessionCache, tokens *jwt.TokenManager) *AuthService {
	return &AuthService{
		store:    store,
		sessions: sessions,
		tokens:   tokens,
	}
}

// Login checks the credentials and issues the surface's credential
func (s *AuthService) Login(ctx context.Context, surface string, req *models.LoginRequest) (*models.LoginResponse, error) {
	if surface != config.DeploymentTraining && surface != config.DeploymentMarket {
		return nil, ErrUnknownSurface
	}

	account, err := s.store.AccountByLogin(req.Username)
	if err != nil || !jwt.TimingSafeCompare(req.Password, account.Password) {
		metrics.LoginAttempts.WithLabelValues(surface, "invalid_credentials").Inc()
		logger.Warn("Login rejected",
			zap.String("surface", surface),
			zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	person, err := s.store.Person(account.PersonID)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(surface, "error").Inc()
		return nil, err
	}

	user := userInfo(account, person)

	var token string
	switch surface {
	case config.DeploymentTraining:
		session := s.sessions.Create(models.Session{
			PersonID:  person.PersonID,
			AccountID: account.AccountID,
			Username:  account.LoginName,
			Name:      person.Name,
			Role:      person.Role,
		})
		token = session.ID
	case config.DeploymentMarket:
		token, err = s.tokens.GenerateToken(int(person.PersonID), account.LoginName, person.Name, person.Role)
		if err != nil {
			metrics.LoginAttempts.WithLabelValues(surface, "error").Inc()
			logger.Error("Failed to issue bearer token", zap.Error(err))
			return nil, err
		}
	}

	metrics.LoginAttempts.WithLabelValues(surface, "success").Inc()
	logger.Info("User logged in",
		zap.String("surface", surface),
		zap.Int64("person_id", person.PersonID),
		zap.String("role", person.Role))

	return &models.LoginResponse{Token: token, User: user}, nil
}

// Logout drops a training session
func (s *AuthService) Logout(ctx context.Context, sessionID string) {
	s.sessions.Delete(sessionID)
}

// CurrentUser resolves the person behind an authenticated session
func (s *AuthService) CurrentUser(ctx context.Context, session *models.Session) (*models.CurrentUser, error) {
	person, err := s.store.Person(session.PersonID)
	if err != nil {
		return nil, err
	}
	return &models.CurrentUser{
		PersonID:    person.PersonID,
		Name:        person.Name,
		Username:    session.Username,
		Role:        person.Role,
		RoleDisplay: person.RoleDisplay,
		AccountID:   session.AccountID,
	}, nil
}

// ValidateSession looks up a live training session
func (s *AuthService) ValidateSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// ValidateToken verifies a marketplace bearer token and rebuilds its session
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.Session, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, apperrors.SessionExpiredError(err)
	}

	session := &models.Session{
		PersonID: int64(claims.PersonID),
		Username: claims.Username,
		Name:     claims.Name,
		Role:     claims.Role,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Unix()
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Unix()
	}
	if account, err := s.store.AccountByLogin(claims.Username); err == nil {
		session.AccountID = account.AccountID
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return session, nil
}

func userInfo(account fixtures.Account, person fixtures.Person) models.UserInfo {
	return models.UserInfo{
		ID:          person.PersonID,
		Name:        person.Name,
		Username:    account.LoginName,
		Role:        person.Role,
		RoleDisplay: person.RoleDisplay,
		AccountID:   account.AccountID,
	}
}
