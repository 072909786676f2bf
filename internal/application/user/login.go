package user

import (
	"context"
	"time"

	"github.com/javanauta/user-directory/internal/domain/user"
	"github.com/javanauta/user-directory/internal/infrastructure/persistence/redis"
	"github.com/javanauta/user-directory/pkg/jwt"
	"github.com/javanauta/user-directory/pkg/metrics"
)

// LoginUseCase verifies credentials, issues the JWT pair and records a
// session in redis.
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewLoginUseCase creates the login use case.
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// Execute performs the login.
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := uc.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	tokenPair, err := uc.jwtManager.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}

	sessionData := map[string]interface{}{
		"user_id":  u.ID,
		"email":    u.Email,
		"role":     string(u.Role),
		"login_at": time.Now().Unix(),
	}

	// Session TTL matches the refresh-token lifetime. A failed session
	// write does not fail the login; the token pair is already valid.
	_ = uc.sessionStore.SaveSession(ctx, u.ID, sessionData, 7*24*time.Hour)

	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return &LoginResponse{
		User:         *toUserData(u),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase revokes the caller's access token and drops the session.
type LogoutUseCase struct {
	sessionStore *redis.SessionStore
}

// NewLogoutUseCase creates the logout use case.
func NewLogoutUseCase(sessionStore *redis.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore}
}

// Execute logs the user out. The token goes to the blacklist for the
// remainder of the access-token lifetime so it cannot be replayed.
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}

	return uc.sessionStore.AddToBlacklist(ctx, accessToken, 2*time.Hour)
}

// LoginRequest is the application-layer login payload.
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResponse carries the authenticated user and the token pair.
type LoginResponse struct {
	User         UserData `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"`
}
