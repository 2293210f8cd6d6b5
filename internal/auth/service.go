package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/client"
)

const (
	RoleClient    = "client"
	RoleExecutive = "executive"
)

type Session struct {
	ID               string
	ClientRut        string
	RefreshTokenHash string
	UserAgent        string
	IPAddress        string
	ExpiresAt        time.Time
	RevokedAt        *time.Time
	CreatedAt        time.Time
}

type Repository interface {
	CreateSession(ctx context.Context, clientRut, refreshHash, userAgent, ipAddress string, expiresAt time.Time) (*Session, error)
	GetSessionByID(ctx context.Context, sessionID string) (*Session, error)
	RevokeSession(ctx context.Context, sessionID string) error
	UpdateSessionRefreshHash(ctx context.Context, sessionID, refreshHash string) error
}

// CredentialVerifier checks a rut and password pair. The client service
// satisfies it.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, rut, password string) (*client.Entity, error)
	FindByRut(ctx context.Context, rut string) (*client.Entity, error)
}

type Service struct {
	repo          Repository
	jwt           *JWTManager
	clients       CredentialVerifier
	executiveRuts map[string]struct{}
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

type AuthTokens struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
	Role         string
	Client       *client.Entity
}

func NewService(repo Repository, jwt *JWTManager, clients CredentialVerifier, executiveRuts []string, accessTTL, refreshTTL time.Duration) *Service {
	execs := make(map[string]struct{}, len(executiveRuts))
	for _, r := range executiveRuts {
		execs[strings.TrimSpace(r)] = struct{}{}
	}
	return &Service{
		repo:          repo,
		jwt:           jwt,
		clients:       clients,
		executiveRuts: execs,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Role maps a rut to its access role. Executives are configured by
// operations, everyone else is a regular client.
func (s *Service) Role(rut string) string {
	if _, ok := s.executiveRuts[rut]; ok {
		return RoleExecutive
	}
	return RoleClient
}

func (s *Service) Login(ctx context.Context, rut, password, userAgent, ipAddress string) (*AuthTokens, error) {
	c, err := s.clients.VerifyCredentials(ctx, rut, password)
	if err != nil {
		return nil, err
	}

	role := s.Role(c.Rut)
	bundle, err := s.createSessionAndTokens(ctx, c.Rut, role, userAgent, ipAddress)
	if err != nil {
		return nil, err
	}

	return &AuthTokens{
		AccessToken:  bundle.AccessToken,
		RefreshToken: bundle.RefreshToken,
		SessionID:    bundle.SessionID,
		Role:         role,
		Client:       c,
	}, nil
}

type sessionBundle struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
}

func (s *Service) Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*AuthTokens, error) {
	claims, err := s.jwt.Parse(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != "refresh" {
		return nil, errors.New("invalid token type")
	}

	session, err := s.repo.GetSessionByID(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if session.RevokedAt != nil {
		return nil, errors.New("session revoked")
	}
	if time.Now().UTC().After(session.ExpiresAt) {
		return nil, errors.New("session expired")
	}
	if session.RefreshTokenHash != hashToken(refreshToken) {
		return nil, errors.New("refresh token mismatch")
	}

	if err := s.repo.RevokeSession(ctx, session.ID); err != nil {
		return nil, err
	}

	role := s.Role(session.ClientRut)
	bundle, err := s.createSessionAndTokens(ctx, session.ClientRut, role, userAgent, ipAddress)
	if err != nil {
		return nil, err
	}

	c, err := s.clients.FindByRut(ctx, session.ClientRut)
	if err != nil {
		return nil, err
	}

	return &AuthTokens{
		AccessToken:  bundle.AccessToken,
		RefreshToken: bundle.RefreshToken,
		SessionID:    bundle.SessionID,
		Role:         role,
		Client:       c,
	}, nil
}

func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwt.Parse(refreshToken)
	if err != nil {
		return nil
	}
	if claims.Type != "refresh" || claims.SessionID == "" {
		return nil
	}
	return s.repo.RevokeSession(ctx, claims.SessionID)
}

func (s *Service) Me(ctx context.Context, rut string) (*client.Entity, error) {
	return s.clients.FindByRut(ctx, rut)
}

func (s *Service) createSessionAndTokens(ctx context.Context, rut, role, userAgent, ipAddress string) (*sessionBundle, error) {
	expiresAt := time.Now().UTC().Add(s.refreshTTL)
	sessionSeed := uuid.NewString()
	session, err := s.repo.CreateSession(ctx, rut, hashToken(sessionSeed), userAgent, ipAddress, expiresAt)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.jwt.Mint(rut, session.ID, role, "access", s.accessTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwt.Mint(rut, session.ID, role, "refresh", s.refreshTTL)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateSessionRefreshHash(ctx, session.ID, hashToken(refreshToken)); err != nil {
		return nil, err
	}

	return &sessionBundle{AccessToken: accessToken, RefreshToken: refreshToken, SessionID: session.ID}, nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func ClientIP(r *http.Request) string {
	xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
