package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	apperrors "research-portal-backend/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Roles carried in token claims
const (
	RoleCoordinator = "coordinator"
	RoleAdmin       = "admin"
)

// RefreshTokenData stores the session behind a refresh token
type RefreshTokenData struct {
	DepartmentID   string    `json:"department_id"`
	DepartmentName string    `json:"department_name"`
	Role           string    `json:"role"`
	ExpiresAt      time.Time `json:"expires_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// AuthService issues, refreshes and validates portal tokens
type AuthService struct {
	config        *AuthConfig
	refreshTokens map[string]*RefreshTokenData // In-memory store for refresh tokens
	tokenMutex    sync.RWMutex                 // Protect the refresh token store
}

// AuthClaims represents JWT token claims. Admin sessions carry an empty
// department ID since the administrator is not a department.
type AuthClaims struct {
	DepartmentID         string `json:"department_id,omitempty" example:"ab6778f4-bb6c-4f0e-a0bd-2b1e7e1f3c55"`
	DepartmentName       string `json:"department_name" example:"Computer Science"`
	Role                 string `json:"role" example:"coordinator"`
	jwt.RegisteredClaims `swaggerignore:"true"`
}

// TokenResponse is returned by the login and refresh endpoints
type TokenResponse struct {
	AccessToken    string `json:"accessToken"`
	TokenType      string `json:"tokenType" example:"Bearer"`
	ExpiresIn      int64  `json:"expiresIn" example:"3600"`
	RefreshToken   string `json:"refreshToken,omitempty"`
	DepartmentID   string `json:"departmentId,omitempty"`
	DepartmentName string `json:"departmentName"`
	Role           string `json:"role" example:"coordinator"`
}

// RefreshTokenRequest represents the request for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest carries the refresh token to discard on logout
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthLogoutResponse represents the response from the logout endpoint
type AuthLogoutResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}

// AuthValidateResponse represents the response from the token validation endpoint
type AuthValidateResponse struct {
	Valid  bool        `json:"valid" example:"true"`
	Claims *AuthClaims `json:"claims"`
}

// NewAuthService creates a new authentication service
func NewAuthService(config *AuthConfig) (*AuthService, error) {
	if err := config.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}

	return &AuthService{
		config:        config,
		refreshTokens: make(map[string]*RefreshTokenData),
		tokenMutex:    sync.RWMutex{},
	}, nil
}

// VerifyAdmin checks the submitted credentials against the configured
// administrator account
func (s *AuthService) VerifyAdmin(username, password string) error {
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.config.AdminUsername)) != 1 {
		// Equalize timing for unknown usernames
		_ = bcrypt.CompareHashAndPassword([]byte(s.config.AdminPasswordHash), []byte(password))
		return apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.config.AdminPasswordHash), []byte(password)); err != nil {
		return apperrors.ErrInvalidCredentials
	}
	return nil
}

// IssueTokens creates an access token plus a refresh token for the session
func (s *AuthService) IssueTokens(departmentID, departmentName, role string) (*TokenResponse, error) {
	jwtToken, err := s.GenerateJWT(departmentID, departmentName, role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate JWT: %w", err)
	}

	refreshToken, err := s.generateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	s.tokenMutex.Lock()
	s.refreshTokens[refreshToken] = &RefreshTokenData{
		DepartmentID:   departmentID,
		DepartmentName: departmentName,
		Role:           role,
		ExpiresAt:      time.Now().Add(s.config.RefreshTTL()),
		CreatedAt:      time.Now(),
	}
	s.tokenMutex.Unlock()

	return &TokenResponse{
		AccessToken:    jwtToken,
		TokenType:      "Bearer",
		ExpiresIn:      int64(s.config.TokenTTL().Seconds()),
		RefreshToken:   refreshToken,
		DepartmentID:   departmentID,
		DepartmentName: departmentName,
		Role:           role,
	}, nil
}

// RefreshToken rotates a refresh token and issues a fresh access token
func (s *AuthService) RefreshToken(refreshToken string) (*TokenResponse, error) {
	s.tokenMutex.RLock()
	tokenData, exists := s.refreshTokens[refreshToken]
	s.tokenMutex.RUnlock()

	if !exists {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	if time.Now().After(tokenData.ExpiresAt) {
		s.tokenMutex.Lock()
		delete(s.refreshTokens, refreshToken)
		s.tokenMutex.Unlock()
		return nil, apperrors.ErrRefreshTokenExpired
	}

	response, err := s.IssueTokens(tokenData.DepartmentID, tokenData.DepartmentName, tokenData.Role)
	if err != nil {
		return nil, err
	}

	// The old token is spent once the new one exists
	s.tokenMutex.Lock()
	delete(s.refreshTokens, refreshToken)
	s.tokenMutex.Unlock()

	return response, nil
}

// GenerateJWT creates a signed access token for the session
func (s *AuthService) GenerateJWT(departmentID, departmentName, role string) (string, error) {
	now := time.Now()
	subject := departmentID
	if subject == "" {
		subject = s.config.AdminUsername
	}

	claims := &AuthClaims{
		DepartmentID:   departmentID,
		DepartmentName: departmentName,
		Role:           role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL())),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "research-portal-backend",
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// ValidateJWT validates and parses a JWT token
func (s *AuthService) ValidateJWT(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*AuthClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// Logout discards a refresh token so it cannot be rotated again. Access
// tokens stay valid until they expire on their own.
func (s *AuthService) Logout(refreshToken string) {
	if refreshToken == "" {
		return
	}
	s.tokenMutex.Lock()
	delete(s.refreshTokens, refreshToken)
	s.tokenMutex.Unlock()
}

// generateRefreshToken generates a random refresh token
func (s *AuthService) generateRefreshToken() (string, error) {
	return generateRandomString(48)
}

// generateRandomString generates a random base64 encoded string
func generateRandomString(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
