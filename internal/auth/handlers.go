package auth

import (
	"errors"
	"net/http"
	"strings"

	apperrors "research-portal-backend/internal/errors"
	"research-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest carries department coordinator credentials
type LoginRequest struct {
	Name     string `json:"name" binding:"required" example:"Computer Science"`
	Password string `json:"password" binding:"required" example:"changeme123"`
}

// AdminLoginRequest carries administrator credentials
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	service     *AuthService
	departments service.DepartmentServiceInterface
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *AuthService, departments service.DepartmentServiceInterface) *AuthHandler {
	return &AuthHandler{service: authService, departments: departments}
}

// Login handles POST /api/auth/login
// @Summary Department coordinator login
// @Description Authenticate with department name and password, returning a bearer token for scheduling operations
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Department credentials"
// @Success 200 {object} TokenResponse "Authenticated"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Invalid department name or password"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	department, err := h.departments.Authenticate(req.Name, req.Password)
	if err != nil {
		if apperrors.IsAuthentication(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid department name or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed", "details": err.Error()})
		return
	}

	tokens, err := h.service.IssueTokens(department.ID.String(), department.Name, RoleCoordinator)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue tokens", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// AdminLogin handles POST /api/auth/admin/login
// @Summary Administrator login
// @Description Authenticate with the configured administrator credentials, returning a bearer token for portal administration
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body AdminLoginRequest true "Administrator credentials"
// @Success 200 {object} TokenResponse "Authenticated"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Invalid administrator credentials"
// @Router /api/auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.service.VerifyAdmin(req.Username, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid administrator credentials"})
		return
	}

	tokens, err := h.service.IssueTokens("", req.Username, RoleAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue tokens", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// Refresh handles POST /api/auth/refresh
// @Summary Refresh authentication token
// @Description Exchange a refresh token for a new access token. The used refresh token is invalidated.
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} TokenResponse "Successfully refreshed token"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Refresh token invalid or expired"
// @Router /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	tokens, err := h.service.RefreshToken(req.RefreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidRefreshToken) || errors.Is(err, apperrors.ErrRefreshTokenExpired) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token refresh failed", "details": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token refresh failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// Logout handles POST /api/auth/logout
// @Summary Logout
// @Description Invalidate the refresh token. The access token expires on its own.
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body LogoutRequest false "Refresh token to invalidate"
// @Success 200 {object} AuthLogoutResponse "Successfully logged out"
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	// Body is optional, a bare logout is still a success
	_ = c.ShouldBindJSON(&req)

	h.service.Logout(req.RefreshToken)

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// ValidateToken handles POST /api/auth/validate
// @Summary Validate JWT token
// @Description Validate JWT token and return token claims
// @Tags authentication
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token to validate" example("Bearer eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...")
// @Success 200 {object} AuthValidateResponse "Token is valid with claims"
// @Failure 401 {object} map[string]interface{} "Authorization header required or token invalid"
// @Router /api/auth/validate [post]
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
		return
	}

	// Extract token from Bearer header
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
		return
	}

	claims, err := h.service.ValidateJWT(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true, "claims": claims})
}
