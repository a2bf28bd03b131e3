// internal/handlers/user/user_handler.go
package user

import (
	"errors"
	"net/http"

	"jobportal-service/internal/domain/user"
	"jobportal-service/internal/middleware"
	"jobportal-service/internal/pkg/cookie"
	xerrors "jobportal-service/internal/pkg/errors"
	"jobportal-service/internal/pkg/response"
	authUsecase "jobportal-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	authService *authUsecase.AuthService
	cookies     cookie.Policy
	logger      *zap.Logger
}

func NewUserHandler(authService *authUsecase.AuthService, cookies cookie.Policy, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		authService: authService,
		cookies:     cookies,
		logger:      logger,
	}
}

// ========== Registration ==========

// Register handles the multipart registration form (public endpoint)
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ValidationError(c, "Please fill the full registration form.", err)
		return
	}

	resume, err := c.FormFile("resume")
	if err != nil && !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		response.ValidationError(c, "Could not read the uploaded resume.", err)
		return
	}

	u, cred, err := h.authService.Register(c.Request.Context(), &req, resume)
	if err != nil {
		h.fail(c, "registration failed", req.Email, err)
		return
	}

	h.cookies.Set(c.Writer, cred)
	response.User(c, http.StatusCreated, "User registered.", u, cred.Token)
}

// ========== Login ==========

// Login handles email/password/role login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Please provide email, password and role.", err)
		return
	}
	req.IPAddress = c.ClientIP()

	u, cred, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, "login failed", req.Email, err)
		return
	}

	h.logger.Info("user logged in",
		zap.Int64("user_id", u.ID),
		zap.String("role", u.Role),
	)

	h.cookies.Set(c.Writer, cred)
	response.User(c, http.StatusOK, "User logged in successfully.", u, cred.Token)
}

// ========== Current user ==========

// GetUser returns the account behind the session cookie (requires auth)
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	u, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, "get user failed", "", err)
		return
	}

	response.User(c, http.StatusOK, "", u, "")
}

// ========== Logout ==========

// Logout clears the session cookie. Tokens are stateless, so there is
// nothing to revoke on the server.
func (h *UserHandler) Logout(c *gin.Context) {
	h.cookies.Clear(c.Writer)
	response.Success(c, http.StatusOK, "Logged out successfully.")
}

func (h *UserHandler) fail(c *gin.Context, what, email string, err error) {
	status := xerrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(what, zap.String("email", email), zap.Error(err))
	} else {
		h.logger.Warn(what, zap.String("email", email), zap.Error(err))
	}
	response.Error(c, status, publicMessage(err), nil)
}

// publicMessage is the text shown to the client for err.
func publicMessage(err error) string {
	var v *xerrors.ValidationError
	switch {
	case errors.As(err, &v):
		return v.Message
	case errors.Is(err, xerrors.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, xerrors.ErrRoleMismatch):
		return "Invalid user role."
	case errors.Is(err, xerrors.ErrDuplicateEntry):
		return "User already registered."
	case errors.Is(err, xerrors.ErrRateLimited):
		return "Too many login attempts, please try again later."
	case errors.Is(err, xerrors.ErrUnauthorized):
		return "User is not authenticated."
	default:
		return "Internal Server Error"
	}
}
