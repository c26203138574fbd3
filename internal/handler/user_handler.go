// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"account-service/internal/domain/user"
	"account-service/internal/services"
	"account-service/internal/transport/httpdto"
	account_errors "account-service/pkg/errors"
	"account-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgEmailExists  = "email already exists"
	msgUserNotFound = "user not found"
	msgInvalidBody  = "invalid request"
)

// UserService is the persistence-facing collaborator of UserHandler.
type UserService interface {
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	Save(ctx context.Context, u *user.User) (user.SaveResult, error)
	GetAllUsers(ctx context.Context) ([]user.User, error)
}

// TokenCreator signs access tokens.
type TokenCreator interface {
	CreateToken(payload user.TokenModel) (string, error)
}

// saveResultStatus maps persistence outcomes to the HTTP status a successful
// registration answers with.
var saveResultStatus = map[user.SaveResult]int{
	user.SaveCreated:  http.StatusCreated,
	user.SaveConflict: http.StatusConflict,
}

// outcome is the result of a handler operation before it is written.
type outcome struct {
	status  int
	data    any
	message string
	failed  bool
}

func success(status int, data any) outcome {
	return outcome{status: status, data: data}
}

func failure(status int, message string) outcome {
	return outcome{status: status, message: message, failed: true}
}

// UserHandler handles registration, login and user listing.
type UserHandler struct {
	service      UserService
	tokens       TokenCreator
	logger       *logger.Logger
	passwordCost int
}

func NewUserHandler(service UserService, tokens TokenCreator, l *logger.Logger, passwordCost int) *UserHandler {
	if l == nil {
		l = logger.NewFromZap(zap.NewNop())
	}
	if passwordCost <= 0 {
		passwordCost = services.DefaultPasswordCost
	}
	return &UserHandler{service: service, tokens: tokens, logger: l, passwordCost: passwordCost}
}

// Register handles user registration.
func (h *UserHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		h.rejectBody(c, err)
		return
	}
	writeOutcome(c, h.register(c.Request.Context(), req.ToDomain()))
}

// Login handles user authentication.
func (h *UserHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		h.rejectBody(c, err)
		return
	}
	writeOutcome(c, h.login(c.Request.Context(), req.ToDomain()))
}

// List handles listing every stored user.
func (h *UserHandler) List(c *gin.Context) {
	writeOutcome(c, h.getAllUsers(c.Request.Context()))
}

func (h *UserHandler) register(ctx context.Context, in user.Register) outcome {
	existing, err := h.service.GetUserByEmail(ctx, in.Email)
	if err != nil {
		return h.internalError(ctx, "register", err)
	}
	if existing != nil {
		h.logger.WarnCtx(ctx, "registration rejected: email already exists", zap.String("user_id", existing.ID.String()))
		return failure(http.StatusBadRequest, msgEmailExists)
	}

	hash, err := services.EncryptPassword(in.Password, h.passwordCost)
	if errors.Is(err, account_errors.ErrInvalidInput) {
		h.logger.WarnCtx(ctx, "registration rejected", zap.Error(err))
		return failure(services.HTTPStatus(err), msgInvalidBody)
	}
	if err != nil {
		return h.internalError(ctx, "register", err)
	}
	in.Password = hash

	u := user.FromRegister(in)
	result, err := h.service.Save(ctx, &u)
	if err != nil {
		return h.internalError(ctx, "register", err)
	}

	status, ok := saveResultStatus[result]
	if !ok {
		return h.internalError(ctx, "register", fmt.Errorf("unmapped save result %d", result))
	}

	h.logger.InfoCtx(ctx, "user registered", zap.String("user_id", u.ID.String()), zap.Int("save_result", int(result)))
	return success(status, http.StatusText(status))
}

func (h *UserHandler) login(ctx context.Context, in user.Credentials) outcome {
	u, err := h.service.GetUserByEmail(ctx, in.Email)
	if err != nil {
		return h.internalError(ctx, "login", err)
	}
	if u == nil {
		h.logger.WarnCtx(ctx, "login rejected: unknown email")
		return failure(http.StatusNotFound, msgUserNotFound)
	}

	// Same answer as an unknown email so account existence does not leak.
	if !services.IsEqualPassword(u.PasswordHash, in.Password) {
		h.logger.WarnCtx(ctx, "login rejected: wrong password", zap.String("user_id", u.ID.String()))
		return failure(http.StatusNotFound, msgUserNotFound)
	}

	payload := u.ToTokenModel()
	token, err := h.tokens.CreateToken(payload)
	if err != nil {
		return h.internalError(ctx, "login", err)
	}

	h.logger.InfoCtx(ctx, "user logged in", zap.String("user_id", payload.ID))
	return success(http.StatusOK, httpdto.LoginResponse{
		TokenModel: payload,
		Token:      services.BearerPrefix + token,
	})
}

func (h *UserHandler) getAllUsers(ctx context.Context) outcome {
	users, err := h.service.GetAllUsers(ctx)
	if err != nil {
		return h.internalError(ctx, "list users", err)
	}
	return success(http.StatusOK, httpdto.FromUserSlice(users))
}

// internalError logs err and hides it behind a generic 500.
func (h *UserHandler) internalError(ctx context.Context, op string, err error) outcome {
	h.logger.ErrorCtx(ctx, op+" failed", zap.Error(err))
	return failure(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// bindJSON decodes and validates the body, tagging failures as invalid input.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return fmt.Errorf("%w: %v", account_errors.ErrInvalidInput, err)
	}
	return nil
}

func (h *UserHandler) rejectBody(c *gin.Context, err error) {
	h.logger.WarnCtx(c.Request.Context(), "request body rejected", zap.Error(err))
	c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(msgInvalidBody))
}

func writeOutcome(c *gin.Context, o outcome) {
	if o.failed {
		c.JSON(o.status, httpdto.NewErrorResponse(o.message))
		return
	}
	c.JSON(o.status, httpdto.NewSuccessResponse(o.data))
}
