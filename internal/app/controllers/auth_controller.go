package controllers

import (
	"errors"

	"census-otp-service/internal/app/middleware"
	"census-otp-service/internal/domain/services"
	"census-otp-service/internal/domain/services/container"
	"census-otp-service/internal/error/code"
	"census-otp-service/internal/error/response"
	Logger "census-otp-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// InterfaceAuthController defines the OTP login endpoints
type InterfaceAuthController interface {
	GenerateOTP()
	Login()
	Profile()
}

// AuthController handles OTP issue and login
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController creates an auth controller
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// GenerateOTPRequest is the body of POST /generate_otp
type GenerateOTPRequest struct {
	MobileNumber flexString `json:"mobile_number" binding:"required,max=15,e164|number" swaggertype:"string" example:"9999999999"`
	Name         string     `json:"name" binding:"max=80" example:"Asha"`
}

// LoginRequest is the body of POST /login
type LoginRequest struct {
	MobileNumber flexString `json:"mobile_number" binding:"required" swaggertype:"string" example:"9999999999"`
	OTP          flexString `json:"otp" binding:"required" swaggertype:"string" example:"0427"`
}

// MessageResponse is a plain success body
type MessageResponse struct {
	Message string `json:"message" example:"OTP sent successfully"`
}

// LoginResponse is the body of a successful login
type LoginResponse struct {
	Message string `json:"message" example:"Login successful"`
	Token   string `json:"token"`
	UserID  uint   `json:"user_id" example:"1"`
}

// ErrorResponse is the body of a failed request
type ErrorResponse struct {
	Code  int    `json:"code" example:"101002"`
	Error string `json:"error" example:"Invalid OTP"`
}

// HandleAuthFunc returns a gin handler for the named auth method
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "generateOTP":
			controller.GenerateOTP()
		case "login":
			controller.Login()
		case "profile":
			controller.Profile()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Invalid method")
		}
	}
}

// GenerateOTP issues a code for a mobile number
// @Summary      Request an OTP
// @Description  Creates the account on first use and issues a new 4-digit code
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body GenerateOTPRequest true "Mobile number and optional name"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /generate_otp [post]
func (c *AuthController) GenerateOTP() {
	var req GenerateOTPRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		msg := "Mobile number is required"
		if errs := fieldErrors(err); errs != nil {
			if m := errs["mobile_number"]; len(m) == 0 || m[0] != msgRequired {
				msg = firstFieldError(errs)
			}
		}
		response.ParamError(c.Ctx, msg)
		return
	}

	otpService := c.Container.GetService("otp").(services.InterfaceOTPService)
	if _, err := otpService.IssueOTP(c.Ctx.Request.Context(), string(req.MobileNumber), req.Name); err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			response.Fail(c.Ctx, code.ErrAccountLookupFailed)
			return
		}
		Logger.Error("Error sending OTP to %s: %v", req.MobileNumber, err)
		response.Fail(c.Ctx, code.ErrOTPIssue)
		return
	}

	response.Success(c.Ctx, "OTP sent successfully", nil)
}

// Login consumes an OTP and returns a token
// @Summary      Log in with an OTP
// @Description  Succeeds only when mobile number and code match the pending code exactly; the code is cleared
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Mobile number and OTP"
// @Success      200  {object}  LoginResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		msg := "Mobile number and OTP are required"
		if errs := fieldErrors(err); errs != nil && !onlyRequired(errs) {
			msg = firstFieldError(errs)
		}
		response.ParamError(c.Ctx, msg)
		return
	}

	otpService := c.Container.GetService("otp").(services.InterfaceOTPService)
	account, err := otpService.VerifyOTP(c.Ctx.Request.Context(), string(req.MobileNumber), string(req.OTP))
	if err != nil {
		if errors.Is(err, services.ErrInvalidOTP) {
			response.Fail(c.Ctx, code.ErrOTPInvalid)
			return
		}
		Logger.Error("Login for %s failed: %v", req.MobileNumber, err)
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	token, err := jwtService.GenerateToken(account)
	if err != nil {
		Logger.Error("Signing token for account %d failed: %v", account.ID, err)
		response.Fail(c.Ctx, code.ErrTokenIssue)
		return
	}

	response.Success(c.Ctx, "Login successful", gin.H{
		"token":   token,
		"user_id": account.ID,
	})
}

// Profile returns the logged-in account
// @Summary      Current account
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /account [get]
func (c *AuthController) Profile() {
	value, _ := c.Ctx.Get(middleware.ContextUserID)
	userID, _ := value.(uint)

	accountService := c.Container.GetService("account").(services.InterfaceAccountService)
	account, err := accountService.GetAccountByID(c.Ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			response.Fail(c.Ctx, code.ErrAccountNotFound)
			return
		}
		Logger.Error("Loading account %d failed: %v", userID, err)
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}

	response.Data(c.Ctx, gin.H{
		"user_id":         account.ID,
		"mobile_number":   account.MobileNumber,
		"name":            account.Name,
		"has_pending_otp": account.HasPendingOTP(),
		"created_at":      account.CreatedAt,
	})
}
