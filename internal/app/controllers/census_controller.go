package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"census-otp-service/internal/app/middleware"
	"census-otp-service/internal/domain/services"
	"census-otp-service/internal/domain/services/container"
	"census-otp-service/internal/error/code"
	"census-otp-service/internal/error/response"
	Logger "census-otp-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// InterfaceCensusController defines the census endpoints
type InterfaceCensusController interface {
	SubmitCensus()
	GetCensusData()
}

// CensusController handles census intake
type CensusController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewCensusController creates a census controller
func NewCensusController(ctx *gin.Context, container *container.ServiceContainer) *CensusController {
	return &CensusController{
		Ctx:       ctx,
		Container: container,
	}
}

// CensusRequest is the body of POST /submit_census
type CensusRequest struct {
	UserID         *uint  `json:"user_id" binding:"required" example:"1"`
	Name           string `json:"name" binding:"required,max=80" example:"Asha Devi"`
	Age            *int   `json:"age" binding:"required,min=0,max=150" example:"34"`
	Gender         string `json:"gender" binding:"required,oneof=Male Female Non-binary" example:"Female"`
	Address        string `json:"address" binding:"required,max=255" example:"12 Station Road, Lucknow"`
	HouseholdSize  *int   `json:"household_size" binding:"required,min=1,max=100" example:"4"`
	AdditionalInfo string `json:"additional_info" binding:"max=1000" example:""`
}

// FieldErrorResponse lists validation messages per field
type FieldErrorResponse struct {
	Code   int                 `json:"code" example:"102000"`
	Errors map[string][]string `json:"errors"`
}

// HandleCensusFunc returns a gin handler for the named census method
func HandleCensusFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewCensusController(ctx, container)

		switch method {
		case "submitCensus":
			controller.SubmitCensus()
		case "getCensusData":
			controller.GetCensusData()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Invalid method")
		}
	}
}

// censusCacheKey is the response cache key of GET /get_census_data/{id}.
func censusCacheKey(userID uint) string {
	return fmt.Sprintf("/get_census_data/%d?", userID)
}

// CensusCacheKey normalises the user id so "01" and "1" share one entry
func CensusCacheKey(c *gin.Context) string {
	if id, err := strconv.ParseUint(c.Param("user_id"), 10, 64); err == nil {
		return censusCacheKey(uint(id))
	}
	return middleware.CacheKey(c)
}

// SubmitCensus validates and stores a census form
// @Summary      Submit a census form
// @Description  Validates the form field by field and stores it against the account
// @Tags         Census
// @Accept       json
// @Produce      json
// @Param        request body CensusRequest true "Census form"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  FieldErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /submit_census [post]
func (c *CensusController) SubmitCensus() {
	var req CensusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		errs := fieldErrors(err)
		if errs == nil {
			response.FailWithMessage(c.Ctx, code.ErrBind, code.GetMessage(code.ErrBind))
			return
		}
		if m := errs["user_id"]; len(m) > 0 && m[0] == msgRequired {
			response.ParamError(c.Ctx, "User ID is required")
			return
		}
		response.FieldErrors(c.Ctx, code.ErrCensusInvalid, errs)
		return
	}
	if *req.UserID == 0 {
		response.ParamError(c.Ctx, "User ID is required")
		return
	}

	form := services.CensusForm{
		Name:           req.Name,
		Age:            *req.Age,
		Gender:         req.Gender,
		Address:        req.Address,
		HouseholdSize:  *req.HouseholdSize,
		AdditionalInfo: req.AdditionalInfo,
	}

	censusService := c.Container.GetService("census").(services.InterfaceCensusService)
	submission, err := censusService.SubmitCensus(c.Ctx.Request.Context(), *req.UserID, form)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			response.Fail(c.Ctx, code.ErrAccountNotFound)
			return
		}
		Logger.Error("Saving census for user %d failed: %v", *req.UserID, err)
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}

	c.Container.GetCache().PurgePrefix(censusCacheKey(*req.UserID))
	response.Success(c.Ctx, "Census form submitted successfully", gin.H{"id": submission.ID})
}

// GetCensusData returns the census forms filed by an account
// @Summary      Get census data
// @Tags         Census
// @Produce      json
// @Param        user_id path int true "Account ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /get_census_data/{user_id} [get]
func (c *CensusController) GetCensusData() {
	userID, err := strconv.ParseUint(c.Ctx.Param("user_id"), 10, 64)
	if err != nil {
		response.Fail(c.Ctx, code.ErrAccountNotFound)
		return
	}

	censusService := c.Container.GetService("census").(services.InterfaceCensusService)
	data, err := censusService.GetCensusData(c.Ctx.Request.Context(), uint(userID))
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			response.Fail(c.Ctx, code.ErrAccountNotFound)
			return
		}
		Logger.Error("Loading census for user %d failed: %v", userID, err)
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}

	response.Data(c.Ctx, gin.H{"census_data": data})
}
