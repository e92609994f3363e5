package controllers

import (
	"errors"
	"strconv"
	"time"

	"census-otp-service/internal/domain/models"
	"census-otp-service/internal/domain/services"
	"census-otp-service/internal/domain/services/container"
	"census-otp-service/internal/error/code"
	"census-otp-service/internal/error/response"
	Logger "census-otp-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// InterfaceHouseholdController defines the household endpoints
type InterfaceHouseholdController interface {
	CreateHousehold()
	GetHousehold()
	DeleteHousehold()
	AddMember()
	GetMembers()
}

// HouseholdController handles household heads and members
type HouseholdController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHouseholdController creates a household controller
func NewHouseholdController(ctx *gin.Context, container *container.ServiceContainer) *HouseholdController {
	return &HouseholdController{
		Ctx:       ctx,
		Container: container,
	}
}

// HouseholdMemberRequest describes one member
type HouseholdMemberRequest struct {
	Name           string `json:"name" binding:"required,max=80" example:"Ravi"`
	Age            *int   `json:"age" binding:"omitempty,min=0,max=150" example:"12"`
	Gender         string `json:"gender" binding:"omitempty,max=10" example:"Male"`
	DateOfBirth    string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02" example:"2012-04-09"`
	RelationToHead string `json:"relation_to_head" binding:"omitempty,max=20" example:"Son"`
	Education      string `json:"education" binding:"omitempty,max=20" example:"Class 6"`
	Occupation     string `json:"occupation" binding:"omitempty,max=20" example:"Student"`
	CurrentAddress string `json:"current_address" binding:"omitempty,max=200"`
}

// HouseholdRequest describes a head with optional members
type HouseholdRequest struct {
	Name            string                   `json:"name" binding:"required,max=80" example:"Asha Devi"`
	DateOfBirth     string                   `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02" example:"1985-02-17"`
	Region          string                   `json:"region" binding:"required,max=25" example:"Awadh"`
	District        string                   `json:"district" binding:"required,max=25" example:"Lucknow"`
	Town            string                   `json:"town" binding:"required,max=25" example:"Malihabad"`
	Village         string                   `json:"village" binding:"omitempty,max=25"`
	Education       string                   `json:"education" binding:"omitempty,max=25"`
	Occupation      string                   `json:"occupation" binding:"omitempty,max=25"`
	Address         string                   `json:"address" binding:"omitempty,max=255"`
	VidhanSabhaCode string                   `json:"vidhan_sabha_code" binding:"omitempty,max=20" example:"169"`
	LokSabhaCode    string                   `json:"lok_sabha_code" binding:"omitempty,max=20" example:"35"`
	Members         []HouseholdMemberRequest `json:"members" binding:"omitempty,dive"`
}

// HandleHouseholdFunc returns a gin handler for the named household method
func HandleHouseholdFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHouseholdController(ctx, container)

		switch method {
		case "createHousehold":
			controller.CreateHousehold()
		case "getHousehold":
			controller.GetHousehold()
		case "deleteHousehold":
			controller.DeleteHousehold()
		case "addMember":
			controller.AddMember()
		case "getMembers":
			controller.GetMembers()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Invalid method")
		}
	}
}

func (r HouseholdMemberRequest) toModel() *models.HouseholdMember {
	member := &models.HouseholdMember{
		Name:           r.Name,
		Age:            r.Age,
		Gender:         r.Gender,
		RelationToHead: r.RelationToHead,
		Education:      r.Education,
		Occupation:     r.Occupation,
		CurrentAddress: r.CurrentAddress,
	}
	// The binding already rejected malformed dates.
	if dob, err := time.Parse(dateLayout, r.DateOfBirth); err == nil {
		member.DateOfBirth = &dob
	}
	return member
}

func (r HouseholdRequest) toModel() *models.HouseholdHead {
	head := &models.HouseholdHead{
		Name:            r.Name,
		DateOfBirth:     time.Now().UTC(),
		Region:          r.Region,
		District:        r.District,
		Town:            r.Town,
		Village:         r.Village,
		Education:       r.Education,
		Occupation:      r.Occupation,
		Address:         r.Address,
		VidhanSabhaCode: r.VidhanSabhaCode,
		LokSabhaCode:    r.LokSabhaCode,
	}
	if dob, err := time.Parse(dateLayout, r.DateOfBirth); err == nil {
		head.DateOfBirth = dob
	}
	for _, m := range r.Members {
		head.Members = append(head.Members, *m.toModel())
	}
	return head
}

func (c *HouseholdController) householdID() (uint, bool) {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.ParamError(c.Ctx, "Invalid household ID")
		return 0, false
	}
	return uint(id), true
}

func (c *HouseholdController) fail(err error, action string) {
	if errors.Is(err, services.ErrHouseholdNotFound) {
		response.Fail(c.Ctx, code.ErrHouseholdNotFound)
		return
	}
	Logger.Error("%s failed: %v", action, err)
	response.Fail(c.Ctx, code.ErrDatabase)
}

func (c *HouseholdController) bindOrFail(dest interface{}) bool {
	if err := c.Ctx.ShouldBindJSON(dest); err != nil {
		if errs := fieldErrors(err); errs != nil {
			response.FieldErrors(c.Ctx, code.ErrValidation, errs)
			return false
		}
		response.FailWithMessage(c.Ctx, code.ErrBind, code.GetMessage(code.ErrBind))
		return false
	}
	return true
}

// CreateHousehold records a household head and its members
// @Summary      Create a household
// @Tags         Household
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body HouseholdRequest true "Head and members"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  FieldErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /households [post]
func (c *HouseholdController) CreateHousehold() {
	var req HouseholdRequest
	if !c.bindOrFail(&req) {
		return
	}

	head := req.toModel()
	householdService := c.Container.GetService("household").(services.InterfaceHouseholdService)
	if err := householdService.CreateHousehold(c.Ctx.Request.Context(), head); err != nil {
		c.fail(err, "Creating household")
		return
	}

	response.Created(c.Ctx, "Household created", gin.H{"household": head})
}

// GetHousehold returns a head with its members
// @Summary      Get a household
// @Tags         Household
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household head ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /households/{id} [get]
func (c *HouseholdController) GetHousehold() {
	id, ok := c.householdID()
	if !ok {
		return
	}

	householdService := c.Container.GetService("household").(services.InterfaceHouseholdService)
	head, err := householdService.GetHousehold(c.Ctx.Request.Context(), id)
	if err != nil {
		c.fail(err, "Loading household")
		return
	}

	response.Data(c.Ctx, gin.H{"household": head})
}

// DeleteHousehold removes a head and all of its members
// @Summary      Delete a household
// @Tags         Household
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household head ID"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /households/{id} [delete]
func (c *HouseholdController) DeleteHousehold() {
	id, ok := c.householdID()
	if !ok {
		return
	}

	householdService := c.Container.GetService("household").(services.InterfaceHouseholdService)
	if err := householdService.DeleteHousehold(c.Ctx.Request.Context(), id); err != nil {
		c.fail(err, "Deleting household")
		return
	}

	response.Success(c.Ctx, "Household deleted", nil)
}

// AddMember adds a member to an existing household
// @Summary      Add a household member
// @Tags         Household
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household head ID"
// @Param        request body HouseholdMemberRequest true "Member"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  FieldErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /households/{id}/members [post]
func (c *HouseholdController) AddMember() {
	id, ok := c.householdID()
	if !ok {
		return
	}
	var req HouseholdMemberRequest
	if !c.bindOrFail(&req) {
		return
	}

	member := req.toModel()
	householdService := c.Container.GetService("household").(services.InterfaceHouseholdService)
	if err := householdService.AddMember(c.Ctx.Request.Context(), id, member); err != nil {
		c.fail(err, "Adding household member")
		return
	}

	response.Created(c.Ctx, "Member added", gin.H{"member": member})
}

// GetMembers lists the members of a household
// @Summary      List household members
// @Tags         Household
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Household head ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /households/{id}/members [get]
func (c *HouseholdController) GetMembers() {
	id, ok := c.householdID()
	if !ok {
		return
	}

	householdService := c.Container.GetService("household").(services.InterfaceHouseholdService)
	members, err := householdService.GetMembers(c.Ctx.Request.Context(), id)
	if err != nil {
		c.fail(err, "Listing household members")
		return
	}

	response.Data(c.Ctx, gin.H{"members": members})
}
