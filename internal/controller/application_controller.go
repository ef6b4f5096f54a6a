package controller

import (
	"chaos_backend/internal/service"
	"chaos_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ApplicationController struct {
	ApplicationService *service.ApplicationService
}

func NewApplicationController(applicationService *service.ApplicationService) *ApplicationController {
	return &ApplicationController{ApplicationService: applicationService}
}

// CreateOrGet godoc
// @Summary Start or resume an application
// @Description Returns the caller's application for the campaign, creating it on first visit
// @Tags applications
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "campaign id"
// @Success 200 {object} util.Response{data=model.Application}
// @Failure 400 {object} util.Response "campaign is not open"
// @Failure 404 {object} util.Response
// @Router /api/campaigns/{id}/applications [post]
func (c *ApplicationController) CreateOrGet(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	campaignID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	app, err := c.ApplicationService.GetOrCreate(campaignID, user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCampaignNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrCampaignClosed):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, app)
}

// GetRoles godoc
// @Summary Get the application's selected roles
// @Description Returns the selection ordered by preference
// @Tags applications
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "application id"
// @Success 200 {object} util.Response{data=[]model.ApplicationRole}
// @Failure 403 {object} util.Response
// @Router /api/applications/{id}/roles [get]
func (c *ApplicationController) GetRoles(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	applicationID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := c.ApplicationService.GetOwned(applicationID, user.UserID); err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
			return
		}
		util.NotFound(ctx)
		return
	}

	roles, err := c.ApplicationService.GetRoles(applicationID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, roles)
}

// ReplaceRoles godoc
// @Summary Replace the application's role selection
// @Description Swaps the full selection; preferences are 1-based and each role appears once
// @Tags applications
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "application id"
// @Param   body body service.UpdateRolesRequest true "selection"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/applications/{id}/roles [put]
func (c *ApplicationController) ReplaceRoles(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	applicationID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	var req service.UpdateRolesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ApplicationService.ReplaceRoles(applicationID, user.UserID, req); err != nil {
		switch {
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrDuplicatePreference), errors.Is(err, util.ErrRoleNotInCampaign):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
