package controller

import (
	"chaos_backend/internal/service"
	"chaos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type OrganisationController struct {
	OrgService *service.OrganisationService
}

func NewOrganisationController(orgService *service.OrganisationService) *OrganisationController {
	return &OrganisationController{OrgService: orgService}
}

// Create godoc
// @Summary Create an organisation
// @Description Creates the organisation and makes the caller its first admin
// @Tags organisations
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.OrganisationRequest true "organisation"
// @Success 201 {object} util.Response{data=model.Organisation}
// @Failure 400 {object} util.Response
// @Router /api/organisations [post]
func (c *OrganisationController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.OrganisationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	org, err := c.OrgService.Create(req, user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, org)
}

// List godoc
// @Summary List organisations
// @Tags organisations
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Organisation}
// @Router /api/organisations [get]
func (c *OrganisationController) List(ctx *gin.Context) {
	orgs, err := c.OrgService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, orgs)
}

// Get godoc
// @Summary Get one organisation
// @Tags organisations
// @Produce  json
// @Param   orgId path int true "organisation id"
// @Success 200 {object} util.Response{data=model.Organisation}
// @Failure 404 {object} util.Response
// @Router /api/organisations/{orgId} [get]
func (c *OrganisationController) Get(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}

	org, err := c.OrgService.Get(orgID)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, org)
}

// Delete godoc
// @Summary Delete an organisation
// @Tags organisations
// @Produce  json
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Success 200 {object} util.Response
// @Router /api/admin/organisations/{orgId} [delete]
func (c *OrganisationController) Delete(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}

	if err := c.OrgService.Delete(orgID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AddMember godoc
// @Summary Add a member
// @Description Adds a user to the organisation as admin or director
// @Tags organisations
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Param   body body service.MemberRequest true "member"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/organisations/{orgId}/members [post]
func (c *OrganisationController) AddMember(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}

	var req service.MemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.OrgService.AddMember(orgID, req); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, nil)
}

// RemoveMember godoc
// @Summary Remove a member
// @Tags organisations
// @Produce  json
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Param   userId path int true "user id"
// @Success 200 {object} util.Response
// @Router /api/organisations/{orgId}/members/{userId} [delete]
func (c *OrganisationController) RemoveMember(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}
	userID, ok := uintParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.OrgService.RemoveMember(orgID, userID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListMembers godoc
// @Summary List members
// @Tags organisations
// @Produce  json
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Success 200 {object} util.Response{data=[]model.OrganisationMember}
// @Router /api/organisations/{orgId}/members [get]
func (c *OrganisationController) ListMembers(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}

	members, err := c.OrgService.ListMembers(orgID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, members)
}
