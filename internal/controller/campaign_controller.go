package controller

import (
	"chaos_backend/internal/service"
	"chaos_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type CampaignController struct {
	CampaignService *service.CampaignService
}

func NewCampaignController(campaignService *service.CampaignService) *CampaignController {
	return &CampaignController{CampaignService: campaignService}
}

// ListPublished godoc
// @Summary List open campaigns
// @Description Published campaigns whose application window includes now
// @Tags campaigns
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Campaign}
// @Router /api/campaigns [get]
func (c *CampaignController) ListPublished(ctx *gin.Context) {
	campaigns, err := c.CampaignService.ListPublished()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, campaigns)
}

// Get godoc
// @Summary Get one campaign
// @Tags campaigns
// @Produce  json
// @Param   id path int true "campaign id"
// @Success 200 {object} util.Response{data=model.Campaign}
// @Failure 404 {object} util.Response
// @Router /api/campaigns/{id} [get]
func (c *CampaignController) Get(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	campaign, err := c.CampaignService.Get(id)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, campaign)
}

// ListRoles godoc
// @Summary List a campaign's roles
// @Tags campaigns
// @Produce  json
// @Param   id path int true "campaign id"
// @Success 200 {object} util.Response{data=[]model.CampaignRole}
// @Router /api/campaigns/{id}/roles [get]
func (c *CampaignController) ListRoles(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	roles, err := c.CampaignService.ListRoles(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, roles)
}

// ListByOrganisation godoc
// @Summary List an organisation's campaigns
// @Tags campaigns
// @Produce  json
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Success 200 {object} util.Response{data=[]model.Campaign}
// @Router /api/organisations/{orgId}/campaigns [get]
func (c *CampaignController) ListByOrganisation(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}

	campaigns, err := c.CampaignService.ListByOrganisation(orgID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, campaigns)
}

// Create godoc
// @Summary Create a campaign
// @Tags campaigns
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Param   body body service.CampaignRequest true "campaign"
// @Success 201 {object} util.Response{data=model.Campaign}
// @Failure 400 {object} util.Response
// @Router /api/organisations/{orgId}/campaigns [post]
func (c *CampaignController) Create(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}

	var req service.CampaignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	campaign, err := c.CampaignService.Create(orgID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, campaign)
}

// Update godoc
// @Summary Update a campaign
// @Tags campaigns
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Param   campaignId path int true "campaign id"
// @Param   body body service.CampaignRequest true "campaign"
// @Success 200 {object} util.Response{data=model.Campaign}
// @Failure 403 {object} util.Response
// @Router /api/organisations/{orgId}/campaigns/{campaignId} [put]
func (c *CampaignController) Update(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}
	campaignID, ok := uintParam(ctx, "campaignId")
	if !ok {
		return
	}

	var req service.CampaignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	campaign, err := c.CampaignService.Update(orgID, campaignID, req)
	if err != nil {
		orgScopedError(ctx, err)
		return
	}
	util.Success(ctx, campaign)
}

// Delete godoc
// @Summary Delete a campaign
// @Tags campaigns
// @Produce  json
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Param   campaignId path int true "campaign id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/organisations/{orgId}/campaigns/{campaignId} [delete]
func (c *CampaignController) Delete(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}
	campaignID, ok := uintParam(ctx, "campaignId")
	if !ok {
		return
	}

	if err := c.CampaignService.Delete(orgID, campaignID); err != nil {
		orgScopedError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadCover godoc
// @Summary Upload a campaign cover image
// @Tags campaigns
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Param   campaignId path int true "campaign id"
// @Param   file formData file true "image file"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/organisations/{orgId}/campaigns/{campaignId}/cover [post]
func (c *CampaignController) UploadCover(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}
	campaignID, ok := uintParam(ctx, "campaignId")
	if !ok {
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}
	file, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.CampaignService.UploadCoverImage(
		ctx.Request.Context(),
		orgID,
		campaignID,
		header.Filename,
		file,
		header.Size,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		orgScopedError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// CreateRole godoc
// @Summary Add a role to a campaign
// @Tags campaigns
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Param   campaignId path int true "campaign id"
// @Param   body body service.RoleRequest true "role"
// @Success 201 {object} util.Response{data=model.CampaignRole}
// @Router /api/organisations/{orgId}/campaigns/{campaignId}/roles [post]
func (c *CampaignController) CreateRole(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}
	campaignID, ok := uintParam(ctx, "campaignId")
	if !ok {
		return
	}

	var req service.RoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	role, err := c.CampaignService.CreateRole(orgID, campaignID, req)
	if err != nil {
		if errors.Is(err, util.ErrCampaignNotFound) {
			util.NotFound(ctx)
			return
		}
		orgScopedError(ctx, err)
		return
	}
	util.Created(ctx, role)
}

// UpdateRole godoc
// @Summary Update a role
// @Tags campaigns
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Param   roleId path int true "role id"
// @Param   body body service.RoleRequest true "role"
// @Success 200 {object} util.Response{data=model.CampaignRole}
// @Router /api/organisations/{orgId}/roles/{roleId} [put]
func (c *CampaignController) UpdateRole(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}
	roleID, ok := uintParam(ctx, "roleId")
	if !ok {
		return
	}

	var req service.RoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	role, err := c.CampaignService.UpdateRole(orgID, roleID, req)
	if err != nil {
		orgScopedError(ctx, err)
		return
	}
	util.Success(ctx, role)
}

// DeleteRole godoc
// @Summary Delete a role
// @Tags campaigns
// @Produce  json
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Param   roleId path int true "role id"
// @Success 200 {object} util.Response
// @Router /api/organisations/{orgId}/roles/{roleId} [delete]
func (c *CampaignController) DeleteRole(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}
	roleID, ok := uintParam(ctx, "roleId")
	if !ok {
		return
	}

	if err := c.CampaignService.DeleteRole(orgID, roleID); err != nil {
		orgScopedError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
