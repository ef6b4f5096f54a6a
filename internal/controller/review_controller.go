package controller

import (
	"chaos_backend/internal/service"
	"chaos_backend/internal/util"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReviewController exposes the director-facing marking endpoints: application
// listings, detail views, ratings, status changes and the xlsx export.
type ReviewController struct {
	ReviewService *service.ReviewService
	ExportService *service.ExportService
}

func NewReviewController(reviewService *service.ReviewService, exportService *service.ExportService) *ReviewController {
	return &ReviewController{
		ReviewService: reviewService,
		ExportService: exportService,
	}
}

// ListApplications godoc
// @Summary List a campaign's applications
// @Description Summaries with applicant details, role preferences and average rating
// @Tags review
// @Produce  json
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Param   campaignId path int true "campaign id"
// @Success 200 {object} util.Response{data=[]service.ApplicationSummary}
// @Router /api/organisations/{orgId}/campaigns/{campaignId}/applications [get]
func (c *ReviewController) ListApplications(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}
	campaignID, ok := uintParam(ctx, "campaignId")
	if !ok {
		return
	}

	summaries, err := c.ReviewService.ListApplications(orgID, campaignID)
	if err != nil {
		orgScopedError(ctx, err)
		return
	}
	util.Success(ctx, summaries)
}

// GetApplication godoc
// @Summary Get one application with answers and ratings
// @Tags review
// @Produce  json
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Param   appId path int true "application id"
// @Success 200 {object} util.Response{data=service.ApplicationDetail}
// @Failure 404 {object} util.Response
// @Router /api/organisations/{orgId}/applications/{appId} [get]
func (c *ReviewController) GetApplication(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}
	applicationID, ok := uintParam(ctx, "appId")
	if !ok {
		return
	}

	detail, err := c.ReviewService.GetApplicationDetail(orgID, applicationID)
	if err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
			return
		}
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, detail)
}

// Rate godoc
// @Summary Rate an application
// @Description Records the caller's rating, replacing their previous one
// @Tags review
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Param   appId path int true "application id"
// @Param   body body service.RatingRequest true "rating"
// @Success 200 {object} util.Response{data=model.Rating}
// @Failure 400 {object} util.Response
// @Router /api/organisations/{orgId}/applications/{appId}/ratings [post]
func (c *ReviewController) Rate(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}
	applicationID, ok := uintParam(ctx, "appId")
	if !ok {
		return
	}

	var req service.RatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rating, err := c.ReviewService.Rate(orgID, applicationID, user.UserID, req)
	if err != nil {
		orgScopedError(ctx, err)
		return
	}
	util.Success(ctx, rating)
}

// SetStatus godoc
// @Summary Move an application through the pipeline
// @Description Offered and Rejected are final and trigger a notification email
// @Tags review
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Param   appId path int true "application id"
// @Param   body body service.StatusRequest true "status"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "already finalised"
// @Router /api/organisations/{orgId}/applications/{appId}/status [put]
func (c *ReviewController) SetStatus(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}
	applicationID, ok := uintParam(ctx, "appId")
	if !ok {
		return
	}

	var req service.StatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ReviewService.SetStatus(orgID, applicationID, req); err != nil {
		if errors.Is(err, util.ErrAlreadyFinalised) {
			util.BadRequest(ctx, err.Error())
			return
		}
		orgScopedError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Export godoc
// @Summary Export a campaign's applications as xlsx
// @Tags review
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Param   campaignId path int true "campaign id"
// @Success 200 {file} binary
// @Router /api/organisations/{orgId}/campaigns/{campaignId}/export [get]
func (c *ReviewController) Export(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}
	campaignID, ok := uintParam(ctx, "campaignId")
	if !ok {
		return
	}

	f, err := c.ExportService.ExportCampaign(orgID, campaignID)
	if err != nil {
		orgScopedError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="campaign-%d-applications.xlsx"`, campaignID))
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(ctx.Writer); err != nil {
		ctx.Status(http.StatusInternalServerError)
	}
}
