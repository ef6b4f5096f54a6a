package controller

import (
	"chaos_backend/internal/service"
	"chaos_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type InterviewController struct {
	InterviewService *service.InterviewService
}

func NewInterviewController(interviewService *service.InterviewService) *InterviewController {
	return &InterviewController{InterviewService: interviewService}
}

// ListSlots godoc
// @Summary List a campaign's interview slots
// @Description Each slot carries its remaining capacity
// @Tags interviews
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "campaign id"
// @Success 200 {object} util.Response{data=[]service.SlotAvailability}
// @Router /api/campaigns/{id}/slots [get]
func (c *InterviewController) ListSlots(ctx *gin.Context) {
	campaignID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	slots, err := c.InterviewService.ListSlots(campaignID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, slots)
}

// CreateSlot godoc
// @Summary Create an interview slot
// @Tags interviews
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Param   campaignId path int true "campaign id"
// @Param   body body service.SlotRequest true "slot"
// @Success 201 {object} util.Response{data=model.InterviewSlot}
// @Failure 400 {object} util.Response
// @Router /api/organisations/{orgId}/campaigns/{campaignId}/slots [post]
func (c *InterviewController) CreateSlot(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}
	campaignID, ok := uintParam(ctx, "campaignId")
	if !ok {
		return
	}

	var req service.SlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	slot, err := c.InterviewService.CreateSlot(orgID, campaignID, req)
	if err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, slot)
}

// DeleteSlot godoc
// @Summary Delete an interview slot
// @Tags interviews
// @Produce  json
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Param   slotId path int true "slot id"
// @Success 200 {object} util.Response
// @Router /api/organisations/{orgId}/slots/{slotId} [delete]
func (c *InterviewController) DeleteSlot(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}
	slotID, ok := uintParam(ctx, "slotId")
	if !ok {
		return
	}

	if err := c.InterviewService.DeleteSlot(orgID, slotID); err != nil {
		orgScopedError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type BookingRequest struct {
	SlotID uint `json:"slotId" binding:"required"`
}

// Book godoc
// @Summary Book an interview slot
// @Description An application holds one booking; booking again moves it
// @Tags interviews
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "application id"
// @Param   body body BookingRequest true "booking"
// @Success 200 {object} util.Response{data=model.InterviewBooking}
// @Failure 400 {object} util.Response "slot is full"
// @Failure 403 {object} util.Response
// @Router /api/applications/{id}/booking [post]
func (c *InterviewController) Book(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	applicationID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	var req BookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	booking, err := c.InterviewService.Book(req.SlotID, applicationID, user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrSlotFull), errors.Is(err, util.ErrCampaignNotFound):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, booking)
}

// CancelBooking godoc
// @Summary Cancel an interview booking
// @Tags interviews
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "application id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/applications/{id}/booking [delete]
func (c *InterviewController) CancelBooking(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	applicationID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.InterviewService.Cancel(applicationID, user.UserID); err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
