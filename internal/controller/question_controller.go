package controller

import (
	"chaos_backend/internal/service"
	"chaos_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// ListCommon godoc
// @Summary List a campaign's common questions
// @Description Questions asked of every applicant regardless of role
// @Tags questions
// @Produce  json
// @Param   id path int true "campaign id"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/campaigns/{id}/questions [get]
func (c *QuestionController) ListCommon(ctx *gin.Context) {
	campaignID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	questions, err := c.QuestionService.ListCommon(campaignID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// ListForRole godoc
// @Summary List one role's questions
// @Tags questions
// @Produce  json
// @Param   id path int true "campaign id"
// @Param   roleId path int true "role id"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Failure 400 {object} util.Response "role does not belong to the campaign"
// @Router /api/campaigns/{id}/roles/{roleId}/questions [get]
func (c *QuestionController) ListForRole(ctx *gin.Context) {
	campaignID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	roleID, ok := uintParam(ctx, "roleId")
	if !ok {
		return
	}

	questions, err := c.QuestionService.ListForRole(campaignID, roleID)
	if err != nil {
		if errors.Is(err, util.ErrRoleNotInCampaign) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// Create godoc
// @Summary Create a question
// @Description A question with no roleId is common; otherwise it belongs to one role
// @Tags questions
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Param   campaignId path int true "campaign id"
// @Param   body body service.QuestionRequest true "question"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Router /api/organisations/{orgId}/campaigns/{campaignId}/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}
	campaignID, ok := uintParam(ctx, "campaignId")
	if !ok {
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.Create(orgID, campaignID, req)
	if err != nil {
		if errors.Is(err, util.ErrRoleNotInCampaign) {
			util.BadRequest(ctx, err.Error())
			return
		}
		orgScopedError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// Update godoc
// @Summary Update a question
// @Tags questions
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Param   questionId path int true "question id"
// @Param   body body service.QuestionRequest true "question"
// @Success 200 {object} util.Response{data=model.Question}
// @Router /api/organisations/{orgId}/questions/{questionId} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}
	questionID, ok := uintParam(ctx, "questionId")
	if !ok {
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.Update(orgID, questionID, req)
	if err != nil {
		if errors.Is(err, util.ErrRoleNotInCampaign) {
			util.BadRequest(ctx, err.Error())
			return
		}
		orgScopedError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// Delete godoc
// @Summary Delete a question
// @Tags questions
// @Produce  json
// @Security ApiKeyAuth
// @Param   orgId path int true "organisation id"
// @Param   questionId path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/organisations/{orgId}/questions/{questionId} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	orgID, ok := uintParam(ctx, "orgId")
	if !ok {
		return
	}
	questionID, ok := uintParam(ctx, "questionId")
	if !ok {
		return
	}

	if err := c.QuestionService.Delete(orgID, questionID); err != nil {
		orgScopedError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
