package controller

import (
	"chaos_backend/internal/service"
	"chaos_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type AnswerController struct {
	AnswerService *service.AnswerService
}

func NewAnswerController(answerService *service.AnswerService) *AnswerController {
	return &AnswerController{AnswerService: answerService}
}

// ListCommon godoc
// @Summary List an application's common answers
// @Description Answers to the campaign's common questions
// @Tags answers
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "application id"
// @Success 200 {object} util.Response{data=[]model.Answer}
// @Failure 403 {object} util.Response
// @Router /api/applications/{id}/answers [get]
func (c *AnswerController) ListCommon(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	applicationID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	answers, err := c.AnswerService.ListCommon(applicationID, user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, answers)
}

// ListForRole godoc
// @Summary List an application's answers for one role
// @Tags answers
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "application id"
// @Param   roleId path int true "role id"
// @Success 200 {object} util.Response{data=[]model.Answer}
// @Failure 403 {object} util.Response
// @Router /api/applications/{id}/roles/{roleId}/answers [get]
func (c *AnswerController) ListForRole(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	applicationID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	roleID, ok := uintParam(ctx, "roleId")
	if !ok {
		return
	}

	answers, err := c.AnswerService.ListForRole(applicationID, roleID, user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, answers)
}

// Create godoc
// @Summary Submit an answer
// @Description Creates the answer, or updates it in place when one already exists for the question
// @Tags answers
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "application id"
// @Param   body body service.AnswerRequest true "answer"
// @Success 201 {object} util.Response{data=model.Answer}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/applications/{id}/answers [post]
func (c *AnswerController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	applicationID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	var req service.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.AnswerService.Create(applicationID, user.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrQuestionMismatch):
			util.BadRequest(ctx, err.Error())
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Created(ctx, answer)
}

// Update godoc
// @Summary Update an answer
// @Tags answers
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   answerId path int true "answer id"
// @Param   body body service.AnswerRequest true "answer"
// @Success 200 {object} util.Response{data=model.Answer}
// @Failure 403 {object} util.Response
// @Router /api/answers/{answerId} [put]
func (c *AnswerController) Update(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	answerID, ok := uintParam(ctx, "answerId")
	if !ok {
		return
	}

	var req service.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.AnswerService.Update(answerID, user.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrQuestionMismatch):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, answer)
}

// Delete godoc
// @Summary Delete an answer
// @Description Deleting is how a question returns to the unanswered state
// @Tags answers
// @Produce  json
// @Security ApiKeyAuth
// @Param   answerId path int true "answer id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/answers/{answerId} [delete]
func (c *AnswerController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	answerID, ok := uintParam(ctx, "answerId")
	if !ok {
		return
	}

	if err := c.AnswerService.Delete(answerID, user.UserID); err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
