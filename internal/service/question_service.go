package service

import (
	"chaos_backend/internal/model"
	"chaos_backend/internal/repository"
	"chaos_backend/internal/util"
	"fmt"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	RoleRepo     *repository.RoleRepository
	CampaignRepo *repository.CampaignRepository
}

func NewQuestionService(
	questionRepo *repository.QuestionRepository,
	roleRepo *repository.RoleRepository,
	campaignRepo *repository.CampaignRepository,
) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		RoleRepo:     roleRepo,
		CampaignRepo: campaignRepo,
	}
}

// campaignInOrg verifies the campaign belongs to the organisation, so a
// member of one organisation cannot edit another organisation's questions.
func (s *QuestionService) campaignInOrg(campaignID, orgID uint) error {
	campaign, err := s.CampaignRepo.FindByID(campaignID)
	if err != nil {
		return err
	}
	if campaign.OrganisationID != orgID {
		return util.ErrPermissionDenied
	}
	return nil
}

type QuestionOptionRequest struct {
	Text  string `json:"text" binding:"required"`
	Order int    `json:"order"`
}

type QuestionRequest struct {
	RoleID      *uint                   `json:"roleId"` // nil for common questions
	Type        model.QuestionType      `json:"type" binding:"required,oneof=ShortAnswer DropDown MultiChoice MultiSelect Ranking"`
	Title       string                  `json:"title" binding:"required"`
	Description string                  `json:"description"`
	Required    bool                    `json:"required"`
	Order       int                     `json:"order"`
	Options     []QuestionOptionRequest `json:"options"`
}

func (s *QuestionService) Create(orgID, campaignID uint, req QuestionRequest) (*model.Question, error) {
	if err := s.campaignInOrg(campaignID, orgID); err != nil {
		return nil, err
	}
	if req.RoleID != nil {
		role, err := s.RoleRepo.FindByID(*req.RoleID)
		if err != nil {
			return nil, err
		}
		if role.CampaignID != campaignID {
			return nil, util.ErrRoleNotInCampaign
		}
	}

	if req.Type.HasOptions() && len(req.Options) == 0 {
		return nil, fmt.Errorf("%s questions need at least one option", req.Type)
	}

	question := &model.Question{
		CampaignID:  campaignID,
		RoleID:      req.RoleID,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Required:    req.Required,
		Order:       req.Order,
	}
	for _, opt := range req.Options {
		question.Options = append(question.Options, model.QuestionOption{
			Text:  opt.Text,
			Order: opt.Order,
		})
	}

	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) Update(orgID, id uint, req QuestionRequest) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.campaignInOrg(question.CampaignID, orgID); err != nil {
		return nil, err
	}

	// A question's scope is fixed at creation; it never moves between roles.
	if req.RoleID != nil && (question.RoleID == nil || *question.RoleID != *req.RoleID) {
		return nil, util.ErrRoleNotInCampaign
	}
	if req.Type.HasOptions() && len(req.Options) == 0 {
		return nil, fmt.Errorf("%s questions need at least one option", req.Type)
	}

	question.Type = req.Type
	question.Title = req.Title
	question.Description = req.Description
	question.Required = req.Required
	question.Order = req.Order

	options := make([]model.QuestionOption, 0, len(req.Options))
	for _, opt := range req.Options {
		options = append(options, model.QuestionOption{
			QuestionID: question.ID,
			Text:       opt.Text,
			Order:      opt.Order,
		})
	}
	if err := s.QuestionRepo.ReplaceOptions(question, options); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) Delete(orgID, id uint) error {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.campaignInOrg(question.CampaignID, orgID); err != nil {
		return err
	}
	return s.QuestionRepo.Delete(id)
}

func (s *QuestionService) Get(id uint) (*model.Question, error) {
	return s.QuestionRepo.FindByID(id)
}

func (s *QuestionService) ListCommon(campaignID uint) ([]model.Question, error) {
	return s.QuestionRepo.FindCommonByCampaignID(campaignID)
}

func (s *QuestionService) ListForRole(campaignID, roleID uint) ([]model.Question, error) {
	role, err := s.RoleRepo.FindByID(roleID)
	if err != nil {
		return nil, err
	}
	if role.CampaignID != campaignID {
		return nil, util.ErrRoleNotInCampaign
	}
	return s.QuestionRepo.FindByRoleID(campaignID, roleID)
}
