package service

import (
	"chaos_backend/internal/model"
	"chaos_backend/internal/reconcile"
	"chaos_backend/internal/repository"
	"chaos_backend/internal/util"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportService renders a campaign's applications as a spreadsheet for
// directors who want to mark offline.
type ExportService struct {
	AppRepo      *repository.ApplicationRepository
	AnswerRepo   *repository.AnswerRepository
	QuestionRepo *repository.QuestionRepository
	RoleRepo     *repository.RoleRepository
	UserRepo     *repository.UserRepository
	RatingRepo   *repository.RatingRepository
	CampaignRepo *repository.CampaignRepository
}

func NewExportService(
	appRepo *repository.ApplicationRepository,
	answerRepo *repository.AnswerRepository,
	questionRepo *repository.QuestionRepository,
	roleRepo *repository.RoleRepository,
	userRepo *repository.UserRepository,
	ratingRepo *repository.RatingRepository,
	campaignRepo *repository.CampaignRepository,
) *ExportService {
	return &ExportService{
		AppRepo:      appRepo,
		AnswerRepo:   answerRepo,
		QuestionRepo: questionRepo,
		RoleRepo:     roleRepo,
		UserRepo:     userRepo,
		RatingRepo:   ratingRepo,
		CampaignRepo: campaignRepo,
	}
}

const exportSheet = "Applications"

// ExportCampaign builds an xlsx workbook with one row per application. The
// question columns are the campaign's common questions followed by each
// role's questions in role order; answers are rendered the same way the
// review screens render them.
func (s *ExportService) ExportCampaign(orgID, campaignID uint) (*excelize.File, error) {
	campaign, err := s.CampaignRepo.FindByID(campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.OrganisationID != orgID {
		return nil, util.ErrPermissionDenied
	}

	questions, err := s.campaignQuestions(campaignID)
	if err != nil {
		return nil, err
	}
	apps, err := s.AppRepo.FindByCampaign(campaignID)
	if err != nil {
		return nil, err
	}
	roleNames, err := s.roleNames(campaignID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", exportSheet)

	headers := []string{"Applicant", "Email", "Status", "Roles", "Avg Rating"}
	for _, q := range questions {
		headers = append(headers, q.Title)
	}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(exportSheet, cell, h)
	}

	for i := range apps {
		row, err := s.applicationRow(&apps[i], questions, roleNames)
		if err != nil {
			return nil, err
		}
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(exportSheet, cell, v)
		}
	}

	return f, nil
}

func (s *ExportService) campaignQuestions(campaignID uint) ([]model.Question, error) {
	questions, err := s.QuestionRepo.FindCommonByCampaignID(campaignID)
	if err != nil {
		return nil, err
	}
	roles, err := s.RoleRepo.FindAllByCampaignID(campaignID)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		roleQuestions, err := s.QuestionRepo.FindByRoleID(campaignID, role.ID)
		if err != nil {
			return nil, err
		}
		questions = append(questions, roleQuestions...)
	}
	return questions, nil
}

func (s *ExportService) roleNames(campaignID uint) (map[uint]string, error) {
	roles, err := s.RoleRepo.FindAllByCampaignID(campaignID)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(roles))
	for _, role := range roles {
		names[role.ID] = role.Name
	}
	return names, nil
}

func (s *ExportService) applicationRow(app *model.Application, questions []model.Question, roleNames map[uint]string) ([]interface{}, error) {
	name, email := "", ""
	if user, err := s.UserRepo.FindByID(app.UserID); err == nil {
		name = user.Name
		email = user.Email
	}

	selected, err := s.AppRepo.GetRoles(app.ID)
	if err != nil {
		return nil, err
	}
	roles := ""
	for i, ar := range selected {
		if i > 0 {
			roles += ", "
		}
		roles += roleNames[ar.CampaignRoleID]
	}

	avg := ""
	if ratings, err := s.RatingRepo.FindByApplication(app.ID); err == nil && len(ratings) > 0 {
		total := 0
		for _, r := range ratings {
			total += r.Rating
		}
		avg = fmt.Sprintf("%.2f", float64(total)/float64(len(ratings)))
	}

	answers, err := s.AnswerRepo.FindAllByApplication(app.ID)
	if err != nil {
		return nil, err
	}
	byQuestion := make(map[uint]model.Answer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	row := []interface{}{name, email, string(app.Status), roles, avg}
	for i := range questions {
		row = append(row, s.renderAnswer(&questions[i], byQuestion))
	}
	return row, nil
}

func (s *ExportService) renderAnswer(question *model.Question, byQuestion map[uint]model.Answer) string {
	stored, ok := byQuestion[question.ID]
	if !ok {
		return reconcile.NoAnswerText
	}
	value, err := reconcile.DecodeValue(stored.AnswerType, stored.AnswerData)
	if err != nil {
		return reconcile.NoAnswerText
	}
	return reconcile.FormatAnswer(question, &value)
}
