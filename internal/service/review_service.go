package service

import (
	"chaos_backend/internal/model"
	"chaos_backend/internal/repository"
	"chaos_backend/internal/util"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ReviewService backs the director-facing marking flow: inspecting
// applications with their answers, rating candidates and finalising
// outcomes.
type ReviewService struct {
	AppRepo      *repository.ApplicationRepository
	AnswerRepo   *repository.AnswerRepository
	QuestionRepo *repository.QuestionRepository
	RatingRepo   *repository.RatingRepository
	UserRepo     *repository.UserRepository
	CampaignRepo *repository.CampaignRepository
	Mailer       Mailer
}

func NewReviewService(
	appRepo *repository.ApplicationRepository,
	answerRepo *repository.AnswerRepository,
	questionRepo *repository.QuestionRepository,
	ratingRepo *repository.RatingRepository,
	userRepo *repository.UserRepository,
	campaignRepo *repository.CampaignRepository,
	mailer Mailer,
) *ReviewService {
	return &ReviewService{
		AppRepo:      appRepo,
		AnswerRepo:   answerRepo,
		QuestionRepo: questionRepo,
		RatingRepo:   ratingRepo,
		UserRepo:     userRepo,
		CampaignRepo: campaignRepo,
		Mailer:       mailer,
	}
}

type ApplicationSummary struct {
	Application model.Application       `json:"application"`
	Applicant   string                  `json:"applicant"`
	Email       string                  `json:"email"`
	Roles       []model.ApplicationRole `json:"roles"`
	AvgRating   float64                 `json:"avgRating"`
	RatingCount int                     `json:"ratingCount"`
}

// campaignInOrg verifies the campaign belongs to the organisation. Review
// endpoints are org-scoped; without this check any org member could read or
// finalise another organisation's applications.
func (s *ReviewService) campaignInOrg(campaignID, orgID uint) error {
	campaign, err := s.CampaignRepo.FindByID(campaignID)
	if err != nil {
		return err
	}
	if campaign.OrganisationID != orgID {
		return util.ErrPermissionDenied
	}
	return nil
}

// applicationInOrg fetches an application and walks its lineage up to the
// organisation.
func (s *ReviewService) applicationInOrg(applicationID, orgID uint) (*model.Application, error) {
	app, err := s.AppRepo.FindByID(applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.campaignInOrg(app.CampaignID, orgID); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ReviewService) ListApplications(orgID, campaignID uint) ([]ApplicationSummary, error) {
	if err := s.campaignInOrg(campaignID, orgID); err != nil {
		return nil, err
	}
	apps, err := s.AppRepo.FindByCampaign(campaignID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ApplicationSummary, 0, len(apps))
	for _, app := range apps {
		summary := ApplicationSummary{Application: app}

		if user, err := s.UserRepo.FindByID(app.UserID); err == nil {
			summary.Applicant = user.Name
			summary.Email = user.Email
		}

		roles, err := s.AppRepo.GetRoles(app.ID)
		if err != nil {
			return nil, err
		}
		summary.Roles = roles

		ratings, err := s.RatingRepo.FindByApplication(app.ID)
		if err != nil {
			return nil, err
		}
		if len(ratings) > 0 {
			total := 0
			for _, r := range ratings {
				total += r.Rating
			}
			summary.AvgRating = float64(total) / float64(len(ratings))
			summary.RatingCount = len(ratings)
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

type ApplicationDetail struct {
	Application model.Application       `json:"application"`
	Roles       []model.ApplicationRole `json:"roles"`
	Answers     []model.Answer          `json:"answers"`
	Ratings     []model.Rating          `json:"ratings"`
}

func (s *ReviewService) GetApplicationDetail(orgID, applicationID uint) (*ApplicationDetail, error) {
	app, err := s.applicationInOrg(applicationID, orgID)
	if err != nil {
		return nil, err
	}

	roles, err := s.AppRepo.GetRoles(applicationID)
	if err != nil {
		return nil, err
	}
	answers, err := s.AnswerRepo.FindAllByApplication(applicationID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.RatingRepo.FindByApplication(applicationID)
	if err != nil {
		return nil, err
	}

	return &ApplicationDetail{
		Application: *app,
		Roles:       roles,
		Answers:     answers,
		Ratings:     ratings,
	}, nil
}

type RatingRequest struct {
	Rating  int    `json:"rating" binding:"min=0,max=5"`
	Comment string `json:"comment"`
}

// Rate records one reviewer's mark, overwriting their previous one.
func (s *ReviewService) Rate(orgID, applicationID, raterID uint, req RatingRequest) (*model.Rating, error) {
	if _, err := s.applicationInOrg(applicationID, orgID); err != nil {
		return nil, err
	}

	existing, err := s.RatingRepo.FindByApplicationAndRater(applicationID, raterID)
	if err == nil {
		existing.Rating = req.Rating
		existing.Comment = req.Comment
		if err := s.RatingRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	rating := &model.Rating{
		ApplicationID: applicationID,
		RaterID:       raterID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}
	if err := s.RatingRepo.Create(rating); err != nil {
		return nil, err
	}
	return rating, nil
}

type StatusRequest struct {
	Status model.ApplicationStatus `json:"status" binding:"required,oneof=Pending Interviewing Offered Rejected"`
}

// SetStatus moves an application through the pipeline. Offered and Rejected
// are final; reaching either notifies the applicant by email.
func (s *ReviewService) SetStatus(orgID, applicationID uint, req StatusRequest) error {
	app, err := s.applicationInOrg(applicationID, orgID)
	if err != nil {
		return err
	}
	if app.Status == model.ApplicationOffered || app.Status == model.ApplicationRejected {
		return util.ErrAlreadyFinalised
	}

	if err := s.AppRepo.UpdateStatus(applicationID, req.Status); err != nil {
		return err
	}

	if req.Status == model.ApplicationOffered || req.Status == model.ApplicationRejected {
		s.notifyOutcome(app, req.Status)
	}
	return nil
}

func (s *ReviewService) notifyOutcome(app *model.Application, status model.ApplicationStatus) {
	user, err := s.UserRepo.FindByID(app.UserID)
	if err != nil {
		return
	}
	campaign, err := s.CampaignRepo.FindByID(app.CampaignID)
	if err != nil {
		return
	}

	var subject, body string
	if status == model.ApplicationOffered {
		subject = fmt.Sprintf("Your application for %s", campaign.Name)
		body = fmt.Sprintf("Hi %s,\n\nCongratulations! You have been offered a position in %s. Keep an eye out for a follow-up from the team.\n", user.Name, campaign.Name)
	} else {
		subject = fmt.Sprintf("Your application for %s", campaign.Name)
		body = fmt.Sprintf("Hi %s,\n\nThank you for applying to %s. Unfortunately your application was not successful this time.\n", user.Name, campaign.Name)
	}

	s.Mailer.Send(user.Name, user.Email, subject, body)
}
