package service

import (
	"chaos_backend/internal/model"
	"chaos_backend/internal/repository"
	"chaos_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

type InterviewService struct {
	InterviewRepo *repository.InterviewRepository
	CampaignRepo  *repository.CampaignRepository
	Applications  *ApplicationService
}

func NewInterviewService(
	interviewRepo *repository.InterviewRepository,
	campaignRepo *repository.CampaignRepository,
	applications *ApplicationService,
) *InterviewService {
	return &InterviewService{
		InterviewRepo: interviewRepo,
		CampaignRepo:  campaignRepo,
		Applications:  applications,
	}
}

// campaignInOrg verifies the campaign belongs to the organisation before a
// member manages its slots.
func (s *InterviewService) campaignInOrg(campaignID, orgID uint) error {
	campaign, err := s.CampaignRepo.FindByID(campaignID)
	if err != nil {
		return err
	}
	if campaign.OrganisationID != orgID {
		return util.ErrPermissionDenied
	}
	return nil
}

type SlotRequest struct {
	StartsAt time.Time `json:"startsAt" binding:"required"`
	EndsAt   time.Time `json:"endsAt" binding:"required"`
	Capacity int       `json:"capacity" binding:"min=1"`
}

func (s *InterviewService) CreateSlot(orgID, campaignID uint, req SlotRequest) (*model.InterviewSlot, error) {
	if err := s.campaignInOrg(campaignID, orgID); err != nil {
		return nil, err
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, errors.New("slot must end after it starts")
	}

	slot := &model.InterviewSlot{
		CampaignID: campaignID,
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
		Capacity:   req.Capacity,
	}
	if err := s.InterviewRepo.CreateSlot(slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *InterviewService) DeleteSlot(orgID, slotID uint) error {
	slot, err := s.InterviewRepo.FindSlotByID(slotID)
	if err != nil {
		return err
	}
	if err := s.campaignInOrg(slot.CampaignID, orgID); err != nil {
		return err
	}
	return s.InterviewRepo.DeleteSlot(slotID)
}

type SlotAvailability struct {
	Slot      model.InterviewSlot `json:"slot"`
	Booked    int                 `json:"booked"`
	Remaining int                 `json:"remaining"`
}

// ListSlots returns a campaign's slots with remaining capacity.
func (s *InterviewService) ListSlots(campaignID uint) ([]SlotAvailability, error) {
	slots, err := s.InterviewRepo.FindSlotsByCampaign(campaignID)
	if err != nil {
		return nil, err
	}

	out := make([]SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		count, err := s.InterviewRepo.CountBookings(slot.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, SlotAvailability{
			Slot:      slot,
			Booked:    int(count),
			Remaining: slot.Capacity - int(count),
		})
	}
	return out, nil
}

// Book reserves a slot for the caller's application. An application holds
// at most one booking; booking again moves it to the new slot.
func (s *InterviewService) Book(slotID, applicationID, userID uint) (*model.InterviewBooking, error) {
	app, err := s.Applications.GetOwned(applicationID, userID)
	if err != nil {
		return nil, err
	}

	slot, err := s.InterviewRepo.FindSlotByID(slotID)
	if err != nil {
		return nil, err
	}
	if slot.CampaignID != app.CampaignID {
		return nil, util.ErrCampaignNotFound
	}

	count, err := s.InterviewRepo.CountBookings(slotID)
	if err != nil {
		return nil, err
	}
	if int(count) >= slot.Capacity {
		return nil, util.ErrSlotFull
	}

	existing, err := s.InterviewRepo.FindBookingByApplication(applicationID)
	if err == nil {
		existing.SlotID = slotID
		if err := s.InterviewRepo.UpdateBooking(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	booking := &model.InterviewBooking{
		SlotID:        slotID,
		ApplicationID: applicationID,
	}
	if err := s.InterviewRepo.CreateBooking(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *InterviewService) Cancel(applicationID, userID uint) error {
	if _, err := s.Applications.GetOwned(applicationID, userID); err != nil {
		return err
	}

	booking, err := s.InterviewRepo.FindBookingByApplication(applicationID)
	if err != nil {
		return err
	}
	return s.InterviewRepo.DeleteBooking(booking.ID)
}
