package repository

import (
	"chaos_backend/internal/model"

	"gorm.io/gorm"
)

type InterviewRepository struct {
	DB *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{DB: db}
}

func (r *InterviewRepository) CreateSlot(slot *model.InterviewSlot) error {
	return r.DB.Create(slot).Error
}

func (r *InterviewRepository) FindSlotByID(id uint) (*model.InterviewSlot, error) {
	var slot model.InterviewSlot
	err := r.DB.First(&slot, id).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *InterviewRepository) FindSlotsByCampaign(campaignID uint) ([]model.InterviewSlot, error) {
	var slots []model.InterviewSlot
	err := r.DB.Where("campaign_id = ?", campaignID).Order("starts_at").Find(&slots).Error
	return slots, err
}

func (r *InterviewRepository) DeleteSlot(id uint) error {
	return r.DB.Delete(&model.InterviewSlot{}, id).Error
}

func (r *InterviewRepository) CountBookings(slotID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.InterviewBooking{}).Where("slot_id = ?", slotID).Count(&count).Error
	return count, err
}

func (r *InterviewRepository) FindBookingByApplication(applicationID uint) (*model.InterviewBooking, error) {
	var booking model.InterviewBooking
	err := r.DB.Where("application_id = ?", applicationID).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *InterviewRepository) CreateBooking(booking *model.InterviewBooking) error {
	return r.DB.Create(booking).Error
}

func (r *InterviewRepository) UpdateBooking(booking *model.InterviewBooking) error {
	return r.DB.Save(booking).Error
}

func (r *InterviewRepository) DeleteBooking(id uint) error {
	return r.DB.Unscoped().Delete(&model.InterviewBooking{}, id).Error
}
