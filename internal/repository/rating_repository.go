package repository

import (
	"chaos_backend/internal/model"

	"gorm.io/gorm"
)

type RatingRepository struct {
	DB *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{DB: db}
}

func (r *RatingRepository) Create(rating *model.Rating) error {
	return r.DB.Create(rating).Error
}

func (r *RatingRepository) Update(rating *model.Rating) error {
	return r.DB.Save(rating).Error
}

func (r *RatingRepository) FindByApplicationAndRater(applicationID, raterID uint) (*model.Rating, error) {
	var rating model.Rating
	err := r.DB.Where("application_id = ? AND rater_id = ?", applicationID, raterID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepository) FindByApplication(applicationID uint) ([]model.Rating, error) {
	var ratings []model.Rating
	err := r.DB.Where("application_id = ?", applicationID).Find(&ratings).Error
	return ratings, err
}
