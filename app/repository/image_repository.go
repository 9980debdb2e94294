package repository

import (
	"gorm.io/gorm"

	"newsline/app/models"
)

// imageRepository implements the ImageRepository interface
type imageRepository struct {
	db *gorm.DB
}

// NewImageRepository creates a new image repository instance
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(image *models.Image) error {
	return r.db.Create(image).Error
}

func (r *imageRepository) ListByNewsID(newsID uint) ([]models.Image, error) {
	var images []models.Image
	err := r.db.Where("news_id = ?", newsID).Find(&images).Error
	return images, err
}

// ReplaceForNews swaps all image rows of an article inside one transaction
// and returns the URLs of the replaced rows so the caller can drop the
// external files afterwards.
func (r *imageRepository) ReplaceForNews(newsID uint, urls []string) ([]string, error) {
	var old []models.Image
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("news_id = ?", newsID).Find(&old).Error; err != nil {
			return err
		}
		if len(old) > 0 {
			if err := tx.Where("news_id = ?", newsID).Delete(&models.Image{}).Error; err != nil {
				return err
			}
		}
		for _, url := range urls {
			img := models.Image{URL: url, NewsID: newsID}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	oldURLs := make([]string, 0, len(old))
	for _, img := range old {
		oldURLs = append(oldURLs, img.URL)
	}
	return oldURLs, nil
}
