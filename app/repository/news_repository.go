package repository

import (
	"gorm.io/gorm"

	"newsline/app/models"
)

// newsRepository implements the NewsRepository interface
type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository creates a new news repository instance
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(news *models.News) error {
	return r.db.Create(news).Error
}

// GetBySlug retrieves an article with its full relation set.
func (r *newsRepository) GetBySlug(slug string) (*models.News, error) {
	var news models.News
	err := r.db.
		Preload("Author").
		Preload("Comments").
		Preload("Comments.Author").
		Preload("Images").
		Preload("LikedByUsers").
		Where("slug = ?", slug).First(&news).Error
	if err != nil {
		return nil, err
	}
	news.LikesCount = int64(len(news.LikedByUsers))
	return &news, nil
}

func (r *newsRepository) List() ([]models.News, error) {
	var news []models.News
	err := r.db.
		Preload("Author").
		Preload("Comments").
		Preload("Comments.Author").
		Preload("Images").
		Order("created DESC").Find(&news).Error
	return news, err
}

// Search applies OR-combined substring filters, sorting and pagination.
// The returned total ignores take/skip.
func (r *newsRepository) Search(query NewsSearchQuery) ([]models.News, int64, error) {
	q := r.db.Model(&models.News{})

	switch {
	case query.Title != "" && query.Body != "":
		q = q.Where("lower(title) LIKE ? OR lower(body) LIKE ?",
			pattern(query.Title), pattern(query.Body))
	case query.Title != "":
		q = q.Where("lower(title) LIKE ?", pattern(query.Title))
	case query.Body != "":
		q = q.Where("lower(body) LIKE ?", pattern(query.Body))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if query.Views == "ASC" {
		q = q.Order("views ASC")
	} else if query.Views == "DESC" {
		q = q.Order("views DESC")
	} else {
		q = q.Order("created DESC")
	}

	take := query.Take
	if take <= 0 {
		take = 10
	}
	skip := query.Skip
	if skip < 0 {
		skip = 0
	}

	var news []models.News
	err := q.Offset(skip).Limit(take).Find(&news).Error
	return news, total, err
}

func (r *newsRepository) IncrementViews(id uint) error {
	return r.db.Model(&models.News{}).Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

func (r *newsRepository) UpdateFields(slug string, fields map[string]interface{}, authorID *uint) (int64, error) {
	q := r.db.Model(&models.News{}).Where("slug = ?", slug)
	if authorID != nil {
		q = q.Where("author_id = ?", *authorID)
	}
	res := q.Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *newsRepository) Delete(slug string, authorID *uint) (int64, error) {
	q := r.db.Where("slug = ?", slug)
	if authorID != nil {
		q = q.Where("author_id = ?", *authorID)
	}
	res := q.Delete(&models.News{})
	return res.RowsAffected, res.Error
}

// AddLike adds the user to the liked set. Membership is checked first so
// repeated likes stay single entries.
func (r *newsRepository) AddLike(news *models.News, user *models.User) error {
	liked, err := r.HasLike(news.ID, user.ID)
	if err != nil {
		return err
	}
	if liked {
		return nil
	}
	return r.db.Model(news).Association("LikedByUsers").Append(user)
}

func (r *newsRepository) RemoveLike(news *models.News, userID uint) error {
	return r.db.Model(news).Association("LikedByUsers").Delete(&models.User{ID: userID})
}

func (r *newsRepository) HasLike(newsID, userID uint) (bool, error) {
	var count int64
	err := r.db.Table("news_likes").
		Where("news_id = ? AND user_id = ?", newsID, userID).
		Count(&count).Error
	return count > 0, err
}
