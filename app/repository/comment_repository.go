package repository

import (
	"gorm.io/gorm"

	"newsline/app/models"
)

// commentRepository implements the CommentRepository interface
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").Preload("News").First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) List() ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Author").Preload("News").Find(&comments).Error
	return comments, err
}

// UpdateText rewrites the comment text. The write is scoped by author for
// non-admin actors; rows affected is the only success signal.
func (r *commentRepository) UpdateText(id uint, text string, authorID *uint) (int64, error) {
	q := r.db.Model(&models.Comment{}).Where("id = ?", id)
	if authorID != nil {
		q = q.Where("author_id = ?", *authorID)
	}
	res := q.Update("text", text)
	return res.RowsAffected, res.Error
}

func (r *commentRepository) Delete(id uint, authorID *uint) (int64, error) {
	q := r.db.Where("id = ?", id)
	if authorID != nil {
		q = q.Where("author_id = ?", *authorID)
	}
	res := q.Delete(&models.Comment{})
	return res.RowsAffected, res.Error
}
