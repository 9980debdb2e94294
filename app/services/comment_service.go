package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"newsline/app/models"
	"newsline/app/repository"
)

// CommentService scopes comment CRUD to news articles, with the same
// ownership policy as the news aggregate.
type CommentService struct {
	comments repository.CommentRepository
	news     repository.NewsRepository
}

func NewCommentService(comments repository.CommentRepository, news repository.NewsRepository) *CommentService {
	return &CommentService{comments: comments, news: news}
}

type CreateCommentInput struct {
	Text     string `json:"text" form:"text" validate:"required,min=1"`
	NewsSlug string `json:"newsSlug" form:"newsSlug" validate:"required"`
}

// Create attaches a comment to an existing article; an unknown slug is
// rejected instead of producing a dangling relation.
func (s *CommentService) Create(in CreateCommentInput, author *models.User) (*models.Comment, error) {
	news, err := s.news.GetBySlug(in.NewsSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound(fmt.Sprintf("News with slug %q was not found!", in.NewsSlug))
		}
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}

	comment := &models.Comment{
		Text:     in.Text,
		NewsID:   news.ID,
		AuthorID: author.ID,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}

	return s.FindOne(comment.ID)
}

func (s *CommentService) FindAll() ([]models.Comment, error) {
	comments, err := s.comments.List()
	if err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}
	return comments, nil
}

func (s *CommentService) FindOne(id uint) (*models.Comment, error) {
	comment, err := s.comments.GetByID(id)
	if err != nil {
		return nil, ErrNotFound(fmt.Sprintf("Comment with id %q was not found!", fmt.Sprint(id)))
	}
	return comment, nil
}

type UpdateCommentInput struct {
	Text string `json:"text" form:"text" validate:"required,min=1"`
}

// Update rewrites the text through a conditional write scoped by the
// ownership policy.
func (s *CommentService) Update(id uint, in UpdateCommentInput, actor *models.User) (*models.Comment, error) {
	affected, err := s.comments.UpdateText(id, in.Text, s.authorScope(actor))
	if err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}
	if affected == 0 {
		return nil, ErrNotFound(fmt.Sprintf("Comment with id %q was not updated! Access Denied!", fmt.Sprint(id)))
	}
	return s.FindOne(id)
}

func (s *CommentService) Delete(id uint, actor *models.User) (*MessageResult, error) {
	affected, err := s.comments.Delete(id, s.authorScope(actor))
	if err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}
	if affected == 0 {
		return nil, ErrNotFound(fmt.Sprintf("Comment with id %q was not deleted! Access Denied!", fmt.Sprint(id)))
	}
	return &MessageResult{Success: true, Message: "Comment has been deleted!"}, nil
}

func (s *CommentService) authorScope(actor *models.User) *uint {
	if actor.IsAdmin() {
		return nil
	}
	id := actor.ID
	return &id
}
