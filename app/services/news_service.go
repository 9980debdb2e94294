package services

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"newsline/app/models"
	"newsline/app/repository"
	"newsline/internal/pkg/shortener"
	"newsline/internal/pkg/storage"
)

// NewsService owns the article aggregate: CRUD by slug, search, the
// follow-graph feed and the like set.
type NewsService struct {
	news   repository.NewsRepository
	users  repository.UserRepository
	images repository.ImageRepository
	files  storage.FileStore
}

func NewNewsService(news repository.NewsRepository, users repository.UserRepository, images repository.ImageRepository, files storage.FileStore) *NewsService {
	return &NewsService{news: news, users: users, images: images, files: files}
}

type CreateNewsInput struct {
	Title string `json:"title" form:"title" validate:"required,min=3,max=255"`
	Body  string `json:"body" form:"body" validate:"required"`
}

// Create persists the article under a freshly generated slug and stores
// the attached images.
func (s *NewsService) Create(in CreateNewsInput, author *models.User, uploads []Upload) (*models.News, error) {
	slug, err := shortener.NewsSlug(in.Title)
	if err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}

	news := &models.News{
		Title:    in.Title,
		Slug:     slug,
		Body:     in.Body,
		AuthorID: author.ID,
	}
	if err := s.news.Create(news); err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}

	for _, upload := range uploads {
		url, err := s.files.Store(upload.Name, upload.Data)
		if err != nil {
			return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
		}
		image := &models.Image{URL: url, NewsID: news.ID}
		if err := s.images.Create(image); err != nil {
			return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
		}
	}

	return s.resolve(slug)
}

func (s *NewsService) FindAll() ([]models.News, error) {
	news, err := s.news.List()
	if err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}
	return news, nil
}

// FindOne is the user-facing read of a single article; it is the only path
// that bumps the view counter.
func (s *NewsService) FindOne(slug string) (*models.News, error) {
	news, err := s.resolve(slug)
	if err != nil {
		return nil, err
	}

	if err := s.news.IncrementViews(news.ID); err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}
	news.Views++
	return news, nil
}

type SearchNewsInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Views string `json:"views" validate:"omitempty,oneof=ASC DESC"`
	Take  int    `json:"take"`
	Skip  int    `json:"skip"`
}

type SearchNewsResult struct {
	News  []models.News `json:"news"`
	Total int64         `json:"total"`
}

func (s *NewsService) Search(in SearchNewsInput) (*SearchNewsResult, error) {
	news, total, err := s.news.Search(repository.NewsSearchQuery{
		Title: in.Title,
		Body:  in.Body,
		Views: in.Views,
		Take:  in.Take,
		Skip:  in.Skip,
	})
	if err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}
	return &SearchNewsResult{News: news, Total: total}, nil
}

// FollowingUsersNews flattens the articles of every followed user into one
// list, newest first.
func (s *NewsService) FollowingUsersNews(actor *models.User) ([]models.News, error) {
	user, err := s.users.GetWithFollowingNews(actor.ID)
	if err != nil {
		return nil, ErrNotFound(fmt.Sprintf("User with id %d was not found!", actor.ID))
	}

	feed := make([]models.News, 0)
	for _, followed := range user.Following {
		feed = append(feed, followed.News...)
	}
	sort.Slice(feed, func(i, j int) bool {
		return feed[i].Created.After(feed[j].Created)
	})
	return feed, nil
}

// UpdateNewsInput is a coalescing patch over title and body.
type UpdateNewsInput struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

// Update applies the patch through a conditional write scoped by the
// ownership policy; zero affected rows covers both absence and denial.
// A supplied image set replaces the stored one.
func (s *NewsService) Update(slug string, in UpdateNewsInput, actor *models.User, uploads []Upload) (*models.News, error) {
	news, err := s.resolve(slug)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"title": coalesce(in.Title, news.Title),
		"body":  coalesce(in.Body, news.Body),
	}

	affected, err := s.news.UpdateFields(slug, fields, s.authorScope(actor))
	if err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}
	if affected == 0 {
		return nil, ErrNotFound(fmt.Sprintf("News with slug %q was not updated! Access denied!", slug))
	}

	if len(uploads) > 0 {
		urls := make([]string, 0, len(uploads))
		for _, upload := range uploads {
			url, err := s.files.Store(upload.Name, upload.Data)
			if err != nil {
				return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
			}
			urls = append(urls, url)
		}

		oldURLs, err := s.images.ReplaceForNews(news.ID, urls)
		if err != nil {
			return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
		}
		for _, old := range oldURLs {
			// Best effort; the rows are already swapped.
			_ = s.files.Remove(old)
		}
	}

	return s.resolve(slug)
}

// Delete removes the article through a conditional write scoped by the
// ownership policy and then drops the stored image files best-effort.
func (s *NewsService) Delete(slug string, actor *models.User) (*MessageResult, error) {
	news, err := s.resolve(slug)
	if err != nil {
		return nil, err
	}

	images, err := s.images.ListByNewsID(news.ID)
	if err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}

	affected, err := s.news.Delete(slug, s.authorScope(actor))
	if err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}
	if affected == 0 {
		return nil, ErrNotFound(fmt.Sprintf("News with slug %q was not deleted! Access denied!", slug))
	}

	for _, image := range images {
		_ = s.files.Remove(image.URL)
	}

	return &MessageResult{Success: true, Message: "News has been deleted!"}, nil
}

// Like adds the acting user to the liked set; repeated likes keep a single
// entry.
func (s *NewsService) Like(slug string, actor *models.User) (*models.News, error) {
	news, err := s.resolve(slug)
	if err != nil {
		return nil, err
	}
	if err := s.news.AddLike(news, actor); err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}
	return s.resolve(slug)
}

// Unlike removes the acting user from the liked set; naturally idempotent.
func (s *NewsService) Unlike(slug string, actor *models.User) (*models.News, error) {
	news, err := s.resolve(slug)
	if err != nil {
		return nil, err
	}
	if err := s.news.RemoveLike(news, actor.ID); err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}
	return s.resolve(slug)
}

// resolve loads an article by slug without touching the view counter.
func (s *NewsService) resolve(slug string) (*models.News, error) {
	news, err := s.news.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound(fmt.Sprintf("News with slug %q was not found!", slug))
		}
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}
	return news, nil
}

func (s *NewsService) authorScope(actor *models.User) *uint {
	if actor.IsAdmin() {
		return nil
	}
	id := actor.ID
	return &id
}
