package repository

import (
	"gorm.io/gorm"

	"newsline/app/models"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	// GetWithRelations loads news, comments, followers and following.
	GetWithRelations(id uint) (*models.User, error)
	// GetProfile loads the lighter self-view relation set: news and comments.
	GetProfile(id uint) (*models.User, error)
	GetWithFollowers(id uint) (*models.User, error)
	// GetWithFollowingNews loads the follow edges and each followed
	// user's articles, for the personalized feed.
	GetWithFollowingNews(id uint) (*models.User, error)
	List() ([]models.User, error)
	Search(username, email string) ([]models.User, error)
	Save(user *models.User) error
	// UpdateFields applies a partial column update and reports rows affected.
	UpdateFields(id uint, fields map[string]interface{}) (int64, error)
	UpdatePasswordByEmail(email, passwordHash string) (int64, error)
	Delete(id uint) (int64, error)
	AddFollower(target *models.User, follower *models.User) error
	RemoveFollower(target *models.User, followerID uint) error
}

// NewsSearchQuery carries the filter/sort/pagination parameters of a news
// search. Title and Body are OR-combined case-insensitive substring
// filters; Views is "ASC" or "DESC" (empty means newest first).
type NewsSearchQuery struct {
	Title string
	Body  string
	Views string
	Take  int
	Skip  int
}

// NewsRepository defines the interface for news-related database operations.
type NewsRepository interface {
	Create(news *models.News) error
	// GetBySlug loads the article with author, comments (and their
	// authors), images and likes.
	GetBySlug(slug string) (*models.News, error)
	List() ([]models.News, error)
	// Search returns the matching page and the total ignoring pagination.
	Search(query NewsSearchQuery) ([]models.News, int64, error)
	IncrementViews(id uint) error
	// UpdateFields applies a partial update scoped by slug, and by author
	// when authorID is non-nil. Returns rows affected.
	UpdateFields(slug string, fields map[string]interface{}, authorID *uint) (int64, error)
	// Delete removes the article scoped by slug, and by author when
	// authorID is non-nil. Returns rows affected.
	Delete(slug string, authorID *uint) (int64, error)
	AddLike(news *models.News, user *models.User) error
	RemoveLike(news *models.News, userID uint) error
	HasLike(newsID, userID uint) (bool, error)
}

// CommentRepository defines the interface for comment-related operations.
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id uint) (*models.Comment, error)
	List() ([]models.Comment, error)
	// UpdateText and Delete are scoped by author when authorID is non-nil;
	// rows affected is the only success signal.
	UpdateText(id uint, text string, authorID *uint) (int64, error)
	Delete(id uint, authorID *uint) (int64, error)
}

// ImageRepository defines the interface for image-row operations.
type ImageRepository interface {
	Create(image *models.Image) error
	ListByNewsID(newsID uint) ([]models.Image, error)
	// ReplaceForNews swaps all image rows of an article for the given URLs
	// in a single transaction and returns the replaced URLs.
	ReplaceForNews(newsID uint, urls []string) ([]string, error)
}

// Repositories holds all repository instances.
type Repositories struct {
	User    UserRepository
	News    NewsRepository
	Comment CommentRepository
	Image   ImageRepository
}

// NewRepositories creates a new instance of all repositories.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		News:    NewNewsRepository(db),
		Comment: NewCommentRepository(db),
		Image:   NewImageRepository(db),
	}
}
