package repository

import (
	"strings"

	"gorm.io/gorm"

	"newsline/app/models"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetWithRelations loads the full public view of a user.
func (r *userRepository) GetWithRelations(id uint) (*models.User, error) {
	var user models.User
	err := r.db.
		Preload("News").
		Preload("Comments").
		Preload("Followers").
		Preload("Following").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	r.fillEdgeCounts(&user)
	return &user, nil
}

// GetProfile loads the self view: authored news and comments only.
func (r *userRepository) GetProfile(id uint) (*models.User, error) {
	var user models.User
	err := r.db.
		Preload("News").
		Preload("Comments").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	r.fillEdgeCounts(&user)
	return &user, nil
}

func (r *userRepository) GetWithFollowers(id uint) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Followers").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetWithFollowingNews(id uint) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Following.News").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List() ([]models.User, error) {
	var users []models.User
	err := r.db.Find(&users).Error
	return users, err
}

// Search matches users by case-insensitive substring on username or email.
func (r *userRepository) Search(username, email string) ([]models.User, error) {
	var users []models.User
	q := r.db.Model(&models.User{})

	switch {
	case username != "" && email != "":
		q = q.Where("lower(username) LIKE ? OR lower(email) LIKE ?",
			pattern(username), pattern(email))
	case username != "":
		q = q.Where("lower(username) LIKE ?", pattern(username))
	case email != "":
		q = q.Where("lower(email) LIKE ?", pattern(email))
	}

	err := q.Find(&users).Error
	return users, err
}

func (r *userRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) UpdateFields(id uint, fields map[string]interface{}) (int64, error) {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *userRepository) UpdatePasswordByEmail(email, passwordHash string) (int64, error) {
	res := r.db.Model(&models.User{}).Where("email = ?", email).
		Update("password", passwordHash)
	return res.RowsAffected, res.Error
}

func (r *userRepository) Delete(id uint) (int64, error) {
	res := r.db.Delete(&models.User{}, id)
	return res.RowsAffected, res.Error
}

// AddFollower appends a directed follow edge. The composite primary key of
// the join table keeps the edge set free of duplicates.
func (r *userRepository) AddFollower(target *models.User, follower *models.User) error {
	return r.db.Model(target).Association("Followers").Append(follower)
}

// RemoveFollower drops the directed edge; removing a missing edge is a no-op.
func (r *userRepository) RemoveFollower(target *models.User, followerID uint) error {
	return r.db.Model(target).Association("Followers").Delete(&models.User{ID: followerID})
}

func (r *userRepository) fillEdgeCounts(user *models.User) {
	user.FollowersCount = r.db.Model(user).Association("Followers").Count()
	user.FollowingCount = r.db.Model(user).Association("Following").Count()
}

func pattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
