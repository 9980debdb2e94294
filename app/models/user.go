package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const (
	ROLE_MEMBER = "member"
	ROLE_ADMIN  = "admin"

	GENDER_MALE       = "Male"
	GENDER_FEMALE     = "Female"
	GENDER_UNSELECTED = "Unselected"
)

type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"type:varchar(150)" json:"username" validate:"required,min=3,max=150"`
	Email       string    `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,min=5,max=200"`
	Password    string    `gorm:"type:text" json:"-" validate:"required,min=6"`
	IsActivated bool      `gorm:"default:false" json:"isActivated"`
	Role        string    `gorm:"type:varchar(50);default:'member'" json:"role" validate:"oneof=member admin"`
	FirstName   string    `gorm:"type:varchar(150);default:''" json:"firstName"`
	LastName    string    `gorm:"type:varchar(150);default:''" json:"lastName"`
	PhoneNumber string    `gorm:"type:varchar(50);default:''" json:"phoneNumber"`
	Country     string    `gorm:"type:varchar(150);default:''" json:"country"`
	City        string    `gorm:"type:varchar(150);default:''" json:"city"`
	Gender      string    `gorm:"type:varchar(50);default:'Unselected'" json:"gender" validate:"oneof=Male Female Unselected"`
	Avatar      string    `gorm:"type:varchar(255);default:''" json:"avatar"`
	News        []News    `gorm:"foreignKey:AuthorID" json:"news,omitempty"`
	Comments    []Comment `gorm:"foreignKey:AuthorID" json:"comments,omitempty"`

	// Directed follow edges over user_followers(user_id, follower_id):
	// "A follows B" is stored as (user_id=B, follower_id=A).
	Followers []*User `gorm:"many2many:user_followers;joinForeignKey:UserID;joinReferences:FollowerID" json:"followers,omitempty"`
	Following []*User `gorm:"many2many:user_followers;joinForeignKey:FollowerID;joinReferences:UserID" json:"following,omitempty"`

	LikedNews []*News `gorm:"many2many:news_likes;joinForeignKey:UserID;joinReferences:NewsID" json:"likedNews,omitempty"`

	FollowersCount int64 `gorm:"-" json:"followersCount"`
	FollowingCount int64 `gorm:"-" json:"followingCount"`

	Created time.Time `gorm:"autoCreateTime" json:"created"`
	Updated time.Time `gorm:"autoUpdateTime" json:"updated"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// CreateUser builds a not-yet-activated member with a hashed password.
func CreateUser(username string, email string, password string) (*User, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username:    username,
		Email:       email,
		Password:    pw,
		Role:        ROLE_MEMBER,
		Gender:      GENDER_UNSELECTED,
		IsActivated: false,
	}

	err = u.Validate()
	if err != nil {
		return nil, err
	}

	return u, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == ROLE_ADMIN
}

// CanMutate reports whether the user may update or delete a resource
// authored by authorID: the author itself or any admin.
func (u *User) CanMutate(authorID uint) bool {
	return u.IsAdmin() || u.ID == authorID
}

func ValidGender(gender string) bool {
	switch gender {
	case GENDER_MALE, GENDER_FEMALE, GENDER_UNSELECTED:
		return true
	}
	return false
}
