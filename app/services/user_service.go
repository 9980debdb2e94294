package services

import (
	"fmt"

	"newsline/app/models"
	"newsline/app/repository"
	"newsline/internal/pkg/storage"
)

// UserService covers the user directory, profile updates and the follow
// graph.
type UserService struct {
	users repository.UserRepository
	files storage.FileStore
}

func NewUserService(users repository.UserRepository, files storage.FileStore) *UserService {
	return &UserService{users: users, files: files}
}

func (s *UserService) FindAll() ([]models.User, error) {
	users, err := s.users.List()
	if err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}
	return users, nil
}

type SearchUsersInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Search requires at least one criterion.
func (s *UserService) Search(in SearchUsersInput) ([]models.User, error) {
	if in.Username == "" && in.Email == "" {
		return nil, ErrNotFound("Search fields should not be empty!")
	}
	users, err := s.users.Search(in.Username, in.Email)
	if err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}
	return users, nil
}

// FindOne returns the public view of a user with news, comments and both
// follow edge sets.
func (s *UserService) FindOne(id uint) (*models.User, error) {
	user, err := s.users.GetWithRelations(id)
	if err != nil {
		return nil, ErrNotFound(fmt.Sprintf("User with id %q was not found!", fmt.Sprint(id)))
	}
	return user, nil
}

// Profile is the self view: authored news and comments only.
func (s *UserService) Profile(actor *models.User) (*models.User, error) {
	profile, err := s.users.GetProfile(actor.ID)
	if err != nil {
		return nil, ErrNotFound(fmt.Sprintf("User with id %q was not found!", fmt.Sprint(actor.ID)))
	}
	return profile, nil
}

// UpdateProfileInput is a coalescing patch: nil fields keep their current
// values.
type UpdateProfileInput struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	Country     *string `json:"country"`
	City        *string `json:"city"`
	Gender      *string `json:"gender"`
}

// UpdateProfile applies the patch against a freshly loaded snapshot and
// optionally replaces the avatar file.
func (s *UserService) UpdateProfile(actor *models.User, in UpdateProfileInput, avatar *Upload) (*models.User, error) {
	profile, err := s.users.GetByID(actor.ID)
	if err != nil {
		return nil, ErrNotFound(fmt.Sprintf("User with id %q was not found!", fmt.Sprint(actor.ID)))
	}

	if in.Gender != nil && !models.ValidGender(*in.Gender) {
		return nil, ErrConflict("Gender should be only Male, Female and Unselected!")
	}

	avatarURL := profile.Avatar
	if avatar != nil {
		if profile.Avatar != "" {
			// Best effort; a missing old file must not block the update.
			_ = s.files.Remove(profile.Avatar)
		}
		avatarURL, err = s.files.Store(avatar.Name, avatar.Data)
		if err != nil {
			return nil, ErrInternal("Something went wrong!")
		}
	}

	fields := map[string]interface{}{
		"first_name":   coalesce(in.FirstName, profile.FirstName),
		"last_name":    coalesce(in.LastName, profile.LastName),
		"phone_number": coalesce(in.PhoneNumber, profile.PhoneNumber),
		"country":      coalesce(in.Country, profile.Country),
		"city":         coalesce(in.City, profile.City),
		"gender":       coalesce(in.Gender, profile.Gender),
		"avatar":       avatarURL,
	}

	affected, err := s.users.UpdateFields(actor.ID, fields)
	if err != nil {
		return nil, ErrInternal("Something went wrong!")
	}
	if affected == 0 {
		return nil, ErrNotFound(fmt.Sprintf("User with id %q has not been updated!", fmt.Sprint(actor.ID)))
	}

	return s.FindOne(actor.ID)
}

// Delete removes a user; owned news and comments go with it through the
// storage layer's cascade rule.
func (s *UserService) Delete(id uint) (*MessageResult, error) {
	affected, err := s.users.Delete(id)
	if err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}
	if affected == 0 {
		return nil, ErrNotFound(fmt.Sprintf("User with id %d was not deleted!", id))
	}
	return &MessageResult{Success: true, Message: "User has been deleted!"}, nil
}

// Follow appends the acting user to the target's follower set.
func (s *UserService) Follow(actor *models.User, targetID uint) (*models.User, error) {
	target, err := s.users.GetWithFollowers(targetID)
	if err != nil {
		return nil, ErrNotFound(fmt.Sprintf("User with this id %d was not found! Follow failed!", targetID))
	}
	if target.ID == actor.ID {
		return nil, ErrBadRequest("A user cannot subscribe to himself!")
	}

	if err := s.users.AddFollower(target, actor); err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}
	return s.FindOne(targetID)
}

// Unfollow removes the edge; removing a missing edge succeeds.
func (s *UserService) Unfollow(actor *models.User, targetID uint) (*models.User, error) {
	target, err := s.users.GetWithFollowers(targetID)
	if err != nil {
		return nil, ErrNotFound(fmt.Sprintf("User with this id %d was not found! Unfollow failed!", targetID))
	}

	if err := s.users.RemoveFollower(target, actor.ID); err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}
	return s.FindOne(targetID)
}

func coalesce(patch *string, current string) string {
	if patch != nil {
		return *patch
	}
	return current
}
