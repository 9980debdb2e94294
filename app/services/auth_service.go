package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"newsline/app/models"
	"newsline/app/repository"
	"newsline/internal/pkg/env"
	"newsline/internal/pkg/mail"
	"newsline/internal/pkg/token"
)

// AuthService handles registration, activation, login and password flows.
type AuthService struct {
	users  repository.UserRepository
	tokens *token.Service
	mailer mail.Mailer
}

func NewAuthService(users repository.UserRepository, tokens *token.Service, mailer mail.Mailer) *AuthService {
	return &AuthService{users: users, tokens: tokens, mailer: mailer}
}

type RegisterInput struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

type RegisterResult struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// Register persists a pending-activation user and mails the activation link.
func (s *AuthService) Register(in RegisterInput) (*RegisterResult, error) {
	user, err := models.CreateUser(in.Username, in.Email, in.Password)
	if err != nil {
		return nil, ErrBadRequest(err.Error())
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict("Email already exists!")
		}
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}

	activationToken, err := s.tokens.Issue(token.KindActivation, user.ID, user.Username, user.Email)
	if err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}

	serverHost := env.GetEnv("SERVER_HOST", "http://localhost:4000")
	clientHost := env.GetEnv("CLIENT_HOST", "http://localhost:3000")
	activationLink := fmt.Sprintf("%s/api/auth/activate/%s", serverHost, activationToken)
	err = s.mailer.Send(user.Email,
		mail.ActivationSubject(clientHost),
		mail.ActivationBody(user.Username, clientHost, activationLink))
	if err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}

	return &RegisterResult{
		Message: "We sent activation link on your email address! Please, confirm your email!",
		User:    user,
	}, nil
}

// Activate exchanges an activation token for the active state. Re-activating
// an already-active account succeeds with the same shape.
func (s *AuthService) Activate(tokenString string) (*MessageResult, error) {
	claims, err := s.tokens.Verify(tokenString, token.KindActivation)
	if err != nil {
		return nil, ErrUnauthorized(fmt.Sprintf("User with activation link token %q was not found!", tokenString))
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		return nil, ErrUnauthorized(fmt.Sprintf("User with activation link token %q was not found!", tokenString))
	}

	user.IsActivated = true
	if err := s.users.Save(user); err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}

	return &MessageResult{
		Success: true,
		Message: fmt.Sprintf("Account with email %q has been activated!", user.Email),
	}, nil
}

type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type LoginResult struct {
	AccessToken string `json:"accessToken"`
}

// Login verifies credentials and activation state and issues a session
// token. Unknown email and wrong password report the same message.
func (s *AuthService) Login(in LoginInput) (*LoginResult, error) {
	user, err := s.users.GetByEmail(in.Email)
	if err != nil || !user.CheckPassword(in.Password) {
		return nil, ErrUnauthorized("User with this credentials was not found!")
	}
	if !user.IsActivated {
		return nil, ErrUnauthorized("User with this credentials was not activated by email!")
	}

	accessToken, err := s.tokens.Issue(token.KindSession, user.ID, user.Username, user.Email)
	if err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}
	return &LoginResult{AccessToken: accessToken}, nil
}

type ForgotPasswordInput struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

// ForgotPassword mails a password-reset link. No state is mutated.
func (s *AuthService) ForgotPassword(in ForgotPasswordInput) (*MessageResult, error) {
	user, err := s.users.GetByEmail(in.Email)
	if err != nil {
		return nil, ErrNotFound("User with this email was not found!")
	}

	resetToken, err := s.tokens.Issue(token.KindPasswordReset, user.ID, user.Username, user.Email)
	if err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}

	clientHost := env.GetEnv("CLIENT_HOST", "http://localhost:3000")
	resetLink := fmt.Sprintf("%s/api/auth/forgot-password/%s", clientHost, resetToken)
	err = s.mailer.Send(user.Email,
		mail.PasswordResetSubject(clientHost),
		mail.PasswordResetBody(user.Username, clientHost, resetLink))
	if err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}

	return &MessageResult{
		Success: true,
		Message: "We sent forgot password link on your email address! Please, check your email!",
	}, nil
}

type ChangePasswordInput struct {
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

// ChangePassword re-resolves the acting identity by email before writing,
// guarding against stale identities.
func (s *AuthService) ChangePassword(actor *models.User, in ChangePasswordInput) (*MessageResult, error) {
	found, err := s.users.GetByEmail(actor.Email)
	if err != nil {
		return nil, ErrUnauthorized("User with this credentials was not found!")
	}

	hash, err := models.HashPassword(in.Password)
	if err != nil {
		return nil, ErrInternal(fmt.Sprintf("Something went wrong! %v", err))
	}

	affected, err := s.users.UpdatePasswordByEmail(found.Email, hash)
	if err != nil || affected == 0 {
		return nil, ErrInternal(fmt.Sprintf("Password for user with email %q has not been updated!", found.Email))
	}

	return &MessageResult{Success: true, Message: "User password has been updated!"}, nil
}
