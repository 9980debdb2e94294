package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsline/internal/pkg/token"
)

func TestRegisterSendsActivationMail(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.auth.Register(RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, "We sent activation link on your email address! Please, confirm your email!", res.Message)
	assert.False(t, res.User.IsActivated)

	require.Len(t, env.mailer.sent, 1)
	assert.Equal(t, "alice@example.com", env.mailer.sent[0].To)
	assert.Contains(t, env.mailer.sent[0].Body, "/api/auth/activate/")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(RegisterInput{Username: "alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = env.auth.Register(RegisterInput{Username: "other", Email: "alice@example.com", Password: "password456"})
	svcErr := asServiceError(t, err)
	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)
	assert.Equal(t, "Email already exists!", svcErr.Message)
}

func TestLoginRequiresActivation(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.auth.Register(RegisterInput{Username: "alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = env.auth.Login(LoginInput{Email: "alice@example.com", Password: "password123"})
	svcErr := asServiceError(t, err)
	assert.Equal(t, http.StatusUnauthorized, svcErr.StatusCode)
	assert.Equal(t, "User with this credentials was not activated by email!", svcErr.Message)

	activation, err := env.tokens.Issue(token.KindActivation, res.User.ID, res.User.Username, res.User.Email)
	require.NoError(t, err)
	activated, err := env.auth.Activate(activation)
	require.NoError(t, err)
	assert.True(t, activated.Success)
	assert.Equal(t, `Account with email "alice@example.com" has been activated!`, activated.Message)

	login, err := env.auth.Login(LoginInput{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	claims, err := env.tokens.Verify(login.AccessToken, token.KindSession)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
}

func TestActivateIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	user := env.seedUser(t, "alice", "alice@example.com")

	activation, err := env.tokens.Issue(token.KindActivation, user.ID, user.Username, user.Email)
	require.NoError(t, err)

	first, err := env.auth.Activate(activation)
	require.NoError(t, err)
	second, err := env.auth.Activate(activation)
	require.NoError(t, err)
	assert.Equal(t, first.Message, second.Message)
}

func TestActivateRejectsSessionToken(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "alice@example.com")

	session, err := env.tokens.Issue(token.KindSession, user.ID, user.Username, user.Email)
	require.NoError(t, err)

	_, err = env.auth.Activate(session)
	svcErr := asServiceError(t, err)
	assert.Equal(t, http.StatusUnauthorized, svcErr.StatusCode)
}

func TestLoginReportsOneMessageForUnknownAndWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", "alice@example.com")

	_, unknownErr := env.auth.Login(LoginInput{Email: "nobody@example.com", Password: "password123"})
	_, wrongErr := env.auth.Login(LoginInput{Email: "alice@example.com", Password: "wrong-password"})

	unknown := asServiceError(t, unknownErr)
	wrong := asServiceError(t, wrongErr)
	assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
	assert.Equal(t, "User with this credentials was not found!", unknown.Message)
	assert.Equal(t, unknown.Message, wrong.Message)
}

func TestForgotPassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", "alice@example.com")

	res, err := env.auth.ForgotPassword(ForgotPasswordInput{Email: "alice@example.com"})
	require.NoError(t, err)
	assert.True(t, res.Success)

	require.Len(t, env.mailer.sent, 1)
	assert.Equal(t, "alice@example.com", env.mailer.sent[0].To)
	assert.Contains(t, env.mailer.sent[0].Body, "/api/auth/forgot-password/")
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.ForgotPassword(ForgotPasswordInput{Email: "nobody@example.com"})
	svcErr := asServiceError(t, err)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, "User with this email was not found!", svcErr.Message)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "alice@example.com")

	res, err := env.auth.ChangePassword(user, ChangePasswordInput{Password: "new-password"})
	require.NoError(t, err)
	assert.Equal(t, "User password has been updated!", res.Message)

	_, err = env.auth.Login(LoginInput{Email: "alice@example.com", Password: "password123"})
	assert.Error(t, err)

	_, err = env.auth.Login(LoginInput{Email: "alice@example.com", Password: "new-password"})
	assert.NoError(t, err)
}
