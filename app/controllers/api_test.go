package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"newsline/app/models"
	"newsline/app/repository"
	"newsline/app/services"
	"newsline/internal/pkg/database"
	"newsline/internal/pkg/router"
	"newsline/internal/pkg/token"
)

type capturingMailer struct {
	sent []string
}

func (m *capturingMailer) Send(_, _, body string) error {
	m.sent = append(m.sent, body)
	return nil
}

type nullFileStore struct{}

func (nullFileStore) Store(originalName string, _ []byte) (string, error) {
	return "/uploads/" + uuid.NewString() + "-" + originalName, nil
}

func (nullFileStore) Remove(string) error { return nil }

type testAPI struct {
	app    *fiber.App
	repos  *repository.Repositories
	tokens *token.Service
	mailer *capturingMailer
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.Migrate(db))

	repos := repository.NewRepositories(db)
	tokens := token.NewService("test-secret")
	mailer := &capturingMailer{}
	files := nullFileStore{}

	app := fiber.New()
	router.Install(app, router.Deps{
		Auth:     services.NewAuthService(repos.User, tokens, mailer),
		Users:    services.NewUserService(repos.User, files),
		News:     services.NewNewsService(repos.News, repos.User, repos.Image, files),
		Comments: services.NewCommentService(repos.Comment, repos.News),
		UserRepo: repos.User,
		Tokens:   tokens,
	})

	return &testAPI{app: app, repos: repos, tokens: tokens, mailer: mailer}
}

func (a *testAPI) request(t *testing.T, method, target, bearer string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	res, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return res
}

func decodeBody(t *testing.T, res *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	require.NoError(t, res.Body.Close())
}

// tokenFromLink pulls the path-terminal token out of a mailed link.
func tokenFromLink(t *testing.T, body, marker string) string {
	t.Helper()

	i := strings.Index(body, marker)
	require.GreaterOrEqual(t, i, 0, "mail body should carry the link")
	rest := body[i+len(marker):]
	end := strings.IndexAny(rest, `"<'`)
	require.Greater(t, end, 0)
	return rest[:end]
}

func (a *testAPI) registerAndLogin(t *testing.T, username, email string) string {
	t.Helper()

	res := a.request(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": username,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	require.NoError(t, res.Body.Close())

	activation := tokenFromLink(t, a.mailer.sent[len(a.mailer.sent)-1], "/api/auth/activate/")
	res = a.request(t, http.MethodGet, "/api/auth/activate/"+activation, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, res.Body.Close())

	res = a.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var login struct {
		AccessToken string `json:"accessToken"`
	}
	decodeBody(t, res, &login)
	require.NotEmpty(t, login.AccessToken)
	return login.AccessToken
}

func TestRegisterActivateLoginAndPublish(t *testing.T) {
	api := newTestAPI(t)

	// Login before activation is refused.
	res := api.request(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	require.NoError(t, res.Body.Close())

	res = api.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	require.NoError(t, res.Body.Close())

	activation := tokenFromLink(t, api.mailer.sent[0], "/api/auth/activate/")
	res = api.request(t, http.MethodGet, "/api/auth/activate/"+activation, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, res.Body.Close())

	res = api.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	var login struct {
		AccessToken string `json:"accessToken"`
	}
	decodeBody(t, res, &login)

	res = api.request(t, http.MethodPost, "/api/news", login.AccessToken, fiber.Map{
		"title": "First Post",
		"body":  "hello from the api",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var created models.News
	decodeBody(t, res, &created)
	assert.True(t, strings.HasPrefix(created.Slug, "first-post-"))

	// Reading the article bumps the view counter.
	res = api.request(t, http.MethodGet, "/api/news/"+created.Slug, login.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var seen models.News
	decodeBody(t, res, &seen)
	assert.Equal(t, int64(1), seen.Views)
}

func TestProtectedRoutesRejectMissingOrBadToken(t *testing.T) {
	api := newTestAPI(t)

	res := api.request(t, http.MethodPost, "/api/news", "", fiber.Map{"title": "Nope", "body": "x"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	require.NoError(t, res.Body.Close())

	res = api.request(t, http.MethodPost, "/api/news", "not-a-jwt", fiber.Map{"title": "Nope", "body": "x"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	var payload struct {
		StatusCode int    `json:"statusCode"`
		Message    string `json:"message"`
	}
	decodeBody(t, res, &payload)
	assert.Equal(t, http.StatusUnauthorized, payload.StatusCode)
	assert.Equal(t, "Invalid or expired token", payload.Message)
}

func TestRegisterValidatesBody(t *testing.T) {
	api := newTestAPI(t)

	res := api.request(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": "al",
		"email":    "not-an-email",
		"password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.NoError(t, res.Body.Close())
}

func TestUserDeleteRequiresAdmin(t *testing.T) {
	api := newTestAPI(t)

	memberToken := api.registerAndLogin(t, "alice", "alice@example.com")
	adminToken := api.registerAndLogin(t, "root", "root@example.com")

	admin, err := api.repos.User.GetByEmail("root@example.com")
	require.NoError(t, err)
	admin.Role = models.ROLE_ADMIN
	require.NoError(t, api.repos.User.Save(admin))

	victim, err := api.repos.User.GetByEmail("alice@example.com")
	require.NoError(t, err)
	target := "/api/users/" + fmtUint(victim.ID)

	res := api.request(t, http.MethodDelete, target, memberToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	var denied struct {
		Message string `json:"message"`
	}
	decodeBody(t, res, &denied)
	assert.Equal(t, "Forbidden resource", denied.Message)

	res = api.request(t, http.MethodDelete, target, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, res.Body.Close())

	res = api.request(t, http.MethodGet, target, "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	require.NoError(t, res.Body.Close())
}

func TestFollowEndpoints(t *testing.T) {
	api := newTestAPI(t)

	aliceToken := api.registerAndLogin(t, "alice", "alice@example.com")
	api.registerAndLogin(t, "bob", "bob@example.com")

	bob, err := api.repos.User.GetByEmail("bob@example.com")
	require.NoError(t, err)
	target := "/api/users/" + fmtUint(bob.ID) + "/follow"

	res := api.request(t, http.MethodPost, target, aliceToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var followed models.User
	decodeBody(t, res, &followed)
	assert.Equal(t, int64(1), followed.FollowersCount)

	res = api.request(t, http.MethodDelete, target, aliceToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var unfollowed models.User
	decodeBody(t, res, &unfollowed)
	assert.Equal(t, int64(0), unfollowed.FollowersCount)
}

func fmtUint(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
