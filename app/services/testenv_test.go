package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"newsline/app/models"
	"newsline/app/repository"
	"newsline/internal/pkg/database"
	"newsline/internal/pkg/token"
)

// fakeMailer records outgoing mail instead of talking to an SMTP server.
type fakeMailer struct {
	sent []sentMail
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

// fakeFileStore keeps stored and removed URLs in memory.
type fakeFileStore struct {
	stored  []string
	removed []string
}

func (f *fakeFileStore) Store(originalName string, _ []byte) (string, error) {
	url := "/uploads/" + uuid.NewString() + "-" + originalName
	f.stored = append(f.stored, url)
	return url, nil
}

func (f *fakeFileStore) Remove(url string) error {
	f.removed = append(f.removed, url)
	return nil
}

type testEnv struct {
	db     *gorm.DB
	repos  *repository.Repositories
	tokens *token.Service
	mailer *fakeMailer
	files  *fakeFileStore

	auth     *AuthService
	users    *UserService
	news     *NewsService
	comments *CommentService
}

// newTestEnv wires the full service stack onto a private in-memory database.
func newTestEnv(t *testing.T) *testEnv {
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
	mailer := &fakeMailer{}
	files := &fakeFileStore{}

	return &testEnv{
		db:       db,
		repos:    repos,
		tokens:   tokens,
		mailer:   mailer,
		files:    files,
		auth:     NewAuthService(repos.User, tokens, mailer),
		users:    NewUserService(repos.User, files),
		news:     NewNewsService(repos.News, repos.User, repos.Image, files),
		comments: NewCommentService(repos.Comment, repos.News),
	}
}

// seedUser persists an activated member ready to act.
func (e *testEnv) seedUser(t *testing.T, username, email string) *models.User {
	t.Helper()

	user, err := models.CreateUser(username, email, "password123")
	require.NoError(t, err)
	user.IsActivated = true
	require.NoError(t, e.repos.User.Create(user))
	return user
}

func (e *testEnv) seedAdmin(t *testing.T, username, email string) *models.User {
	t.Helper()

	user := e.seedUser(t, username, email)
	user.Role = models.ROLE_ADMIN
	require.NoError(t, e.repos.User.Save(user))
	return user
}

func (e *testEnv) seedNews(t *testing.T, author *models.User, title string) *models.News {
	t.Helper()

	news, err := e.news.Create(CreateNewsInput{Title: title, Body: "body of " + title}, author, nil)
	require.NoError(t, err)
	return news
}

// asServiceError unwraps the typed service failure out of an error chain.
func asServiceError(t *testing.T, err error) *Error {
	t.Helper()

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	return svcErr
}
