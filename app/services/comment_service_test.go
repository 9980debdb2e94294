package services

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommentOnUnknownSlug(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice", "alice@example.com")

	_, err := env.comments.Create(CreateCommentInput{Text: "hi", NewsSlug: "no-such-slug"}, alice)
	svcErr := asServiceError(t, err)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, `News with slug "no-such-slug" was not found!`, svcErr.Message)
}

func TestCreateAndFindComment(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice", "alice@example.com")
	bob := env.seedUser(t, "bob", "bob@example.com")
	news := env.seedNews(t, alice, "Commented Article")

	comment, err := env.comments.Create(CreateCommentInput{Text: "well written", NewsSlug: news.Slug}, bob)
	require.NoError(t, err)
	assert.Equal(t, "well written", comment.Text)
	assert.Equal(t, bob.ID, comment.AuthorID)
	assert.Equal(t, news.ID, comment.NewsID)

	found, err := env.comments.FindOne(comment.ID)
	require.NoError(t, err)
	assert.Equal(t, comment.ID, found.ID)

	// The article read includes the comment with its author.
	loaded, err := env.news.FindOne(news.Slug)
	require.NoError(t, err)
	require.Len(t, loaded.Comments, 1)
	require.NotNil(t, loaded.Comments[0].Author)
	assert.Equal(t, "bob", loaded.Comments[0].Author.Username)
}

func TestFindOneUnknownComment(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.comments.FindOne(99)
	svcErr := asServiceError(t, err)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, `Comment with id "99" was not found!`, svcErr.Message)
}

func TestUpdateCommentScopedToAuthor(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice", "alice@example.com")
	bob := env.seedUser(t, "bob", "bob@example.com")
	news := env.seedNews(t, alice, "Commented Article")

	comment, err := env.comments.Create(CreateCommentInput{Text: "original", NewsSlug: news.Slug}, bob)
	require.NoError(t, err)

	_, err = env.comments.Update(comment.ID, UpdateCommentInput{Text: "forged"}, alice)
	svcErr := asServiceError(t, err)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, fmt.Sprintf("Comment with id %q was not updated! Access Denied!", fmt.Sprint(comment.ID)), svcErr.Message)

	updated, err := env.comments.Update(comment.ID, UpdateCommentInput{Text: "edited"}, bob)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)
}

func TestUpdateCommentAllowedForAdmin(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice", "alice@example.com")
	admin := env.seedAdmin(t, "root", "root@example.com")
	news := env.seedNews(t, alice, "Commented Article")

	comment, err := env.comments.Create(CreateCommentInput{Text: "original", NewsSlug: news.Slug}, alice)
	require.NoError(t, err)

	updated, err := env.comments.Update(comment.ID, UpdateCommentInput{Text: "moderated"}, admin)
	require.NoError(t, err)
	assert.Equal(t, "moderated", updated.Text)
}

func TestDeleteCommentScopedToAuthor(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice", "alice@example.com")
	bob := env.seedUser(t, "bob", "bob@example.com")
	news := env.seedNews(t, alice, "Commented Article")

	comment, err := env.comments.Create(CreateCommentInput{Text: "to be removed", NewsSlug: news.Slug}, bob)
	require.NoError(t, err)

	_, err = env.comments.Delete(comment.ID, alice)
	svcErr := asServiceError(t, err)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, fmt.Sprintf("Comment with id %q was not deleted! Access Denied!", fmt.Sprint(comment.ID)), svcErr.Message)

	res, err := env.comments.Delete(comment.ID, bob)
	require.NoError(t, err)
	assert.Equal(t, "Comment has been deleted!", res.Message)

	_, err = env.comments.FindOne(comment.ID)
	assert.Error(t, err)
}
