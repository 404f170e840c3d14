//go:build integration

package integration

import (
	"net/http"
	"net/url"
	"testing"

	"microblog/internal/handler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBlog_CreateAndListFlow covers the canonical scenario: register,
// log in, publish a post, see it on the index.
func TestBlog_CreateAndListFlow(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Cleanup(t)

	router := handler.SetupHandler(env.DB, env.RabbitConn, env.RedisClient, env.Config)
	b := newBrowser(router)

	// Register and log in as alice
	w := b.get("/register")
	require.Equal(t, http.StatusOK, w.Code)

	w = b.postForm("/register", url.Values{
		"username": {"alice"},
		"email":    {"alice@x.com"},
		"password": {"secret1"},
	})
	require.Equal(t, http.StatusFound, w.Code)

	w = b.postForm("/login", url.Values{
		"email":    {"alice@x.com"},
		"password": {"secret1"},
	})
	require.Equal(t, http.StatusFound, w.Code)

	t.Run("CreateForm_Renders", func(t *testing.T) {
		w := b.get("/blog/create")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="title"`)
	})

	t.Run("Create_Success", func(t *testing.T) {
		w := b.postForm("/blog/create", url.Values{
			"title":   {"Hi"},
			"content": {"World"},
		})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	t.Run("Index_ListsPostWithAuthor", func(t *testing.T) {
		w := b.get("/")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Hi")
		assert.Contains(t, w.Body.String(), "by alice")
	})

	t.Run("Create_EmptyTitle_NothingPersisted", func(t *testing.T) {
		w := b.postForm("/blog/create", url.Values{
			"title":   {""},
			"content": {"Orphan"},
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Title is required")

		var count int
		require.NoError(t, env.DB.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("Unauthenticated_Create_Redirects", func(t *testing.T) {
		anon := newBrowser(router)
		w := anon.get("/blog/create")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))

		w = anon.postForm("/blog/create", url.Values{
			"title":   {"Sneaky"},
			"content": {"Post"},
		})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))

		var count int
		require.NoError(t, env.DB.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&count))
		assert.Equal(t, 1, count)
	})
}
