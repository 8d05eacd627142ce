package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"smashboard/internal/cache"
	"smashboard/internal/config"
	"smashboard/internal/database"
	"smashboard/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestApp wires the full stack against in-memory SQLite and miniredis.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(redisClient)
	t.Cleanup(func() { cache.SetClient(nil) })

	cfg := &config.Config{
		JWTSecret: "test-secret-at-least-32-characters!!",
		Env:       "test",
	}
	s := NewServerWithDeps(cfg, db, redisClient)

	app := fiber.New()
	s.SetupRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	fields := map[string]json.RawMessage{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &fields)
	}
	return resp, fields
}

func signup(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp, fields := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "SecurePass12!@",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var token string
	require.NoError(t, json.Unmarshal(fields["token"], &token))
	require.NotEmpty(t, token)
	return token
}

func TestAuthFlow(t *testing.T) {
	app := setupTestApp(t)

	token := signup(t, app, "alice")
	assert.NotEmpty(t, token)

	// Duplicate username is rejected.
	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "SecurePass12!@",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Login works with the right password.
	resp, fields := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "SecurePass12!@",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, fields, "token")

	// And fails with the wrong one.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "WrongPass12!@",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPostLifecycle(t *testing.T) {
	app := setupTestApp(t)
	token := signup(t, app, "author")

	// Creating a post requires auth.
	resp, _ := doJSON(t, app, http.MethodPost, "/api/posts", "", map[string]any{
		"title": "nope", "content": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]any{
		"title":    "Clear drills",
		"content":  "Practice **clears** daily",
		"category": "训练",
		"tags":     []string{"drills", "drills", "clears"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var post models.Post
	resp2, raw := doJSON(t, app, http.MethodGet, "/api/posts/1", "", nil)
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	b, _ := json.Marshal(raw)
	require.NoError(t, json.Unmarshal(b, &post))
	assert.Equal(t, models.CategoryTraining, post.Category)
	assert.Len(t, post.Tags, 2)
	assert.Contains(t, post.ContentHTML, "<strong>clears</strong>")
	assert.Equal(t, 1, post.ViewCount)

	// Listing shows the post with a plain-text preview.
	resp, fields := doJSON(t, app, http.MethodGet, "/api/posts", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var posts []*models.Post
	require.NoError(t, json.Unmarshal(fields["posts"], &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "Practice clears daily", posts[0].Preview)

	// Another user cannot edit it.
	otherToken := signup(t, app, "intruder")
	resp, _ = doJSON(t, app, http.MethodPut, "/api/posts/1", otherToken, map[string]any{
		"title": "mine now", "content": "x",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The author can delete it.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/posts/1", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, "/api/posts/1", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLikeAndBookmarkToggles(t *testing.T) {
	app := setupTestApp(t)
	authorToken := signup(t, app, "author")
	readerToken := signup(t, app, "reader")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/posts", authorToken, map[string]any{
		"title": "Net play", "content": "tight spinners",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, fields := doJSON(t, app, http.MethodPost, "/api/posts/1/like", readerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `true`, string(fields["liked"]))
	assert.JSONEq(t, `1`, string(fields["like_count"]))

	// Second toggle restores the original state.
	resp, fields = doJSON(t, app, http.MethodPost, "/api/posts/1/like", readerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `false`, string(fields["liked"]))
	assert.JSONEq(t, `0`, string(fields["like_count"]))

	resp, fields = doJSON(t, app, http.MethodPost, "/api/posts/1/bookmark", readerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `true`, string(fields["bookmarked"]))

	resp, fields = doJSON(t, app, http.MethodGet, "/api/me/bookmarks", readerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var posts []*models.Post
	require.NoError(t, json.Unmarshal(fields["posts"], &posts))
	assert.Len(t, posts, 1)
}

func TestCommentThreadDepthOverHTTP(t *testing.T) {
	app := setupTestApp(t)
	token := signup(t, app, "author")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]any{
		"title": "Thread", "content": "discuss",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Build root -> reply -> reply-to-reply.
	parentID := 0
	for i := 0; i < 3; i++ {
		body := map[string]any{"content": fmt.Sprintf("level %d", i)}
		if parentID > 0 {
			body["parent_id"] = parentID
		}
		resp, fields := doJSON(t, app, http.MethodPost, "/api/posts/1/comments", token, body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.NoError(t, json.Unmarshal(fields["id"], &parentID))
	}

	// A fourth level is rejected.
	resp, fields := doJSON(t, app, http.MethodPost, "/api/posts/1/comments", token, map[string]any{
		"content": "too deep", "parent_id": parentID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `"DEPTH_EXCEEDED"`, string(fields["code"]))

	resp, fields = doJSON(t, app, http.MethodGet, "/api/posts/1/comments", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var comments []*models.Comment
	require.NoError(t, json.Unmarshal(fields["comments"], &comments))
	assert.Len(t, comments, 3)
}

func TestFeedEndpoints(t *testing.T) {
	app := setupTestApp(t)
	authorToken := signup(t, app, "author")
	readerToken := signup(t, app, "reader")

	for i := 0; i < 3; i++ {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/posts", authorToken, map[string]any{
			"title":   fmt.Sprintf("Post %d", i),
			"content": "content",
			"tags":    []string{"smash"},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// Hot ranking is public.
	resp, fields := doJSON(t, app, http.MethodGet, "/api/posts/hot", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var posts []*models.Post
	require.NoError(t, json.Unmarshal(fields["posts"], &posts))
	assert.Len(t, posts, 3)

	// Anonymous recommendations equal the hot ranking.
	resp, fields = doJSON(t, app, http.MethodGet, "/api/posts/recommended", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var anon []*models.Post
	require.NoError(t, json.Unmarshal(fields["posts"], &anon))
	require.Len(t, anon, 3)
	assert.Equal(t, posts[0].ID, anon[0].ID)

	// An authenticated reader never sees their own posts; the author sees none.
	resp, fields = doJSON(t, app, http.MethodGet, "/api/posts/recommended", authorToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var own []*models.Post
	require.NoError(t, json.Unmarshal(fields["posts"], &own))
	assert.Empty(t, own)

	resp, fields = doJSON(t, app, http.MethodGet, "/api/posts/recommended", readerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var feed []*models.Post
	require.NoError(t, json.Unmarshal(fields["posts"], &feed))
	assert.Len(t, feed, 3)

	// Affinity reflects the reader's likes.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/posts/1/like", readerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, fields = doJSON(t, app, http.MethodGet, "/api/me/affinity", readerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var affinity map[string]float64
	require.NoError(t, json.Unmarshal(fields["affinity"], &affinity))
	assert.NotEmpty(t, affinity)
}

func TestFollowEndpoints(t *testing.T) {
	app := setupTestApp(t)
	aliceToken := signup(t, app, "alice")
	signup(t, app, "bob")

	// Self-follow is rejected (alice is user 1).
	resp, _ := doJSON(t, app, http.MethodPost, "/api/users/1/follow", aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, fields := doJSON(t, app, http.MethodPost, "/api/users/2/follow", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `true`, string(fields["following"]))

	resp, fields = doJSON(t, app, http.MethodDelete, "/api/users/2/follow", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `false`, string(fields["following"]))

	// Following a ghost is a 404.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/users/99/follow", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
