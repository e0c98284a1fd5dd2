package test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSignupAndLogin(t *testing.T) {
	app, _ := newFlockTestApp(t)

	timestamp := time.Now().UnixNano()
	email := fmt.Sprintf("apitestuser_%d@example.com", timestamp)
	username := fmt.Sprintf("apitestuser_%d", timestamp%1_000_000_000)

	// Signup
	req := jsonReq(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": "TestPass123!@#",
	})
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test signup error: %v", err)
	}
	defer func() { _ = res.Body.Close() }()
	assert.Equal(t, 201, res.StatusCode)

	// Login
	req = jsonReq(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": "TestPass123!@#",
	})
	res, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test login error: %v", err)
	}
	defer func() { _ = res.Body.Close() }()
	assert.Equal(t, 200, res.StatusCode)

	// Wrong password
	req = jsonReq(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": "WrongPass123!@#",
	})
	res, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test bad login error: %v", err)
	}
	defer func() { _ = res.Body.Close() }()
	assert.Equal(t, 401, res.StatusCode)
}

func TestFullAPIFlow(t *testing.T) {
	app, _ := newFlockTestApp(t)

	author := signupFlockUser(t, app, "flow_author")
	reader := signupFlockUser(t, app, "flow_reader")

	var postID uint

	// Create a post
	t.Run("CreatePost", func(t *testing.T) {
		req := authReq(t, http.MethodPost, "/api/posts/", author.Token, map[string]string{
			"title":   "Flow Post",
			"content": "Hello timeline",
		})
		res, err := app.Test(req, -1)
		assert.NoError(t, err)
		defer func() { _ = res.Body.Close() }()
		assert.Equal(t, 201, res.StatusCode)

		var post struct {
			ID     uint `json:"id"`
			UserID uint `json:"user_id"`
		}
		assert.NoError(t, json.NewDecoder(res.Body).Decode(&post))
		assert.Equal(t, author.ID, post.UserID)
		postID = post.ID
	})

	// Anonymous feed read sees the post
	t.Run("PublicFeed", func(t *testing.T) {
		req := jsonReq(t, http.MethodGet, "/api/posts/?limit=10", nil)
		res, err := app.Test(req, -1)
		assert.NoError(t, err)
		defer func() { _ = res.Body.Close() }()
		assert.Equal(t, 200, res.StatusCode)

		var posts []struct {
			ID uint `json:"id"`
		}
		assert.NoError(t, json.NewDecoder(res.Body).Decode(&posts))
		assert.Len(t, posts, 1)
	})

	// Reader comments on it
	t.Run("Comment", func(t *testing.T) {
		path := fmt.Sprintf("/api/posts/%d/comments", postID)
		req := authReq(t, http.MethodPost, path, reader.Token, map[string]string{
			"content": "First!",
		})
		res, err := app.Test(req, -1)
		assert.NoError(t, err)
		defer func() { _ = res.Body.Close() }()
		assert.Equal(t, 201, res.StatusCode)

		listReq := jsonReq(t, http.MethodGet, path, nil)
		listRes, err := app.Test(listReq, -1)
		assert.NoError(t, err)
		defer func() { _ = listRes.Body.Close() }()
		assert.Equal(t, 200, listRes.StatusCode)

		var comments []struct {
			Content string `json:"content"`
		}
		assert.NoError(t, json.NewDecoder(listRes.Body).Decode(&comments))
		assert.Len(t, comments, 1)
		assert.Equal(t, "First!", comments[0].Content)
	})

	// Reader likes the post, then unlikes it
	t.Run("LikeToggle", func(t *testing.T) {
		path := fmt.Sprintf("/api/posts/%d/like", postID)

		req := authReq(t, http.MethodPost, path, reader.Token, nil)
		res, err := app.Test(req, -1)
		assert.NoError(t, err)
		defer func() { _ = res.Body.Close() }()
		assert.Equal(t, 200, res.StatusCode)

		var liked struct {
			LikesCount int  `json:"likes_count"`
			Liked      bool `json:"liked"`
		}
		assert.NoError(t, json.NewDecoder(res.Body).Decode(&liked))
		assert.True(t, liked.Liked)
		assert.Equal(t, 1, liked.LikesCount)

		req = authReq(t, http.MethodPost, path, reader.Token, nil)
		res, err = app.Test(req, -1)
		assert.NoError(t, err)
		defer func() { _ = res.Body.Close() }()
		assert.Equal(t, 200, res.StatusCode)

		var unliked struct {
			LikesCount int  `json:"likes_count"`
			Liked      bool `json:"liked"`
		}
		assert.NoError(t, json.NewDecoder(res.Body).Decode(&unliked))
		assert.False(t, unliked.Liked)
		assert.Equal(t, 0, unliked.LikesCount)
	})

	// Reader cannot edit the author's post
	t.Run("ForeignUpdateForbidden", func(t *testing.T) {
		req := authReq(t, http.MethodPut, "/api/posts/"+itoa(postID), reader.Token, map[string]string{
			"title":   "hijacked",
			"content": "hijacked",
		})
		res, err := app.Test(req, -1)
		assert.NoError(t, err)
		defer func() { _ = res.Body.Close() }()
		assert.Equal(t, 403, res.StatusCode)
	})
}
