package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellmag/inkwell/client"
	"github.com/inkwellmag/inkwell/session"
)

// recordingServer replies to everything with body and captures request URLs.
func recordingServer(t *testing.T, body string) (*httptest.Server, *[]string) {
	t.Helper()
	var urls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		urls = append(urls, r.URL.RequestURI())
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &urls
}

const emptyPage = `{"count": 0, "next": null, "previous": null, "results": []}`

func TestPostPaths(t *testing.T) {
	srv, urls := recordingServer(t, emptyPage)
	c := client.New(srv.URL, session.NewMemoryStore())
	ctx := context.Background()

	_, err := c.Posts.List(ctx, 2)
	require.NoError(t, err)
	_, err = c.Posts.List(ctx, 0) // clamped to the first page
	require.NoError(t, err)
	_, err = c.Posts.ByCategory(ctx, "design", 1)
	require.NoError(t, err)
	_, err = c.Posts.ByAuthor(ctx, "sarah_chen", 3)
	require.NoError(t, err)
	_, err = c.Posts.Search(ctx, "slow trains & stations", 1)
	require.NoError(t, err)
	_, err = c.Posts.Mine(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/api/v1/posts/?page=2",
		"/api/v1/posts/?page=1",
		"/api/v1/posts/category/design/?page=1",
		"/api/v1/posts/author/sarah_chen/?page=3",
		"/api/v1/posts/?search=slow+trains+%26+stations&page=1",
		"/api/v1/posts/my-posts/?page=1",
	}, *urls)
}

func TestPaginationEnvelope(t *testing.T) {
	next := "/api/v1/posts/?page=3"
	srv, _ := recordingServer(t, `{
		"count": 25,
		"next": "`+next+`",
		"previous": "/api/v1/posts/?page=1",
		"results": [
			{"id": 11, "title": "A", "slug": "a", "status": "published", "author": {"username": "alice"}},
			{"id": 12, "title": "B", "slug": "b", "status": "published", "author": {"username": "bob"}}
		]
	}`)
	c := client.New(srv.URL, session.NewMemoryStore())

	page, err := c.Posts.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 25, page.Count)
	assert.True(t, page.HasNext())
	require.NotNil(t, page.Next)
	assert.Equal(t, next, *page.Next)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "a", page.Results[0].Slug)
	assert.Equal(t, "bob", page.Results[1].Author.Username)
}

func TestGetPostEscapesSlug(t *testing.T) {
	srv, urls := recordingServer(t, `{"id": 1, "title": "x", "slug": "x", "status": "published", "author": {}}`)
	c := client.New(srv.URL, session.NewMemoryStore())

	_, err := c.Posts.Get(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/posts/hello%20world/", (*urls)[0])
}

func TestDeletePostSendsNoBodyDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := client.New(srv.URL, session.NewMemoryStore())
	// A 204 with an empty body must not trip the JSON decoder.
	require.NoError(t, c.Posts.Delete(context.Background(), "my-post"))
}

func TestCommentPaths(t *testing.T) {
	srv, urls := recordingServer(t, `[]`)
	c := client.New(srv.URL, session.NewMemoryStore())

	_, err := c.Comments.List(context.Background(), "my-post")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/posts/my-post/comments/", (*urls)[0])
}

func TestCategoryList(t *testing.T) {
	srv, _ := recordingServer(t, `[
		{"id": 1, "name": "Design", "slug": "design", "posts_count": 4},
		{"id": 2, "name": "Travel", "slug": "travel", "posts_count": 0}
	]`)
	c := client.New(srv.URL, session.NewMemoryStore())

	categories, err := c.Categories.List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "design", categories[0].Slug)
	assert.Equal(t, 4, categories[0].PostsCount)
}
