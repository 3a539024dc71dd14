package client_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellmag/inkwell/client"
	"github.com/inkwellmag/inkwell/internal/mockapi"
	"github.com/inkwellmag/inkwell/session"
)

// TestFullEditorialFlow drives the SDK end to end against the in-process
// API double: register, write, publish, read, comment, sign out.
func TestFullEditorialFlow(t *testing.T) {
	api := mockapi.New()
	srv := httptest.NewServer(api.Handler())
	defer srv.Close()

	design := api.AddCategory("Design")
	ctx := context.Background()

	authorStore := session.NewMemoryStore()
	author := client.New(srv.URL, authorStore)

	profile, err := author.Auth.Register(ctx, client.RegisterParams{
		Username:        "sarah_chen",
		Email:           "sarah@example.com",
		Password:        "hunter2!",
		ConfirmPassword: "hunter2!",
		FirstName:       "Sarah",
		LastName:        "Chen",
		IsAuthor:        true,
	})
	require.NoError(t, err)
	assert.True(t, profile.IsAuthor)
	assert.True(t, author.Auth.IsAuthenticated())

	draft, err := author.Posts.Create(ctx, client.CreatePostParams{
		Title:      "On Margins and Whitespace",
		Content:    "Print taught the web everything it knows about breathing room.",
		CategoryID: design.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, client.StatusDraft, draft.Status)
	assert.Equal(t, "on-margins-and-whitespace", draft.Slug)
	assert.Equal(t, "sarah_chen", draft.Author.Username)

	// Anonymous readers never see drafts.
	reader := client.New(srv.URL, session.NewMemoryStore())
	page, err := reader.Posts.List(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, page.Count)

	_, err = reader.Posts.Get(ctx, draft.Slug)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)

	// The author sees their own draft, both directly and under my-posts.
	got, err := author.Posts.Get(ctx, draft.Slug)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)

	mine, err := author.Posts.Mine(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, mine.Count)
	assert.Equal(t, client.StatusDraft, mine.Results[0].Status)

	// Publishing makes it public.
	published, err := author.Posts.Update(ctx, draft.Slug, client.UpdatePostParams{
		Status: client.StatusPublished,
	})
	require.NoError(t, err)
	assert.Equal(t, client.StatusPublished, published.Status)

	page, err = reader.Posts.List(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, page.Count)

	byCategory, err := reader.Posts.ByCategory(ctx, design.Slug, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, byCategory.Count)

	found, err := reader.Posts.Search(ctx, "whitespace", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, found.Count)

	categories, err := reader.Categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, 1, categories[0].PostsCount)

	// A signed-in reader can comment; commenting anonymously cannot.
	_, err = reader.Comments.Create(ctx, published.Slug, "Lovely piece.")
	require.Error(t, err)

	_, err = reader.Auth.Register(ctx, client.RegisterParams{
		Username:        "quiet_reader",
		Email:           "reader@example.com",
		Password:        "demo123",
		ConfirmPassword: "demo123",
	})
	require.NoError(t, err)

	comment, err := reader.Comments.Create(ctx, published.Slug, "Lovely piece.")
	require.NoError(t, err)
	assert.Equal(t, "quiet_reader", comment.Author.Username)

	comments, err := author.Comments.List(ctx, published.Slug)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	// Only the comment's author may delete it.
	err = author.Comments.Delete(ctx, published.Slug, comment.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)

	require.NoError(t, reader.Comments.Delete(ctx, published.Slug, comment.ID))

	// Signing out clears the local session even though the server is fine.
	author.Auth.Logout(ctx)
	assert.False(t, author.Auth.IsAuthenticated())
	assert.Nil(t, author.Auth.CurrentUser())
}

func TestLoginAgainstMockAPI(t *testing.T) {
	api := mockapi.New()
	api.AddUser("marcus_wright", "marcus@example.com", "brutalism", true)
	srv := httptest.NewServer(api.Handler())
	defer srv.Close()

	store := session.NewMemoryStore()
	c := client.New(srv.URL, store)
	ctx := context.Background()

	_, err := c.Auth.Login(ctx, "marcus_wright", "wrong")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	assert.False(t, store.Read().Authenticated(), "failed login must not leave a session")

	profile, err := c.Auth.Login(ctx, "marcus_wright", "brutalism")
	require.NoError(t, err)
	assert.Equal(t, "marcus_wright", profile.Username)

	s := store.Read()
	assert.NotEmpty(t, s.AccessToken)
	assert.NotEmpty(t, s.RefreshToken)
	require.NotNil(t, s.User)
	assert.Equal(t, "marcus_wright", s.User.Username)
}

func TestRefreshAndRevocation(t *testing.T) {
	api := mockapi.New()
	api.AddUser("elena", "elena@example.com", "tidepools", false)
	srv := httptest.NewServer(api.Handler())
	defer srv.Close()

	store := session.NewMemoryStore()
	c := client.New(srv.URL, store)
	ctx := context.Background()

	_, err := c.Auth.Login(ctx, "elena", "tidepools")
	require.NoError(t, err)
	first := store.Read()

	require.NoError(t, c.Auth.Refresh(ctx))
	second := store.Read()
	assert.NotEqual(t, first.AccessToken, second.AccessToken)
	assert.Equal(t, first.RefreshToken, second.RefreshToken)

	// Expiring the access token server-side invalidates the session on the
	// next authenticated call and notifies observers exactly once.
	var notified int
	c.Auth.OnSessionInvalidated(func() { notified++ })

	api.RevokeAccessToken(second.AccessToken)
	_, err = c.Auth.Profile(ctx)
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))
	assert.Equal(t, 1, notified)
	assert.False(t, store.Read().Authenticated())

	// After server logout the refresh token is blacklisted.
	_, err = c.Auth.Login(ctx, "elena", "tidepools")
	require.NoError(t, err)
	refresh := store.Read().RefreshToken
	c.Auth.Logout(ctx)

	store.Write(session.Update{RefreshToken: session.String(refresh)})
	err = c.Auth.Refresh(ctx)
	require.Error(t, err)
}

func TestMockAPIPagination(t *testing.T) {
	api := mockapi.New()
	api.AddUser("prolific", "p@example.com", "writewrite", true)
	cat := api.AddCategory("Essays")
	srv := httptest.NewServer(api.Handler())
	defer srv.Close()

	c := client.New(srv.URL, session.NewMemoryStore())
	ctx := context.Background()

	_, err := c.Auth.Login(ctx, "prolific", "writewrite")
	require.NoError(t, err)

	for i := 1; i <= 12; i++ {
		_, err := c.Posts.Create(ctx, client.CreatePostParams{
			Title:      fmt.Sprintf("Essay %d", i),
			Content:    "body",
			CategoryID: cat.ID,
			Status:     client.StatusPublished,
		})
		require.NoError(t, err)
	}

	page1, err := c.Posts.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 12, page1.Count)
	assert.Len(t, page1.Results, 10)
	assert.True(t, page1.HasNext())
	assert.Nil(t, page1.Previous)

	page2, err := c.Posts.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, page2.Results, 2)
	assert.False(t, page2.HasNext())
	require.NotNil(t, page2.Previous)

	// Pages past the end are the DRF invalid-page 404.
	_, err = c.Posts.List(ctx, 3)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "Invalid page.", apiErr.Message)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	api := mockapi.New()
	api.AddUser("taken", "taken@example.com", "whatever1", false)
	srv := httptest.NewServer(api.Handler())
	defer srv.Close()

	c := client.New(srv.URL, session.NewMemoryStore())

	_, err := c.Auth.Register(context.Background(), client.RegisterParams{
		Username:        "taken",
		Email:           "other@example.com",
		Password:        "whatever1",
		ConfirmPassword: "whatever1",
	})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Contains(t, apiErr.Message, "username: A user with that username already exists.")
}
