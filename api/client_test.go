package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velalabs/vela/domain"
	"github.com/velalabs/vela/logging"
)

func TestSearchContentRequestAndResponse(t *testing.T) {
	var gotBody searchRequestBody
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/search", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{"id": "c1", "creatorId": "cr1", "title": "Synthwave Set", "mediaType": "audio",
					"stats": map[string]int{"likes": 12}},
			},
			"hasMore": true,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok-123"), logging.Null())

	filters := domain.DefaultFilters()
	filters.MediaTypes = []domain.MediaType{domain.MediaTypeAudio}
	page, err := c.SearchContent(context.Background(), domain.SearchRequest{
		Query: "synthwave", Filters: filters, Page: 1, Limit: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "synthwave", gotBody.Query)
	assert.Equal(t, []string{"audio"}, gotBody.Filters.MediaTypes)
	assert.Equal(t, "relevance", gotBody.Filters.Sort)
	assert.Equal(t, 1, gotBody.Page)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "c1", page.Items[0].ID)
	assert.Equal(t, domain.MediaTypeAudio, page.Items[0].Media)
	assert.Equal(t, 12, page.Items[0].Stats.Likes)
	assert.True(t, page.HasMore)
}

func TestRequestWithoutTokenOmitsAuthorization(t *testing.T) {
	var gotAuth *string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := r.Header.Get("Authorization")
		gotAuth = &v
		json.NewEncoder(w).Encode(map[string]interface{}{"trending": []interface{}{}})
	}))
	defer srv.Close()

	tests := []struct {
		name   string
		tokens TokenProvider
	}{
		{name: "nil provider", tokens: nil},
		{name: "empty static token", tokens: StaticToken("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(srv.URL, tt.tokens, logging.Null())
			_, err := c.Trending(context.Background())
			require.NoError(t, err)
			assert.Empty(t, *gotAuth)
		})
	}
}

func TestFeedPassesPageAndLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/feed", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(map[string]interface{}{"feed": []interface{}{}, "hasMore": false})
	}))
	defer srv.Close()

	c := New(srv.URL, nil, logging.Null())
	page, err := c.Feed(context.Background(), 3, 20)
	require.NoError(t, err)
	assert.False(t, page.HasMore)
	assert.Empty(t, page.Items)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: domain.ErrUnauthorized},
		{name: "not found", status: http.StatusNotFound, wantErr: domain.ErrContentNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := New(srv.URL, StaticToken("tok"), logging.Null())
			_, err := c.Trending(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, nil, logging.Null())
	_, err := c.Feed(context.Background(), 1, 20)
	assert.ErrorIs(t, err, domain.ErrBackendUnreachable)
}

func TestSetFollowAndInteractBodies(t *testing.T) {
	type call struct {
		path string
		body map[string]string
	}
	var calls []call

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		calls = append(calls, call{path: r.URL.Path, body: body})
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"), logging.Null())

	require.NoError(t, c.SetFollow(context.Background(), "cr9", true))
	require.NoError(t, c.SetFollow(context.Background(), "cr9", false))
	require.NoError(t, c.Interact(context.Background(), "c5", domain.InteractShare))

	require.Len(t, calls, 3)
	assert.Equal(t, "/follow", calls[0].path)
	assert.Equal(t, map[string]string{"creatorId": "cr9", "action": "follow"}, calls[0].body)
	assert.Equal(t, map[string]string{"creatorId": "cr9", "action": "unfollow"}, calls[1].body)
	assert.Equal(t, "/content/interact", calls[2].path)
	assert.Equal(t, map[string]string{"contentId": "c5", "type": "share"}, calls[2].body)
}

func TestSuggestionsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/suggestions", r.URL.Path)
		assert.Equal(t, "syn", r.URL.Query().Get("q"))
		assert.Equal(t, "8", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(map[string]interface{}{"suggestions": []string{"synthwave", "synth pop"}})
	}))
	defer srv.Close()

	c := New(srv.URL, nil, logging.Null())
	got, err := c.Suggestions(context.Background(), "syn", 8)
	require.NoError(t, err)
	assert.Equal(t, []string{"synthwave", "synth pop"}, got)
}
