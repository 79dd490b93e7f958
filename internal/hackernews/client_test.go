package hackernews

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, items map[int]string, lists map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for id, body := range items {
		body := body
		mux.HandleFunc(fmt.Sprintf("/item/%d.json", id), func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, body)
		})
	}
	for path, body := range lists {
		body := body
		mux.HandleFunc("/"+path+".json", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, body)
		})
	}
	return httptest.NewServer(mux)
}

func TestListIDsLimit(t *testing.T) {
	srv := newTestServer(t, nil, map[string]string{"topstories": "[1,2,3,4,5]"})
	defer srv.Close()

	c := NewClient(srv.URL)
	ids, err := c.ListIDs(context.Background(), "top", 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids)

	ids, err = c.ListIDs(context.Background(), "top", 0)
	require.NoError(t, err)
	assert.Len(t, ids, 5)
}

func TestListEndpointMapping(t *testing.T) {
	assert.Equal(t, "topstories", listEndpoint("top"))
	assert.Equal(t, "newstories", listEndpoint("new"))
	assert.Equal(t, "beststories", listEndpoint("best"))
	assert.Equal(t, "askstories", listEndpoint("ask"))
	assert.Equal(t, "showstories", listEndpoint("show"))
	assert.Equal(t, "jobstories", listEndpoint("jobs"))
	assert.Equal(t, "topstories", listEndpoint("bogus"))
}

func TestItemConversion(t *testing.T) {
	srv := newTestServer(t, map[int]string{
		1: `{"id":1,"type":"story","by":"alice","title":"A story","url":"https://example.com","time":1700000000,"score":42}`,
	}, nil)
	defer srv.Close()

	c := NewClient(srv.URL)
	p, err := c.Item(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "alice", p.Author)
	assert.Equal(t, "story", string(p.Category))
	assert.Equal(t, 42, p.Score)
	assert.Positive(t, p.FetchedAt)
}

func TestItemSkipsDeadAndDeleted(t *testing.T) {
	srv := newTestServer(t, map[int]string{
		1: `{"id":1,"deleted":true,"type":"story","by":"a","title":"x","time":1}`,
		2: `{"id":2,"dead":true,"type":"story","by":"a","title":"x","time":1}`,
		3: `null`,
		4: `{"id":4,"type":"story","time":1700000000}`,
	}, nil)
	defer srv.Close()

	c := NewClient(srv.URL)
	for id := 1; id <= 4; id++ {
		p, err := c.Item(context.Background(), id)
		require.NoError(t, err, "item %d", id)
		assert.Nil(t, p, "item %d", id)
	}
}

func TestItemClampsNegativeScore(t *testing.T) {
	srv := newTestServer(t, map[int]string{
		1: `{"id":1,"type":"story","by":"a","title":"t","time":1700000000,"score":-3}`,
	}, nil)
	defer srv.Close()

	c := NewClient(srv.URL)
	p, err := c.Item(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Zero(t, p.Score)
}

func TestItemsPreservesOrderAndSkipsFailures(t *testing.T) {
	srv := newTestServer(t, map[int]string{
		1: `{"id":1,"type":"story","by":"a","title":"first","time":1700000000,"score":1}`,
		2: `{"id":2,"dead":true,"type":"story","by":"a","title":"x","time":1}`,
		3: `{"id":3,"type":"story","by":"a","title":"third","time":1700000000,"score":3}`,
	}, nil)
	defer srv.Close()

	c := NewClient(srv.URL)
	posts, err := c.Items(context.Background(), []int{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, 1, posts[0].ID)
	assert.Equal(t, 3, posts[1].ID)
}

func TestGetJSONRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "[7]")
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ids, err := c.ListIDs(context.Background(), "top", 0)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, ids)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetJSONDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ListIDs(context.Background(), "top", 0)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetJSONGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ListIDs(context.Background(), "top", 0)
	require.Error(t, err)
	assert.Equal(t, int32(maxAttempts), calls.Load())
}
