// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"

	"github.com/crabnorway/crabsite/internal/cache"
	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/scheduler"
	"github.com/crabnorway/crabsite/internal/service"
	"github.com/crabnorway/crabsite/internal/store"
	"github.com/crabnorway/crabsite/internal/testutil"
)

// fakeCache records invalidated tags.
type fakeCache struct {
	mu   sync.Mutex
	tags []string
}

func (f *fakeCache) Invalidate(_ context.Context, tags ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tags = append(f.tags, tags...)
	return nil
}

func (f *fakeCache) Policies() cache.Policies {
	return cache.NewPolicies(cache.DefaultRevalidation())
}

func (f *fakeCache) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tags...)
}

type fakeStats struct{}

func (fakeStats) Stats() (cache.Stats, bool) {
	return cache.Stats{Backend: "memory", Hits: 3, Misses: 1}, true
}

type testAPI struct {
	t      *testing.T
	store  *store.Store
	cache  *fakeCache
	router http.Handler
	runs   int
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	st := testutil.TestStore(t)
	ta := &testAPI{t: t, store: st, cache: &fakeCache{}}
	logger := testutil.TestLoggerSilent()

	jobs := scheduler.NewRegistry(cron.New(), st, logger)
	require.NoError(t, jobs.Add("warm-cache", "Warm the content cache", "@every 10m", time.Minute, func(context.Context) error {
		ta.runs++
		return nil
	}))

	h := NewHandler(Services{
		Posts:    service.NewPostService(st, ta.cache, logger),
		Library:  service.NewLibraryService(st, ta.cache, logger),
		Globals:  service.NewGlobalService(st, ta.cache, logger),
		Contacts: service.NewContactService(st, logger),
		Events:   service.NewEventService(st.Queries),
	}, ta.cache, fakeStats{}, jobs, logger)
	ta.router = h.Routes()
	return ta
}

func (ta *testAPI) do(method, target, body string) *httptest.ResponseRecorder {
	ta.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	ta.router.ServeHTTP(rr, req)
	return rr
}

// data decodes the "data" member of a success response into v.
func data(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	require.NoError(t, json.Unmarshal(resp.Data, v))
}

func errorBody(t *testing.T, rr *httptest.ResponseRecorder) (string, map[string]string) {
	t.Helper()
	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body.Error, body.Fields
}

// seedPostRefs creates an author, a category and an image through the API.
func (ta *testAPI) seedPostRefs() (author, category, media int64) {
	t := ta.t
	t.Helper()

	rr := ta.do(http.MethodPost, "/authors", `{"authorName":"Captain Nils"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var a cms.Author
	data(t, rr, &a)

	rr = ta.do(http.MethodPost, "/categories", `{"name":{"en":"Fleet","ru":"Флот"},"slug":{"en":"fleet","ru":"flot"}}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var c map[string]int64
	data(t, rr, &c)

	rr = ta.do(http.MethodPost, "/media", `{"url":"/media/boat.jpg","alt":"Boat"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var m cms.Media
	data(t, rr, &m)

	return a.ID, c["id"], m.ID
}

func (ta *testAPI) createPost(title, status string) int64 {
	t := ta.t
	t.Helper()
	author, category, media := ta.seedPostRefs()
	body := fmt.Sprintf(`{"status":%q,"author":%d,"category":%d,"featuredImage":%d,
		"title":{"en":%q},"excerpt":{"en":"About the boat"},
		"content":{"en":[{"blockType":"markdown","text":"Hello"}]}}`, status, author, category, media, title)

	rr := ta.do(http.MethodPost, "/posts", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var p PostResponse
	data(t, rr, &p)
	return p.ID
}
