// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crabnorway/crabsite/internal/cache"
	"github.com/crabnorway/crabsite/internal/cms"
)

func TestCreatePost(t *testing.T) {
	ta := newTestAPI(t)
	id := ta.createPost("Life on Board", "published")

	rr := ta.do(http.MethodGet, fmt.Sprintf("/posts/%d", id), "")
	require.Equal(t, http.StatusOK, rr.Code)

	var p PostResponse
	data(t, rr, &p)
	assert.Equal(t, "life-on-board", p.Slug)
	assert.Equal(t, cms.PostPublished, p.Status)
	assert.NotNil(t, p.PublishedAt, "publishing stamps publishedAt")
	assert.Contains(t, ta.cache.recorded(), cache.TagBlogPosts)
}

func TestCreatePost_Invalid(t *testing.T) {
	ta := newTestAPI(t)

	rr := ta.do(http.MethodPost, "/posts", `{"title":{"en":"No relations"}}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	_, fields := errorBody(t, rr)
	assert.Contains(t, fields, "author")
	assert.Contains(t, fields, "category")

	rr = ta.do(http.MethodPost, "/posts", `{"title":`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	msg, _ := errorBody(t, rr)
	assert.Equal(t, "Invalid JSON payload.", msg)
}

func TestListPosts(t *testing.T) {
	ta := newTestAPI(t)
	ta.createPost("First", "draft")

	rr := ta.do(http.MethodGet, "/posts?locale=en&per_page=5", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var posts []cms.BlogPost
	data(t, rr, &posts)
	require.Len(t, posts, 1)
	assert.Equal(t, "First", posts[0].Title)
}

func TestGetPost_Errors(t *testing.T) {
	ta := newTestAPI(t)

	assert.Equal(t, http.StatusBadRequest, ta.do(http.MethodGet, "/posts/abc", "").Code)
	assert.Equal(t, http.StatusNotFound, ta.do(http.MethodGet, "/posts/999", "").Code)
}

func TestDeletePost_GuardedByHome(t *testing.T) {
	ta := newTestAPI(t)
	id := ta.createPost("Featured Trip", "published")

	rr := ta.do(http.MethodPut, "/globals/home", fmt.Sprintf(`{"fromTheFleet":{"firstArticle":%d}}`, id))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = ta.do(http.MethodDelete, fmt.Sprintf("/posts/%d", id), "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	msg, _ := errorBody(t, rr)
	assert.Equal(t, cms.ErrPostInFleetMessage, msg)
	assert.Equal(t, http.StatusOK, ta.do(http.MethodGet, fmt.Sprintf("/posts/%d", id), "").Code, "post must remain")

	rr = ta.do(http.MethodPut, "/globals/home", `{"fromTheFleet":{}}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	assert.Equal(t, http.StatusNoContent, ta.do(http.MethodDelete, fmt.Sprintf("/posts/%d", id), "").Code)
	assert.Equal(t, http.StatusNotFound, ta.do(http.MethodGet, fmt.Sprintf("/posts/%d", id), "").Code)
}

func TestUpdatePost(t *testing.T) {
	ta := newTestAPI(t)
	id := ta.createPost("Draft Post", "draft")

	rr := ta.do(http.MethodGet, fmt.Sprintf("/posts/%d", id), "")
	var p PostResponse
	data(t, rr, &p)
	assert.Nil(t, p.PublishedAt)

	p.Status = cms.PostPublished
	body, err := jsonString(p.BlogPostInput)
	require.NoError(t, err)

	rr = ta.do(http.MethodPut, fmt.Sprintf("/posts/%d", id), body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	data(t, rr, &p)
	assert.Equal(t, cms.PostPublished, p.Status)
	assert.NotNil(t, p.PublishedAt)
}
