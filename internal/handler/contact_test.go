// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/locale"
	"github.com/crabnorway/crabsite/internal/middleware"
	"github.com/crabnorway/crabsite/internal/service"
)

func postContact(h http.Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact-requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestContactCreate(t *testing.T) {
	st := testStore(t)
	h := http.HandlerFunc(NewContactHandler(service.NewContactService(st, testLogger()), testLogger()).Create)

	tests := []struct {
		name      string
		body      string
		wantCode  int
		wantError string
	}{
		{"invalid json", `{"fullName":`, http.StatusBadRequest, MsgInvalidJSON},
		{"array body", `["x"]`, http.StatusBadRequest, MsgInvalidJSON},
		{"missing message", `{"fullName":"Ola","email":"ola@example.com"}`, http.StatusBadRequest, service.MsgContactRequired},
		{"non-string name", `{"fullName":42,"email":"ola@example.com","message":"hi"}`, http.StatusBadRequest, service.MsgContactRequired},
		{"bad email", `{"fullName":"Ola","email":"ola@example","message":"hi"}`, http.StatusBadRequest, service.MsgContactEmail},
		{"too long", `{"fullName":"Ola","email":"ola@example.com","message":"` + strings.Repeat("x", 3001) + `"}`, http.StatusBadRequest, service.MsgContactTooLong},
		{"valid", `{"fullName":" Ola Nordmann ","email":"ola@example.com","message":"Book a trip","locale":"en"}`, http.StatusCreated, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postContact(h, tt.body, nil)
			if rr.Code != tt.wantCode {
				t.Fatalf("Status = %d, want %d (body %s)", rr.Code, tt.wantCode, rr.Body.String())
			}
			if tt.wantError == "" {
				if got := strings.TrimSpace(rr.Body.String()); got != `{"success":true}` {
					t.Errorf("Body = %q, want success", got)
				}
				return
			}
			if got := decodeError(t, rr).Error; got != tt.wantError {
				t.Errorf("error = %q, want %q", got, tt.wantError)
			}
		})
	}

	reqs, err := st.ListContactRequests(context.Background(), "", 10, 0)
	if err != nil {
		t.Fatalf("ListContactRequests: %v", err)
	}
	if len(reqs) != 1 {
		t.Fatalf("stored %d requests, want 1", len(reqs))
	}
	if reqs[0].FullName != "Ola Nordmann" || reqs[0].Locale != locale.EN || reqs[0].Status != cms.ContactNew {
		t.Errorf("stored request = %+v", reqs[0])
	}
}

func TestContactCreate_RefererFallback(t *testing.T) {
	st := testStore(t)
	h := http.HandlerFunc(NewContactHandler(service.NewContactService(st, testLogger()), testLogger()).Create)

	rr := postContact(h, `{"fullName":"Kari","email":"kari@example.com","message":"Hei"}`, map[string]string{
		"Referer":    "https://crabnorway.com/contact",
		"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("Status = %d, want %d", rr.Code, http.StatusCreated)
	}

	reqs, err := st.ListContactRequests(context.Background(), "", 10, 0)
	if err != nil || len(reqs) != 1 {
		t.Fatalf("ListContactRequests = %d, %v", len(reqs), err)
	}
	if reqs[0].SourcePath != "https://crabnorway.com/contact" {
		t.Errorf("SourcePath = %q, want referer", reqs[0].SourcePath)
	}
	if reqs[0].Locale != locale.RU {
		t.Errorf("Locale = %q, want ru", reqs[0].Locale)
	}
}

type failingSubmitter struct{}

func (failingSubmitter) Submit(context.Context, service.ContactInput) (cms.ContactRequest, error) {
	return cms.ContactRequest{}, errors.New("database is locked")
}

func TestContactCreate_StoreFailure(t *testing.T) {
	h := http.HandlerFunc(NewContactHandler(failingSubmitter{}, testLogger()).Create)

	rr := postContact(h, `{"fullName":"Ola","email":"ola@example.com","message":"hi"}`, nil)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if got := decodeError(t, rr).Error; got != service.MsgContactSaveFailed {
		t.Errorf("error = %q, want %q", got, service.MsgContactSaveFailed)
	}
}

func TestContactCreate_FieldDetails(t *testing.T) {
	h := http.HandlerFunc(NewContactHandler(service.NewContactService(testStore(t), testLogger()), testLogger()).Create)

	rr := postContact(h, `{"fullName":"Ola","email":"not-an-email","message":"hi"}`, nil)
	body := decodeError(t, rr)
	if _, ok := body.Fields["email"]; !ok {
		t.Errorf("Fields = %v, want an email entry", body.Fields)
	}
}

func TestContactCreate_BodyTooLarge(t *testing.T) {
	h := http.HandlerFunc(NewContactHandler(failingSubmitter{}, testLogger()).Create)

	rr := postContact(h, `{"message":"`+strings.Repeat("x", MaxContactBodyBytes)+`"}`, nil)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestContactCreate_RateLimited(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.01, 1, testLogger())
	h := limiter.Middleware(http.HandlerFunc(NewContactHandler(service.NewContactService(testStore(t), testLogger()), testLogger()).Create))

	body := `{"fullName":"Ola","email":"ola@example.com","message":"hi"}`
	if rr := postContact(h, body, nil); rr.Code != http.StatusCreated {
		t.Fatalf("first Status = %d, want %d", rr.Code, http.StatusCreated)
	}
	rr := postContact(h, body, nil)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("second Status = %d, want %d", rr.Code, http.StatusTooManyRequests)
	}
	if got := decodeError(t, rr).Error; got != middleware.RateLimitMessage {
		t.Errorf("error = %q, want %q", got, middleware.RateLimitMessage)
	}
}
