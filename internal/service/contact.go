// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/mileusna/useragent"

	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/locale"
	"github.com/crabnorway/crabsite/internal/store"
)

// Contact form messages shown to visitors.
const (
	MsgContactRequired   = "Full name, email, and message are required."
	MsgContactEmail      = "Invalid email address."
	MsgContactTooLong    = "Input is too long."
	MsgContactSaveFailed = "Failed to save your request. Please try again later."
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactInput is a normalized contact form submission.
type ContactInput struct {
	FullName    string        `json:"fullName"`
	Email       string        `json:"email"`
	PhoneNumber string        `json:"phoneNumber"`
	Message     string        `json:"message"`
	Locale      locale.Locale `json:"locale"`
	SourcePath  string        `json:"sourcePath"`
	Referer     string        `json:"-"`
	UserAgent   string        `json:"-"`
}

// NewContactInput reads a decoded JSON body. Values that are not strings
// count as empty, strings are trimmed, and only "en" selects English.
func NewContactInput(body map[string]any) ContactInput {
	str := func(key string) string {
		s, _ := body[key].(string)
		return strings.TrimSpace(s)
	}
	in := ContactInput{
		FullName:    str("fullName"),
		Email:       str("email"),
		PhoneNumber: str("phoneNumber"),
		Message:     str("message"),
		SourcePath:  str("sourcePath"),
		Locale:      locale.RU,
	}
	if l, _ := body["locale"].(string); l == string(locale.EN) {
		in.Locale = locale.EN
	}
	return in
}

// Validate checks the submission in order: required fields, email shape, lengths.
func (in ContactInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.FullName, validation.Required),
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Message, validation.Required),
	)
	if err != nil {
		return contactError(MsgContactRequired, err)
	}

	err = validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Match(emailPattern)),
	)
	if err != nil {
		return contactError(MsgContactEmail, err)
	}

	err = validation.ValidateStruct(&in,
		validation.Field(&in.FullName, validation.RuneLength(0, 120)),
		validation.Field(&in.Email, validation.RuneLength(0, 120)),
		validation.Field(&in.PhoneNumber, validation.RuneLength(0, 60)),
		validation.Field(&in.Message, validation.RuneLength(0, 3000)),
	)
	if err != nil {
		return contactError(MsgContactTooLong, err)
	}
	return nil
}

func contactError(msg string, err error) *cms.APIError {
	apiErr := cms.BadRequest(msg)
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		apiErr.Fields = make(map[string]string, len(verrs))
		for field, ferr := range verrs {
			apiErr.Fields[field] = ferr.Error()
		}
	}
	return apiErr
}

// ContactService stores and manages contact requests.
type ContactService struct {
	base
}

// NewContactService creates a ContactService.
func NewContactService(st *store.Store, logger *slog.Logger) *ContactService {
	return &ContactService{base: newBase(st, nil, logger)}
}

// Submit validates a visitor submission and stores it with status "new".
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (cms.ContactRequest, error) {
	if err := in.Validate(); err != nil {
		return cms.ContactRequest{}, err
	}

	req, err := s.store.CreateContactRequest(ctx, store.CreateContactRequestParams{
		Reference:   uuid.NewString(),
		FullName:    in.FullName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Message:     in.Message,
		Locale:      in.Locale,
		SourcePath:  cms.First(in.SourcePath, in.Referer),
		Client:      clientSummary(in.UserAgent),
		CreatedAt:   s.now(),
	})
	if err != nil {
		return cms.ContactRequest{}, fmt.Errorf("saving contact request: %w", err)
	}

	s.logger.Info("contact request received", "category", "contact", "reference", req.Reference, "locale", req.Locale)
	return req, nil
}

// List returns requests newest first. An empty status lists all of them.
func (s *ContactService) List(ctx context.Context, status cms.ContactStatus, limit, offset int) ([]cms.ContactRequest, error) {
	if status != "" {
		if err := cms.ValidateContactStatus(status); err != nil {
			return nil, cms.AsAPIError(err)
		}
	}
	return s.store.ListContactRequests(ctx, status, limit, offset)
}

// Get returns one request.
func (s *ContactService) Get(ctx context.Context, id int64) (cms.ContactRequest, error) {
	return s.store.GetContactRequest(ctx, id)
}

// UpdateStatus moves a request to any valid status.
func (s *ContactService) UpdateStatus(ctx context.Context, id int64, status cms.ContactStatus) (cms.ContactRequest, error) {
	if err := cms.ValidateContactStatus(status); err != nil {
		return cms.ContactRequest{}, cms.AsAPIError(err)
	}
	if err := s.store.UpdateContactRequestStatus(ctx, id, status, s.now()); err != nil {
		return cms.ContactRequest{}, err
	}
	return s.store.GetContactRequest(ctx, id)
}

// Delete removes a request.
func (s *ContactService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteContactRequest(ctx, id)
}

// clientSummary condenses a user agent into "Browser on OS (device)".
func clientSummary(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	ua := useragent.Parse(raw)

	device := "desktop"
	switch {
	case ua.Mobile:
		device = "mobile"
	case ua.Tablet:
		device = "tablet"
	case ua.Bot:
		device = "bot"
	}
	return fmt.Sprintf("%s on %s (%s)", cms.First(ua.Name, "Unknown"), cms.First(ua.OS, "Unknown"), device)
}
