// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/crabnorway/crabsite/internal/store"
	"github.com/crabnorway/crabsite/internal/testutil"
)

func testLogger() *slog.Logger { return testutil.TestLoggerSilent() }

func testStore(t *testing.T) *store.Store { return testutil.TestStore(t) }

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body %q: %v", rr.Body.String(), err)
	}
	return body
}
