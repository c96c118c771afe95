package translate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crabnorway/crabsite/internal/locale"
)

func TestGoogleTranslator_JoinsSegments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "gtx", q.Get("client"))
		assert.Equal(t, "en", q.Get("sl"))
		assert.Equal(t, "ru", q.Get("tl"))
		assert.Equal(t, "t", q.Get("dt"))
		assert.Equal(t, "Hello. World", q.Get("q"))
		_, _ = w.Write([]byte(`[[["Привет. ","Hello. ",null],["Мир ","World",null]],null,"en"]`))
	}))
	defer srv.Close()

	g := NewGoogleTranslator(GoogleOptions{Endpoint: srv.URL})
	got, err := g.Translate(context.Background(), "  Hello. World ", locale.RU)
	require.NoError(t, err)
	assert.Equal(t, "Привет. Мир", got)
}

func TestGoogleTranslator_BlankInput(t *testing.T) {
	g := NewGoogleTranslator(GoogleOptions{Endpoint: "http://127.0.0.1:0"})
	got, err := g.Translate(context.Background(), "   ", locale.RU)
	require.NoError(t, err)
	assert.Equal(t, "   ", got)
}

func TestGoogleTranslator_EmptyResultReturnsInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[null]`))
	}))
	defer srv.Close()

	got, err := NewGoogleTranslator(GoogleOptions{Endpoint: srv.URL}).Translate(context.Background(), " crab ", locale.RU)
	require.NoError(t, err)
	assert.Equal(t, "crab", got)
}

func TestGoogleTranslator_StatusFailsWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewGoogleTranslator(GoogleOptions{Endpoint: srv.URL, Attempts: 3}).Translate(context.Background(), "crab", locale.RU)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStatus))
	assert.Equal(t, int32(1), calls.Load())
}

func TestGoogleTranslator_RetriesTimeouts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
			return
		}
		_, _ = w.Write([]byte(`[[["краб","crab",null]]]`))
	}))
	defer srv.Close()

	g := NewGoogleTranslator(GoogleOptions{Endpoint: srv.URL, Attempts: 3, Timeout: 50 * time.Millisecond})
	got, err := g.Translate(context.Background(), "crab", locale.RU)
	require.NoError(t, err)
	assert.Equal(t, "краб", got)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGoogleTranslator_GivesUpAfterAttempts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewGoogleTranslator(GoogleOptions{Endpoint: url, Attempts: 2}).Translate(context.Background(), "crab", locale.RU)
	assert.Error(t, err)
}

func TestJoinSegments(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`[[["a",""],["b",""]]]`, "ab"},
		{`[]`, ""},
		{`[null]`, ""},
		{`[[[null,"x"],["c"]]]`, "c"},
		{`["oops"]`, ""},
	}
	for _, tt := range tests {
		got, err := joinSegments([]byte(tt.body))
		if err != nil {
			t.Fatalf("joinSegments(%s) error: %v", tt.body, err)
		}
		if got != tt.want {
			t.Errorf("joinSegments(%s) = %q, want %q", tt.body, got, tt.want)
		}
	}

	if _, err := joinSegments([]byte(`not json`)); err == nil {
		t.Error("joinSegments(not json) expected error")
	}
}
