package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIdentity() BrandIdentity {
	return BrandIdentity{
		CompanyName:  "Acme Corp",
		Logo:         LogoSpec{Prompt: "a minimalist mountain peak", Style: "geometric"},
		LogoConcepts: []string{"mountain", "compass"},
		ColorPalette: []PaletteColor{
			{Hex: "#1b2a41", Name: "Deep Navy", Usage: "primary"},
			{Hex: "#d9a441", Name: "Summit Gold", Usage: "accent"},
		},
		FontPairings: FontPairings{Header: "Montserrat", Body: "Open Sans"},
		DesignSystem: DesignSystem{LayoutStyle: "minimal", TitleAlignment: "left"},
	}
}

func newTestClient(url string) *Client {
	c := NewClient(url)
	c.Backoff = time.Millisecond
	return c
}

func TestGenerateIdentity_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/v1/identity", req.URL.Path)

		var body IdentityRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, "sustainable mountain gear", body.Mission)
		assert.Equal(t, "en", body.Locale)

		json.NewEncoder(w).Encode(testIdentity())
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	identity, err := c.GenerateIdentity(context.Background(), IdentityRequest{
		Mission: "sustainable mountain gear",
		Locale:  "en",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", identity.CompanyName)
	assert.Len(t, identity.ColorPalette, 2)
	assert.Equal(t, "Montserrat", identity.FontPairings.Header)
}

func TestGenerateIdentity_RetriesTransient(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "UNAVAILABLE", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(testIdentity())
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	identity, err := c.GenerateIdentity(context.Background(), IdentityRequest{Mission: "m", Locale: "en"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", identity.CompanyName)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestGenerateIdentity_TransientBudgetExhausted(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "the model is overloaded", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	_, err := c.GenerateIdentity(context.Background(), IdentityRequest{Mission: "m", Locale: "en"})
	require.Error(t, err)

	var transient *TransientServiceError
	assert.ErrorAs(t, err, &transient)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestGenerateIdentity_PermanentNotRetried(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "invalid mission statement", http.StatusBadRequest)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	_, err := c.GenerateIdentity(context.Background(), IdentityRequest{Locale: "en"})
	require.Error(t, err)

	var permanent *PermanentServiceError
	assert.ErrorAs(t, err, &permanent)
	assert.Equal(t, http.StatusBadRequest, permanent.Status)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestGenerateIcon_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/v1/icon", req.URL.Path)

		var body iconRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, []string{"Deep Navy", "Summit Gold"}, body.Colors)

		json.NewEncoder(w).Encode(iconResponse{Image: "data:image/png;base64,aWNvbg=="})
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	icon, err := c.GenerateIcon(context.Background(), "a minimalist mountain peak",
		[]string{"Deep Navy", "Summit Gold"})
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aWNvbg==", icon)
}

func TestGenerateIcon_EmptyImageIsPermanent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(iconResponse{})
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	_, err := c.GenerateIcon(context.Background(), "something the safety filter rejects", nil)
	require.Error(t, err)

	var permanent *PermanentServiceError
	assert.ErrorAs(t, err, &permanent)
}

func TestPostJSON_ContextCancellation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "UNAVAILABLE", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	c.Backoff = time.Hour // force the retry wait onto the context path

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.GenerateIdentity(ctx, IdentityRequest{Mission: "m", Locale: "en"})
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("cancellation expected to interrupt the retry wait")
	}
}
