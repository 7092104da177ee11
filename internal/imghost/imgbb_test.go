package imghost

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *[]time.Duration) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "test-key")
	client.initialDelay = 10 * time.Millisecond

	var delays []time.Duration
	client.sleep = func(d time.Duration) { delays = append(delays, d) }

	return client, &delays
}

func TestUploadSuccess(t *testing.T) {
	client, delays := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "test-key", r.FormValue("key"))
		assert.NotEmpty(t, r.FormValue("image"))
		fmt.Fprint(w, `{"success": true, "data": {"url": "https://i.ibb.co/abc/img.jpg"}}`)
	})

	url, err := client.Upload(context.Background(), []byte("image-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "https://i.ibb.co/abc/img.jpg", url)
	assert.Empty(t, *delays)
}

func TestUploadRetriesOn504(t *testing.T) {
	var calls int
	client, delays := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= 2 {
			w.WriteHeader(http.StatusGatewayTimeout)
			return
		}
		fmt.Fprint(w, `{"success": true, "data": {"url": "https://i.ibb.co/abc/img.jpg"}}`)
	})

	url, err := client.Upload(context.Background(), []byte("image-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "https://i.ibb.co/abc/img.jpg", url)
	assert.Equal(t, 3, calls)

	// Backoff doubles after every retry.
	require.Len(t, *delays, 2)
	assert.GreaterOrEqual(t, (*delays)[1], 2*(*delays)[0])
}

func TestUploadExhaustsRetries(t *testing.T) {
	var calls int
	client, delays := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusGatewayTimeout)
	})

	_, err := client.Upload(context.Background(), []byte("image-bytes"))

	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Equal(t, 4, calls) // initial attempt + 3 retries

	require.Len(t, *delays, 3)
	for i := 1; i < len(*delays); i++ {
		assert.GreaterOrEqual(t, (*delays)[i], 2*(*delays)[i-1])
	}
}

func TestUploadDoesNotRetryOtherErrors(t *testing.T) {
	var calls int
	client, delays := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := client.Upload(context.Background(), []byte("image-bytes"))

	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Equal(t, 1, calls)
	assert.Empty(t, *delays)
}

func TestUploadHostReportsFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": false}`)
	})

	_, err := client.Upload(context.Background(), []byte("image-bytes"))

	assert.ErrorIs(t, err, ErrUploadFailed)
}
