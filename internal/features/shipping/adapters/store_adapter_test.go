package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"arobisca-checkout/internal/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStoreShippingAdapter_List_Success verifies fetching and mapping the fee table.
func TestStoreShippingAdapter_List_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shipping-fees", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"id": "sm-1",
				"destination": "Nairobi CBD",
				"pickupStation": "Kimathi Street",
				"distanceKm": 2.5,
				"amount": 200,
				"deliveryTime": "Same day",
				"codAvailable": true
			},
			{
				"id": "sm-2",
				"destination": "Mombasa",
				"pickupStation": "Nyali",
				"distanceKm": 485,
				"amount": 450,
				"deliveryTime": "2-3 days",
				"codAvailable": false
			}
		]`))
	}))
	defer ts.Close()

	adapter := NewStoreShippingAdapter(config.StoreConfig{URL: ts.URL, TimeoutSeconds: 2})

	methods, err := adapter.List(context.Background())
	require.NoError(t, err)
	require.Len(t, methods, 2)

	assert.Equal(t, "sm-1", methods[0].ID)
	assert.Equal(t, "Nairobi CBD", methods[0].Destination)
	assert.Equal(t, 200.0, methods[0].Amount)
	assert.True(t, methods[0].CODAvailable)
	assert.False(t, methods[1].CODAvailable)
}

// TestStoreShippingAdapter_List_RemoteError verifies non-200 handling.
func TestStoreShippingAdapter_List_RemoteError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	adapter := NewStoreShippingAdapter(config.StoreConfig{URL: ts.URL, TimeoutSeconds: 2})

	methods, err := adapter.List(context.Background())
	assert.Nil(t, methods)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch shipping fees")
}
