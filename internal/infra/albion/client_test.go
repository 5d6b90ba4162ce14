package albion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/NasaVasa/pricewatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFetchQuotesSingleRequest(t *testing.T) {
	var requests atomic.Int32
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"item_id":"T4_BAG","city":"Caerleon","quality":2,"sell_price_min":150,"sell_price_max":300,"buy_price_min":0,"buy_price_max":0},
			{"item_id":"T5_CAPE@1","city":"Lymhurst","quality":1,"sell_price_min":0,"sell_price_max":0}
		]`))
	}))
	defer server.Close()

	client := NewPriceClient(server.URL+"/api/v2/stats/", time.Second, zap.NewNop())
	quotes, err := client.FetchQuotes(context.Background(), []string{"T4_BAG", "T5_CAPE@1"})
	require.NoError(t, err)

	assert.EqualValues(t, 1, requests.Load())
	assert.Equal(t, "/api/v2/stats/prices/T4_BAG,T5_CAPE@1", gotPath)
	require.Len(t, quotes, 2)
	assert.Equal(t, "T4_BAG", quotes[0].ItemID)
	assert.Equal(t, domain.QualityGood, quotes[0].Quality)
	assert.Equal(t, "Caerleon", quotes[0].City)
	assert.Equal(t, "150", quotes[0].SellPriceMin.String())
	assert.Equal(t, "300", quotes[0].SellPriceMax.String())
	assert.False(t, quotes[1].Meaningful())
}

func TestFetchQuotesEmptySetSkipsRequest(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	client := NewPriceClient(server.URL, time.Second, zap.NewNop())
	quotes, err := client.FetchQuotes(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, quotes)
	assert.Zero(t, requests.Load())
}

func TestFetchQuotesErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "unparseable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>maintenance</html>"))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			client := NewPriceClient(server.URL, time.Second, zap.NewNop())
			quotes, err := client.FetchQuotes(context.Background(), []string{"T4_BAG"})
			require.Error(t, err)
			assert.Nil(t, quotes)
		})
	}
}

func TestFetchQuotesNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewPriceClient(url, time.Second, zap.NewNop())
	_, err := client.FetchQuotes(context.Background(), []string{"T4_BAG"})
	require.Error(t, err)
}
