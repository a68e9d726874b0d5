package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchPrice(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   float64
	}{
		{name: "ok", status: http.StatusOK, body: `{"ripple":{"usd":0.52}}`, want: 0.52},
		{name: "server error", status: http.StatusInternalServerError, body: `{}`, want: 0},
		{name: "rate limited", status: http.StatusTooManyRequests, body: ``, want: 0},
		{name: "malformed", status: http.StatusOK, body: `{"ripple":`, want: 0},
		{name: "missing coin", status: http.StatusOK, body: `{}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/simple/price", r.URL.Path)
				assert.Equal(t, "ripple", r.URL.Query().Get("ids"))
				assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewCoinGeckoClient(srv.URL, nil)
			assert.Equal(t, tt.want, c.FetchPrice(context.Background()))
		})
	}
}

func TestFetchPriceUnreachable(t *testing.T) {
	c := NewCoinGeckoClient("http://127.0.0.1:1", nil)
	assert.Zero(t, c.FetchPrice(context.Background()))
}
