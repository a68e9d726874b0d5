package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AlexZinkM/xrp-wallet/internal/handler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwaggerDocListsRoutes(t *testing.T) {
	srv := httptest.NewServer(SetupRouter(handler.NewXRPHandler(nil, nil)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/swagger/doc.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc struct {
		Info        struct{ Title string } `json:"info"`
		Paths       map[string]any         `json:"paths"`
		Definitions map[string]struct {
			Properties map[string]any `json:"properties"`
		} `json:"definitions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "XRP Wallet API", doc.Info.Title)
	for _, path := range []string{"/xrp/wallets", "/xrp/pay", "/xrp/balance", "/xrp/transactions", "/xrp/network", "/xrp/contacts"} {
		assert.Contains(t, doc.Paths, path)
	}
	assert.Contains(t, doc.Definitions["model.BalanceResponse"].Properties, "available")
	assert.Contains(t, doc.Definitions["model.PayRequest"].Properties, "acknowledgeIrreversible")
}

func TestRouterRejectsWrongMethod(t *testing.T) {
	srv := httptest.NewServer(SetupRouter(handler.NewXRPHandler(nil, nil)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/xrp/pay")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
