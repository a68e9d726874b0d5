package api

import (
	"net/http"

	_ "github.com/AlexZinkM/xrp-wallet/internal/docs"
	"github.com/AlexZinkM/xrp-wallet/internal/handler"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(xrpHandler *handler.XRPHandler) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet catalog
	mux.HandleFunc("/xrp/wallets", xrpHandler.Wallets)
	mux.HandleFunc("/xrp/wallets/generate", xrpHandler.Generate)
	mux.HandleFunc("/xrp/wallets/import", xrpHandler.Import)
	mux.HandleFunc("/xrp/wallets/unlock", xrpHandler.Unlock)
	mux.HandleFunc("/xrp/wallets/clear", xrpHandler.ClearWallets)
	mux.HandleFunc("/xrp/wallets/receive", xrpHandler.Receive)
	mux.HandleFunc("/xrp/wallets/fund", xrpHandler.Fund)

	// Ledger endpoints
	mux.HandleFunc("/xrp/balance", xrpHandler.GetBalance)
	mux.HandleFunc("/xrp/transactions", xrpHandler.TransactionHistory)
	mux.HandleFunc("/xrp/pay", xrpHandler.Pay)
	mux.HandleFunc("/xrp/price", xrpHandler.Price)
	mux.HandleFunc("/xrp/network", xrpHandler.Network)
	mux.HandleFunc("/xrp/networks", xrpHandler.Networks)

	// Address book
	mux.HandleFunc("/xrp/contacts", xrpHandler.Contacts)

	return mux
}
