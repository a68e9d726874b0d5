package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AlexZinkM/xrp-wallet/internal/errs"
	"github.com/AlexZinkM/xrp-wallet/internal/model"
	"github.com/AlexZinkM/xrp-wallet/xrp"

	"go.uber.org/zap"
)

// XRPHandler exposes the wallet service over HTTP
type XRPHandler struct {
	svc *xrp.Service
	log *zap.Logger
}

// NewXRPHandler creates a new XRPHandler
func NewXRPHandler(svc *xrp.Service, log *zap.Logger) *XRPHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &XRPHandler{svc: svc, log: log.Named("http")}
}

// Generate handles POST /xrp/wallets/generate
// @Summary      Generate new wallet
// @Description  Generates a new XRP wallet and stores it encrypted under the given password
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.GenerateRequest  true  "Wallet name and password"
// @Success      200      {object}  model.GenerateResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /xrp/wallets/generate [post]
func (h *XRPHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req model.GenerateRequest
	if !h.decode(w, r, &req) {
		return
	}

	// Use password as []byte, then zero it
	password := []byte(req.Password)
	defer clear(password)

	resp, err := h.svc.GenerateWallet(req.Name, password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Import handles POST /xrp/wallets/import
// @Summary      Import wallet
// @Description  Restores a wallet from its family seed and stores it encrypted
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportRequest  true  "Wallet name, secret and password"
// @Success      200      {object}  model.GenerateResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /xrp/wallets/import [post]
func (h *XRPHandler) Import(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req model.ImportRequest
	if !h.decode(w, r, &req) {
		return
	}

	password := []byte(req.Password)
	defer clear(password)

	resp, err := h.svc.ImportWallet(req.Name, req.Secret, password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Unlock handles POST /xrp/wallets/unlock
// @Summary      Unlock wallet
// @Description  Checks the password of a stored wallet and returns its public data
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.UnlockRequest  true  "Wallet id and password"
// @Success      200      {object}  model.UnlockResponse
// @Failure      401      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /xrp/wallets/unlock [post]
func (h *XRPHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req model.UnlockRequest
	if !h.decode(w, r, &req) {
		return
	}

	password := []byte(req.Password)
	defer clear(password)

	resp, err := h.svc.Unlock(req.ID, password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Wallets handles GET and DELETE /xrp/wallets
// @Summary      List or remove wallets
// @Description  GET lists stored wallets with balances. DELETE removes the wallet given by id
// @Tags         wallets
// @Produce      json
// @Param        id   query     string  false  "Wallet id (DELETE only)"
// @Success      200  {array}   model.WalletSummary
// @Router       /xrp/wallets [get]
// @Router       /xrp/wallets [delete]
func (h *XRPHandler) Wallets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := h.svc.Wallets(r.Context())
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodDelete:
		id, ok := requireID(w, r)
		if !ok {
			return
		}
		removed, err := h.svc.RemoveWallet(id)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
	default:
		http.Error(w, "Method not allowed. Should be GET or DELETE", http.StatusMethodNotAllowed)
	}
}

// ClearWallets handles POST /xrp/wallets/clear
// @Summary      Remove all wallets
// @Description  Irreversibly deletes every stored wallet. Requires confirm=true
// @Tags         wallets
// @Produce      json
// @Param        confirm  query     bool  true  "Must be true"
// @Success      200      {object}  map[string]bool
// @Failure      428      {object}  model.ErrorResponse
// @Router       /xrp/wallets/clear [post]
func (h *XRPHandler) ClearWallets(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	if confirm, _ := strconv.ParseBool(r.URL.Query().Get("confirm")); !confirm {
		h.writeError(w, errs.New(errs.ConfirmationRequired, "deleting all wallets is irreversible, pass confirm=true"))
		return
	}
	if err := h.svc.ClearWallets(); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}

// Receive handles GET /xrp/wallets/receive
// @Summary      Receive address
// @Description  Returns the wallet address with a base64 PNG QR code
// @Tags         wallets
// @Produce      json
// @Param        id   query     string  true  "Wallet id"
// @Success      200  {object}  model.ReceiveResponse
// @Router       /xrp/wallets/receive [get]
func (h *XRPHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	resp, err := h.svc.Receive(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Fund handles POST /xrp/wallets/fund
// @Summary      Fund from testnet faucet
// @Description  Asks the test network faucet to fund the wallet. Refused on live networks
// @Tags         wallets
// @Produce      json
// @Param        id   query     string  true  "Wallet id"
// @Success      200  {object}  model.FundResponse
// @Failure      400  {object}  model.ErrorResponse
// @Router       /xrp/wallets/fund [post]
func (h *XRPHandler) Fund(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	resp, err := h.svc.FundTestnet(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetBalance handles GET /xrp/balance
// @Summary      Get wallet balance (USD = XRP * price)
// @Description  Gets the validated XRP balance of a wallet with its advisory USD value. available is false when the ledger is unreachable
// @Tags         xrp
// @Produce      json
// @Param        id   query     string  true  "Wallet id"
// @Success      200  {object}  model.BalanceResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /xrp/balance [get]
func (h *XRPHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	balance, err := h.svc.GetBalance(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

// Pay handles POST /xrp/pay
// @Summary      Send XRP
// @Description  Signs a payment locally, submits it and waits for validation
// @Tags         xrp
// @Accept       json
// @Produce      json
// @Param        request  body      model.PayRequest  true  "Payment data"
// @Success      200      {object}  model.PayResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      401      {object}  model.ErrorResponse
// @Failure      422      {object}  model.ErrorResponse
// @Failure      428      {object}  model.ErrorResponse
// @Failure      429      {object}  model.ErrorResponse
// @Router       /xrp/pay [post]
func (h *XRPHandler) Pay(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req model.PayRequest
	if !h.decode(w, r, &req) {
		return
	}

	password := []byte(req.Password)
	defer clear(password)
	req.Password = ""

	payResp, err := h.svc.Pay(r.Context(), &req, password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payResp)
}

// TransactionHistory handles GET /xrp/transactions
// @Summary      Get wallet transactions
// @Description  Gets recent wallet transactions with filtering capability
// @Tags         xrp
// @Produce      json
// @Param        id         query     string   true   "Wallet id"
// @Param        type       query     string   false  "Transaction type: DEBIT (received) or CREDIT (sent)"
// @Param        txId       query     string   false  "Transaction hash"
// @Param        from       query     string   false  "Start date (YYYY-MM-DD)"
// @Param        to         query     string   false  "End date (YYYY-MM-DD)"
// @Param        minAmount  query     string   false  "Minimum amount"
// @Param        maxAmount  query     string   false  "Maximum amount"
// @Param        limit      query     int      false  "Transactions to fetch (default 20)"
// @Success      200  {object}  model.LogResponse
// @Router       /xrp/transactions [get]
func (h *XRPHandler) TransactionHistory(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	req, err := parseLogRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	logResp, err := h.svc.GetTransactions(r.Context(), id, req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logResp)
}

func parseLogRequest(r *http.Request) (*model.LogRequest, error) {
	var req model.LogRequest
	q := r.URL.Query()

	// Parse date parameters (YYYY-MM-DD)
	const dateLayout = "2006-01-02"
	if fromStr := q.Get("from"); fromStr != "" {
		t, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			return nil, errors.New("invalid from date: use YYYY-MM-DD (e.g. 2006-01-02)")
		}
		req.From = &t
	}
	if toStr := q.Get("to"); toStr != "" {
		t, err := time.Parse(dateLayout, toStr)
		if err != nil {
			return nil, errors.New("invalid to date: use YYYY-MM-DD (e.g. 2006-01-02)")
		}
		// End of day so filter is inclusive
		t = t.Add(24*time.Hour - time.Nanosecond)
		req.To = &t
	}

	if typeStr := q.Get("type"); typeStr != "" {
		txType := model.TransactionType(typeStr)
		req.Type = &txType
	}
	if txID := q.Get("txId"); txID != "" {
		req.TxID = &txID
	}
	if minAmount := q.Get("minAmount"); minAmount != "" {
		req.MinAmount = &minAmount
	}
	if maxAmount := q.Get("maxAmount"); maxAmount != "" {
		req.MaxAmount = &maxAmount
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, errors.New("invalid limit")
		}
		req.Limit = limit
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// Price handles GET /xrp/price
// @Summary      XRP price
// @Description  Advisory XRP/USD price, 0 when unavailable
// @Tags         xrp
// @Produce      json
// @Success      200  {object}  model.PriceResponse
// @Router       /xrp/price [get]
func (h *XRPHandler) Price(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Price(r.Context()))
}

// Network handles GET and POST /xrp/network
// @Summary      Active network
// @Description  GET returns the active network. POST switches it; live networks need acknowledgeIrreversible
// @Tags         network
// @Accept       json
// @Produce      json
// @Param        request  body      model.NetworkRequest  false  "Network to activate (POST only)"
// @Success      200      {object}  model.NetworkConfig
// @Failure      428      {object}  model.ErrorResponse
// @Router       /xrp/network [get]
// @Router       /xrp/network [post]
func (h *XRPHandler) Network(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.svc.Network())
	case http.MethodPost:
		var req model.NetworkRequest
		if !h.decode(w, r, &req) {
			return
		}
		cfg, err := h.svc.SwitchNetwork(req.Network, req.AcknowledgeIrreversible)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	default:
		http.Error(w, "Method not allowed. Should be GET or POST", http.StatusMethodNotAllowed)
	}
}

// Networks handles GET /xrp/networks
// @Summary      Selectable networks
// @Tags         network
// @Produce      json
// @Success      200  {array}  model.NetworkConfig
// @Router       /xrp/networks [get]
func (h *XRPHandler) Networks(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Networks())
}

// Contacts handles GET, POST and DELETE /xrp/contacts
// @Summary      Address book
// @Description  GET lists contacts, POST saves one, DELETE removes the contact given by id
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        request  body      model.ContactRequest  false  "Contact (POST only)"
// @Param        id       query     string                false  "Contact id (DELETE only)"
// @Success      200      {array}   model.Contact
// @Failure      400      {object}  model.ErrorResponse
// @Router       /xrp/contacts [get]
// @Router       /xrp/contacts [post]
// @Router       /xrp/contacts [delete]
func (h *XRPHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := h.svc.Contacts()
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var req model.ContactRequest
		if !h.decode(w, r, &req) {
			return
		}
		c, err := h.svc.SaveContact(&req)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	case http.MethodDelete:
		id, ok := requireID(w, r)
		if !ok {
			return
		}
		removed, err := h.svc.RemoveContact(id)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
	default:
		http.Error(w, "Method not allowed. Should be GET, POST or DELETE", http.StatusMethodNotAllowed)
	}
}
