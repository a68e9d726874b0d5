package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/xrp-wallet/internal/errs"
	"github.com/AlexZinkM/xrp-wallet/internal/model"

	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies; every request here is a small JSON object.
const maxBodyBytes = 1 << 16

var statusByCode = map[errs.Code]int{
	errs.InvalidSecret:         http.StatusBadRequest,
	errs.InvalidAddress:        http.StatusBadRequest,
	errs.InvalidAmount:         http.StatusBadRequest,
	errs.InvalidDestinationTag: http.StatusBadRequest,
	errs.InvalidName:           http.StatusBadRequest,
	errs.InsufficientBalance:   http.StatusBadRequest,
	errs.WalletUninitialized:   http.StatusBadRequest,
	errs.WeakPassword:          http.StatusBadRequest,
	errs.Unsupported:           http.StatusBadRequest,
	errs.WrongPassword:         http.StatusUnauthorized,
	errs.NotFound:              http.StatusNotFound,
	errs.DuplicateWallet:       http.StatusConflict,
	errs.TransactionFailed:     http.StatusUnprocessableEntity,
	errs.ConfirmationRequired:  http.StatusPreconditionRequired,
	errs.CooldownActive:        http.StatusTooManyRequests,
	errs.NetworkError:          http.StatusBadGateway,
}

// StatusOf maps an error to its HTTP status; unclassified errors are 500.
func StatusOf(err error) int {
	if status, ok := statusByCode[errs.CodeOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *XRPHandler) writeError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, model.ErrorResponse{
		Error:       err.Error(),
		Code:        string(errs.CodeOf(err)),
		OutcomeCode: errs.OutcomeOf(err),
	})
}

// decode reads a JSON body into v and writes a 400 on failure.
func (h *XRPHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && (typeErr.Field == "destinationTag" || typeErr.Field == "tag") {
		h.writeError(w, errs.Wrap(errs.InvalidDestinationTag, err, "destination tag must be an integer between 0 and 4294967295"))
		return false
	}
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "invalid request body: " + err.Error()})
	return false
}

func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed. Should be "+method, http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func requireID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "id is required"})
		return "", false
	}
	return id, true
}
