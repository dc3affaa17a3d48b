package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"walletkit/internal/model"
	"walletkit/internal/walleterr"
	"walletkit/wallet"
)

// WalletHandler exposes the lifecycle manager over HTTP.
type WalletHandler struct {
	mgr *wallet.Manager
}

// NewWalletHandler creates a new WalletHandler around the manager.
func NewWalletHandler(mgr *wallet.Manager) (*WalletHandler, error) {
	if mgr == nil {
		return nil, errors.New("wallet manager is required")
	}
	return &WalletHandler{mgr: mgr}, nil
}

// Status handles GET /wallet
// @Summary      Wallet status
// @Description  Reports whether a wallet exists and its address
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.StatusResponse
// @Router       /wallet [get]
func (h *WalletHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	exists, err := h.mgr.HasWallet(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := model.StatusResponse{Exists: exists}
	if exists {
		if addr, err := h.mgr.Address(r.Context()); err == nil {
			resp.Address = addr
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /wallet/create
// @Summary      Create new wallet
// @Description  Generates a fresh mnemonic, stores the encrypted credential and returns the phrase exactly once
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Success      200  {object}  model.CreateResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /wallet/create [post]
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	newWallet, mnemonic, err := h.mgr.CreateWallet(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.CreateResponse{
		Success:  true,
		Message:  "Wallet created successfully",
		Address:  newWallet.Address,
		Mnemonic: mnemonic,
	})
}

// Recover handles POST /wallet/recover
// @Summary      Recover wallet from mnemonic
// @Description  Validates the phrase and installs the derived wallet
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.RecoverRequest  true  "Recovery data"
// @Success      200      {object}  model.RecoverResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallet/recover [post]
func (h *WalletHandler) Recover(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.RecoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	recovered, err := h.mgr.RecoverFromMnemonic(r.Context(), req.Mnemonic)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.RecoverResponse{
		Success: true,
		Message: "Wallet recovered successfully",
		Address: recovered.Address,
	})
}

// Import handles POST /wallet/import
// @Summary      Import wallet from raw private key
// @Description  Validates the 32-byte key and installs the derived wallet
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportRequest  true  "Import data"
// @Success      200      {object}  model.RecoverResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallet/import [post]
func (h *WalletHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	imported, err := h.mgr.ImportFromPrivateKey(r.Context(), req.PrivateKey)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.RecoverResponse{
		Success: true,
		Message: "Wallet imported successfully",
		Address: imported.Address,
	})
}

// ExportMnemonic handles POST /wallet/export/mnemonic
// @Summary      Export recovery phrase
// @Description  Rate limited and biometric gated; the phrase is returned to the caller only
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.ExportResponse
// @Failure      401  {object}  model.ErrorResponse
// @Failure      429  {object}  model.ErrorResponse
// @Router       /wallet/export/mnemonic [post]
func (h *WalletHandler) ExportMnemonic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	mnemonic, err := h.mgr.ExportMnemonic(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if mnemonic == "" {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "no mnemonic available", Code: "not_found"})
		return
	}

	writeJSON(w, http.StatusOK, model.ExportResponse{Mnemonic: mnemonic})
}

// ExportPrivateKey handles POST /wallet/export/private-key
// @Summary      Export raw private key
// @Description  Rate limited and biometric gated; the key is returned to the caller only
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.ExportResponse
// @Failure      401  {object}  model.ErrorResponse
// @Failure      429  {object}  model.ErrorResponse
// @Router       /wallet/export/private-key [post]
func (h *WalletHandler) ExportPrivateKey(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	key, err := h.mgr.ExportPrivateKey(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if key == "" {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "no wallet found", Code: "not_found"})
		return
	}

	writeJSON(w, http.StatusOK, model.ExportResponse{PrivateKey: key})
}

// Delete handles DELETE /wallet
// @Summary      Delete wallet
// @Description  Purges cached material and removes the stored credential; idempotent
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.DeleteResponse
// @Router       /wallet [delete]
func (h *WalletHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.mgr.DeleteWallet(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.DeleteResponse{
		Success: true,
		Message: "Wallet deleted",
	})
}

// QR handles GET /wallet/qr
// @Summary      Receive-address QR code
// @Description  Returns the active address and its QR code PNG as base64
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.QRResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wallet/qr [get]
func (h *WalletHandler) QR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	address, png, err := h.mgr.AddressQR(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.QRResponse{Address: address, QR: png})
}

// Audit handles GET /wallet/audit
// @Summary      Audit trail
// @Description  Lists recorded lifecycle events with masked subjects
// @Tags         wallet
// @Produce      json
// @Success      200  {array}  audit.Event
// @Router       /wallet/audit [get]
func (h *WalletHandler) Audit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.mgr.AuditEvents())
}

// Wallet dispatches GET /wallet and DELETE /wallet on one route.
func (h *WalletHandler) Wallet(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.Status(w, r)
	case http.MethodDelete:
		h.Delete(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps domain error kinds onto HTTP statuses with the consistent
// error body.
func writeError(w http.ResponseWriter, err error) {
	var rl *walleterr.RateLimitedError
	switch {
	case errors.As(err, &rl):
		writeJSON(w, http.StatusTooManyRequests, model.ErrorResponse{
			Error:             rl.Error(),
			Code:              "rate_limited",
			RetryAfterSeconds: rl.RetryAfterSeconds,
		})
	case errors.Is(err, walleterr.ErrBiometricFailed):
		writeJSON(w, http.StatusUnauthorized, model.ErrorResponse{Error: err.Error(), Code: "biometric_failed"})
	case errors.Is(err, walleterr.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, model.ErrorResponse{Error: err.Error(), Code: "already_exists"})
	case errors.Is(err, walleterr.ErrInvalidMnemonic):
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: "invalid_mnemonic"})
	case errors.Is(err, walleterr.ErrInvalidPrivateKey):
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: "invalid_private_key"})
	case errors.Is(err, walleterr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: err.Error(), Code: "not_found"})
	default:
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: err.Error(), Code: "internal"})
	}
}
