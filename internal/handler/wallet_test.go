package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"walletkit/internal/biometric"
	"walletkit/internal/chain"
	"walletkit/internal/model"
	"walletkit/internal/persistence"
	"walletkit/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vectorMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func newTestHandler(t *testing.T) (*WalletHandler, *biometric.StaticGate) {
	t.Helper()
	gate := &biometric.StaticGate{Allow: true}
	mgr := wallet.NewManager(persistence.NewMemoryStore(), gate, chain.NewEthSigner(1), wallet.Config{}, nil)
	h, err := NewWalletHandler(mgr)
	require.NoError(t, err)
	return h, gate
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestStatusEmpty(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/wallet", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[model.StatusResponse](t, rec)
	assert.False(t, resp.Exists)
	assert.Empty(t, resp.Address)
}

func TestCreateThenStatus(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/wallet/create", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	created := decode[model.CreateResponse](t, rec)
	assert.True(t, created.Success)
	assert.Len(t, strings.Fields(created.Mnemonic), 12)
	assert.True(t, strings.HasPrefix(created.Address, "0x"))

	rec = httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/wallet", nil))
	status := decode[model.StatusResponse](t, rec)
	assert.True(t, status.Exists)
	assert.Equal(t, created.Address, status.Address)
}

func TestCreateConflict(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/wallet/create", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/wallet/create", nil))
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "already_exists", decode[model.ErrorResponse](t, rec).Code)
}

func TestRecoverInvalidMnemonic(t *testing.T) {
	h, _ := newTestHandler(t)

	body := strings.NewReader(`{"mnemonic":"definitely not valid"}`)
	rec := httptest.NewRecorder()
	h.Recover(rec, httptest.NewRequest(http.MethodPost, "/wallet/recover", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_mnemonic", decode[model.ErrorResponse](t, rec).Code)
}

func TestRecoverThenExportMnemonic(t *testing.T) {
	h, _ := newTestHandler(t)

	body := strings.NewReader(`{"mnemonic":"` + vectorMnemonic + `"}`)
	rec := httptest.NewRecorder()
	h.Recover(rec, httptest.NewRequest(http.MethodPost, "/wallet/recover", body))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ExportMnemonic(rec, httptest.NewRequest(http.MethodPost, "/wallet/export/mnemonic", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, vectorMnemonic, decode[model.ExportResponse](t, rec).Mnemonic)
}

func TestImportInvalidKey(t *testing.T) {
	h, _ := newTestHandler(t)

	body := strings.NewReader(`{"privateKey":"abcd"}`)
	rec := httptest.NewRecorder()
	h.Import(rec, httptest.NewRequest(http.MethodPost, "/wallet/import", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_private_key", decode[model.ErrorResponse](t, rec).Code)
}

func TestExportWithoutWalletIs404(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ExportPrivateKey(rec, httptest.NewRequest(http.MethodPost, "/wallet/export/private-key", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[model.ErrorResponse](t, rec).Code)
}

func TestExportBiometricRefusedIs401(t *testing.T) {
	h, gate := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/wallet/create", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	gate.Allow = false
	rec = httptest.NewRecorder()
	h.ExportMnemonic(rec, httptest.NewRequest(http.MethodPost, "/wallet/export/mnemonic", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "biometric_failed", decode[model.ErrorResponse](t, rec).Code)
}

func TestExportRateLimitedIs429(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/wallet/create", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	for i := 0; i < 3; i++ {
		rec = httptest.NewRecorder()
		h.ExportMnemonic(rec, httptest.NewRequest(http.MethodPost, "/wallet/export/mnemonic", nil))
		require.Equal(t, http.StatusOK, rec.Code, "call %d", i+1)
	}

	rec = httptest.NewRecorder()
	h.ExportMnemonic(rec, httptest.NewRequest(http.MethodPost, "/wallet/export/mnemonic", nil))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	resp := decode[model.ErrorResponse](t, rec)
	assert.Equal(t, "rate_limited", resp.Code)
	assert.Greater(t, resp.RetryAfterSeconds, 0)
	assert.LessOrEqual(t, resp.RetryAfterSeconds, 300)
}

func TestDeleteIsIdempotent(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Wallet(rec, httptest.NewRequest(http.MethodDelete, "/wallet", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/wallet/create", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Wallet(rec, httptest.NewRequest(http.MethodDelete, "/wallet", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/wallet", nil))
	assert.False(t, decode[model.StatusResponse](t, rec).Exists)
}

func TestQRRequiresWallet(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.QR(rec, httptest.NewRequest(http.MethodGet, "/wallet/qr", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/wallet/create", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.QR(rec, httptest.NewRequest(http.MethodGet, "/wallet/qr", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	qr := decode[model.QRResponse](t, rec)
	assert.NotEmpty(t, qr.Address)
	assert.NotEmpty(t, qr.QR)
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodGet, "/wallet/create", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	h.Wallet(rec, httptest.NewRequest(http.MethodPost, "/wallet", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAuditEndpointMasksSubjects(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/wallet/create", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode[model.CreateResponse](t, rec)

	rec = httptest.NewRecorder()
	h.Audit(rec, httptest.NewRequest(http.MethodGet, "/wallet/audit", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.NotContains(t, rec.Body.String(), created.Address)
	assert.NotContains(t, rec.Body.String(), created.Mnemonic)
}
