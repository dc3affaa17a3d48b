package api

import (
	"net/http"

	"walletkit/internal/handler"
	"walletkit/wallet"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(mgr *wallet.Manager) (http.Handler, error) {
	walletHandler, err := handler.NewWalletHandler(mgr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/wallet", walletHandler.Wallet)
	mux.HandleFunc("/wallet/create", walletHandler.Create)
	mux.HandleFunc("/wallet/recover", walletHandler.Recover)
	mux.HandleFunc("/wallet/import", walletHandler.Import)
	mux.HandleFunc("/wallet/export/mnemonic", walletHandler.ExportMnemonic)
	mux.HandleFunc("/wallet/export/private-key", walletHandler.ExportPrivateKey)
	mux.HandleFunc("/wallet/qr", walletHandler.QR)
	mux.HandleFunc("/wallet/audit", walletHandler.Audit)

	return mux, nil
}
