// walletd serves the wallet credential lifecycle over a local HTTP API.
package main

import (
	"net/http"
	"os"

	"walletkit/internal/api"
	"walletkit/internal/biometric"
	"walletkit/internal/chain"
	"walletkit/internal/config"
	"walletkit/internal/persistence"
	"walletkit/internal/ratelimit"
	"walletkit/wallet"

	_ "walletkit/docs"

	"go.uber.org/zap"
)

// @title        walletkit API
// @version      1.0
// @description  Local wallet credential lifecycle: create, recover, import, export, delete.
// @BasePath     /
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	if err := config.Init(); err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// The keystore passphrase never comes from the environment.
	if err := config.PromptForPassphrase(); err != nil {
		logger.Fatal("failed to read passphrase", zap.Error(err))
	}

	passphrase, err := config.GetPassphraseBytes()
	if err != nil {
		logger.Fatal("passphrase unavailable", zap.Error(err))
	}

	store, err := persistence.NewFileStore(config.GetStorePath(), passphrase)
	if err != nil {
		clear(passphrase)
		logger.Fatal("failed to open keystore", zap.Error(err))
	}
	defer store.Close()

	var gate biometric.Gate
	switch config.Get().BiometricMode {
	case "off":
		gate = &biometric.StaticGate{Allow: true}
	default:
		gate = biometric.NewTerminalGate(passphrase)
	}
	clear(passphrase)

	mgr := wallet.NewManager(store, gate, chain.NewEthSigner(config.GetChainID()), wallet.Config{
		RateLimit: ratelimit.Policy{
			Window:      config.GetExportWindow(),
			MaxAttempts: config.Get().ExportMaxAttempts,
			Cooldown:    config.GetExportCooldown(),
		},
		PurgeThreshold: config.GetPurgeThreshold(),
		SweepInterval:  config.GetSweepInterval(),
		MnemonicBits:   config.Get().MnemonicBits,
	}, logger)

	stopSweeper := mgr.StartSweeper()
	defer stopSweeper()

	router, err := api.SetupRouter(mgr)
	if err != nil {
		logger.Fatal("failed to set up router", zap.Error(err))
	}

	addr := ":" + config.GetPort()
	logger.Info("walletd listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
