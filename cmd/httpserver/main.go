package main

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ruteri/tee-intent-signer/api/votehandler"
	"github.com/ruteri/tee-intent-signer/cmd/flags"
	"github.com/ruteri/tee-intent-signer/common"
	"github.com/ruteri/tee-intent-signer/cryptoutils"
	"github.com/ruteri/tee-intent-signer/httpserver"
	"github.com/ruteri/tee-intent-signer/intent"
	"github.com/ruteri/tee-intent-signer/interfaces"
	"github.com/ruteri/tee-intent-signer/metrics"
	"github.com/urfave/cli/v2"
)

var flagListenAddr = &cli.StringFlag{
	Name:    "listen-addr",
	Value:   "127.0.0.1:3000",
	Usage:   "address to listen on for API",
	EnvVars: []string{"LISTEN_ADDR"},
}

var flagKeySeed = &cli.StringFlag{
	Name:    "key-seed",
	Value:   "",
	Usage:   "hex-encoded 32-byte seed for the signing key, for development only. If empty an ephemeral key is generated",
	EnvVars: []string{"KEY_SEED"},
}

func main() {
	app := &cli.App{
		Name:  "enclave-server",
		Usage: "Serve signed intent responses from an ephemeral enclave key",
		Flags: append([]cli.Flag{
			flagListenAddr,
			flagKeySeed,
			flags.KeySchemeFlag,
			flags.RateLimitRPSFlag,
			flags.RateLimitBurstFlag,
		}, flags.CommonFlags...),
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx)

			scheme, err := interfaces.ParseKeyScheme(cCtx.String(flags.KeySchemeFlag.Name))
			if err != nil {
				logger.Error("Invalid key-scheme", "err", err)
				return err
			}

			var seed []byte
			if seedHex := cCtx.String(flagKeySeed.Name); seedHex != "" {
				seed, err = parseKeySeed(seedHex)
				if err != nil {
					logger.Error("Invalid key-seed - must be 64 hex chars (32 bytes)", "err", err)
					return err
				}
				logger.Warn("Using a deterministic signing key from key-seed, do not use in production")
			}

			signer, err := cryptoutils.NewSigner(scheme, seed)
			if err != nil {
				logger.Error("Failed to create signer", "err", err)
				return err
			}
			logger.Info("Signing key initialized", "signer", signer)

			cfg := flags.ConfigureServer(cCtx, logger, cCtx.String(flagListenAddr.Name))

			metricsSrv, err := metrics.New(common.PackageName, cfg.MetricsAddr)
			if err != nil {
				logger.Error("Failed to create metrics server", "err", err)
				return err
			}

			assembler := intent.NewAssembler(signer)
			voteHandler := votehandler.NewHandler(assembler, metricsSrv.Metrics(), logger)

			server, err := httpserver.New(cfg, metricsSrv, assembler, voteHandler)
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}

			logger.Info("Starting server")
			server.RunInBackground()

			// Wait for termination signal
			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

			logger.Info("Server is running, press Ctrl+C to stop")
			<-exit
			logger.Info("Shutdown signal received")

			server.Shutdown()
			logger.Info("Server shutdown complete")

			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func parseKeySeed(seedHex string) ([]byte, error) {
	seed, err := hex.DecodeString(strings.TrimPrefix(seedHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid key-seed: %w", err)
	}
	if len(seed) != cryptoutils.SeedSize {
		return nil, fmt.Errorf("invalid key-seed: want %d bytes, got %d", cryptoutils.SeedSize, len(seed))
	}
	return seed, nil
}
