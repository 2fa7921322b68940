package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"ethrpc/internal/buffered"
	"ethrpc/internal/cache"
	"ethrpc/internal/config"
	"ethrpc/internal/eth"
	"ethrpc/internal/jsonrpc"
	"ethrpc/internal/transport"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config.json", "path to config file")
	watch := flag.Duration("watch", 0, "repeat the probe at this interval until interrupted")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		// Basic logger for startup errors
		log := zerolog.New(os.Stderr).With().Timestamp().Logger()
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Setup logger
	logger := setupLogger(cfg.LogLevel)
	logger.Info().
		Str("config", *configPath).
		Str("rpcUrl", cfg.RPCURL).
		Str("wsUrl", cfg.WSURL).
		Bool("preferWs", cfg.PreferWS).
		Msg("starting ethrpc probe")

	// Pick transport
	var base transport.Transport
	var closeBase func()
	if cfg.PreferWS && cfg.WSURL != "" {
		ws := transport.NewWS(cfg.WSURL, cfg.GetRequestTimeoutDuration(), logger)
		base, closeBase = ws, ws.Close
	} else {
		httpT := transport.NewHTTP(cfg.RPCURL, cfg.GetRequestTimeoutDuration(), logger)
		base, closeBase = httpT, httpT.Close
	}
	defer closeBase()

	// Wrap with cache if enabled
	if cfg.IsCacheEnabled() {
		store, err := cache.NewMemory(cfg.Cache.Size, cfg.Cache.GetTTLDuration())
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create cache")
		}
		defer store.Close()
		base = cache.NewTransport(base, store, cache.NewRules(cfg.Cache.DisabledMethods), logger)
	}

	// Coalescing client on top
	client := buffered.New(base, buffered.Config{
		MaxConcurrentRequests: cfg.Buffer.MaxConcurrentRequests,
		MaxBatchSize:          cfg.Buffer.MaxBatchSize,
		CoalescingDelay:       cfg.Buffer.GetCoalescingDelayDuration(),
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cancel probes on shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-quit
		logger.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	probe(ctx, client, logger)

	if *watch > 0 {
		ticker := time.NewTicker(*watch)
		defer ticker.Stop()
	loop:
		for {
			select {
			case <-ticker.C:
				probe(ctx, client, logger)
			case <-ctx.Done():
				break loop
			}
		}
	}

	client.Close()
	logger.Info().Msg("done")
}

// probe issues a handful of concurrent read calls so they coalesce into wire
// batches, then logs what the node reported.
func probe(ctx context.Context, client *buffered.Client, logger zerolog.Logger) {
	var wg sync.WaitGroup

	run := func(f func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := f(); err != nil {
				logger.Error().Err(err).Msg("probe call failed")
			}
		}()
	}

	run(func() error {
		version, err := jsonrpc.Call(ctx, eth.Web3ClientVersion, eth.Empty{}, client.RoundTrip)
		if err != nil {
			return err
		}
		logger.Info().Str("clientVersion", version).Msg("node identified")
		return nil
	})

	run(func() error {
		chainID, err := jsonrpc.Call(ctx, eth.ChainID, eth.Empty{}, client.RoundTrip)
		if err != nil {
			return err
		}
		logger.Info().Uint64("chainId", uint64(chainID)).Msg("chain identified")
		return nil
	})

	run(func() error {
		head, err := jsonrpc.Call(ctx, eth.BlockNumber, eth.Empty{}, client.RoundTrip)
		if err != nil {
			return err
		}
		logger.Info().Uint64("blockNumber", uint64(head)).Msg("chain head")

		block, err := jsonrpc.Call(ctx, eth.GetBlockByNumber, eth.BlockWithTxFlag{
			Block: eth.BlockNumberSpec(uint64(head)),
		}, client.RoundTrip)
		if err != nil {
			return err
		}
		if block == nil {
			logger.Warn().Uint64("blockNumber", uint64(head)).Msg("head block not found")
			return nil
		}
		logger.Info().
			Str("hash", string(block.Hash)).
			Uint64("timestamp", uint64(block.Timestamp)).
			Int("transactions", len(block.Transactions)).
			Msg("head block")
		return nil
	})

	run(func() error {
		gasPrice, err := jsonrpc.Call(ctx, eth.GasPrice, eth.Empty{}, client.RoundTrip)
		if err != nil {
			return err
		}
		logger.Info().Uint64("gasPrice", uint64(gasPrice)).Msg("gas price")
		return nil
	})

	wg.Wait()
}

// setupLogger configures the zerolog logger
func setupLogger(level string) zerolog.Logger {
	// Set log level
	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	// Configure output
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
