package api

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apphttp "github.com/chainsafe/insured-bridge/pkg/app/http"
	"github.com/chainsafe/insured-bridge/pkg/auth"
	"github.com/chainsafe/insured-bridge/pkg/bridge"
	"github.com/chainsafe/insured-bridge/pkg/config"
	"github.com/chainsafe/insured-bridge/pkg/db"
	"github.com/chainsafe/insured-bridge/pkg/dispatch"
	"github.com/chainsafe/insured-bridge/pkg/ethereum"
	"github.com/chainsafe/insured-bridge/pkg/insurance"
	"github.com/chainsafe/insured-bridge/pkg/pgutil"
	"github.com/chainsafe/insured-bridge/pkg/pricefeed"
	"github.com/chainsafe/insured-bridge/pkg/reorg"
)

const defaultRequestTimeout = 60 * time.Second

// Server holds cfg to init the bridge process.
type Server struct {
	cfg *config.Config
}

// NewServer initializes a new bridge server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("bridge config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging,
		zap.Uint64("local_chain_id", cfg.Bridge.LocalChainID),
		zap.Uint64("remote_chain_id", cfg.Bridge.RemoteChainID))
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting insured bridge",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.Bool("database", cfg.Database.Enabled),
	)

	stores, balances, closeStores, err := s.openStores(ctx, logger)
	if err != nil {
		return err
	}
	defer closeStores()

	fund, err := insurance.NewFund(ctx, balances, logger.Named("insurance"))
	if err != nil {
		return fmt.Errorf("open insurance fund: %w", err)
	}

	oracle, pollers, err := s.openOracle(logger)
	if err != nil {
		return err
	}

	client, err := ethereum.NewClient(ctx, &cfg.Ethereum, logger.Named("ethereum"))
	if err != nil {
		return fmt.Errorf("create ethereum client: %w", err)
	}
	defer client.Close()

	value, hookMetadata, err := s.dispatchOptions()
	if err != nil {
		return err
	}
	dispatcher := dispatch.NewHTTPDispatcher(&cfg.Dispatcher, cfg.Bridge.LocalChainID, logger.Named("dispatch"))

	svc, err := bridge.NewService(ctx,
		&cfg.Bridge,
		oracle,
		fund,
		dispatcher,
		client,
		client,
		stores,
		logger.Named("bridge"),
		bridge.WithDispatchValue(value, hookMetadata),
	)
	if err != nil {
		return fmt.Errorf("create bridge service: %w", err)
	}
	svc = bridge.NewLog(svc, logger)

	engine := bridge.NewEngine(&cfg.Bridge, svc, logger.Named("engine"), pollers...)
	if err := engine.Start(ctx); err != nil {
		return fmt.Errorf("start engine: %w", err)
	}
	// Stopped explicitly after ServeAndWait for deterministic shutdown order.
	defer engine.Stop()

	validator := auth.NewMessageValidator(cfg.Dispatcher.SharedSecret, cfg.Dispatcher.Issuer, cfg.Bridge.LocalChainID)
	handler := NewHandler(svc, validator, cfg.Redacted, logger.Named("api"))

	err = apphttp.ServeAndWait(ctx, s.setupRouter(handler), logger, &cfg.Server, cfg.Shutdown.Timeout)

	engine.Stop()
	return err
}

// openStores returns postgres backed stores, or in-memory ones when the database is disabled
func (s *Server) openStores(ctx context.Context, logger *zap.Logger) (bridge.Stores, insurance.BalanceStore, func(), error) {
	if !s.cfg.Database.Enabled {
		logger.Warn("Database disabled, bridge state is kept in memory only")
		mem := bridge.NewMemoryStore()
		stores := bridge.Stores{
			Ledger:    reorg.NewMemoryStore(),
			Nonces:    mem,
			Snapshots: mem,
			Pool:      mem,
			Pending:   mem,
		}
		return stores, insurance.NewMemoryBalanceStore(), func() {}, nil
	}

	bunDB, err := pgutil.ConnectDB(ctx, &s.cfg.Database, logger)
	if err != nil {
		return bridge.Stores{}, nil, nil, err
	}
	store := db.NewStore(bunDB)
	return store.Stores(), store, func() { _ = bunDB.Close() }, nil
}

func (s *Server) openOracle(logger *zap.Logger) (pricefeed.Oracle, []bridge.Poller, error) {
	cfg := s.cfg.PriceFeed
	switch cfg.Source {
	case "static":
		price, err := decimal.NewFromString(cfg.StaticPrice)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid static price %q: %w", cfg.StaticPrice, err)
		}
		logger.Info("Using static price feed", zap.Stringer("price", price))
		return pricefeed.NewStatic(price), nil, nil
	default:
		feed := pricefeed.NewCoinGecko(pricefeed.CoinGeckoConfig{
			BaseURL:      cfg.BaseURL,
			APIKey:       cfg.APIKey,
			CoinID:       cfg.CoinID,
			PollInterval: cfg.PollInterval,
			MaxAge:       cfg.MaxAge,
			Timeout:      cfg.Timeout,
		}, logger.Named("coingecko"))
		logger.Info("Using CoinGecko price feed",
			zap.String("coin_id", cfg.CoinID),
			zap.Duration("poll_interval", cfg.PollInterval))
		return feed, []bridge.Poller{feed}, nil
	}
}

func (s *Server) dispatchOptions() (*big.Int, []byte, error) {
	cfg := s.cfg.Dispatcher
	value := new(big.Int)
	if cfg.ValueWei != "" {
		if _, ok := value.SetString(cfg.ValueWei, 10); !ok || value.Sign() < 0 {
			return nil, nil, fmt.Errorf("invalid dispatcher value_wei %q", cfg.ValueWei)
		}
	}
	var hookMetadata []byte
	if cfg.HookMetadata != "" {
		var err error
		if hookMetadata, err = hexutil.Decode(cfg.HookMetadata); err != nil {
			return nil, nil, fmt.Errorf("invalid dispatcher hook_metadata: %w", err)
		}
	}
	return value, hookMetadata, nil
}

func (s *Server) setupRouter(handler *Handler) chi.Router {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(defaultRequestTimeout))

	if s.cfg.Monitoring.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	handler.RegisterRoutes(r)
	return r
}
