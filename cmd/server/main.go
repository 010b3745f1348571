package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/simaogato/tradesim-backend/internal/adapter/grpc"
	"github.com/simaogato/tradesim-backend/internal/adapter/repository/memory"
	"github.com/simaogato/tradesim-backend/internal/adapter/repository/sqlstore"
	"github.com/simaogato/tradesim-backend/internal/config"
	"github.com/simaogato/tradesim-backend/internal/domain"
	"github.com/simaogato/tradesim-backend/internal/scheduler"
	"github.com/simaogato/tradesim-backend/internal/usecase/accountlock"
	"github.com/simaogato/tradesim-backend/internal/usecase/ledger"
	"github.com/simaogato/tradesim-backend/internal/usecase/market"
	"github.com/simaogato/tradesim-backend/internal/usecase/portfolio"
	"github.com/simaogato/tradesim-backend/internal/usecase/seeder"
	"github.com/simaogato/tradesim-backend/internal/usecase/simulator"
	"github.com/simaogato/tradesim-backend/internal/usecase/valuation"
	"github.com/simaogato/tradesim-backend/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// repositories groups the persistence ports of one store
type repositories struct {
	accounts     domain.AccountRepository
	holdings     domain.HoldingRepository
	instruments  domain.InstrumentRepository
	transactions domain.TransactionRepository
	marketValues domain.MarketValueRepository
	hours        domain.MarketHoursRepository
	writer       domain.LedgerWriter
	close        func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not configured yet
		bootLog := logger.New(logger.Config{})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)

	ctx := context.Background()

	// 1. Setup store
	repos, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("Failed to open store")
	}
	log.Info().Str("driver", cfg.StoreDriver).Msg("Store ready")

	// 2. Seed the instrument universe
	if cfg.Simulator.SeedInstruments {
		if err := seeder.NewInstrumentSeeder(repos.instruments, log).Seed(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed instruments")
		}
	}

	// 3. Initialize Services (Use Cases)
	locker := accountlock.New()
	ledgerService := ledger.NewLedgerService(repos.accounts, repos.transactions, repos.writer, locker, log)
	portfolioService := portfolio.NewPortfolioService(repos.accounts, repos.holdings, repos.instruments, repos.transactions, repos.writer, locker, log)
	valuationService := valuation.NewValuationService(repos.accounts, repos.holdings, repos.marketValues, locker)
	marketService := market.NewMarketService(repos.instruments, repos.hours, log)

	// 4. Price simulation
	sim := simulator.New(
		repos.instruments,
		simulator.NewSource(cfg.Simulator.Seed),
		scheduler.New(log),
		simulator.Config{
			IncreaseSchedule: cfg.Simulator.IncreaseSchedule,
			DecreaseSchedule: cfg.Simulator.DecreaseSchedule,
			Winners:          cfg.Simulator.Winners,
			Losers:           cfg.Simulator.Losers,
			OvernightOnStop:  cfg.Simulator.OvernightOnStop,
			OvernightAtClose: cfg.Simulator.OvernightAtClose,
		},
		log,
	)
	sim.Hours = repos.hours
	if cfg.Simulator.RepriceHoldings {
		sim.OnUpdate(portfolioService.ApplyPriceUpdate)
	}
	if cfg.Simulator.Enabled {
		if err := sim.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start price simulation")
		}
	}

	// 5. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(log),
			grpcadapter.AuthInterceptor(cfg.APIToken),
		),
	)

	var overnight *simulator.Simulator
	if cfg.Simulator.Enabled {
		overnight = sim
	}
	grpcAdapter := grpcadapter.NewServer(ledgerService, portfolioService, valuationService, marketService, overnight)
	grpcadapter.RegisterTradeSimServiceServer(grpcServer, grpcAdapter)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(grpcadapter.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.GRPCAddr).Msg("Failed to listen")
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.GRPCAddr).Msg("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal().Err(err).Msg("Failed to serve gRPC server")
		}
	}()

	// Graceful shutdown
	waitForShutdown(log, grpcServer, healthServer, sim, repos)
}

// openStore builds the repositories of the configured store driver
func openStore(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.StoreDriver == config.StoreMemory {
		store := memory.NewStore()
		return &repositories{
			accounts:     memory.NewAccountRepository(store),
			holdings:     memory.NewHoldingRepository(store),
			instruments:  memory.NewInstrumentRepository(store),
			transactions: memory.NewTransactionRepository(store),
			marketValues: memory.NewMarketValueRepository(store),
			hours:        memory.NewMarketHoursRepository(store),
			writer:       store,
			close:        func() error { return nil },
		}, nil
	}

	dsn := cfg.DBConnStr
	if cfg.StoreDriver == config.StoreSQLite {
		dsn = cfg.SQLitePath
	}

	db, err := sqlstore.NewDB(cfg.StoreDriver, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &repositories{
		accounts:     sqlstore.NewAccountRepository(db),
		holdings:     sqlstore.NewHoldingRepository(db),
		instruments:  sqlstore.NewInstrumentRepository(db),
		transactions: sqlstore.NewTransactionRepository(db),
		marketValues: sqlstore.NewMarketValueRepository(db),
		hours:        sqlstore.NewMarketHoursRepository(db),
		writer:       sqlstore.NewLedgerWriter(db),
		close:        db.Close,
	}, nil
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(
	log zerolog.Logger,
	grpcServer *grpclib.Server,
	healthServer *health.Server,
	sim *simulator.Simulator,
	repos *repositories,
) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully")

	healthServer.Shutdown()
	grpcServer.GracefulStop()
	log.Info().Msg("gRPC server stopped")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := sim.Stop(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to stop price simulation")
	}

	if err := repos.close(); err != nil {
		log.Error().Err(err).Msg("Failed to close store")
	}
}
