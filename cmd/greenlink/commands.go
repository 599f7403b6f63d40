package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/service"
	"github.com/sijin45/greenlink-farm-connect/pkg/market/infrastructure/event"
	"github.com/sijin45/greenlink-farm-connect/pkg/market/infrastructure/grpcserver"
	"github.com/sijin45/greenlink-farm-connect/pkg/market/infrastructure/memory"
	"github.com/sijin45/greenlink-farm-connect/pkg/market/infrastructure/mysql"
	"github.com/sijin45/greenlink-farm-connect/pkg/market/infrastructure/qrcode"
	"github.com/sijin45/greenlink-farm-connect/pkg/market/infrastructure/redis"
	"github.com/sijin45/greenlink-farm-connect/pkg/market/infrastructure/seed"
	"github.com/sijin45/greenlink-farm-connect/pkg/market/infrastructure/tracing"
	"github.com/sijin45/greenlink-farm-connect/pkg/market/infrastructure/transport"
)

type repositories struct {
	products  model.ProductRepository
	orders    model.OrderRepository
	profiles  model.ProfileRepository
	vehicles  model.VehicleRepository
	carts     model.CartRepository
	wishlists model.WishlistRepository
}

func serve(c *cli.Context) error {
	cfg, err := parseEnv()
	if err != nil {
		return err
	}
	ctx := c.Context

	if cfg.Tracing {
		shutdownTracing, err := tracing.Setup(os.Stdout)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				log.WithError(err).Error("failed to flush traces")
			}
		}()
	}

	repos, closeRepos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepos()

	services := newServices(cfg, repos)

	grpcListener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", cfg.GRPCAddr)
	}
	healthServer := grpcserver.New()
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: transport.Router(services)}
	killSignalChan := getKillSignalChan()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return healthServer.Serve(grpcListener)
	})
	g.Go(func() error {
		log.WithFields(log.Fields{"url": cfg.HTTPAddr}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve http")
		}
		return nil
	})
	g.Go(func() error {
		waitForKillSignalChan(gctx, killSignalChan)
		healthServer.Stop()
		return srv.Shutdown(context.Background())
	})
	return g.Wait()
}

func migrateDatabase(_ *cli.Context) error {
	cfg, err := parseEnv()
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := mysql.Migrate(db); err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}

func seedDatabase(c *cli.Context) error {
	cfg, err := parseEnv()
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := mysql.Migrate(db); err != nil {
		return err
	}
	catalog, err := seed.LoadFile(c.String("file"))
	if err != nil {
		return err
	}
	return seed.Apply(c.Context, catalog, mysql.NewProductRepository(db), mysql.NewVehicleRepository(db))
}

func openDatabase(cfg *config) (*sqlx.DB, error) {
	if cfg.DatabaseDSN == "" {
		return nil, errors.New("GREENLINK_DATABASE_DSN is required")
	}
	return mysql.Open(cfg.DatabaseDSN)
}

// openRepositories uses MySQL and Redis when configured. Without them the catalog lives
// in process memory and is seeded on start.
func openRepositories(ctx context.Context, cfg *config) (*repositories, func(), error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	repos := &repositories{}
	if cfg.DatabaseDSN != "" {
		db, err := mysql.Open(cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() { _ = db.Close() })
		if err := mysql.Migrate(db); err != nil {
			closeAll()
			return nil, nil, err
		}
		repos.products = mysql.NewProductRepository(db)
		repos.orders = mysql.NewOrderRepository(db)
		repos.profiles = mysql.NewProfileRepository(db)
		repos.vehicles = mysql.NewVehicleRepository(db)
	} else {
		log.Warn("GREENLINK_DATABASE_DSN is not set, using in-memory storage")
		repos.products = memory.NewProductRepository()
		repos.orders = memory.NewOrderRepository()
		repos.profiles = memory.NewProfileRepository()
		repos.vehicles = memory.NewVehicleRepository()
	}

	catalog, err := seed.LoadFile(cfg.SeedFile)
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	if err := seed.Apply(ctx, catalog, repos.products, repos.vehicles); err != nil {
		closeAll()
		return nil, nil, err
	}

	if cfg.RedisAddr != "" {
		client, err := redis.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, func() { _ = client.Close() })
		repos.carts = redis.NewCartRepository(client, cfg.CartTTL)
		repos.wishlists = redis.NewWishlistRepository(client)
	} else {
		repos.carts = memory.NewCartRepository()
		repos.wishlists = memory.NewWishlistRepository()
	}

	return repos, closeAll, nil
}

func newServices(cfg *config, repos *repositories) transport.Services {
	dispatcher := event.NewDispatcher()
	event.SubscribeAlerts(dispatcher)
	paymentConfig := service.PaymentConfig{
		PayeeID:      cfg.PayeeID,
		PayeeName:    cfg.PayeeName,
		Currency:     cfg.Currency,
		CategoryCode: cfg.MerchantCode,
	}

	return transport.Services{
		Cart:      service.NewCartService(repos.products, repos.carts, repos.orders, dispatcher),
		Catalog:   service.NewCatalogService(repos.products, repos.profiles, dispatcher),
		Orders:    service.NewOrderService(repos.products, repos.orders, repos.profiles, dispatcher),
		Payments:  service.NewPaymentService(paymentConfig, repos.orders, repos.profiles, qrcode.NewEncoder(qrcode.DefaultSize)),
		Profiles:  service.NewProfileService(repos.profiles, dispatcher),
		Analytics: service.NewAnalyticsService(repos.products, repos.orders, repos.profiles),
		Vehicles:  service.NewVehicleService(repos.vehicles, dispatcher),
		Wishlist:  service.NewWishlistService(repos.products, repos.wishlists, dispatcher),
	}
}

func getKillSignalChan() chan os.Signal {
	osKillSignalChan := make(chan os.Signal, 1)
	signal.Notify(osKillSignalChan, os.Interrupt, syscall.SIGTERM)
	return osKillSignalChan
}

// waitForKillSignalChan also returns when one of the servers fails.
func waitForKillSignalChan(ctx context.Context, killSignalChan <-chan os.Signal) {
	select {
	case killSignal := <-killSignalChan:
		switch killSignal {
		case os.Interrupt:
			log.Info("Got SIGINT...")
		case syscall.SIGTERM:
			log.Info("Got SIGTERM...")
		}
	case <-ctx.Done():
	}
}
