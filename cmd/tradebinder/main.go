package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tradebinder/tradebinder/internal/devserver"
	"github.com/tradebinder/tradebinder/pkg/cache"
	"github.com/tradebinder/tradebinder/pkg/cache/inmemory"
	"github.com/tradebinder/tradebinder/pkg/cache/redis"
	"github.com/tradebinder/tradebinder/pkg/catalog"
	"github.com/tradebinder/tradebinder/pkg/clients/marketplace"
	"github.com/tradebinder/tradebinder/pkg/config"
	"github.com/tradebinder/tradebinder/pkg/logger"
	"github.com/tradebinder/tradebinder/pkg/session"
	"github.com/tradebinder/tradebinder/pkg/telemetry"
	"github.com/tradebinder/tradebinder/pkg/transform"
	"github.com/tradebinder/tradebinder/pkg/types"
)

const localStubAddr = "127.0.0.1:8084"

func main() {
	configPath := flag.String("config", "conf", "directory containing app.yaml")
	local := flag.Bool("local", false, "start the embedded stub marketplace and point the client at it")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	log := logger.Init(cfg.Log)
	ctx := logger.WithRequestID(context.Background())

	if err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Insecure:       cfg.Telemetry.Insecure,
		Enabled:        cfg.Telemetry.Enabled,
	}); err != nil {
		log.WithError(err).Fatal("failed to initialize telemetry")
	}
	defer func() {
		_ = telemetry.Shutdown(context.Background())
	}()

	baseURL := cfg.Marketplace.BaseURL
	if *local {
		fixtures, err := devserver.DefaultFixtures()
		if err != nil {
			log.WithError(err).Fatal("failed to load stub fixtures")
		}
		stub := devserver.New(fixtures)
		go func() {
			if err := stub.Start(localStubAddr); err != nil {
				log.WithError(err).Fatal("stub marketplace server exited")
			}
		}()
		baseURL = "http://" + localStubAddr
		time.Sleep(200 * time.Millisecond)
	}

	client, err := marketplace.NewClient(
		marketplace.Config{BaseURL: baseURL},
		cfg.ConnectionPool,
		cfg.Hystrix,
	)
	if err != nil {
		log.WithError(err).Fatal("failed to create marketplace client")
	}

	store := session.New(client, types.User{
		ID:          "u1",
		Username:    "ashk",
		DisplayName: "Ash Ketchum",
		Email:       "ash@tradebinder.app",
	})

	unsubscribe := store.Subscribe(func(snap session.Snapshot) {
		logger.Logger(ctx).WithFields(logrus.Fields{
			"collections":       len(snap.Collections),
			"inventory":         len(snap.Inventory),
			"loading":           snap.Loading,
			"inventory_loading": snap.InventoryLoading,
		}).Debug("session state changed")
	})
	defer unsubscribe()

	if err := store.ReloadUser(ctx); err != nil {
		log.WithError(err).Warn("could not load user profile")
	}
	if err := store.Refresh(ctx); err != nil {
		log.WithError(err).Warn("could not refresh session data")
	}

	stats := store.InventoryStats()
	log.WithFields(logrus.Fields{
		"total":       stats.TotalProducts,
		"available":   stats.AvailableProducts,
		"total_value": stats.TotalValue,
		"by_type":     stats.ByProductType,
		"by_cond":     stats.ByCondition,
	}).Info("inventory stats")

	catalogCache, err := newCatalogCache(cfg.Cache)
	if err != nil {
		log.WithError(err).Fatal("failed to create catalog cache")
	}
	cat := catalog.New(client, catalogCache, time.Duration(cfg.Cache.TTL)*time.Second)

	for _, view := range transform.NewCardViews(store.Snapshot().Inventory) {
		// warm the catalog cache so the card detail screens are instant
		if _, err := cat.Get(ctx, view.ID); err != nil {
			log.WithError(err).WithField("productID", view.ID).Warn("could not warm catalog entry")
			continue
		}
		log.WithFields(logrus.Fields{
			"name":          view.Name,
			"set":           view.SetName,
			"display_price": view.DisplayPrice,
			"condition":     view.Condition,
		}).Info("card")
	}
}

func newCatalogCache(cfg config.CacheConfig) (cache.Cache, error) {
	if cfg.Backend == "redis" {
		return redis.NewCache(cfg.Redis)
	}
	return inmemory.NewCache(cfg.InMemory)
}
