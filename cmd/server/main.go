// main wires high-level dependencies, exposes the HTTP router, and runs the
// bus relay next to the server. Business logic lives in internal packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	"orgregistry/internal/catalog"
	connectorhandler "orgregistry/internal/connector/handler"
	connectorservice "orgregistry/internal/connector/service"
	connectorstore "orgregistry/internal/connector/store"
	httpapi "orgregistry/internal/http"
	jwttoken "orgregistry/internal/jwt_token"
	"orgregistry/internal/messaging"
	participanthandler "orgregistry/internal/participant/handler"
	participantmetrics "orgregistry/internal/participant/metrics"
	participantservice "orgregistry/internal/participant/service"
	participantstore "orgregistry/internal/participant/store"
	"orgregistry/internal/platform/config"
	"orgregistry/internal/platform/httpserver"
	"orgregistry/internal/platform/logger"
	platformpg "orgregistry/internal/platform/postgres"
	"orgregistry/pkg/platform/cipher"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokenCipher, err := cipher.Derive(cfg.CipherPassphrase, []byte(cfg.CipherSalt))
	if err != nil {
		log.Error("failed to derive connector cipher", "error", err)
		os.Exit(1)
	}

	catalogClient := catalog.NewHTTP(cfg.CatalogURL)

	var metadataStore participantservice.MetadataStore
	var connStore connectorservice.Store
	if cfg.DatabaseURL != "" {
		db, err := platformpg.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		metadataStore = participantstore.NewPostgres(db)
		connStore = connectorstore.NewPostgres(db)
	} else {
		log.Warn("no database configured, using in-memory stores")
		metadataStore = participantstore.NewInMemory()
		connStore = connectorstore.NewInMemory()
	}

	connectorSvc := connectorservice.New(connStore, tokenCipher, connectorservice.WithLogger(log))

	var kafkaClient *kgo.Client
	participantOpts := []participantservice.Option{
		participantservice.WithConnectorSource(connectorSvc),
		participantservice.WithLogger(log),
		participantservice.WithMetrics(participantmetrics.New()),
	}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaClient, err = kgo.NewClient(
			kgo.SeedBrokers(cfg.KafkaBrokers...),
			kgo.ConsumeTopics(messaging.TopicOrganizationRequest, messaging.TopicConnectorRequest),
			kgo.ConsumerGroup("orgregistry"),
		)
		if err != nil {
			log.Error("failed to connect to kafka", "error", err)
			os.Exit(1)
		}
		defer kafkaClient.Close()
		if err := messaging.EnsureTopics(ctx, kafkaClient); err != nil {
			log.Error("failed to ensure bus topics", "error", err)
			os.Exit(1)
		}
		participantOpts = append(participantOpts,
			participantservice.WithRevocationNotifier(messaging.NewNotifier(kafkaClient)))
	} else {
		log.Warn("no kafka brokers configured, bus relay disabled")
	}

	participantSvc := participantservice.New(catalogClient, metadataStore, participantOpts...)

	router := httpapi.NewRouter(
		participanthandler.New(participantSvc, log),
		connectorhandler.New(connectorSvc, log),
		jwttoken.NewJWTService(cfg.JWTSigningKey, "orgregistry"),
		log,
	)
	srv := httpserver.New(cfg.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("starting orgregistry", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if kafkaClient != nil {
		relay := messaging.NewRelay(kafkaClient, kafkaClient, participantSvc, connectorSvc, log)
		group.Go(func() error {
			if err := relay.Run(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		log.Error("shutdown with error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
