package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/example/furnishop/internal/api"
	"github.com/example/furnishop/internal/auth"
	"github.com/example/furnishop/internal/catalog"
	"github.com/example/furnishop/internal/command"
	"github.com/example/furnishop/internal/domain/cart"
	"github.com/example/furnishop/internal/domain/order"
	"github.com/example/furnishop/internal/domain/product"
	"github.com/example/furnishop/internal/domain/user"
	"github.com/example/furnishop/internal/domain/wishlist"
	"github.com/example/furnishop/internal/infrastructure/kafka"
	"github.com/example/furnishop/internal/infrastructure/store"
	"github.com/example/furnishop/internal/notification"
	"github.com/example/furnishop/internal/projection"
	"github.com/example/furnishop/internal/query"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "HTTP listen address")
	serveCmd.Flags().String("jwt-secret", "", "JWT signing secret (min 32 chars)")
	serveCmd.Flags().Duration("token-expiry", 24*time.Hour, "session token lifetime")
	serveCmd.Flags().String("kafka-brokers", "", "comma-separated Kafka brokers; empty runs in-process")
	serveCmd.Flags().String("kafka-topic", "shop-events", "Kafka topic for domain events")

	viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("jwt-secret", serveCmd.Flags().Lookup("jwt-secret"))
	viper.BindPFlag("token-expiry", serveCmd.Flags().Lookup("token-expiry"))
	viper.BindPFlag("kafka-brokers", serveCmd.Flags().Lookup("kafka-brokers"))
	viper.BindPFlag("kafka-topic", serveCmd.Flags().Lookup("kafka-topic"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	jwtSecret := viper.GetString("jwt-secret")
	if len(jwtSecret) < 32 {
		return errors.New("jwt-secret is required and must be at least 32 characters")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	readStore := store.NewReadStore()
	projector := projection.NewProjector(readStore)
	notifier := notification.NewHandler(readStore)

	var publisher store.Publisher
	brokersStr := viper.GetString("kafka-brokers")
	topic := viper.GetString("kafka-topic")

	if brokersStr != "" {
		brokers := strings.Split(brokersStr, ",")
		log.Infof("[Serve] Kafka mode: brokers=%v topic=%s", brokers, topic)

		producer := kafka.NewProducer(brokers, topic)
		defer producer.Close()
		publisher = producer

		for name, handler := range map[string]kafka.MessageHandler{
			"projector": projector.HandleEvent,
			"notifier":  notifier.HandleEvent,
		} {
			consumer := kafka.NewConsumer(brokers, topic, name)
			defer consumer.Close()
			go func(name string, consumer *kafka.Consumer, handler kafka.MessageHandler) {
				if err := consumer.Consume(ctx, handler); err != nil && ctx.Err() == nil {
					log.WithError(err).Errorf("[Serve] %s consumer stopped", name)
				}
			}(name, consumer, handler)
		}
	} else {
		log.Info("[Serve] In-process mode: events dispatched synchronously")
		publisher = projection.NewSyncDispatcher(projector.HandleEvent, notifier.HandleEvent)
	}

	eventStore := store.NewEventStore(publisher)

	productSvc := product.NewService(eventStore)
	cartSvc := cart.NewService(eventStore)
	wishlistSvc := wishlist.NewService(eventStore)
	orderSvc := order.NewService(eventStore)
	userSvc := user.NewService(eventStore, readStore)

	if err := loadCatalog(ctx, productSvc); err != nil {
		return err
	}

	jwtService := auth.NewJWTService(jwtSecret, viper.GetDuration("token-expiry"))

	cmdHandler := command.NewHandler(productSvc, cartSvc, wishlistSvc, orderSvc, readStore)
	queryHandler := query.NewHandler(readStore)

	handlers := api.NewHandlers(cmdHandler, queryHandler)
	authHandlers := api.NewAuthHandlers(userSvc, jwtService)
	router := api.NewRouter(handlers, authHandlers, jwtService)

	addr := viper.GetString("addr")
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("[Serve] Listening on %s", addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.WithError(err).Fatal("[Serve] Server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}

	log.Info("[Serve] Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}

// loadCatalog pushes the catalog fixture through the write side so read
// models come up via the same projection path as live changes. A bad
// fixture stops the boot.
func loadCatalog(ctx context.Context, productSvc *product.Service) error {
	path := viper.GetString("catalog")

	products, err := catalog.Load(path)
	if err != nil {
		return fmt.Errorf("catalog %s: %w", path, err)
	}

	for _, p := range products {
		if err := productSvc.Create(ctx, p); err != nil {
			return fmt.Errorf("catalog product %d: %w", p.ID, err)
		}
	}

	log.Infof("[Serve] Catalog loaded: %d products", len(products))
	return nil
}
