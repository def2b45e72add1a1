package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi"
	"github.com/go-chi/docgen"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sksmith/bunnyq"
	"github.com/threadcount/fulfillment/api"
	"github.com/threadcount/fulfillment/config"
	"github.com/threadcount/fulfillment/core/cart"
	"github.com/threadcount/fulfillment/core/catalog"
	"github.com/threadcount/fulfillment/core/inventory"
	"github.com/threadcount/fulfillment/core/order"
	"github.com/threadcount/fulfillment/core/supply"
	"github.com/threadcount/fulfillment/core/user"
	"github.com/threadcount/fulfillment/db"
	"github.com/threadcount/fulfillment/db/catrepo"
	"github.com/threadcount/fulfillment/db/invrepo"
	"github.com/threadcount/fulfillment/db/ordrepo"
	"github.com/threadcount/fulfillment/db/suprepo"
	"github.com/threadcount/fulfillment/db/usrrepo"
	"github.com/threadcount/fulfillment/queue"

	"github.com/common-nighthawk/go-figure"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()

	configLogging(cfg)
	printLogHeader(cfg)
	cfg.Print()

	dbPool, err := db.ConnectDb(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to the database")
	}

	bq := rabbit(cfg)
	eventQueue := configEventQueue(bq, cfg)

	log.Info().Msg("creating inventory service...")
	ledger := inventory.NewService(invrepo.NewPostgresRepo(dbPool), eventQueue)

	log.Info().Msg("creating catalog service...")
	catalogService := catalog.NewService(catrepo.NewPostgresRepo(dbPool))

	log.Info().Msg("creating cart service...")
	store, err := cart.NewLRUStore(cfg.Store.CartSessionLimit)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create cart store")
	}
	cartService := cart.NewService(store, catalogService, ledger, cfg.Store.LocationID)

	log.Info().Msg("creating order service...")
	orderService := order.NewService(ordrepo.NewPostgresRepo(dbPool), ledger, eventQueue, cfg.Store.LocationID)

	log.Info().Msg("creating supply service...")
	supplyService := supply.NewService(suprepo.NewPostgresRepo(dbPool), ledger, eventQueue)

	log.Info().Msg("creating user service...")
	userService := user.NewService(usrrepo.NewPostgresRepo(dbPool))

	log.Info().Msg("configuring metrics...")
	api.ConfigureMetrics()

	log.Info().Msg("configuring router...")
	r := api.ConfigureRouter(cfg, ledger, cartService, orderService, supplyService, catalogService, userService)

	if cfg.GenerateRoutes {
		generateRouteDocs(r)
		return
	}

	log.Info().Msg("consuming models...")
	modelQueue := queue.NewModelQueue(bq, cfg.RabbitMQ.Model.Queue, cfg.RabbitMQ.Model.Dlt.Exchange)
	go modelQueue.ConsumeModels(ctx, catalogService)

	log.Info().Str("port", cfg.Port).Msg("listening")
	log.Fatal().Err(http.ListenAndServe(":"+cfg.Port, r))
}

type eventPublisher interface {
	inventory.Queue
	order.Queue
	supply.Queue
}

func configEventQueue(bq *bunnyq.BunnyQ, cfg *config.Config) eventPublisher {
	if cfg.RabbitMQ.Mock {
		log.Info().Msg("creating mock queue...")
		return queue.NewMockQueue()
	}
	log.Info().Msg("connecting to rabbitmq...")
	return queue.New(bq,
		cfg.RabbitMQ.Stock.Exchange,
		cfg.RabbitMQ.Invoice.Exchange,
		cfg.RabbitMQ.SupplyOrder.Exchange)
}

func rabbit(cfg *config.Config) *bunnyq.BunnyQ {
	osChannel := make(chan os.Signal, 1)
	signal.Notify(osChannel, syscall.SIGTERM)

	return bunnyq.New(context.Background(),
		bunnyq.Address{
			User: cfg.RabbitMQ.User,
			Pass: cfg.RabbitMQ.Pass,
			Host: cfg.RabbitMQ.Host,
			Port: cfg.RabbitMQ.Port,
		},
		osChannel,
		bunnyq.LogHandler(logger{}),
	)
}

type logger struct {
}

func (l logger) Log(_ context.Context, level bunnyq.LogLevel, msg string, data map[string]interface{}) {
	var evt *zerolog.Event
	switch level {
	case bunnyq.LogLevelTrace:
		evt = log.Trace()
	case bunnyq.LogLevelDebug:
		evt = log.Debug()
	case bunnyq.LogLevelInfo:
		evt = log.Info()
	case bunnyq.LogLevelWarn:
		evt = log.Warn()
	case bunnyq.LogLevelError:
		evt = log.Error()
	case bunnyq.LogLevelNone:
		evt = log.Info()
	default:
		evt = log.Info()
	}

	for k, v := range data {
		evt.Interface(k, v)
	}

	evt.Msg(msg)
}

func printLogHeader(cfg *config.Config) {
	if cfg.Log.Structured {
		log.Info().Str("application", cfg.AppName).
			Str("revision", cfg.Revision).
			Str("version", cfg.AppVersion).
			Str("sha1ver", cfg.Sha1Version).
			Str("build-time", cfg.BuildTime).
			Str("profile", cfg.Profile).
			Str("config-source", cfg.Config.Source).
			Str("config-branch", cfg.Config.Spring.Branch).
			Send()
	} else {
		f := figure.NewFigure(cfg.AppName, "", true)
		f.Print()

		log.Info().Msg("=============================================")
		log.Info().Msg(fmt.Sprintf("       Revision: %s", cfg.Revision))
		log.Info().Msg(fmt.Sprintf("        Profile: %s", cfg.Profile))
		log.Info().Msg(fmt.Sprintf("  Config Server: %s - %s", cfg.Config.Source, cfg.Config.Spring.Branch))
		log.Info().Msg(fmt.Sprintf("    Tag Version: %s", cfg.AppVersion))
		log.Info().Msg(fmt.Sprintf("   Sha1 Version: %s", cfg.Sha1Version))
		log.Info().Msg(fmt.Sprintf("     Build Time: %s", cfg.BuildTime))
		log.Info().Msg("=============================================")
	}
}

func generateRouteDocs(r chi.Router) {
	mux, ok := r.(*chi.Mux)
	if !ok {
		log.Error().Msg("unable to generate route documentation")
		return
	}

	fmt.Println(docgen.MarkdownRoutesDoc(mux, docgen.MarkdownOpts{
		ProjectPath: "github.com/threadcount/fulfillment",
		Intro:       "Fulfillment service routes.",
	}))
}

func configLogging(cfg *config.Config) {
	log.Info().Msg("configuring logging...")

	if !cfg.Log.Structured {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Warn().Str("loglevel", cfg.Log.Level).Err(err).Msg("defaulting to info")
		level = zerolog.InfoLevel
	}
	log.Info().Str("loglevel", level.String()).Msg("setting log level")
	zerolog.SetGlobalLevel(level)
}
