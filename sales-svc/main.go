package main

import (
	"os"
	"os/signal"
	"syscall"

	"pizzaria-veneza/config"
	httpapi "pizzaria-veneza/sales-svc/internal/api/http"
	"pizzaria-veneza/sales-svc/internal/service"
	"pizzaria-veneza/sales-svc/internal/storage"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.WithError(err).Fatal("sales-svc failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "sales-svc",
		Usage: "daily sales tallies from the order event journal",
		Commands: []*cli.Command{
			{
				Name:   "consume",
				Usage:  "read order events into the daily tallies",
				Action: consume,
			},
			{
				Name:  "serve",
				Usage: "serve the sales reports over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Value: ":8081", Usage: "listen address"},
				},
				Action: serve,
			},
		},
	}
}

func setup() (config.Settings, *log.Logger, error) {
	settings, err := config.Load()
	if err != nil {
		return config.Settings{}, nil, err
	}
	logger, err := config.NewLogger(settings.LogLevel, settings.LogFormat)
	if err != nil {
		return config.Settings{}, nil, err
	}
	return settings, logger, nil
}

func consume(c *cli.Context) error {
	settings, logger, err := setup()
	if err != nil {
		return err
	}
	if settings.KafkaBroker == "" {
		return cli.Exit("POS_KAFKA_BROKER is required", 2)
	}
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.MustInitRedis(settings)
	defer rdb.Close()

	reader := config.NewKafkaReader(settings)
	defer reader.Close()

	service.NewConsumer(reader, storage.NewStore(rdb), logger).Start(ctx)
	return nil
}

func serve(c *cli.Context) error {
	settings, _, err := setup()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.MustInitRedis(settings)
	defer rdb.Close()

	handler := httpapi.NewHandler(service.NewReports(storage.NewStore(rdb)))
	return httpapi.StartServer(ctx, c.String("addr"), httpapi.NewRouter(handler))
}
