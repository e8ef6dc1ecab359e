package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"pizzaria-veneza/config"
	httpapi "pizzaria-veneza/pos-svc/internal/api/http"
	"pizzaria-veneza/pos-svc/internal/domain"
	"pizzaria-veneza/pos-svc/internal/menu"
	"pizzaria-veneza/pos-svc/internal/pricing"
	"pizzaria-veneza/pos-svc/internal/service"
	"pizzaria-veneza/pos-svc/internal/storage"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.WithError(err).Fatal("pos-svc failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "pos-svc",
		Usage: "Pizzaria Veneza point of sale",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:  "menu",
				Usage: "print the catalog",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "print the catalog as JSON"},
				},
				Action: printMenu,
			},
			{
				Name:  "orders",
				Usage: "inspect and manage stored orders",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "list orders, optionally filtered by status",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "status", Usage: "pending, preparing, ready or delivered"},
						},
						Action: listOrders,
					},
					{
						Name:      "status",
						Usage:     "set the status of an order",
						ArgsUsage: "<order-id> <status>",
						Action:    setOrderStatus,
					},
					{
						Name:      "advance",
						Usage:     "move an order to the next status",
						ArgsUsage: "<order-id>",
						Action:    advanceOrder,
					},
					{
						Name:      "delete",
						Usage:     "delete an order",
						ArgsUsage: "<order-id>",
						Action:    deleteOrder,
					},
				},
			},
		},
	}
}

type runtime struct {
	settings config.Settings
	logger   *log.Logger
	calc     *pricing.Calculator
	persist  service.Persister
	closers  []func() error
}

func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			rt.logger.WithError(err).Warn("close failed")
		}
	}
}

func setup(ctx context.Context) (*runtime, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := config.NewLogger(settings.LogLevel, settings.LogFormat)
	if err != nil {
		return nil, err
	}

	rt := &runtime{
		settings: settings,
		logger:   logger,
		calc:     pricing.NewCalculator(menu.Default()),
	}

	kv, err := rt.openKeyValue(ctx)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.persist = storage.NewSnapshotStore(kv, settings.WriteTimeout, logger)
	return rt, nil
}

func (rt *runtime) openKeyValue(ctx context.Context) (storage.KeyValue, error) {
	switch rt.settings.Storage {
	case "redis":
		client := config.MustInitRedis(rt.settings)
		rt.closers = append(rt.closers, client.Close)
		return storage.NewRedisStore(client, rt.settings.RedisPrefix), nil
	case "postgres":
		db := config.MustInitPostgres(rt.settings)
		rt.closers = append(rt.closers, db.Close)
		store := storage.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		db := config.MustInitSQLite(rt.settings)
		if sqlDB, err := db.DB(); err == nil {
			rt.closers = append(rt.closers, sqlDB.Close)
		}
		return storage.NewSQLiteStore(db)
	}
}

// session builds and loads a session synchronously, for one-shot commands.
func (rt *runtime) session(ctx context.Context) *service.Session {
	session := service.NewSession(rt.calc, rt.persist, rt.logger)
	session.Load(ctx)
	return session
}

func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := setup(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	var opts []service.OrderStoreOption
	if rt.settings.KafkaBroker != "" {
		writer := config.NewKafkaWriter(rt.settings)
		rt.closers = append(rt.closers, writer.Close)
		opts = append(opts, service.WithObserver(storage.NewKafkaPublisher(writer, rt.settings.WriteTimeout, rt.logger)))
		rt.logger.WithField("topic", rt.settings.OrdersTopic).Info("order events enabled")
	}

	session := service.NewSession(rt.calc, rt.persist, rt.logger, opts...)
	go session.Load(ctx)

	handler := httpapi.NewHandler(session, rt.calc, service.DefaultQRGenerator{BaseURL: rt.settings.PublicURL})
	return httpapi.StartServer(ctx, rt.settings.HTTPAddr, httpapi.NewRouter(handler, rt.logger), rt.logger)
}

func printMenu(c *cli.Context) error {
	catalog := menu.Default()
	out := c.App.Writer

	if c.Bool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(catalog)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, category := range catalog.Categories {
		fmt.Fprintf(tw, "%s\n", category.Name)
		for _, pizza := range category.Pizzas {
			fmt.Fprintf(tw, "  %s\t%s", pizza.ID, pizza.Name)
			for _, size := range domain.Sizes {
				price, _ := pizza.Price(size)
				fmt.Fprintf(tw, "\t%s %s", size.Label(), price.StringFixed(2))
			}
			fmt.Fprintln(tw)
		}
	}
	fmt.Fprintln(tw, "Bordas")
	for _, crust := range catalog.Crusts {
		fmt.Fprintf(tw, "  %s\t+%s\n", crust.Name, crust.Surcharge.StringFixed(2))
	}
	fmt.Fprintln(tw, "Adicionais")
	for _, addOn := range catalog.AddOns {
		fmt.Fprintf(tw, "  %s\t+%s\n", addOn.Name, addOn.Surcharge.StringFixed(2))
	}
	return tw.Flush()
}

func listOrders(c *cli.Context) error {
	rt, err := setup(c.Context)
	if err != nil {
		return err
	}
	defer rt.Close()
	session := rt.session(c.Context)

	orders := session.Orders.Orders()
	if raw := c.String("status"); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			return err
		}
		orders = session.Orders.ByStatus(status)
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tTABLE\tCUSTOMER\tITEMS\tTOTAL")
	for _, order := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			order.ID, order.Status.Label(), order.Table, order.Customer, len(order.Items), order.Total.StringFixed(2))
	}
	return tw.Flush()
}

func setOrderStatus(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("usage: orders status <order-id> <status>", 2)
	}
	status, err := domain.ParseStatus(c.Args().Get(1))
	if err != nil {
		return err
	}
	return withOrder(c, func(orders *service.OrderStore, id string) (bool, error) {
		return orders.SetStatus(id, status)
	})
}

func advanceOrder(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: orders advance <order-id>", 2)
	}
	return withOrder(c, func(orders *service.OrderStore, id string) (bool, error) {
		_, found := orders.AdvanceStatus(id)
		return found, nil
	})
}

func deleteOrder(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: orders delete <order-id>", 2)
	}
	return withOrder(c, func(orders *service.OrderStore, id string) (bool, error) {
		return orders.DeleteOrder(id), nil
	})
}

func withOrder(c *cli.Context, apply func(orders *service.OrderStore, id string) (bool, error)) error {
	rt, err := setup(c.Context)
	if err != nil {
		return err
	}
	defer rt.Close()
	session := rt.session(c.Context)

	id := c.Args().First()
	found, err := apply(session.Orders, id)
	if err != nil {
		return err
	}
	if !found {
		return cli.Exit(fmt.Sprintf("order %s not found", id), 1)
	}

	if order, ok := session.Orders.GetByID(id); ok {
		fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\n", order.ID, order.Status.Label(), order.Total.StringFixed(2))
	} else {
		fmt.Fprintf(c.App.Writer, "%s deleted\n", id)
	}
	return nil
}
