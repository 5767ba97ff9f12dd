package main

import (
	"context"
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/karsis/b2b-eshop/internal/config"
	"github.com/karsis/b2b-eshop/internal/db"
	"github.com/karsis/b2b-eshop/internal/es"
	"github.com/karsis/b2b-eshop/internal/httpserver"
	"github.com/karsis/b2b-eshop/internal/logging"
	loggingmw "github.com/karsis/b2b-eshop/internal/middleware/logging"
	"github.com/karsis/b2b-eshop/internal/mykafka"
	"github.com/karsis/b2b-eshop/internal/repo"
	"github.com/karsis/b2b-eshop/internal/service"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("database: %v", err)
	}

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = mykafka.NewProducer(cfg.KafkaBrokers)
		defer producer.Close()
	}

	r := &repo.GormRepo{DB: gdb}

	deps := &httpserver.Deps{
		JWTSecret: cfg.JWTSecret,
		Auth: &httpserver.AuthHTTP{
			Svc: &service.AuthService{Repo: r, JWTSecret: cfg.JWTSecret, Country: cfg.ShippingCountry},
		},
		Orders: &httpserver.OrderHTTP{
			Svc: &service.OrderService{Repo: r, Currency: cfg.DefaultCurrency, Country: cfg.ShippingCountry},
		},
		Products: &httpserver.ProductHTTP{
			Svc:      &service.CatalogService{Repo: r},
			Producer: producer,
		},
		Categories: &httpserver.CategoryHTTP{
			Svc: &service.CategoryService{Repo: r},
		},
		ShoppingList: &httpserver.ShoppingListHTTP{
			Svc: &service.ShoppingListService{Repo: r},
		},
		Admin: &httpserver.AdminHTTP{
			Svc: &service.AdminService{Repo: r},
		},
	}

	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		deps.Search = &httpserver.SearchHTTP{ES: esClient, Index: cfg.ESIndex}
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, deps)

	logger.Info("server starting", "service", cfg.ServiceName, "port", cfg.ServerPort)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.ServerPort)))
}
