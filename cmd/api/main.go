package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cryptocube/internal/accounts"
	"cryptocube/internal/auth"
	"cryptocube/internal/config"
	"cryptocube/internal/db"
	"cryptocube/internal/execution"
	"cryptocube/internal/httpserver"
	"cryptocube/internal/marketdata"
	"cryptocube/internal/orders"
	"cryptocube/internal/portfolio"
	"cryptocube/internal/positions"

	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatal(err)
	}

	initialCash, err := decimal.NewFromString(cfg.InitialCash)
	if err != nil {
		log.Fatal(err)
	}

	quotes := marketdata.NewQuotes()
	feed := marketdata.NewFeed(cfg.PriceFeedURL, cfg.PriceFeedInterval, quotes)
	quoteWS := marketdata.NewQuoteWS(cfg.WebSocketOrigin, quotes)
	marketHandler := marketdata.NewHandler(quotes, quoteWS)

	accountSvc := accounts.NewService(pool, initialCash)
	positionStore := positions.NewStore(pool)
	orderStore := orders.NewStore(pool)
	orderSvc := orders.NewService(pool, orderStore)
	processor := execution.NewProcessor(pool, orderStore, positionStore, accountSvc, feed)
	portfolioSvc := portfolio.NewService(pool, accountSvc, positionStore, feed)
	snapshotter := portfolio.NewSnapshotter(portfolioSvc, cfg.SnapshotInterval)
	authSvc := auth.NewService(pool, cfg.JWTIssuer, []byte(cfg.JWTSecret), cfg.JWTTTL, accountSvc)

	router := httpserver.NewRouter(httpserver.RouterDeps{
		AuthHandler:      auth.NewHandler(authSvc),
		AccountsHandler:  accounts.NewHandler(accountSvc),
		OrderHandler:     orders.NewHandler(orderSvc, accountSvc),
		ExecutionHandler: execution.NewHandler(processor, accountSvc),
		PortfolioHandler: portfolio.NewHandler(portfolioSvc, accountSvc),
		MarketHandler:    marketHandler,
		AuthService:      authSvc,
	})
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go feed.Run(ctx)
	go snapshotter.Run(ctx)

	log.Printf("server listening on %s", cfg.HTTPAddr)
	log.Printf("health endpoint: http://localhost%s/health", cfg.HTTPAddr)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
