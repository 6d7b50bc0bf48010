package main

import (
	"context"
	"errors"
	"fmt"
	"library-articles/app/server/apidocs"
	"library-articles/app/server/auth"
	"library-articles/app/server/handlers"
	"library-articles/app/server/inits"
	"library-articles/app/server/middlewares"
	"library-articles/app/server/repositories"
	"library-articles/app/server/services"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var rootCommand = &cobra.Command{
	Use:   "library-articles",
	Short: "Library checkout and article publishing API",
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func init() {
	rootCommand.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		Run: func(cmd *cobra.Command, args []string) {
			serve()
		},
	})

	rootCommand.AddCommand(&cobra.Command{
		Use:   "import-books [file.csv]",
		Short: "Upsert books from a title,author,description,copies,category,img CSV",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			importBooks(args[0])
		},
	})
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve() {
	// config
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// logger
	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer l.Sync()
	l.Debug("logger initialized")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// database
	db, err := inits.DB(cfg.System.DBConnectionString, l)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// redis, optional
	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	} else if rdb == nil {
		l.Info("redis not configured, caching disabled")
	}

	// image storage
	images, err := inits.Storage(ctx, cfg, l)
	if err != nil {
		l.Fatal("error initializing image storage", zap.Error(err))
	}

	// token verification
	fbClient, err := auth.NewFirebaseClient(ctx, cfg.Security.FirebaseProjectID)
	if err != nil {
		l.Fatal("error initializing firebase client", zap.Error(err))
	}
	firebase, err := auth.NewFirebaseVerifier(fbClient, cfg.Security.AuthTimeout)
	if err != nil {
		l.Fatal("error initializing token verifier", zap.Error(err))
	}
	var verifier auth.Verifier = firebase
	if rdb != nil {
		verifier = auth.NewCachedVerifier(firebase, rdb, l)
	}
	gate := middlewares.NewGate(verifier, cfg.Security.AdminEmails, l)

	// services
	store := repositories.NewStore(db)
	md := services.NewMarkdown()
	app := handlers.NewApp(l, gate, store, handlers.Services{
		Books:       services.NewBookService(store),
		Checkout:    services.NewCheckoutService(store, cfg.Loan.Period, cfg.Loan.MaxRenewals),
		Articles:    services.NewArticleService(store, images, md),
		TechDetails: services.NewTechDetailService(store, rdb, l, md),
		Scores:      services.NewReviewScoreService(store),
		Users:       services.NewUserService(store),
	})

	// api docs outside production
	echoCfg := handlers.EchoConfig{
		CORSOrigins: cfg.System.CORSOrigins,
		RateLimit:   cfg.System.RateLimit,
	}
	if !cfg.System.IsProd {
		if echoCfg.APIDocs, err = apidocs.SpecJSON(ctx); err != nil {
			l.Error("error initializing api docs", zap.Error(err))
		}
	}
	e := app.Echo(echoCfg)

	// start
	go func() {
		l.Info("serving", zap.String("listen", cfg.System.Listen))
		if err := e.Start(cfg.System.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	l.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		l.Warn("server did not shut down gracefully", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}

func importBooks(path string) {
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer l.Sync()

	db, err := inits.DB(cfg.System.DBConnectionString, l)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	f, err := os.Open(path)
	if err != nil {
		l.Fatal("error opening catalog", zap.String("path", path), zap.Error(err))
	}
	defer f.Close()

	res, err := services.ImportBooks(context.Background(), repositories.NewStore(db), f, l)
	if err != nil {
		l.Fatal("error importing catalog", zap.String("path", path), zap.Error(err))
	}

	fmt.Printf("Imported %d new and %d existing books from %s\n", res.Created, res.Updated, path)
}
