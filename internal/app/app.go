package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/chrisq/qonnect-server/internal/config"
	"github.com/chrisq/qonnect-server/internal/database"
	"github.com/chrisq/qonnect-server/internal/middleware"
)

type App struct {
	log        *logrus.Logger
	router     *http.ServeMux
	db         *pgxpool.Pool
	cookies    *config.Cookies
	ws         *config.WebSocket
	migrations fs.FS
}

func New(log *logrus.Logger, migrations fs.FS) *App {
	return &App{
		log:        log,
		router:     http.NewServeMux(),
		migrations: migrations,
	}
}

func addr() string {
	if port := config.Port(); port != "" {
		return ":" + port
	}
	return ":8080"
}

// Start connects to the database, runs migrations, and serves until ctx is
// cancelled, then shuts down gracefully.
func (a *App) Start(ctx context.Context) error {
	db, _, err := database.ConnectAndMigrate(ctx, a.migrations)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	a.db = db
	defer db.Close()

	jwt, err := config.NewJWT()
	if err != nil {
		return err
	}

	a.cookies, err = config.NewCookies(jwt)
	if err != nil {
		return err
	}

	a.ws, err = config.NewWebSocket()
	if err != nil {
		return err
	}

	a.loadRoutes()

	server := &http.Server{
		Addr: addr(),
		Handler: middleware.Wrap(
			a.router,
			middleware.Logging(a.log),
			middleware.Auth(a.cookies),
			middleware.Cors(),
		),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.WithField("addr", server.Addr).Info("ready to serve")

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
