package server

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

	"github.com/gin-gonic/gin"

	"github.com/pm1-tools/pm1/pm1"
)

const defaultListenAddr = ":1080"

// NewRouter wires the factor API onto a fresh Gin engine.
func NewRouter(conf pm1.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	h := newFactorHandler(conf)
	router.GET("/api/options", optionsHandler(conf))
	router.POST("/api/factor", h.factor)
	router.GET("/ws/factor", h.stream)

	return router
}

// Run starts the Gin HTTP server that exposes the factor APIs.
func Run(listenAddr string, conf pm1.Config) error {
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	srv := &http.Server{Addr: listenAddr, Handler: NewRouter(conf)}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		if strings.Contains(err.Error(), "address already in use") {
			return fmt.Errorf("listen %s: %w", listenAddr, err)
		}
		return err
	}

	return nil
}
