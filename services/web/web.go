package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const (
	WebHostFlag = "host"
	WebPortFlag = "port"
)

const shutdownTimeout = 10 * time.Second

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   WebHostFlag,
			Usage:  "listening host",
			Value:  "",
			EnvVar: "WEB_HOST",
		},
		cli.IntFlag{
			Name:   WebPortFlag,
			Usage:  "http listening port",
			Value:  8080,
			EnvVar: "WEB_PORT",
		},
	)
}

type Web struct {
	host string
	port int
	srv  *http.Server
}

func New(c *cli.Context, r *gin.Engine) *Web {
	return &Web{
		host: c.String(WebHostFlag),
		port: c.Int(WebPortFlag),
		srv: &http.Server{
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Serve listens until SIGINT or SIGTERM, then drains open requests.
// Websocket connections are hijacked and are not waited for.
func (s *Web) Serve() error {
	s.srv.Addr = fmt.Sprintf("%s:%d", s.host, s.port)
	errCh := make(chan error, 1)
	go func() {
		log.Infof("serving Web at %v", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- errors.Wrap(err, "failed to serve web")
		}
		close(errCh)
	}()
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(done)
	select {
	case err := <-errCh:
		return err
	case sig := <-done:
		log.WithField("signal", sig).Info("shutdown signal received")
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("graceful shutdown failed")
		return s.srv.Close()
	}
	log.Info("web server stopped")
	return nil
}

func (s *Web) Close() {
	_ = s.srv.Close()
}
