package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
	"zeebeapi/internal/ports"

	log "github.com/sirupsen/logrus"
)

// RunServerInterruptible runs the server in the background in a Go routine and immediately returns a chan to
// the caller. The caller can then send a signal to the chan to gracefully shutdown the server.
// It's up to the caller to wait for in the main Go routine to keep the server running.
func RunServerInterruptible(port int, gw Gateway, profiles ports.ProfileStore) (stop chan<- struct{}, done <-chan error) {
	h := NewHandler(gw, profiles)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopCh := make(chan struct{})
	doneCh := make(chan error, 1)

	go func() {
		log.WithField("addr", srv.Addr).Info("zeebeapi listening")
		err := srv.ListenAndServe()
		// http.ErrServerClosed is returned on Shutdown; treat that as clean exit
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			doneCh <- err
			return
		}
		doneCh <- nil
	}()

	go func() {
		<-stopCh
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx) // in-flight requests get time to finish
	}()
	return stopCh, doneCh
}

// Serve runs the HTTP server until ctx is done. This is a blocking call.
func Serve(ctx context.Context, port int, gw Gateway, profiles ports.ProfileStore) error {
	stop, done := RunServerInterruptible(port, gw, profiles)
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		close(stop)
		return <-done
	}
}
