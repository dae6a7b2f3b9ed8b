package cmds

import (
	"context"
	"zeebeapi/internal/api"
	"zeebeapi/internal/gateway"
	"zeebeapi/internal/ipc"
	"zeebeapi/internal/ports"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Serve runs the HTTP surface on port and answers IPC requests on bus until ctx is done or either
// of them fails. The gateway is closed on return.
func Serve(ctx context.Context, port int, gw *gateway.Gateway, profiles ports.ProfileStore, bus ipc.Bus) error {
	defer func() {
		_ = gw.Close()
	}()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Serve(ctx, port, gw, profiles)
	})
	g.Go(func() error {
		return api.NewIPCServer(bus, gw).Serve(ctx)
	})
	err := g.Wait()
	log.WithError(err).Info("zeebeapi stopped")
	return err
}
