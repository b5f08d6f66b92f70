/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/dag-jose-go/cmd/dagjose/cli/config"
	"github.com/trustbloc/dag-jose-go/pkg/restapi/common"
	"github.com/trustbloc/dag-jose-go/pkg/restapi/dagjosehandler"
)

// BasePath is the path prefix of the HTTP API.
const BasePath = "/dag-jose"

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

func newServeCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the DAG-JOSE HTTP API",
		Long: `Serve exposes the codec over HTTP:

  POST /dag-jose/encode          JOSE value in, DAG-JOSE block out
  POST /dag-jose/decode/{view}   block in, jose|node|general|compact out
  POST /dag-jose/links           block in, referenced CIDs out`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ln, err := net.Listen("tcp", o.config.Serve.Address)
			if err != nil {
				return errors.Wrapf(err, "listen on %s", o.config.Serve.Address)
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			return serve(ctx, ln, o.logger)
		},
	}

	cmd.Flags().String("address", "", "Listen address (default "+config.DefaultAddress+")")
	must(o.viper.BindPFlag(config.KeyServeAddress, cmd.Flags().Lookup("address")))

	return cmd
}

// serve runs the HTTP API on ln until ctx is done.
func serve(ctx context.Context, ln net.Listener, logger *log.Log) error {
	srv := &http.Server{
		Handler:           common.NewRouter(dagjosehandler.Handlers(BasePath)...),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("Serving DAG-JOSE API", log.WithAddress(ln.Addr().String()))

		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serve")
	}

	logger.Info("Stopped DAG-JOSE API", log.WithAddress(ln.Addr().String()))

	return nil
}

// signalContext returns a context that is canceled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}

	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
