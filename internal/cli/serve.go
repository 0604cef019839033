package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/logictree/pkg/export"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr string // listen address
}

// newServeCmd creates the serve command, a live preview server. The
// document is re-read on every request, so edits show up on refresh.
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a live preview of a document over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	return cmd
}

// runServe starts the preview server and blocks until the context is
// canceled.
func runServe(ctx context.Context, input string, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", serveSVG(input, false))
	r.Get("/graph", serveSVG(input, true))

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Serving %s on http://localhost%s", input, opts.addr)
		fmt.Println(StyleTitle.Render("logictree preview"))
		printInfo("chart:  http://localhost%s/", opts.addr)
		printInfo("graph:  http://localhost%s/graph", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("Server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// serveSVG renders the document on each request. With graph set the
// Graphviz structural view is served instead of the geometric chart.
func serveSVG(input string, graph bool) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logger := loggerFromContext(req.Context())

		doc, err := LoadDocument(input)
		if err != nil {
			printError("document: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		t, err := doc.Build()
		if err != nil {
			printError("document: %v", err)
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		var svg []byte
		if graph {
			svg, err = export.RenderSVG(export.ToDOT(t, export.Options{}))
		} else {
			svg, err = t.SVG()
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/svg+xml")
		if _, err := w.Write(svg); err != nil {
			logger.Debugf("writing response: %v", err)
		}
	}
}
