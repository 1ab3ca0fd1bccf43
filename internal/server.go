package internal

import (
	"context"
	"database/sql"
	"embed"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"lostfound-api/internal/assets"
	"lostfound-api/internal/claims"
	"lostfound-api/internal/config"
	"lostfound-api/internal/handlers"
	"lostfound-api/internal/roster"
	"lostfound-api/internal/store"

	"github.com/go-chi/chi/v5"
)

//go:embed openapi
var openapiFS embed.FS

type Server struct {
	Items   store.ItemStore
	Ledger  store.ClaimLedger
	Claims  *claims.Manager
	Assets  *assets.Binder
	Roster  *roster.Roster
	Router  *chi.Mux
	Metrics *Metrics

	db *sql.DB // only set with the sqlite backend
}

// NewServer opens the configured store backend, loads the roster and wires
// the router.
func NewServer(cfg *config.Config) (*Server, error) {
	var (
		items  store.ItemStore
		ledger store.ClaimLedger
		db     *sql.DB
	)

	switch cfg.Backend {
	case config.BackendSQLite:
		var err error
		db, err = store.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		items, err = store.NewSQLiteStore(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		ledger = store.NewSQLiteLedger(db)
	default:
		var err error
		items, err = store.OpenFileStore(filepath.Join(cfg.DataDir, "items.json"))
		if err != nil {
			return nil, err
		}
		ledger, err = store.OpenFileLedger(filepath.Join(cfg.DataDir, "claimed_items.json"))
		if err != nil {
			return nil, err
		}
	}

	binder, err := assets.NewBinder(cfg.UploadsDir)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, err
	}

	ros, err := roster.Load(cfg.RosterFile)
	if err != nil {
		// The roster is display convenience, not persisted state; run
		// without it rather than refusing to start.
		log.Printf("roster unavailable (%v), student lookup disabled", err)
		ros = roster.Empty()
	} else {
		log.Printf("roster loaded: %d students", ros.Len())
	}

	claimIDs, err := claims.SeedClaimIDs(context.Background(), ledger)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, err
	}

	s := NewServerWithStores(cfg, items, ledger, binder, ros, claimIDs)
	s.db = db
	return s, nil
}

// NewServerWithStores wires a server over already-open stores. Tests use it
// to run the full router against in-memory pools.
func NewServerWithStores(cfg *config.Config, items store.ItemStore, ledger store.ClaimLedger, binder *assets.Binder, ros *roster.Roster, claimIDs *store.Sequence) *Server {
	s := &Server{
		Items:   items,
		Ledger:  ledger,
		Claims:  claims.NewManager(items, ledger, claimIDs),
		Assets:  binder,
		Roster:  ros,
		Router:  chi.NewRouter(),
		Metrics: NewMetrics(),
	}

	s.Router.Use(requestLogger)
	if cfg.EnableMetrics {
		s.Router.Use(s.Metrics.Middleware())
		s.Router.Get("/metrics", s.Metrics.Handler().ServeHTTP)
	}

	s.Router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	if cfg.EnableDocs {
		s.mountDocs(s.Router)
	}

	s.Router.Post("/api/submit", s.submitItem)
	s.Router.Get("/api/items", s.listItems)
	s.Router.Put("/api/items/{id}", s.updateItem)
	s.Router.Post("/api/items/{id}/verify", s.verifyEdit)
	s.Router.Get("/api/claimed-items", s.listClaimedItems)
	s.Router.Post("/api/claim/{id}", s.claimItem)
	s.Router.Get("/api/students/{number}", s.lookupStudent)

	exportsHandler := handlers.NewExportsHandler(ledger)
	s.Router.Get("/api/claimed-items/export", exportsHandler.DownloadExcel)

	// Uploaded photos are referenced by records as /uploads/... paths and
	// served back verbatim.
	if binder != nil {
		uploadsFS := http.StripPrefix("/uploads/", http.FileServer(http.Dir(binder.Root())))
		s.Router.Get("/uploads/*", uploadsFS.ServeHTTP)
	}

	// Static UI and the roster file, when a public dir is present.
	if cfg.PublicDir != "" {
		if fi, err := os.Stat(cfg.PublicDir); err == nil && fi.IsDir() {
			s.Router.Handle("/*", http.FileServer(http.Dir(cfg.PublicDir)))
		}
	}

	return s
}

// Close properly shuts down the server and cleans up resources
func (s *Server) Close(ctx context.Context) error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// mountDocs serves the OpenAPI spec and a Swagger UI page
func (s *Server) mountDocs(mux *chi.Mux) {
	mux.HandleFunc("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		data, err := openapiFS.ReadFile("openapi/openapi.yaml")
		if err != nil {
			http.Error(w, "Failed to read OpenAPI spec", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/x-yaml")
		if _, err := w.Write(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	mux.HandleFunc("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(200)
		w.Write([]byte(`<!doctype html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Lost &amp; Found API - Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui.css">
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({
                url: '/openapi.yaml',
                dom_id: '#swagger-ui',
                deepLinking: true,
                presets: [
                    SwaggerUIBundle.presets.apis,
                    SwaggerUIBundle.presets.standalone
                ],
                layout: "StandaloneLayout",
                tryItOutEnabled: true
            });
        };
    </script>
</body>
</html>`))
	})
}
