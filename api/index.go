package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/app"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/config"
)

var mux http.Handler

func init() {
	cfg := config.Load()
	cfg.ConfigureLogging()

	// Note: On Vercel, a local sqlite file is ephemeral; use a Turso URL in DATABASE_URL.
	// Admin consoles live in memory, so they do not survive a cold start.
	application, err := app.New(cfg)
	if err != nil {
		panic(err)
	}
	mux = application.Handler
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
