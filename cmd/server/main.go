package main

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/app"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/config"
)

func main() {
	cfg := config.Load()
	cfg.ConfigureLogging()

	application, err := app.New(cfg)
	if err != nil {
		logrus.Fatalf("Failed to start: %v", err)
	}
	defer application.Close()

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     application.Handler,
		ReadTimeout: 5 * time.Second,
		// Chat answers stream for as long as the completion service talks.
		WriteTimeout: 2 * time.Minute,
	}

	logrus.WithFields(logrus.Fields{"port": cfg.Port, "env": cfg.AppEnv}).Info("Server starting")
	if err := server.ListenAndServe(); err != nil {
		logrus.Fatal(err)
	}
}
