// Package app wires the store, services and router from configuration. It is
// shared by the standalone server and the serverless entry point.
package app

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/adapters/ai"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/adapters/handler"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/adapters/notifier"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/config"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/services"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/ports"
)

// App is a fully wired service.
type App struct {
	Handler http.Handler
	Store   ports.DocumentStore
}

func (a *App) Close() error {
	return a.Store.Close()
}

// New opens the store named by cfg and builds the router around it.
func New(cfg *config.Config) (*App, error) {
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return NewWithStore(cfg, repo), nil
}

// NewWithStore builds the router around an already opened store.
func NewWithStore(cfg *config.Config, store ports.DocumentStore) *App {
	var notify ports.Notifier
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		tg, err := notifier.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			logrus.WithError(err).Warn("telegram notifier disabled")
		} else {
			notify = tg
		}
	}

	var completer ports.TextCompleter
	if cfg.AIAPIKey != "" {
		completer = ai.NewClient(cfg.AIBaseURL, cfg.AIAPIKey)
	} else {
		logrus.Warn("AI_API_KEY not set, chat answers with the fallback text")
	}

	policy, err := services.ParseReloadPolicy(cfg.ReloadPolicy)
	if err != nil {
		logrus.WithError(err).Warnf("using reload policy %q", services.ReloadAll)
		policy = services.ReloadAll
	}

	if cfg.AdminAccessCode == "" {
		logrus.Warn("ADMIN_ACCESS_CODE not set, the admin surface stays locked")
	}

	content := services.NewContentService(store)
	submissions := services.NewSubmissionService(store, notify)
	chat := services.NewChatService(completer, cfg.AIModel)
	sessions := services.NewSessions(services.ConsoleConfig{
		Store:       store,
		Submissions: submissions,
		AccessCode:  cfg.AdminAccessCode,
		Policy:      policy,
	})

	return &App{
		Handler: handler.NewRouter(cfg, content, submissions, chat, sessions),
		Store:   store,
	}
}
