// main is the entry point of the students terminal client.
//
// It talks to a running students service (see cmd/students-api) at
// client.base_url and writes its logs to client.log_path, since the
// terminal belongs to the UI:
//
//	go run ./cmd/students --config=config/local.yaml
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aanand-mishra/student-manager/internal/client"
	"github.com/aanand-mishra/student-manager/internal/collection"
	"github.com/aanand-mishra/student-manager/internal/config"
	"github.com/aanand-mishra/student-manager/internal/creation"
	"github.com/aanand-mishra/student-manager/internal/deletion"
	"github.com/aanand-mishra/student-manager/internal/feedback"
	"github.com/aanand-mishra/student-manager/internal/logger"
	"github.com/aanand-mishra/student-manager/internal/panel"
	"github.com/aanand-mishra/student-manager/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg := config.MustLoad()

	if dir := filepath.Dir(cfg.Client.LogPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("mkdir log dir: %v", err)
		}
	}
	logFile, err := os.OpenFile(cfg.Client.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("open log file: %v", err)
	}
	defer logFile.Close()

	lg := logger.Setup(cfg.Env, logFile)
	slog.SetDefault(lg)
	lg.Info("starting students client", slog.String("base_url", cfg.Client.BaseURL))

	// Every outcome is shown in the UI and also logged.
	queue := feedback.NewQueue()
	notify := feedback.Multi{queue, feedback.NewLog(lg)}

	api := client.New(client.Config{
		BaseURL: cfg.Client.BaseURL,
		Timeout: cfg.Client.Timeout,
		Logger:  lg,
	})

	students := collection.New(api, notify, lg)
	drawer := panel.New(false)

	app := tui.New(ctx, tui.Deps{
		Students: students,
		Create:   creation.New(api, students, notify, drawer, lg),
		Delete:   deletion.New(api, students, notify, lg),
		Feedback: queue,
		Drawer:   drawer,
		Sider:    panel.New(true),
		PageSize: cfg.Client.PageSize,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		lg.Error("ui stopped", slog.String("error", err.Error()))
		fmt.Printf("error: %v\n", err)
	}
}
