package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/devel0/wscanvas"
	"github.com/devel0/wscanvas/config"
)

type options struct {
	rows       int
	configPath string
	jsonPath   string
	sqlitePath string
	table      string
	logPath    string
}

func parseFlags() options {
	var o options
	flag.IntVar(&o.rows, "rows", 10000, "number of generated rows when no data file is given")
	flag.StringVar(&o.configPath, "config", "", "grid config file (.toml, .yaml); reloaded on change")
	flag.StringVar(&o.jsonPath, "json", "", "JSON array of records to edit")
	flag.StringVar(&o.sqlitePath, "sqlite", "", "SQLite database to edit")
	flag.StringVar(&o.table, "table", "", "table to load with -sqlite")
	flag.StringVar(&o.logPath, "log", "", "write debug log to this file")
	flag.Parse()
	return o
}

func main() {
	if err := run(parseFlags()); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run(o options) error {
	var logger *log.Logger
	if o.logPath != "" {
		f, err := os.OpenFile(o.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log: %w", err)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{
			Level:           log.DebugLevel,
			ReportTimestamp: true,
			Prefix:          "wscanvas",
		})
		logger.Info(wscanvas.Banner())
	}

	ctx := context.Background()
	data, err := openData(ctx, o)
	if err != nil {
		return err
	}
	defer data.close()

	base := baseConfig(data, logger)
	cfg := base
	if o.configPath != "" {
		f, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		if cfg, err = config.Apply(f, base); err != nil {
			return err
		}
	}

	p := tea.NewProgram(newModel(base, cfg, data, logger), tea.WithAltScreen(), tea.WithMouseAllMotion())

	if o.configPath != "" {
		w, err := config.Watch(o.configPath, config.DefaultDebounce, func(f config.File, err error) {
			p.Send(configMsg{file: f, err: err})
		})
		if err != nil {
			return err
		}
		defer w.Close()
	}

	_, err = p.Run()
	return err
}
