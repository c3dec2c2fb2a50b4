package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdxmph/contacts-remote/internal/api"
	"github.com/pdxmph/contacts-remote/internal/config"
	"github.com/pdxmph/contacts-remote/internal/contact"
	"github.com/pdxmph/contacts-remote/internal/db"
	"github.com/pdxmph/contacts-remote/internal/devserver"
	"github.com/pdxmph/contacts-remote/internal/export"
	"github.com/pdxmph/contacts-remote/internal/logging"
	"github.com/pdxmph/contacts-remote/internal/store"
	"github.com/pdxmph/contacts-remote/internal/tui"
)

// CLI is the top-level command structure
type CLI struct {
	Globals

	Version    kong.VersionFlag `help:"Show version." short:"V"`
	TUI        TUICmd           `cmd:"" default:"1" help:"Open the interactive contact list."`
	List       ListCmd          `cmd:"" help:"Print contacts as a table."`
	Export     ExportCmd        `cmd:"" help:"Export contacts to CSV."`
	Serve      ServeCmd         `cmd:"" help:"Run a local SQLite-backed contact service."`
	InitConfig InitConfigCmd    `cmd:"" name:"init-config" help:"Write the default config file."`
}

// Globals are flags shared by every command
type Globals struct {
	Config string `help:"Config file path." type:"path"`
	API    string `name:"api" help:"Contact service base URL (overrides config)."`
	Debug  bool   `help:"Enable debug logging."`
}

func (g *Globals) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if g.Config != "" {
		cfg, err = config.LoadFrom(g.Config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if g.API != "" {
		cfg.API.BaseURL = g.API
	}
	return cfg, nil
}

// session holds what every client command needs
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	client *api.Client
	store  *store.Store
}

// open builds a session. The TUI logs to the configured file; the other
// commands log to stderr.
func (g *Globals) open(logToFile bool) (*session, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	logPath := ""
	if logToFile {
		logPath = cfg.Log.Path
	}
	logger, err := logging.New(logPath, g.Debug)
	if err != nil {
		return nil, err
	}
	client := api.New(cfg.API.BaseURL, api.WithTimeout(cfg.HTTP.Timeout.Duration))
	logger.Debug("Using contact service", zap.String("base_url", client.BaseURL()))

	return &session{
		cfg:    cfg,
		logger: logger,
		client: client,
		store:  store.New(client, logger),
	}, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}

// fetch loads the store and applies an optional name search
func (s *session) fetch(ctx context.Context, search string) ([]contact.Contact, error) {
	if err := s.store.Load(ctx); err != nil {
		return nil, err
	}
	return contact.Filter(s.store.Current(), search), nil
}

// TUICmd opens the interactive list
type TUICmd struct{}

// Run starts the Bubble Tea program, or prints a plain list when stdout is
// not a terminal.
func (c *TUICmd) Run(g *Globals) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return (&ListCmd{}).Run(g)
	}

	s, err := g.open(true)
	if err != nil {
		return err
	}
	defer s.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	model := tui.New(tui.Options{
		Service:   s.client,
		Store:     s.store,
		Logger:    s.logger,
		ExportDir: s.cfg.Export.Dir,
		Context:   ctx,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

// ListCmd prints contacts
type ListCmd struct {
	Search string `help:"Only show contacts whose name contains this text." short:"s"`
}

// Run prints the contact table to stdout
func (c *ListCmd) Run(g *Globals) error {
	s, err := g.open(false)
	if err != nil {
		return err
	}
	defer s.close()

	contacts, err := s.fetch(context.Background(), c.Search)
	if err != nil {
		return err
	}
	return printTable(os.Stdout, contacts)
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).PaddingRight(2)
	tableCellStyle   = lipgloss.NewStyle().PaddingRight(2)
)

// printTable writes contacts as borderless aligned columns
func printTable(w io.Writer, contacts []contact.Contact) error {
	rows := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, []string{c.Name, c.Email, c.Phone, c.ID})
	}

	t := table.New().
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == 0 {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers("NAME", "EMAIL", "PHONE", "ID").
		Rows(rows...)

	_, err := fmt.Fprintln(w, strings.TrimRight(t.String(), "\n"))
	return err
}

// ExportCmd writes contacts as CSV
type ExportCmd struct {
	Search string `help:"Only export contacts whose name contains this text." short:"s"`
	Out    string `help:"Directory for contact_data.csv, or - for stdout." short:"o"`
}

// Run exports the store's list
func (c *ExportCmd) Run(g *Globals) error {
	s, err := g.open(false)
	if err != nil {
		return err
	}
	defer s.close()

	contacts, err := s.fetch(context.Background(), c.Search)
	if err != nil {
		return err
	}

	if c.Out == "-" {
		return export.WriteCSV(os.Stdout, contacts)
	}

	dir := c.Out
	if dir == "" {
		dir = s.cfg.Export.Dir
	}
	path, err := export.Save(dir, contacts)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Saved %d contacts to %s\n", len(contacts), path)
	return nil
}

// ServeCmd runs the development service
type ServeCmd struct {
	Addr string `help:"Listen address (overrides config)."`
	DB   string `name:"db" help:"SQLite database path (overrides config)." type:"path"`
	Seed bool   `help:"Create the database with sample contacts if it does not exist."`
}

// Run serves until interrupted
func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New("", g.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	addr := cfg.Server.Addr
	if c.Addr != "" {
		addr = c.Addr
	}
	dbPath := cfg.Server.DBPath
	if c.DB != "" {
		dbPath = c.DB
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		if c.Seed {
			err = db.CreateFixturesDatabase(dbPath)
		} else {
			err = db.Initialize(dbPath)
		}
		if err != nil {
			return err
		}
		logger.Info("Created database", zap.String("path", dbPath), zap.Bool("seeded", c.Seed))
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return err
	}
	defer database.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           devserver.New(database, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Info("Serving contacts", zap.String("addr", addr), zap.String("db", dbPath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// InitConfigCmd writes the default configuration
type InitConfigCmd struct {
	Force bool `help:"Overwrite an existing config file."`
}

// Run saves the defaults to the standard location or --config
func (c *InitConfigCmd) Run(g *Globals) error {
	path := g.Config
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.toml")
	}

	if _, err := os.Stat(path); err == nil && !c.Force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	if g.Config == "" {
		saved, err := config.Default().Save()
		if err != nil {
			return err
		}
		path = saved
	} else if err := config.Default().SaveTo(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
