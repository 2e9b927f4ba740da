package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jask/drawdemo/internal/config"
	"github.com/jask/drawdemo/internal/document"
	"github.com/jask/drawdemo/internal/editor"
	"github.com/jask/drawdemo/internal/store"
	"github.com/jask/drawdemo/internal/tui"
)

var (
	configPath string
	openName   string
	openFile   string
)

var rootCmd = &cobra.Command{
	Use:           "drawdemo",
	Short:         "drawdemo is a terminal rectangle editor.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			return printSnapshot(cmd.Context(), cmd.OutOrStdout(), defaultWidth, defaultHeight)
		}
		return runEditor(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/drawdemo/config.toml)")
	rootCmd.PersistentFlags().StringVar(&openName, "open", "", "drawing to open from the library; also the name ctrl+s saves under")
	rootCmd.PersistentFlags().StringVar(&openFile, "file", "", "drawing document (.toml, .yaml, .json) to open")
}

// session is the state shared by the commands: configuration, an optional
// drawing library and the model to start from.
type session struct {
	cfg   config.Config
	repo  *store.DrawingRepo
	close func() error
}

func openSession() (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if openName != "" {
		cfg.Session.Name = openName
	}
	return &session{cfg: cfg, close: func() error { return nil }}, nil
}

// attachRepo opens the drawing library, applying migrations.
func (s *session) attachRepo() error {
	db, err := store.OpenMigrated(s.cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open drawing library: %w", err)
	}
	s.repo = store.NewDrawingRepo(db)
	s.close = db.Close
	return nil
}

// needsRepo reports whether initialModel reads from the library.
func (s *session) needsRepo() bool {
	return openFile == "" && (openName != "" || s.cfg.Session.Autoload)
}

// initialModel picks the starting drawing: a document file, a named drawing,
// the session drawing when autoload is on, or the seed.
func (s *session) initialModel(ctx context.Context) (editor.Model, error) {
	switch {
	case openFile != "":
		return document.ReadFile(openFile)
	case openName != "":
		return s.repo.Load(ctx, openName)
	case s.cfg.Session.Autoload:
		m, err := s.repo.Load(ctx, s.cfg.Session.Name)
		if errors.Is(err, store.ErrDrawingNotFound) {
			return editor.Seed(), nil
		}
		return m, err
	default:
		return editor.Seed(), nil
	}
}

func (s *session) newApp(ctx context.Context, m editor.Model) (*tui.App, error) {
	keys := tui.NewKeyRegistry()
	if err := keys.ApplyKeybindingConfig(s.cfg.Keys); err != nil {
		return nil, fmt.Errorf("config keys: %w", err)
	}
	opts := []tui.Option{tui.WithKeys(keys)}
	if s.repo != nil {
		opts = append(opts, tui.WithRepo(s.repo))
	}
	return tui.New(ctx, s.cfg, m, opts...), nil
}

func runEditor(ctx context.Context) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	if err := s.attachRepo(); err != nil {
		return err
	}
	defer s.close()

	if s.cfg.Log.File != "" {
		f, err := tea.LogToFile(s.cfg.Log.File, "drawdemo")
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	m, err := s.initialModel(ctx)
	if err != nil {
		return err
	}
	app, err := s.newApp(ctx, m)
	if err != nil {
		return err
	}
	log.Printf("session %q: %d shapes", s.cfg.Session.Name, m.Len())

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
