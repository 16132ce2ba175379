package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/maskrun/internal/application/game"
	"github.com/younwookim/maskrun/internal/application/savegame"
	"github.com/younwookim/maskrun/internal/application/scene"
	"github.com/younwookim/maskrun/internal/application/scene/menu"
	"github.com/younwookim/maskrun/internal/application/scene/playing"
	"github.com/younwookim/maskrun/internal/ecs"
	"github.com/younwookim/maskrun/internal/infrastructure/config"
	"github.com/younwookim/maskrun/internal/infrastructure/logging"
	"github.com/younwookim/maskrun/internal/infrastructure/store"
)

//go:embed configs
var configFS embed.FS

type options struct {
	configDir string
	dbPath    string
	logLevel  string
	level     int
	loadID    int64
}

func main() {
	var opts options
	flag.StringVar(&opts.configDir, "config", "", "Config directory (default: embedded configs)")
	flag.StringVar(&opts.dbPath, "db", "", "Save database path (overrides settings.toml)")
	flag.StringVar(&opts.logLevel, "log", "", "Log level: debug, info, warn, error")
	flag.IntVar(&opts.level, "level", 0, "Start directly in level N")
	flag.Int64Var(&opts.loadID, "load", 0, "Load save ID on start")
	flag.Parse()

	if err := run(context.Background(), opts); err != nil {
		logging.Default().Fatal("game stopped", "err", err)
	}
}

func run(ctx context.Context, opts options) error {
	loader, err := newLoader(opts.configDir)
	if err != nil {
		return err
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.dbPath != "" {
		cfg.Settings.Database.Path = opts.dbPath
	}
	if opts.logLevel != "" {
		cfg.Settings.Log.Level = opts.logLevel
	}

	logger := logging.New(os.Stderr, cfg.Settings.Log.Level)
	st, err := store.Open(ctx, cfg.Settings.Database.Path, logger)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	sess := newSession(ctx, loader, cfg, savegame.NewManager(st, logger), logger)
	initial, err := initialScene(ctx, sess, opts)
	if err != nil {
		return err
	}

	display := cfg.Settings.Display
	g := game.New(initial, display.ScreenWidth, display.ScreenHeight, display.Framerate, logger)
	defer g.Close()

	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle(display.Title)
	ebiten.SetTPS(display.Framerate)

	logger.Info("starting", "db", cfg.Settings.Database.Path)
	return ebiten.RunGame(g)
}

// newLoader reads configs from dir, or the embedded configs when dir is empty
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

func newSession(ctx context.Context, loader *config.Loader, cfg *config.GameConfig, saves *savegame.Manager, logger *log.Logger) *scene.Session {
	sess := &scene.Session{
		Ctx:      ctx,
		Loader:   loader,
		Settings: cfg.Settings,
		Entities: cfg.Entities,
		Saves:    saves,
		Log:      logger,
	}
	sess.NewMenu = func() scene.Scene {
		return menu.New(sess)
	}
	sess.NewLevel = func(index int, carry *ecs.Player) (scene.Scene, error) {
		p, err := playing.New(sess, index, carry)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return sess
}

// initialScene picks the first scene: a loaded save, a level, or the menu
func initialScene(ctx context.Context, sess *scene.Session, opts options) (scene.Scene, error) {
	switch {
	case opts.loadID > 0:
		index, err := sess.Saves.LoadByID(ctx, opts.loadID)
		if err != nil {
			return nil, err
		}
		return sess.NewLevel(index, nil)
	case opts.level > 0:
		return sess.NewLevel(opts.level, nil)
	default:
		return sess.NewMenu(), nil
	}
}
