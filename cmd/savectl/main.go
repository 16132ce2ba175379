// Command savectl inspects and edits the save database outside the game.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"

	"github.com/younwookim/maskrun/internal/application/savegame"
	"github.com/younwookim/maskrun/internal/domain/entity"
	"github.com/younwookim/maskrun/internal/infrastructure/dump"
	"github.com/younwookim/maskrun/internal/infrastructure/logging"
	"github.com/younwookim/maskrun/internal/infrastructure/store"
)

const usage = `usage: savectl [-db path] [-log level] <command> [args]

commands:
  list               list all saves
  show <id|guid>     show a save with its records
  delete <id>        delete a save
  dump <id> <file>   write a save to a JSON file
  restore <file>     import a save from a JSON file`

var errUsage = errors.New(usage)

var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("34"))

	styleDim = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleGone = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		logging.Default().Fatal("savectl failed", "err", err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("savectl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	dbPath := fs.String("db", "saves.db", "Save database path")
	logLevel := fs.String("log", "warn", "Log level")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	logger := logging.New(os.Stderr, *logLevel)
	st, err := store.Open(ctx, *dbPath, logger)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	c := &ctl{
		store: st,
		saves: savegame.NewManager(st, logger),
		log:   logger,
		out:   out,
	}
	return c.dispatch(ctx, fs.Arg(0), fs.Args()[1:])
}

type ctl struct {
	store *store.Store
	saves *savegame.Manager
	log   *log.Logger
	out   io.Writer
}

func (c *ctl) dispatch(ctx context.Context, cmd string, args []string) error {
	switch {
	case cmd == "list" && len(args) == 0:
		return c.list(ctx)
	case cmd == "show" && len(args) == 1:
		return c.show(ctx, args[0])
	case cmd == "delete" && len(args) == 1:
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return c.delete(ctx, id)
	case cmd == "dump" && len(args) == 2:
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return c.dump(ctx, id, args[1])
	case cmd == "restore" && len(args) == 1:
		return c.restore(ctx, args[0])
	default:
		return errUsage
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid save id %q", s)
	}
	return id, nil
}

func (c *ctl) list(ctx context.Context) error {
	saves, err := c.saves.ReloadSaves(ctx)
	if err != nil {
		return err
	}
	if len(saves) == 0 {
		fmt.Fprintln(c.out, styleDim.Render("no saves"))
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "LEVEL", "SAVED", "ENEMIES DEAD", "ITEMS TAKEN").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return lipgloss.NewStyle()
		})
	for _, s := range saves {
		t.Row(
			strconv.FormatInt(s.ID, 10),
			s.Name,
			strconv.Itoa(s.LevelIndex),
			s.Time().Format(time.DateTime),
			fmt.Sprintf("%d/%d", s.DeadEnemies(), len(s.Enemies)),
			fmt.Sprintf("%d/%d", s.CollectedItems(), len(s.Items)),
		)
	}
	fmt.Fprintln(c.out, t.Render())
	return nil
}

// find resolves a numeric id or a GUID
func (c *ctl) find(ctx context.Context, key string) (*entity.Save, error) {
	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		return c.store.Save(ctx, id)
	}
	return c.store.SaveByGUID(ctx, key)
}

func (c *ctl) show(ctx context.Context, key string) error {
	s, err := c.find(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to find save %s: %w", key, err)
	}

	fmt.Fprintln(c.out, styleTitle.Render(fmt.Sprintf("#%d %s", s.ID, s.Label())))
	fmt.Fprintf(c.out, "guid:  %s\nlevel: %d\nsaved: %s\n", s.GUID, s.LevelIndex, s.Time().Format(time.DateTime))
	if p := s.Player; p != nil {
		fmt.Fprintf(c.out, "player: pos=(%.0f,%.0f) spawn=(%.0f,%.0f) ammo=%d masks=%d gun=%t\n",
			p.Position.X, p.Position.Y, p.SpawnPoint.X, p.SpawnPoint.Y, p.AmmoCount, p.FaceMaskCount, p.HasGun)
	}

	fmt.Fprintln(c.out, styleHeader.Render("enemies"))
	for _, e := range s.Enemies {
		line := fmt.Sprintf("  %-12s hp=%d pos=(%.0f,%.0f)", e.InGameID, e.Health, e.Position.X, e.Position.Y)
		if e.IsDead {
			line = styleGone.Render(fmt.Sprintf("  %-12s dead", e.InGameID))
		}
		fmt.Fprintln(c.out, line)
	}

	fmt.Fprintln(c.out, styleHeader.Render("items"))
	for _, it := range s.Items {
		line := fmt.Sprintf("  %-12s pos=(%.0f,%.0f)", it.InGameID, it.Position.X, it.Position.Y)
		if it.Collected {
			line = styleGone.Render(fmt.Sprintf("  %-12s collected", it.InGameID))
		}
		fmt.Fprintln(c.out, line)
	}
	return nil
}

func (c *ctl) delete(ctx context.Context, id int64) error {
	if err := c.saves.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "deleted save %d\n", id)
	return nil
}

func (c *ctl) dump(ctx context.Context, id int64, filename string) error {
	s, err := c.store.Save(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find save %d: %w", id, err)
	}
	if err := dump.FromSave(s, time.Now()).WriteFile(filename); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "wrote save %d to %s\n", id, filename)
	return nil
}

func (c *ctl) restore(ctx context.Context, filename string) error {
	f, err := dump.ReadFile(filename)
	if err != nil {
		return err
	}
	s, err := c.saves.Import(ctx, f.Save())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "restored %q as save %d\n", s.Name, s.ID)
	return nil
}
