package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"behaviormap/internal/config"
	"behaviormap/internal/scene"
)

var version = "0.3.0"

var (
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
	subtle = color.New(color.FgHiBlack)
)

var (
	configPath string
	logPath    string
	seed       uint64
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		bad.Fprintf(os.Stderr, "behaviormap: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "behaviormap",
		Short:         "Terminal editor for behavior diagrams",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger, closeLog, err := openLog()
			if err != nil {
				return err
			}
			defer closeLog()

			logger.Info("starting editor", "version", version)
			p := tea.NewProgram(
				newModel(cfg, newEditor(cfg, logger, seed)),
				tea.WithAltScreen(),
				tea.WithMouseAllMotion(),
			)
			_, err = p.Run()
			return err
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.Path()+")")
	cmd.PersistentFlags().StringVar(&logPath, "log", "", "write debug logs to this file")
	cmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "seed for node placement (0 picks one at random)")

	cmd.AddCommand(snapshotCmd())
	return cmd
}

func snapshotCmd() *cobra.Command {
	var (
		output string
		width  int
		height int
		links  []string
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render the demo diagram to a PNG without opening the editor",
		Example: `  behaviormap snapshot -o demo.png \
    --link "Comportamento A:Estímulo:positive_reinforcement" \
    --link "Estímulo:Comportamento B:other:Contingência"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger, closeLog, err := openLog()
			if err != nil {
				return err
			}
			defer closeLog()

			if width <= 0 {
				width = cfg.Export.Width
			}
			if height <= 0 {
				height = cfg.Export.Height
			}

			ed := newEditor(cfg, logger, seed)
			ed.resize(float64(width), float64(height))
			ed.seed(cfg.Editor.DemoNodes)
			for _, l := range links {
				if err := addLink(ed.scene, l); err != nil {
					return err
				}
			}

			img, err := renderSnapshot(ed, cfg, width, height)
			if err != nil {
				return err
			}
			path := output
			if path == "" {
				if path, err = cfg.ExportPath(defaultSnapshotName); err != nil {
					return err
				}
			}
			if err := img.SavePNG(path); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			good.Printf("Saved %s ", path)
			subtle.Printf("(%dx%d, %d nodes, %d connections)\n",
				width, height, ed.scene.NodeCount(), ed.scene.ConnectionCount())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG file to write (default in the export directory)")
	cmd.Flags().IntVar(&width, "width", 0, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "image height in pixels")
	cmd.Flags().StringArrayVar(&links, "link", nil, `connection as "from:to:type[:label]"; repeatable`)
	return cmd
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

// openLog returns a debug logger writing to --log, or a discarding logger.
// The terminal belongs to the editor, so nothing is logged to stderr.
func openLog() (*slog.Logger, func(), error) {
	if logPath == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := tea.LogToFile(logPath, "behaviormap")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log %s: %w", logPath, err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), func() { f.Close() }, nil
}

type link struct {
	from, to string
	typ      scene.ConnectionType
	label    string
}

// parseLink reads "from:to:type[:label]". The type is a type key such as
// positive_reinforcement or its 1-based position in the type chooser.
func parseLink(s string) (link, error) {
	parts := strings.SplitN(s, ":", 4)
	if len(parts) < 3 {
		return link{}, fmt.Errorf("%w: link %q: want from:to:type[:label]", scene.ErrValidation, s)
	}
	l := link{
		from: strings.TrimSpace(parts[0]),
		to:   strings.TrimSpace(parts[1]),
		typ:  scene.ConnectionType(strings.TrimSpace(parts[2])),
	}
	if n, err := strconv.Atoi(string(l.typ)); err == nil {
		if n < 1 || n > len(scene.ConnectionTypes) {
			return link{}, fmt.Errorf("%w: link %q: type %d out of range", scene.ErrConfig, s, n)
		}
		l.typ = scene.ConnectionTypes[n-1]
	}
	if _, ok := scene.Lookup(l.typ); !ok {
		return link{}, fmt.Errorf("%w: link %q: unknown type %q", scene.ErrConfig, s, l.typ)
	}
	if len(parts) == 4 {
		l.label = parts[3]
	}
	return l, nil
}

// addLink parses a --link value and adds it to the scene. Endpoints are node
// names, or numeric ids when no node has that name.
func addLink(s *scene.Model, value string) error {
	l, err := parseLink(value)
	if err != nil {
		return err
	}
	from, ok := findNode(s, l.from)
	if !ok {
		return fmt.Errorf("%w: link %q: no node %q", scene.ErrValidation, value, l.from)
	}
	to, ok := findNode(s, l.to)
	if !ok {
		return fmt.Errorf("%w: link %q: no node %q", scene.ErrValidation, value, l.to)
	}
	c, err := s.AddConnection(from, to, l.typ, l.label)
	if err != nil {
		return err
	}
	if c == nil {
		subtle.Printf("skipped %q: duplicate or self link\n", value)
	}
	return nil
}

func findNode(s *scene.Model, ref string) (int, bool) {
	for _, n := range s.Nodes() {
		if n.Name == ref {
			return n.ID, true
		}
	}
	if id, err := strconv.Atoi(ref); err == nil {
		if _, ok := s.Node(id); ok {
			return id, true
		}
	}
	return -1, false
}
