package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/menutrail"
	"github.com/aretw0/menutrail/internal/config"
	"github.com/aretw0/menutrail/internal/logging"
	httpadapter "github.com/aretw0/menutrail/pkg/adapters/http"
	redisadapter "github.com/aretw0/menutrail/pkg/adapters/redis"
	"github.com/aretw0/menutrail/pkg/domain"
	"github.com/aretw0/menutrail/pkg/ports"
)

var rootCmd = &cobra.Command{
	Use:   "menutrail",
	Short: "menutrail selects links around your position in a menu",
	Long: `menutrail reads menu links from a directory of Markdown/YAML/JSON files
or from Redis and answers positional questions about them: the children,
parent, siblings, next and previous links of the current page.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	addRootFlags(rootCmd)
}

// addRootFlags registers the persistent flags read by loadConfig.
func addRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", config.DefaultFile, "Configuration file (YAML or JSON)")
	flags.String("dir", ".", "Directory containing the menu link documents")
	flags.String("source", config.SourceDir, "Menu link source: 'dir' or 'redis'")
	flags.String("redis-addr", "localhost:6379", "Redis address (source redis)")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("front-page", "", "Link whose children are shown at the menu root")
}

// menuStore is the read side every source implements.
type menuStore interface {
	ports.TreeLoader
	ports.LinkManager
	Links(ctx context.Context, menuName string) ([]domain.Link, error)
	Menus(ctx context.Context) ([]string, error)
}

// app is what the commands share: the resolved configuration and a navigator
// reading its active trail from the command context.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	nav    *menutrail.Navigator
	closer io.Closer
}

func (a *app) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// store returns the navigator's link source with its listing methods.
func (a *app) store() (menuStore, error) {
	s, ok := a.nav.LinkManager().(menuStore)
	if !ok {
		return nil, fmt.Errorf("source %q cannot list menus", a.cfg.Source)
	}
	return s, nil
}

// loadConfig reads the configuration file and applies the flags that were set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if flags.Changed("dir") {
		cfg.Dir, _ = flags.GetString("dir")
	}
	if flags.Changed("source") {
		cfg.Source, _ = flags.GetString("source")
	}
	if flags.Changed("redis-addr") {
		cfg.Redis.Addr, _ = flags.GetString("redis-addr")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("front-page") {
		cfg.FrontPage, _ = flags.GetString("front-page")
	}
	return cfg, cfg.Validate()
}

// setup builds the navigator for the configured source. Each extra option
// is built once the logger is known.
func setup(cmd *cobra.Command, extra ...func(*app) menutrail.Option) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level)
	slog.SetDefault(logger)

	a := &app{cfg: cfg, logger: logger}

	base := []menutrail.Option{
		menutrail.WithActiveTrail(httpadapter.ContextTrail{}),
		menutrail.WithLogger(logger),
	}
	if cfg.FrontPage != "" {
		base = append(base, menutrail.WithFrontPage(cfg.FrontPage))
	}

	repoPath := cfg.Dir
	if cfg.Source == config.SourceRedis {
		store := redisadapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redisadapter.WithPrefix(cfg.Redis.Prefix),
		)
		if err := store.Ping(cmd.Context()); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
		}
		a.closer = store
		base = append(base, menutrail.WithStore(store))
		repoPath = ""
	}

	for _, opt := range extra {
		base = append(base, opt(a))
	}

	a.nav, err = menutrail.New(repoPath, base...)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// position attaches the trail given by --trail, or by --current, to ctx.
func (a *app) position(ctx context.Context, current, trail string) (context.Context, error) {
	if trail != "" {
		return httpadapter.ContextWithTrail(ctx, strings.Split(trail, ",")), nil
	}
	ids, err := httpadapter.TrailOf(ctx, a.nav.LinkManager(), current)
	if err != nil {
		return nil, err
	}
	return httpadapter.ContextWithTrail(ctx, ids), nil
}

// addPositionFlags registers the flags read by app.position.
func addPositionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("menu", "m", "", "Menu name")
	cmd.Flags().StringP("current", "c", "", "Current link id")
	cmd.Flags().String("trail", "", "Comma-separated node-first trail, e.g. 'B,R,' (wins over --current)")
	_ = cmd.MarkFlagRequired("menu")
}

func positionFlags(cmd *cobra.Command) (menu, current, trail string) {
	menu, _ = cmd.Flags().GetString("menu")
	current, _ = cmd.Flags().GetString("current")
	trail, _ = cmd.Flags().GetString("trail")
	return menu, current, trail
}
