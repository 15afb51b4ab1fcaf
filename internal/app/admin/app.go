package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"neovideo/internal/app/client"
	"neovideo/internal/app/client/config"
	"neovideo/internal/utils/logger"
)

var (
	ErrMounted         = errors.New("приложение уже смонтировано")
	ErrDuplicatePlugin = errors.New("плагин уже подключен")
	ErrNotReady        = errors.New("приложение не инициализировано")
)

// Plugin добавляет команды в корневую команду приложения
type Plugin interface {
	Name() string
	Install(app *App) error
}

type flags struct {
	cfgFile    string
	server     string
	token      string
	debug      bool
	jsonOutput bool
}

// App корневая команда, подключенные плагины и общие зависимости команд
type App struct {
	root    *cobra.Command
	plugins []Plugin
	mounted bool
	err     error
	flags   flags

	cfg    *config.Config
	log    *slog.Logger
	client *client.Client
}

// New создает приложение из корневой команды и вешает на нее глобальные флаги
func New(root *cobra.Command) *App {
	app := &App{root: root}

	root.SilenceUsage = true
	root.SilenceErrors = true

	pf := root.PersistentFlags()
	pf.StringVar(&app.flags.cfgFile, "config", "", "конфигурационный файл (по умолчанию ~/.neovideo/config.yaml)")
	pf.StringVar(&app.flags.server, "server", "", "адрес сервера Neovideo")
	pf.StringVar(&app.flags.token, "token", "", "токен администратора")
	pf.BoolVar(&app.flags.debug, "debug", false, "включить отладочный режим")
	pf.BoolVar(&app.flags.jsonOutput, "json", false, "вывод в формате JSON")

	prev := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.setup(); err != nil {
			return err
		}
		if prev != nil {
			return prev(cmd, args)
		}
		return nil
	}

	return app
}

// Use подключает плагин. Ошибка запоминается и возвращается из Mount или Err.
func (a *App) Use(p Plugin) *App {
	if a.mounted {
		a.err = errors.Join(a.err, fmt.Errorf("плагин %s: %w", p.Name(), ErrMounted))
		return a
	}
	if a.err != nil {
		return a
	}

	for _, installed := range a.plugins {
		if installed.Name() == p.Name() {
			a.err = fmt.Errorf("плагин %s: %w", p.Name(), ErrDuplicatePlugin)
			return a
		}
	}

	if err := p.Install(a); err != nil {
		a.err = fmt.Errorf("ошибка подключения плагина %s: %w", p.Name(), err)
		return a
	}
	a.plugins = append(a.plugins, p)

	return a
}

// Mount выполняет корневую команду с аргументами args. Вызывается один раз.
func (a *App) Mount(ctx context.Context, args []string) error {
	if a.err != nil {
		return a.err
	}
	if a.mounted {
		return ErrMounted
	}
	a.mounted = true

	if args == nil {
		args = []string{}
	}
	a.root.SetArgs(args)

	return a.root.ExecuteContext(ctx)
}

// Err первая ошибка подключения плагинов
func (a *App) Err() error {
	return a.err
}

func (a *App) setup() error {
	cfg, err := config.Load(a.flags.cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if a.flags.server != "" {
		cfg.ServerAddress = a.flags.server
	}
	if a.flags.token != "" {
		cfg.Token = a.flags.token
	}
	if a.flags.debug {
		cfg.LogLevel = "debug"
	}

	level, ok := logger.ParseLevel(cfg.LogLevel)
	if !ok {
		level = slog.LevelInfo
	}
	log := logger.NewWriter(cfg.Env, level, a.root.ErrOrStderr())

	c, err := client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации клиента: %w", err)
	}

	a.cfg = cfg
	a.log = log
	a.client = c

	log.Debug("admin app ready", "server", c.BaseURL(), "config", cfg.ConfigFile)

	return nil
}

func (a *App) Root() *cobra.Command {
	return a.root
}

// Client доступен после PersistentPreRunE
func (a *App) Client() (*client.Client, error) {
	if a.client == nil {
		return nil, ErrNotReady
	}
	return a.client, nil
}

func (a *App) Config() *config.Config {
	return a.cfg
}

// Logger возвращает логгер; до setup пишет в stderr
func (a *App) Logger() *slog.Logger {
	if a.log == nil {
		return logger.NewWriter("", slog.LevelInfo, os.Stderr)
	}
	return a.log
}

func (a *App) Out() io.Writer {
	return a.root.OutOrStdout()
}

func (a *App) In() io.Reader {
	return a.root.InOrStdin()
}

func (a *App) JSON() bool {
	return a.flags.jsonOutput
}

func (a *App) Plugins() []Plugin {
	return append([]Plugin(nil), a.plugins...)
}
