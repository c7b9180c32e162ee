// Package cli is the pmdadmin admin command line: a thin client of the
// HTTP API plus local token minting.
package cli

import (
	"bufio"
	"context"
	"io"

	"github.com/dmitrijs2005/pmdadmin/internal/client/api"
	"github.com/dmitrijs2005/pmdadmin/internal/client/config"
	"github.com/urfave/cli/v3"
)

type App struct {
	reader *bufio.Reader
	out    io.Writer
	// configPath overrides config.Path when set.
	configPath string
}

func NewApp(in io.Reader, out io.Writer) *App {
	return &App{reader: bufio.NewReader(in), out: out}
}

// Run parses args (including the program name) and executes the command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 1 {
		args = append(args, "--help")
	}
	return a.Command().Run(ctx, args)
}

func (a *App) Command() *cli.Command {
	return &cli.Command{
		Name:   "pmdadmin",
		Usage:  "Administer the police directory backend",
		Writer: a.out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "settings file (default ~/.pmdadmin/config.json)"},
			&cli.StringFlag{Name: "server", Usage: "API base URL"},
			&cli.StringFlag{Name: "token", Usage: "bearer token"},
			&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
		},
		Commands: []*cli.Command{
			a.loginCommand(),
			a.tokenCommand(),
			a.healthCommand(),
			a.catalogCommand("documents", "Documents catalog"),
			a.catalogCommand("gallery", "Gallery images"),
			a.ranksCommand(),
			a.employeesCommand(),
			a.registrationsCommand(),
			a.notifyCommand(),
			a.statsCommand(),
		},
	}
}

func (a *App) settingsPath(cmd *cli.Command) (string, error) {
	if p := cmd.String("config"); p != "" {
		return p, nil
	}
	if a.configPath != "" {
		return a.configPath, nil
	}
	return config.Path()
}

// loadConfig reads the settings file and applies the global flags.
func (a *App) loadConfig(cmd *cli.Command) (*config.Config, string, error) {
	path, err := a.settingsPath(cmd)
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	if s := cmd.String("server"); s != "" {
		cfg.Server = s
	}
	if t := cmd.String("token"); t != "" {
		cfg.Token = t
	}
	return cfg, path, nil
}

func (a *App) client(cmd *cli.Command) (*api.Client, error) {
	cfg, _, err := a.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return api.NewClient(cfg.Server, cfg.Token, cfg.Timeout.Duration), nil
}
