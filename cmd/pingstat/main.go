package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/tomsh-hr/pingstat/internal/app"
	"github.com/tomsh-hr/pingstat/internal/config"
	"github.com/tomsh-hr/pingstat/internal/models"
	"github.com/tomsh-hr/pingstat/internal/probe"
	"github.com/tomsh-hr/pingstat/internal/prompt"
	"github.com/tomsh-hr/pingstat/internal/registry"
	"github.com/tomsh-hr/pingstat/internal/store"
)

func main() {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if err := createCliApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func createCliApp() *cli.App {
	hostFlag := &cli.StringFlag{
		Name:    "server",
		Aliases: []string{"s"},
		Usage:   "operate on a single `HOST` instead of all registered hosts",
	}

	return &cli.App{
		Name:    "pingstat",
		Version: "1.0.0",
		Usage:   "record ping latency history and report daily/monthly statistics",
		CommandNotFound: func(c *cli.Context, command string) {
			fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
			os.Exit(1)
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: config.DefaultPath(),
				Usage: "config file `PATH`",
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "override the data directory",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "register a host (probed for reachability first)",
				ArgsUsage: "<host>",
				Action:    runAdd,
			},
			{
				Name:      "remove",
				Usage:     "unregister a host (recorded samples are kept)",
				ArgsUsage: "<host>",
				Action:    runRemove,
			},
			{
				Name:   "list",
				Usage:  "print the registered hosts",
				Action: runList,
			},
			{
				Name:    "probe",
				Aliases: []string{"p"},
				Usage:   "probe registered hosts and record one sample each",
				Flags:   []cli.Flag{hostFlag},
				Action:  runProbe,
			},
			{
				Name:      "daily",
				Aliases:   []string{"d"},
				Usage:     "show per-day aggregates, newest first",
				ArgsUsage: "[limit]",
				Flags:     []cli.Flag{hostFlag},
				Action:    runDaily,
			},
			{
				Name:      "monthly",
				Aliases:   []string{"m"},
				Usage:     "show per-month aggregates, newest first",
				ArgsUsage: "[limit]",
				Flags:     []cli.Flag{hostFlag},
				Action:    runMonthly,
			},
			{
				Name:  "report",
				Usage: "write text summaries and latency charts",
				Flags: []cli.Flag{
					hostFlag,
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Value:   "pingstat-report",
						Usage:   "output `DIR`",
					},
				},
				Action: runReport,
			},
		},
	}
}

// buildApp assembles the collaborators for one invocation: config,
// registry record, per-host store, ping adapter and the interactive
// prompter on the real terminal.
func buildApp(c *cli.Context) (*app.App, config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, config.Config{}, err
	}
	if dir := c.String("data-dir"); dir != "" {
		cfg.DataDir = dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, config.Config{}, err
	}

	reg := registry.Load(cfg.RegistryPath())
	ask := prompt.New(os.Stdin, os.Stderr)
	a := app.New(cfg, reg, probe.New(), store.New(cfg.DataDir), ask, os.Stdout)
	return a, cfg, nil
}

func requireHostArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", cli.Exit(fmt.Sprintf("usage: pingstat %s <host>", c.Command.Name), 1)
	}
	return c.Args().First(), nil
}

func runAdd(c *cli.Context) error {
	host, err := requireHostArg(c)
	if err != nil {
		return err
	}
	a, _, err := buildApp(c)
	if err != nil {
		return err
	}

	result, err := a.AddHost(host)
	if err != nil {
		return err
	}
	switch result {
	case registry.Added:
		fmt.Printf("added %s\n", host)
	case registry.AlreadyPresent:
		fmt.Printf("%s is already registered\n", host)
	case registry.Declined:
		fmt.Println("cancelled, registry unchanged")
	}
	return nil
}

func runRemove(c *cli.Context) error {
	host, err := requireHostArg(c)
	if err != nil {
		return err
	}
	a, _, err := buildApp(c)
	if err != nil {
		return err
	}

	result, err := a.RemoveHost(host)
	if err != nil {
		return err
	}
	if result == registry.Removed {
		fmt.Printf("removed %s\n", host)
	} else {
		fmt.Printf("%s is not registered\n", host)
	}
	return nil
}

func runList(c *cli.Context) error {
	a, _, err := buildApp(c)
	if err != nil {
		return err
	}
	for _, host := range a.ListHosts() {
		fmt.Println(host)
	}
	return nil
}

func runProbe(c *cli.Context) error {
	a, _, err := buildApp(c)
	if err != nil {
		return err
	}

	if host := c.String("server"); host != "" {
		err = a.ProbeHost(host)
	} else {
		err = a.ProbeAll()
	}
	return mapOutcome(err)
}

func runDaily(c *cli.Context) error {
	return runStats(c, models.Daily)
}

func runMonthly(c *cli.Context) error {
	return runStats(c, models.Monthly)
}

func runStats(c *cli.Context, g models.Granularity) error {
	a, cfg, err := buildApp(c)
	if err != nil {
		return err
	}

	limit := cfg.DailyLimit
	if g == models.Monthly {
		limit = cfg.MonthlyLimit
	}
	if raw := c.Args().First(); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return cli.Exit(fmt.Sprintf("invalid limit %q", raw), 1)
		}
	}

	return mapOutcome(a.Stats(c.String("server"), g, limit))
}

func runReport(c *cli.Context) error {
	a, _, err := buildApp(c)
	if err != nil {
		return err
	}
	return mapOutcome(a.Report(c.String("server"), c.String("output")))
}

// mapOutcome translates typed app outcomes into exit behavior: declined
// registration is a normal negative result (exit 0), missing
// connectivity means no samples were recorded (exit 1).
func mapOutcome(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, app.ErrNotRegistered):
		fmt.Println("not registered, nothing recorded")
		return nil
	case errors.Is(err, app.ErrNoConnectivity):
		return cli.Exit(err.Error(), 1)
	default:
		return err
	}
}
