package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/integrii/flaggy"
	"lifewatch/src/config"
	"lifewatch/src/universe"
	"lifewatch/src/view"
)

type envOptions struct {
	configPath string
	compare    *flaggy.Subcommand
}

func main() {
	eo, cfg := initOptions()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if eo.compare.Used {
		runCompare(ctx, cfg)
		return
	}

	engine, err := universe.NewEngine(cfg.Engine)
	if err != nil {
		log.Fatalln(err)
	}
	sim, err := universe.New(cfg.Size, engine, universe.WithInterval(cfg.Interval), universe.WithMaxSteps(cfg.MaxSteps))
	if err != nil {
		log.Fatalln(err)
	}
	if err := seed(cfg)(sim); err != nil {
		log.Fatalln(err)
	}

	if cfg.Interactive {
		l := universe.NewLoop(sim, cfg.Interval)
		v := view.NewViewTerminal(l, sim, cfg.Interval, cfg.Seed, cfg.Density)
		l.Do(func(s *universe.Simulation) {
			s.RegisterViewer(v)
			v.Refresh(s.State())
		})
		v.Start()
		l.Close()
		return
	}

	out := view.NewConsoleOut(os.Stdout, true)
	out.Configuration(cfg.Size, cfg.Interval, cfg.MaxSteps, sim.Engine().Details())
	sim.RegisterViewer(out)
	out.Start()
	if err := sim.Run(ctx); err != nil {
		log.Println(err)
	}
}

//seed returns the board seeder chosen by the configuration
func seed(cfg config.Config) universe.Seeder {
	if cfg.Random {
		return func(s *universe.Simulation) error {
			return s.SettleWithRandomData(cfg.Seed, cfg.Density)
		}
	}
	return func(s *universe.Simulation) error {
		return s.SettleTemplate(cfg.Template)
	}
}

func runCompare(ctx context.Context, cfg config.Config) {
	r, err := universe.Compare(ctx, cfg.Size, seed(cfg), cfg.Generations)
	if err != nil {
		log.Fatalln(err)
	}
	view.NewConsoleOut(os.Stdout, true).Compare(r)
	if !r.Equivalent() {
		os.Exit(1)
	}
}

//configPath finds the -c/--config value in args, the last one wins
//accepted forms: -c path, --config path, -c=path, --config=path
func configPath(args []string) (path string) {
	for i, a := range args {
		switch {
		case a == "--":
			return
		case (a == "-c" || a == "--config") && i+1 < len(args):
			path = args[i+1]
		case strings.HasPrefix(a, "-c="):
			path = strings.TrimPrefix(a, "-c=")
		case strings.HasPrefix(a, "--config="):
			path = strings.TrimPrefix(a, "--config=")
		}
	}
	return
}

func initOptions() (eo *envOptions, cfg config.Config) {
	eo = &envOptions{}
	cfg = config.Default()
	//the config file has to be loaded before flaggy parses the command line,
	//so the flags are applied on top of the file values
	eo.configPath = configPath(os.Args[1:])
	if eo.configPath != "" {
		var err error
		if cfg, err = config.Load(eo.configPath); err != nil {
			log.Fatalln(err)
		}
	}

	flaggy.SetName("lifewatch")
	flaggy.SetDescription("Conway's Game of Life on a bounded board")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&eo.configPath, "c", "config", "Path to a yaml configuration file")
	flaggy.Int(&cfg.Size, "x", "size", "Dimension of the square board")
	flaggy.Duration(&cfg.Interval, "i", "interval", "Simulation speed (interval between the generations) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&cfg.MaxSteps, "s", "maxSteps", "Pause the simulation after maxSteps generations, 0 for no limit")
	flaggy.Bool(&cfg.Interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&cfg.Random, "r", "random", "Settle with random data")
	flaggy.Int64(&cfg.Seed, "", "seed", "Seed of the random data")
	flaggy.Float64(&cfg.Density, "d", "density", "Share of live cells in the random data")
	flaggy.String(&cfg.Engine, "e", "engine", "Engine to use ["+strings.Join(universe.Engines(), "|")+"]")
	flaggy.String(&cfg.Template, "t", "template", "Template to settle the board with when not random")

	eo.compare = flaggy.NewSubcommand("compare")
	eo.compare.Description = "Run all engines from the same seed and check they produce the same boards"
	eo.compare.Int(&cfg.Generations, "g", "generations", "Generations to compare")
	flaggy.AttachSubcommand(eo.compare, 1)

	flaggy.Parse()

	if err := cfg.Validate(); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	return
}
