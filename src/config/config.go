package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"lifewatch/src/universe"
)

//default options
const (
	DefSize        = 30
	DefInterval    = time.Millisecond * 100
	DefMaxSteps    = 1000
	DefEngine      = "sparse"
	DefTemplate    = "sample"
	DefDensity     = 0.25
	DefSeed        = 1
	DefGenerations = 200
)

//Config represents the simulation and the environment options
type Config struct {
	Size        int           `yaml:"size"`
	Interval    time.Duration `yaml:"interval"`
	MaxSteps    int           `yaml:"max_steps"`
	Engine      string        `yaml:"engine"`
	Template    string        `yaml:"template"`
	Random      bool          `yaml:"random"`
	Seed        int64         `yaml:"seed"`
	Density     float64       `yaml:"density"`
	Interactive bool          `yaml:"interactive"`
	Generations int           `yaml:"generations"` //generations of the compare command
}

//Default returns the default configuration
func Default() Config {
	return Config{
		Size:        DefSize,
		Interval:    DefInterval,
		MaxSteps:    DefMaxSteps,
		Engine:      DefEngine,
		Template:    DefTemplate,
		Seed:        DefSeed,
		Density:     DefDensity,
		Generations: DefGenerations,
	}
}

//Load reads the yaml file on top of the defaults
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

//Validate checks the values the simulation can not work with
func (c Config) Validate() error {
	var errs []error
	if c.Size < 1 {
		errs = append(errs, fmt.Errorf("%w: %d", universe.ErrInvalidSize, c.Size))
	}
	if c.Interval < 0 {
		errs = append(errs, fmt.Errorf("negative interval %v", c.Interval))
	}
	if c.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("negative max steps %d", c.MaxSteps))
	}
	if c.Generations < 0 {
		errs = append(errs, fmt.Errorf("%w: %d", universe.ErrInvalidGenerations, c.Generations))
	}
	if c.Density < 0 || c.Density > 1 {
		errs = append(errs, fmt.Errorf("density %v is outside [0, 1]", c.Density))
	}
	if _, err := universe.NewEngine(c.Engine); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
