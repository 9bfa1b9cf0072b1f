package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/sim"
)

const (
	DefaultTolerance = 1e-6
	DefaultDivisions = 100
	DefaultNodes     = 10
	DefaultStep      = 0.1
	DefaultSeed      = 1
)

// Labs are the accepted values of Config.Lab.
var Labs = []string{"roots", "integrate", "regress", "interpolate", "ode"}

// Config is one lab invocation. Fields a lab does not use are ignored.
type Config struct {
	Lab  string `yaml:"lab" validate:"required,oneof=roots integrate regress interpolate ode"`
	Expr string `yaml:"expr,omitempty"`

	// A and B bound the domain; for the ode lab B is the end of integration.
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`

	Tolerance float64 `yaml:"tolerance,omitempty" validate:"omitempty,gt=0"`
	Divisions int     `yaml:"divisions,omitempty" validate:"omitempty,oneof=10 20 50 100 1000"`
	Method    string  `yaml:"method,omitempty" validate:"omitempty,oneof=iteration bisection newton rectangle trapezoid monte-carlo euler rk4"`
	Seed      int64   `yaml:"seed,omitempty"`

	X []float64 `yaml:"x,omitempty,flow"`
	Y []float64 `yaml:"y,omitempty,flow"`

	XMin  float64 `yaml:"xmin,omitempty"`
	XMax  float64 `yaml:"xmax,omitempty"`
	Nodes int     `yaml:"nodes,omitempty" validate:"omitempty,gte=1,lte=60"`

	X0    float64 `yaml:"x0,omitempty"`
	Y0    float64 `yaml:"y0,omitempty"`
	Step  float64 `yaml:"step,omitempty"`
	Exact bool    `yaml:"exact,omitempty"`
}

var validate = validator.New()

func DefaultConfig() *Config {
	return &Config{
		Lab:       "roots",
		Expr:      "x*tanh(x) - 1",
		A:         -2,
		B:         2,
		Tolerance: DefaultTolerance,
		Divisions: DefaultDivisions,
		Seed:      DefaultSeed,
		Nodes:     DefaultNodes,
		Step:      DefaultStep,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks struct tags first, then the rules of the selected lab.
// Every failure wraps numeric.ErrInvalidInput or numeric.ErrDegenerateRange.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("config: %w: %s failed %q", numeric.ErrInvalidInput, f.Field(), f.Tag())
		}
		return fmt.Errorf("config: %w: %v", numeric.ErrInvalidInput, err)
	}

	switch c.Lab {
	case "roots":
		if err := c.requireExpr(); err != nil {
			return err
		}
		if !numeric.IsTolerance(c.Tolerance) {
			return fmt.Errorf("config: %w: tolerance %g not in %v", numeric.ErrInvalidInput, c.Tolerance, numeric.Tolerances)
		}
		return c.checkMethod("iteration", "bisection", "newton")
	case "integrate":
		if err := c.requireExpr(); err != nil {
			return err
		}
		if !numeric.IsDivision(c.Divisions) {
			return fmt.Errorf("config: %w: divisions %d not in %v", numeric.ErrInvalidInput, c.Divisions, numeric.Divisions)
		}
		return c.checkMethod("rectangle", "trapezoid", "monte-carlo")
	case "regress":
		if len(c.X) != len(c.Y) || len(c.X) < 2 {
			return fmt.Errorf("config: %w: need matching x and y with at least 2 points, got %d and %d", numeric.ErrDegenerateRange, len(c.X), len(c.Y))
		}
		return nil
	case "interpolate":
		if err := c.requireExpr(); err != nil {
			return err
		}
		if err := numeric.CheckRange("config", c.XMin, c.XMax); err != nil {
			return fmt.Errorf("config: display range: %w", err)
		}
		if c.Nodes < 1 {
			return fmt.Errorf("config: %w: nodes must be at least 1", numeric.ErrInvalidInput)
		}
		return nil
	case "ode":
		if c.Expr == "" {
			return fmt.Errorf("config: %w: expr is required", numeric.ErrInvalidInput)
		}
		if c.Step == 0 || (c.B != c.X0 && math.Signbit(c.B-c.X0) != math.Signbit(c.Step)) {
			return fmt.Errorf("config: %w: step %g cannot reach %g from %g", numeric.ErrInvalidStep, c.Step, c.B, c.X0)
		}
		if _, err := sim.Steps(c.X0, c.B, c.Step); err != nil {
			return fmt.Errorf("config: step %g from %g to %g: %w", c.Step, c.X0, c.B, err)
		}
		return c.checkMethod("euler", "rk4")
	}
	return nil
}

func (c *Config) requireExpr() error {
	if c.Expr == "" {
		return fmt.Errorf("config: %w: expr is required", numeric.ErrInvalidInput)
	}
	if err := numeric.CheckRange("config", c.A, c.B); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// checkMethod accepts an empty method, meaning every method of the lab.
func (c *Config) checkMethod(allowed ...string) error {
	if c.Method == "" {
		return nil
	}
	for _, m := range allowed {
		if c.Method == m {
			return nil
		}
	}
	return fmt.Errorf("config: %w: method %q does not belong to lab %s", numeric.ErrInvalidInput, c.Method, c.Lab)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	cp.X = append([]float64(nil), c.X...)
	cp.Y = append([]float64(nil), c.Y...)
	return &cp
}
