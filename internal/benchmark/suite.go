package benchmark

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/copyleftdev/optbench/internal/errors"
	"github.com/copyleftdev/optbench/internal/problems"
	"github.com/copyleftdev/optbench/internal/solvers"
)

// Suite is a benchmark definition loaded from a YAML file: one problem,
// the methods to run against it, and the metrics to record.
type Suite struct {
	Problem string        `yaml:"problem"`
	Dim     int           `yaml:"dim"`
	Seed    int64         `yaml:"seed"`
	Runs    int           `yaml:"runs"`
	Metrics []string      `yaml:"metrics"`
	Methods []SuiteMethod `yaml:"methods"`
}

// SuiteMethod configures one built-in method of a suite.
type SuiteMethod struct {
	Name         string       `yaml:"name"`
	XInit        []float64    `yaml:"x_init"`
	Tol          *float64     `yaml:"tol"`
	MaxIter      int          `yaml:"maxiter"`
	Stepsize     StepsizeSpec `yaml:"stepsize"`
	Acceleration bool         `yaml:"acceleration"`
	Label        string       `yaml:"label"`
}

// StepsizeSpec is a step-length schedule in YAML form: either a bare
// number (constant step) or a mapping like
//
//	stepsize: {kind: inverse, scale: 1.0, offset: 20}
type StepsizeSpec struct {
	Kind   string
	Const  float64
	Scale  float64
	Offset float64
}

func (s *StepsizeSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var c float64
		if err := value.Decode(&c); err != nil {
			return err
		}
		s.Kind = "const"
		s.Const = c
		return nil
	}

	var aux struct {
		Kind   string  `yaml:"kind"`
		Const  float64 `yaml:"const"`
		Scale  float64 `yaml:"scale"`
		Offset float64 `yaml:"offset"`
	}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	s.Kind = aux.Kind
	s.Const = aux.Const
	s.Scale = aux.Scale
	s.Offset = aux.Offset
	return nil
}

func (s StepsizeSpec) schedule() (solvers.Stepsize, error) {
	switch s.Kind {
	case "", "const":
		if s.Const <= 0 {
			return nil, errors.Configf("constant stepsize must be positive, got %g", s.Const)
		}
		return solvers.ConstStepsize(s.Const), nil
	case "inverse":
		scale := s.Scale
		if scale == 0 {
			scale = 1
		}
		if scale < 0 {
			return nil, errors.Configf("inverse stepsize scale must be positive, got %g", scale)
		}
		// A non-positive offset divides by zero at iteration 0.
		if s.Offset <= 0 {
			return nil, errors.Configf("inverse stepsize offset must be positive, got %g", s.Offset)
		}
		return solvers.InverseStepsize(scale, s.Offset), nil
	}
	return nil, errors.Configf("unknown stepsize kind %q", s.Kind)
}

// SuiteDefaults fills in the suite fields a file may omit. They come from
// the process configuration rather than package globals.
type SuiteDefaults struct {
	Tol     float64
	MaxIter int
	Runs    int
}

// ProblemDim returns the problem dimensionality, defaulting to 2 when the
// suite omits it.
func (s *Suite) ProblemDim() int {
	if s.Dim == 0 {
		return 2
	}
	return s.Dim
}

// LoadSuite reads a suite definition from a YAML file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading suite file").WithComponent("benchmark")
	}

	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "parsing suite file").WithComponent("benchmark")
	}
	return &s, nil
}

// Build resolves the suite into a runnable Benchmark, applying defaults
// for anything the file left out.
func (s *Suite) Build(defaults SuiteDefaults, opts ...Option) (*Benchmark, error) {
	dim := s.ProblemDim()

	problem, err := problems.ByName(s.Problem, dim, s.Seed)
	if err != nil {
		return nil, err
	}

	var methodConfigs []MethodConfig
	for _, m := range s.Methods {
		schedule, err := m.Stepsize.schedule()
		if err != nil {
			return nil, errors.Wrapf(err, "method %q", m.Name).WithComponent("benchmark")
		}

		tol := defaults.Tol
		if m.Tol != nil {
			tol = *m.Tol
		}
		maxIter := m.MaxIter
		if maxIter == 0 {
			maxIter = defaults.MaxIter
		}
		xInit := m.XInit
		if len(xInit) == 0 {
			xInit = make([]float64, dim)
			for i := range xInit {
				xInit[i] = 1
			}
		}

		methodConfigs = append(methodConfigs, MethodConfig{
			Name: m.Name,
			Params: solvers.Params{
				XInit:        xInit,
				Tol:          tol,
				MaxIter:      maxIter,
				Stepsize:     schedule,
				Acceleration: m.Acceleration,
				Label:        m.Label,
			},
		})
	}

	runs := s.Runs
	if runs == 0 {
		runs = defaults.Runs
	}
	opts = append(opts, WithRuns(runs))

	return New(problem, methodConfigs, s.Metrics, opts...)
}
