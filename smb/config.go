package smb

import (
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/smbmpc/utils"
)

// CostConfig describes tracking cost weights. Each weight is given either as its diagonal or as a
// full row-major square matrix.
type CostConfig struct {
	QPosition    []float64 `json:"q_position"`
	QOrientation []float64 `json:"q_orientation"`
	R            []float64 `json:"r"`
}

// DefaultCostConfig weights every residual component by one.
func DefaultCostConfig() *CostConfig {
	return &CostConfig{
		QPosition:    []float64{1, 1, 1},
		QOrientation: []float64{1, 1, 1},
		R:            []float64{1, 1},
	}
}

// Validate ensures all parts of the config are valid.
func (cfg *CostConfig) Validate(path string) error {
	var err error
	for _, field := range []struct {
		name   string
		values []float64
		n      int
	}{
		{"q_position", cfg.QPosition, 3},
		{"q_orientation", cfg.QOrientation, 3},
		{"r", cfg.R, InputDim},
	} {
		if len(field.values) == 0 {
			err = multierr.Append(err, utils.NewConfigValidationFieldRequiredError(path, field.name))
			continue
		}
		if len(field.values) != field.n && len(field.values) != field.n*field.n {
			err = multierr.Append(err, utils.NewConfigValidationError(path,
				errors.Errorf("%q needs %d diagonal entries or %d matrix entries, got %d",
					field.name, field.n, field.n*field.n, len(field.values))))
			continue
		}
		for _, v := range field.values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				err = multierr.Append(err, utils.NewConfigValidationError(path,
					errors.Errorf("%q has a non-finite entry", field.name)))
				break
			}
		}
	}
	return err
}

// Weights converts the config into weight matrices. The config must be valid.
func (cfg *CostConfig) Weights() CostWeights {
	return CostWeights{
		Position:    weightMatrix(cfg.QPosition, 3),
		Orientation: weightMatrix(cfg.QOrientation, 3),
		Input:       weightMatrix(cfg.R, InputDim),
	}
}

func weightMatrix(values []float64, n int) *mat.Dense {
	if len(values) == n*n {
		return mat.NewDense(n, n, append([]float64(nil), values...))
	}
	m := mat.NewDense(n, n, nil)
	for i, v := range values {
		m.Set(i, i, v)
	}
	return m
}

// ReadCostConfig reads and validates a cost config. The file is JSON5, so comments and trailing
// commas are allowed.
func ReadCostConfig(path string) (*CostConfig, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open cost config")
	}
	defer goutils.UncheckedErrorFunc(f.Close)

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read cost config")
	}
	var cfg CostConfig
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "cannot parse cost config %q", path)
	}
	if err := cfg.Validate(path); err != nil {
		return nil, errors.Wrapf(err, "invalid cost config %q", path)
	}
	return &cfg, nil
}

// ReadTargetTrajectories reads and validates a JSON trajectory.
func ReadTargetTrajectories(path string) (*TargetTrajectories, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open target trajectories")
	}
	defer goutils.UncheckedErrorFunc(f.Close)
	return DecodeTargetTrajectories(f)
}

// DecodeTargetTrajectories reads and validates a JSON trajectory from r.
func DecodeTargetTrajectories(r io.Reader) (*TargetTrajectories, error) {
	var traj TargetTrajectories
	if err := json.NewDecoder(r).Decode(&traj); err != nil {
		return nil, errors.Wrap(err, "cannot parse target trajectories")
	}
	if err := ValidateTargetTrajectories(&traj); err != nil {
		return nil, errors.Wrap(err, "invalid target trajectories")
	}
	return &traj, nil
}

// WriteTargetTrajectories writes traj as indented JSON.
func WriteTargetTrajectories(w io.Writer, traj *TargetTrajectories) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(traj), "cannot write target trajectories")
}
