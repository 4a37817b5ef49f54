package nn

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"

	"github.com/avast/retry-go/v4"
	"gonum.org/v1/gonum/mat"
)

// linearParams is the on-disk form of a Linear model. Files are gob-encoded;
// JSON is accepted on load as the alternate decoding path for models exported
// by other tooling.
type linearParams struct {
	Width         int
	Height        int
	PolicyWeights []float64 // row-major, actions x features
	PolicyBias    []float64
	ValueWeights  []float64
	ValueBias     float64
}

func (l *Linear) params() linearParams {
	return linearParams{
		Width:         l.width,
		Height:        l.height,
		PolicyWeights: append([]float64(nil), l.wp.RawMatrix().Data...),
		PolicyBias:    append([]float64(nil), l.bp.RawVector().Data...),
		ValueWeights:  append([]float64(nil), l.wv.RawVector().Data...),
		ValueBias:     l.bv,
	}
}

// Save writes the model to path, retrying transient filesystem failures.
func (l *Linear) Save(path string) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(l.params()); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	err := retry.Do(
		func() error { return os.WriteFile(path, buf.Bytes(), 0644) },
		retry.Attempts(3),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return fmt.Errorf("failed to write model %s: %w", path, err)
	}
	return nil
}

// LoadLinear reads a model saved by Save. It tries gob first and falls back
// to JSON once before giving up.
func LoadLinear(path string) (*Linear, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", path, err)
	}

	var params linearParams
	gobErr := gob.NewDecoder(bytes.NewReader(data)).Decode(&params)
	if gobErr != nil {
		if jsonErr := json.Unmarshal(data, &params); jsonErr != nil {
			return nil, fmt.Errorf("failed to decode model %s (gob: %v): %w", path, gobErr, jsonErr)
		}
	}

	if params.Width <= 0 || params.Height <= 0 {
		return nil, fmt.Errorf("model %s has invalid board size %dx%d", path, params.Width, params.Height)
	}
	l := NewLinear(params.Width, params.Height)
	if len(params.PolicyWeights) != l.actions()*l.features() ||
		len(params.PolicyBias) != l.actions() ||
		len(params.ValueWeights) != l.features() {
		return nil, fmt.Errorf("model %s has inconsistent parameter shapes", path)
	}
	l.wp = mat.NewDense(l.actions(), l.features(), params.PolicyWeights)
	l.bp = mat.NewVecDense(l.actions(), params.PolicyBias)
	l.wv = mat.NewVecDense(l.features(), params.ValueWeights)
	l.bv = params.ValueBias
	return l, nil
}
