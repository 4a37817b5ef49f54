package nn

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"lukechampine.com/frand"

	"gomokuzero/game"
)

const (
	// L2 penalty applied to both heads during training.
	weightDecay = 1e-4

	// probEps keeps log terms finite in the entropy computation.
	probEps = 1e-10
)

// Linear is a minimal trainable evaluator: a softmax linear policy head and a
// tanh linear value head over the flattened board encoding. It exists so the
// pipeline is a complete system; a stronger network drops in behind the same
// Evaluator interface.
type Linear struct {
	width  int
	height int
	wp     *mat.Dense    // actions x features
	bp     *mat.VecDense // actions
	wv     *mat.VecDense // features
	bv     float64
}

func NewLinear(width, height int) *Linear {
	actions := width * height
	features := game.PlaneCount * actions
	return &Linear{
		width:  width,
		height: height,
		wp:     mat.NewDense(actions, features, randWeights(actions*features)),
		bp:     mat.NewVecDense(actions, nil),
		wv:     mat.NewVecDense(features, randWeights(features)),
		bv:     0,
	}
}

func randWeights(n int) []float64 {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = (frand.Float64() - 0.5) * 0.02
	}
	return weights
}

func (l *Linear) actions() int  { return l.width * l.height }
func (l *Linear) features() int { return game.PlaneCount * l.width * l.height }

func (l *Linear) flatten(state game.Tensor) *mat.VecDense {
	x := mat.NewVecDense(l.features(), nil)
	i := 0
	for _, plane := range state {
		for _, v := range plane {
			x.SetVec(i, float64(v))
			i++
		}
	}
	return x
}

// forward returns the policy distribution and value for one state.
func (l *Linear) forward(x *mat.VecDense) ([]float64, float64) {
	logits := mat.NewVecDense(l.actions(), nil)
	logits.MulVec(l.wp, x)
	logits.AddVec(logits, l.bp)

	probs := softmax(logits.RawVector().Data)
	value := math.Tanh(mat.Dot(l.wv, x) + l.bv)
	return probs, value
}

func softmax(logits []float64) []float64 {
	maxLogit := math.Inf(-1)
	for _, v := range logits {
		maxLogit = math.Max(maxLogit, v)
	}
	out := make([]float64, len(logits))
	sum := 0.0
	for i, v := range logits {
		out[i] = math.Exp(v - maxLogit)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func (l *Linear) PolicyValue(states []game.Tensor) ([][]float32, []float32) {
	probs := make([][]float32, len(states))
	values := make([]float32, len(states))
	for i, state := range states {
		p, v := l.forward(l.flatten(state))
		probs[i] = toFloat32(p)
		values[i] = float32(v)
	}
	return probs, values
}

func (l *Linear) PolicyValueFn(b *game.Board) ([]float32, float32) {
	p, v := l.forward(l.flatten(b.CurrentState()))
	return toFloat32(p), float32(v)
}

// TrainStep runs one SGD step of value MSE plus policy cross-entropy with L2
// weight decay. Loss and entropy are measured on the pre-step parameters.
func (l *Linear) TrainStep(states []game.Tensor, targets [][]float32, outcomes []float32, lr float64) (float64, float64) {
	if len(states) == 0 {
		panic("train step requires a non-empty batch")
	}
	batch := float64(len(states))

	gradWp := mat.NewDense(l.actions(), l.features(), nil)
	gradBp := mat.NewVecDense(l.actions(), nil)
	gradWv := mat.NewVecDense(l.features(), nil)
	gradBv := 0.0
	loss := 0.0
	entropy := 0.0

	for i, state := range states {
		x := l.flatten(state)
		probs, value := l.forward(x)

		// Value head: (v - z)^2, d/dpre = 2(v - z)(1 - v^2).
		diff := value - float64(outcomes[i])
		loss += diff * diff
		dPre := 2 * diff * (1 - value*value)
		gradWv.AddScaledVec(gradWv, dPre, x)
		gradBv += dPre

		// Policy head: cross-entropy, dlogits = p - t.
		for a := 0; a < l.actions(); a++ {
			target := float64(targets[i][a])
			if target > 0 {
				loss -= target * math.Log(probs[a]+probEps)
			}
			entropy -= probs[a] * math.Log(probs[a]+probEps)

			dLogit := probs[a] - target
			gradBp.SetVec(a, gradBp.AtVec(a)+dLogit)
			for f := 0; f < l.features(); f++ {
				if xf := x.AtVec(f); xf != 0 {
					gradWp.Set(a, f, gradWp.At(a, f)+dLogit*xf)
				}
			}
		}
	}

	step := lr / batch
	for a := 0; a < l.actions(); a++ {
		l.bp.SetVec(a, l.bp.AtVec(a)-step*gradBp.AtVec(a))
		for f := 0; f < l.features(); f++ {
			w := l.wp.At(a, f)
			l.wp.Set(a, f, w-step*(gradWp.At(a, f)+batch*weightDecay*w))
		}
	}
	for f := 0; f < l.features(); f++ {
		w := l.wv.AtVec(f)
		l.wv.SetVec(f, w-step*(gradWv.AtVec(f)+batch*weightDecay*w))
	}
	l.bv -= step * gradBv

	return loss / batch, entropy / batch
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}
