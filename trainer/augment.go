package trainer

import "gomokuzero/game"

// Augmenter expands each trajectory step into its 8 dihedral variants
// (4 rotations x optional horizontal flip). The probability vector goes
// through reshape -> flipud -> rot90 -> flipud -> flatten; the double flip
// matches the vertically flipped orientation of the board encoding, so the
// transformed probabilities stay aligned with the transformed state planes.
type Augmenter struct {
	h int
	w int
}

func NewAugmenter(h, w int) Augmenter {
	return Augmenter{h: h, w: w}
}

// Expand is pure: 8 output samples per input step, outcome copied unchanged.
func (a Augmenter) Expand(rec game.Record) []game.Step {
	out := make([]game.Step, 0, 8*len(rec))
	for _, step := range rec {
		state := step.State
		prob := flipud(step.Probs, a.h, a.w)
		sh, sw := a.h, a.w

		for k := 1; k <= 4; k++ {
			rotated := make(game.Tensor, len(state))
			for c, plane := range state {
				rotated[c], _, _ = rot90(plane, sh, sw)
			}
			prob, _, _ = rot90(prob, sh, sw)
			state, sh, sw = rotated, sw, sh

			out = append(out, game.Step{
				State:   cloneTensor(state),
				Probs:   flipud(prob, sh, sw),
				Outcome: step.Outcome,
			})

			mirrored := make(game.Tensor, len(state))
			for c, plane := range state {
				mirrored[c] = fliplr(plane, sh, sw)
			}
			out = append(out, game.Step{
				State:   mirrored,
				Probs:   flipud(fliplr(prob, sh, sw), sh, sw),
				Outcome: step.Outcome,
			})
		}
	}
	return out
}

// rot90 rotates an h x w plane 90 degrees counterclockwise, returning the
// rotated plane and its w x h dimensions.
func rot90(p []float32, h, w int) ([]float32, int, int) {
	out := make([]float32, len(p))
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			out[i*h+j] = p[j*w+(w-1-i)]
		}
	}
	return out, w, h
}

// flipud reverses the row order of an h x w plane.
func flipud(p []float32, h, w int) []float32 {
	out := make([]float32, len(p))
	for r := 0; r < h; r++ {
		copy(out[r*w:(r+1)*w], p[(h-1-r)*w:(h-r)*w])
	}
	return out
}

// fliplr mirrors an h x w plane horizontally.
func fliplr(p []float32, h, w int) []float32 {
	out := make([]float32, len(p))
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			out[r*w+c] = p[r*w+(w-1-c)]
		}
	}
	return out
}

func cloneTensor(t game.Tensor) game.Tensor {
	out := make(game.Tensor, len(t))
	for i, plane := range t {
		out[i] = append([]float32(nil), plane...)
	}
	return out
}
