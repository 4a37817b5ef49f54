package searcher

import (
	"math"

	"gomokuzero/game"
)

// node is one position in the search tree, reached by the move keyed in its
// parent's children map.
type node struct {
	parent   *node
	children map[int]*node
	visits   int
	q        float64
	prior    float64
}

func newNode(parent *node, prior float64) *node {
	return &node{
		parent:   parent,
		children: make(map[int]*node),
		prior:    prior,
	}
}

func (n *node) isLeaf() bool { return len(n.children) == 0 }
func (n *node) isRoot() bool { return n.parent == nil }

// expand adds a child per available move using the evaluator's priors.
func (n *node) expand(b *game.Board, priors []float32) {
	for _, move := range b.Availables() {
		if _, ok := n.children[move]; !ok {
			n.children[move] = newNode(n, float64(priors[move]))
		}
	}
}

// selectChild picks the move maximising Q + U.
func (n *node) selectChild(cPuct float64) (int, *node) {
	if len(n.children) == 0 {
		panic("cannot select from a leaf node")
	}
	bestMove := -1
	bestScore := math.Inf(-1)
	var best *node
	for move, child := range n.children {
		score := child.score(cPuct)
		if score > bestScore {
			bestScore = score
			bestMove = move
			best = child
		}
	}
	return bestMove, best
}

// score is the PUCT value Q + cPuct * P * sqrt(N_parent) / (1 + n).
func (n *node) score(cPuct float64) float64 {
	u := cPuct * n.prior * math.Sqrt(float64(n.parent.visits)) / float64(1+n.visits)
	return n.q + u
}

// update folds one leaf evaluation into the running mean.
func (n *node) update(leafValue float64) {
	n.visits++
	n.q += (leafValue - n.q) / float64(n.visits)
}

// updateRecursive backs the value up to the root, flipping sign each ply.
func (n *node) updateRecursive(leafValue float64) {
	if n.parent != nil {
		n.parent.updateRecursive(-leafValue)
	}
	n.update(leafValue)
}
