package searcher

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Hyperparameters for MCTS

const DefaultExploration = 1.3 // Exploration coefficient c

const maxVariance = 0.25 // Upper bound on the variance term of the exploration bonus

// Sample values recorded from the point of view of the player who moved
// into a node
const (
	WIN  = 1.0
	LOSS = -WIN
	DRAW = 0.0
)

// policy weighs the children of a node with parentVisits visits:
//
//	avg + c*sqrt(ln(N/n) * min(1/4, std + 2*ln(N/n)))
type policy struct {
	c            float64
	parentVisits float64
}

func newPolicy(c float64, parentVisits int) policy {
	if parentVisits == 0 {
		panic("parent visits cannot be 0")
	}
	return policy{c: c, parentVisits: float64(parentVisits)}
}

func (p policy) evaluate(samples []float64, visits int) float64 {
	if visits == 0 {
		panic("visits cannot be 0")
	}
	avg, std := statistics(samples)
	ucb := math.Log(p.parentVisits / float64(visits))
	return avg + p.c*math.Sqrt(ucb*math.Min(maxVariance, std+2*ucb))
}

// statistics returns the mean and sample standard deviation of the samples.
// The deviation is 0 for fewer than two samples.
func statistics(samples []float64) (mean, std float64) {
	switch len(samples) {
	case 0:
		return 0, 0
	case 1:
		return samples[0], 0
	}
	return stat.MeanStdDev(samples, nil)
}
