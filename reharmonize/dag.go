// Package reharmonize builds a chord progression under a melody by
// scoring candidate roman-numeral chords against sliding windows of
// the melody and finding the highest-value path through the
// resulting directed acyclic graph of (chord, window) nodes.
package reharmonize

import (
	"math"
	"sort"

	"reharmonia/theory"
)

const lengthAdvantage = 1.1

// Node is one (chord number, time window) candidate in the DAG.
type Node struct {
	Number     string
	Value      float64
	Start      float64
	Length     float64
	totalValue float64
	prevs      []*Node
	best       *Node
}

// ActualValue weights a node's raw fit score by its window length
// raised to lengthAdvantage, so longer windows contribute more to the
// path total than their score alone would suggest.
func (n *Node) ActualValue() float64 {
	return math.Pow(n.Length, lengthAdvantage) * n.Value
}

// Dag holds every candidate node across every granularity before the
// edges and the longest path are computed.
type Dag struct {
	Nodes []*Node
}

// AddNode appends a new candidate node.
func (d *Dag) AddNode(number string, value, start, length float64) *Node {
	n := &Node{Number: number, Value: value, Start: start, Length: length}
	d.Nodes = append(d.Nodes, n)
	return n
}

func (d *Dag) buildEdges(scale *theory.Scale) {
	endingAt := map[float64][]*Node{}
	for _, n := range d.Nodes {
		endingAt[n.Start+n.Length] = append(endingAt[n.Start+n.Length], n)
	}
	for _, n := range d.Nodes {
		for _, m := range endingAt[n.Start] {
			if scale.IsTransitable(m.Number, n.Number) {
				n.prevs = append(n.prevs, m)
			}
		}
	}
}

// Solve computes the highest-value path from a start node through to
// whichever node(s) reach the DAG's furthest time extent, via
// topological (start-time-ordered) dynamic programming, then
// backtraces it into an ordered slice of nodes.
func (d *Dag) Solve(scale *theory.Scale) []*Node {
	d.buildEdges(scale)

	nodes := make([]*Node, len(d.Nodes))
	copy(nodes, d.Nodes)
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Start < nodes[j].Start })

	for _, n := range nodes {
		if len(n.prevs) > 0 {
			best := n.prevs[0]
			for _, p := range n.prevs[1:] {
				if p.totalValue > best.totalValue {
					best = p
				}
			}
			n.totalValue = best.totalValue + n.ActualValue()
			n.best = best
		} else {
			n.totalValue = n.ActualValue()
		}
	}

	timingMax := 0.0
	for _, n := range nodes {
		if end := n.Start + n.Length; end > timingMax {
			timingMax = end
		}
	}
	var endCandidates []*Node
	for _, n := range nodes {
		if n.Start+n.Length == timingMax {
			endCandidates = append(endCandidates, n)
		}
	}
	end := endCandidates[0]
	for _, n := range endCandidates[1:] {
		if n.totalValue > end.totalValue {
			end = n
		}
	}

	var path []*Node
	for n := end; n != nil; n = n.best {
		path = append([]*Node{n}, path...)
	}
	return path
}
