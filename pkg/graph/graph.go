package graph

import (
	"context"
	"fmt"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/tracing"
)

// Start and End are the sentinel node names every wired graph begins and
// terminates on.
const (
	Start = "__start__"
	End   = "__end__"
)

// NodeFunc maps a full state to a partial update. It must never mutate the
// State it receives.
type NodeFunc func(ctx context.Context, logger *tracing.Logger, s *State) (Delta, error)

// Selector picks the next node name given the current (already-merged)
// state. It returns one of the branch names registered for its edge.
type Selector func(s *State) string

// conditionalEdge associates a selector with a from-node and a set of
// possible destinations keyed by the branch name the selector returns.
type conditionalEdge struct {
	selector Selector
	branches map[string]string
}

// Engine is a named-node directed graph with static and conditional edges.
// One State flows through it per Run call; the engine guarantees a node's
// partial update is merged before any edge selector runs.
type Engine struct {
	nodes       map[string]NodeFunc
	staticEdges map[string]string
	condEdges   map[string]conditionalEdge
	entry       string
}

// NewEngine creates an empty engine. Call AddNode/AddEdge/AddConditionalEdge
// to wire it, then SetEntry before Run.
func NewEngine() *Engine {
	return &Engine{
		nodes:       make(map[string]NodeFunc),
		staticEdges: make(map[string]string),
		condEdges:   make(map[string]conditionalEdge),
	}
}

// AddNode registers a named node implementation.
func (e *Engine) AddNode(name string, fn NodeFunc) {
	e.nodes[name] = fn
}

// SetEntry designates which node START transitions to.
func (e *Engine) SetEntry(name string) {
	e.entry = name
}

// AddEdge wires an unconditional from→to transition.
func (e *Engine) AddEdge(from, to string) {
	e.staticEdges[from] = to
}

// AddConditionalEdge wires a from-node to a selector plus a set of named
// branch destinations (selector's return value → destination node, which
// may be End).
func (e *Engine) AddConditionalEdge(from string, selector Selector, branches map[string]string) {
	e.condEdges[from] = conditionalEdge{selector: selector, branches: branches}
}

// Run drives s through the graph starting at the configured entry node
// until End is reached, mutating s in place via merged deltas. If a node
// returns an error, Run aborts immediately and that node's partial update
// is discarded.
func (e *Engine) Run(ctx context.Context, logger *tracing.Logger, s *State) error {
	current := e.entry
	for current != End {
		fn, ok := e.nodes[current]
		if !ok {
			return fmt.Errorf("graph: no node registered for %q", current)
		}

		logger.NodeEnter(current)
		delta, err := fn(ctx, logger, s)
		if err != nil {
			logger.Error(current, err)
			return fmt.Errorf("node %q: %w", current, err)
		}
		s.Merge(delta)
		logger.NodeExit(current, fmt.Sprintf("domain=%s audit=%s revisions=%d", s.Domain, s.AuditResult, s.RevisionCount))

		next, err := e.next(current, s)
		if err != nil {
			return err
		}
		logger.RoutingDecision(current, next, "edge selector")
		current = next
	}
	return nil
}

func (e *Engine) next(current string, s *State) (string, error) {
	if to, ok := e.staticEdges[current]; ok {
		return to, nil
	}
	if cond, ok := e.condEdges[current]; ok {
		branch := cond.selector(s)
		to, ok := cond.branches[branch]
		if !ok {
			return "", fmt.Errorf("graph: selector at %q returned unknown branch %q", current, branch)
		}
		return to, nil
	}
	return "", fmt.Errorf("graph: node %q has no outgoing edge", current)
}
