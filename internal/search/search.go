package search

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lk16/gamesuite/internal/game"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// DefaultDepth is the search depth used when no depth option is given.
const DefaultDepth = 3

// MaxDepth is the deepest search a Searcher runs. Deeper Othello searches
// from the middle game take longer than an AI request may.
const MaxDepth = 6

// ctxCheckInterval is the number of nodes expanded between context checks.
const ctxCheckInterval = 256

// TieBreak decides which move to pick among moves with equal value.
type TieBreak int

const (
	// Uniform draws uniformly among all moves with the best value.
	Uniform TieBreak = iota

	// FirstWins picks the first move with the best value in move order.
	FirstWins
)

type settings struct {
	depth    int
	tieBreak TieBreak
	parallel bool
	seed     uint64
}

type Option func(s *settings)

// WithDepth sets the search depth. Depths above MaxDepth are lowered to MaxDepth.
func WithDepth(depth int) Option {
	return func(s *settings) {
		if depth > 0 {
			s.depth = min(depth, MaxDepth)
		}
	}
}

func WithTieBreak(tieBreak TieBreak) Option {
	return func(s *settings) {
		s.tieBreak = tieBreak
	}
}

func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = seed
	}
}

// WithParallel evaluates the subtrees below the root concurrently.
func WithParallel(parallel bool) Option {
	return func(s *settings) {
		s.parallel = parallel
	}
}

// Node is a node in the search tree. Leaves have no children and Best is -1.
// Analyze keeps the root and its children. Deeper nodes are only kept along
// the principal variation: they have at most one child and no State.
type Node[M game.Move, S game.State[M, S]] struct {
	Move     M
	State    S
	Value    int
	Best     int
	Children []*Node[M, S]
}

// PrincipalVariation returns the moves along the best children starting below this node.
func (n *Node[M, S]) PrincipalVariation() []M {
	var moves []M
	for node := n; node.Best >= 0; {
		node = node.Children[node.Best]
		moves = append(moves, node.Move)
	}
	return moves
}

// Searcher picks moves for one side using depth limited minimax.
type Searcher[M game.Move, S game.State[M, S]] struct {
	side     game.Side
	settings settings

	// mu guards rng
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSearcher[M game.Move, S game.State[M, S]](side game.Side, options ...Option) *Searcher[M, S] {
	s := settings{ // Default values
		depth:    DefaultDepth,
		tieBreak: Uniform,
		seed:     uint64(time.Now().UnixNano()),
	}
	for _, option := range options {
		option(&s)
	}

	return &Searcher[M, S]{
		side:     side,
		settings: s,
		rng:      rand.New(rand.NewSource(s.seed)),
	}
}

// Side returns the side the searcher plays for.
func (s *Searcher[M, S]) Side() game.Side {
	return s.side
}

// Depth returns the search depth.
func (s *Searcher[M, S]) Depth() int {
	return s.settings.depth
}

// RandomMove returns a uniformly drawn legal move. It is used for the opening move.
func (s *Searcher[M, S]) RandomMove(state S) M {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		panic(game.ErrEmptySearch)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return moves[s.rng.Intn(len(moves))]
}

// ChooseMove returns the best move for the side to move according to minimax.
// If ctx is cancelled before all subtrees are evaluated, no move is returned.
func (s *Searcher[M, S]) ChooseMove(ctx context.Context, state S) (M, error) {
	root, err := s.Analyze(ctx, state)
	if err != nil {
		var zero M
		return zero, err
	}

	return root.Children[root.Best].Move, nil
}

// Analyze computes the value of every move of state and the principal
// variation below each of them. The context is checked while searching, so a
// cancelled or expired search returns promptly with the context's error.
// It panics if state has no legal moves.
func (s *Searcher[M, S]) Analyze(ctx context.Context, state S) (*Node[M, S], error) {
	moves, next := game.Expand[M, S](state)
	if len(moves) == 0 {
		panic(game.ErrEmptySearch)
	}

	start := time.Now()

	// Each subtree gets its own generator so results don't depend on scheduling.
	seeds := make([]uint64, len(moves))
	s.mu.Lock()
	for i := range seeds {
		seeds[i] = s.rng.Uint64()
	}
	s.mu.Unlock()

	root := &Node[M, S]{State: state, Best: -1, Children: make([]*Node[M, S], len(moves))}

	var nodes atomic.Int64
	evaluate := func(ctx context.Context, i int) error {
		child := &Node[M, S]{Move: moves[i], State: next[i], Best: -1}

		run := &subtree{ctx: ctx, rng: rand.New(rand.NewSource(seeds[i]))}
		defer func() { nodes.Add(run.nodes) }()

		if err := s.expand(run, child, 1); err != nil {
			return err
		}

		root.Children[i] = child
		return nil
	}

	if s.settings.parallel {
		g, groupCtx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.GOMAXPROCS(0))

		for i := range moves {
			g.Go(func() error {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				return evaluate(groupCtx, i)
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range moves {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := evaluate(ctx, i); err != nil {
				return nil, err
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	values := make([]int, len(root.Children))
	for i, child := range root.Children {
		values[i] = child.Value
	}

	s.mu.Lock()
	root.Best = s.pick(state, values, s.rng)
	s.mu.Unlock()
	root.Value = values[root.Best]

	elapsed := time.Since(start)
	slog.Debug("Search finished",
		"side", s.side,
		"depth", s.settings.depth,
		"nodes", nodes.Load(),
		"value", root.Value,
		"move", root.Children[root.Best].Move.Key(),
		"elapsed", elapsed,
	)

	return root, nil
}

// subtree holds the per-goroutine state of a search below one root child.
type subtree struct {
	ctx   context.Context
	rng   *rand.Rand
	nodes int64
}

// expand computes the value of node. Only the best child is kept, without
// its state, so memory grows with the depth and not with the tree size.
func (s *Searcher[M, S]) expand(run *subtree, node *Node[M, S], depth int) error {
	run.nodes++
	if run.nodes%ctxCheckInterval == 0 {
		if err := run.ctx.Err(); err != nil {
			return err
		}
	}

	if depth >= s.settings.depth {
		node.Value = node.State.Evaluate(s.side)
		return nil
	}

	// A state without moves is terminal.
	moves, next := game.Expand[M, S](node.State)
	if len(moves) == 0 {
		node.Value = node.State.Evaluate(s.side)
		return nil
	}

	values := make([]int, len(moves))
	lines := make([]*Node[M, S], len(moves))
	for i, move := range moves {
		child := &Node[M, S]{Move: move, State: next[i], Best: -1}
		if err := s.expand(run, child, depth+1); err != nil {
			return err
		}

		var zero S
		child.State = zero
		values[i] = child.Value
		lines[i] = child
	}

	best := s.pick(node.State, values, run.rng)
	node.Value = values[best]
	node.Children = []*Node[M, S]{lines[best]}
	node.Best = 0
	return nil
}

// pick returns the index of the best child. The searching side maximizes,
// its opponent minimizes. Ties are resolved after all children are scanned.
func (s *Searcher[M, S]) pick(state S, values []int, rng *rand.Rand) int {
	maximize := state.Turn() == s.side

	best := values[0]
	for _, value := range values[1:] {
		if (maximize && value > best) || (!maximize && value < best) {
			best = value
		}
	}

	tied := make([]int, 0, len(values))
	for i, value := range values {
		if value == best {
			tied = append(tied, i)
		}
	}

	if s.settings.tieBreak == FirstWins || len(tied) == 1 {
		return tied[0]
	}

	return tied[rng.Intn(len(tied))]
}
