// Package rope simulates a chain of knots on an unbounded integer lattice
// dragged around by its head, and tracks where the last knot has been.
package rope

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aoc-go/aoc"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	// ErrMalformed is returned for an input line that isn't a move.
	ErrMalformed = errors.New("malformed move")
	// ErrInvariant is returned when a knot is found too far from its
	// leader for the follow rule to close the gap.
	ErrInvariant = errors.New("chain invariant violated")
)

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var dirByToken = map[string]Direction{
	"U": Up,
	"D": Down,
	"L": Left,
	"R": Right,
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "U"
	case Down:
		return "D"
	case Left:
		return "L"
	case Right:
		return "R"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Step returns the unit vector for d. Up is +y.
func (d Direction) Step() aoc.Pt {
	switch d {
	case Up:
		return aoc.Pt{X: 0, Y: 1}
	case Down:
		return aoc.Pt{X: 0, Y: -1}
	case Left:
		return aoc.Pt{X: -1, Y: 0}
	case Right:
		return aoc.Pt{X: 1, Y: 0}
	}
	panic(fmt.Sprintf("bogus direction %d", int(d)))
}

// Move is one input line: Dist unit steps in Dir.
type Move struct {
	Dir  Direction
	Dist int
}

func (m Move) String() string { return fmt.Sprintf("%v %d", m.Dir, m.Dist) }

// ParseMove parses a line like "R 4": a direction letter, one space and
// a non-negative decimal distance without sign or leading zeros.
func ParseMove(line string) (Move, error) {
	dirTok, distTok, ok := strings.Cut(line, " ")
	if !ok {
		return Move{}, fmt.Errorf("%w: want <dir> <dist>, got %q", ErrMalformed, line)
	}
	dir, ok := dirByToken[dirTok]
	if !ok {
		return Move{}, fmt.Errorf("%w: unknown direction %q in %q", ErrMalformed, dirTok, line)
	}
	if !isDecimal(distTok) {
		return Move{}, fmt.Errorf("%w: bad distance %q in %q", ErrMalformed, distTok, line)
	}
	dist, err := strconv.Atoi(distTok)
	if err != nil {
		return Move{}, fmt.Errorf("%w: bad distance %q in %q", ErrMalformed, distTok, line)
	}
	return Move{Dir: dir, Dist: dist}, nil
}

func isDecimal(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Parser accumulates moves one input line at a time. Blank lines are
// skipped; errors carry the 1-based line number.
type Parser struct {
	n     int
	moves []Move
}

// Line parses the next input line.
func (p *Parser) Line(line string) error {
	p.n++
	if strings.TrimSpace(line) == "" {
		return nil
	}
	m, err := ParseMove(line)
	if err != nil {
		return fmt.Errorf("line %d: %w", p.n, err)
	}
	p.moves = append(p.moves, m)
	return nil
}

// Moves returns the moves parsed so far.
func (p *Parser) Moves() []Move { return p.moves }

// ParseMoves parses every line of r. Nothing is returned unless the
// whole input parses.
func ParseMoves(r io.Reader) ([]Move, error) {
	var p Parser
	if err := aoc.ForLinesIn(r, p.Line); err != nil {
		return nil, err
	}
	return p.Moves(), nil
}

// InvariantError reports a follower that ended up beyond the reach of
// the follow rule.
type InvariantError struct {
	Follower, Leader aoc.Pt
}

func (e *InvariantError) Error() string {
	d := e.Leader.Sub(e.Follower)
	return fmt.Sprintf("%v: follower %v, leader %v (delta %d,%d)", ErrInvariant, e.Follower, e.Leader, d.X, d.Y)
}

func (e *InvariantError) Is(target error) bool { return target == ErrInvariant }

// Follow returns where follower goes once leader has moved. A follower
// still touching its leader (overlapping or in one of the eight
// neighboring cells) stays put; otherwise it steps one cell toward the
// leader on each axis where they differ.
func Follow(follower, leader aoc.Pt) (aoc.Pt, error) {
	switch follower.Chebyshev(leader) {
	case 0, 1:
		return follower, nil
	case 2:
		return follower.Toward(leader), nil
	}
	return follower, &InvariantError{Follower: follower, Leader: leader}
}

// Chain is a head knot followed by one or more followers. knots[0] is
// the head.
type Chain struct {
	knots   []aoc.Pt
	visited map[aoc.Pt]bool // positions of the last knot
}

// NewChain returns a chain with the given number of followers, all knots
// at the origin.
func NewChain(followers int) *Chain {
	if followers < 1 {
		panic(fmt.Sprintf("rope: need at least one follower, got %d", followers))
	}
	c := &Chain{
		knots:   make([]aoc.Pt, followers+1),
		visited: map[aoc.Pt]bool{},
	}
	c.visited[c.Tail()] = true
	return c
}

// Len returns the number of knots, head included.
func (c *Chain) Len() int { return len(c.knots) }

func (c *Chain) Head() aoc.Pt { return c.knots[0] }

func (c *Chain) Tail() aoc.Pt { return c.knots[len(c.knots)-1] }

// Knot returns knot i, where 0 is the head and 1 the first follower.
func (c *Chain) Knot(i int) aoc.Pt { return c.knots[i] }

// Step moves the head one cell in d and drags the followers after it,
// in order, each seeing its leader's new position.
func (c *Chain) Step(d Direction) error {
	c.knots[0] = c.knots[0].Add(d.Step())
	for i := 1; i < len(c.knots); i++ {
		p, err := Follow(c.knots[i], c.knots[i-1])
		if err != nil {
			return fmt.Errorf("knot %d: %w", i, err)
		}
		c.knots[i] = p
	}
	c.visited[c.Tail()] = true
	return nil
}

// Apply steps the head m.Dist times in m.Dir.
func (c *Chain) Apply(m Move) error {
	for i := 0; i < m.Dist; i++ {
		if err := c.Step(m.Dir); err != nil {
			return fmt.Errorf("move %v, step %d: %w", m, i+1, err)
		}
	}
	if aoc.Log.IsLevelEnabled(logrus.DebugLevel) {
		aoc.Log.WithFields(logrus.Fields{
			"move":    m.String(),
			"head":    c.Head(),
			"tail":    c.Tail(),
			"visited": len(c.visited),
		}).Debug("applied move")
	}
	return nil
}

func (c *Chain) ApplyAll(moves []Move) error {
	for _, m := range moves {
		if err := c.Apply(m); err != nil {
			return err
		}
	}
	return nil
}

// Visited returns the number of distinct positions the last knot has
// occupied, including the origin it started on.
func (c *Chain) Visited() int { return len(c.visited) }

// Positions returns the positions the last knot has occupied, ordered by
// y then x.
func (c *Chain) Positions() []aoc.Pt {
	ps := maps.Keys(c.visited)
	slices.SortFunc(ps, func(a, b aoc.Pt) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return ps
}

// Trail returns the last knot's visited positions as a grid for drawing:
// '#' for visited cells and 's' for the origin. Grid rows run top to
// bottom, so y is flipped to keep Up pointing up.
func (c *Chain) Trail() aoc.Grid {
	g := aoc.Grid{}
	for p := range c.visited {
		g[aoc.Pt{X: p.X, Y: -p.Y}] = '#'
	}
	g[aoc.Pt{}] = 's'
	return g
}

// Simulate runs moves through a fresh chain with the given number of
// followers and returns how many positions its last knot visited.
func Simulate(moves []Move, followers int) (int, error) {
	c := NewChain(followers)
	if err := c.ApplyAll(moves); err != nil {
		return 0, err
	}
	if aoc.Log.IsLevelEnabled(logrus.DebugLevel) {
		aoc.Log.WithFields(logrus.Fields{
			"followers": followers,
			"visited":   c.Visited(),
		}).Debug("tail trail:\n" + c.Trail().String())
	}
	return c.Visited(), nil
}
