// Command day9 drags a rope of knots around the plane and counts the
// cells its tail visits.
package main

import (
	_ "embed"

	"github.com/aoc-go/aoc"
	"github.com/aoc-go/aoc/rope"
)

//go:embed main.go
var src []byte

func main() {
	aoc.ExtractSamples(src)
	aoc.Add(day9a, day9b)
	aoc.Main()
}

func tailVisits(followers int) (int, error) {
	var p rope.Parser
	if err := aoc.ForLines(p.Line); err != nil {
		return 0, err
	}
	return rope.Simulate(p.Moves(), followers)
}

/*
want=13

R 4
U 4
L 3
D 1
R 4
D 1
L 5
R 2
*/
func day9a() (any, error) {
	n, err := tailVisits(1)
	if err != nil {
		return nil, err
	}
	return aoc.Answer{Label: "Number of positions visited at least once by the tail", Value: n}, nil
}

/*
want=36

R 5
U 8
L 8
D 3
R 17
D 10
L 25
U 20
*/
func day9b() (any, error) {
	n, err := tailVisits(9)
	if err != nil {
		return nil, err
	}
	return aoc.Answer{Label: "Number of positions visited by tail", Value: n}, nil
}
