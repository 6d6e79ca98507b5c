// Package aoc are quick & dirty utilities for solving
// Advent of Code problems.
package aoc

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"reflect"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"
)

// Log is the logger shared by the harness and the puzzles.
var Log = logrus.New()

var (
	flagDay     *string
	flagInput   *string
	flagVerbose *bool
)

type puzzleFunc = func() (any, error)

var (
	puzzles      []string
	puzzleByName = map[string]puzzleFunc{} // func name -> func
	sampleInput  = map[string]string{}
	sampleWant   = map[string]string{}
)

var (
	curDay    int
	inputPath string
	altInput  []byte // non-nil to run a sample
)

var dayRx = regexp.MustCompile(`\d+`)

// Answer is a puzzle result with the label it's printed under.
type Answer struct {
	Label string
	Value any
}

func (a Answer) String() string {
	if a.Label == "" {
		return fmt.Sprint(a.Value)
	}
	return fmt.Sprintf("%s: %v", a.Label, a.Value)
}

// answerValue strips the label from v, if any, for comparing
// against a sample's want= line.
func answerValue(v any) any {
	if a, ok := v.(Answer); ok {
		return a.Value
	}
	return v
}

func Main() {
	flagDay = flag.String("day", "", "day or func name to run; empty string means latest registered. If it starts with a digit, then \"day\" prefix is assumed.")
	flagInput = flag.String("input", "", "path of the puzzle input; default is <day>.input")
	flagVerbose = flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *flagVerbose {
		Log.SetLevel(logrus.DebugLevel)
	}
	if len(puzzles) == 0 {
		Log.Fatal("no puzzles registered")
	}

	name := *flagDay
	if name == "" {
		name = "day" + dayRx.FindString(puzzles[len(puzzles)-1])
	}
	if unicode.IsDigit(rune(name[0])) {
		name = "day" + name
	}
	m := dayRx.FindString(name)
	if m == "" {
		Log.Fatalf("no digits in %q from which to extract day number", name)
	}
	curDay = Int(m)
	inputPath = *flagInput

	parts := partsFor(name, curDay)
	if len(parts) == 0 {
		Log.Fatalf("puzzle func %v not registered", name)
	}
	for _, part := range parts {
		if err := runPart(part); err != nil {
			Log.WithField("part", part).Fatal(err)
		}
	}
}

// partsFor returns the registered funcs to run for name: the exact func
// if one is registered under that name, else every part of day.
func partsFor(name string, day int) []string {
	if _, ok := puzzleByName[name]; ok {
		return []string{name}
	}
	var parts []string
	for _, p := range puzzles {
		if dayRx.FindString(p) == strconv.Itoa(day) {
			parts = append(parts, p)
		}
	}
	return parts
}

func runPart(name string) error {
	if err := checkSample(name); err != nil {
		return err
	}
	v, err := puzzleByName[name]()
	if err != nil {
		return err
	}
	fmt.Println(v)
	return nil
}

// checkSample runs the named part against its sample input, if it has
// one, and compares the result with the sample's want= line.
func checkSample(name string) error {
	want, ok := sampleWant[name]
	if !ok {
		Log.WithField("part", name).Warn("⚠️ no sample")
		return nil
	}
	v, err := Sample(name)
	if err != nil {
		return fmt.Errorf("sample: %w", err)
	}
	if got := fmt.Sprint(answerValue(v)); got != want {
		return fmt.Errorf("❌ for %v sample, got=%v; want %v", name, got, want)
	}
	Log.WithField("part", name).Debug("OK sample result.")
	return nil
}

// Sample runs the named part on its sample input and returns its
// result, label included.
func Sample(name string) (any, error) {
	f, ok := puzzleByName[name]
	if !ok {
		return nil, fmt.Errorf("puzzle func %v not registered", name)
	}
	in, ok := sampleInput[name]
	if !ok {
		return nil, fmt.Errorf("no sample for %v", name)
	}
	altInput = []byte(in)
	defer func() { altInput = nil }()
	return f()
}

// CheckSamples checks every registered part that has a sample.
func CheckSamples() error {
	for _, name := range puzzles {
		if err := checkSample(name); err != nil {
			return err
		}
	}
	return nil
}

var wantRx = regexp.MustCompile(`(?sm)^\s*want=([^\n]*)(?:\s+(.+\n))?\s*`)

func ExtractSamples(src []byte) {
	fs := token.NewFileSet()
	f, err := parser.ParseFile(fs, "aoc.go", src, parser.ParseComments)
	if err != nil {
		Log.Fatalf("parsing source to extract samples: %v", err)
	}
	var lastInput string
	for _, d := range f.Decls {
		fd, ok := d.(*ast.FuncDecl)
		if !ok || fd.Doc == nil {
			continue
		}
		funcName := fd.Name.Name
		for _, c := range fd.Doc.List {
			text := strings.TrimPrefix(c.Text, "//")
			if v, ok := strings.CutPrefix(text, "/*"); ok {
				text = strings.TrimSuffix(v, "*/")
			}
			if m := wantRx.FindStringSubmatch(text); m != nil {
				sampleWant[funcName] = strings.TrimSpace(m[1])
				in := Or(m[2], lastInput)
				sampleInput[funcName] = in
				lastInput = in
			}
		}
	}
}

func funcName(f puzzleFunc) string {
	rv := reflect.ValueOf(f)
	rf := runtime.FuncForPC(rv.Pointer())
	if rf == nil {
		panic("no func found")
	}
	name := rf.Name()
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func Add(puzFuncs ...puzzleFunc) {
	for _, f := range puzFuncs {
		name := funcName(f)
		puzzles = append(puzzles, name)
		puzzleByName[name] = f
	}
}

type Pt2[T constraints.Signed] struct {
	X, Y T
}

type Pt = Pt2[int]

func AbsInt[T constraints.Signed](x, y T) T {
	v := x - y
	if v < 0 {
		v = -v
	}
	return v
}

func (a Pt2[T]) Add(b Pt2[T]) Pt2[T] { return Pt2[T]{a.X + b.X, a.Y + b.Y} }
func (a Pt2[T]) Sub(b Pt2[T]) Pt2[T] { return Pt2[T]{a.X - b.X, a.Y - b.Y} }

// Chebyshev returns the chessboard distance between a and b: the number
// of king moves between them.
func (a Pt2[T]) Chebyshev(b Pt2[T]) T {
	return max(AbsInt[T](a.X, b.X), AbsInt[T](a.Y, b.Y))
}

// Toward returns a point moving from p to b in max 1 step in the X
// and/or Y direction.
func (p Pt2[T]) Toward(b Pt2[T]) Pt2[T] {
	p1 := p
	if b.X < p.X {
		p1.X--
	} else if b.X > p.X {
		p1.X++
	}
	if b.Y < p.Y {
		p1.Y--
	} else if b.Y > p.Y {
		p1.Y++
	}
	return p1
}

// Input returns the current input: the sample while one is being
// checked, else the -input file or <day>.input.
func Input() ([]byte, error) {
	if altInput != nil {
		return altInput, nil
	}
	filename := Or(inputPath, fmt.Sprintf("%d.input", curDay))
	f, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return f, nil
}

// Reader returns the current input as an io.Reader.
func Reader() (io.Reader, error) {
	in, err := Input()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(in), nil
}

// ForLines calls onLine for each line of input, stopping at the
// first error onLine returns.
func ForLines(onLine func(line string) error) error {
	r, err := Reader()
	if err != nil {
		return err
	}
	return ForLinesIn(r, onLine)
}

// ForLinesIn is like ForLines but reads lines from r.
func ForLinesIn(r io.Reader, onLine func(line string) error) error {
	s := bufio.NewScanner(r)
	for s.Scan() {
		if err := onLine(s.Text()); err != nil {
			return err
		}
	}
	return s.Err()
}

func Int(s string) int {
	return MustGet(strconv.Atoi(s))
}

// MustGet returns v as is. It panics if err is non-nil.
func MustGet[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Or returns the first non-zero element of list, or else returns the zero T.
//
// This is the proposal from
// https://github.com/golang/go/issues/60204#issuecomment-1581245334.
func Or[T comparable](list ...T) T {
	var zero T
	for _, v := range list {
		if v != zero {
			return v
		}
	}
	return zero
}

type Grid map[Pt]rune

func (g Grid) Bounds() (minX, minY, maxX, maxY int) {
	n := 0
	for p := range g {
		if n == 0 {
			minX = p.X
			maxX = p.X
			minY = p.Y
			maxY = p.Y
		}
		n++
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	return
}

// Draw writes g to w, one row per line, with '.' for empty cells.
func (g Grid) Draw(w io.Writer) {
	minX, minY, maxX, maxY := g.Bounds()
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			r := g[Pt{x, y}]
			if r == 0 {
				r = '.'
			}
			fmt.Fprintf(w, "%c", r)
		}
		fmt.Fprintln(w)
	}
}

func (g Grid) String() string {
	var b strings.Builder
	g.Draw(&b)
	return b.String()
}
