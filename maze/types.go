// SPDX-License-Identifier: MIT

// Package maze - selectors, results and sentinel errors for wall generators.
//
// Error policy:
//   - Generators return sentinel errors wrapped with context via %w.
//   - Option constructors panic on programmer errors (WithRand(nil),
//     WithDensity out of range); generators never panic.
package maze

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/pathviz/gridgraph"
)

// Sentinel errors.
var (
	// ErrNilGrid indicates that a nil *gridgraph.Grid was passed.
	ErrNilGrid = errors.New("maze: grid is nil")

	// ErrUnknownKind indicates an unrecognised maze selector.
	ErrUnknownKind = errors.New("maze: unknown kind")

	// ErrGridTooSmall indicates fewer than MinChamber rows or columns.
	ErrGridTooSmall = errors.New("maze: grid too small")

	// ErrBadDensity indicates a wall density outside [0, 1].
	ErrBadDensity = errors.New("maze: density must be in [0, 1]")
)

const (
	// MinChamber is the smallest chamber side recursive division still
	// splits, and the minimum grid side every generator accepts.
	MinChamber = 3

	// DefaultDensity is the wall probability used by Buildings.
	DefaultDensity = 0.25
)

// Kind selects a generator.
type Kind int

const (
	// None produces no walls; the grid is simply cleared.
	None Kind = iota
	// BinaryTree carves a perfect maze from rooms at odd coordinates.
	BinaryTree
	// RecursiveDivision encloses the grid and bisects it recursively.
	RecursiveDivision
	// Buildings scatters random walls on top of the existing ones.
	Buildings
)

// Kinds lists the maze selectors in display order. Buildings is an
// editing action rather than a maze and is left out.
var Kinds = []Kind{None, BinaryTree, RecursiveDivision}

// String returns the wire name.
func (k Kind) String() string {
	switch k {
	case None:
		return "NONE"
	case BinaryTree:
		return "BINARY_TREE"
	case RecursiveDivision:
		return "RECURSIVE_DIVISION"
	case Buildings:
		return "BUILDINGS"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Label returns the human-readable name.
func (k Kind) Label() string {
	switch k {
	case None:
		return "No Maze"
	case BinaryTree:
		return "Binary Tree"
	case RecursiveDivision:
		return "Recursive Division"
	case Buildings:
		return "Add Buildings"
	default:
		return k.String()
	}
}

// Valid reports whether k is a known selector.
func (k Kind) Valid() bool { return k >= None && k <= Buildings }

// ParseKind maps a wire name (case-insensitive) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NONE", "":
		return None, nil
	case "BINARY_TREE":
		return BinaryTree, nil
	case "RECURSIVE_DIVISION":
		return RecursiveDivision, nil
	case "BUILDINGS":
		return Buildings, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Placement is one wall write in generation order.
type Placement struct {
	Pos  gridgraph.Pos `json:"pos"`
	Wall bool          `json:"wall"`
}

// Result is a finished generation. Placements replayed in order onto the
// starting grid (cleared for mazes, untouched for Buildings) reproduce Grid.
type Result struct {
	Kind       Kind
	Placements []Placement
	Grid       *gridgraph.Grid
}

// Walls returns the placed positions in order.
func (r *Result) Walls() []gridgraph.Pos {
	out := make([]gridgraph.Pos, len(r.Placements))
	for i, p := range r.Placements {
		out[i] = p.Pos
	}
	return out
}
