// SPDX-License-Identifier: MIT

// Package maze generates wall layouts for a gridgraph.Grid.
//
// What:
//
//   - None:              clears every wall.
//   - BinaryTree:        perfect maze; rooms on odd coordinates, each linked
//     south or east.
//   - RecursiveDivision: closed border, then recursive bisection with one
//     gap per wall.
//   - Buildings:         random walls added on top of the existing ones.
//
// Every generator works on a copy of the input and returns the wall writes
// in the order they were made, so a player can animate them one by one
// (see playback.FromMaze). Start and end are never walled, and for both
// mazes they stay connected.
//
// Determinism:
//
//	Randomness comes only from Options. The default source is seeded with a
//	fixed value, so Generate(g, k) with no options is reproducible. Pass
//	WithSeed or WithRand for other layouts.
//
// Complexity:
//
//   - Time:   O(R×C) for every kind.
//   - Memory: O(R×C) for the copy and the placement list.
//
// Errors:
//
//   - ErrNilGrid, ErrUnknownKind, ErrGridTooSmall, ErrBadDensity.
package maze
