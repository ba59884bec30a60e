// Package collatz generates hailstone trajectories and their turn encoding.
//
// Every step of the hailstone map is recorded as a [Turn]:
//
//   - [Even]: the value was halved
//   - [Odd]: the value was tripled and incremented
//
// A [Sequence] lists the turns from a seed down to 1, excluding the final 1.
//
// # Example
//
//	seq, err := collatz.Generate(7)
//	// seq.String() == "OEOEOEEOEEEOEEEE"
//	walk := seq.Reverse() // from unity back out to the seed
package collatz
