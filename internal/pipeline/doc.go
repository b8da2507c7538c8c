// Package pipeline moves queries from a sched.Source through a chaining
// backend and hands finished results, in input order, to a visit callback.
//
// Two backends share one contract (ForEachResult):
//   - lanes: the interleaved scheduler feeds fixed-width rounds to one
//     chain.Lane per lane; a deinterleaver restores per-query results.
//   - direct: each query is chained on its own by a worker pool.
//
// Both are deterministic and produce identical results for inputs whose
// queries share distance limits.
package pipeline
