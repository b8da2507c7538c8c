// Package chain contains the anchor chaining core: the pairwise scorer, the
// per-lane windowed engine, and an unbatched driver. It never imports the
// scheduler, I/O, or anything under internal/; keep it domain-only.
package chain
