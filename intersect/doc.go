// Package intersect is a library of pairwise intersection and containment
// tests between the primitives of package geometry.
//
// Every function is pure: no package state, no allocation of shared data,
// so the tests may run concurrently on disjoint inputs. Degenerate input
// never panics; it yields false, a sentinel (-1 distance) or a best effort
// point as documented per function.
//
// Plane sets are interpreted with their region on the positive side of
// every plane. An empty plane set encloses nothing: every PlaneSet* test
// returns false for it.
package intersect
