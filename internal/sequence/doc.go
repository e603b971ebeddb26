// Package sequence finds the numbered siblings of a VTK file so a viewer
// can step through simulation time-steps.
//
// A file belongs to a sequence when its name is <prefix><digits>.vtk (the
// extension is matched case-insensitively). Siblings share the prefix and
// are ordered by the numeric value of their digits, so data_2.vtk comes
// before data_10.vtk and leading zeros do not matter for ordering.
//
// Nothing is cached: every query lists the directory again, so files added
// or removed between two navigations are always seen.
package sequence
