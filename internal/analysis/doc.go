// Package analysis computes summary numbers for scalar fields.
//
// The package includes:
//
//   - [Summarize]: count, finite count, min, max, mean, standard deviation
//     and median of a field
//   - [NewHistogram]: value distribution over a range
//   - [RowProfile] and [ColumnProfile]: 1D cuts through a 2D field
//
// Non-finite values are counted but never enter the statistics:
//
//	st := analysis.Summarize(field.Values)
//	fmt.Printf("%d/%d finite, mean %.3f\n", st.Finite, st.Count, st.Mean)
package analysis
