// Package viz provides the terminal viewer for VTK structured-points files.
//
// The viewer is a Bubble Tea program over a [session.Host]. The heatmap is
// drawn with half-block characters, two grid rows per terminal line, next
// to a vertical legend.
//
// # Key Bindings
//
//	←/h, →/l - Previous/next file in the sequence
//	F        - Cycle scalar field
//	C        - Cycle colormap
//	A        - Toggle auto range
//	R        - Enter a manual range ("min max")
//	P        - Toggle row profile; ↑/↓ move the profile row
//	T        - Cycle color themes
//	ctrl+r   - Reload the current file
//	Q        - Quit
package viz
