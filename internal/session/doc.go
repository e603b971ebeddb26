// Package session holds the view state of one open grid and the host that
// feeds it files.
//
// A [Session] owns everything the original viewer kept in globals: the
// parsed grid, the selected field and colormap, the auto/manual range
// mode, the first-load flag and the last successfully rendered frame.
// Operations that fail leave the previous frame in place and queue a
// [Message] for the user instead.
//
// A [Host] reads files through an [fsutil.FileSystem], resolves sequence
// neighbours and pushes [UpdateMessage]s into the session.
package session
