package session

import "github.com/san-kum/vtkview/internal/sequence"

// MessageType distinguishes user-facing notices.
type MessageType string

const (
	MessageError MessageType = "error"
	MessageInfo  MessageType = "info"
)

// Message is a notice for the user.
type Message struct {
	Type MessageType `json:"type"`
	Text string      `json:"message"`
}

// UpdateMessage carries freshly loaded file content and its navigation
// state from the host to the session.
type UpdateMessage struct {
	Text         string         `json:"text"`
	CurrentFile  string         `json:"currentFile"`
	HasNext      bool           `json:"hasNext"`
	HasPrev      bool           `json:"hasPrev"`
	SequenceInfo *sequence.Info `json:"sequenceInfo,omitempty"`
}

// NewUpdate builds an UpdateMessage from file text and its navigation state.
func NewUpdate(text string, nav sequence.NavState) UpdateMessage {
	return UpdateMessage{
		Text:         text,
		CurrentFile:  nav.CurrentFile,
		HasNext:      nav.HasNext,
		HasPrev:      nav.HasPrev,
		SequenceInfo: nav.Info,
	}
}

// Request is a navigation request from the view to the host.
type Request string

const (
	NavigatePrev Request = "navigatePrev"
	NavigateNext Request = "navigateNext"
)

// Direction maps a request to a sequence direction.
func (r Request) Direction() sequence.Direction {
	if r == NavigateNext {
		return sequence.Next
	}
	return sequence.Prev
}
