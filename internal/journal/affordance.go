// ABOUTME: State machine for the "add media" affordance.
// ABOUTME: Closed -> OptionsOpen -> {Closed, LinkInputOpen}; LinkInputOpen -> Closed.

package journal

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

type State int

const (
	Closed State = iota
	OptionsOpen
	LinkInputOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case OptionsOpen:
		return "options"
	case LinkInputOpen:
		return "link-input"
	default:
		return "unknown"
	}
}

type Event int

const (
	ToggleOptions Event = iota
	ChooseImage
	ChooseDocument
	ChooseLink
	Cancel
	LinkSubmitted
)

func (e Event) String() string {
	switch e {
	case ToggleOptions:
		return "toggle-options"
	case ChooseImage:
		return "choose-image"
	case ChooseDocument:
		return "choose-document"
	case ChooseLink:
		return "choose-link"
	case Cancel:
		return "cancel"
	case LinkSubmitted:
		return "link-submitted"
	default:
		return "unknown"
	}
}

var ErrInvalidTransition = errors.New("invalid media menu transition")

// Next returns the state reached from s on e.
func Next(s State, e Event) (State, error) {
	switch s {
	case Closed:
		if e == ToggleOptions {
			return OptionsOpen, nil
		}
	case OptionsOpen:
		switch e {
		case ToggleOptions, Cancel, ChooseImage, ChooseDocument:
			return Closed, nil
		case ChooseLink:
			return LinkInputOpen, nil
		}
	case LinkInputOpen:
		switch e {
		case Cancel, LinkSubmitted:
			return Closed, nil
		}
	}
	return s, goerr.Wrap(ErrInvalidTransition, "event not allowed in state",
		goerr.V("state", s.String()), goerr.V("event", e.String()))
}
