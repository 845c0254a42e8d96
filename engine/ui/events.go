package ui

import "fmt"

// UiEvent is a window-level action requested by an element's click handler.
type UiEvent struct {
	Kind UiEventKind
	// ID is the element to select for EventSetSelected.
	ID ID
}

type UiEventKind int

const (
	EventCloseRequested UiEventKind = iota
	EventSetMinimized
	EventResizeRequested // toggle maximized
	EventTitleBar        // begin a native window drag
	EventSetSelected
)

func (k UiEventKind) String() string {
	switch k {
	case EventCloseRequested:
		return "close-requested"
	case EventSetMinimized:
		return "set-minimized"
	case EventResizeRequested:
		return "resize-requested"
	case EventTitleBar:
		return "title-bar"
	case EventSetSelected:
		return "set-selected"
	default:
		return "unknown"
	}
}

func (e UiEvent) String() string {
	if e.Kind == EventSetSelected {
		return fmt.Sprintf("%v(%d)", e.Kind, e.ID)
	}
	return e.Kind.String()
}

func CloseRequested() UiEvent  { return UiEvent{Kind: EventCloseRequested} }
func SetMinimized() UiEvent    { return UiEvent{Kind: EventSetMinimized} }
func ResizeRequested() UiEvent { return UiEvent{Kind: EventResizeRequested} }
func TitleBar() UiEvent        { return UiEvent{Kind: EventTitleBar} }
func SetSelected(id ID) UiEvent {
	return UiEvent{Kind: EventSetSelected, ID: id}
}

type ResultKind int

const (
	// ResultNone: the element is not interactive.
	ResultNone ResultKind = iota
	// ResultSuccess: consumed locally, e.g. a registered callback ran.
	ResultSuccess
	// ResultPropagate: Event bubbles to the window-level handler.
	ResultPropagate
)

// InteractionResult is what HandleClick reports back to the router.
type InteractionResult struct {
	Kind  ResultKind
	Event UiEvent
}

func Success() InteractionResult { return InteractionResult{Kind: ResultSuccess} }

func Propagate(ev UiEvent) InteractionResult {
	return InteractionResult{Kind: ResultPropagate, Event: ev}
}
