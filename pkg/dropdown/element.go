package dropdown

// ClickHandler reacts to a click on an element. Returning an error stops
// propagation and is reported by Dispatch.
type ClickHandler func(ev *Event) error

// Element is a node of a rendered control tree. Containment follows parent
// links, so a node contains itself and all of its descendants.
type Element struct {
	id      string
	parent  *Element
	onClick ClickHandler
}

// NewElement creates a node below parent. A nil parent makes a root.
func NewElement(id string, parent *Element) *Element {
	return &Element{id: id, parent: parent}
}

// ID returns the identifier given at construction.
func (e *Element) ID() string {
	if e == nil {
		return ""
	}
	return e.id
}

// Parent returns the enclosing node, or nil for a root.
func (e *Element) Parent() *Element {
	if e == nil {
		return nil
	}
	return e.parent
}

// Contains reports whether target is e or one of its descendants.
func (e *Element) Contains(target *Element) bool {
	if e == nil {
		return false
	}
	for node := target; node != nil; node = node.parent {
		if node == e {
			return true
		}
	}
	return false
}

// OnClick installs the click handler, replacing any previous one.
func (e *Element) OnClick(fn ClickHandler) {
	e.onClick = fn
}

// Event is a click travelling from its target towards the root.
type Event struct {
	Target  *Element
	stopped bool
}

// StopPropagation prevents ancestors of the current node from seeing the
// event.
func (ev *Event) StopPropagation() {
	ev.stopped = true
}

// Stopped reports whether a handler called StopPropagation.
func (ev *Event) Stopped() bool {
	return ev.stopped
}

// Dispatch delivers a click to target and then to each ancestor until a
// handler stops propagation or fails.
func Dispatch(target *Element) (*Event, error) {
	ev := &Event{Target: target}
	for node := target; node != nil; node = node.parent {
		if node.onClick == nil {
			continue
		}
		if err := node.onClick(ev); err != nil {
			return ev, err
		}
		if ev.stopped {
			break
		}
	}
	return ev, nil
}
