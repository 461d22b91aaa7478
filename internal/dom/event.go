package dom

import (
	"context"
	"errors"
	"slices"

	"golang.org/x/net/html"
)

// Event types dispatched by the page.
const (
	EventClick            = "click"
	EventChange           = "change"
	EventDOMContentLoaded = "DOMContentLoaded"
)

// Event is the value handed to listeners.
type Event struct {
	Type   string
	Target *html.Node
	// Handled is set by a listener that acted on the event.
	Handled bool
}

// ListenerFunc handles one dispatched event.
type ListenerFunc func(ctx context.Context, ev *Event) error

// Listener wraps a ListenerFunc. Listeners are compared by pointer, so the
// instance passed to RemoveEventListener must be the one that was added.
type Listener struct {
	fn ListenerFunc
}

// NewListener allocates a listener for fn.
func NewListener(fn ListenerFunc) *Listener {
	return &Listener{fn: fn}
}

// Handle invokes the wrapped function.
func (l *Listener) Handle(ctx context.Context, ev *Event) error {
	if l == nil || l.fn == nil {
		return nil
	}
	return l.fn(ctx, ev)
}

// AddEventListener binds l to events of type typ on target. Adding the same
// listener twice is a no-op.
func (d *Document) AddEventListener(target *html.Node, typ string, l *Listener) {
	if target == nil || l == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	byType, ok := d.listeners[target]
	if !ok {
		byType = make(map[string][]*Listener)
		d.listeners[target] = byType
	}
	if slices.Contains(byType[typ], l) {
		return
	}
	byType[typ] = append(byType[typ], l)
}

// RemoveEventListener unbinds l and reports whether it was bound.
func (d *Document) RemoveEventListener(target *html.Node, typ string, l *Listener) bool {
	if target == nil || l == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	byType, ok := d.listeners[target]
	if !ok {
		return false
	}
	i := slices.Index(byType[typ], l)
	if i < 0 {
		return false
	}
	byType[typ] = slices.Delete(byType[typ], i, i+1)
	if len(byType[typ]) == 0 {
		delete(byType, typ)
	}
	if len(byType) == 0 {
		delete(d.listeners, target)
	}
	return true
}

// ListenerCount returns how many listeners of type typ are bound to target.
func (d *Document) ListenerCount(target *html.Node, typ string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners[target][typ])
}

// DispatchEvent runs the listeners bound to target for ev.Type in the order
// they were added. A listener removed by an earlier one in the same dispatch
// is skipped. Listener errors are joined.
func (d *Document) DispatchEvent(ctx context.Context, target *html.Node, ev *Event) error {
	if target == nil || ev == nil {
		return nil
	}
	if ev.Target == nil {
		ev.Target = target
	}

	d.mu.Lock()
	snapshot := slices.Clone(d.listeners[target][ev.Type])
	d.mu.Unlock()

	var errs []error
	for _, l := range snapshot {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if !d.bound(target, ev.Type, l) {
			continue
		}
		if err := l.Handle(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *Document) bound(target *html.Node, typ string, l *Listener) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Contains(d.listeners[target][typ], l)
}

// Ready fires DOMContentLoaded on the document root. Only the first call
// dispatches; later calls return the first result.
func (d *Document) Ready(ctx context.Context) error {
	d.readyOnce.Do(func() {
		d.readyErr = d.DispatchEvent(ctx, d.Root(), &Event{Type: EventDOMContentLoaded})
	})
	return d.readyErr
}
