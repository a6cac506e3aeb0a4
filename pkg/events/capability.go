package events

import (
	"math"
	"reflect"
)

// Delivery order bounds. Lower values run earlier.
const (
	// HighestOrder sorts a listener before every listener with a larger
	// order value.
	HighestOrder = math.MinInt

	// LowestOrder is the implicit order of listeners that declare none.
	LowestOrder = math.MaxInt
)

// Ordered is implemented by listeners that take a position in the delivery
// order. Listeners without the capability run after all ordered ones, in
// registration order.
type Ordered interface {
	// Order returns the sort value for this listener.
	Order() int
}

// PriorityOrdered marks an ordered listener as part of the priority class.
// The priority class is delivered entirely before plain ordered listeners,
// regardless of the numeric order values involved.
type PriorityOrdered interface {
	Ordered

	// Prioritized reports whether the listener belongs to the priority class.
	Prioritized() bool
}

// TypeBound is implemented by listeners that declare the single event type
// they accept. AsSmartListener reads the token to build the event-type
// predicate without invoking the listener. Listeners without the capability
// accept every event type.
type TypeBound interface {
	// EventType returns the type token of events this listener consumes.
	// Returning the Event interface type, or nil, accepts every event.
	EventType() reflect.Type
}

// TargetUnwrapper is implemented by decorating listeners that delegate to
// another listener. Capability probes walk the chain so a decorator never
// hides its target's type binding, order, or priority.
type TargetUnwrapper interface {
	// UnwrapTarget returns the next listener in the decoration chain.
	UnwrapTarget() Listener
}

// eventInterfaceType is the token AsSmartListener treats as universal.
var eventInterfaceType = reflect.TypeOf((*Event)(nil)).Elem()

// unwrapTarget follows the decoration chain from l to the innermost
// listener. A decorator returning nil or itself terminates the walk.
func unwrapTarget(l Listener) Listener {
	for {
		unwrapper, ok := l.(TargetUnwrapper)
		if !ok {
			return l
		}

		next := unwrapper.UnwrapTarget()
		if next == nil || sameIdentity(next, l) {
			return l
		}
		l = next
	}
}
