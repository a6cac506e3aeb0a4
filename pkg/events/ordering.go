package events

import "cmp"

// OrderingPolicy decides the relative delivery position of two matched
// listeners. Compare follows the cmp convention: negative when a runs before
// b, positive when a runs after b, zero when tied. The registry sorts
// stably, so ties keep registration order.
type OrderingPolicy interface {
	Compare(a, b Listener) int
}

// OrderOf extracts the order value of l, walking the decoration chain until
// a listener exposes the Ordered capability. Listeners without it report
// LowestOrder.
func OrderOf(l Listener) int {
	for l != nil {
		if ordered, ok := l.(Ordered); ok {
			return ordered.Order()
		}

		unwrapper, ok := l.(TargetUnwrapper)
		if !ok {
			break
		}
		next := unwrapper.UnwrapTarget()
		if next == nil || sameIdentity(next, l) {
			break
		}
		l = next
	}
	return LowestOrder
}

// IsPrioritized reports whether l belongs to the priority class, walking the
// decoration chain until a listener exposes the PriorityOrdered capability.
func IsPrioritized(l Listener) bool {
	for l != nil {
		if priority, ok := l.(PriorityOrdered); ok {
			return priority.Prioritized()
		}

		unwrapper, ok := l.(TargetUnwrapper)
		if !ok {
			break
		}
		next := unwrapper.UnwrapTarget()
		if next == nil || sameIdentity(next, l) {
			break
		}
		l = next
	}
	return false
}

// defaultOrderingPolicy delivers the priority class first, then ascending
// order values.
type defaultOrderingPolicy struct{}

func (defaultOrderingPolicy) Compare(a, b Listener) int {
	prioA, prioB := IsPrioritized(a), IsPrioritized(b)
	if prioA != prioB {
		if prioA {
			return -1
		}
		return 1
	}
	return cmp.Compare(OrderOf(a), OrderOf(b))
}
