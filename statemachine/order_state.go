package statemachine

import "delivery-platform/models"

// validTransitions is the authoritative transition graph:
// pending → confirmed → preparing → ready → picked_up → delivered,
// with cancelled reachable from every non-terminal state.
var validTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusPreparing, models.StatusCancelled},
	models.StatusPreparing: {models.StatusReady, models.StatusCancelled},
	models.StatusReady:     {models.StatusPickedUp, models.StatusCancelled},
	models.StatusPickedUp:  {models.StatusDelivered, models.StatusCancelled},
	models.StatusDelivered: nil,
	models.StatusCancelled: nil,
}

// AssignableStatuses are the states in which an order may still be handed
// to a driver.
var AssignableStatuses = []models.OrderStatus{
	models.StatusConfirmed,
	models.StatusPreparing,
	models.StatusReady,
}

// ActiveStatuses are post-acceptance, non-terminal states. A driver may
// hold at most one order in these states at a time.
var ActiveStatuses = []models.OrderStatus{
	models.StatusConfirmed,
	models.StatusPreparing,
	models.StatusReady,
	models.StatusPickedUp,
}

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s models.OrderStatus) bool {
	_, ok := validTransitions[s]
	return ok
}

// IsTerminal reports whether s has no outgoing transitions.
func IsTerminal(s models.OrderStatus) bool {
	next, ok := validTransitions[s]
	return ok && len(next) == 0
}

// CanTransition reports whether from → to is an edge of the graph.
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidNextStates returns all states reachable from s in one step.
func ValidNextStates(s models.OrderStatus) []models.OrderStatus {
	next := validTransitions[s]
	out := make([]models.OrderStatus, len(next))
	copy(out, next)
	return out
}

// statusLabels maps each status to its customer-facing Arabic label.
// Presentation only — the core never branches on these.
var statusLabels = map[models.OrderStatus]string{
	models.StatusPending:   "قيد الانتظار",
	models.StatusConfirmed: "تم التأكيد",
	models.StatusPreparing: "قيد التحضير",
	models.StatusReady:     "جاهز للتوصيل",
	models.StatusPickedUp:  "في الطريق",
	models.StatusDelivered: "تم التوصيل",
	models.StatusCancelled: "ملغي",
}

// StatusLabel returns the presentation label for s, or the raw status
// string when no label is defined.
func StatusLabel(s models.OrderStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Edge is one transition of the graph, exported for the docs endpoint.
type Edge struct {
	From models.OrderStatus `json:"from"`
	To   models.OrderStatus `json:"to"`
}

// Edges returns the full transition graph in a stable order.
func Edges() []Edge {
	ordered := []models.OrderStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusReady,
		models.StatusPickedUp,
	}
	var edges []Edge
	for _, from := range ordered {
		for _, to := range validTransitions[from] {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}
