// Package lifecycle maps a persisted order status to everything the order
// view renders: a progress fraction, a display label, a milestone timeline,
// and the set of actions the customer may take.
//
// All derivations read from one canonical status-to-metadata table so the
// progress bar, badge, and stepper can never drift out of sync. The package
// never errors: a status code added server-side before this client is
// updated degrades to zero progress and an empty timeline.
package lifecycle

import "github.com/jcmexdev/storefront/internal/storefront/core/domain/entity"

// Action is a customer-facing operation derived from order/payment state.
type Action string

const (
	ActionCancel          Action = "cancel"
	ActionCompletePayment Action = "complete_payment"
)

// ActionSet is the union of currently permitted actions.
type ActionSet map[Action]bool

// TimelineStep is one named milestone in the order's lifecycle, flagged
// relative to the current status. Recomputed on every render, never persisted.
type TimelineStep struct {
	Status      entity.OrderStatus
	Label       string
	IsCompleted bool
	IsActive    bool
	IsPending   bool
}

// milestones is the canonical six-step sequence rendered by the progress
// stepper. in_transit and in_customs are sub-states of on_delivery and do not
// get their own step.
var milestones = [...]entity.OrderStatus{
	entity.StatusPending,
	entity.StatusProcessing,
	entity.StatusPaid,
	entity.StatusShipped,
	entity.StatusOnDelivery,
	entity.StatusCompleted,
}

// noMilestone marks statuses that never appear on the stepper.
const noMilestone = -1

type statusMeta struct {
	progress    float64
	label       string
	milestone   int
	cancellable bool
}

// statusTable is the single source of truth for per-status derivations.
// Progress values are a design contract consumed by progress bars, not an
// approximation.
var statusTable = map[entity.OrderStatus]statusMeta{
	entity.StatusPending:            {progress: 16.67, label: "Pending", milestone: 0, cancellable: true},
	entity.StatusPendingPayment:     {progress: 16.67, label: "Awaiting Payment", milestone: 0, cancellable: true},
	entity.StatusProcessing:         {progress: 33.33, label: "Processing", milestone: 1, cancellable: true},
	entity.StatusPaid:               {progress: 50, label: "Paid", milestone: 2},
	entity.StatusShipped:            {progress: 66.67, label: "Shipped", milestone: 3},
	entity.StatusOnDelivery:         {progress: 83.33, label: "Out for Delivery", milestone: 4},
	entity.StatusInTransit:          {progress: 83.33, label: "In Transit", milestone: 4},
	entity.StatusInCustoms:          {progress: 83.33, label: "In Customs", milestone: 4},
	entity.StatusCompleted:          {progress: 100, label: "Completed", milestone: 5},
	entity.StatusCancelled:          {progress: 0, label: "Cancelled", milestone: noMilestone},
	entity.StatusOrderCancelRequest: {progress: 0, label: "Cancellation Requested", milestone: noMilestone},
}

// Progress returns the percentage shown on the order progress bar.
// Unknown statuses map to 0.
func Progress(status entity.OrderStatus) float64 {
	return statusTable[status].progress
}

// DisplayLabel returns the human label for the status badge. Unknown statuses
// fall back to the raw code so forward-compatible values still render.
func DisplayLabel(status entity.OrderStatus) string {
	if meta, ok := statusTable[status]; ok {
		return meta.label
	}
	return string(status)
}

// IsCancelTerminal reports whether the status suppresses the timeline
// entirely. A cancelled order shows no partial progress regardless of how far
// it had progressed before cancellation.
func IsCancelTerminal(status entity.OrderStatus) bool {
	switch status {
	case entity.StatusCancelled, entity.StatusOrderCancelRequest:
		return true
	}
	return false
}

// Timeline derives the milestone stepper for the status. Steps before the
// current milestone are completed, the current one is active, the rest are
// pending. Returns nil for cancel-terminal and unknown statuses.
func Timeline(status entity.OrderStatus) []TimelineStep {
	if IsCancelTerminal(status) {
		return nil
	}
	meta, ok := statusTable[status]
	if !ok || meta.milestone == noMilestone {
		return nil
	}

	steps := make([]TimelineStep, len(milestones))
	for i, s := range milestones {
		steps[i] = TimelineStep{
			Status:      s,
			Label:       DisplayLabel(s),
			IsCompleted: i < meta.milestone,
			IsActive:    i == meta.milestone,
			IsPending:   i > meta.milestone,
		}
	}
	return steps
}

// PermittedActions returns the actions currently offered to the customer.
// Cancellability depends on status alone; completing payment depends on the
// payment method and payment status alone. The two predicates are evaluated
// independently and unioned, so an order may expose zero, one, or both.
func PermittedActions(status entity.OrderStatus, method entity.PaymentMethod, payment entity.PaymentStatus) ActionSet {
	actions := make(ActionSet)
	if statusTable[status].cancellable {
		actions[ActionCancel] = true
	}
	if method == entity.PaymentMethodCreditCard && payment == entity.PaymentStatusPending {
		actions[ActionCompletePayment] = true
	}
	return actions
}
