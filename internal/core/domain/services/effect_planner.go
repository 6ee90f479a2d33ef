package services

import (
	"backoffice/internal/core/domain/model/status"
)

// Effect is one external side effect to execute when an order enters a
// status. Effects address systems outside the order aggregate; the order's
// own bookkeeping (delivery and refund stamps, the audit entry) is handled
// by the aggregate itself during the apply.
type Effect int

const (
	// EffectReserveStock increments the held counter for each ordered
	// product item. Physical stock is untouched.
	EffectReserveStock Effect = iota

	// EffectReleaseStock decrements the held counter for each ordered
	// product item.
	EffectReleaseStock

	// EffectReduceStock decrements physical stock by the ordered
	// quantities.
	EffectReduceStock

	// EffectIncreaseStock increments physical stock by the ordered
	// quantities.
	EffectIncreaseStock

	// EffectSendNotification enqueues a status-changed message for the
	// order's customer.
	EffectSendNotification
)

// String returns a short name for logs and error messages.
func (e Effect) String() string {
	switch e {
	case EffectReserveStock:
		return "reserve stock"
	case EffectReleaseStock:
		return "release stock"
	case EffectReduceStock:
		return "reduce stock"
	case EffectIncreaseStock:
		return "increase stock"
	case EffectSendNotification:
		return "send notification"
	default:
		return "unknown effect"
	}
}

// EffectPlanner is a domain service turning a status's declarative action
// flags into the ordered list of external effects the transition applier
// must execute within the transition's transaction.
//
// The order is fixed regardless of how the flags are set: stock movements
// first (reserve, release, reduce, increase), notification last. Flags are
// independent triggers, so several effects may be planned for one status; a
// status with no flags set plans nothing.
type EffectPlanner struct{}

// NewEffectPlanner creates a new EffectPlanner instance.
func NewEffectPlanner() EffectPlanner {
	return EffectPlanner{}
}

// Plan returns the effects to execute for the given action flags, in
// execution order. The result is empty when no flag is set.
func (p EffectPlanner) Plan(actions status.ActionFlags) []Effect {
	var effects []Effect

	if actions.ReserveStock {
		effects = append(effects, EffectReserveStock)
	}
	if actions.ReleaseStock {
		effects = append(effects, EffectReleaseStock)
	}
	if actions.ReduceStock {
		effects = append(effects, EffectReduceStock)
	}
	if actions.IncreaseStock {
		effects = append(effects, EffectIncreaseStock)
	}
	if actions.SendNotification {
		effects = append(effects, EffectSendNotification)
	}

	return effects
}
