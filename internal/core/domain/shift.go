package domain

import "time"

// SwapStatus is the lifecycle state of a shift-swap request.
type SwapStatus string

const (
	SwapPending  SwapStatus = "pending"
	SwapApproved SwapStatus = "approved"
	SwapRejected SwapStatus = "rejected"
)

// validSwapTransitions: approved and rejected are terminal.
var validSwapTransitions = map[SwapStatus][]SwapStatus{
	SwapPending: {SwapApproved, SwapRejected},
}

// CanTransitionTo reports whether a swap may move from its current status to next.
func (s SwapStatus) CanTransitionTo(next SwapStatus) bool {
	for _, allowed := range validSwapTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ShiftSwapRequest asks a specific colleague to take over a shift.
type ShiftSwapRequest struct {
	ID            string     `json:"id"`
	RequesterID   string     `json:"requester_id"`
	RequesterName string     `json:"requester_name"`
	RecipientID   string     `json:"recipient_id"`
	RecipientName string     `json:"recipient_name,omitempty"`
	ShiftTime     string     `json:"shift_time"`
	Status        SwapStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}

// TradeStatus is the lifecycle state of an open shift trade.
type TradeStatus string

const (
	TradeOpen      TradeStatus = "open"
	TradeAssigned  TradeStatus = "assigned"
	TradeCompleted TradeStatus = "completed"
)

var validTradeTransitions = map[TradeStatus][]TradeStatus{
	TradeOpen:     {TradeAssigned},
	TradeAssigned: {TradeCompleted},
}

// CanTransitionTo reports whether a trade may move from its current status to next.
func (s TradeStatus) CanTransitionTo(next TradeStatus) bool {
	for _, allowed := range validTradeTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ShiftTrade offers a shift to an open pool of volunteers.
type ShiftTrade struct {
	ID            string      `json:"id"`
	RequesterID   string      `json:"requester_id"`
	RequesterName string      `json:"requester_name"`
	ShiftDate     string      `json:"shift_date"`
	Description   string      `json:"description,omitempty"`
	Volunteers    []string    `json:"volunteers,omitempty"`
	AssignedTo    string      `json:"assigned_to,omitempty"`
	Status        TradeStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
}
