package domain

import "time"

// SickLeaveStatus is the review state of a sick-leave submission.
type SickLeaveStatus string

const (
	SickLeavePending  SickLeaveStatus = "pending"
	SickLeaveApproved SickLeaveStatus = "approved"
	SickLeaveRejected SickLeaveStatus = "rejected"
)

var validSickLeaveTransitions = map[SickLeaveStatus][]SickLeaveStatus{
	SickLeavePending: {SickLeaveApproved, SickLeaveRejected},
}

// CanTransitionTo reports whether a submission may move to next.
func (s SickLeaveStatus) CanTransitionTo(next SickLeaveStatus) bool {
	for _, allowed := range validSickLeaveTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// SickLeaveEntry persists indefinitely in its terminal state.
type SickLeaveEntry struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	UserName  string          `json:"user_name"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Status    SickLeaveStatus `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}
