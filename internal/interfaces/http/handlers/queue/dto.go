package queue

import (
	"lineup/internal/application/queue/usecases"
)

type IssueTicketRequest struct {
	LocationID uint   `json:"location_id" binding:"required"`
	CounterID  uint   `json:"counter_id" binding:"required"`
	HolderID   *uint  `json:"holder_id,omitempty"`
	DateFor    string `json:"date_for,omitempty"`
}

func (r *IssueTicketRequest) ToCommand() usecases.IssueTicketCommand {
	return usecases.IssueTicketCommand{
		LocationID: r.LocationID,
		CounterID:  r.CounterID,
		HolderID:   r.HolderID,
		DateFor:    r.DateFor,
	}
}

type HoldTicketRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type CancelTicketRequest struct {
	Reason string `json:"reason,omitempty" binding:"max=500"`
}
