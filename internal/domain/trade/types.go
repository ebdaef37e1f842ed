package trade

import "github.com/google/uuid"

type Status string

const (
	StatusRequested Status = "REQUESTED"
	StatusAccepted  Status = "ACCEPTED"
	StatusDeclined  Status = "DECLINED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusRequested, StatusAccepted, StatusDeclined, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// Terminal statuses admit no further transitions.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDeclined, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleNone   Role = ""
)

// RoleOf derives the actor's role per call. Buyer and seller are distinct
// by construction, so both can never match at once.
func RoleOf(actorID, buyerID, sellerID uuid.UUID) Role {
	switch actorID {
	case buyerID:
		return RoleBuyer
	case sellerID:
		return RoleSeller
	default:
		return RoleNone
	}
}
