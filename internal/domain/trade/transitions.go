package trade

import (
	"errors"
	"fmt"
)

var (
	ErrNotParticipant    = errors.New("actor is not a party to this reservation")
	ErrActionNotAllowed  = errors.New("actor may not perform this transition")
	ErrInvalidFromStatus = errors.New("transition not allowed from current status")
	ErrInvalidTarget     = errors.New("unknown transition target")
)

// Effects describes what a legal transition does besides moving the
// reservation status: which product flags to write and who to notify.
// Nil flag pointers leave the product untouched.
type Effects struct {
	SetReserved  *bool
	SetCompleted *bool
	Notify       Role
}

type transitionKey struct {
	from Status
	to   Status
	role Role
}

// The whole lifecycle as data. An illegal combination is the absence of an
// entry, not a branch somewhere else in the code.
var transitionTable = map[transitionKey]Effects{
	{StatusRequested, StatusAccepted, RoleSeller}: {SetReserved: boolPtr(true), Notify: RoleBuyer},
	{StatusRequested, StatusDeclined, RoleSeller}: {SetReserved: boolPtr(false), Notify: RoleBuyer},
	{StatusRequested, StatusCancelled, RoleBuyer}: {SetReserved: boolPtr(false), Notify: RoleSeller},
	{StatusAccepted, StatusCancelled, RoleBuyer}:  {SetReserved: boolPtr(false), Notify: RoleSeller},
	{StatusAccepted, StatusCancelled, RoleSeller}: {SetReserved: boolPtr(false), Notify: RoleBuyer},
	{StatusAccepted, StatusCompleted, RoleSeller}: {SetCompleted: boolPtr(true), SetReserved: boolPtr(false), Notify: RoleBuyer},
}

func init() {
	if err := validateTransitionTable(); err != nil {
		panic(err)
	}
}

func validateTransitionTable() error {
	for key, effects := range transitionTable {
		if !key.from.IsValid() || !key.to.IsValid() {
			return fmt.Errorf("transition table: unknown status in %v", key)
		}
		if key.from.IsTerminal() {
			return fmt.Errorf("transition table: terminal status %s has outgoing transition", key.from)
		}
		if key.to == StatusRequested {
			return fmt.Errorf("transition table: %s may only be an initial status", StatusRequested)
		}
		if key.role != RoleBuyer && key.role != RoleSeller {
			return fmt.Errorf("transition table: invalid role %q in %v", key.role, key)
		}
		if effects.Notify != RoleBuyer && effects.Notify != RoleSeller {
			return fmt.Errorf("transition table: transition %v must notify a party", key)
		}
		if effects.Notify == key.role {
			return fmt.Errorf("transition table: transition %v notifies its own initiator", key)
		}
	}
	return nil
}

func resolveTransition(from, to Status, role Role) (Effects, error) {
	if !to.IsValid() || to == StatusRequested {
		return Effects{}, ErrInvalidTarget
	}
	if role == RoleNone {
		return Effects{}, ErrNotParticipant
	}
	if effects, ok := transitionTable[transitionKey{from, to, role}]; ok {
		return effects, nil
	}
	// The role can reach the target from some other status: the failure is
	// about state, not entitlement.
	for key := range transitionTable {
		if key.to == to && key.role == role {
			return Effects{}, ErrInvalidFromStatus
		}
	}
	return Effects{}, ErrActionNotAllowed
}

func boolPtr(b bool) *bool { return &b }
