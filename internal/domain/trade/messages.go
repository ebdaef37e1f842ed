package trade

import "fmt"

// SubjectTypeReservation tags notifications whose subject id points at a
// reservation record.
const SubjectTypeReservation = "reservation"

// RequestedMessage is the seller-facing text for a fresh trade request.
func RequestedMessage(buyerName, productTitle string) string {
	return fmt.Sprintf("%s wants to buy %q.", buyerName, productTitle)
}

// TransitionMessage composes the counterparty-facing text for a completed
// status transition. actorName is the party who initiated it.
func TransitionMessage(target Status, actorName, productTitle string) string {
	switch target {
	case StatusAccepted:
		return fmt.Sprintf("%s accepted your trade request for %q.", actorName, productTitle)
	case StatusDeclined:
		return fmt.Sprintf("%s declined your trade request for %q.", actorName, productTitle)
	case StatusCancelled:
		return fmt.Sprintf("%s cancelled the trade for %q.", actorName, productTitle)
	case StatusCompleted:
		return fmt.Sprintf("%s marked the trade for %q as completed.", actorName, productTitle)
	default:
		return fmt.Sprintf("The trade for %q was updated by %s.", productTitle, actorName)
	}
}
