// model/status.go
package model

type RentalStatus string

const (
	RentalReserved  RentalStatus = "RESERVED"
	RentalOpen      RentalStatus = "OPEN"
	RentalReturned  RentalStatus = "RETURNED"
	RentalLate      RentalStatus = "LATE"
	RentalCancelled RentalStatus = "CANCELLED"
)

// rentalTransitions is the rental state machine. RETURNED and CANCELLED
// are terminal.
var rentalTransitions = map[RentalStatus][]RentalStatus{
	RentalReserved: {RentalOpen, RentalCancelled},
	RentalOpen:     {RentalReturned, RentalLate},
	RentalLate:     {RentalReturned},
}

func (s RentalStatus) Valid() bool {
	switch s {
	case RentalReserved, RentalOpen, RentalReturned, RentalLate, RentalCancelled:
		return true
	}
	return false
}

func (s RentalStatus) CanTransitionTo(to RentalStatus) bool {
	for _, next := range rentalTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s RentalStatus) Terminal() bool {
	return len(rentalTransitions[s]) == 0 && s.Valid()
}

type ItemStatus string

const (
	ItemAvailable ItemStatus = "AVAILABLE"
	ItemRented    ItemStatus = "RENTED"
	ItemDamaged   ItemStatus = "DAMAGED"
	ItemRetired   ItemStatus = "RETIRED"
)

// itemTransitions is the inventory item state machine. RETIRED is terminal.
// DAMAGED -> AVAILABLE covers repaired items coming back into rotation.
var itemTransitions = map[ItemStatus][]ItemStatus{
	ItemAvailable: {ItemRented, ItemRetired},
	ItemRented:    {ItemAvailable, ItemDamaged},
	ItemDamaged:   {ItemAvailable, ItemRetired},
}

func (s ItemStatus) Valid() bool {
	switch s {
	case ItemAvailable, ItemRented, ItemDamaged, ItemRetired:
		return true
	}
	return false
}

func (s ItemStatus) CanTransitionTo(to ItemStatus) bool {
	for _, next := range itemTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
