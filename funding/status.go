package funding

// Status is a campaign's lifecycle state. Transitions are one-way:
//
//	Created --Open()--> Open
//	Open    --Close()--> Closed
//	Open    --Cancel()--> Cancelled
//
// Closed and Cancelled are terminal.
type Status uint8

const (
	Created Status = iota
	Open
	Closed
	Cancelled
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Created:
		return "Created"
	case Open:
		return "Open"
	case Closed:
		return "Closed"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// canTransition reports whether from -> to is in the transition table.
func canTransition(from, to Status) bool {
	switch {
	case from == Created && to == Open:
		return true
	case from == Open && to == Closed:
		return true
	case from == Open && to == Cancelled:
		return true
	default:
		return false
	}
}
