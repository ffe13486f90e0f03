package session

// Record defines a public type used by auth APIs.
//
// Record instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Record struct {
	UserID    string
	Token     string
	CreatedAt int64
}
