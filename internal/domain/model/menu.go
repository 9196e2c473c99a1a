package model

// MenuItem is a flavor offered by the store.
type MenuItem struct {
	ID          string
	Name        string
	Description string
}
