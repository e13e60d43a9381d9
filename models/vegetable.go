package models

// Vegetable is one item from the static reference list. The list is loaded
// once at startup and never changes during a session.
type Vegetable struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}
