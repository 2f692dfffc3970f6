package domain

// Category is read-only reference data used to group resources.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
