package domain

// Department represents an organizational unit employees reference.
type Department struct {
	ID   string
	Name string
}
