package repository

// Page paginación por limit/offset.
type Page struct {
	Limit  int
	Offset int
}
