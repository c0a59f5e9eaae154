package repository

// Page is a limit/offset window over an ordered list.
type Page struct {
	Limit  int
	Offset int
}
