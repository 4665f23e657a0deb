package dto

// Page wraps one page of a listing.
type Page[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Pagination is bound from the limit and offset query parameters.
type Pagination struct {
	Limit  int `form:"limit,default=20" validate:"min=1,max=100"`
	Offset int `form:"offset,default=0" validate:"min=0"`
}

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"
