package dto

// Page is the DRF-style paginated envelope used by list endpoints.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// HasNext reports whether another page is available.
func (p Page[T]) HasNext() bool {
	return p.Next != nil && *p.Next != ""
}

// DetailResponse is the bare {"detail": "..."} body many endpoints return.
type DetailResponse struct {
	Detail string `json:"detail"`
}
