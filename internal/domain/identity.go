package domain

// Identity is the upstream-supplied identity claim attached to a request.
// It is parsed once at the transport boundary and trusted verbatim; this
// service never issues or validates credentials itself.
type Identity struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

const (
	RoleRestaurant = "restaurant"
	RoleUser       = "user"
)
