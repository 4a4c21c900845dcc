package enums

// ActivityAction labels entries in the admin recent-activity feed.
type ActivityAction string

const (
	ActivityActionSignUp       ActivityAction = "Sign Up"
	ActivityActionOrder        ActivityAction = "Order"
	ActivityActionAddedAddress ActivityAction = "Added New Address"
)

// String implements fmt.Stringer.
func (a ActivityAction) String() string {
	return string(a)
}
