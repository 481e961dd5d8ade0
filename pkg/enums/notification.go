package enums

// NotificationVariant mirrors the toast styles the storefront renders.
type NotificationVariant string

const (
	NotificationVariantDefault     NotificationVariant = "default"
	NotificationVariantDestructive NotificationVariant = "destructive"
)

// String implements fmt.Stringer.
func (v NotificationVariant) String() string {
	return string(v)
}

// Route is a storefront location the store asks the presentation layer to open.
type Route string

const (
	RouteHome        Route = "/"
	RouteSignIn      Route = "/signin"
	RouteSeller      Route = "/seller"
	RouteAdmin       Route = "/admin"
	RouteOwnShopPlus Route = "/ownshopplus"
)

// String implements fmt.Stringer.
func (r Route) String() string {
	return string(r)
}

// HomeFor returns the landing route for a freshly signed-in role.
func HomeFor(role Role) Route {
	switch role {
	case RoleSeller:
		return RouteSeller
	case RoleAdmin:
		return RouteAdmin
	default:
		return RouteHome
	}
}
