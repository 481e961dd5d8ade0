package store

import (
	"time"

	"github.com/angelmondragon/ownshop-backend/pkg/db/models"
	"github.com/angelmondragon/ownshop-backend/pkg/enums"
)

// Operation names reported on EventOperation.
const (
	OpActivate           = "activate"
	OpSignIn             = "sign_in"
	OpSignOut            = "sign_out"
	OpAddToCart          = "add_to_cart"
	OpRemoveFromCart     = "remove_from_cart"
	OpUpdateCartQuantity = "update_cart_quantity"
	OpSetBanner          = "set_banner"
	OpAddProduct         = "add_product"
	OpRemoveProduct      = "remove_product"
	OpTogglePublication  = "toggle_product_publication"
	OpSubmitVerification = "submit_verification"
	OpUpdateVerification = "update_verification_status"
	OpCatalogLoad        = "catalog_load"
)

// EventKind classifies what a subscriber is being told.
type EventKind string

const (
	// EventOperation fires once per operation call, after every other event it caused.
	EventOperation             EventKind = "operation"
	EventStateChanged          EventKind = "state_changed"
	EventNotification          EventKind = "notification"
	EventNavigation            EventKind = "navigation"
	EventVerificationSubmitted EventKind = "verification_submitted"
	EventVerificationDecided   EventKind = "verification_decided"
	EventCatalogLoaded         EventKind = "catalog_loaded"
)

// Notification is a user-visible toast.
type Notification struct {
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	Variant     enums.NotificationVariant `json:"variant"`
}

// Event is delivered to subscribers after the store lock is released.
type Event struct {
	Kind         EventKind
	DeviceID     string
	Operation    string
	OK           bool
	Notification *Notification
	Route        enums.Route
	Verification *models.BusinessVerification
	Duration     time.Duration
}

// Listener receives store events in registration order.
type Listener func(Event)

// Outcome reports what an operation did. Domain failures never surface as
// errors; they set OK=false and usually carry a Notification.
type Outcome struct {
	OK           bool          `json:"ok"`
	NotFound     bool          `json:"-"`
	ID           string        `json:"id,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
	Redirect     enums.Route   `json:"redirect,omitempty"`
}

func notice(title, description string) *Notification {
	return &Notification{Title: title, Description: description, Variant: enums.NotificationVariantDefault}
}

func alert(title, description string) *Notification {
	return &Notification{Title: title, Description: description, Variant: enums.NotificationVariantDestructive}
}
