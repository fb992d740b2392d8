package model

import (
	"strings"
)

// Platform identifies the marketplace partition an order was listed on.
type Platform string

const (
	PlatformPC     Platform = "pc"
	PlatformPS4    Platform = "ps4"
	PlatformXbox   Platform = "xbox"
	PlatformSwitch Platform = "switch"
)

// DefaultPlatforms returns the supported platforms in the fixed order they
// are queried in.
func DefaultPlatforms() []Platform {
	return []Platform{PlatformPC, PlatformPS4, PlatformXbox, PlatformSwitch}
}

// Display returns the uppercased platform tag shown to the user.
func (p Platform) Display() string {
	return strings.ToUpper(string(p))
}

// OrderType is the marketplace listing kind. Values other than the known
// constants can appear on the wire and are treated as unknown.
type OrderType string

const (
	OrderTypeSell OrderType = "sell"
	OrderTypeBuy  OrderType = "buy"
)

// Presence is a user's online status at listing time.
type Presence string

const (
	PresenceOnline  Presence = "online"
	PresenceIngame  Presence = "ingame"
	PresenceOffline Presence = "offline"
)

// Priority orders presences for ranking: in-game sellers first, then online,
// then everything else.
func (p Presence) Priority() int {
	switch p {
	case PresenceIngame:
		return 2
	case PresenceOnline:
		return 1
	default:
		return 0
	}
}

// Display returns the label shown to the user. Unknown presence values pass
// through unchanged.
func (p Presence) Display() string {
	switch p {
	case PresenceOnline:
		return "Online"
	case PresenceIngame:
		return "In Game"
	case PresenceOffline:
		return "Offline"
	default:
		return string(p)
	}
}

// OrderUser is the seller attached to a marketplace order.
type OrderUser struct {
	IngameName string   `json:"ingame_name"`
	Status     Presence `json:"status"`
}

// RawOrder is a single order record as returned by the marketplace API.
type RawOrder struct {
	OrderType OrderType `json:"order_type"`
	Platinum  int       `json:"platinum"`
	Quantity  int       `json:"quantity"`
	ModRank   *int      `json:"mod_rank"`
	User      OrderUser `json:"user"`
}

// RankedOrder is the display form of a sell order after filtering and
// ranking. Presence keeps the raw status for the sort comparator; the other
// fields are ready to render.
type RankedOrder struct {
	Platform   string
	OrderType  string
	Platinum   int
	Quantity   int
	Presence   Presence
	UserStatus string
	UserName   string
	ModRank    string
}

// Summary holds the derived price statistics of one aggregation pass.
// HasData is false when no sell orders were found anywhere, in which case
// Lowest and Average are meaningless.
type Summary struct {
	Lowest  float64
	Average float64
	HasData bool
}

// AggregateResult is the outcome of one multi-platform aggregation pass.
type AggregateResult struct {
	Orders         []RankedOrder
	Summary        Summary
	Changed        bool
	PlatformErrors map[Platform]error
}
