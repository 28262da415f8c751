package engine

import (
	"time"

	"github.com/DoyleJ11/monopoly-backend/pkg/types"
)

// Event is one change applied to a room. The hub broadcasts events to the
// room unless they are Directed.
type Event interface {
	Kind() string
}

// Directed events go to a single connection instead of the whole room.
type Directed interface {
	Event
	Recipient() string
}

type PlayerJoined struct {
	Player *Player `json:"player"`
}

type PlayerLeft struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type PlayerReconnected struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type HostReconnected struct {
	HostName string `json:"hostName"`
}

type PlayerDisconnected struct {
	PlayerID   string    `json:"playerId"`
	PlayerName string    `json:"playerName"`
	At         time.Time `json:"at"`
}

type PlayerColorUpdated struct {
	PlayerID string   `json:"playerId"`
	Color    string   `json:"color"`
	Cleared  []string `json:"cleared,omitempty"`
}

type SettingsUpdated struct {
	Settings Settings       `json:"settings"`
	Balances map[string]int `json:"balances"`
}

// RoomStarted carries a full snapshot: starting deals colors, deeds and
// properties to everyone at once.
type RoomStarted struct {
	Room *Room `json:"gameState"`
}

type TurnOrderRollStarted struct {
	Players []string `json:"players"`
}

type TurnOrderRollResult struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Dice       [2]int `json:"dice"`
	Total      int    `json:"total"`
}

type OrderEntry struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Roll       int    `json:"roll"`
	TurnOrder  int    `json:"turnOrder"`
}

type TurnOrderFinalized struct {
	Order           []OrderEntry `json:"order"`
	CurrentPlayerID string       `json:"currentPlayerId"`
}

// SpaceEffect describes what landing on a cell did.
type SpaceEffect struct {
	Type      string       `json:"type"`
	Cell      int          `json:"cell"`
	CellName  string       `json:"cellName"`
	Amount    int          `json:"amount,omitempty"`
	OwnerID   string       `json:"ownerId,omitempty"`
	OwnerName string       `json:"ownerName,omitempty"`
	CanBuy    bool         `json:"canBuy,omitempty"`
	Property  *Property    `json:"property,omitempty"`
	Card      *ChanceCard  `json:"card,omitempty"`
	Then      *SpaceEffect `json:"then,omitempty"`
}

const (
	EffectNone        = "none"
	EffectStart       = "start"
	EffectFree        = "free"
	EffectVisitJail   = "visit-jail"
	EffectStation     = "station"
	EffectUtility     = "utility"
	EffectProperty    = "property"
	EffectRent        = "rent"
	EffectOwnProperty = "own-property"
	EffectTax         = "tax"
	EffectJail        = "jail"
	EffectChance      = "chance"
)

type DiceRolled struct {
	PlayerID           string       `json:"playerId"`
	Dice               [2]int       `json:"dice"`
	Total              int          `json:"total"`
	IsDoubles          bool         `json:"isDoubles"`
	From               int          `json:"from"`
	NewPosition        int          `json:"newPosition"`
	PassedStart        bool         `json:"passedStart"`
	SpaceEffect        *SpaceEffect `json:"spaceEffect"`
	CurrentPlayerIndex int          `json:"currentPlayerIndex"`
	CurrentPlayerID    string       `json:"currentPlayerId"`
}

type PropertyOffer struct {
	ConnectionID string    `json:"-"`
	PlayerID     string    `json:"playerId"`
	Property     *Property `json:"property"`
}

type PropertyPurchased struct {
	PropertyID int    `json:"propertyId"`
	PlayerID   string `json:"playerId"`
	Price      int    `json:"price"`
}

type HouseBuilt struct {
	PropertyID int    `json:"propertyId"`
	PlayerID   string `json:"playerId"`
	Houses     int    `json:"houses"`
}

type HotelBuilt struct {
	PropertyID int    `json:"propertyId"`
	PlayerID   string `json:"playerId"`
}

type JailPaymentAccepted struct {
	PlayerID string `json:"playerId"`
	Fee      int    `json:"fee"`
}

type JailCardUsed struct {
	PlayerID string `json:"playerId"`
}

type TurnEnded struct {
	PlayerID           string `json:"playerId"`
	ReleasedFromJail   bool   `json:"releasedFromJail,omitempty"`
	CurrentPlayerIndex int    `json:"currentPlayerIndex"`
	CurrentPlayerID    string `json:"currentPlayerId"`
}

type TransactionCompleted struct {
	Transaction Transaction `json:"transaction"`
	FromBalance int         `json:"fromBalance"`
	ToBalance   int         `json:"toBalance"`
}

type DeedRequestCreated struct {
	Request DeedRequest `json:"request"`
}

type DeedRequestResolved struct {
	RequestID string `json:"requestId"`
	Approved  bool   `json:"approved"`
	Applied   bool   `json:"applied"`
	Reason    string `json:"reason,omitempty"`
}

type DeedTransferred struct {
	DeedTransaction DeedTransaction `json:"deedTransaction"`
}

type RoomClosed struct {
	Reason string `json:"reason"`
}

func (PlayerJoined) Kind() string         { return types.EventPlayerJoined }
func (PlayerLeft) Kind() string           { return types.EventPlayerLeft }
func (PlayerReconnected) Kind() string    { return types.EventPlayerReconnected }
func (HostReconnected) Kind() string      { return types.EventHostReconnected }
func (PlayerDisconnected) Kind() string   { return types.EventPlayerDisconnected }
func (PlayerColorUpdated) Kind() string   { return types.EventPlayerColorUpdated }
func (SettingsUpdated) Kind() string      { return types.EventSettingsUpdated }
func (RoomStarted) Kind() string          { return types.EventRoomStarted }
func (TurnOrderRollStarted) Kind() string { return types.EventTurnOrderRollStarted }
func (TurnOrderRollResult) Kind() string  { return types.EventTurnOrderRollResult }
func (TurnOrderFinalized) Kind() string   { return types.EventTurnOrderFinalized }
func (DiceRolled) Kind() string           { return types.EventDiceRolled }
func (PropertyOffer) Kind() string        { return types.EventPropertyOffer }
func (PropertyPurchased) Kind() string    { return types.EventPropertyPurchased }
func (HouseBuilt) Kind() string           { return types.EventHouseBuilt }
func (HotelBuilt) Kind() string           { return types.EventHotelBuilt }
func (JailPaymentAccepted) Kind() string  { return types.EventJailPaymentAccepted }
func (JailCardUsed) Kind() string         { return types.EventJailCardUsed }
func (TurnEnded) Kind() string            { return types.EventTurnEnded }
func (TransactionCompleted) Kind() string { return types.EventTransactionCompleted }
func (DeedRequestCreated) Kind() string   { return types.EventDeedRequestCreated }
func (DeedRequestResolved) Kind() string  { return types.EventDeedRequestResolved }
func (DeedTransferred) Kind() string      { return types.EventDeedTransferred }
func (RoomClosed) Kind() string           { return types.EventRoomClosed }

func (o PropertyOffer) Recipient() string { return o.ConnectionID }
