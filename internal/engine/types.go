package engine

import (
	"fmt"
	"time"
)

const (
	BankID             = "bank"
	BankName           = "Bank"
	BankInitialBalance = 1_000_000

	BoardSize      = 40
	JailPosition   = 10
	JailTurns      = 3
	JailFee        = 500
	PassStartBonus = 2000
	MaxHouses      = 4

	DefaultPlayerCount   = 6
	DefaultStartingMoney = 15000
)

type CellType string

const (
	CellStart    CellType = "start"
	CellCity     CellType = "city"
	CellChance   CellType = "chance"
	CellTax      CellType = "tax"
	CellJail     CellType = "jail"
	CellFree     CellType = "free"
	CellGoToJail CellType = "gotoJail"
	CellUtility  CellType = "utility"
	CellStation  CellType = "station"
)

// Cell is one static board position. Deed is set for ownable cities.
type Cell struct {
	ID     int       `json:"id"`
	Name   string    `json:"name"`
	Type   CellType  `json:"type"`
	Amount int       `json:"amount,omitempty"`
	Deed   *CityDeed `json:"deed,omitempty"`
}

type CityDeed struct {
	Price          int    `json:"price"`
	Rent           int    `json:"rent"`
	RentWithHouses [4]int `json:"rentWithHouses"`
	RentWithHotel  int    `json:"rentWithHotel"`
	HousePrice     int    `json:"housePrice"`
	Color          string `json:"color"`
}

// Property is the mutable ownership state of a city cell. Owner is a stable
// player id, empty while the bank still holds it.
type Property struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Owner    string `json:"owner"`
	Houses   int    `json:"houses"`
	HasHotel bool   `json:"hasHotel"`
}

type DeedCard struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

type ChanceKind string

const (
	ChanceMoney        ChanceKind = "money"
	ChanceMove         ChanceKind = "move"
	ChanceJail         ChanceKind = "jail"
	ChanceGetOutOfJail ChanceKind = "getOutOfJail"
	ChanceBirthday     ChanceKind = "birthday"
	ChanceRepair       ChanceKind = "repair"
)

type ChanceCard struct {
	ID       int        `json:"id"`
	Text     string     `json:"text"`
	Kind     ChanceKind `json:"kind"`
	Amount   int        `json:"amount,omitempty"`
	Position int        `json:"position,omitempty"`
	// per hotel, used by repair cards; Amount is per house
	HotelAmount int `json:"hotelAmount,omitempty"`
}

type Player struct {
	ID                  string       `json:"id"`
	ConnectionID        string       `json:"-"`
	Name                string       `json:"name"`
	Balance             int          `json:"balance"`
	IsBank              bool         `json:"isBank,omitempty"`
	Color               string       `json:"color"`
	Position            int          `json:"position"`
	InJail              bool         `json:"inJail"`
	JailTurns           int          `json:"jailTurns"`
	HasGetOutOfJailCard bool         `json:"hasGetOutOfJailCard"`
	DeedCards           []DeedCard   `json:"deedCards"`
	ChanceCards         []ChanceCard `json:"chanceCards"`
	TurnOrderRoll       int          `json:"turnOrderRoll"`
	TurnOrder           int          `json:"turnOrder"`
	Disconnected        bool         `json:"disconnected"`
	DisconnectedAt      *time.Time   `json:"disconnectedAt,omitempty"`
}

type Settings struct {
	StartingMoney      int  `json:"startingMoney"`
	DeedCardsPerPlayer int  `json:"deedCardsPerPlayer"`
	StartingProperty   bool `json:"startingProperty"`
}

func DefaultSettings() Settings {
	return Settings{StartingMoney: DefaultStartingMoney}
}

// Validate rejects negative amounts.
func (s Settings) Validate() error {
	if s.StartingMoney < 0 || s.DeedCardsPerPlayer < 0 {
		return fmt.Errorf("settings %+v: %w", s, ErrInvalidRequest)
	}
	return nil
}

type DeedRequestType string

const (
	DeedBuy  DeedRequestType = "buy"
	DeedSell DeedRequestType = "sell"
	DeedGive DeedRequestType = "give"
)

type DeedRequest struct {
	ID         string          `json:"id"`
	Type       DeedRequestType `json:"type"`
	PlayerID   string          `json:"playerId"`
	PlayerName string          `json:"playerName"`
	DeedCard   DeedCard        `json:"deedCard"`
	Timestamp  time.Time       `json:"timestamp"`
}

type Transaction struct {
	ID        int       `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	FromName  string    `json:"fromName"`
	ToName    string    `json:"toName"`
	Amount    int       `json:"amount"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

type DeedTransaction struct {
	Type       DeedRequestType `json:"type"`
	PlayerID   string          `json:"playerId"`
	PlayerName string          `json:"playerName"`
	DeedCard   DeedCard        `json:"deedCard"`
	Price      int             `json:"price"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Room is the whole state of one game.
type Room struct {
	Code               string    `json:"roomCode"`
	HostConnectionID   string    `json:"-"`
	HostName           string    `json:"hostName"`
	HostConnected      bool      `json:"hostConnected"`
	HostDisconnectedAt time.Time `json:"-"`
	PlayerCount        int       `json:"playerCount"`
	Players            []*Player `json:"players"`
	Bank               *Player   `json:"bank"`
	Settings           Settings  `json:"settings"`
	Started            bool      `json:"started"`
	CreatedAt          time.Time `json:"createdAt"`

	CurrentPlayerIndex    int      `json:"currentPlayerIndex"`
	WaitingForTurnOrder   bool     `json:"waitingForTurnOrder"`
	PlayersRolledForOrder []string `json:"playersRolledForOrder"`
	DiceRoll              []int    `json:"diceRoll,omitempty"`

	Board            []Cell            `json:"board"`
	Properties       []*Property       `json:"properties"`
	AvailableDeeds   []DeedCard        `json:"availableDeeds"`
	DeedRequests     []DeedRequest     `json:"deedRequests"`
	Transactions     []Transaction     `json:"transactions"`
	DeedTransactions []DeedTransaction `json:"deedTransactions"`
}

func (r *Room) playerByID(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) playerByConn(connID string) *Player {
	if connID == "" {
		return nil
	}
	for _, p := range r.Players {
		if p.ConnectionID == connID {
			return p
		}
	}
	return nil
}

func (r *Room) playerByName(name string) *Player {
	for _, p := range r.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// party resolves a player id or the bank.
func (r *Room) party(id string) *Player {
	if id == BankID {
		return r.Bank
	}
	return r.playerByID(id)
}

func (r *Room) property(id int) *Property {
	for _, p := range r.Properties {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) cell(pos int) Cell {
	if pos < 0 || pos >= len(r.Board) {
		return Cell{ID: pos, Type: CellFree}
	}
	return r.Board[pos]
}

func (r *Room) isHost(connID string) bool {
	return connID != "" && r.HostConnectionID == connID
}

func (r *Room) currentPlayer() *Player {
	if len(r.Players) == 0 {
		return nil
	}
	return r.Players[r.CurrentPlayerIndex%len(r.Players)]
}

func (r *Room) advanceTurn() {
	if len(r.Players) == 0 {
		return
	}
	r.CurrentPlayerIndex = (r.CurrentPlayerIndex + 1) % len(r.Players)
}

// Abandoned reports whether the host and every player have been gone for at
// least ttl.
func (r *Room) Abandoned(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 || !r.Started || r.HostConnected {
		return false
	}
	last := r.HostDisconnectedAt
	for _, p := range r.Players {
		if !p.Disconnected || p.DisconnectedAt == nil {
			return false
		}
		if p.DisconnectedAt.After(last) {
			last = *p.DisconnectedAt
		}
	}
	return now.Sub(last) >= ttl
}

// Clone returns a deep copy that shares only the immutable board.
func (r *Room) Clone() *Room {
	c := *r
	c.Players = make([]*Player, len(r.Players))
	for i, p := range r.Players {
		c.Players[i] = p.clone()
	}
	if r.Bank != nil {
		c.Bank = r.Bank.clone()
	}
	c.PlayersRolledForOrder = append([]string(nil), r.PlayersRolledForOrder...)
	c.DiceRoll = append([]int(nil), r.DiceRoll...)
	c.Properties = make([]*Property, len(r.Properties))
	for i, p := range r.Properties {
		cp := *p
		c.Properties[i] = &cp
	}
	c.AvailableDeeds = append([]DeedCard(nil), r.AvailableDeeds...)
	c.DeedRequests = append([]DeedRequest(nil), r.DeedRequests...)
	c.Transactions = append([]Transaction(nil), r.Transactions...)
	c.DeedTransactions = append([]DeedTransaction(nil), r.DeedTransactions...)
	return &c
}

func (p *Player) clone() *Player {
	c := *p
	c.DeedCards = append([]DeedCard(nil), p.DeedCards...)
	c.ChanceCards = append([]ChanceCard(nil), p.ChanceCards...)
	if p.DisconnectedAt != nil {
		at := *p.DisconnectedAt
		c.DisconnectedAt = &at
	}
	return &c
}

func (p *Player) hasDeed(id int) bool {
	for _, d := range p.DeedCards {
		if d.ID == id {
			return true
		}
	}
	return false
}
