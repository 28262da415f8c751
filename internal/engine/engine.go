package engine

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Rand is the randomness the engine draws dice, shuffles and cards from.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

type Options struct {
	Content     *Content
	Rand        Rand
	Now         func() time.Time
	NewID       func() string
	PlayerCount int
}

// Engine applies game rules to rooms. It is not safe for concurrent use; the
// hub calls it from a single goroutine.
type Engine struct {
	content     *Content
	rng         Rand
	now         func() time.Time
	newID       func() string
	playerCount int
}

func New(opts Options) *Engine {
	e := &Engine{
		content:     opts.Content,
		rng:         opts.Rand,
		now:         opts.Now,
		newID:       opts.NewID,
		playerCount: opts.PlayerCount,
	}
	if e.content == nil {
		e.content = DefaultContent()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}
	if e.playerCount <= 0 {
		e.playerCount = DefaultPlayerCount
	}
	return e
}

// NewRoom builds an empty room hosted by hostConnID.
func (e *Engine) NewRoom(code, hostConnID, hostName string, s Settings) *Room {
	return &Room{
		Code:             code,
		HostConnectionID: hostConnID,
		HostName:         NormalizeName(hostName),
		HostConnected:    true,
		PlayerCount:      e.playerCount,
		Players:          []*Player{},
		Bank: &Player{
			ID:      BankID,
			Name:    BankName,
			Balance: BankInitialBalance,
			IsBank:  true,
		},
		Settings:              s,
		CreatedAt:             e.now(),
		PlayersRolledForOrder: []string{},
		Board:                 e.content.Cells,
		Properties:            []*Property{},
		AvailableDeeds:        []DeedCard{},
		DeedRequests:          []DeedRequest{},
		Transactions:          []Transaction{},
		DeedTransactions:      []DeedTransaction{},
	}
}

// NormalizeName trims and NFC-normalizes a display name so the same name
// typed on different devices maps to the same player.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

type CommandType string

const (
	CmdUpdateColor        CommandType = "UpdateColor"
	CmdUpdateSettings     CommandType = "UpdateSettings"
	CmdStartGame          CommandType = "StartGame"
	CmdRollForOrder       CommandType = "RollForOrder"
	CmdRollDice           CommandType = "RollDice"
	CmdBuyProperty        CommandType = "BuyProperty"
	CmdBuildHouse         CommandType = "BuildHouse"
	CmdBuildHotel         CommandType = "BuildHotel"
	CmdPayJail            CommandType = "PayJail"
	CmdUseJailCard        CommandType = "UseJailCard"
	CmdEndTurn            CommandType = "EndTurn"
	CmdTransfer           CommandType = "Transfer"
	CmdRequestDeed        CommandType = "RequestDeed"
	CmdConfirmDeedRequest CommandType = "ConfirmDeedRequest"
	CmdBankGiveDeed       CommandType = "BankGiveDeed"
	CmdEndRoom            CommandType = "EndRoom"
)

/*
	CmdRollForOrder -> TurnOrderRollResult -> (last roller) TurnOrderFinalized
	CmdRollDice     -> DiceRolled -> TransactionCompleted* -> PropertyOffer?
	CmdBuyProperty  -> TransactionCompleted -> PropertyPurchased
	CmdConfirmDeedRequest -> DeedRequestResolved -> (applied) TransactionCompleted -> DeedTransferred
*/

// Command is a room-scoped request. ConnID is always the sender; the other
// fields are read depending on Type.
type Command struct {
	Type       CommandType
	ConnID     string
	PlayerID   string
	Color      string
	Settings   Settings
	FromID     string
	ToID       string
	Amount     int
	DeedType   DeedRequestType
	DeedCardID int
	RequestID  string
	Approved   bool
	PropertyID int
}

// Apply validates cmd against r and, only if it is valid, mutates r.
func (e *Engine) Apply(r *Room, cmd Command) ([]Event, error) {
	switch cmd.Type {
	case CmdUpdateColor:
		return e.UpdateColor(r, cmd.ConnID, cmd.PlayerID, cmd.Color)
	case CmdUpdateSettings:
		return e.UpdateSettings(r, cmd.ConnID, cmd.Settings)
	case CmdStartGame:
		return e.StartGame(r, cmd.ConnID)
	case CmdRollForOrder:
		return e.RollForOrder(r, cmd.ConnID)
	case CmdRollDice:
		return e.RollDice(r, cmd.ConnID)
	case CmdBuyProperty:
		return e.BuyProperty(r, cmd.ConnID, cmd.PropertyID)
	case CmdBuildHouse:
		return e.BuildHouse(r, cmd.ConnID, cmd.PropertyID)
	case CmdBuildHotel:
		return e.BuildHotel(r, cmd.ConnID, cmd.PropertyID)
	case CmdPayJail:
		return e.PayJail(r, cmd.ConnID)
	case CmdUseJailCard:
		return e.UseJailCard(r, cmd.ConnID)
	case CmdEndTurn:
		return e.EndTurn(r, cmd.ConnID)
	case CmdTransfer:
		return e.Transfer(r, cmd.ConnID, cmd.FromID, cmd.ToID, cmd.Amount)
	case CmdRequestDeed:
		return e.RequestDeed(r, cmd.ConnID, cmd.DeedType, cmd.DeedCardID)
	case CmdConfirmDeedRequest:
		return e.ConfirmDeedRequest(r, cmd.ConnID, cmd.RequestID, cmd.Approved)
	case CmdBankGiveDeed:
		return e.BankGiveDeed(r, cmd.ConnID, cmd.PlayerID, cmd.DeedCardID)
	case CmdEndRoom:
		return e.EndRoom(r, cmd.ConnID)
	default:
		return nil, fmt.Errorf("%q: %w", cmd.Type, ErrUnsupportedIntent)
	}
}

// EndRoom lets the host close the room. The caller removes it from the
// registry when it sees RoomClosed.
func (e *Engine) EndRoom(r *Room, connID string) ([]Event, error) {
	if !r.isHost(connID) {
		return nil, ErrNotAuthorized
	}
	return []Event{RoomClosed{Reason: "host ended the game"}}, nil
}

func (e *Engine) rollDie() int {
	return e.rng.Intn(6) + 1
}

func (e *Engine) rollPair() [2]int {
	return [2]int{e.rollDie(), e.rollDie()}
}
