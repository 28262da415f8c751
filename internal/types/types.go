package types

import (
	"encoding/json"
	"fmt"

	"github.com/DoyleJ11/monopoly-backend/internal/engine"
	pt "github.com/DoyleJ11/monopoly-backend/pkg/types"
)

// ClientMessage is every intent a client can send. Fields not used by an
// intent are left empty.
type ClientMessage struct {
	Type       string           `json:"type"`
	RoomCode   string           `json:"roomCode,omitempty"`
	HostName   string           `json:"hostName,omitempty"`
	PlayerName string           `json:"playerName,omitempty"`
	PlayerID   string           `json:"playerId,omitempty"`
	Color      string           `json:"color,omitempty"`
	Settings   *SettingsPayload `json:"settings,omitempty"`
	FromID     string           `json:"fromId,omitempty"`
	ToID       string           `json:"toId,omitempty"`
	Amount     int              `json:"amount,omitempty"`
	DeedType   string           `json:"deedType,omitempty"`
	DeedCardID int              `json:"deedCardId,omitempty"`
	RequestID  string           `json:"requestId,omitempty"`
	Approved   bool             `json:"approved,omitempty"`
	PropertyID int              `json:"propertyId,omitempty"`
}

// SettingsPayload is a partial update; nil fields keep their current value.
type SettingsPayload struct {
	StartingMoney      *int  `json:"startingMoney,omitempty"`
	DeedCardsPerPlayer *int  `json:"deedCardsPerPlayer,omitempty"`
	StartingProperty   *bool `json:"startingProperty,omitempty"`
}

func (p *SettingsPayload) Apply(base engine.Settings) engine.Settings {
	if p == nil {
		return base
	}
	if p.StartingMoney != nil {
		base.StartingMoney = *p.StartingMoney
	}
	if p.DeedCardsPerPlayer != nil {
		base.DeedCardsPerPlayer = *p.DeedCardsPerPlayer
	}
	if p.StartingProperty != nil {
		base.StartingProperty = *p.StartingProperty
	}
	return base
}

// ServerMessage is the envelope of everything the server sends.
type ServerMessage struct {
	Type string `json:"type"`
	Room string `json:"room,omitempty"`
	Data any    `json:"data,omitempty"`
}

// ErrorData carries a taxonomy Code; Reason narrows an InvalidRequest down to
// the specific rule that was broken.
type ErrorData struct {
	Code    string `json:"code"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

type RoomCreated struct {
	RoomCode string       `json:"roomCode"`
	Room     *engine.Room `json:"gameState"`
}

type JoinedRoom struct {
	PlayerID string       `json:"playerId"`
	Room     *engine.Room `json:"gameState"`
}

type RoomUpdated struct {
	Room *engine.Room `json:"gameState"`
}

func Encode(kind, room string, data any) ([]byte, error) {
	return json.Marshal(ServerMessage{Type: kind, Room: room, Data: data})
}

// EncodeError builds the error event sent back to the originating connection.
func EncodeError(room string, err error) []byte {
	payload, mErr := Encode(pt.EventError, room, ErrorData{
		Code:    engine.Code(err),
		Reason:  engine.Reason(err),
		Message: err.Error(),
	})
	if mErr != nil {
		return []byte(`{"type":"error","data":{"code":"InvalidRequest","message":"internal error"}}`)
	}
	return payload
}

var commands = map[string]engine.CommandType{
	pt.IntentUpdatePlayerColor:  engine.CmdUpdateColor,
	pt.IntentUpdateSettings:     engine.CmdUpdateSettings,
	pt.IntentStartGame:          engine.CmdStartGame,
	pt.IntentTransferMoney:      engine.CmdTransfer,
	pt.IntentRequestDeed:        engine.CmdRequestDeed,
	pt.IntentConfirmDeedRequest: engine.CmdConfirmDeedRequest,
	pt.IntentBankGiveDeed:       engine.CmdBankGiveDeed,
	pt.IntentRollForTurnOrder:   engine.CmdRollForOrder,
	pt.IntentRollDice:           engine.CmdRollDice,
	pt.IntentBuyProperty:        engine.CmdBuyProperty,
	pt.IntentBuildHouse:         engine.CmdBuildHouse,
	pt.IntentBuildHotel:         engine.CmdBuildHotel,
	pt.IntentPayJail:            engine.CmdPayJail,
	pt.IntentUseJailCard:        engine.CmdUseJailCard,
	pt.IntentEndTurn:            engine.CmdEndTurn,
	pt.IntentEndRoom:            engine.CmdEndRoom,
}

// ToEngineCommand turns a room-scoped intent into an engine command. current
// is the room's settings, which a partial settings update is applied to.
func ToEngineCommand(m ClientMessage, connID string, current engine.Settings) (engine.Command, error) {
	typ, ok := commands[m.Type]
	if !ok {
		return engine.Command{}, fmt.Errorf("%q: %w", m.Type, engine.ErrUnsupportedIntent)
	}
	cmd := engine.Command{
		Type:       typ,
		ConnID:     connID,
		PlayerID:   m.PlayerID,
		Color:      m.Color,
		FromID:     m.FromID,
		ToID:       m.ToID,
		Amount:     m.Amount,
		DeedType:   engine.DeedRequestType(m.DeedType),
		DeedCardID: m.DeedCardID,
		RequestID:  m.RequestID,
		Approved:   m.Approved,
		PropertyID: m.PropertyID,
	}
	if typ == engine.CmdUpdateSettings {
		if m.Settings == nil {
			return engine.Command{}, fmt.Errorf("settings required: %w", engine.ErrInvalidRequest)
		}
		cmd.Settings = m.Settings.Apply(current)
	}
	return cmd, nil
}
