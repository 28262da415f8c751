// Package types names the messages exchanged between clients and the game server.
//
// Every client message is a JSON object with a "type" field holding one of the
// Intent* values and a "roomCode" field (except create-room). Every server
// message is a JSON object {"type": <Event*>, "room": <code>, "data": {...}}.
package types

// Client -> Server
const (
	IntentCreateRoom         = "create-room"          // hostName, settings?
	IntentJoinRoom           = "join-room"            // roomCode, playerName
	IntentRejoinAsHost       = "rejoin-as-host"       // roomCode
	IntentRejoinAsPlayer     = "rejoin-as-player"     // roomCode, playerName
	IntentUpdatePlayerColor  = "update-player-color"  // roomCode, playerId, color
	IntentUpdateSettings     = "update-settings"      // roomCode, settings
	IntentStartGame          = "start-game"           // roomCode
	IntentTransferMoney      = "transfer-money"       // roomCode, fromId, toId, amount
	IntentRequestDeed        = "request-deed"         // roomCode, deedType, deedCardId
	IntentConfirmDeedRequest = "confirm-deed-request" // roomCode, requestId, approved
	IntentBankGiveDeed       = "bank-give-deed"       // roomCode, playerId, deedCardId
	IntentRollForTurnOrder   = "roll-for-turn-order"  // roomCode
	IntentRollDice           = "roll-dice"            // roomCode
	IntentBuyProperty        = "buy-property"         // roomCode, propertyId
	IntentBuildHouse         = "build-house"          // roomCode, propertyId
	IntentBuildHotel         = "build-hotel"          // roomCode, propertyId
	IntentPayJail            = "pay-jail"             // roomCode
	IntentUseJailCard        = "use-jail-card"        // roomCode
	IntentEndTurn            = "end-turn"             // roomCode
	IntentEndRoom            = "end-room"             // roomCode
)

// Server -> Client
const (
	EventRoomCreated          = "room-created"
	EventJoinedRoom           = "joined-room"
	EventRoomUpdated          = "room-updated" // full snapshot
	EventPlayerJoined         = "player-joined"
	EventPlayerLeft           = "player-left"
	EventPlayerReconnected    = "player-reconnected"
	EventHostReconnected      = "host-reconnected"
	EventPlayerDisconnected   = "player-disconnected"
	EventPlayerColorUpdated   = "player-color-updated"
	EventSettingsUpdated      = "settings-updated"
	EventRoomStarted          = "room-started"
	EventTurnOrderRollStarted = "turn-order-roll-started"
	EventTurnOrderRollResult  = "turn-order-roll-result"
	EventTurnOrderFinalized   = "turn-order-finalized"
	EventDiceRolled           = "dice-rolled"
	EventPropertyOffer        = "property-offer"
	EventPropertyPurchased    = "property-purchased"
	EventHouseBuilt           = "house-built"
	EventHotelBuilt           = "hotel-built"
	EventJailPaymentAccepted  = "jail-payment-accepted"
	EventJailCardUsed         = "jail-card-used"
	EventTurnEnded            = "turn-ended"
	EventTransactionCompleted = "transaction-completed"
	EventDeedRequestCreated   = "deed-request-created"
	EventDeedRequestResolved  = "deed-request-resolved"
	EventDeedTransferred      = "deed-transferred"
	EventRoomClosed           = "room-closed"
	EventError                = "error"
)
