package engine

import "errors"

var ErrRoomNotFound = errors.New("room not found")
var ErrGameAlreadyStarted = errors.New("game already started")
var ErrRoomFull = errors.New("room is full")
var ErrNotAuthorized = errors.New("not authorized")
var ErrPlayerNotFound = errors.New("player not found")
var ErrNotYourTurn = errors.New("not your turn")
var ErrInJail = errors.New("player is in jail")
var ErrNotInJail = errors.New("player is not in jail")
var ErrInsufficientBalance = errors.New("insufficient balance")
var ErrAlreadyRolled = errors.New("already rolled for turn order")
var ErrInvalidRequest = errors.New("invalid request")

// Specific rejections. On the wire they report code InvalidRequest with the
// specific name in Reason; callers may match ErrInvalidRequest with errors.Is.
var (
	ErrNameTaken         = reason("NameTaken", "name already taken")
	ErrNotStarted        = reason("NotStarted", "game not started")
	ErrTurnOrderPending  = reason("TurnOrderPending", "turn order not decided yet")
	ErrNoTurnOrderPhase  = reason("NoTurnOrderPhase", "not rolling for turn order")
	ErrNotEnoughPlayers  = reason("NotEnoughPlayers", "at least 2 players are required")
	ErrUnknownColor      = reason("UnknownColor", "unknown color")
	ErrUnknownProperty   = reason("UnknownProperty", "unknown property")
	ErrPropertyOwned     = reason("PropertyOwned", "property already owned")
	ErrNotOnProperty     = reason("NotOnProperty", "player is not on this property")
	ErrNotOwner          = reason("NotOwner", "player does not own this")
	ErrHotelBuilt        = reason("HotelBuilt", "property already has a hotel")
	ErrMaxHouses         = reason("MaxHouses", "property already has 4 houses")
	ErrHousesRequired    = reason("HousesRequired", "4 houses are required before a hotel")
	ErrNoJailCard        = reason("NoJailCard", "player has no get out of jail card")
	ErrDeedUnavailable   = reason("DeedUnavailable", "deed card is not available")
	ErrRequestNotFound   = reason("RequestNotFound", "deed request not found")
	ErrUnsupportedIntent = reason("UnsupportedIntent", "unsupported intent")
)

type reasonError struct {
	code string
	msg  string
}

func reason(code, msg string) error { return &reasonError{code: code, msg: msg} }

func (e *reasonError) Error() string { return e.msg }

func (e *reasonError) Is(target error) bool { return target == ErrInvalidRequest }

var codes = []struct {
	err  error
	code string
}{
	{ErrRoomNotFound, "RoomNotFound"},
	{ErrGameAlreadyStarted, "GameAlreadyStarted"},
	{ErrRoomFull, "RoomFull"},
	{ErrNotAuthorized, "NotAuthorized"},
	{ErrPlayerNotFound, "PlayerNotFound"},
	{ErrNotYourTurn, "NotYourTurn"},
	{ErrInJail, "InJail"},
	{ErrNotInJail, "NotInJail"},
	{ErrInsufficientBalance, "InsufficientBalance"},
	{ErrAlreadyRolled, "AlreadyRolled"},
}

// Code returns the error taxonomy name reported to clients.
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "InvalidRequest"
}

// Reason names the specific rejection behind an InvalidRequest, or "".
func Reason(err error) string {
	var re *reasonError
	if errors.As(err, &re) {
		return re.code
	}
	return ""
}
