package engine

import "fmt"

// Transaction reasons.
const (
	ReasonTransfer  = "transfer"
	ReasonRent      = "rent"
	ReasonTax       = "tax"
	ReasonPassStart = "pass-start"
	ReasonPurchase  = "purchase"
	ReasonBuild     = "build"
	ReasonJailFee   = "jail-fee"
	ReasonChance    = "chance"
	ReasonDeedBuy   = "deed-buy"
	ReasonDeedSell  = "deed-sell"
)

type overdraft bool

const (
	// mustHaveFunds rejects a debit that would take a player below zero.
	mustHaveFunds overdraft = false
	// allowOverdraft applies obligatory payments such as rent and tax even
	// when the payer cannot cover them.
	allowOverdraft overdraft = true
)

// transfer is the only place balances change. It moves amount from one party
// to another and appends exactly one transaction.
func (e *Engine) transfer(r *Room, fromID, toID string, amount int, why string, od overdraft) (TransactionCompleted, error) {
	if amount <= 0 {
		return TransactionCompleted{}, fmt.Errorf("amount %d: %w", amount, ErrInvalidRequest)
	}
	from := r.party(fromID)
	to := r.party(toID)
	if from == nil || to == nil {
		return TransactionCompleted{}, ErrPlayerNotFound
	}
	if from == to {
		return TransactionCompleted{}, fmt.Errorf("sender and receiver are the same: %w", ErrInvalidRequest)
	}
	if !from.IsBank && od == mustHaveFunds && from.Balance < amount {
		return TransactionCompleted{}, ErrInsufficientBalance
	}

	from.Balance -= amount
	to.Balance += amount

	tx := Transaction{
		ID:        len(r.Transactions) + 1,
		From:      from.ID,
		To:        to.ID,
		FromName:  from.Name,
		ToName:    to.Name,
		Amount:    amount,
		Reason:    why,
		Timestamp: e.now(),
	}
	r.Transactions = append(r.Transactions, tx)
	return TransactionCompleted{Transaction: tx, FromBalance: from.Balance, ToBalance: to.Balance}, nil
}

// Transfer moves money on request. The host may move money between any two
// parties including the bank; a player may only send their own money.
func (e *Engine) Transfer(r *Room, connID, fromID, toID string, amount int) ([]Event, error) {
	if fromID == "" || toID == "" || amount <= 0 {
		return nil, ErrInvalidRequest
	}
	if r.party(fromID) == nil || r.party(toID) == nil {
		return nil, ErrPlayerNotFound
	}
	if !r.isHost(connID) {
		sender := r.playerByConn(connID)
		if sender == nil || sender.ID != fromID {
			return nil, ErrNotAuthorized
		}
	}
	done, err := e.transfer(r, fromID, toID, amount, ReasonTransfer, mustHaveFunds)
	if err != nil {
		return nil, err
	}
	return []Event{done}, nil
}

// TotalMoney is the sum of every balance in the room, bank included.
func TotalMoney(r *Room) int {
	total := r.Bank.Balance
	for _, p := range r.Players {
		total += p.Balance
	}
	return total
}
