package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollDice_DoublesKeepTheTurn(t *testing.T) {
	cases := []struct {
		name      string
		dice      []int
		wantIndex int
	}{
		{name: "doubles roll again", dice: []int{3, 3}, wantIndex: 0},
		{name: "non doubles pass the turn", dice: []int{2, 3}, wantIndex: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eng, rng := newTestEngine(t)
			r := newPlayingRoom(t, eng, "Alice", "Bob", "Carol")
			rng.dice(tc.dice...)

			events, err := eng.RollDice(r, connOf("Alice"))
			require.NoError(t, err)
			assert.Equal(t, tc.wantIndex, r.CurrentPlayerIndex)

			rolled, ok := FindEvent[DiceRolled](events)
			require.True(t, ok)
			assert.Equal(t, tc.dice[0]+tc.dice[1], rolled.NewPosition)
			assert.Equal(t, tc.wantIndex, rolled.CurrentPlayerIndex)
			assert.Equal(t, tc.dice, r.DiceRoll)
		})
	}
}

func TestRollDice_WrapsTurnIndex(t *testing.T) {
	eng, rng := newTestEngine(t)
	r := newPlayingRoom(t, eng, "Alice", "Bob")
	r.CurrentPlayerIndex = 1
	rng.dice(1, 5)

	_, err := eng.RollDice(r, connOf("Bob"))
	require.NoError(t, err)
	assert.Equal(t, 0, r.CurrentPlayerIndex)
}

func TestRollDice_Rejections(t *testing.T) {
	eng, _ := newTestEngine(t)
	r := newPlayingRoom(t, eng, "Alice", "Bob")

	_, err := eng.RollDice(r, connOf("Bob"))
	require.ErrorIs(t, err, ErrNotYourTurn)

	_, err = eng.RollDice(r, hostConn)
	require.ErrorIs(t, err, ErrNotYourTurn)

	r.Players[0].InJail = true
	_, err = eng.RollDice(r, connOf("Alice"))
	require.ErrorIs(t, err, ErrInJail)
	r.Players[0].InJail = false

	r.WaitingForTurnOrder = true
	_, err = eng.RollDice(r, connOf("Alice"))
	require.ErrorIs(t, err, ErrTurnOrderPending)

	r.Started = false
	_, err = eng.RollDice(r, connOf("Alice"))
	require.ErrorIs(t, err, ErrNotStarted)

	assert.Zero(t, r.Players[0].Position)
	assert.Empty(t, r.Transactions)
}

func TestRollDice_PaysRent(t *testing.T) {
	eng, rng := newTestEngine(t)
	r := newPlayingRoom(t, eng, "A", "B")
	a, b := r.Players[0], r.Players[1]
	require.Equal(t, "p1", a.ID)
	require.Equal(t, "p2", b.ID)
	prop := r.property(3)
	require.Equal(t, 600, prop.Price)
	prop.Owner = b.ID
	rng.dice(1, 2)

	events, err := eng.RollDice(r, connOf("A"))
	require.NoError(t, err)

	assert.Equal(t, 3, a.Position)
	assert.Equal(t, 14960, a.Balance)
	assert.Equal(t, 15040, b.Balance)
	require.Len(t, r.Transactions, 1)
	tx := r.Transactions[0]
	assert.Equal(t, "p1", tx.From)
	assert.Equal(t, "p2", tx.To)
	assert.Equal(t, 40, tx.Amount)
	assert.Equal(t, ReasonRent, tx.Reason)

	rolled, _ := FindEvent[DiceRolled](events)
	require.NotNil(t, rolled.SpaceEffect)
	assert.Equal(t, EffectRent, rolled.SpaceEffect.Type)
	assert.Equal(t, 40, rolled.SpaceEffect.Amount)
	assert.Equal(t, "B", rolled.SpaceEffect.OwnerName)
}

func TestRollDice_RentScalesWithBuildings(t *testing.T) {
	cases := []struct {
		name   string
		houses int
		hotel  bool
		want   int
	}{
		{name: "base", want: 40},
		{name: "one house", houses: 1, want: 200},
		{name: "four houses", houses: 4, want: 3200},
		{name: "hotel", hotel: true, want: 4500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eng, rng := newTestEngine(t)
			r := newPlayingRoom(t, eng, "A", "B")
			prop := r.property(3)
			prop.Owner = "p2"
			prop.Houses = tc.houses
			prop.HasHotel = tc.hotel
			rng.dice(1, 2)

			_, err := eng.RollDice(r, connOf("A"))
			require.NoError(t, err)
			require.Len(t, r.Transactions, 1)
			assert.Equal(t, tc.want, r.Transactions[0].Amount)
		})
	}
}

func TestRollDice_PassStartBonusBeforeLanding(t *testing.T) {
	eng, rng := newTestEngine(t)
	r := newPlayingRoom(t, eng, "A", "B")
	a := r.Players[0]
	a.Position = 38
	r.property(3).Owner = "p2"
	rng.dice(2, 3)

	events, err := eng.RollDice(r, connOf("A"))
	require.NoError(t, err)
	assert.Equal(t, 3, a.Position)

	require.Len(t, r.Transactions, 2)
	bonus := r.Transactions[0]
	assert.Equal(t, BankID, bonus.From)
	assert.Equal(t, "p1", bonus.To)
	assert.Equal(t, PassStartBonus, bonus.Amount)
	assert.Equal(t, ReasonPassStart, bonus.Reason)
	assert.Equal(t, ReasonRent, r.Transactions[1].Reason)
	assert.Equal(t, 15000+PassStartBonus-40, a.Balance)

	txs := transactionsOf(events)
	require.Len(t, txs, 2)
	assert.Equal(t, ReasonPassStart, txs[0].Reason)

	rolled, _ := FindEvent[DiceRolled](events)
	assert.True(t, rolled.PassedStart)
	assert.Equal(t, 38, rolled.From)
}

func TestRollDice_OffersUnownedCityToMover(t *testing.T) {
	eng, rng := newTestEngine(t)
	r := newPlayingRoom(t, eng, "A", "B")
	rng.dice(1, 2)

	events, err := eng.RollDice(r, connOf("A"))
	require.NoError(t, err)
	assert.Empty(t, r.Transactions)

	offer, ok := FindEvent[PropertyOffer](events)
	require.True(t, ok)
	assert.Equal(t, connOf("A"), offer.Recipient())
	assert.Equal(t, 3, offer.Property.ID)

	rolled, _ := FindEvent[DiceRolled](events)
	assert.Equal(t, EffectProperty, rolled.SpaceEffect.Type)
	assert.True(t, rolled.SpaceEffect.CanBuy)
}

func TestRollDice_GoToJailEndsTurnEvenOnDoubles(t *testing.T) {
	eng, rng := newTestEngine(t)
	r := newPlayingRoom(t, eng, "A", "B")
	a := r.Players[0]
	a.Position = 26
	rng.dice(2, 2)

	_, err := eng.RollDice(r, connOf("A"))
	require.NoError(t, err)
	assert.True(t, a.InJail)
	assert.Equal(t, JailTurns, a.JailTurns)
	assert.Equal(t, JailPosition, a.Position)
	assert.Equal(t, 1, r.CurrentPlayerIndex)
}

func TestRollDice_TaxMayGoNegative(t *testing.T) {
	eng, rng := newTestEngine(t)
	r := newPlayingRoom(t, eng, "A", "B")
	a := r.Players[0]
	a.Balance = 500
	bank := r.Bank.Balance
	rng.dice(1, 3)

	_, err := eng.RollDice(r, connOf("A"))
	require.NoError(t, err)
	assert.Equal(t, -1500, a.Balance)
	assert.Equal(t, bank+2000, r.Bank.Balance)
	require.Len(t, r.Transactions, 1)
	assert.Equal(t, ReasonTax, r.Transactions[0].Reason)
}

func TestRollDice_ChanceCards(t *testing.T) {
	cases := []struct {
		name  string
		card  int
		check func(t *testing.T, r *Room, effect *SpaceEffect)
	}{
		{
			name: "money",
			card: 0,
			check: func(t *testing.T, r *Room, effect *SpaceEffect) {
				assert.Equal(t, 17000, r.Players[0].Balance)
			},
		},
		{
			name: "fine",
			card: 1,
			check: func(t *testing.T, r *Room, effect *SpaceEffect) {
				assert.Equal(t, 14500, r.Players[0].Balance)
			},
		},
		{
			name: "advance to start pays the bonus",
			card: 4,
			check: func(t *testing.T, r *Room, effect *SpaceEffect) {
				assert.Zero(t, r.Players[0].Position)
				assert.Equal(t, 15000+PassStartBonus, r.Players[0].Balance)
				require.NotNil(t, effect.Then)
				assert.Equal(t, EffectStart, effect.Then.Type)
			},
		},
		{
			name: "move lands on owned city and pays rent",
			card: 5,
			check: func(t *testing.T, r *Room, effect *SpaceEffect) {
				assert.Equal(t, 24, r.Players[0].Position)
				require.NotNil(t, effect.Then)
				assert.Equal(t, EffectRent, effect.Then.Type)
				assert.Equal(t, 15000-200, r.Players[0].Balance)
				assert.Equal(t, 15000+200, r.Players[1].Balance)
			},
		},
		{
			name: "jail ends the turn",
			card: 6,
			check: func(t *testing.T, r *Room, effect *SpaceEffect) {
				assert.True(t, r.Players[0].InJail)
				assert.Equal(t, JailPosition, r.Players[0].Position)
				assert.Equal(t, 1, r.CurrentPlayerIndex)
			},
		},
		{
			name: "get out of jail card is kept",
			card: 7,
			check: func(t *testing.T, r *Room, effect *SpaceEffect) {
				assert.True(t, r.Players[0].HasGetOutOfJailCard)
				assert.Len(t, r.Players[0].ChanceCards, 1)
			},
		},
		{
			name: "birthday collects from every other player",
			card: 8,
			check: func(t *testing.T, r *Room, effect *SpaceEffect) {
				assert.Equal(t, 15200, r.Players[0].Balance)
				assert.Equal(t, 14900, r.Players[1].Balance)
				assert.Equal(t, 14900, r.Players[2].Balance)
				assert.Equal(t, 200, effect.Amount)
			},
		},
		{
			name: "repairs charge per building",
			card: 9,
			check: func(t *testing.T, r *Room, effect *SpaceEffect) {
				assert.Equal(t, 1500, effect.Amount)
				assert.Equal(t, 13500, r.Players[0].Balance)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eng, rng := newTestEngine(t)
			r := newPlayingRoom(t, eng, "A", "B", "C")
			r.property(24).Owner = "p2"
			r.property(1).Owner = "p1"
			r.property(1).Houses = 2
			r.property(3).Owner = "p1"
			r.property(3).HasHotel = true
			rng.dice(1, 1)
			rng.ints(tc.card)

			events, err := eng.RollDice(r, connOf("A"))
			require.NoError(t, err)
			rolled, _ := FindEvent[DiceRolled](events)
			require.NotNil(t, rolled.SpaceEffect)
			assert.Equal(t, EffectChance, rolled.SpaceEffect.Type)
			require.NotNil(t, rolled.SpaceEffect.Card)
			assert.Equal(t, tc.card+1, rolled.SpaceEffect.Card.ID)
			tc.check(t, r, rolled.SpaceEffect)
		})
	}
}

func TestEndTurn(t *testing.T) {
	eng, _ := newTestEngine(t)
	r := newPlayingRoom(t, eng, "A", "B")

	_, err := eng.EndTurn(r, connOf("B"))
	require.ErrorIs(t, err, ErrNotYourTurn)

	events, err := eng.EndTurn(r, connOf("A"))
	require.NoError(t, err)
	assert.Equal(t, 1, r.CurrentPlayerIndex)
	ended, ok := FindEvent[TurnEnded](events)
	require.True(t, ok)
	assert.Equal(t, "p2", ended.CurrentPlayerID)
}

func TestEndTurn_ServesJailTime(t *testing.T) {
	eng, _ := newTestEngine(t)
	r := newPlayingRoom(t, eng, "A", "B")
	a := r.Players[0]
	sendToJail(a)

	for turn := 1; turn <= JailTurns; turn++ {
		r.CurrentPlayerIndex = 0
		events, err := eng.EndTurn(r, connOf("A"))
		require.NoError(t, err)
		ended, _ := FindEvent[TurnEnded](events)
		if turn < JailTurns {
			assert.True(t, a.InJail)
			assert.False(t, ended.ReleasedFromJail)
		} else {
			assert.False(t, a.InJail)
			assert.True(t, ended.ReleasedFromJail)
		}
	}
}

func TestPayJail(t *testing.T) {
	eng, _ := newTestEngine(t)
	r := newPlayingRoom(t, eng, "A", "B")
	a := r.Players[0]

	_, err := eng.PayJail(r, connOf("A"))
	require.ErrorIs(t, err, ErrNotInJail)

	sendToJail(a)
	a.Balance = JailFee - 1
	_, err = eng.PayJail(r, connOf("A"))
	require.ErrorIs(t, err, ErrInsufficientBalance)
	assert.True(t, a.InJail)

	a.Balance = 1000
	events, err := eng.PayJail(r, connOf("A"))
	require.NoError(t, err)
	assert.False(t, a.InJail)
	assert.Zero(t, a.JailTurns)
	assert.Equal(t, 1000-JailFee, a.Balance)
	assert.True(t, ContainsEvent(events, "jail-payment-accepted"))
	require.Len(t, r.Transactions, 1)
	assert.Equal(t, ReasonJailFee, r.Transactions[0].Reason)
}

func TestUseJailCard(t *testing.T) {
	eng, _ := newTestEngine(t)
	r := newPlayingRoom(t, eng, "A", "B")
	a := r.Players[0]

	_, err := eng.UseJailCard(r, connOf("A"))
	require.ErrorIs(t, err, ErrNotInJail)

	sendToJail(a)
	_, err = eng.UseJailCard(r, connOf("A"))
	require.ErrorIs(t, err, ErrNoJailCard)

	card := DefaultContent().ChanceCards[7]
	a.ChanceCards = append(a.ChanceCards, card)
	a.HasGetOutOfJailCard = true

	events, err := eng.UseJailCard(r, connOf("A"))
	require.NoError(t, err)
	assert.False(t, a.InJail)
	assert.False(t, a.HasGetOutOfJailCard)
	assert.Empty(t, a.ChanceCards)
	assert.True(t, ContainsEvent(events, "jail-card-used"))
}
