package engine

// Content is the static table data a room is played on. It is never mutated
// after construction and is shared by every room.
type Content struct {
	Cells       []Cell
	DeedCards   []DeedCard
	ChanceCards []ChanceCard
	Palette     []string
}

func city(id int, name, color string, price, rent int, houses [4]int, hotel, housePrice int) Cell {
	return Cell{ID: id, Name: name, Type: CellCity, Deed: &CityDeed{
		Price:          price,
		Rent:           rent,
		RentWithHouses: houses,
		RentWithHotel:  hotel,
		HousePrice:     housePrice,
		Color:          color,
	}}
}

var defaultCells = []Cell{
	{ID: 0, Name: "Start", Type: CellStart},
	city(1, "Nakhon Pathom", "brown", 600, 20, [4]int{100, 300, 900, 1600}, 2500, 500),
	{ID: 2, Name: "Chance", Type: CellChance},
	city(3, "Bangkok", "brown", 600, 40, [4]int{200, 600, 1800, 3200}, 4500, 500),
	{ID: 4, Name: "Income Tax", Type: CellTax, Amount: 2000},
	{ID: 5, Name: "Hua Lamphong Station", Type: CellStation},
	city(6, "Bobae Market", "lightblue", 1000, 60, [4]int{300, 900, 2700, 4000}, 5500, 500),
	{ID: 7, Name: "Chance", Type: CellChance},
	city(8, "Yaowarat", "lightblue", 1000, 60, [4]int{300, 900, 2700, 4000}, 5500, 500),
	city(9, "Chanthaburi", "lightblue", 1200, 80, [4]int{400, 1000, 3000, 4500}, 6000, 500),
	{ID: 10, Name: "Jail", Type: CellJail},
	city(11, "Kanchanaburi", "pink", 1400, 100, [4]int{500, 1500, 4500, 6250}, 7500, 1000),
	{ID: 12, Name: "Electricity Authority", Type: CellUtility},
	city(13, "Rayong", "pink", 1400, 100, [4]int{500, 1500, 4500, 6250}, 7500, 1000),
	city(14, "Sukhothai", "pink", 1600, 120, [4]int{600, 1800, 5000, 7000}, 9000, 1000),
	{ID: 15, Name: "Chiang Mai Station", Type: CellStation},
	city(16, "Phuket", "orange", 1800, 140, [4]int{700, 2000, 5500, 7500}, 9500, 1000),
	{ID: 17, Name: "Chance", Type: CellChance},
	city(18, "Surat Thani", "orange", 1800, 140, [4]int{700, 2000, 5500, 7500}, 9500, 1000),
	city(19, "Songkhla", "orange", 2000, 160, [4]int{800, 2200, 6000, 8000}, 10000, 1000),
	{ID: 20, Name: "Free Parking", Type: CellFree},
	city(21, "Phetchaburi", "red", 2200, 180, [4]int{900, 2500, 7000, 8750}, 10500, 1500),
	{ID: 22, Name: "Chance", Type: CellChance},
	city(23, "Chiang Mai", "red", 2200, 180, [4]int{900, 2500, 7000, 8750}, 10500, 1500),
	city(24, "Chiang Rai", "red", 2400, 200, [4]int{1000, 3000, 7500, 9250}, 11000, 1500),
	{ID: 25, Name: "Hat Yai Station", Type: CellStation},
	city(26, "Mae Hong Son", "yellow", 2600, 220, [4]int{1100, 3300, 8000, 9750}, 11500, 1500),
	city(27, "Lampang", "yellow", 2600, 220, [4]int{1100, 3300, 8000, 9750}, 11500, 1500),
	{ID: 28, Name: "Waterworks Authority", Type: CellUtility},
	city(29, "Korat", "yellow", 2800, 240, [4]int{1200, 3600, 8500, 10250}, 12000, 1500),
	{ID: 30, Name: "Go To Jail", Type: CellGoToJail},
	city(31, "Dream World", "green", 3000, 260, [4]int{1300, 3900, 9000, 11000}, 12750, 2000),
	city(32, "Surin", "green", 3000, 260, [4]int{1300, 3900, 9000, 11000}, 12750, 2000),
	{ID: 33, Name: "Chance", Type: CellChance},
	city(34, "Ubon Ratchathani", "green", 3200, 280, [4]int{1500, 4500, 10000, 12000}, 14000, 2000),
	{ID: 35, Name: "Don Mueang Station", Type: CellStation},
	{ID: 36, Name: "Chance", Type: CellChance},
	city(37, "Don Mueang", "darkblue", 3500, 350, [4]int{1750, 5000, 11000, 13000}, 15000, 2000),
	{ID: 38, Name: "Luxury Tax", Type: CellTax, Amount: 1000},
	city(39, "Sao Ching Cha", "darkblue", 4000, 500, [4]int{2000, 6000, 14000, 17000}, 20000, 2000),
}

var defaultDeedCards = []DeedCard{
	{ID: 1, Name: "Bangkok", Price: 600},
	{ID: 2, Name: "Nakhon Pathom", Price: 600},
	{ID: 3, Name: "Central Hotel", Price: 2000},
	{ID: 4, Name: "Garden Hotel", Price: 2000},
	{ID: 5, Name: "Bobae Market", Price: 1000},
	{ID: 6, Name: "Yaowarat", Price: 1000},
	{ID: 7, Name: "Chanthaburi", Price: 1200},
	{ID: 8, Name: "Kanchanaburi", Price: 1400},
	{ID: 9, Name: "Electricity Authority", Price: 1500},
	{ID: 10, Name: "Rayong", Price: 1400},
	{ID: 11, Name: "Sukhothai", Price: 1600},
	{ID: 12, Name: "Emerald Hotel", Price: 2000},
	{ID: 13, Name: "Phuket", Price: 1800},
	{ID: 14, Name: "Surat Thani", Price: 1800},
	{ID: 15, Name: "Songkhla", Price: 2000},
	{ID: 16, Name: "Phetchaburi", Price: 2200},
	{ID: 17, Name: "Chiang Mai", Price: 2200},
	{ID: 18, Name: "Chiang Rai", Price: 2400},
	{ID: 19, Name: "Grand Jomtien", Price: 2000},
	{ID: 20, Name: "Mae Hong Son", Price: 2600},
	{ID: 21, Name: "Lampang", Price: 2600},
	{ID: 22, Name: "Waterworks Authority", Price: 1500},
	{ID: 23, Name: "Korat", Price: 2800},
	{ID: 24, Name: "Dream World", Price: 3000},
	{ID: 25, Name: "Surin", Price: 3000},
	{ID: 26, Name: "Ubon Ratchathani", Price: 3200},
	{ID: 27, Name: "Novotel", Price: 2000},
	{ID: 28, Name: "Don Mueang", Price: 3500},
	{ID: 29, Name: "Sao Ching Cha", Price: 4000},
}

var defaultChanceCards = []ChanceCard{
	{ID: 1, Text: "Bank error in your favour. Collect 2000.", Kind: ChanceMoney, Amount: 2000},
	{ID: 2, Text: "Doctor's fee. Pay 500.", Kind: ChanceMoney, Amount: -500},
	{ID: 3, Text: "Your building loan matures. Collect 1500.", Kind: ChanceMoney, Amount: 1500},
	{ID: 4, Text: "Speeding fine. Pay 150.", Kind: ChanceMoney, Amount: -150},
	{ID: 5, Text: "Advance to Start.", Kind: ChanceMove, Position: 0},
	{ID: 6, Text: "Take a trip to Chiang Rai.", Kind: ChanceMove, Position: 24},
	{ID: 7, Text: "Go directly to jail.", Kind: ChanceJail},
	{ID: 8, Text: "Get out of jail free. Keep this card until needed.", Kind: ChanceGetOutOfJail},
	{ID: 9, Text: "It is your birthday. Collect 100 from every player.", Kind: ChanceBirthday, Amount: 100},
	{ID: 10, Text: "General repairs. Pay 250 per house and 1000 per hotel.", Kind: ChanceRepair, Amount: 250, HotelAmount: 1000},
}

var defaultPalette = []string{"#EC4899", "#FFFFFF", "#000000", "#EF4444", "#10B981", "#3B82F6"}

// DefaultContent returns the standard 40 cell board with its deed and chance decks.
func DefaultContent() *Content {
	return &Content{
		Cells:       defaultCells,
		DeedCards:   defaultDeedCards,
		ChanceCards: defaultChanceCards,
		Palette:     defaultPalette,
	}
}

func (c Cell) rent(p *Property) int {
	if c.Deed == nil || p == nil {
		return 0
	}
	switch {
	case p.HasHotel:
		return c.Deed.RentWithHotel
	case p.Houses > 0:
		return c.Deed.RentWithHouses[min(p.Houses, MaxHouses)-1]
	default:
		return c.Deed.Rent
	}
}
