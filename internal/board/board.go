// Package board holds the static 40-tile board definition. The table is
// immutable; games clone it into their own mutable tile state.
package board

// Type identifies what kind of stop a tile is.
type Type string

const (
	Property  Type = "PROPERTY"
	Railroad  Type = "RAILROAD"
	Utility   Type = "UTILITY"
	Surprise  Type = "SURPRISE"
	Treasure  Type = "TREASURE"
	Tax       Type = "TAX"
	Corner    Type = "CORNER"
)

// Group is a property color group.
type Group string

const (
	Brown     Group = "BROWN"
	LightBlue Group = "LIGHT_BLUE"
	Pink      Group = "PINK"
	Orange    Group = "ORANGE"
	Red       Group = "RED"
	Yellow    Group = "YELLOW"
	Green     Group = "GREEN"
	DarkBlue  Group = "DARK_BLUE"
	NoGroup   Group = "NONE"
)

// Board geometry. Corner positions are fixed by the layout.
const (
	Size        = 40
	StartPos    = 0
	JailPos     = 10
	VacationPos = 20
	GoToJailPos = 30
)

// Definition is the immutable identity of a tile. Rent holds the base rent
// at index 0 and the rent for 1-4 houses and a hotel at indexes 1-5.
type Definition struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Type      Type   `json:"type"`
	Price     int    `json:"price"`
	Rent      []int  `json:"rent"`
	HouseCost int    `json:"houseCost"`
	Group     Group  `json:"group"`
}

// Purchasable reports whether the tile can be bought or auctioned.
func (d Definition) Purchasable() bool {
	switch d.Type {
	case Property, Railroad, Utility:
		return true
	}
	return false
}

func def(id int, name string, typ Type, price int, group Group, rent []int, houseCost int) Definition {
	return Definition{ID: id, Name: name, Type: typ, Price: price, Rent: rent, HouseCost: houseCost, Group: group}
}

var definitions = []Definition{
	def(0, "Start", Corner, 0, NoGroup, nil, 0),
	def(1, "Salvador", Property, 60, Brown, []int{2, 10, 30, 90, 160, 250}, 50),
	def(2, "Treasure", Treasure, 0, NoGroup, nil, 0),
	def(3, "Rio", Property, 60, Brown, []int{4, 20, 60, 180, 320, 450}, 50),
	def(4, "Income Tax", Tax, 0, NoGroup, nil, 0),
	def(5, "TLV Airport", Railroad, 200, NoGroup, nil, 0),
	def(6, "Tel Aviv", Property, 100, LightBlue, []int{6, 30, 90, 270, 400, 550}, 50),
	def(7, "Surprise", Surprise, 0, NoGroup, nil, 0),
	def(8, "Haifa", Property, 100, LightBlue, []int{6, 30, 90, 270, 400, 550}, 50),
	def(9, "Jerusalem", Property, 120, LightBlue, []int{8, 40, 100, 300, 450, 600}, 50),
	def(10, "In Prison", Corner, 0, NoGroup, nil, 0),
	def(11, "Venice", Property, 140, Pink, []int{10, 50, 150, 450, 625, 750}, 100),
	def(12, "Electric Company", Utility, 150, NoGroup, nil, 0),
	def(13, "Milan", Property, 140, Pink, []int{10, 50, 150, 450, 625, 750}, 100),
	def(14, "Rome", Property, 160, Pink, []int{12, 60, 180, 500, 700, 900}, 100),
	def(15, "MUC Airport", Railroad, 200, NoGroup, nil, 0),
	def(16, "Frankfurt", Property, 180, Orange, []int{14, 70, 200, 550, 750, 950}, 100),
	def(17, "Treasure", Treasure, 0, NoGroup, nil, 0),
	def(18, "Munich", Property, 180, Orange, []int{14, 70, 200, 550, 750, 950}, 100),
	def(19, "Berlin", Property, 200, Orange, []int{16, 80, 220, 600, 800, 1000}, 100),
	def(20, "Vacation", Corner, 0, NoGroup, nil, 0),
	def(21, "Shenzhen", Property, 220, Yellow, []int{18, 90, 250, 700, 875, 1050}, 150),
	def(22, "Surprise", Surprise, 0, NoGroup, nil, 0),
	def(23, "Beijing", Property, 220, Yellow, []int{18, 90, 250, 700, 875, 1050}, 150),
	def(24, "Shanghai", Property, 240, Yellow, []int{20, 100, 300, 750, 925, 1100}, 150),
	def(25, "CDG Airport", Railroad, 200, NoGroup, nil, 0),
	def(26, "Lyon", Property, 260, Green, []int{22, 110, 330, 800, 975, 1150}, 150),
	def(27, "Toulouse", Property, 260, Green, []int{22, 110, 330, 800, 975, 1150}, 150),
	def(28, "Water Company", Utility, 150, NoGroup, nil, 0),
	def(29, "Paris", Property, 280, Green, []int{24, 120, 360, 850, 1025, 1200}, 150),
	def(30, "Go to prison", Corner, 0, NoGroup, nil, 0),
	def(31, "Liverpool", Property, 300, DarkBlue, []int{26, 130, 390, 900, 1100, 1275}, 200),
	def(32, "Manchester", Property, 300, DarkBlue, []int{26, 130, 390, 900, 1100, 1275}, 200),
	def(33, "Treasure", Treasure, 0, NoGroup, nil, 0),
	def(34, "London", Property, 320, DarkBlue, []int{28, 150, 450, 1000, 1200, 1400}, 200),
	def(35, "JFK Airport", Railroad, 200, NoGroup, nil, 0),
	def(36, "Surprise", Surprise, 0, NoGroup, nil, 0),
	def(37, "San Francisco", Property, 350, Red, []int{35, 175, 500, 1100, 1300, 1500}, 200),
	def(38, "Luxury Tax", Tax, 0, NoGroup, nil, 0),
	def(39, "New York", Property, 400, Red, []int{50, 200, 600, 1400, 1700, 2000}, 200),
}

// Tiles returns a fresh copy of the board definition table.
func Tiles() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}
