package catalog

// Static reference data for the sable economy: classes, equipment tiers and
// reward constants. Everything in this package is read-only at runtime.

type Class string

const (
	ClassChevalier Class = "chevalier"
	ClassSamourai  Class = "samourai"
	ClassMage      Class = "mage"
)

type Category string

const (
	CategoryArme   Category = "arme"
	CategoryArmure Category = "armure"
)

// Reward and progression constants, shared by the economy service and the
// command layer (help/tutorial embeds quote them).
const (
	SablePerMessage     int64 = 10
	SablePerVoiceMinute int64 = 5
	SablePerBoost       int64 = 500
	StartingSable       int64 = 50
	DailyBaseSable      int64 = 200
	DailyStreakStep     int64 = 10
	DailyStreakCap            = 14
	PrestigeLevel             = 100
	TutorialSable       int64 = 100
)

// Item is a single equipment tier. Power holds the weapon's puissance or the
// armor's defense depending on the category it is listed under.
type Item struct {
	Name     string
	Cost     int64
	Power    int64
	MinLevel int
}

type ClassInfo struct {
	Emoji       string
	Description string
	RoleColor   int
	Armes       []Item
	Armures     []Item
}

var Classes = map[Class]ClassInfo{
	ClassChevalier: {
		Emoji:       "🛡️",
		Description: "Inébranlable et puissant",
		RoleColor:   0xC0C0C0,
		Armes: []Item{
			{Name: "Épée de bronze", Cost: 100, Power: 10, MinLevel: 1},
			{Name: "Épée de fer", Cost: 300, Power: 25, MinLevel: 1},
			{Name: "Épée d'acier", Cost: 1000, Power: 50, MinLevel: 2},
			{Name: "Lame légendaire du Roi", Cost: 5000, Power: 150, MinLevel: 5},
			{Name: "Épée des anciens dieux", Cost: 15000, Power: 400, MinLevel: 10},
			{Name: "Excalibur - Lame suprême", Cost: 50000, Power: 1200, MinLevel: 20},
		},
		Armures: []Item{
			{Name: "Armure de cuir", Cost: 150, Power: 15, MinLevel: 1},
			{Name: "Armure de fer", Cost: 400, Power: 35, MinLevel: 1},
			{Name: "Armure d'acier forgé", Cost: 1500, Power: 75, MinLevel: 2},
			{Name: "Armure légendaire du Roi", Cost: 6000, Power: 200, MinLevel: 5},
			{Name: "Armure des anciens dieux", Cost: 18000, Power: 550, MinLevel: 10},
			{Name: "Armure indestructible de Hephaïstos", Cost: 60000, Power: 1600, MinLevel: 20},
		},
	},
	ClassSamourai: {
		Emoji:       "⚔️",
		Description: "Rapide et tranchant",
		RoleColor:   0xFF8C00,
		Armes: []Item{
			{Name: "Katana en bois", Cost: 80, Power: 8, MinLevel: 1},
			{Name: "Katana de bronze", Cost: 250, Power: 22, MinLevel: 1},
			{Name: "Katana de fer forgé", Cost: 900, Power: 48, MinLevel: 2},
			{Name: "Kusanagi - L'épée de la légende", Cost: 4500, Power: 140, MinLevel: 5},
			{Name: "Murasama - Lame de tempête", Cost: 13000, Power: 380, MinLevel: 10},
			{Name: "Honjo Masamune - Lame immortelle", Cost: 45000, Power: 1100, MinLevel: 20},
		},
		Armures: []Item{
			{Name: "Armure de soie", Cost: 120, Power: 12, MinLevel: 1},
			{Name: "Armure de cuir renforcé", Cost: 350, Power: 30, MinLevel: 1},
			{Name: "Armure de laques", Cost: 1200, Power: 65, MinLevel: 2},
			{Name: "Armure légendaire du Shogun", Cost: 5500, Power: 180, MinLevel: 5},
			{Name: "Armure de samouraï ancestral", Cost: 16000, Power: 520, MinLevel: 10},
			{Name: "Armure du Daimyo éternel", Cost: 55000, Power: 1550, MinLevel: 20},
		},
	},
	ClassMage: {
		Emoji:       "✨",
		Description: "Mystique et puissant",
		RoleColor:   0x8A2BE2,
		Armes: []Item{
			{Name: "Bâton d'apprenti", Cost: 120, Power: 12, MinLevel: 1},
			{Name: "Bâton de sorcier", Cost: 350, Power: 28, MinLevel: 1},
			{Name: "Bâton des anciens", Cost: 1100, Power: 55, MinLevel: 2},
			{Name: "Bâton du Sorcier Suprême", Cost: 5500, Power: 160, MinLevel: 5},
			{Name: "Bâton du Archmage", Cost: 14000, Power: 420, MinLevel: 10},
			{Name: "Bâton de Morgue - Source infinie de magie", Cost: 48000, Power: 1250, MinLevel: 20},
		},
		Armures: []Item{
			{Name: "Robe de novice", Cost: 100, Power: 10, MinLevel: 1},
			{Name: "Robe de magicien", Cost: 300, Power: 25, MinLevel: 1},
			{Name: "Robe des sages", Cost: 1000, Power: 60, MinLevel: 2},
			{Name: "Robe légendaire de Merlin", Cost: 5000, Power: 170, MinLevel: 5},
			{Name: "Robe du Grand Mage", Cost: 15000, Power: 580, MinLevel: 10},
			{Name: "Robe de l'Enchanteur Éternel", Cost: 52000, Power: 1700, MinLevel: 20},
		},
	},
}

// ClassNames lists classes in their display order.
var ClassNames = []Class{ClassChevalier, ClassSamourai, ClassMage}

func ValidClass(c Class) bool {
	_, ok := Classes[c]
	return ok
}

// Items returns the equipment tiers for a class and category, nil if either
// is unknown.
func Items(class Class, category Category) []Item {
	info, ok := Classes[class]
	if !ok {
		return nil
	}
	switch category {
	case CategoryArme:
		return info.Armes
	case CategoryArmure:
		return info.Armures
	default:
		return nil
	}
}

// ItemAt resolves a 1-based tier number within a class/category.
func ItemAt(class Class, category Category, tier int) (Item, bool) {
	items := Items(class, category)
	if tier < 1 || tier > len(items) {
		return Item{}, false
	}
	return items[tier-1], true
}

// FindItem resolves an equipped item reference by name. The empty name means
// nothing equipped.
func FindItem(class Class, category Category, name string) (Item, bool) {
	if name == "" {
		return Item{}, false
	}
	for _, item := range Items(class, category) {
		if item.Name == name {
			return item, true
		}
	}
	return Item{}, false
}
