package taxonomy

// Other is the fallback sector for articles no lexicon keyword matches. It is
// a classification result, never a lexicon key.
const Other = "Other"

// sectorOrder fixes the enumeration order. Classification tie-breaking keeps
// the first sector reaching the maximum score, so this order is load-bearing.
var sectorOrder = []string{
	"Technology",
	"Healthcare",
	"Finance",
	"Energy",
	"Consumer",
	"Industrial",
	"Real Estate",
	"Communications",
}

// lexicon maps each sector to its weighted keyword list. Keywords are stored
// lower-case; matching is case-insensitive. This table is configuration data:
// editing it changes classification outcomes deterministically.
var lexicon = map[string][]string{
	"Technology": {
		"tech", "software", "ai", "artificial intelligence", "machine learning", "cloud", "cybersecurity",
		"semiconductor", "chip", "digital", "platform", "app", "mobile", "internet", "social media",
		"blockchain", "crypto", "bitcoin", "ethereum", "web3", "metaverse", "vr", "ar", "iot",
	},
	"Healthcare": {
		"healthcare", "medical", "pharmaceutical", "biotech", "drug", "treatment", "therapy", "vaccine",
		"hospital", "clinic", "diagnostic", "device", "fda", "clinical trial", "patient", "doctor",
		"insurance", "medicare", "medicaid", "telemedicine", "digital health",
	},
	"Finance": {
		"bank", "financial", "investment", "trading", "stock", "market", "fund", "etf", "bond",
		"credit", "loan", "mortgage", "insurance", "payment", "fintech", "cryptocurrency",
		"blockchain", "digital currency", "crypto", "bitcoin", "ethereum", "defi", "nft",
	},
	"Energy": {
		"energy", "oil", "gas", "renewable", "solar", "wind", "nuclear", "electric", "utility",
		"petroleum", "refinery", "drilling", "exploration", "green energy", "clean energy",
		"carbon", "emission", "climate", "environmental", "battery", "ev", "electric vehicle",
	},
	"Consumer": {
		"retail", "consumer", "e-commerce", "amazon", "walmart", "target", "shopping", "brand",
		"product", "fashion", "apparel", "food", "beverage", "restaurant", "hotel", "travel",
		"entertainment", "media", "streaming", "netflix", "disney", "gaming",
	},
	"Industrial": {
		"industrial", "manufacturing", "automotive", "aerospace", "defense", "construction",
		"materials", "steel", "aluminum", "chemical", "machinery", "equipment", "logistics",
		"supply chain", "transportation", "shipping", "railroad", "airline",
	},
	"Real Estate": {
		"real estate", "property", "housing", "commercial", "residential", "reit", "mortgage",
		"construction", "development", "leasing", "rental", "apartment", "office", "retail space",
	},
	"Communications": {
		"telecom", "communication", "wireless", "5g", "internet", "broadband", "cable",
		"satellite", "network", "infrastructure", "at&t", "verizon", "t-mobile", "sprint",
	},
}

// Sectors returns the classification targets in enumeration order. Other is
// excluded: it is only ever produced as a fallback.
func Sectors() []string {
	return append([]string(nil), sectorOrder...)
}

// Keywords returns the lexicon for a sector; nil for unknown sectors and for
// Other.
func Keywords(sector string) []string {
	return lexicon[sector]
}
