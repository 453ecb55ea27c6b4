package catalog

import "strings"

// District is one entry of the fixed district code table.
type District struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// Districts is the canonical district table for West Bengal. Codes are
// non-contiguous and must stay exactly as the model was trained on them;
// definition order is the tie-break order for Match.
var Districts = []District{
	{0, "24 parganas north"},
	{6, "24 parganas south"},
	{12, "alipurduar"},
	{18, "bankura"},
	{24, "birbhum"},
	{30, "coochbehar"},
	{36, "darjeeling"},
	{42, "dinajpur dakshin"},
	{48, "dinajpur uttar"},
	{54, "hooghly"},
	{60, "howrah"},
	{66, "jalpaiguri"},
	{72, "jhargram"},
	{75, "kalimpong"},
	{78, "maldah"},
	{84, "medinipur east"},
	{90, "medinipur west"},
	{96, "murshidabad"},
	{102, "nadia"},
	{108, "paschim bardhaman"},
	{111, "purba bardhaman"},
	{117, "purulia"},
}

// States maps state codes to display names. The deployed model covers a
// single state.
var States = map[int]string{
	0: "West Bengal",
}

// Crops maps crop codes to display names.
var Crops = map[int]string{
	0: "Arhar/Tur", 1: "Bajra", 2: "Barley", 3: "Castor seed",
	4: "Coconut", 5: "Cotton(lint)", 6: "Gram", 7: "Groudnut",
	8: "Horse-gram", 9: "Jowar", 10: "Jute", 11: "Khesari",
	12: "Linseed", 13: "Maize", 14: "Masoor", 15: "Mesta",
	16: "Moong(Green Gram)", 17: "Moth", 18: "Niger seed",
	19: "Other Kharif pulses", 20: "Other Rabi pulses",
	21: "Peas & Beans (Pulses)", 22: "Potato", 23: "Ragi",
	24: "Rapeseed &Mustard", 25: "Rice", 26: "Safflower",
	27: "Sannhamp", 28: "Sesamum", 29: "Small millets",
	30: "Soyabean", 31: "Sugarcane", 32: "Sunflower",
	33: "Tobacco", 34: "Urad", 35: "Wheat",
}

// Seasons maps season codes to display names.
var Seasons = map[int]string{
	0: "Autumn", 1: "Kharif", 2: "Rabi", 3: "Summer", 4: "Whole Year",
}

// Match resolves a free-text place name from a geocoder against the district
// table. Matching is deliberately naive substring matching, first hit in
// definition order wins: the first pass requires the district name to be
// contained in the input, the second pass accepts containment in either
// direction. A miss is a normal outcome, not an error.
func Match(freeText string) (District, bool) {
	d := strings.ToLower(strings.TrimSpace(freeText))
	if d == "" {
		return District{}, false
	}

	for _, entry := range Districts {
		if strings.Contains(d, entry.Name) {
			return entry, true
		}
	}

	for _, entry := range Districts {
		if strings.Contains(entry.Name, d) || strings.Contains(d, entry.Name) {
			return entry, true
		}
	}

	return District{}, false
}

// ValidState reports whether code is a known state code.
func ValidState(code int) bool {
	_, ok := States[code]
	return ok
}

// ValidDistrict reports whether code is a known district code.
func ValidDistrict(code int) bool {
	for _, d := range Districts {
		if d.Code == code {
			return true
		}
	}
	return false
}

// ValidCrop reports whether code is a known crop code.
func ValidCrop(code int) bool {
	_, ok := Crops[code]
	return ok
}

// ValidSeason reports whether code is a known season code.
func ValidSeason(code int) bool {
	_, ok := Seasons[code]
	return ok
}
