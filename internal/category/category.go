// Package category maps the emoji-decorated labels of the expense app onto
// the household's canonical category vocabulary.
package category

import "gagyebu/internal/models"

// Canonical categories, in the order the budget screens list them.
const (
	Food        = "식비"
	Transport   = "교통비"
	Living      = "생활비"
	Car         = "차량유지비"
	Date        = "데이트"
	Utilities   = "공과금"
	Allowance   = "용돈"
	Health      = "건강"
	Family      = "가족"
	Insurance   = "보험"
	Occasions   = "경조사"
	Other       = "기타"
	Travel      = "여행"
	Unspecified = models.UnspecifiedCategory
)

var canonical = []string{
	Food, Transport, Living, Car, Date, Utilities, Allowance,
	Health, Family, Insurance, Occasions, Other, Travel,
}

// decorated holds the labels seen in exports. Matching is exact: a label with
// different decoration falls through unchanged.
var decorated = map[string]string{
	"🍟식비":     Food,
	"🍚식비":     Food,
	"🍽식비":     Food,
	"🍽️식비":    Food,
	"🚌교통비":    Transport,
	"🚇교통비":    Transport,
	"🏠생활비":    Living,
	"🛒생활비":    Living,
	"🚗차량유지비":  Car,
	"⛽차량유지비":  Car,
	"💑데이트":    Date,
	"❤️데이트":   Date,
	"💡공과금":    Utilities,
	"🧾공과금":    Utilities,
	"💰용돈":     Allowance,
	"💵용돈":     Allowance,
	"💊건강":     Health,
	"🏥건강":     Health,
	"👪가족":     Family,
	"👨‍👩‍👧가족": Family,
	"🛡보험":     Insurance,
	"🛡️보험":    Insurance,
	"💐경조사":    Occasions,
	"🎁경조사":    Occasions,
	"📦기타":     Other,
	"✈️여행":    Travel,
	"🧳여행":     Travel,
}

// Normalize returns the canonical label for name. Nil input yields
// Unspecified; any other unknown label, empty included, is returned as is.
func Normalize(name *string) string {
	if name == nil {
		return Unspecified
	}
	if c, ok := decorated[*name]; ok {
		return c
	}
	return *name
}

// NormalizeOptional is Normalize for optional fields: absent stays absent.
func NormalizeOptional(name *string) *string {
	if name == nil || *name == "" {
		return nil
	}
	c := Normalize(name)
	return &c
}

// Canonical lists the canonical categories, Unspecified excluded.
func Canonical() []string {
	out := make([]string, len(canonical))
	copy(out, canonical)
	return out
}
