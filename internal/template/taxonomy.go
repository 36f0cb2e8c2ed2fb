// Package template persists labeled symbol images for later
// recognition-by-matching.
package template

// Category names the template subdirectories.
const (
	CategoryCards      = "cards"
	CategoryCardRanks  = "card_ranks"
	CategoryCardSuits  = "card_suits"
	CategoryDigits     = "digits"
	CategoryCombos     = "combos"
	CategoryLettersLat = "letters_lat"
	CategoryLettersCyr = "letters_cyr"
	CategorySpecial    = "special"
	CategoryMarkers    = "markers"
)

// Taxonomy is the labeling vocabulary the store validates against.
// It is injected at construction rather than hard-coded so a different
// client's naming can be swapped in without touching segmentation.
type Taxonomy struct {
	CardRanks   []string `json:"card_ranks"`
	CardSuits   []string `json:"card_suits"`
	ComboNames  []string `json:"combo_names"`
	MarkerNames []string `json:"marker_names"`
	Digits      []string `json:"digits"`
}

// DefaultTaxonomy returns the standard 52-card vocabulary.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		CardRanks: []string{"2", "3", "4", "5", "6", "7", "8", "9", "T", "J", "Q", "K", "A"},
		CardSuits: []string{"c", "d", "h", "s"},
		ComboNames: []string{
			"high_card",
			"pair",
			"two_pair",
			"three_of_a_kind",
			"straight",
			"flush",
			"full_house",
			"four_of_a_kind",
			"straight_flush",
			"royal_flush",
		},
		MarkerNames: []string{"dealer_button", "timer", "seat_occupied"},
		Digits:      []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "."},
	}
}

// Categories returns every template subdirectory the store manages.
func Categories() []string {
	return []string{
		CategoryCards, CategoryCardRanks, CategoryCardSuits,
		CategoryDigits, CategoryCombos,
		CategoryLettersLat, CategoryLettersCyr, CategorySpecial,
		CategoryMarkers,
	}
}

// ValidRank reports whether rank is part of the taxonomy.
func (t Taxonomy) ValidRank(rank string) bool {
	return contains(t.CardRanks, rank)
}

// ValidSuit reports whether suit is part of the taxonomy.
func (t Taxonomy) ValidSuit(suit string) bool {
	return contains(t.CardSuits, suit)
}

// ValidCombo reports whether name is a known combo.
func (t Taxonomy) ValidCombo(name string) bool {
	return contains(t.ComboNames, name)
}

// ValidMarker reports whether name is a known marker.
func (t Taxonomy) ValidMarker(name string) bool {
	return contains(t.MarkerNames, name)
}

// ValidDigit reports whether s is a digit character or the dot.
func (t Taxonomy) ValidDigit(s string) bool {
	return contains(t.Digits, s)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
