package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"gocv.io/x/gocv"
)

// Store manages the on-disk template library.
//
// Naming scheme: per-character categories (digits, card_ranks,
// card_suits, letters_*, special) accumulate timestamped variants —
// several renderings of the same glyph improve later matching.
// Whole-asset categories (cards, combos, markers) keep exactly one
// file per key and overwrite it.
type Store struct {
	dir      string
	taxonomy Taxonomy
	now      func() time.Time
}

// NewStore creates a Store rooted at dir and ensures every category
// subdirectory exists.
func NewStore(dir string, taxonomy Taxonomy) (*Store, error) {
	for _, category := range Categories() {
		if err := os.MkdirAll(filepath.Join(dir, category), 0o755); err != nil {
			return nil, fmt.Errorf("cannot create template directory %s: %w", category, err)
		}
	}
	return &Store{dir: dir, taxonomy: taxonomy, now: time.Now}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Taxonomy returns the injected labeling vocabulary.
func (s *Store) Taxonomy() Taxonomy {
	return s.taxonomy
}

// accumulates reports whether a category collects timestamped variants.
func accumulates(category string) bool {
	switch category {
	case CategoryCards, CategoryCombos, CategoryMarkers:
		return false
	default:
		return true
	}
}

// timestamp returns a filename-safe microsecond timestamp.
func (s *Store) timestamp() string {
	t := s.now()
	return t.Format("20060102_150405") + fmt.Sprintf("_%06d", t.Nanosecond()/1000)
}

// Save writes a template image under category with the given key and
// returns the written path. Accumulating categories get a timestamp
// suffix; the rest overwrite one file per key.
func (s *Store) Save(category, key string, img gocv.Mat) (string, error) {
	if img.Empty() {
		return "", fmt.Errorf("refusing to save empty template %s/%s", category, key)
	}

	name := key + ".png"
	if accumulates(category) {
		name = key + "_" + s.timestamp() + ".png"
	}

	path := filepath.Join(s.dir, category, name)
	if ok := gocv.IMWrite(path, img); !ok {
		return "", fmt.Errorf("failed to write template %s", path)
	}
	return path, nil
}

// Exists reports whether any template is stored under category/key.
// For accumulating categories any timestamped variant counts.
func (s *Store) Exists(category, key string) bool {
	if category == CategoryDigits && key == "." {
		key = "dot"
	}

	if !accumulates(category) {
		_, err := os.Stat(filepath.Join(s.dir, category, key+".png"))
		return err == nil
	}

	matches, _ := filepath.Glob(filepath.Join(s.dir, category, key+"_*.png"))
	return len(matches) > 0
}

// KeyForChar maps a labeled character to its store category and key.
// Digits and '.' go to digits ('.' becomes the token "dot"); Latin
// letters to letters_lat; Cyrillic letters to letters_cyr; anything
// else to special under a hex code-point token.
func KeyForChar(ch rune) (category, key string) {
	switch {
	case unicode.IsDigit(ch):
		return CategoryDigits, string(ch)
	case ch == '.':
		return CategoryDigits, "dot"
	case unicode.IsLetter(ch) && ch < 128:
		return CategoryLettersLat, string(ch)
	case unicode.Is(unicode.Cyrillic, ch):
		return CategoryLettersCyr, string(ch)
	default:
		return CategorySpecial, fmt.Sprintf("char_%04x", ch)
	}
}

// SaveChar persists one labeled symbol crop, routing it to the right
// category by character class.
func (s *Store) SaveChar(ch rune, img gocv.Mat) (string, error) {
	category, key := KeyForChar(ch)
	return s.Save(category, key, img)
}

// SaveCard saves a whole-card template keyed {rank}{suit}.
func (s *Store) SaveCard(img gocv.Mat, rank, suit string) (string, error) {
	if !s.taxonomy.ValidRank(rank) {
		return "", fmt.Errorf("unknown card rank %q", rank)
	}
	if !s.taxonomy.ValidSuit(suit) {
		return "", fmt.Errorf("unknown card suit %q", suit)
	}
	return s.Save(CategoryCards, rank+suit, img)
}

// SaveCardRank saves a rank glyph template as grayscale.
func (s *Store) SaveCardRank(img gocv.Mat, rank string) (string, error) {
	rank = strings.ToUpper(rank)
	if !s.taxonomy.ValidRank(rank) {
		return "", fmt.Errorf("unknown card rank %q", rank)
	}
	gray := asGray(img)
	defer gray.Close()
	return s.Save(CategoryCardRanks, rank, gray)
}

// SaveCardSuit saves a suit glyph template as grayscale.
func (s *Store) SaveCardSuit(img gocv.Mat, suit string) (string, error) {
	suit = strings.ToLower(suit)
	if !s.taxonomy.ValidSuit(suit) {
		return "", fmt.Errorf("unknown card suit %q", suit)
	}
	gray := asGray(img)
	defer gray.Close()
	return s.Save(CategoryCardSuits, suit, gray)
}

// SaveCombo saves a combo-name template, one file per combo.
func (s *Store) SaveCombo(img gocv.Mat, name string) (string, error) {
	if !s.taxonomy.ValidCombo(name) {
		return "", fmt.Errorf("unknown combo %q", name)
	}
	return s.Save(CategoryCombos, name, img)
}

// SaveMarker saves a marker template, one file per marker.
func (s *Store) SaveMarker(img gocv.Mat, name string) (string, error) {
	if !s.taxonomy.ValidMarker(name) {
		return "", fmt.Errorf("unknown marker %q", name)
	}
	return s.Save(CategoryMarkers, name, img)
}

// asGray returns a single-channel copy of img.
func asGray(img gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	if img.Channels() == 1 {
		img.CopyTo(&gray)
		return gray
	}
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	return gray
}

// ExistingCards lists the card keys ("2c", "Ah", ...) that have a
// stored template.
func (s *Store) ExistingCards() []string {
	return s.keysIn(CategoryCards)
}

// ExistingRanks lists the ranks with at least one stored variant, in
// taxonomy order.
func (s *Store) ExistingRanks() []string {
	seen := make(map[string]bool)
	for _, key := range s.keysIn(CategoryCardRanks) {
		rank := strings.SplitN(key, "_", 2)[0]
		if s.taxonomy.ValidRank(rank) {
			seen[rank] = true
		}
	}

	var ranks []string
	for _, rank := range s.taxonomy.CardRanks {
		if seen[rank] {
			ranks = append(ranks, rank)
		}
	}
	return ranks
}

// ExistingSuits lists the suits with at least one stored variant.
func (s *Store) ExistingSuits() []string {
	seen := make(map[string]bool)
	for _, key := range s.keysIn(CategoryCardSuits) {
		suit := strings.SplitN(key, "_", 2)[0]
		if s.taxonomy.ValidSuit(suit) {
			seen[suit] = true
		}
	}

	var suits []string
	for _, suit := range s.taxonomy.CardSuits {
		if seen[suit] {
			suits = append(suits, suit)
		}
	}
	return suits
}

// Completion returns (existing, total) for a category measured against
// the taxonomy: cards against all rank x suit pairs, ranks and suits
// against their lists, combos and markers against their name lists.
func (s *Store) Completion(category string) (existing, total int) {
	switch category {
	case CategoryCards:
		return len(s.ExistingCards()), len(s.taxonomy.CardRanks) * len(s.taxonomy.CardSuits)
	case CategoryCardRanks:
		return len(s.ExistingRanks()), len(s.taxonomy.CardRanks)
	case CategoryCardSuits:
		return len(s.ExistingSuits()), len(s.taxonomy.CardSuits)
	case CategoryCombos:
		return len(s.keysIn(CategoryCombos)), len(s.taxonomy.ComboNames)
	case CategoryMarkers:
		return len(s.keysIn(CategoryMarkers)), len(s.taxonomy.MarkerNames)
	default:
		n := len(s.keysIn(category))
		return n, n
	}
}

// Statistics returns the stored file count per category.
func (s *Store) Statistics() map[string]int {
	stats := make(map[string]int)
	for _, category := range Categories() {
		stats[category] = len(s.keysIn(category))
	}
	return stats
}

// keysIn lists the sorted file stems in a category directory.
func (s *Store) keysIn(category string) []string {
	matches, err := filepath.Glob(filepath.Join(s.dir, category, "*.png"))
	if err != nil {
		return nil
	}

	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		keys = append(keys, strings.TrimSuffix(filepath.Base(m), ".png"))
	}
	sort.Strings(keys)
	return keys
}
