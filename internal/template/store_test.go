package template

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gocv.io/x/gocv"
)

func testMat(t *testing.T) gocv.Mat {
	t.Helper()
	mat := gocv.NewMatWithSize(8, 6, gocv.MatTypeCV8U)
	for y := 0; y < 8; y++ {
		for x := 0; x < 6; x++ {
			mat.SetUCharAt(y, x, 128)
		}
	}
	return mat
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), DefaultTaxonomy())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	base := time.Date(2025, 1, 17, 12, 34, 56, 789000000, time.UTC)
	calls := 0
	store.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Millisecond)
	}
	return store
}

func TestKeyForChar(t *testing.T) {
	tests := []struct {
		ch       rune
		category string
		key      string
	}{
		{'7', CategoryDigits, "7"},
		{'.', CategoryDigits, "dot"},
		{'K', CategoryLettersLat, "K"},
		{'x', CategoryLettersLat, "x"},
		{'Ж', CategoryLettersCyr, "Ж"},
		{'$', CategorySpecial, "char_0024"},
		{'€', CategorySpecial, "char_20ac"},
	}

	for _, tt := range tests {
		category, key := KeyForChar(tt.ch)
		if category != tt.category || key != tt.key {
			t.Errorf("KeyForChar(%q) = (%s, %s), want (%s, %s)",
				tt.ch, category, key, tt.category, tt.key)
		}
	}
}

func TestStoreAccumulatesDigits(t *testing.T) {
	store := newTestStore(t)
	img := testMat(t)
	defer img.Close()

	path, err := store.SaveChar('5', img)
	if err != nil {
		t.Fatalf("SaveChar: %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "5_20250117_123456_") {
		t.Errorf("digit template name = %s, want timestamped 5_ prefix", base)
	}
	if !store.Exists(CategoryDigits, "5") {
		t.Error("Exists should find the timestamped variant")
	}
	if store.Exists(CategoryDigits, "6") {
		t.Error("Exists reported a digit that was never saved")
	}
}

func TestStoreDotToken(t *testing.T) {
	store := newTestStore(t)
	img := testMat(t)
	defer img.Close()

	path, err := store.SaveChar('.', img)
	if err != nil {
		t.Fatalf("SaveChar: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "dot_") {
		t.Errorf("dot template name = %s, want dot_ prefix", filepath.Base(path))
	}
	if !store.Exists(CategoryDigits, ".") {
		t.Error("Exists should map '.' to the dot token")
	}
}

func TestStoreCardOverwrites(t *testing.T) {
	store := newTestStore(t)
	img := testMat(t)
	defer img.Close()

	first, err := store.SaveCard(img, "A", "h")
	if err != nil {
		t.Fatalf("SaveCard: %v", err)
	}
	second, err := store.SaveCard(img, "A", "h")
	if err != nil {
		t.Fatalf("SaveCard again: %v", err)
	}
	if first != second {
		t.Errorf("card saves should overwrite one key: %s vs %s", first, second)
	}
	if filepath.Base(first) != "Ah.png" {
		t.Errorf("card template name = %s, want Ah.png", filepath.Base(first))
	}

	cards := store.ExistingCards()
	if len(cards) != 1 || cards[0] != "Ah" {
		t.Errorf("ExistingCards = %v, want [Ah]", cards)
	}
}

func TestStoreRejectsUnknownLabels(t *testing.T) {
	store := newTestStore(t)
	img := testMat(t)
	defer img.Close()

	if _, err := store.SaveCard(img, "1", "h"); err == nil {
		t.Error("SaveCard accepted an unknown rank")
	}
	if _, err := store.SaveCard(img, "A", "x"); err == nil {
		t.Error("SaveCard accepted an unknown suit")
	}
	if _, err := store.SaveCombo(img, "full_boat"); err == nil {
		t.Error("SaveCombo accepted an unknown combo name")
	}
	if _, err := store.SaveMarker(img, "moon"); err == nil {
		t.Error("SaveMarker accepted an unknown marker name")
	}
}

func TestStoreCompletion(t *testing.T) {
	store := newTestStore(t)
	img := testMat(t)
	defer img.Close()

	if _, err := store.SaveCard(img, "2", "c"); err != nil {
		t.Fatalf("SaveCard: %v", err)
	}
	if _, err := store.SaveCardRank(img, "Q"); err != nil {
		t.Fatalf("SaveCardRank: %v", err)
	}
	if _, err := store.SaveCardRank(img, "Q"); err != nil {
		t.Fatalf("SaveCardRank variant: %v", err)
	}

	if existing, total := store.Completion(CategoryCards); existing != 1 || total != 52 {
		t.Errorf("cards completion = %d/%d, want 1/52", existing, total)
	}
	// Two stored variants of the same rank count once.
	if existing, total := store.Completion(CategoryCardRanks); existing != 1 || total != 13 {
		t.Errorf("ranks completion = %d/%d, want 1/13", existing, total)
	}
}

func TestStoreStatistics(t *testing.T) {
	store := newTestStore(t)
	img := testMat(t)
	defer img.Close()

	if _, err := store.SaveChar('1', img); err != nil {
		t.Fatalf("SaveChar: %v", err)
	}

	stats := store.Statistics()
	if stats[CategoryDigits] != 1 {
		t.Errorf("digit count = %d, want 1", stats[CategoryDigits])
	}
	if stats[CategoryMarkers] != 0 {
		t.Errorf("marker count = %d, want 0", stats[CategoryMarkers])
	}
	if len(stats) != len(Categories()) {
		t.Errorf("statistics cover %d categories, want %d", len(stats), len(Categories()))
	}
}
