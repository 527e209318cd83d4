package drug

import "testing"

func TestNormalizeArabic_StripsDiacritics(t *testing.T) {
	// fatha, damma, kasra and shadda must all vanish
	if got := NormalizeArabic("أَسْبِرِين"); got != "اسبرين" {
		t.Errorf("expected diacritics stripped and hamza folded, got %q", got)
	}
}

func TestNormalizeArabic_StripsTatweel(t *testing.T) {
	if got := NormalizeArabic("بنـــادول"); got != "بنادول" {
		t.Errorf("expected tatweel removed, got %q", got)
	}
}

func TestNormalizeArabic_FoldsAlefVariants(t *testing.T) {
	for _, in := range []string{"أدول", "إدول", "آدول"} {
		if got := NormalizeArabic(in); got != "ادول" {
			t.Errorf("NormalizeArabic(%q) = %q, expected bare alef", in, got)
		}
	}
}

func TestNormalizeArabic_FoldsTaaMarbutaAndYaa(t *testing.T) {
	if got := NormalizeArabic("حبة"); got != "حبه" {
		t.Errorf("expected taa marbuta folded to haa, got %q", got)
	}
	if got := NormalizeArabic("مستشفى"); got != "مستشفي" {
		t.Errorf("expected alef maqsura folded to yaa, got %q", got)
	}
}

func TestNormalizeArabic_Idempotent(t *testing.T) {
	inputs := []string{"أَسْبِرِين", "بنـــادول", "حبة", "warfarin", ""}
	for _, in := range inputs {
		once := NormalizeArabic(in)
		if twice := NormalizeArabic(once); twice != once {
			t.Errorf("NormalizeArabic not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestNormalizeArabic_LeavesLatinAlone(t *testing.T) {
	if got := NormalizeArabic("Warfarin 5mg"); got != "Warfarin 5mg" {
		t.Errorf("expected Latin text untouched, got %q", got)
	}
}

func TestContainsArabic(t *testing.T) {
	if !ContainsArabic("بنادول") {
		t.Error("expected Arabic detected")
	}
	if !ContainsArabic("mix بنادول mix") {
		t.Error("expected Arabic detected in mixed text")
	}
	if ContainsArabic("panadol") {
		t.Error("expected no Arabic in Latin text")
	}
	if ContainsArabic("") {
		t.Error("expected no Arabic in empty string")
	}
}
