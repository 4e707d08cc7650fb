package domain

import (
	"errors"
	"testing"
)

func TestValidVideoID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"dQw4w9WgXcQ", true},
		{"abc_DEF-123", true},
		{"short", false},
		{"waaaaaaaaaytoolong", false},
		{"dQw4w9WgXc!", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidVideoID(tt.id); got != tt.want {
			t.Errorf("ValidVideoID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestFilterCategoriesKeepsVocabulary(t *testing.T) {
	out := FilterCategories(CategorySet{
		ChristianLife:  []string{"Marriage", "Quantum Physics", "Community"},
		ChurchMinistry: []string{"Discipleship"},
		Theology:       []string{"The Gospel", "Salvation", "Astrology"},
	})
	if len(out.ChristianLife) != 2 || out.ChristianLife[0] != "Marriage" || out.ChristianLife[1] != "Community" {
		t.Fatalf("christian_life = %v", out.ChristianLife)
	}
	if len(out.ChurchMinistry) != 1 || out.ChurchMinistry[0] != "Discipleship" {
		t.Fatalf("church_ministry = %v", out.ChurchMinistry)
	}
	if len(out.Theology) != 2 {
		t.Fatalf("theology = %v", out.Theology)
	}
}

func TestFilterCategoriesCanonicalizesCase(t *testing.T) {
	out := FilterCategories(CategorySet{
		Theology: []string{"the gospel", "THE GOSPEL", "grace"},
	})
	if len(out.Theology) != 2 {
		t.Fatalf("expected dedup, got %v", out.Theology)
	}
	if out.Theology[0] != "The Gospel" || out.Theology[1] != "Grace" {
		t.Fatalf("expected canonical casing, got %v", out.Theology)
	}
}

func TestFilterCategoriesEmpty(t *testing.T) {
	out := FilterCategories(CategorySet{})
	if !out.Empty() {
		t.Fatal("empty in, empty out")
	}
}

func TestVocabularyFor(t *testing.T) {
	if VocabularyFor(CategoryTheology) == nil {
		t.Fatal("theology vocabulary should exist")
	}
	if VocabularyFor(CategoryType("bogus")) != nil {
		t.Fatal("unknown type should return nil")
	}
}

func TestExternalServiceErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := NewExternalServiceError("gemini", inner)
	if !errors.Is(err, inner) {
		t.Fatal("should unwrap to inner error")
	}
	if err.Error() != "gemini: boom" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestStorageErrorUnwrap(t *testing.T) {
	err := NewStorageError("upsert", ErrNotFound)
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("should unwrap to sentinel")
	}
}
