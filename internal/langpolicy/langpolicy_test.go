package langpolicy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lexigame/wordmine/core/errors"
)

func TestGetDefaults(t *testing.T) {
	var table Table

	tests := []struct {
		lang string
		want Policy
	}{
		{"en", Policy{Lowercase: true, MinLen: 3, MaxLen: 8, SingleWordCheck: true}},
		{"de", Policy{Lowercase: false, MinLen: 4, MaxLen: 12, SingleWordCheck: true}},
		{"ar", Policy{Lowercase: true, MinLen: 2, MaxLen: 10, SingleWordCheck: false}},
		{"zz", Policy{Lowercase: true, MinLen: 3, MaxLen: 15, SingleWordCheck: true}},
	}
	for _, tt := range tests {
		if got := table.Get(tt.lang); got != tt.want {
			t.Errorf("Get(%q) = %+v, want %+v", tt.lang, got, tt.want)
		}
	}
}

func TestAccept(t *testing.T) {
	en := Table{}.Get("en")

	tests := []struct {
		word string
		want bool
	}{
		{"cat", true},
		{"at", false},
		{"aardvark", true},
		{"aardvarks", false},
	}
	for _, tt := range tests {
		if got := en.Accept(tt.word); got != tt.want {
			t.Errorf("Accept(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}

	// Rune length, not byte length.
	ru := Table{}.Get("ru")
	if !ru.Accept("кот") {
		t.Error("Accept(кот) = false, want true for a three-rune word")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policies.json")
	data := `{"en": {"lowercase": true, "min_len": 4, "max_len": 9, "single_word_check": true}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := table.Get("en"); got.MinLen != 4 || got.MaxLen != 9 {
		t.Errorf("overridden en policy = %+v", got)
	}
	// Languages absent from the file keep their defaults.
	if got := table.Get("de"); got.MinLen != 4 || got.Lowercase {
		t.Errorf("de policy = %+v, want the built-in default", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Load on a missing file = %v, want ErrNotFound", err)
	}
}

func TestLoadBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("Load on malformed JSON = %v, want ErrInvalidInput", err)
	}
}
