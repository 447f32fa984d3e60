package phoneme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olivercalder/character-text-pipeline/pkg/corpus"
)

const sampleDict = `# subset of cmudict
word W ER1 D
the DH AH0
quick K W IH1 K
fox F AA1 K S
a AH0
a EY1
vision V IH1 ZH AH0 N
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func loadSample(t *testing.T) *Dict {
	t.Helper()
	d, err := LoadDict(writeFile(t, "dict.txt", sampleDict), " ")
	if err != nil {
		t.Fatalf("LoadDict() error = %v", err)
	}
	return d
}

func TestLoadDict(t *testing.T) {
	d := loadSample(t)
	if d.Len() != 6 {
		t.Errorf("Len() = %d, want 6", d.Len())
	}

	pron, ok := d.Lookup("word")
	if !ok {
		t.Fatal("Lookup(word) not found")
	}
	if got := strings.Join(pron, " "); got != "W ER1 D" {
		t.Errorf("Lookup(word) = %q, want %q", got, "W ER1 D")
	}

	// Duplicate entries keep the first pronunciation.
	pron, ok = d.Lookup("a")
	if !ok {
		t.Fatal("Lookup(a) not found")
	}
	if got := strings.Join(pron, " "); got != "AH0" {
		t.Errorf("Lookup(a) = %q, want %q", got, "AH0")
	}

	if _, ok := d.Lookup("missing"); ok {
		t.Error("Lookup(missing) unexpectedly found")
	}
	if _, ok := d.Lookup("WORD"); !ok {
		t.Error("Lookup is not case insensitive")
	}
}

func TestLoadDictErrors(t *testing.T) {
	if _, err := LoadDict(filepath.Join(t.TempDir(), "missing.txt"), " "); err == nil {
		t.Error("LoadDict() with missing file expected error, got nil")
	}
	if _, err := LoadDict(writeFile(t, "bad.txt", "lonely\n"), " "); err == nil {
		t.Error("LoadDict() with pronunciationless entry expected error, got nil")
	}
}

func TestConvert(t *testing.T) {
	d := loadSample(t)

	tests := []struct {
		name         string
		fields       []string
		opts         Options
		want         string
		wantUnknowns map[string]int
	}{
		{
			name:   "emphasis stripped by default",
			fields: []string{"the quick fox"},
			want:   "DH AH K W IH K F AA K S",
		},
		{
			name:   "emphasis preserved",
			fields: []string{"the quick fox"},
			opts:   Options{PreserveEmphasis: true},
			want:   "DH AH0 K W IH1 K F AA1 K S",
		},
		{
			name:         "unknown words dropped and counted",
			fields:       []string{"the zounds fox", "zounds marry"},
			want:         "DH AH F AA K S",
			wantUnknowns: map[string]int{"zounds": 2, "marry": 1},
		},
		{
			name:   "multiple fields flatten in order",
			fields: []string{"a word", "a vision"},
			want:   "AH W ER D AH V IH ZH AH N",
		},
		{
			name:   "empty speech",
			fields: nil,
			want:   "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unknowns := make(Unknowns)
			rows := []corpus.Row{{ID: "ham", Character: "Hamlet", Fields: tt.fields}}
			got := d.Convert(rows, unknowns, tt.opts)
			if len(got) != 1 {
				t.Fatalf("Convert() returned %d rows, want 1", len(got))
			}
			if got[0].ID != "ham" || got[0].Character != "Hamlet" {
				t.Errorf("Convert() row = %s %s", got[0].ID, got[0].Character)
			}
			if joined := strings.Join(got[0].Fields, " "); joined != tt.want {
				t.Errorf("Convert() phonemes = %q, want %q", joined, tt.want)
			}
			for word, count := range tt.wantUnknowns {
				if unknowns[word] != count {
					t.Errorf("unknowns[%q] = %d, want %d", word, unknowns[word], count)
				}
			}
			if len(unknowns) != len(tt.wantUnknowns) {
				t.Errorf("unknowns = %v, want %v", unknowns, tt.wantUnknowns)
			}
		})
	}
}

func TestConvertNilUnknowns(t *testing.T) {
	d := loadSample(t)
	rows := []corpus.Row{{ID: "ham", Character: "Hamlet", Fields: []string{"the zounds"}}}
	got := d.Convert(rows, nil, Options{})
	if joined := strings.Join(got[0].Fields, " "); joined != "DH AH" {
		t.Errorf("Convert() phonemes = %q, want %q", joined, "DH AH")
	}
}

func TestStripEmphasis(t *testing.T) {
	tests := []struct {
		phon     string
		preserve bool
		want     string
	}{
		{"ER1", false, "ER"},
		{"AH0", false, "AH"},
		{"ER1", true, "ER1"},
		{"K", false, "K"},
		{"", false, ""},
	}
	for _, tt := range tests {
		if got := stripEmphasis(tt.phon, tt.preserve); got != tt.want {
			t.Errorf("stripEmphasis(%q, %v) = %q, want %q", tt.phon, tt.preserve, got, tt.want)
		}
	}
}
