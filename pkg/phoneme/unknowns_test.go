package phoneme

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadUnknowns(t *testing.T) {
	path := writeFile(t, "unknowns.tsv", "# prior run\nzounds\t12\nMarry\t3\n")
	unknowns, err := LoadUnknowns(path)
	if err != nil {
		t.Fatalf("LoadUnknowns() error = %v", err)
	}
	if unknowns["zounds"] != 12 {
		t.Errorf("unknowns[zounds] = %d, want 12", unknowns["zounds"])
	}
	if unknowns["marry"] != 3 {
		t.Errorf("unknowns[marry] = %d, want 3", unknowns["marry"])
	}
}

func TestLoadUnknownsErrors(t *testing.T) {
	if _, err := LoadUnknowns(filepath.Join(t.TempDir(), "missing.tsv")); err == nil {
		t.Error("LoadUnknowns() with missing file expected error, got nil")
	}
	if _, err := LoadUnknowns(writeFile(t, "bad.tsv", "zounds\ttwelve\n")); err == nil {
		t.Error("LoadUnknowns() with non-numeric count expected error, got nil")
	}
	if _, err := LoadUnknowns(writeFile(t, "short.tsv", "zounds\n")); err == nil {
		t.Error("LoadUnknowns() with missing count expected error, got nil")
	}
}

func TestUnknownsMerge(t *testing.T) {
	unknowns := Unknowns{"zounds": 2, "marry": 1}
	unknowns.Merge(Unknowns{"zounds": 3, "prithee": 4})
	if unknowns["zounds"] != 5 || unknowns["marry"] != 1 || unknowns["prithee"] != 4 {
		t.Errorf("Merge() = %v", unknowns)
	}
	if unknowns.Total() != 10 {
		t.Errorf("Total() = %d, want 10", unknowns.Total())
	}
}

func TestWriteTSV(t *testing.T) {
	unknowns := Unknowns{"marry": 3, "zounds": 12, "anon": 3}
	var sb strings.Builder
	if err := unknowns.WriteTSV(&sb); err != nil {
		t.Fatalf("WriteTSV() error = %v", err)
	}
	want := "zounds\t12\nanon\t3\nmarry\t3\n"
	if sb.String() != want {
		t.Errorf("WriteTSV() = %q, want %q", sb.String(), want)
	}
}

func TestWriteTSVRoundTrip(t *testing.T) {
	unknowns := Unknowns{"zounds": 12, "marry": 3}
	var sb strings.Builder
	if err := unknowns.WriteTSV(&sb); err != nil {
		t.Fatalf("WriteTSV() error = %v", err)
	}
	path := writeFile(t, "roundtrip.tsv", sb.String())
	loaded, err := LoadUnknowns(path)
	if err != nil {
		t.Fatalf("LoadUnknowns() error = %v", err)
	}
	if len(loaded) != 2 || loaded["zounds"] != 12 || loaded["marry"] != 3 {
		t.Errorf("round trip = %v", loaded)
	}
}

func TestSuggest(t *testing.T) {
	d := loadSample(t)

	got := d.Suggest("quicke", 2)
	if len(got) != 2 {
		t.Fatalf("Suggest() returned %d words, want 2", len(got))
	}
	if got[0] != "quick" {
		t.Errorf("Suggest(quicke)[0] = %q, want %q", got[0], "quick")
	}

	if got := d.Suggest("quicke", 0); got != nil {
		t.Errorf("Suggest() with n=0 = %v, want nil", got)
	}
	if got := d.Suggest("quicke", 100); len(got) != d.Len() {
		t.Errorf("Suggest() with large n returned %d words, want %d", len(got), d.Len())
	}
}
