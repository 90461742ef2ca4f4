package prefs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoad_FallsBackToNightfox(t *testing.T) {
	cases := []struct {
		name    string
		content *string
	}{
		{"missing file", nil},
		{"empty file", strPtr("")},
		{"empty theme", strPtr("theme = \"\"\n")},
		{"blank theme", strPtr("theme = \"   \"\n")},
		{"malformed toml", strPtr("not valid toml {{{\n")},
		{"wrong type", strPtr("theme = 3\n")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs.toml")
			if tc.content != nil {
				writeFile(t, path, *tc.content)
			}
			p, err := Load(path)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if p.Theme != "Nightfox" {
				t.Fatalf("Theme = %q, want Nightfox", p.Theme)
			}
		})
	}
}

func strPtr(s string) *string { return &s }

func TestLoad_DirectoryInPlaceOfFileFallsBack(t *testing.T) {
	p, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestLoad_TrimsStoredTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	writeFile(t, path, "theme = \"  Slate \"\nunknown_key = true\n")

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
}

func TestLoadSave_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := Save("", Prefs{Theme: "Kanagawa"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	want := filepath.Join(home, ".config", "carview", "prefs.toml")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("Save(\"\") did not write %s: %v", want, err)
	}

	p, err := Load(DefaultPath())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Kanagawa" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Kanagawa")
	}
}

func TestSave_RoundTripsEveryTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "prefs.toml")
	for _, theme := range []string{"Nightfox", "Kanagawa", "Slate"} {
		if err := Save(path, Prefs{Theme: theme}); err != nil {
			t.Fatalf("Save(%s) returned error: %v", theme, err)
		}
		p, err := Load(path)
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if p.Theme != theme {
			t.Fatalf("Theme = %q, want %q", p.Theme, theme)
		}
	}
}

func TestSave_ReplacesWholeFileWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.toml")
	writeFile(t, path, "theme = \"Slate\"\nextra = 1\n")

	if err := Save(path, Prefs{Theme: "Kanagawa"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "prefs.toml" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("prefs dir = %v, want only prefs.toml", names)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(data), "extra") {
		t.Fatalf("prefs file = %q, want the old content gone", data)
	}
}

func TestSave_FailsWhenParentIsAFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	writeFile(t, blocker, "")

	err := Save(filepath.Join(blocker, "prefs.toml"), Prefs{Theme: "Slate"})
	if err == nil {
		t.Fatal("Save under a regular file returned nil error")
	}
	if !strings.Contains(err.Error(), "create prefs dir") {
		t.Fatalf("Save error = %v, want create prefs dir", err)
	}
}
