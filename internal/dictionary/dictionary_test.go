package dictionary

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStubLookup(t *testing.T) {
	d := Stub()

	if def, ok := d.Lookup("Hello!"); !ok || def == "" {
		t.Errorf("Lookup(Hello!) = %q, %v", def, ok)
	}
	if _, ok := d.Lookup("xylophone"); ok {
		t.Error("unknown word should not be found")
	}
}

func TestLoadGlossary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glossary.yaml")
	content := `
Bonjour: hello
"ça": that
"123": ignored
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	g, err := LoadGlossary(path)
	if err != nil {
		t.Fatalf("LoadGlossary: %v", err)
	}
	if len(g) != 2 {
		t.Errorf("expected 2 entries, got %d: %v", len(g), g)
	}
	if def, ok := g.Lookup("bonjour"); !ok || def != "hello" {
		t.Errorf("Lookup(bonjour) = %q, %v", def, ok)
	}
}

func TestLoadGlossaryErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadGlossary(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("- just\n- a list\n"), 0644)
	if _, err := LoadGlossary(bad); err == nil {
		t.Error("expected error for non-mapping yaml")
	}
}

func TestChain(t *testing.T) {
	c := Chain{Map{"cat": "from first"}, Map{"cat": "from second", "dog": "from second"}}

	if def, _ := c.Lookup("cat"); def != "from first" {
		t.Errorf("Lookup(cat) = %q, want first", def)
	}
	if def, _ := c.Lookup("dog"); def != "from second" {
		t.Errorf("Lookup(dog) = %q, want second", def)
	}
	if _, ok := c.Lookup("eel"); ok {
		t.Error("Lookup(eel) should miss")
	}
}
