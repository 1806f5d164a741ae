package fonts

import (
	"bytes"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		family string
		want   Generic
		known  bool
	}{
		{"sans-serif", SansSerif, true},
		{"DejaVu Sans", SansSerif, true},
		{"serif", Serif, true},
		{"Times New Roman", Serif, true},
		{"monospace", Monospace, true},
		{"Courier", Monospace, true},
		{"go-mono", Monospace, true},
		{"Comic Neue", SansSerif, false},
	}
	for _, c := range cases {
		got, known := Classify(c.family)
		if got != c.want || known != c.known {
			t.Fatalf("Classify(%q) = %v,%v, want %v,%v", c.family, got, known, c.want, c.known)
		}
	}
}

func TestLookupBuiltin(t *testing.T) {
	r := NewRegistry()
	data, known := r.Lookup("sans-serif", Style{Bold: true})
	if !known || !bytes.Equal(data, gobold.TTF) {
		t.Fatalf("expected Go Bold for bold sans-serif")
	}
	data, _ = r.Lookup("monospace", Style{Italic: true})
	if !bytes.Equal(data, gomonoitalic.TTF) {
		t.Fatalf("expected Go Mono Italic")
	}
	var nilRegistry *Registry
	if data, _ := nilRegistry.Lookup("unknown", Style{}); !bytes.Equal(data, goregular.TTF) {
		t.Fatalf("nil registry must fall back to Go Regular")
	}
}

func TestLookupRegistered(t *testing.T) {
	r := NewRegistry()
	custom := []byte("custom")
	r.Register("Brand", Style{}, custom)
	if data, known := r.Lookup("brand", Style{Bold: true}); !known || !bytes.Equal(data, custom) {
		t.Fatalf("registered regular face must serve missing styles")
	}
}

func TestLoad(t *testing.T) {
	data, err := Load("embed:go")
	if err != nil || !bytes.Equal(data, goregular.TTF) {
		t.Fatalf("Load(embed:go) = %v", err)
	}
	if _, err := Load("embed:nope"); err == nil {
		t.Fatalf("expected error for unknown built-in font")
	}
	if _, err := Load("/does/not/exist.ttf"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
