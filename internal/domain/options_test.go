package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewOptionsDefaults(t *testing.T) {
	tests := []struct {
		kind  Kind
		check func(t *testing.T, o PromptOptions)
	}{
		{KindText, func(t *testing.T, o PromptOptions) {
			if o.Text == nil {
				t.Fatal("Text variant is nil")
			}
			if o.Text.Herramienta != DefaultTextHerramienta {
				t.Fatalf("Herramienta = %q, want %q", o.Text.Herramienta, DefaultTextHerramienta)
			}
			if o.Text.Objetivo != "" {
				t.Fatalf("Objetivo = %q, want empty", o.Text.Objetivo)
			}
		}},
		{KindImage, func(t *testing.T, o PromptOptions) {
			if o.Image == nil {
				t.Fatal("Image variant is nil")
			}
			if o.Image.Modo != DefaultImageModo {
				t.Fatalf("Modo = %q, want %q", o.Image.Modo, DefaultImageModo)
			}
		}},
		{KindVideo, func(t *testing.T, o PromptOptions) {
			if o.Video == nil {
				t.Fatal("Video variant is nil")
			}
			if o.Video.Modo != DefaultVideoModo {
				t.Fatalf("Modo = %q, want %q", o.Video.Modo, DefaultVideoModo)
			}
		}},
		{KindAudio, func(t *testing.T, o PromptOptions) {
			if o.Audio == nil {
				t.Fatal("Audio variant is nil")
			}
			if o.Audio.Modo != DefaultAudioModo {
				t.Fatalf("Modo = %q, want %q", o.Audio.Modo, DefaultAudioModo)
			}
		}},
		{KindCode, func(t *testing.T, o PromptOptions) {
			if o.Code == nil {
				t.Fatal("Code variant is nil")
			}
			if *o.Code != (CodeOptions{}) {
				t.Fatalf("Code = %+v, want zero value", *o.Code)
			}
		}},
	}

	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			o, err := NewOptions(tc.kind)
			if err != nil {
				t.Fatalf("NewOptions(%q) error = %v", tc.kind, err)
			}
			if o.Type != tc.kind {
				t.Fatalf("Type = %q, want %q", o.Type, tc.kind)
			}
			tc.check(t, o)
		})
	}
}

func TestNewOptionsUnknownKind(t *testing.T) {
	if _, err := NewOptions(Kind("Music")); err == nil {
		t.Fatal("NewOptions accepted an unknown kind")
	}
}

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds() {
		got, err := ParseKind(string(kind))
		if err != nil {
			t.Fatalf("ParseKind(%q) error = %v", kind, err)
		}
		if got != kind {
			t.Fatalf("ParseKind(%q) = %q", kind, got)
		}
	}
	if _, err := ParseKind("text"); err == nil {
		t.Fatal("ParseKind accepted a lowercase discriminator")
	}
}

func TestPromptOptionsValid(t *testing.T) {
	for _, kind := range Kinds() {
		if !MustNewOptions(kind).Valid() {
			t.Fatalf("fresh %q options reported invalid", kind)
		}
	}

	tests := []struct {
		name string
		opts PromptOptions
	}{
		{"zero value", PromptOptions{}},
		{"kind without variant", PromptOptions{Type: KindText}},
		{"unknown kind", PromptOptions{Type: Kind("Music"), Text: &TextOptions{}}},
		{"mismatched variant", PromptOptions{Type: KindImage, Text: &TextOptions{}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.opts.Valid() {
				t.Fatal("Valid() = true for a broken union")
			}
		})
	}
}

func TestTitleReturnsMainField(t *testing.T) {
	opts := MustNewOptions(KindImage)
	opts.Image.Descripcion = "un faro al atardecer"
	if got := opts.Title(); got != "un faro al atardecer" {
		t.Fatalf("Title() = %q", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	opts := MustNewOptions(KindText)
	opts.Text.Objetivo = "original"

	clone := opts.Clone()
	clone.Text.Objetivo = "changed"

	if opts.Text.Objetivo != "original" {
		t.Fatalf("Clone aliases the source: Objetivo = %q", opts.Text.Objetivo)
	}
}

func TestMarshalJSONFlattensVariant(t *testing.T) {
	opts := MustNewOptions(KindText)
	opts.Text.Objetivo = "escribir un email"
	opts.Text.Tono = "Formal"

	raw, err := json.Marshal(opts)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var flat map[string]any
	if err := json.Unmarshal(raw, &flat); err != nil {
		t.Fatalf("Unmarshal flat map: %v", err)
	}
	if flat["type"] != "Text" {
		t.Fatalf(`flat["type"] = %v, want "Text"`, flat["type"])
	}
	if flat["objetivo"] != "escribir un email" {
		t.Fatalf(`flat["objetivo"] = %v`, flat["objetivo"])
	}
	if strings.Contains(string(raw), `"Text":`) {
		t.Fatalf("variant was nested, not flattened: %s", raw)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	opts := MustNewOptions(KindVideo)
	opts.Video.Escena = "una tormenta en el mar"
	opts.Video.Camara = "drone"

	raw, err := json.Marshal(opts)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var back PromptOptions
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.Type != KindVideo || back.Video == nil {
		t.Fatalf("round trip lost the variant: %+v", back)
	}
	if *back.Video != *opts.Video {
		t.Fatalf("round trip = %+v, want %+v", *back.Video, *opts.Video)
	}
}

func TestUnmarshalJSONRejectsUnknownType(t *testing.T) {
	var o PromptOptions
	if err := json.Unmarshal([]byte(`{"type":"Music"}`), &o); err == nil {
		t.Fatal("Unmarshal accepted an unknown discriminator")
	}
}
