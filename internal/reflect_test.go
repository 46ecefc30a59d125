package internal

import (
	"strings"
	"testing"
)

func TestDescribeSettings(t *testing.T) {
	s := DefaultSettings()
	infos := DescribeSettings(&s)
	expectedKeys := []string{"L", "F", "D", "A", "G", "V"}
	if len(infos) != len(expectedKeys) {
		t.Fatalf("expected %d toggleable settings, but got %d: %v", len(expectedKeys), len(infos), infos)
	}
	for i, expected := range expectedKeys {
		if infos[i].Key != expected {
			t.Fatalf("expected key %s at position %d, but got %s", expected, i, infos[i].Key)
		}
	}
	if infos[0] != (SettingInfo{Field: "ShowLabels", Name: "Labels", Key: "L", Value: false}) {
		t.Fatalf("unexpected first setting %+v", infos[0])
	}
	if !infos[2].Value || infos[2].Name != "Depth fog" {
		t.Fatalf("expected depth fog on by default, got %+v", infos[2])
	}
}

func TestToggleSetting(t *testing.T) {
	s := DefaultSettings()
	info, ok := ToggleSetting(&s, "d") // Case insensitive
	if !ok || info.Field != "DepthFog" || info.Value {
		t.Fatalf("unexpected toggle result %+v (%v)", info, ok)
	}
	if s.DepthFog {
		t.Fatal("expected the field to be updated")
	}
	if _, ok = ToggleSetting(&s, "D"); !ok || !s.DepthFog {
		t.Fatal("expected a second toggle to restore the field")
	}
	before := s
	if _, ok = ToggleSetting(&s, "Z"); ok || s != before {
		t.Fatal("unknown keys must not change anything")
	}
}

func TestControlsText(t *testing.T) {
	s := DefaultSettings()
	text := ControlsText(&s)
	if strings.Count(text, "\n") != 6 {
		t.Fatalf("expected one line per setting, got %q", text)
	}
	for _, line := range []string{"Labels: false [L]", "Depth fog: true [D]", "Vertex sphere: true [V]"} {
		if !strings.Contains(text, line) {
			t.Fatalf("expected %q in %q", line, text)
		}
	}
}

func BenchmarkDescribeSettings(b *testing.B) {
	s := DefaultSettings()
	for i := 0; i < b.N; i++ {
		DescribeSettings(&s)
	}
}
