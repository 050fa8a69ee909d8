package prefs

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/urbanbyte/sentinela/internal/auth"
	"github.com/urbanbyte/sentinela/internal/store"
)

func TestPrefsDefaults(t *testing.T) {
	kv := store.NewMemoryKV()
	holder := NewHolder(context.Background(), kv, "PO-1", "pt-BR", zerolog.Nop())

	current := holder.Current()
	if current.DarkMode || current.SidebarCollapsed {
		t.Fatalf("padrões booleanos deveriam ser falsos: %+v", current)
	}
	if current.Locale != "pt-BR" {
		t.Fatalf("locale padrão inesperado: %q", current.Locale)
	}
}

func TestPrefsRoundTrip(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()

	holder := NewHolder(ctx, kv, "PO-1", "pt-BR", zerolog.Nop())
	holder.SetDarkMode(ctx, true)
	holder.SetLocale(ctx, "en-US")
	holder.SetSidebarCollapsed(ctx, true)

	revived := NewHolder(ctx, kv, "PO-1", "pt-BR", zerolog.Nop())
	current := revived.Current()
	if !current.DarkMode || !current.SidebarCollapsed || current.Locale != "en-US" {
		t.Fatalf("preferências não sobreviveram à rehidratação: %+v", current)
	}
}

func TestPrefsIsolatedPerOfficer(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()

	a := NewHolder(ctx, kv, "PO-1", "pt-BR", zerolog.Nop())
	a.SetDarkMode(ctx, true)

	b := NewHolder(ctx, kv, "PO-2", "pt-BR", zerolog.Nop())
	if b.Current().DarkMode {
		t.Fatal("preferências de outro policial não deveriam vazar")
	}
}

func TestPrefsCorruptDataFallsBackToDefaults(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()

	if err := kv.Set(ctx, auth.PrefsKey("PO-1"), "não é json", time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}

	holder := NewHolder(ctx, kv, "PO-1", "pt-BR", zerolog.Nop())
	current := holder.Current()
	if current.DarkMode || current.Locale != "pt-BR" {
		t.Fatalf("dados corrompidos deveriam cair nos padrões: %+v", current)
	}
}

func TestCoerceBool(t *testing.T) {
	cases := []struct {
		raw  string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"false", true, false},
		{"1", false, true},
		{"0", true, false},
		{"talvez", true, true},
		{"", false, false},
	}
	for _, tc := range cases {
		if got := coerceBool(tc.raw, tc.def); got != tc.want {
			t.Errorf("coerceBool(%q, %v) = %v, esperado %v", tc.raw, tc.def, got, tc.want)
		}
	}
}
