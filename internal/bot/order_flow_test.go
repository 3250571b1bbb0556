package bot

import (
	"strings"
	"testing"

	"github.com/Canyildiz1386/SultanPanelBot/internal/smm"
)

func svc(id, category string) smm.Service {
	var s smm.Service
	s.Name = "svc " + id
	s.Category = category
	return s
}

func TestGroupByPlatform(t *testing.T) {
	services := []smm.Service{
		svc("1", "Instagram Followers"),
		svc("2", "YouTube Views"),
		svc("3", "Instagram Likes"),
		svc("4", "Website Traffic"),
	}

	groups := groupByPlatform(services)

	byName := make(map[string]int)
	for _, g := range groups {
		byName[g.Name] = len(g.Services)
	}
	if byName["📸 Instagram"] != 2 {
		t.Errorf("instagram got %d services, want 2", byName["📸 Instagram"])
	}
	if byName["▶️ YouTube"] != 1 {
		t.Errorf("youtube got %d services, want 1", byName["▶️ YouTube"])
	}
	if byName["🧩 Other"] != 1 {
		t.Errorf("unmatched services should land in Other, got %d", byName["🧩 Other"])
	}

	// Platforms with no services never show up as empty buttons.
	for _, g := range groups {
		if len(g.Services) == 0 {
			t.Errorf("group %q is empty", g.Name)
		}
	}
}

func TestGroupByPlatformCaseInsensitive(t *testing.T) {
	groups := groupByPlatform([]smm.Service{svc("1", "INSTAGRAM reels")})
	if len(groups) != 1 || groups[0].Name != "📸 Instagram" {
		t.Fatalf("groups = %+v, want a single Instagram group", groups)
	}
}

func TestGroupByCategoryPreservesOrder(t *testing.T) {
	services := []smm.Service{
		svc("1", "Instagram Followers"),
		svc("2", "Instagram Likes"),
		svc("3", "Instagram Followers"),
	}

	groups := groupByCategory(services)
	if len(groups) != 2 {
		t.Fatalf("got %d categories, want 2", len(groups))
	}
	if groups[0].Name != "Instagram Followers" || groups[1].Name != "Instagram Likes" {
		t.Fatalf("category order = %q, %q", groups[0].Name, groups[1].Name)
	}
	if len(groups[0].Services) != 2 {
		t.Fatalf("first category has %d services, want 2", len(groups[0].Services))
	}
}

func TestProgressBar(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		remains  int
		wantPct  string
		filled   int
	}{
		{"not started", 1000, 1000, "0%", 0},
		{"half done", 1000, 500, "50%", 5},
		{"complete", 1000, 0, "100%", 10},
		{"over-delivered", 1000, -50, "100%", 10},
		{"zero quantity", 0, 0, "100%", 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bar := progressBar(tc.quantity, tc.remains)
			if !strings.HasSuffix(bar, tc.wantPct) {
				t.Errorf("bar %q does not end with %q", bar, tc.wantPct)
			}
			if got := strings.Count(bar, "▓"); got != tc.filled {
				t.Errorf("bar %q has %d filled segments, want %d", bar, got, tc.filled)
			}
			if got := strings.Count(bar, "░"); got != 10-tc.filled {
				t.Errorf("bar %q has %d empty segments, want %d", bar, got, 10-tc.filled)
			}
		})
	}
}

func TestTranslationsFallBackToEnglish(t *testing.T) {
	if tr("fa", "welcome") == "" {
		t.Fatal("farsi copy missing")
	}
	if got := tr("ar", "welcome"); got != texts["en"]["welcome"] {
		t.Fatalf("arabic should fall back to english, got %q", got)
	}
	if got := tr("en", "no-such-key"); got != "" {
		t.Fatalf("unknown keys resolve to empty string, got %q", got)
	}
}
