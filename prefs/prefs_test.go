package prefs

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "prefs.toml", `
handle_size = 5
pick_tolerance = 2.5
log_level = "debug"

[grid]
xray = true
spacing = 10
emp_spacing = 4
`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.HandleSize != 5 {
		t.Errorf("HandleSize = %d, want 5", p.HandleSize)
	}
	if p.PickTolerance != 2.5 {
		t.Errorf("PickTolerance = %v, want 2.5", p.PickTolerance)
	}
	if !p.Grid.XRay || p.Grid.Spacing != 10 || p.Grid.EmpSpacing != 4 {
		t.Errorf("Grid = %+v, want xray, spacing 10, emp_spacing 4", p.Grid)
	}
	if p.Grid.Color != Defaults().Grid.Color {
		t.Errorf("Grid.Color = %q, want the default %q", p.Grid.Color, Defaults().Grid.Color)
	}
	if l, err := p.Level(); err != nil || l != slog.LevelDebug {
		t.Errorf("Level() = %v, %v; want %v, nil", l, err, slog.LevelDebug)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "prefs.yml", `
handle_size: 2
grid:
  no_emphasis_when_zoomed_out: true
  dotted: true
`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.HandleSize != 2 {
		t.Errorf("HandleSize = %d, want 2", p.HandleSize)
	}
	if !p.Grid.NoEmphasisWhenZoomedOut || !p.Grid.Dotted {
		t.Errorf("Grid = %+v, want no_emphasis_when_zoomed_out and dotted", p.Grid)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeFile(t, "prefs.toml", "handle_size = 5\n")
	t.Setenv("OVERLAY_HANDLE_SIZE", "6")
	t.Setenv("OVERLAY_GRID_XRAY", "true")

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.HandleSize != 6 {
		t.Errorf("HandleSize = %d, want 6", p.HandleSize)
	}
	if !p.Grid.XRay {
		t.Error("Grid.XRay = false, want true")
	}
}

func TestLoadEnvBadValue(t *testing.T) {
	t.Setenv("OVERLAY_PICK_TOLERANCE", "wide")
	if _, err := Load(""); err == nil {
		t.Error("Load() succeeded with a malformed environment value")
	}
}

func TestLoadNormalizes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"too small", "handle_size = 0\n", MinHandleSize},
		{"too large", "handle_size = 12\n", MaxHandleSize},
		{"in range", "handle_size = 4\n", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Load(writeFile(t, "prefs.toml", tt.content))
			if err != nil {
				t.Fatal(err)
			}
			if p.HandleSize != tt.want {
				t.Errorf("HandleSize = %d, want %d", p.HandleSize, tt.want)
			}
		})
	}
}

func TestLoadClampsSnapTolerance(t *testing.T) {
	p, err := Load(writeFile(t, "prefs.toml", "[grid]\nsnap_tolerance = -3\n"))
	if err != nil {
		t.Fatal(err)
	}
	if p.Grid.SnapTolerance != 0 {
		t.Errorf("Grid.SnapTolerance = %v, want 0", p.Grid.SnapTolerance)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want %v", err, fs.ErrNotExist)
	}
	if _, err := Load(writeFile(t, "prefs.ini", "a=b")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Load(ini) error = %v, want %v", err, ErrUnknownFormat)
	}
	if _, err := Load(writeFile(t, "prefs.toml", "handle_size = [")); err == nil {
		t.Error("Load() succeeded on malformed TOML")
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"ERROR", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := Preferences{LogLevel: tt.in}.Level()
		if (err != nil) != tt.wantErr {
			t.Errorf("Level(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("Level(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWatch(t *testing.T) {
	path := writeFile(t, "prefs.toml", "handle_size = 3\n")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Preferences, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(p Preferences, err error) {
			if err == nil {
				got <- p
			}
		})
	}()

	// The watcher starts asynchronously, so keep rewriting until a reload
	// arrives.
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case p := <-got:
			if p.HandleSize != 7 {
				continue
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch() error = %v", err)
			}
			return
		case <-tick.C:
			if err := os.WriteFile(path, []byte("handle_size = 7\n"), 0o600); err != nil {
				t.Fatal(err)
			}
		case <-timeout:
			t.Fatal("no reload after rewriting the file")
		}
	}
}
