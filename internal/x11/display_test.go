package x11

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestResolveDisplay(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"X0", "X2", "X10", "Xbad", "other"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o600); err != nil {
			t.Fatalf("write socket stub: %v", err)
		}
	}

	origEnv, origReadDir := getenvFn, readDirFn
	t.Cleanup(func() { getenvFn, readDirFn = origEnv, origReadDir })
	readDirFn = func(string) ([]os.DirEntry, error) { return os.ReadDir(dir) }

	tests := []struct {
		name     string
		explicit string
		env      string
		want     string
	}{
		{"explicit wins", " :3 ", ":1", ":3"},
		{"environment", "", ":1", ":1"},
		{"highest socket", "", "", ":10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenvFn = func(string) string { return tt.env }
			if got := ResolveDisplay(tt.explicit); got != tt.want {
				t.Fatalf("ResolveDisplay(%q) = %q, want %q", tt.explicit, got, tt.want)
			}
		})
	}
}

func TestDisplayFromSockets_Missing(t *testing.T) {
	if got := displayFromSockets(filepath.Join(t.TempDir(), "absent")); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestWithDisplay(t *testing.T) {
	env := []string{"HOME=/home/u", "DISPLAY=:0", "TERM=xterm"}
	got := WithDisplay(env, ":1")
	want := []string{"HOME=/home/u", "TERM=xterm", "DISPLAY=:1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("WithDisplay = %v, want %v", got, want)
	}
	if got := WithDisplay(env, ""); !reflect.DeepEqual(got, env) {
		t.Fatalf("empty display changed env: %v", got)
	}
}
