package xrandr

import (
	"context"
	"errors"
	"os/exec"
	"reflect"
	"strings"
	"testing"

	"github.com/1broseidon/randrtile/internal/layout"
)

func parseFixture(t *testing.T) layout.Monitors {
	t.Helper()
	ms, err := Parse(strings.NewReader(DebugQuery))
	if err != nil {
		t.Fatalf("Parse(DebugQuery) error: %v", err)
	}
	return ms
}

func TestParse_DebugQuery(t *testing.T) {
	ms := parseFixture(t)

	if len(ms) != 3 {
		t.Fatalf("got %d monitors, want 3", len(ms))
	}

	tests := []struct {
		name      string
		primary   bool
		res       layout.Size
		pos       layout.Point
		modes     int
		left      int
		right     int
		framerate float64
	}{
		{"HDMI-1", true, layout.Size{W: 2560, H: 1440}, layout.Point{X: 0, Y: 0}, 12, layout.None, 1, 60},
		{"DP-1", false, layout.Size{W: 1920, H: 1080}, layout.Point{X: 2560, Y: 0}, 10, 0, 2, 60},
		{"DP-2", false, layout.Size{W: 1920, H: 1080}, layout.Point{X: 4480, Y: 0}, 10, 1, layout.None, 60},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ms[i]
			if m.Name != tt.name {
				t.Fatalf("Name = %q, want %q", m.Name, tt.name)
			}
			if !m.Enabled {
				t.Error("parsed monitor is not enabled")
			}
			if m.Primary != tt.primary {
				t.Errorf("Primary = %v, want %v", m.Primary, tt.primary)
			}
			if m.Resolution != tt.res || m.Displayed != tt.res {
				t.Errorf("Resolution = %v, Displayed = %v, want %v", m.Resolution, m.Displayed, tt.res)
			}
			if m.Scale != 1 {
				t.Errorf("Scale = %v, want 1", m.Scale)
			}
			if m.Position != tt.pos {
				t.Errorf("Position = %v, want %v", m.Position, tt.pos)
			}
			if len(m.Modes) != tt.modes {
				t.Errorf("len(Modes) = %d, want %d", len(m.Modes), tt.modes)
			}
			if m.Left != tt.left || m.Right != tt.right || m.Up != layout.None || m.Down != layout.None {
				t.Errorf("links L%d R%d U%d D%d, want L%d R%d", m.Left, m.Right, m.Up, m.Down, tt.left, tt.right)
			}
			if m.Framerate != tt.framerate {
				t.Errorf("Framerate = %v, want %v", m.Framerate, tt.framerate)
			}
		})
	}

	if got, want := ms[1].Modes[layout.Size{W: 1920, H: 1080}], []float64{60, 59.94, 50}; !reflect.DeepEqual(got, want) {
		t.Errorf("DP-1 1920x1080 rates = %v, want %v", got, want)
	}
	if got, want := ms[0].Modes[layout.Size{W: 2560, H: 1440}], []float64{60, 59.95}; !reflect.DeepEqual(got, want) {
		t.Errorf("HDMI-1 2560x1440 rates = %v, want %v", got, want)
	}
	if err := ms.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestParse_SkipsMalformedAndInactive(t *testing.T) {
	input := strings.Join([]string{
		"Screen 0: minimum 320 x 200, current 3840 x 1080, maximum 16384 x 16384",
		"eDP-1 connected 1920x1080+0+0 (normal left inverted right x axis y axis) 309mm x 174mm",
		"   1920x1080     60.00*+  48.00 +",
		"   garbage line",
		"   1280x720      sixty    59.94",
		"HDMI-1 connected (normal left inverted right x axis y axis)",
		"   1920x1080     60.00 +",
		"HDMI-2 disconnected (normal left inverted right x axis y axis)",
		"DP-1 connected 1920x1080+1920+0 (normal left inverted right x axis y axis) 527mm x 296mm",
		"   1920x1080     60.00 +",
		"DP-2 connected 1920x1080+1920+0",
		"DP-3 connected 1920x1080+1920+0 (normal left inverted right x axis y axis) 527mm x 296mm",
		"   1920x1080     60.00*+",
		"   1920x1080i    60.00    50.00",
	}, "\n")

	ms, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	var names []string
	for _, m := range ms {
		names = append(names, m.Name)
	}
	// Outputs without a physical size or an active mode are dropped.
	if want := []string{"eDP-1", "DP-3"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}

	edp := ms[0]
	if got, want := edp.Modes[layout.Size{W: 1920, H: 1080}], []float64{60, 48}; !reflect.DeepEqual(got, want) {
		t.Errorf("eDP-1 1920x1080 rates = %v, want %v", got, want)
	}
	if got, want := edp.Modes[layout.Size{W: 1280, H: 720}], []float64{59.94}; !reflect.DeepEqual(got, want) {
		t.Errorf("eDP-1 1280x720 rates = %v, want %v", got, want)
	}

	// Interlaced modes share the size key and append their rates.
	if got, want := ms[1].Modes[layout.Size{W: 1920, H: 1080}], []float64{60, 60, 50}; !reflect.DeepEqual(got, want) {
		t.Errorf("DP-3 1920x1080 rates = %v, want %v", got, want)
	}
	if ms[0].Right != 1 || ms[1].Left != 0 {
		t.Errorf("links: eDP-1.Right = %d, DP-3.Left = %d", ms[0].Right, ms[1].Left)
	}
}

func TestParse_ScaledOutput(t *testing.T) {
	input := "eDP-1 connected primary 2400x1350+0+0 (normal left inverted right x axis y axis) 309mm x 174mm\n" +
		"   1920x1080     60.00*+\n"

	ms, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	m := ms[0]
	if m.Scale != 0.8 {
		t.Errorf("Scale = %v, want 0.8", m.Scale)
	}
	if m.Resolution != (layout.Size{W: 1920, H: 1080}) || m.Displayed != (layout.Size{W: 2400, H: 1350}) {
		t.Errorf("Resolution = %v, Displayed = %v", m.Resolution, m.Displayed)
	}
	if got := Args(ms); got[len(got)-1] != "1.25" {
		t.Errorf("scale argument = %q, want 1.25", got[len(got)-1])
	}
}

func TestParse_NoOutputs(t *testing.T) {
	_, err := Parse(strings.NewReader("Screen 0: minimum 320 x 200\nHDMI-1 disconnected\n"))
	if !errors.Is(err, ErrNoOutputs) {
		t.Fatalf("Parse() error = %v, want ErrNoOutputs", err)
	}
}

func TestArgs(t *testing.T) {
	ms := parseFixture(t)

	want := []string{
		"--output", "HDMI-1", "--primary", "--mode", "2560x1440", "--rate", "60", "--pos", "0x0", "--scale", "1.00",
		"--output", "DP-1", "--mode", "1920x1080", "--rate", "60", "--pos", "2560x0", "--scale", "1.00",
		"--output", "DP-2", "--mode", "1920x1080", "--rate", "60", "--pos", "4480x0", "--scale", "1.00",
	}
	if got := Args(ms); !reflect.DeepEqual(got, want) {
		t.Fatalf("Args() =\n%v\nwant\n%v", got, want)
	}

	if err := ms[1].SetFramerate(1); err != nil {
		t.Fatal(err)
	}
	if err := ms.Disconnect(2); err != nil {
		t.Fatal(err)
	}
	got := Args(ms)
	if strings.Contains(strings.Join(got, " "), "DP-2") {
		t.Errorf("disabled output serialized: %v", got)
	}
	if got[16] != "59.94" {
		t.Errorf("DP-1 rate = %q, want 59.94", got[16])
	}
}

func TestPreview(t *testing.T) {
	ms := parseFixture(t)
	want := "xrandr\n" +
		"> --output HDMI-1 --primary --mode 2560x1440 --rate 60 --pos 0x0 --scale 1.00\n" +
		"> --output DP-1 --mode 1920x1080 --rate 60 --pos 2560x0 --scale 1.00\n" +
		"> --output DP-2 --mode 1920x1080 --rate 60 --pos 4480x0 --scale 1.00"
	if got := Preview(ms); got != want {
		t.Fatalf("Preview() =\n%s\nwant\n%s", got, want)
	}
	if got := CommandLine("xrandr", ms[:1]); got != "xrandr --output HDMI-1 --primary --mode 2560x1440 --rate 60 --pos 0x0 --scale 1.00" {
		t.Errorf("CommandLine() = %q", got)
	}
}

func TestRunner_DebugLoad(t *testing.T) {
	r := &Runner{Command: "/nonexistent/xrandr", Debug: true}
	ms, err := r.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(ms) != 3 {
		t.Fatalf("got %d monitors, want 3", len(ms))
	}
}

func TestRunner_MissingBinary(t *testing.T) {
	r := &Runner{Command: "/nonexistent/xrandr"}
	if _, err := r.Query(context.Background()); err == nil {
		t.Fatal("expected error for a missing binary")
	}
}

func TestRunner_ApplyFailure(t *testing.T) {
	bin, err := exec.LookPath("false")
	if err != nil {
		t.Skip("false not available")
	}
	r := &Runner{Command: bin}
	if err := r.Apply(context.Background(), parseFixture(t)); err == nil {
		t.Fatal("expected error from a failing command")
	}
	if err := r.Apply(context.Background(), nil); err == nil {
		t.Fatal("expected error for an empty layout")
	}
}
