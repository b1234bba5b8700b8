package layout

import (
	"errors"
	"reflect"
	"testing"
)

// placed is the observable outcome of an operation: which monitor sits at
// each index and where.
type placed struct {
	name string
	pos  Point
}

func testMonitor(name string, res Size) Monitor {
	m := NewMonitor(name)
	m.Resolution = res
	m.Displayed = res
	m.Modes[res] = []float64{60, 59.94}
	m.Modes[Size{W: 1280, H: 720}] = []float64{60, 50}
	m.Framerate = 60
	return m
}

// fixture mirrors the debug layout: HDMI-1 2560x1440 followed by two
// 1920x1080 DisplayPort outputs on one row.
func fixture() Monitors {
	ms := Monitors{
		testMonitor("HDMI-1", Size{W: 2560, H: 1440}),
		testMonitor("DP-1", Size{W: 1920, H: 1080}),
		testMonitor("DP-2", Size{W: 1920, H: 1080}),
	}
	ms[0].Primary = true
	return place(ms, Point{0, 0}, Point{2560, 0}, Point{4480, 0})
}

func place(ms Monitors, pos ...Point) Monitors {
	for i, p := range pos {
		ms[i].Position = p
	}
	ms.RecomputeProximity()
	return ms
}

func snapshot(ms Monitors) []placed {
	out := make([]placed, len(ms))
	for i, m := range ms {
		out[i] = placed{name: m.Name, pos: m.Position}
	}
	return out
}

func assertLayout(t *testing.T, ms Monitors, want []placed) {
	t.Helper()
	if got := snapshot(ms); !reflect.DeepEqual(got, want) {
		t.Fatalf("layout = %v, want %v", got, want)
	}
	if err := ms.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestRecomputeProximity_Fixture(t *testing.T) {
	ms := fixture()

	tests := []struct {
		idx                   int
		left, right, up, down int
	}{
		{0, None, 1, None, None},
		{1, 0, 2, None, None},
		{2, 1, None, None, None},
	}
	for _, tt := range tests {
		m := ms[tt.idx]
		got := [4]int{m.Left, m.Right, m.Up, m.Down}
		want := [4]int{tt.left, tt.right, tt.up, tt.down}
		if got != want {
			t.Errorf("%s links (l,r,u,d) = %v, want %v", m.Name, got, want)
		}
	}
	if err := ms.Validate(); err != nil {
		t.Fatalf("fixture should be valid: %v", err)
	}
}

func TestRecomputeProximity_ClearsStaleLinks(t *testing.T) {
	ms := fixture()
	ms[2].Position = Point{5000, 0}
	ms.RecomputeProximity()
	if ms[1].Right != None || ms[2].Left != None {
		t.Fatalf("stale link kept: DP-1.right=%d DP-2.left=%d", ms[1].Right, ms[2].Left)
	}
}

func TestSwap(t *testing.T) {
	tests := []struct {
		name string
		pos  []Point
		a, b int
		dir  Direction
		want []placed
	}{
		{
			name: "right along a row",
			pos:  []Point{{0, 0}, {2560, 0}, {4480, 0}},
			a:    0, b: 1, dir: Right,
			want: []placed{{"DP-1", Point{0, 0}}, {"HDMI-1", Point{1920, 0}}, {"DP-2", Point{4480, 0}}},
		},
		{
			name: "left along a row",
			pos:  []Point{{0, 0}, {2560, 0}, {4480, 0}},
			a:    1, b: 0, dir: Left,
			want: []placed{{"DP-1", Point{0, 0}}, {"HDMI-1", Point{1920, 0}}, {"DP-2", Point{4480, 0}}},
		},
		{
			name: "down with child on the right",
			pos:  []Point{{0, 0}, {0, 1440}, {1920, 1440}},
			a:    0, b: 1, dir: Down,
			want: []placed{{"DP-1", Point{0, 0}}, {"HDMI-1", Point{0, 1080}}, {"DP-2", Point{2560, 1080}}},
		},
		{
			name: "down with child on the left",
			pos:  []Point{{1920, 0}, {0, 1440}, {1920, 1440}},
			a:    0, b: 2, dir: Down,
			want: []placed{{"DP-2", Point{1920, 0}}, {"DP-1", Point{0, 1080}}, {"HDMI-1", Point{1920, 1080}}},
		},
		{
			name: "left with child below",
			pos:  []Point{{1920, 0}, {0, 0}, {0, 1080}},
			a:    0, b: 1, dir: Left,
			want: []placed{{"DP-1", Point{2560, 0}}, {"HDMI-1", Point{0, 0}}, {"DP-2", Point{0, 1440}}},
		},
		{
			name: "left with child above",
			pos:  []Point{{1920, 1080}, {0, 0}, {0, 1080}},
			a:    0, b: 2, dir: Left,
			want: []placed{{"DP-2", Point{2560, 1080}}, {"DP-1", Point{0, 0}}, {"HDMI-1", Point{0, 1080}}},
		},
		{
			name: "left under a neighbor",
			pos:  []Point{{1920, 1080}, {0, 1080}, {1920, 0}},
			a:    0, b: 1, dir: Left,
			want: []placed{{"DP-1", Point{2560, 1080}}, {"HDMI-1", Point{0, 1080}}, {"DP-2", Point{2560, 0}}},
		},
		{
			name: "right under a neighbor",
			pos:  []Point{{1920, 1080}, {0, 1080}, {1920, 0}},
			a:    1, b: 0, dir: Right,
			want: []placed{{"DP-1", Point{2560, 1080}}, {"HDMI-1", Point{0, 1080}}, {"DP-2", Point{2560, 0}}},
		},
		{
			name: "up beside a neighbor",
			pos:  []Point{{1920, 1080}, {0, 0}, {1920, 0}},
			a:    0, b: 2, dir: Up,
			want: []placed{{"DP-2", Point{1920, 1440}}, {"DP-1", Point{0, 0}}, {"HDMI-1", Point{1920, 0}}},
		},
		{
			name: "down a column",
			pos:  []Point{{0, 0}, {0, 1440}, {0, 2520}},
			a:    0, b: 1, dir: Down,
			want: []placed{{"DP-1", Point{0, 0}}, {"HDMI-1", Point{0, 1080}}, {"DP-2", Point{0, 2520}}},
		},
		{
			name: "up a column",
			pos:  []Point{{0, 0}, {0, 1440}, {0, 2520}},
			a:    1, b: 0, dir: Up,
			want: []placed{{"DP-1", Point{0, 0}}, {"HDMI-1", Point{0, 1080}}, {"DP-2", Point{0, 2520}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := place(fixture(), tt.pos...)
			if err := ms.Swap(tt.a, tt.b, tt.dir); err != nil {
				t.Fatalf("Swap() error: %v", err)
			}
			assertLayout(t, ms, tt.want)
		})
	}
}

func TestSwap_RequiresAdjacency(t *testing.T) {
	ms := fixture()
	before := ms.Clone()
	if err := ms.Swap(0, 2, Right); err == nil {
		t.Fatal("expected error swapping non-adjacent monitors")
	}
	if !reflect.DeepEqual(ms, before) {
		t.Fatal("failed swap must not mutate the layout")
	}
}

func TestFindPivots(t *testing.T) {
	ms := fixture()

	p, side, ok := ms.FindHorizontalPivot(1, Down)
	if !ok || p != 0 || side != Left {
		t.Fatalf("FindHorizontalPivot(1, down) = %d, %s, %v; want 0, left, true", p, side, ok)
	}
	p, side, ok = ms.FindHorizontalPivot(0, Up)
	if !ok || p != 1 || side != Right {
		t.Fatalf("FindHorizontalPivot(0, up) = %d, %s, %v; want 1, right, true", p, side, ok)
	}
	if _, _, ok := ms.FindVerticalPivot(0, Left); ok {
		t.Fatal("a single row has no vertical pivot")
	}
}

func TestVertPush(t *testing.T) {
	tests := []struct {
		name string
		sel  int
		dir  Direction
		want []placed
	}{
		{
			name: "up from the left end",
			sel:  0, dir: Up,
			want: []placed{{"HDMI-1", Point{0, 0}}, {"DP-1", Point{0, 1440}}, {"DP-2", Point{1920, 1440}}},
		},
		{
			name: "down from the left end",
			sel:  0, dir: Down,
			want: []placed{{"HDMI-1", Point{0, 1080}}, {"DP-1", Point{0, 0}}, {"DP-2", Point{1920, 0}}},
		},
		{
			name: "down from the middle",
			sel:  1, dir: Down,
			want: []placed{{"HDMI-1", Point{0, 0}}, {"DP-1", Point{0, 1440}}, {"DP-2", Point{2560, 0}}},
		},
		{
			name: "up from the middle",
			sel:  1, dir: Up,
			want: []placed{{"HDMI-1", Point{0, 1080}}, {"DP-1", Point{0, 0}}, {"DP-2", Point{2560, 1080}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := fixture()
			pivot, side, ok := ms.FindHorizontalPivot(tt.sel, tt.dir)
			if !ok {
				t.Fatal("expected a pivot")
			}
			if err := ms.VertPush(tt.sel, pivot, side, tt.dir); err != nil {
				t.Fatalf("VertPush() error: %v", err)
			}
			assertLayout(t, ms, tt.want)
		})
	}
}

func TestHorizontalPush(t *testing.T) {
	// DP-1 sits on top of HDMI-1, DP-2 to the right of HDMI-1.
	ms := place(fixture(), Point{0, 1080}, Point{0, 0}, Point{2560, 1080})

	pivot, side, ok := ms.FindVerticalPivot(1, Left)
	if !ok || pivot != 0 || side != Down {
		t.Fatalf("FindVerticalPivot(1, left) = %d, %s, %v", pivot, side, ok)
	}
	if err := ms.HorizontalPush(1, pivot, side, Left); err != nil {
		t.Fatalf("HorizontalPush() error: %v", err)
	}
	assertLayout(t, ms, []placed{
		{"HDMI-1", Point{1920, 0}},
		{"DP-1", Point{0, 0}},
		{"DP-2", Point{4480, 0}},
	})
}

func TestPush_RejectsWrongAxis(t *testing.T) {
	ms := fixture()
	if err := ms.VertPush(0, 1, Right, Left); err == nil {
		t.Fatal("VertPush with a horizontal direction should fail")
	}
	if err := ms.HorizontalPush(0, 1, Right, Left); err == nil {
		t.Fatal("HorizontalPush with a horizontal side should fail")
	}
}

func TestTraverse(t *testing.T) {
	t.Run("no corner on a single row", func(t *testing.T) {
		ms := fixture()
		if ms.Traverse(0, Down) {
			t.Fatal("Traverse should fail without an orthogonal target")
		}
	})

	t.Run("down around a corner", func(t *testing.T) {
		// DP-1 and DP-2 on top, HDMI-1 under DP-2.
		ms := place(fixture(), Point{1920, 1080}, Point{0, 0}, Point{1920, 0})
		if !ms.Traverse(1, Down) {
			t.Fatal("expected traversal")
		}
		assertLayout(t, ms, []placed{
			{"HDMI-1", Point{1920, 1080}},
			{"DP-1", Point{0, 1080}},
			{"DP-2", Point{1920, 0}},
		})
		if ms[1].Right != 0 || ms[0].Left != 1 {
			t.Fatalf("DP-1 should now sit left of HDMI-1, links r=%d l=%d", ms[1].Right, ms[0].Left)
		}
	})
}

func TestShiftMons(t *testing.T) {
	ms := fixture()
	visited := ms.ShiftMons(1, 100, false, nil)

	if want := map[int]bool{1: true, 2: true}; !reflect.DeepEqual(visited, want) {
		t.Fatalf("visited = %v, want %v", visited, want)
	}
	want := []placed{{"HDMI-1", Point{0, 0}}, {"DP-1", Point{2460, 0}}, {"DP-2", Point{4380, 0}}}
	if got := snapshot(ms); !reflect.DeepEqual(got, want) {
		t.Fatalf("layout = %v, want %v", got, want)
	}
}

func TestShiftMons_VerticalFollowsLeft(t *testing.T) {
	ms := fixture()
	visited := ms.ShiftMons(2, -50, true, nil)
	if len(visited) != 3 {
		t.Fatalf("vertical shift should reach the whole row, visited %v", visited)
	}
	for _, m := range ms {
		if m.Position.Y != 50 {
			t.Fatalf("%s y = %d, want 50", m.Name, m.Position.Y)
		}
	}
}

func TestShiftRes(t *testing.T) {
	ms := fixture()
	ms.ShiftRes(0, Size{W: -512, H: -288})
	want := []placed{{"HDMI-1", Point{0, 0}}, {"DP-1", Point{2048, 0}}, {"DP-2", Point{3968, 0}}}
	if got := snapshot(ms); !reflect.DeepEqual(got, want) {
		t.Fatalf("layout = %v, want %v", got, want)
	}
}

func TestUpdateNeighborPositions(t *testing.T) {
	ms := fixture()
	ms[0].Scale = 1.25
	ms[0].UpdateScale()
	ms.UpdateNeighborPositions()
	assertLayout(t, ms, []placed{{"HDMI-1", Point{0, 0}}, {"DP-1", Point{2048, 0}}, {"DP-2", Point{3968, 0}}})
}

func TestDisconnect(t *testing.T) {
	tests := []struct {
		name string
		idx  int
		want []placed
	}{
		{"first", 0, []placed{{"HDMI-1", Point{}}, {"DP-1", Point{0, 0}}, {"DP-2", Point{1920, 0}}}},
		{"middle", 1, []placed{{"HDMI-1", Point{0, 0}}, {"DP-1", Point{}}, {"DP-2", Point{2560, 0}}}},
		{"last", 2, []placed{{"HDMI-1", Point{0, 0}}, {"DP-1", Point{2560, 0}}, {"DP-2", Point{}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := fixture()
			if err := ms.Disconnect(tt.idx); err != nil {
				t.Fatalf("Disconnect() error: %v", err)
			}
			assertLayout(t, ms, tt.want)
			if ms[tt.idx].Enabled {
				t.Fatal("monitor should be disabled")
			}
			if ms[tt.idx].Resolution != (Size{}) {
				t.Fatalf("resolution = %v, want zero", ms[tt.idx].Resolution)
			}
		})
	}
}

func TestDisconnect_LastMonitorRejected(t *testing.T) {
	ms := fixture()
	if err := ms.Disconnect(0); err != nil {
		t.Fatal(err)
	}
	if err := ms.Disconnect(1); err != nil {
		t.Fatal(err)
	}
	before := ms.Clone()
	err := ms.Disconnect(2)
	if !errors.Is(err, ErrLastMonitor) {
		t.Fatalf("Disconnect(last) = %v, want ErrLastMonitor", err)
	}
	if !reflect.DeepEqual(ms, before) {
		t.Fatal("rejected disconnect must not change the layout")
	}
}

func TestConnect_ReattachesAtFirstRowEnd(t *testing.T) {
	ms := fixture()
	if err := ms.Disconnect(2); err != nil {
		t.Fatal(err)
	}
	if err := ms.Connect(2); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	assertLayout(t, ms, []placed{{"HDMI-1", Point{0, 0}}, {"DP-1", Point{2560, 0}}, {"DP-2", Point{4480, 0}}})

	m := ms[2]
	if m.Resolution != (Size{W: 1920, H: 1080}) || m.Scale != 1 || m.Framerate != 60 {
		t.Fatalf("connected monitor = %s @ %v scale %v", m.Resolution, m.Framerate, m.Scale)
	}
	if !errors.Is(ms.Connect(2), ErrAlreadyEnabled) {
		t.Fatal("connecting an enabled monitor should fail")
	}
}

func TestSwap_MixedSizes(t *testing.T) {
	tests := []struct {
		name string
		ms   func() Monitors
		want []placed
	}{
		{
			name: "narrow child follows the shorter monitor",
			ms: func() Monitors {
				return place(Monitors{
					testMonitor("eDP-1", Size{W: 1280, H: 1024}),
					testMonitor("DP-1", Size{W: 1920, H: 1080}),
					testMonitor("DP-2", Size{W: 1280, H: 1024}),
				}, Point{0, 0}, Point{1280, 0}, Point{0, 1024})
			},
			want: []placed{{"DP-1", Point{0, 0}}, {"eDP-1", Point{1920, 0}}, {"DP-2", Point{0, 1080}}},
		},
		{
			name: "wide child moved aside",
			ms: func() Monitors {
				return place(Monitors{
					testMonitor("HDMI-1", Size{W: 2560, H: 1440}),
					testMonitor("DP-1", Size{W: 1920, H: 1080}),
					testMonitor("HDMI-2", Size{W: 2560, H: 1440}),
				}, Point{0, 0}, Point{2560, 0}, Point{0, 1440})
			},
			want: []placed{{"DP-1", Point{0, 0}}, {"HDMI-1", Point{1920, 0}}, {"HDMI-2", Point{4480, 0}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := tt.ms()
			if err := ms.Validate(); err != nil {
				t.Fatalf("starting layout invalid: %v", err)
			}
			if err := ms.Swap(0, 1, Right); err != nil {
				t.Fatalf("Swap() error: %v", err)
			}
			assertLayout(t, ms, tt.want)
		})
	}
}

func TestDisconnect_MixedLayouts(t *testing.T) {
	tests := []struct {
		name string
		ms   func() Monitors
		idx  int
		want []placed
	}{
		{
			// HDMI-1 with DP-1 to its right and DP-2 stacked above DP-1.
			name: "corner leaf with left and up neighbors",
			ms: func() Monitors {
				return place(fixture(), Point{0, 1080}, Point{2560, 1080}, Point{2560, 0})
			},
			idx:  1,
			want: []placed{{"HDMI-1", Point{0, 0}}, {"DP-1", Point{}}, {"DP-2", Point{2560, 0}}},
		},
		{
			// DP-2 slides into HDMI-1's corner with DP-3 below it, onto the
			// spot where eDP-1 hangs under HDMI-1.
			name: "orphaned child collides with the collapsed subtree",
			ms: func() Monitors {
				return place(Monitors{
					testMonitor("DP-1", Size{W: 1920, H: 1080}),
					testMonitor("HDMI-1", Size{W: 2560, H: 1440}),
					testMonitor("DP-2", Size{W: 1920, H: 1080}),
					testMonitor("DP-3", Size{W: 1920, H: 1080}),
					testMonitor("eDP-1", Size{W: 1280, H: 1024}),
				}, Point{0, 0}, Point{1920, 0}, Point{4480, 0}, Point{4480, 1080}, Point{1920, 1440})
			},
			idx: 1,
			want: []placed{
				{"DP-1", Point{0, 0}},
				{"HDMI-1", Point{}},
				{"DP-2", Point{1920, 0}},
				{"DP-3", Point{1920, 1080}},
				{"eDP-1", Point{3840, 0}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := tt.ms()
			if err := ms.Validate(); err != nil {
				t.Fatalf("starting layout invalid: %v", err)
			}
			if err := ms.Disconnect(tt.idx); err != nil {
				t.Fatalf("Disconnect() error: %v", err)
			}
			assertLayout(t, ms, tt.want)
		})
	}
}

func TestConnect_PastWideLowerRow(t *testing.T) {
	ms := place(Monitors{
		testMonitor("eDP-1", Size{W: 1280, H: 1024}),
		testMonitor("HDMI-1", Size{W: 2560, H: 1440}),
		testMonitor("DP-1", Size{W: 1920, H: 1080}),
	}, Point{0, 0}, Point{0, 1024})
	ms[2].Enabled = false
	ms.RecomputeProximity()

	if err := ms.Connect(2); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	assertLayout(t, ms, []placed{{"eDP-1", Point{0, 0}}, {"HDMI-1", Point{0, 1024}}, {"DP-1", Point{2560, 1024}}})
}

func TestSetPrimary_Unique(t *testing.T) {
	ms := fixture()
	if err := ms.SetPrimary(2); err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, m := range ms {
		if m.Primary {
			count++
		}
	}
	if count != 1 || !ms[2].Primary {
		t.Fatalf("primary count = %d, DP-2 primary = %v", count, ms[2].Primary)
	}
}

func TestValidate_DetectsViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(Monitors)
	}{
		{"asymmetric link", func(ms Monitors) { ms[2].Left = None }},
		{"overlap", func(ms Monitors) { ms[2].Position = Point{3000, 0}; ms.RecomputeProximity() }},
		{"gap", func(ms Monitors) { ms[2].Position = Point{5000, 0}; ms.RecomputeProximity() }},
		{"not anchored", func(ms Monitors) {
			for i := range ms {
				ms[i].Position.Y += 10
			}
			ms.RecomputeProximity()
		}},
		{"two primaries", func(ms Monitors) { ms[1].Primary = true }},
		{"framerate", func(ms Monitors) { ms[1].Framerate = 75 }},
		{"scale", func(ms Monitors) { ms[1].Scale = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := fixture()
			tt.mutate(ms)
			if err := ms.Validate(); err == nil {
				t.Fatal("Validate() = nil, want error")
			}
		})
	}
}
