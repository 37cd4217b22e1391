package starfield

import (
	"math"
	"math/rand"
	"testing"
)

func TestStarCount(t *testing.T) {
	tests := []struct {
		w, h float64
		want int
	}{
		{800, 600, 600},
		{1920, 1080, 2592},
		{801, 1, 1},
		{799, 1, 0},
		{10, 10, 0},
		{0, 600, 0},
		{-800, 600, 0},
		{math.NaN(), 600, 0},
		{640, 384, 307},
		{1e30, 1, MaxStars},
		{math.MaxFloat64, 2, 0},
	}

	for _, tt := range tests {
		if got := StarCount(tt.w, tt.h); got != tt.want {
			t.Errorf("StarCount(%v, %v) = %d, want %d", tt.w, tt.h, got, tt.want)
		}
		if got := len(Generate(tt.w, tt.h, rand.New(rand.NewSource(1)))); got != tt.want {
			t.Errorf("len(Generate(%v, %v)) = %d, want %d", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(400, 300, rand.New(rand.NewSource(42)))
	b := Generate(400, 300, rand.New(rand.NewSource(42)))

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("star %d differs with the same seed: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerate_Distributions(t *testing.T) {
	const w, h = 1600.0, 1200.0
	stars := Generate(w, h, rand.New(rand.NewSource(7)))

	for i, s := range stars {
		if s.BaseX < 0 || s.BaseX >= w || s.BaseY < 0 || s.BaseY >= h {
			t.Fatalf("star %d anchor (%v, %v) outside surface", i, s.BaseX, s.BaseY)
		}
		if s.X != s.BaseX || s.Y != s.BaseY {
			t.Fatalf("star %d starts away from its anchor", i)
		}
		if s.Bright {
			if s.Size < 0.8 || s.Size >= 2.8 {
				t.Errorf("bright star %d size %v outside [0.8, 2.8)", i, s.Size)
			}
			if s.Opacity < 0.4 || s.Opacity >= 1.0 {
				t.Errorf("bright star %d opacity %v outside [0.4, 1.0)", i, s.Opacity)
			}
		} else {
			if s.Size < 0.3 || s.Size >= 1.5 {
				t.Errorf("dim star %d size %v outside [0.3, 1.5)", i, s.Size)
			}
			if s.Opacity < 0.1 || s.Opacity >= 0.6 {
				t.Errorf("dim star %d opacity %v outside [0.1, 0.6)", i, s.Opacity)
			}
		}
		if s.TwinkleSpeed < 0.005 || s.TwinkleSpeed >= 0.025 {
			t.Errorf("star %d twinkle speed %v outside [0.005, 0.025)", i, s.TwinkleSpeed)
		}
		if s.TwinklePhase < 0 || s.TwinklePhase >= 2*math.Pi {
			t.Errorf("star %d twinkle phase %v outside [0, 2π)", i, s.TwinklePhase)
		}
		if s.DriftX < -0.075 || s.DriftX >= 0.075 {
			t.Errorf("star %d drift x %v outside [-0.075, 0.075)", i, s.DriftX)
		}
		if s.DriftY < -0.04 || s.DriftY >= 0.04 {
			t.Errorf("star %d drift y %v outside [-0.04, 0.04)", i, s.DriftY)
		}
	}
}

func TestGenerate_BrightnessBias(t *testing.T) {
	// 10000 x 8000 at one star per 800 units gives 100,000 stars.
	const w, h = 10000.0, 8000.0
	stars := Generate(w, h, rand.New(rand.NewSource(2024)))
	if len(stars) != 100000 {
		t.Fatalf("len = %d, want 100000", len(stars))
	}

	var bright, total [10]int
	for _, s := range stars {
		d := int(s.BaseX / w * 10)
		if d > 9 {
			d = 9
		}
		total[d]++
		if s.Bright {
			bright[d]++
		}
	}

	prev := -1.0
	for d := range 10 {
		frac := float64(bright[d]) / float64(total[d])
		if frac <= prev {
			t.Errorf("decile %d bright fraction %.4f not above decile %d (%.4f)", d, frac, d-1, prev)
		}
		want := brightBias * (float64(d) + 0.5) / 10
		if math.Abs(frac-want) > 0.02 {
			t.Errorf("decile %d bright fraction %.4f, want about %.4f", d, frac, want)
		}
		prev = frac
	}
}

func TestStar_BoundedDrift(t *testing.T) {
	stars := Generate(800, 600, rand.New(rand.NewSource(3)))

	for ti := 0; ti < 200; ti++ {
		tm := float64(ti) * 4999.7
		for i, s := range stars {
			x, y := s.PositionAt(tm, i)
			if dx := math.Abs(x - s.BaseX); dx > math.Abs(s.DriftX)*driftScale+1e-9 {
				t.Fatalf("t=%v star %d x offset %v exceeds %v", tm, i, dx, math.Abs(s.DriftX)*driftScale)
			}
			if dy := math.Abs(y - s.BaseY); dy > math.Abs(s.DriftY)*driftScale+1e-9 {
				t.Fatalf("t=%v star %d y offset %v exceeds %v", tm, i, dy, math.Abs(s.DriftY)*driftScale)
			}
		}
	}
}

func TestStar_AlphaBounds(t *testing.T) {
	stars := Generate(800, 600, rand.New(rand.NewSource(5)))

	for ti := 0; ti < 300; ti++ {
		tm := float64(ti) * 37.3
		for i, s := range stars {
			tw := s.TwinkleAt(tm)
			if tw < 0.4 || tw > 1.0 {
				t.Fatalf("t=%v star %d twinkle %v outside [0.4, 1.0]", tm, i, tw)
			}
			a := s.AlphaAt(tm)
			if a < 0 || a > s.Opacity {
				t.Fatalf("t=%v star %d alpha %v outside [0, %v]", tm, i, a, s.Opacity)
			}
		}
	}
}

func TestStar_TwinkleFormula(t *testing.T) {
	s := Star{Opacity: 0.5, TwinkleSpeed: 0.01, TwinklePhase: 0}

	// sin(0) = 0 gives the midpoint.
	if got := s.TwinkleAt(0); math.Abs(got-0.7) > 1e-12 {
		t.Errorf("TwinkleAt(0) = %v, want 0.7", got)
	}
	// sin(π/2) = 1 gives the peak.
	peak := math.Pi / 2 / s.TwinkleSpeed
	if got := s.TwinkleAt(peak); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("TwinkleAt(peak) = %v, want 1.0", got)
	}
	if got := s.AlphaAt(peak); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("AlphaAt(peak) = %v, want 0.5", got)
	}
}

func TestStar_PositionFormula(t *testing.T) {
	s := Star{BaseX: 100, BaseY: 50, DriftX: 0.05, DriftY: -0.02}

	x, y := s.PositionAt(0, 0)
	// sin(0) = 0, cos(0) = 1.
	if math.Abs(x-100) > 1e-12 {
		t.Errorf("x = %v, want 100", x)
	}
	if math.Abs(y-(50-0.02*30)) > 1e-12 {
		t.Errorf("y = %v, want %v", y, 50-0.02*30)
	}

	x, _ = s.PositionAt(0, 2)
	want := 100 + math.Sin(2)*0.05*30
	if math.Abs(x-want) > 1e-12 {
		t.Errorf("x with index 2 = %v, want %v", x, want)
	}
}

func TestStar_HasHalo(t *testing.T) {
	tests := []struct {
		star Star
		want bool
	}{
		{Star{Bright: true, Size: 1.5}, true},
		{Star{Bright: true, Size: 1.0}, false},
		{Star{Bright: true, Size: 0.9}, false},
		{Star{Bright: false, Size: 1.4}, false},
	}

	for _, tt := range tests {
		if got := tt.star.HasHalo(); got != tt.want {
			t.Errorf("HasHalo(bright=%v size=%v) = %v, want %v", tt.star.Bright, tt.star.Size, got, tt.want)
		}
	}
}
