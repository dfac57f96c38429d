package noise

import (
	"math"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"", KindPerlin, false},
		{"perlin", KindPerlin, false},
		{" Simplex ", KindSimplex, false},
		{"worley", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestProvidersAreDeterministic(t *testing.T) {
	for _, kind := range []string{"perlin", "simplex"} {
		t.Run(kind, func(t *testing.T) {
			a, err := New(kind, 42)
			if err != nil {
				t.Fatalf("New(%q) error: %v", kind, err)
			}
			b, _ := New(kind, 42)

			for i := 0; i < 50; i++ {
				x, y := float64(i)*0.37, float64(i)*0.011
				va, vb := a.Noise2D(x, y), b.Noise2D(x, y)
				if va != vb {
					t.Fatalf("sample %d differs: %v vs %v", i, va, vb)
				}
				if math.IsNaN(va) || math.Abs(va) > 2 {
					t.Fatalf("sample %d out of range: %v", i, va)
				}
			}
		})
	}
}

func TestProvidersAreContinuous(t *testing.T) {
	for _, kind := range []string{"perlin", "simplex"} {
		t.Run(kind, func(t *testing.T) {
			p, _ := New(kind, 7)
			const h = 1e-4
			for i := 0; i < 100; i++ {
				x, y := float64(i)*0.13, 0.5+float64(i)*0.007
				d := math.Abs(p.Noise2D(x+h, y) - p.Noise2D(x, y))
				if d > 0.01 {
					t.Fatalf("jump of %v at (%v, %v)", d, x, y)
				}
			}
		})
	}
}

func TestFiniteReplacesNonFinite(t *testing.T) {
	bad := ProviderFunc(func(x, y float64) float64 {
		switch {
		case x < 0:
			return math.NaN()
		case x > 0:
			return math.Inf(1)
		default:
			return 0.25
		}
	})

	p := Finite(bad)
	if got := p.Noise2D(-1, 0); got != 0 {
		t.Errorf("NaN sample = %v, want 0", got)
	}
	if got := p.Noise2D(1, 0); got != 0 {
		t.Errorf("Inf sample = %v, want 0", got)
	}
	if got := p.Noise2D(0, 0); got != 0.25 {
		t.Errorf("finite sample = %v, want 0.25", got)
	}

	if Finite(p) != p {
		t.Error("Finite should not double wrap")
	}
	if Finite(nil) != nil {
		t.Error("Finite(nil) should be nil")
	}
}
