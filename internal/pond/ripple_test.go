package pond

import (
	"math"
	"testing"
)

func TestRippleTickLifecycle(t *testing.T) {
	r := NewRipple(Coordinate{5, 5}, 3)

	for i := 1; i <= 500; i++ {
		next, ok := r.Tick(500)
		if !ok {
			t.Fatalf("ripple expired early at call %d", i)
		}
		if next.Age != float64(i) {
			t.Fatalf("call %d: expected age %d, got %f", i, i, next.Age)
		}
		if next.Origin != r.Origin || next.Radius != r.Radius {
			t.Fatalf("tick must keep origin and radius")
		}
		r = next
	}

	if _, ok := r.Tick(500); ok {
		t.Error("expected expiry once age reached max")
	}
}

func TestRippleSetExpiry(t *testing.T) {
	var s RippleSet
	s.Add(NewRipple(Coordinate{0, 0}, 1))

	for i := 1; i < 500; i++ {
		s.Advance(500)
		if s.Len() != 1 {
			t.Fatalf("ripple missing after step %d", i)
		}
	}

	removed := s.Advance(500)
	if s.Len() != 0 {
		t.Errorf("expected ripple gone after step 500, have %d", s.Len())
	}
	if removed != 1 {
		t.Errorf("expected 1 removal, got %d", removed)
	}
}

func TestRippleSetKeepsOrder(t *testing.T) {
	var s RippleSet
	s.Add(Ripple{Origin: Coordinate{1, 0}, Radius: 1, Age: 0})
	s.Add(Ripple{Origin: Coordinate{2, 0}, Radius: 1, Age: 9})
	s.Add(Ripple{Origin: Coordinate{3, 0}, Radius: 1, Age: 3})

	s.Advance(10)

	got := s.All()
	if len(got) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(got))
	}
	if got[0].Origin.X != 1 || got[1].Origin.X != 3 {
		t.Errorf("survivors out of order: %v", got)
	}
	if got[0].Age != 1 || got[1].Age != 4 {
		t.Errorf("unexpected ages: %v", got)
	}
}

func TestRippleHeight(t *testing.T) {
	tests := []struct {
		name     string
		age      float64
		distance float64
		want     float64
		ok       bool
	}{
		{"fresh ripple", 0, 3, 0, true},
		{"fresh ripple at origin", 0, 0, 0, true},
		{"age one", 1, 2, math.Sin(1) / 2, true},
		{"older", 7, 5, math.Sin(7) / 35, true},
		{"origin undefined", 4, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Ripple{Age: tt.age, Radius: 1}
			got, ok := r.Height(tt.distance)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestOriginPolicies(t *testing.T) {
	r := Ripple{Age: 2, Radius: 1}

	tests := []struct {
		policy OriginPolicy
		want   float64
	}{
		{OriginNearest, math.Sin(2) / 2},
		{OriginPeak, 1},
		{OriginTouched, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			if got := r.originHeight(tt.policy, 0.25); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}

	fresh := Ripple{Radius: 1}
	if got := fresh.originHeight(OriginPeak, 1); got != 0 {
		t.Errorf("age zero must contribute nothing, got %f", got)
	}
}
