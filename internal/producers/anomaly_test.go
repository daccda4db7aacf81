package producers

import "testing"

func TestCPUSpikeWindow(t *testing.T) {
	shape := DefaultShape()
	for tick := 0; tick < 2000; tick++ {
		for _, draw := range []float64{0, 0.5, 0.999999} {
			s := shape.CPU(tick, draw, draw)
			if shape.CPUSpike.Contains(tick) {
				if !s.InWindow || s.Value < shape.CPUSpikeFloor || s.Value > shape.CPUSpikeFloor+shape.CPUSpikeSpread {
					t.Fatalf("tick %d: spike value %v out of range", tick, s.Value)
				}
				continue
			}
			if s.InWindow || s.Value < 35 || s.Value > 55 {
				t.Fatalf("tick %d: base value %v out of range", tick, s.Value)
			}
		}
	}
}

func TestCPUSampleKeepsBaseInsideWindow(t *testing.T) {
	s := DefaultShape().CPU(550, 0.5, 0.2)
	if s.Base != 45 {
		t.Fatalf("expected base 45, got %v", s.Base)
	}
	if s.Override != 87 || s.Value != 87 {
		t.Fatalf("expected override 87, got %+v", s)
	}
}

func TestCPUSpikeCappedAtHundred(t *testing.T) {
	shape := DefaultShape()
	shape.CPUSpikeFloor = 100
	s := shape.CPU(550, 0.5, 0.99)
	if s.Value != 100 {
		t.Fatalf("expected spike capped at 100, got %v", s.Value)
	}
	if s.Override <= 100 {
		t.Fatalf("override should keep the raw draw, got %v", s.Override)
	}
}

func TestMemoryLeakRamp(t *testing.T) {
	shape := DefaultShape()
	prev := -1.0
	for tick := shape.MemoryLeak.Start; tick < shape.MemoryLeak.End; tick++ {
		s := shape.Memory(tick, 0.99)
		if !s.InWindow {
			t.Fatalf("tick %d should be inside the leak window", tick)
		}
		if s.Value < prev {
			t.Fatalf("tick %d: memory decreased from %v to %v", tick, prev, s.Value)
		}
		if s.Value > shape.MemoryCeiling {
			t.Fatalf("tick %d: memory %v above ceiling", tick, s.Value)
		}
		prev = s.Value
	}
	if first := shape.Memory(shape.MemoryLeak.Start, 0).Value; first != 60.3 {
		t.Fatalf("expected leak to start at 60.3, got %v", first)
	}
	if last := shape.Memory(shape.MemoryLeak.End-1, 0).Value; last != 89.7 {
		t.Fatalf("expected leak to end at 89.7, got %v", last)
	}
}

func TestMemoryLeakIgnoresDraw(t *testing.T) {
	shape := DefaultShape()
	if shape.Memory(850, 0).Value != shape.Memory(850, 0.9).Value {
		t.Fatalf("leak value should not depend on the random draw")
	}
}

func TestMemoryCeilingCaps(t *testing.T) {
	shape := DefaultShape()
	shape.MemoryLeak.End = 2000
	s := shape.Memory(1999, 0.5)
	if s.Override <= shape.MemoryCeiling {
		t.Fatalf("expected uncapped override above ceiling, got %v", s.Override)
	}
	if s.Value != shape.MemoryCeiling {
		t.Fatalf("expected value capped at %v, got %v", shape.MemoryCeiling, s.Value)
	}
}

func TestMemoryOutsideWindow(t *testing.T) {
	shape := DefaultShape()
	for _, draw := range []float64{0, 0.5, 0.999999} {
		s := shape.Memory(10, draw)
		if s.InWindow || s.Value < 55 || s.Value > 65 {
			t.Fatalf("draw %v: unexpected %+v", draw, s)
		}
	}
}

func TestErrorRateSpike(t *testing.T) {
	shape := DefaultShape()
	if v := shape.ErrorRateAt(100, 0.7).Value; v != 0.01 {
		t.Fatalf("expected base error rate, got %v", v)
	}
	for _, draw := range []float64{0, 0.5, 0.999999} {
		s := shape.ErrorRateAt(1250, draw)
		if !s.InWindow || s.Value < 0.15 || s.Value > 0.2 {
			t.Fatalf("draw %v: spike error rate %v out of range", draw, s.Value)
		}
	}
	if shape.ErrorRateAt(shape.ErrorSpike.End, 0.5).InWindow {
		t.Fatalf("window end is exclusive")
	}
}
