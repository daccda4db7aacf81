package producers

import (
	"math"

	"github.com/miradorstack/mirador-fixtures/internal/models"
	"github.com/miradorstack/mirador-fixtures/internal/utils"
)

// Sample is one evaluation of a metric formula at a tick. Override is only
// meaningful when InWindow is set; Value is the rounded figure written out.
type Sample struct {
	Base     float64
	Override float64
	Value    float64
	InWindow bool
}

// MetricShape holds the ordinary ranges and the anomaly windows of the
// metrics stream. Its methods are pure: randomness arrives as uniform draws
// in [0, 1).
type MetricShape struct {
	CPUCenter      float64
	CPUSpread      float64
	CPUSpike       models.Window
	CPUSpikeFloor  float64
	CPUSpikeSpread float64

	MemoryCenter  float64
	MemorySpread  float64
	MemoryLeak    models.Window
	LeakBase      float64
	LeakSlope     float64
	MemoryCeiling float64

	ErrorRate        float64
	ErrorSpike       models.Window
	ErrorSpikeFloor  float64
	ErrorSpikeSpread float64
}

// DefaultShape returns the stock windows: CPU spike [501, 600), memory leak
// [801, 900) and error spike [1201, 1300).
func DefaultShape() MetricShape {
	return MetricShape{
		CPUCenter:      45,
		CPUSpread:      10,
		CPUSpike:       models.Window{Start: 501, End: 600},
		CPUSpikeFloor:  85,
		CPUSpikeSpread: 10,

		MemoryCenter:  60,
		MemorySpread:  5,
		MemoryLeak:    models.Window{Start: 801, End: 900},
		LeakBase:      60,
		LeakSlope:     0.3,
		MemoryCeiling: 95,

		ErrorRate:        0.01,
		ErrorSpike:       models.Window{Start: 1201, End: 1300},
		ErrorSpikeFloor:  0.15,
		ErrorSpikeSpread: 0.05,
	}
}

// maxPercent caps every percentage metric.
const maxPercent = 100

// CPU evaluates cpu_percent at tick. The spike never exceeds 100%.
func (s MetricShape) CPU(tick int, baseDraw, spikeDraw float64) Sample {
	out := Sample{Base: s.CPUCenter + (2*baseDraw-1)*s.CPUSpread}
	chosen := out.Base
	if s.CPUSpike.Contains(tick) {
		out.InWindow = true
		out.Override = s.CPUSpikeFloor + spikeDraw*s.CPUSpikeSpread
		chosen = out.Override
	}
	out.Value = utils.Round(math.Min(chosen, maxPercent), 2)
	return out
}

// Memory evaluates memory_percent at tick. Inside the leak window the value
// ramps linearly from LeakBase, ignoring the draw, and every value is capped
// at MemoryCeiling.
func (s MetricShape) Memory(tick int, baseDraw float64) Sample {
	out := Sample{Base: s.MemoryCenter + (2*baseDraw-1)*s.MemorySpread}
	chosen := out.Base
	if s.MemoryLeak.Contains(tick) {
		out.InWindow = true
		out.Override = s.LeakBase + float64(tick-s.MemoryLeak.Start+1)*s.LeakSlope
		chosen = out.Override
	}
	out.Value = utils.Round(math.Min(chosen, s.MemoryCeiling), 2)
	return out
}

// ErrorRateAt evaluates error_rate at tick.
func (s MetricShape) ErrorRateAt(tick int, spikeDraw float64) Sample {
	out := Sample{Base: s.ErrorRate}
	chosen := out.Base
	if s.ErrorSpike.Contains(tick) {
		out.InWindow = true
		out.Override = s.ErrorSpikeFloor + spikeDraw*s.ErrorSpikeSpread
		chosen = out.Override
	}
	out.Value = utils.Round(chosen, 4)
	return out
}
