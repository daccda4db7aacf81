package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/miradorstack/mirador-fixtures/internal/utils"
)

// Level is a synthetic log severity.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
	LevelDebug Level = "DEBUG"
)

// Levels lists every severity in a fixed order.
func Levels() []Level {
	return []Level{LevelInfo, LevelWarn, LevelError, LevelDebug}
}

// Valid reports whether l is a known severity.
func (l Level) Valid() bool {
	switch l {
	case LevelInfo, LevelWarn, LevelError, LevelDebug:
		return true
	}
	return false
}

// LogRecord is one synthetic application log entry. StackTrace holds raw
// continuation lines that follow the record in the file.
type LogRecord struct {
	Timestamp  time.Time
	Level      Level
	Service    string
	RequestID  string
	Message    string
	StackTrace []string
}

// Timestamp marshals as an ISO-8601 local time string.
type Timestamp time.Time

// Time returns the underlying time value.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(utils.FormatISO(time.Time(t)))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := utils.ParseISO(raw)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// MetricRecord is one JSONL sample of service health.
type MetricRecord struct {
	Timestamp Timestamp    `json:"timestamp"`
	Service   string       `json:"service"`
	Metrics   MetricValues `json:"metrics"`
}

// MetricValues carries the numeric fields of a MetricRecord.
type MetricValues struct {
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryPercent     float64 `json:"memory_percent"`
	RequestCount      int     `json:"request_count"`
	ErrorRate         float64 `json:"error_rate"`
	LatencyP50Ms      int     `json:"latency_p50_ms"`
	LatencyP99Ms      int     `json:"latency_p99_ms"`
	ActiveConnections int     `json:"active_connections"`
}
