package export

import (
	"math"

	"github.com/testforge-dev/testforge/pkg/domain/model"
)

// Time estimates in hours for manual authoring and AI-assisted review
const (
	manualTimePerCase = 0.5
	aiGenerationTime  = 0.05
	reviewTimePerCase = 0.05
)

// Statistics summarizes a batch of test case records
type Statistics struct {
	Total                       int            `json:"total"`
	ByPriority                  map[string]int `json:"by_priority,omitempty"`
	ByType                      map[string]int `json:"by_type,omitempty"`
	ByCategory                  map[string]int `json:"by_category,omitempty"`
	EstimatedExecutionTimeHours float64        `json:"estimated_execution_time_hours,omitempty"`
}

// CollectStatistics counts records by priority, type and category, and
// estimates total execution time at 30 minutes per case. Records
// without a field are counted under "Unknown".
func CollectStatistics(records []model.TestCaseRecord) *Statistics {
	stats := &Statistics{Total: len(records)}
	if len(records) == 0 {
		return stats
	}

	stats.ByPriority = make(map[string]int)
	stats.ByType = make(map[string]int)
	stats.ByCategory = make(map[string]int)

	for _, rec := range records {
		stats.ByPriority[fieldOrUnknown(rec, "priority")]++
		stats.ByType[fieldOrUnknown(rec, "test_type")]++
		stats.ByCategory[fieldOrUnknown(rec, "category")]++
	}

	stats.EstimatedExecutionTimeHours = float64(len(records)) * manualTimePerCase

	return stats
}

func fieldOrUnknown(rec model.TestCaseRecord, key string) string {
	if !rec.Has(key) {
		return "Unknown"
	}
	return rec.StringField(key)
}

// TimeSavings estimates how much manual test authoring time a batch of
// generated cases replaces
type TimeSavings struct {
	ManualHours           float64 `json:"manual_hours"`
	AIHours               float64 `json:"ai_hours"`
	TimeSavedHours        float64 `json:"time_saved_hours"`
	EfficiencyGainPercent float64 `json:"efficiency_gain_percent"`
}

// CalculateTimeSavings compares manual authoring time against AI
// generation plus per-case review time for the given case count
func CalculateTimeSavings(count int) TimeSavings {
	manual := float64(count) * manualTimePerCase
	ai := aiGenerationTime + float64(count)*reviewTimePerCase
	saved := manual - ai

	gain := 0.0
	if manual > 0 {
		gain = saved / manual * 100
	}

	return TimeSavings{
		ManualHours:           round(manual, 2),
		AIHours:               round(ai, 2),
		TimeSavedHours:        round(saved, 2),
		EfficiencyGainPercent: round(gain, 1),
	}
}

func round(v float64, digits int) float64 {
	shift := math.Pow(10, float64(digits))
	return math.Round(v*shift) / shift
}
