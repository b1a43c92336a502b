package domain

import (
	"encoding/json"
	"sort"
)

// MetricKind identifies one physiological signal in a daily sample.
// @Description Physiological metric identifier (e.g. stepCount, restingHR).
type MetricKind string

const (
	MetricStepCount                  MetricKind = "stepCount"
	MetricActiveEnergyBurned         MetricKind = "activeEnergyBurned"
	MetricHeartRate                  MetricKind = "heartRate"
	MetricTimeInBed                  MetricKind = "timeInBed"
	MetricRestingHR                  MetricKind = "restingHR"
	MetricHeartRateVariability       MetricKind = "heartRateVariability"
	MetricExerciseTime               MetricKind = "exerciseTime"
	MetricVO2Max                     MetricKind = "vo2Max"
	MetricSleepEfficiency            MetricKind = "sleepEfficiency"
	MetricSleepLatency               MetricKind = "sleepLatency"
	MetricDeepSleep                  MetricKind = "deepSleep"
	MetricREMSleep                   MetricKind = "remSleep"
	MetricRespiratoryRate            MetricKind = "respiratoryRate"
	MetricWalkingHeartRateAverage    MetricKind = "walkingHeartRateAverage"
	MetricOxygenSaturation           MetricKind = "oxygenSaturation"
	MetricEnvironmentalAudioExposure MetricKind = "environmentalAudioExposure"
	MetricMenstrualFlow              MetricKind = "menstrualFlow"
	MetricMindfulMinutes             MetricKind = "mindfulMinutes"
)

// AllMetrics is the full catalog, in canonical order.
var AllMetrics = []MetricKind{
	MetricStepCount,
	MetricActiveEnergyBurned,
	MetricHeartRate,
	MetricTimeInBed,
	MetricRestingHR,
	MetricHeartRateVariability,
	MetricExerciseTime,
	MetricVO2Max,
	MetricSleepEfficiency,
	MetricSleepLatency,
	MetricDeepSleep,
	MetricREMSleep,
	MetricRespiratoryRate,
	MetricWalkingHeartRateAverage,
	MetricOxygenSaturation,
	MetricEnvironmentalAudioExposure,
	MetricMenstrualFlow,
	MetricMindfulMinutes,
}

// RequiredForBaseline returns the minimum metric set needed for any
// non-fallback estimate.
func RequiredForBaseline() MetricSet {
	return NewMetricSet(MetricStepCount, MetricRestingHR, MetricActiveEnergyBurned)
}

// MetricSet is an explicit set of metric kinds. A metric's numeric value in a
// sample must only be trusted if its kind is a member of the sample's set.
type MetricSet map[MetricKind]struct{}

// NewMetricSet builds a set from the given kinds.
func NewMetricSet(kinds ...MetricKind) MetricSet {
	s := make(MetricSet, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether kind is a member of the set.
func (s MetricSet) Has(kind MetricKind) bool {
	_, ok := s[kind]
	return ok
}

// Add inserts kind into the set.
func (s MetricSet) Add(kind MetricKind) {
	s[kind] = struct{}{}
}

// Len returns the number of members.
func (s MetricSet) Len() int {
	return len(s)
}

// ContainsAll reports whether every member of other is also a member of s.
func (s MetricSet) ContainsAll(other MetricSet) bool {
	for k := range other {
		if !s.Has(k) {
			return false
		}
	}
	return true
}

// Missing returns the members of required absent from s, in canonical
// catalog order.
func (s MetricSet) Missing(required MetricSet) []MetricKind {
	var missing []MetricKind
	for _, k := range AllMetrics {
		if required.Has(k) && !s.Has(k) {
			missing = append(missing, k)
		}
	}
	return missing
}

// Slice returns the members sorted by raw name.
func (s MetricSet) Slice() []MetricKind {
	kinds := make([]MetricKind, 0, len(s))
	for k := range s {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// MarshalJSON encodes the set as a sorted array of raw metric names.
func (s MetricSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

// UnmarshalJSON decodes an array of raw metric names.
func (s *MetricSet) UnmarshalJSON(data []byte) error {
	var kinds []MetricKind
	if err := json.Unmarshal(data, &kinds); err != nil {
		return err
	}
	*s = NewMetricSet(kinds...)
	return nil
}
