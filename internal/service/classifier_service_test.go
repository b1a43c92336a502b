package service

import (
	"testing"
	"time"

	"github.com/orionasc/enflow/internal/domain"
)

func TestClassifierService_Score(t *testing.T) {
	svc := NewClassifierService()
	day := testDay("2026-08-20")

	tests := []struct {
		name      string
		event     domain.CalendarEvent
		wantOK    bool
		wantLabel string
		wantDelta float64
		wantConf  float64
	}{
		{
			name:      "booster keyword",
			event:     domain.CalendarEvent{Title: "Morning gym", StartAt: day.Add(7 * time.Hour), EndAt: day.Add(8 * time.Hour)},
			wantOK:    true,
			wantLabel: "booster",
			wantDelta: boosterDelta,
			wantConf:  keywordConfidence,
		},
		{
			name:      "drainer keyword",
			event:     domain.CalendarEvent{Title: "Sprint review", StartAt: day.Add(10 * time.Hour), EndAt: day.Add(11 * time.Hour)},
			wantOK:    true,
			wantLabel: "drainer",
			wantDelta: drainerDelta,
			wantConf:  keywordConfidence,
		},
		{
			name:      "long afternoon meeting drains harder",
			event:     domain.CalendarEvent{Title: "Planning meeting", StartAt: day.Add(14 * time.Hour), EndAt: day.Add(17 * time.Hour)},
			wantOK:    true,
			wantLabel: "drainer",
			wantDelta: drainerDelta + heavyMeetingPenalty,
			wantConf:  keywordConfidence,
		},
		{
			name:      "long morning meeting keeps base delta",
			event:     domain.CalendarEvent{Title: "Planning meeting", StartAt: day.Add(9 * time.Hour), EndAt: day.Add(12 * time.Hour)},
			wantOK:    true,
			wantLabel: "drainer",
			wantDelta: drainerDelta,
			wantConf:  keywordConfidence,
		},
		{
			name:      "long unmatched event leans draining",
			event:     domain.CalendarEvent{Title: "Conference", StartAt: day.Add(9 * time.Hour), EndAt: day.Add(12 * time.Hour)},
			wantOK:    true,
			wantLabel: "drainer",
			wantDelta: heavyMeetingPenalty,
			wantConf:  heuristicConfidence,
		},
		{
			name:   "short neutral event unscored",
			event:  domain.CalendarEvent{Title: "Lunch", StartAt: day.Add(12 * time.Hour), EndAt: day.Add(13 * time.Hour)},
			wantOK: false,
		},
		{
			name:   "all-day event never scored",
			event:  domain.CalendarEvent{Title: "Gym day", StartAt: day, EndAt: day.Add(24 * time.Hour), AllDay: true},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, ok := svc.Score(tt.event)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if score.Label != tt.wantLabel || score.Delta != tt.wantDelta || score.Confidence != tt.wantConf {
				t.Errorf("score = %+v, want label %s delta %v conf %v", score, tt.wantLabel, tt.wantDelta, tt.wantConf)
			}
		})
	}
}

func TestClassifierService_Classify(t *testing.T) {
	svc := NewClassifierService()
	day := testDay("2026-08-20")

	preScored := floatPtr(-0.5)
	events := []domain.CalendarEvent{
		{Title: "Morning run", StartAt: day.Add(6 * time.Hour), EndAt: day.Add(7 * time.Hour)},
		{Title: "Gym", StartAt: day.Add(18 * time.Hour), EndAt: day.Add(19 * time.Hour), EnergyDelta: preScored},
		{Title: "Lunch", StartAt: day.Add(12 * time.Hour), EndAt: day.Add(13 * time.Hour)},
	}

	out := svc.Classify(events)

	if out[0].EnergyDelta == nil || *out[0].EnergyDelta != boosterDelta {
		t.Fatalf("unscored booster not filled: %+v", out[0])
	}
	// Explicit deltas are authoritative even when keywords disagree.
	if out[1].EnergyDelta != preScored || *out[1].EnergyDelta != -0.5 {
		t.Fatalf("pre-scored event overwritten: %+v", out[1])
	}
	if out[2].EnergyDelta != nil {
		t.Fatalf("neutral event scored: %+v", out[2])
	}

	// The input slice stays untouched.
	if events[0].EnergyDelta != nil {
		t.Fatalf("Classify mutated its input")
	}
}
