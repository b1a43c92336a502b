package service

import (
	"strings"
	"time"

	"github.com/orionasc/enflow/internal/domain"
)

const (
	// Classifier deltas by label.
	boosterDelta        = 0.2
	drainerDelta        = -0.2
	heavyMeetingPenalty = -0.1

	// Events this long or longer lean draining.
	longEventDuration = 2 * time.Hour

	// Keyword matches score higher than duration/time-of-day guesses.
	keywordConfidence   = 0.8
	heuristicConfidence = 0.5
)

// EventScore is the classifier output for one event: a label, a confidence
// in that label, and the signed delta the core consumes.
type EventScore struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Delta      float64 `json:"delta"`
}

// ClassifierService assigns energy deltas to events that arrive unscored,
// from title keywords, duration, and time of day. All-day events are never
// scored.
type ClassifierService interface {
	// Classify returns a copy of events with missing deltas filled in.
	Classify(events []domain.CalendarEvent) []domain.CalendarEvent
	// Score explains the classification of a single event; ok is false for
	// neutral events that stay unscored.
	Score(event domain.CalendarEvent) (EventScore, bool)
}

type classifierService struct{}

// NewClassifierService creates a new ClassifierService.
func NewClassifierService() ClassifierService {
	return &classifierService{}
}

var boosterKeywords = []string{"gym", "workout", "run", "walk", "yoga", "exercise", "swim", "hike"}

var drainerKeywords = []string{"meeting", "review", "interview", "deadline", "presentation", "standup", "1:1", "sync"}

func (c *classifierService) Classify(events []domain.CalendarEvent) []domain.CalendarEvent {
	out := make([]domain.CalendarEvent, len(events))
	copy(out, events)
	for i := range out {
		if out[i].EnergyDelta != nil || out[i].AllDay {
			continue
		}
		if score, ok := c.Score(out[i]); ok {
			delta := score.Delta
			out[i].EnergyDelta = &delta
		}
	}
	return out
}

func (c *classifierService) Score(event domain.CalendarEvent) (EventScore, bool) {
	if event.AllDay {
		return EventScore{}, false
	}
	title := strings.ToLower(event.Title)
	for _, kw := range boosterKeywords {
		if strings.Contains(title, kw) {
			return EventScore{Label: "booster", Confidence: keywordConfidence, Delta: boosterDelta}, true
		}
	}
	for _, kw := range drainerKeywords {
		if strings.Contains(title, kw) {
			delta := drainerDelta
			// Long afternoon obligations drain harder.
			if event.EndAt.Sub(event.StartAt) >= longEventDuration && event.StartAt.Hour() >= 13 {
				delta += heavyMeetingPenalty
			}
			return EventScore{Label: "drainer", Confidence: keywordConfidence, Delta: delta}, true
		}
	}
	if event.EndAt.Sub(event.StartAt) >= longEventDuration {
		return EventScore{Label: "drainer", Confidence: heuristicConfidence, Delta: heavyMeetingPenalty}, true
	}
	return EventScore{}, false
}
