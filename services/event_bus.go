package services

import (
	"log"

	"github.com/Glory2TheLord/FitLogV1/models"
)

type eventDeps struct {
	history *HistoryService
	rt      *RealtimeHub
	ps      *PushService
}

var _events eventDeps

// InitEventDeps wires the sinks EmitEvent fans out to. Called once at
// startup; before that EmitEvent is a safe no-op.
func InitEventDeps(history *HistoryService, rt *RealtimeHub, ps *PushService) {
	_events = eventDeps{history: history, rt: rt, ps: ps}
}

// Event types that warrant a push notification, not just a timeline row.
var pushEvents = map[string]bool{
	models.EventMarkDayComplete:   true,
	models.EventGoalWeightReached: true,
	models.EventPhotosCompleted:   true,
}

// EmitEvent appends a timeline event to today's history entry and pushes
// it to connected clients. Persistence failures here are logged, not
// returned; the caller's own write has already succeeded by the time an
// event is emitted.
func EmitEvent(userID uint, evType, summary string, details map[string]any) {
	if _events.history == nil {
		return
	}
	ev := NewHistoryEvent(evType, summary, details)
	if err := _events.history.AppendEventForToday(userID, ev); err != nil {
		log.Printf("history event append failed (user %d, %s): %v", userID, evType, err)
	}

	if _events.rt != nil {
		_events.rt.BroadcastEvent(userID, map[string]any{
			"kind":  "timeline.event",
			"event": ev,
		})
	}
	if _events.ps != nil && pushEvents[evType] {
		go _events.ps.PushToUser(userID, "FitLog", summary, map[string]string{"type": evType})
	}
}

// AnnounceEvent fans an event out without persisting it, for callers that
// already wrote it to history themselves.
func AnnounceEvent(userID uint, ev models.HistoryEvent) {
	if _events.rt != nil {
		_events.rt.BroadcastEvent(userID, map[string]any{
			"kind":  "timeline.event",
			"event": ev,
		})
	}
	if _events.ps != nil && pushEvents[ev.Type] {
		go _events.ps.PushToUser(userID, "FitLog", ev.Summary, map[string]string{"type": ev.Type})
	}
}
