package engine

import (
	"testing"

	"github.com/verte-zerg/playdeck/internal/model"
)

func TestPointerEventPoint(t *testing.T) {
	p, ok := MouseEvent(PointerMove, 3, 4).Point()
	if !ok || p.X != 3 || p.Y != 4 {
		t.Fatalf("unexpected mouse point %+v ok=%v", p, ok)
	}

	touch := TouchEvent(PointerMove, []model.Point{{X: 1, Y: 1}, {X: 9, Y: 9}}, []model.Point{{X: 5, Y: 5}})
	if p, _ := touch.Point(); p.X != 1 {
		t.Fatalf("expected first active touch, got %+v", p)
	}

	end := TouchEvent(PointerUp, nil, []model.Point{{X: 7, Y: 8}})
	if p, ok := end.Point(); !ok || p.X != 7 || p.Y != 8 {
		t.Fatalf("expected changed touch on end, got %+v ok=%v", p, ok)
	}

	if _, ok := TouchEvent(PointerUp, nil, nil).Point(); ok {
		t.Fatalf("expected empty touch event to have no point")
	}
}

func TestRecordingAudioCounts(t *testing.T) {
	var a Audio = &RecordingAudio{}
	a.Play(SoundConnect)
	a.Play(SoundConnect)
	a.Play(SoundIncorrect)
	if n := a.(*RecordingAudio).Count(SoundConnect); n != 2 {
		t.Fatalf("expected 2 connect cues, got %d", n)
	}
}

func TestEventLogDrain(t *testing.T) {
	var log EventLog
	log.Emit(Event{Kind: EventConnected})
	log.Emit(Event{Kind: EventMessage, Text: "Level 2!"})
	events := log.Drain()
	if len(events) != 2 || events[1].Text != "Level 2!" {
		t.Fatalf("unexpected events %+v", events)
	}
	if len(log.Drain()) != 0 {
		t.Fatalf("expected empty log after drain")
	}
}
