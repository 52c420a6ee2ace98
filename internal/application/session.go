package app

import (
	"fmt"
	"image"
	"time"

	"acnemap/internal/domain/entity"
)

// ScanSession контекст одного цикла сканирования.
// Создаётся на каждый кадр и не разделяется между сканами.
type ScanSession struct {
	ID        string
	Phase     entity.ScanPhase
	History   []entity.ScanPhase
	Frame     image.Image
	Width     int
	Height    int
	Topology  entity.Topology
	Landmarks *entity.LandmarkSet
	Regions   entity.Regions
	Scores    entity.Scores
	Started   time.Time
}

func newScanSession(id string, frame image.Image, started time.Time) *ScanSession {
	b := frame.Bounds()
	return &ScanSession{
		ID:      id,
		Phase:   entity.PhaseIdle,
		History: []entity.ScanPhase{entity.PhaseIdle},
		Frame:   frame,
		Width:   b.Dx(),
		Height:  b.Dy(),
		Started: started,
	}
}

// advance переводит сессию на следующий этап
func (s *ScanSession) advance(next entity.ScanPhase) error {
	if !s.Phase.CanTransition(next) {
		return fmt.Errorf("scan %s: illegal transition %s -> %s", s.ID, s.Phase, next)
	}
	s.Phase = next
	s.History = append(s.History, next)
	return nil
}

// abort возвращает сессию в idle после ошибки
func (s *ScanSession) abort() {
	if s.Phase != entity.PhaseIdle {
		_ = s.advance(entity.PhaseIdle)
	}
}
