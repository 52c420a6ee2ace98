package entity

import "time"

// ScanPhase этап одного цикла сканирования
type ScanPhase string

const (
	PhaseIdle        ScanPhase = "idle"
	PhaseDetecting   ScanPhase = "detecting"
	PhaseNoFaceFound ScanPhase = "no_face_found"
	PhaseFaceFound   ScanPhase = "face_found"
	PhaseScoring     ScanPhase = "scoring"
	PhaseRendering   ScanPhase = "rendering"
)

var phaseTransitions = map[ScanPhase][]ScanPhase{
	PhaseIdle:        {PhaseDetecting},
	PhaseDetecting:   {PhaseNoFaceFound, PhaseFaceFound, PhaseIdle},
	PhaseNoFaceFound: {PhaseIdle},
	PhaseFaceFound:   {PhaseScoring, PhaseIdle},
	PhaseScoring:     {PhaseRendering, PhaseIdle},
	PhaseRendering:   {PhaseIdle},
}

// CanTransition сообщает, допустим ли переход из p в next.
// Переход в idle разрешён из любого активного этапа: так завершается скан с ошибкой.
func (p ScanPhase) CanTransition(next ScanPhase) bool {
	for _, allowed := range phaseTransitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ScanResult итог одного сканирования.
type ScanResult struct {
	ID          string        `json:"id"`
	FaceFound   bool          `json:"face_found"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Topology    string        `json:"topology,omitempty"`
	Regions     *Regions      `json:"regions,omitempty"`
	Scores      Scores        `json:"scores"`
	Advice      *Advice       `json:"advice,omitempty"`
	Snapshot    []byte        `json:"snapshot,omitempty"` // PNG с тепловой картой
	SnapshotURL string        `json:"snapshot_url,omitempty"`
	Duration    time.Duration `json:"duration"`
	CreatedAt   time.Time     `json:"created_at"`
}
