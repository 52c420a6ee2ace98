package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"acnemap/internal/domain/analysis"
	"acnemap/internal/domain/entity"
	"acnemap/internal/domain/port"
)

var errNoSource = errors.New("landmark source is not configured")

// ScanOptions параметры одного скана.
type ScanOptions struct {
	// Landmarks ориентиры, посчитанные на стороне клиента.
	// Если заданы, детектор не вызывается.
	Landmarks []entity.Point
	// Topology раскладка клиентских ориентиров. Пустая строка: раскладка по умолчанию.
	Topology string
	// Snapshot нужен ли снимок с тепловой картой
	Snapshot bool
}

// ScanService проводит кадр через весь цикл: детекция, зоны, оценка, отрисовка, советы.
type ScanService struct {
	source    port.LandmarkSource
	registry  *analysis.Registry
	remedies  *entity.RemedyBook
	codec     port.ImageCodec
	cache     port.ScanCache
	snapshots port.SnapshotStore
	threshold float64
	log       *zap.Logger
	now       func() time.Time
}

// NewScanService создаёт сервис. source может быть nil: тогда принимаются
// только сканы с клиентскими ориентирами.
func NewScanService(
	source port.LandmarkSource,
	registry *analysis.Registry,
	remedies *entity.RemedyBook,
	codec port.ImageCodec,
	log *zap.Logger,
) *ScanService {
	return &ScanService{
		source:    source,
		registry:  registry,
		remedies:  remedies,
		codec:     codec,
		threshold: analysis.DefaultThreshold,
		log:       log,
		now:       time.Now,
	}
}

// WithCache включает кэш результатов
func (s *ScanService) WithCache(cache port.ScanCache) *ScanService {
	s.cache = cache
	return s
}

// WithSnapshots включает сохранение снимков
func (s *ScanService) WithSnapshots(store port.SnapshotStore) *ScanService {
	s.snapshots = store
	return s
}

// WithThreshold задаёт порог, выше которого зона попадает в советы
func (s *ScanService) WithThreshold(threshold float64) *ScanService {
	s.threshold = threshold
	return s
}

// Remedies возвращает книгу советов
func (s *ScanService) Remedies() *entity.RemedyBook {
	return s.remedies
}

// Topologies возвращает имена известных раскладок ориентиров
func (s *ScanService) Topologies() []string {
	return s.registry.Names()
}

// ScanImage декодирует фото и сканирует его.
// Результаты сканов без клиентских ориентиров кэшируются по содержимому фото.
func (s *ScanService) ScanImage(ctx context.Context, data []byte, opts ScanOptions) (*entity.ScanResult, error) {
	frame, err := s.codec.Decode(data)
	if err != nil {
		return nil, err
	}

	var key string
	if s.cache != nil && s.source != nil && len(opts.Landmarks) == 0 {
		key = cacheKey(data, s.source.Topology().Name, opts.Snapshot)
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.Warn("scan cache get failed", zap.Error(err))
		} else if cached != nil {
			s.log.Debug("scan cache hit", zap.String("scan_id", cached.ID))
			return cached, nil
		}
	}

	result, err := s.ScanFrame(ctx, frame, opts)
	if err != nil {
		return nil, err
	}

	if key != "" {
		if err := s.cache.Set(ctx, key, result); err != nil {
			s.log.Warn("scan cache set failed", zap.Error(err))
		}
	}
	return result, nil
}

// ScanFrame сканирует уже декодированный кадр.
// Отсутствие лица не ошибка: возвращается результат с FaceFound=false и нулевыми оценками.
func (s *ScanService) ScanFrame(ctx context.Context, frame image.Image, opts ScanOptions) (*entity.ScanResult, error) {
	sess := newScanSession(uuid.NewString(), frame, s.now())
	result, err := s.run(ctx, sess, opts)
	if err != nil {
		sess.abort()
		s.log.Warn("scan failed", zap.String("scan_id", sess.ID), zap.Error(err))
		return nil, err
	}

	result.Duration = s.now().Sub(sess.Started)
	s.log.Info("scan finished",
		zap.String("scan_id", sess.ID),
		zap.Bool("face_found", result.FaceFound),
		zap.String("topology", result.Topology),
		zap.Float64("forehead", result.Scores.Forehead),
		zap.Float64("cheeks", result.Scores.Cheeks),
		zap.Float64("nose", result.Scores.Nose),
		zap.Float64("chin", result.Scores.Chin),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

func (s *ScanService) run(ctx context.Context, sess *ScanSession, opts ScanOptions) (*entity.ScanResult, error) {
	result := &entity.ScanResult{
		ID:        sess.ID,
		Width:     sess.Width,
		Height:    sess.Height,
		CreatedAt: sess.Started,
	}

	if err := sess.advance(entity.PhaseDetecting); err != nil {
		return nil, err
	}
	set, topo, err := s.landmarks(ctx, sess.Frame, opts)
	if errors.Is(err, entity.ErrNoFace) {
		if err := sess.advance(entity.PhaseNoFaceFound); err != nil {
			return nil, err
		}
		if err := sess.advance(entity.PhaseIdle); err != nil {
			return nil, err
		}
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	if err := analysis.CheckLandmarks(set, topo); err != nil {
		return nil, err
	}

	sess.Landmarks = set
	sess.Topology = topo
	if err := sess.advance(entity.PhaseFaceFound); err != nil {
		return nil, err
	}
	sess.Regions = analysis.BuildRegions(set, topo, sess.Width, sess.Height)

	if err := sess.advance(entity.PhaseScoring); err != nil {
		return nil, err
	}
	sess.Scores = analysis.ScoreRegions(sess.Regions, sess.Frame)

	result.FaceFound = true
	result.Topology = topo.Name
	result.Regions = &sess.Regions
	result.Scores = sess.Scores
	result.Advice = analysis.SelectAdvice(sess.Scores, s.remedies, s.threshold)

	if opts.Snapshot {
		if err := sess.advance(entity.PhaseRendering); err != nil {
			return nil, err
		}
		if err := s.render(ctx, sess, result); err != nil {
			return nil, err
		}
	}

	if err := sess.advance(entity.PhaseIdle); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ScanService) landmarks(ctx context.Context, frame image.Image, opts ScanOptions) (*entity.LandmarkSet, entity.Topology, error) {
	if len(opts.Landmarks) > 0 {
		topo, err := s.registry.Get(opts.Topology)
		if err != nil {
			return nil, entity.Topology{}, err
		}
		if err := checkNormalized(opts.Landmarks); err != nil {
			return nil, entity.Topology{}, err
		}
		return entity.NewLandmarkSet(opts.Landmarks), topo, nil
	}

	if s.source == nil {
		return nil, entity.Topology{}, errNoSource
	}
	set, err := s.source.Detect(ctx, frame)
	if err != nil {
		return nil, entity.Topology{}, err
	}
	return set, s.source.Topology(), nil
}

// render рисует тепловую карту и сохраняет снимок.
// Ошибка хранилища не срывает скан: снимок остаётся в результате.
func (s *ScanService) render(ctx context.Context, sess *ScanSession, result *entity.ScanResult) error {
	heat := analysis.RenderHeatmap(sess.Frame, sess.Regions, sess.Scores)
	png, err := s.codec.EncodePNG(heat)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	result.Snapshot = png

	if s.snapshots == nil {
		return nil
	}
	url, err := s.snapshots.Save(ctx, sess.ID, png)
	if err != nil {
		s.log.Warn("snapshot save failed", zap.String("scan_id", sess.ID), zap.Error(err))
		return nil
	}
	result.SnapshotURL = url
	return nil
}

// checkNormalized отсекает ориентиры в пикселях: все координаты должны лежать в [0,1].
func checkNormalized(points []entity.Point) error {
	for i, p := range points {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 || math.IsNaN(p.X) || math.IsNaN(p.Y) {
			return fmt.Errorf("%w: point %d is (%g, %g)", entity.ErrLandmarkRange, i, p.X, p.Y)
		}
	}
	return nil
}

func cacheKey(data []byte, topology string, snapshot bool) string {
	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:]) + ":" + topology
	if snapshot {
		key += ":snapshot"
	}
	return key
}
