package costmap

import (
	"context"
	"time"

	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/costtree"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/ebkp"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/element"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/storage"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/feature/costmap/source"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles cost mapping operations.
type Service struct {
	client  storage.Client
	bucket  string
	logger  *zap.Logger
	db      *gorm.DB
	cfg     Config
	matches *ebkp.MatchCache
}

// NewService creates a new costmap service.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, cfg Config) *Service {
	return &Service{
		client:  client,
		bucket:  bucket,
		logger:  logger,
		db:      db,
		cfg:     cfg,
		matches: ebkp.NewMatchCache(time.Duration(cfg.CacheTTLSeconds) * time.Second),
	}
}

// LoadElements loads the model elements, preferring the database and falling
// back to the JSON export in object storage. The load is bounded by the
// configured timeout.
func (s *Service) LoadElements(ctx context.Context) ([]element.Element, error) {
	timeout := s.cfg.LoadTimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	if s.db != nil {
		repo := source.NewRepository(s.db, s.cfg.Table)
		elements, err := repo.LoadElements(ctx)
		if err == nil {
			return elements, nil
		}
		s.logger.Warn("Database element load failed, falling back to storage", zap.Error(err))
	}

	docs := source.NewDocumentLoader(s.client, s.bucket, s.cfg.ElementsObject)
	return docs.LoadElements(ctx)
}

// ApplyMapping maps a cost tree against model elements. Callers may supply
// the elements inline (e.g. a client pushing both sides of the mapping);
// when elements is empty the configured source is loaded instead. It
// returns the mapped tree together with its rolled-up grand total.
func (s *Service) ApplyMapping(ctx context.Context, root *costtree.Node, elements []element.Element) (*costtree.MapResult, float64, error) {
	if len(elements) == 0 {
		loaded, err := s.LoadElements(ctx)
		if err != nil {
			return nil, 0, err
		}
		elements = loaded
	}

	ix := ebkp.BuildIndex(elements)
	result, err := costtree.Map(root, ix)
	if err != nil {
		return nil, 0, err
	}

	total, err := costtree.NewTotalCache().ComputeTotal(result.Root)
	if err != nil {
		return nil, 0, err
	}

	s.logger.Info("Mapping applied",
		zap.Int("elements", len(elements)),
		zap.Int("leaves", result.Summary.Leaves),
		zap.Int("matched", result.Summary.Matched),
		zap.Int("unmatched", result.Summary.Unmatched),
		zap.Float64("total_chf", total),
	)
	return result, total, nil
}

// BulkMatches resolves every element code against the current index. The
// result is served from the TTL cache unless force is set.
func (s *Service) BulkMatches(ctx context.Context, force bool) ([]ebkp.MatchResult, error) {
	elements, err := s.LoadElements(ctx)
	if err != nil {
		return nil, err
	}
	ix := ebkp.BuildIndex(elements)
	return s.matches.Matches(elements, ix, force)
}

// InvalidateMatches drops the cached bulk match payload, forcing the next
// BulkMatches call to recompute.
func (s *Service) InvalidateMatches() {
	s.matches.Invalidate()
}
