package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/vigiaai/vigia-provision/internal/application/dto"
	"github.com/vigiaai/vigia-provision/internal/domain/models"
	"github.com/vigiaai/vigia-provision/internal/domain/repository"
	domainservice "github.com/vigiaai/vigia-provision/internal/domain/service"
	"github.com/vigiaai/vigia-provision/internal/infrastructure/monitoring"
	"github.com/vigiaai/vigia-provision/pkg/constants"
	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
	"github.com/vigiaai/vigia-provision/pkg/logger"
)

// DetectionService handles sensor ingest and dashboard listing of detections.
type DetectionService struct {
	detectionRepo repository.DetectionRepository
	tenantRepo    repository.TenantRepository
	eniRepo       repository.NetworkIdentityRepository
	lookupCache   domainservice.TenantLookupCache
	publisher     domainservice.DetectionPublisher
	metrics       *monitoring.Metrics
	logger        logger.Logger
}

// NewDetectionService wires the detection use cases.
func NewDetectionService(
	detectionRepo repository.DetectionRepository,
	tenantRepo repository.TenantRepository,
	eniRepo repository.NetworkIdentityRepository,
	lookupCache domainservice.TenantLookupCache,
	publisher domainservice.DetectionPublisher,
	metrics *monitoring.Metrics,
	log logger.Logger,
) *DetectionService {
	return &DetectionService{
		detectionRepo: detectionRepo,
		tenantRepo:    tenantRepo,
		eniRepo:       eniRepo,
		lookupCache:   lookupCache,
		publisher:     publisher,
		metrics:       metrics,
		logger:        log.WithComponent("detection_service"),
	}
}

// Ingest validates the payload, resolves the tenant from the VNI or the ENI,
// and appends the detection. Validation runs entirely before any store
// access. Event publishing is best effort after the record is persisted.
func (s *DetectionService) Ingest(ctx context.Context, req *dto.IngestDetectionRequest) (*dto.IngestDetectionResponse, error) {
	label, ts, err := validateIngest(req)
	if err != nil {
		s.metrics.DetectionsIngested.WithLabelValues("none", "rejected").Inc()
		return nil, err
	}

	tenantID, source, err := s.resolveTenant(ctx, req)
	if err != nil {
		s.metrics.DetectionsIngested.WithLabelValues(source, "unresolved").Inc()
		return nil, err
	}

	detection := models.NewDetection(tenantID, ts, req.ENIID, req.VNI, req.SourceIP, label, req.Probability)
	if err := s.detectionRepo.Append(ctx, detection); err != nil {
		s.metrics.DetectionsIngested.WithLabelValues(source, "error").Inc()
		return nil, err
	}
	s.metrics.DetectionsIngested.WithLabelValues(source, "stored").Inc()

	if err := s.publisher.Publish(ctx, detection); err != nil {
		s.metrics.DetectionPublishErrs.Inc()
		s.logger.Warn(ctx, "Detection stored but event publish failed",
			logger.String("tenant_id", tenantID),
			logger.String("detection_id", detection.DetectionID),
			logger.Err(err),
		)
	}

	return &dto.IngestDetectionResponse{
		Stored:   true,
		TenantID: tenantID,
		TS:       detection.TS.Format(time.RFC3339Nano),
	}, nil
}

// List returns up to limit detections for the tenant, newest first. The limit
// is clamped to the service cap.
func (s *DetectionService) List(ctx context.Context, tenantID string, limit int) ([]dto.DetectionItem, error) {
	if limit <= 0 {
		limit = constants.DefaultDetectionLimit
	}
	if limit > constants.MaxDetectionLimit {
		limit = constants.MaxDetectionLimit
	}

	detections, err := s.detectionRepo.List(ctx, tenantID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.DetectionItem, 0, len(detections))
	for _, d := range detections {
		items = append(items, dto.DetectionItem{
			DetectionID: d.DetectionID,
			ENIID:       d.ENIID,
			VNI:         d.VNI,
			SourceIP:    d.SourceIP,
			Label:       d.Label,
			Probability: d.Probability,
			TS:          d.TS,
		})
	}
	return items, nil
}

// resolveTenant maps the detection to its tenant, VNI first, then ENI.
// Resolutions are cached for the ingest hot path.
func (s *DetectionService) resolveTenant(ctx context.Context, req *dto.IngestDetectionRequest) (string, string, error) {
	if req.VNI != nil {
		key := vniLookupKey(*req.VNI)
		if tenantID, ok, _ := s.lookupCache.Get(ctx, key); ok {
			s.metrics.TenantLookupsTotal.WithLabelValues("hit").Inc()
			return tenantID, "vni", nil
		}
		s.metrics.TenantLookupsTotal.WithLabelValues("miss").Inc()

		tenant, err := s.tenantRepo.FindByVNI(ctx, *req.VNI)
		if err != nil {
			return "", "vni", err
		}
		s.cacheResolution(ctx, key, tenant.TenantID)
		return tenant.TenantID, "vni", nil
	}

	key := eniLookupKey(*req.ENIID)
	if tenantID, ok, _ := s.lookupCache.Get(ctx, key); ok {
		s.metrics.TenantLookupsTotal.WithLabelValues("hit").Inc()
		return tenantID, "eni", nil
	}
	s.metrics.TenantLookupsTotal.WithLabelValues("miss").Inc()

	tenantID, err := s.eniRepo.ReverseLookup(ctx, *req.ENIID)
	if err != nil {
		return "", "eni", err
	}
	s.cacheResolution(ctx, key, tenantID)
	return tenantID, "eni", nil
}

func (s *DetectionService) cacheResolution(ctx context.Context, key, tenantID string) {
	if err := s.lookupCache.Set(ctx, key, tenantID); err != nil {
		s.logger.Warn(ctx, "Failed to cache tenant resolution",
			logger.String("key", key),
			logger.Err(err),
		)
	}
}

// validateIngest checks the payload and returns the normalized label and the
// event timestamp.
func validateIngest(req *dto.IngestDetectionRequest) (string, time.Time, error) {
	if req.VNI == nil && req.ENIID == nil {
		return "", time.Time{}, apperrors.ErrValidation("either vni or eni_id is required")
	}
	if req.VNI != nil && (*req.VNI < constants.VNIMin || *req.VNI > constants.VNIMax) {
		return "", time.Time{}, apperrors.ErrValidation("vni out of range")
	}
	if req.ENIID != nil && strings.TrimSpace(*req.ENIID) == "" {
		return "", time.Time{}, apperrors.ErrValidation("eni_id must not be empty")
	}
	if strings.TrimSpace(req.SourceIP) == "" {
		return "", time.Time{}, apperrors.ErrValidation("source_ip is required")
	}

	label := strings.ToUpper(strings.TrimSpace(req.Label))
	if label != string(constants.DetectionLabelMalware) && label != string(constants.DetectionLabelClean) {
		return "", time.Time{}, apperrors.ErrValidation("label must be MALWARE or CLEAN")
	}
	if strings.TrimSpace(req.Probability) == "" {
		return "", time.Time{}, apperrors.ErrValidation("probability is required")
	}

	ts := time.Now().UTC()
	if req.TS != nil && *req.TS != "" {
		parsed, err := time.Parse(time.RFC3339Nano, *req.TS)
		if err != nil {
			return "", time.Time{}, apperrors.ErrValidation("ts must be RFC 3339")
		}
		ts = parsed.UTC()
	}
	return label, ts, nil
}

func vniLookupKey(vni int) string {
	return "lookup:vni:" + strconv.Itoa(vni)
}

func eniLookupKey(eniID string) string {
	return "lookup:eni:" + eniID
}
