package maintenance

import (
	"context"
	"encoding/json"
	"time"

	"inventra-backend/internal/auth"
	"inventra-backend/internal/models"
	"inventra-backend/internal/pkg/faults"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	summaryCacheKey = "maintenance:summary"
	summaryCacheTTL = 60 * time.Second
)

// Service manages maintenance records and the read-side dashboard summary.
// The summary is cached in Redis and invalidated whenever a record is
// created.
type Service struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// CreateInput for recording maintenance work.
type CreateInput struct {
	AssetID             uuid.UUID
	MaintenanceType     string
	DatePerformed       *time.Time
	NextMaintenanceDate *time.Time
	Issue               string
	PartsUsed           string
	TimeSpentMinutes    int
}

// Create records maintenance work and syncs the asset's maintenance dates.
// The record and the asset update share one transaction. Asset status only
// moves for maintenance-driven states: ongoing corrective or emergency work
// parks the asset UnderMaintenance, and completing work on a parked asset
// releases it to Available. An Assigned asset's status is never touched here;
// custody transitions own it.
func (s *Service) Create(ctx context.Context, in CreateInput, actor auth.Actor) (*models.MaintenanceRecord, error) {
	if in.AssetID == uuid.Nil {
		return nil, faults.Validation("asset_id is required")
	}
	if !models.ValidMaintenanceType(in.MaintenanceType) {
		return nil, faults.Validation("Unknown maintenance type %q", in.MaintenanceType)
	}

	performed := time.Now().UTC()
	if in.DatePerformed != nil {
		performed = *in.DatePerformed
	}

	record := models.MaintenanceRecord{
		AssetID:             in.AssetID,
		MaintenanceType:     in.MaintenanceType,
		TechnicianID:        actor.UserID,
		DatePerformed:       performed,
		NextMaintenanceDate: in.NextMaintenanceDate,
		Issue:               in.Issue,
		PartsUsed:           in.PartsUsed,
		TimeSpentMinutes:    in.TimeSpentMinutes,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.Where("asset_id = ?", in.AssetID).First(&asset).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return faults.NotFound("Asset not found")
			}
			return faults.Persistence(err, "Could not load asset")
		}

		if err := tx.Create(&record).Error; err != nil {
			return faults.Persistence(err, "Could not create maintenance record")
		}

		updates := map[string]interface{}{
			"last_maintenance_date": performed,
			"next_maintenance_date": in.NextMaintenanceDate,
		}
		ongoing := in.NextMaintenanceDate != nil &&
			(in.MaintenanceType == models.MaintenanceTypeCorrective || in.MaintenanceType == models.MaintenanceTypeEmergency)
		if ongoing && asset.Status != models.AssetStatusAssigned {
			updates["status"] = models.AssetStatusUnderMaintenance
		} else if asset.Status == models.AssetStatusUnderMaintenance && in.NextMaintenanceDate == nil {
			updates["status"] = models.AssetStatusAvailable
		}

		if err := tx.Model(&models.Asset{}).Where("asset_id = ?", in.AssetID).Updates(updates).Error; err != nil {
			return faults.Persistence(err, "Could not sync asset maintenance dates")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateSummary(ctx)
	log.Info().
		Str("record_id", record.RecordID.String()).
		Str("asset_id", in.AssetID.String()).
		Str("type", in.MaintenanceType).
		Str("technician", actor.UserID.String()).
		Msg("maintenance recorded")
	return &record, nil
}

// RecordWithStatus pairs a stored record with its derived classification.
type RecordWithStatus struct {
	models.MaintenanceRecord
	DerivedStatus Status `json:"derived_status"`
}

// ListForAsset returns an asset's maintenance history, newest first, with the
// derived classification attached to each record.
func (s *Service) ListForAsset(ctx context.Context, assetID uuid.UUID) ([]RecordWithStatus, error) {
	var records []models.MaintenanceRecord
	if err := s.DB.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("date_performed DESC").
		Find(&records).Error; err != nil {
		return nil, faults.Persistence(err, "Could not list maintenance records")
	}

	today := time.Now().UTC()
	out := make([]RecordWithStatus, 0, len(records))
	for _, r := range records {
		out = append(out, RecordWithStatus{
			MaintenanceRecord: r,
			DerivedStatus:     Classify(r.NextMaintenanceDate, today),
		})
	}
	return out, nil
}

// Summary holds dashboard counts per classification across the registry.
type Summary struct {
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
	DueSoon   int `json:"due_soon"`
	Scheduled int `json:"scheduled"`
}

// GetSummary classifies every asset's next-maintenance date and counts per
// bucket. Served from the Redis cache when warm.
func (s *Service) GetSummary(ctx context.Context) (*Summary, error) {
	if s.Rdb != nil {
		if b, err := s.Rdb.Get(ctx, summaryCacheKey).Bytes(); err == nil {
			var cached Summary
			if json.Unmarshal(b, &cached) == nil {
				return &cached, nil
			}
		}
	}

	var assets []models.Asset
	if err := s.DB.WithContext(ctx).Select("asset_id", "next_maintenance_date").Find(&assets).Error; err != nil {
		return nil, faults.Persistence(err, "Could not load assets for summary")
	}

	today := time.Now().UTC()
	var summary Summary
	for _, a := range assets {
		switch Classify(a.NextMaintenanceDate, today) {
		case StatusCompleted:
			summary.Completed++
		case StatusOverdue:
			summary.Overdue++
		case StatusDueSoon:
			summary.DueSoon++
		case StatusScheduled:
			summary.Scheduled++
		}
	}

	if s.Rdb != nil {
		if b, err := json.Marshal(summary); err == nil {
			s.Rdb.Set(ctx, summaryCacheKey, b, summaryCacheTTL)
		}
	}
	return &summary, nil
}

func (s *Service) invalidateSummary(ctx context.Context) {
	if s.Rdb != nil {
		s.Rdb.Del(ctx, summaryCacheKey)
	}
}
