package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventra-backend/internal/auth"
	"inventra-backend/internal/models"
	"inventra-backend/internal/pkg/faults"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service enforces the assignment state machine and keeps the owning asset's
// status field synchronized. It is one of the only writers of Asset.status.
type Service struct {
	DB *gorm.DB
}

// AssignInput for creating an assignment.
type AssignInput struct {
	AssetID            uuid.UUID
	AssigneeID         uuid.UUID
	ExpectedReturnDate *time.Time
	Notes              string
}

// Result is the outcome of a successful transition. SyncWarning is set when
// the assignment write committed but the derived asset-status write failed;
// the status cache is then stale until the next successful write touching
// that asset.
type Result struct {
	Assignment  *models.Assignment
	SyncWarning bool
}

// Assign creates an Active assignment and marks the asset Assigned. Both
// writes share one transaction. The pre-check below is only the fast path
// for a friendly error; the partial unique index on assignments
// (one Active row per asset) is the authoritative guard, so of two
// concurrent calls exactly one commits and the other sees a conflict.
func (s *Service) Assign(ctx context.Context, in AssignInput, actor auth.Actor) (*Result, error) {
	if in.AssetID == uuid.Nil {
		return nil, faults.Validation("asset_id is required")
	}
	if in.AssigneeID == uuid.Nil {
		return nil, faults.Validation("assignee_id is required")
	}

	var assignment models.Assignment
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.Where("asset_id = ?", in.AssetID).First(&asset).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return faults.NotFound("Asset not found")
			}
			return faults.Persistence(err, "Could not load asset")
		}

		var assignee models.User
		if err := tx.Where("user_id = ?", in.AssigneeID).First(&assignee).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return faults.NotFound("Assignee not found")
			}
			return faults.Persistence(err, "Could not load assignee")
		}

		var active int64
		if err := tx.Model(&models.Assignment{}).
			Where("asset_id = ? AND status = ?", in.AssetID, models.AssignmentStatusActive).
			Count(&active).Error; err != nil {
			return faults.Persistence(err, "Could not check existing assignments")
		}
		if active > 0 {
			return ErrAlreadyAssigned
		}

		now := time.Now().UTC()
		assignment = models.Assignment{
			AssetID:            in.AssetID,
			AssigneeID:         in.AssigneeID,
			AssignedBy:         actor.UserID,
			AssignmentDate:     now,
			ExpectedReturnDate: in.ExpectedReturnDate,
			Status:             models.AssignmentStatusActive,
			Notes:              in.Notes,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyAssigned
			}
			return faults.Persistence(err, "Could not create assignment")
		}

		if err := tx.Model(&models.Asset{}).
			Where("asset_id = ?", in.AssetID).
			Update("status", models.AssetStatusAssigned).Error; err != nil {
			return faults.Persistence(err, "Could not update asset status")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("assignment_id", assignment.AssignmentID.String()).
		Str("asset_id", in.AssetID.String()).
		Str("assignee_id", in.AssigneeID.String()).
		Str("actor", actor.UserID.String()).
		Msg("asset assigned")
	return &Result{Assignment: &assignment}, nil
}

// Return closes an Active/Overdue assignment and marks the asset Available.
func (s *Service) Return(ctx context.Context, assignmentID uuid.UUID, returnDate *time.Time, note string, actor auth.Actor) (*Result, error) {
	date := time.Now().UTC()
	if returnDate != nil {
		date = *returnDate
	}
	return s.close(ctx, assignmentID, transition{
		assignmentStatus: models.AssignmentStatusReturned,
		assetStatus:      models.AssetStatusAvailable,
		annotation:       "Returned",
		returnDate:       &date,
	}, note, actor)
}

// MarkLost records loss of custody: assignment Lost, asset Lost.
func (s *Service) MarkLost(ctx context.Context, assignmentID uuid.UUID, note string, actor auth.Actor) (*Result, error) {
	return s.close(ctx, assignmentID, transition{
		assignmentStatus: models.AssignmentStatusLost,
		assetStatus:      models.AssetStatusLost,
		annotation:       "Marked lost",
	}, note, actor)
}

// MarkDamaged records damage: assignment Damaged, asset Damaged.
func (s *Service) MarkDamaged(ctx context.Context, assignmentID uuid.UUID, note string, actor auth.Actor) (*Result, error) {
	return s.close(ctx, assignmentID, transition{
		assignmentStatus: models.AssignmentStatusDamaged,
		assetStatus:      models.AssetStatusDamaged,
		annotation:       "Marked damaged",
	}, note, actor)
}

type transition struct {
	assignmentStatus string
	assetStatus      string
	annotation       string
	returnDate       *time.Time
}

// close performs a terminal transition. The assignment write is the
// authoritative one and commits first; a failed asset-status sync is logged
// and surfaced as a warning, never rolled back — losing the audit event would
// be worse than a stale status cache.
func (s *Service) close(ctx context.Context, assignmentID uuid.UUID, tr transition, note string, actor auth.Actor) (*Result, error) {
	if assignmentID == uuid.Nil {
		return nil, faults.Validation("assignment_id is required")
	}

	var assignment models.Assignment
	if err := s.DB.WithContext(ctx).Where("assignment_id = ?", assignmentID).First(&assignment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, faults.NotFound("Assignment not found")
		}
		return nil, faults.Persistence(err, "Could not load assignment")
	}
	if !assignment.Open() {
		return nil, faults.Validation("Assignment is already %s", assignment.Status)
	}

	assignment.Status = tr.assignmentStatus
	assignment.Notes = appendNote(assignment.Notes, tr.annotation, actor.Fullname, note)
	if tr.returnDate != nil {
		assignment.ActualReturnDate = tr.returnDate
	}
	if err := s.DB.WithContext(ctx).Save(&assignment).Error; err != nil {
		return nil, faults.Persistence(err, "Could not update assignment")
	}

	result := &Result{Assignment: &assignment}
	if err := s.DB.WithContext(ctx).Model(&models.Asset{}).
		Where("asset_id = ?", assignment.AssetID).
		Update("status", tr.assetStatus).Error; err != nil {
		result.SyncWarning = true
		log.Warn().Err(err).
			Str("assignment_id", assignment.AssignmentID.String()).
			Str("asset_id", assignment.AssetID.String()).
			Str("wanted_status", tr.assetStatus).
			Msg("assignment updated but asset status sync failed; status cache is stale")
	}

	log.Info().
		Str("assignment_id", assignment.AssignmentID.String()).
		Str("asset_id", assignment.AssetID.String()).
		Str("status", tr.assignmentStatus).
		Str("actor", actor.UserID.String()).
		Msg("assignment transition applied")
	return result, nil
}

// ListForAsset returns the full assignment history for an asset, newest first.
func (s *Service) ListForAsset(ctx context.Context, assetID uuid.UUID) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := s.DB.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("assignment_date DESC").
		Find(&assignments).Error; err != nil {
		return nil, faults.Persistence(err, "Could not list assignments")
	}
	return assignments, nil
}

// appendNote appends a timestamped annotation, preserving the prior notes as
// a prefix. Notes are append-only; nothing here may overwrite history.
func appendNote(existing, annotation, actorName, note string) string {
	stamp := time.Now().UTC().Format("2006-01-02 15:04")
	line := fmt.Sprintf("[%s] %s by %s", stamp, annotation, actorName)
	if note != "" {
		line += ": " + note
	}
	if existing == "" {
		return line
	}
	return existing + "\n" + line
}
