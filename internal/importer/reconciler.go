package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"inventra-backend/internal/auth"
	"inventra-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service orchestrates the import pipeline: map columns, normalize dates,
// match, upsert. Rows are processed sequentially; one row's failure never
// aborts the rest of the batch.
type Service struct {
	DB        *gorm.DB
	TagPrefix string
}

// RowError is one per-row failure in the report.
type RowError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// Report summarizes a reconcile run. Always returned, even under partial
// failure or cancellation; already-committed rows are never rolled back.
type Report struct {
	Imported int        `json:"imported"`
	Errors   int        `json:"errors"`
	Details  []RowError `json:"details"`
}

// Success reports whether the batch made any forward progress.
func (r Report) Success() bool {
	return r.Imported > 0
}

// Reconcile merges raw spreadsheet rows into the asset registry. Idempotent:
// re-running identical input matches rows by serial number and updates
// instead of inserting. Cancellation is honored between rows and yields the
// partial report.
func (s *Service) Reconcile(ctx context.Context, rows []map[string]interface{}, actor auth.Actor) Report {
	report := Report{Details: []RowError{}}

	for i, raw := range rows {
		if ctx.Err() != nil {
			log.Warn().Int("processed", i).Int("total", len(rows)).Msg("import cancelled, returning partial report")
			break
		}

		mapped := MapColumns(raw, DefaultAliases)
		key := rowKey(mapped, i)

		if mapped.Get(FieldFullName) == "" {
			report.Errors++
			report.Details = append(report.Details, RowError{Key: key, Message: "Missing required field: full name"})
			continue
		}

		if err := s.reconcileRow(ctx, mapped); err != nil {
			report.Errors++
			report.Details = append(report.Details, RowError{Key: key, Message: err.Error()})
			log.Error().Err(err).Str("row", key).Str("imported_by", actor.UserID.String()).Msg("import row failed")
			continue
		}
		report.Imported++
	}

	log.Info().
		Int("imported", report.Imported).
		Int("errors", report.Errors).
		Str("imported_by", actor.UserID.String()).
		Msg("import reconciliation finished")
	return report
}

// reconcileRow applies one mapped row: insert or update, plus the initial
// assignment-history entry on insert. Insert and history share a transaction
// so a half-imported row cannot exist.
func (s *Service) reconcileRow(ctx context.Context, mapped MappedRow) error {
	serial := mapped.Get(FieldSerialNo)

	decision, err := MatchAsset(s.DB.WithContext(ctx), serial)
	if err != nil {
		return fmt.Errorf("matching against registry: %w", err)
	}

	purchase := NormalizeDate(mapped.Get(FieldPurchaseDate))
	lastMaint := NormalizeDate(mapped.Get(FieldLastMaintenanceDate))
	nextMaint := NormalizeDate(mapped.Get(FieldNextMaintenanceDate))
	attrs := attributesJSON(mapped)

	if decision.Update {
		updates := map[string]interface{}{}
		setIfPresent(updates, "equipment_kind", mapped.Get(FieldEquipmentKind))
		setIfPresent(updates, "model", mapped.Get(FieldModel))
		setIfPresent(updates, "department", mapped.Get(FieldDepartment))
		setIfPresent(updates, "station", mapped.Get(FieldStation))
		if attrs != nil {
			updates["attributes"] = attrs
		}
		if purchase != nil {
			updates["purchase_date"] = purchase
		}
		if lastMaint != nil {
			updates["last_maintenance_date"] = lastMaint
		}
		if nextMaint != nil {
			updates["next_maintenance_date"] = nextMaint
		}
		if len(updates) == 0 {
			return nil
		}
		// Status is deliberately untouched: it is derived from assignment and
		// maintenance records, and an import row carries neither.
		if err := s.DB.WithContext(ctx).Model(&models.Asset{}).
			Where("asset_id = ?", decision.ExistingID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("updating asset %s: %w", serial, err)
		}
		return nil
	}

	tag := mapped.Get(FieldAssetTag)
	if tag == "" {
		tag = GenerateAssetTag(s.DB.WithContext(ctx), s.TagPrefix)
	}

	asset := models.Asset{
		AssetTag:            tag,
		EquipmentKind:       mapped.Get(FieldEquipmentKind),
		Model:               mapped.Get(FieldModel),
		SerialNo:            serial,
		Status:              models.AssetStatusAvailable,
		Department:          mapped.Get(FieldDepartment),
		Station:             mapped.Get(FieldStation),
		PurchaseDate:        purchase,
		LastMaintenanceDate: lastMaint,
		NextMaintenanceDate: nextMaint,
	}
	if attrs != nil {
		asset.Attributes = attrs
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&asset).Error; err != nil {
			return fmt.Errorf("inserting asset %s: %w", serial, err)
		}
		if assignee := mapped.Get(FieldFullName); assignee != "" {
			date := time.Now().UTC()
			if purchase != nil {
				date = *purchase
			}
			history := models.AssignmentHistory{
				AssetID:      asset.AssetID,
				AssigneeName: assignee,
				Date:         date,
				Reason:       "Initial assignment",
			}
			if err := tx.Create(&history).Error; err != nil {
				return fmt.Errorf("recording assignment history for %s: %w", serial, err)
			}
		}
		return nil
	})
}

// rowKey identifies a row in the report: serial number when present,
// otherwise the 1-based row ordinal.
func rowKey(mapped MappedRow, index int) string {
	if serial := mapped.Get(FieldSerialNo); serial != "" {
		return serial
	}
	return fmt.Sprintf("row %d", index+1)
}

func setIfPresent(updates map[string]interface{}, column, value string) {
	if value != "" {
		updates[column] = value
	}
}

// attributesJSON collects the free-form device fields into a JSON blob,
// nil when the row has none.
func attributesJSON(mapped MappedRow) datatypes.JSON {
	attrs := map[string]string{}
	for _, f := range []string{FieldRAM, FieldStorage, FieldOS} {
		if v := mapped.Get(f); v != "" {
			attrs[f] = v
		}
	}
	if len(attrs) == 0 {
		return nil
	}
	b, _ := json.Marshal(attrs)
	return datatypes.JSON(b)
}
