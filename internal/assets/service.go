package assets

import (
	"context"
	"errors"
	"time"

	"inventra-backend/internal/models"
	"inventra-backend/internal/pkg/faults"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service is the asset registry. It never writes Asset.status beyond the
// initial value: status is a derived cache owned by the lifecycle, import and
// maintenance writers.
type Service struct {
	DB *gorm.DB
}

// ListFilter narrows List results. Empty fields are ignored.
type ListFilter struct {
	Status        string
	Department    string
	EquipmentKind string
}

// List returns assets matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]models.Asset, error) {
	if filter.Status != "" && !models.ValidAssetStatus(filter.Status) {
		return nil, faults.Validation("Unknown asset status %q", filter.Status)
	}
	q := s.DB.WithContext(ctx).Order("created_at DESC")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}
	if filter.EquipmentKind != "" {
		q = q.Where("equipment_kind = ?", filter.EquipmentKind)
	}
	var assets []models.Asset
	if err := q.Find(&assets).Error; err != nil {
		return nil, faults.Persistence(err, "Could not list assets")
	}
	return assets, nil
}

// Get returns one asset by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	var asset models.Asset
	if err := s.DB.WithContext(ctx).Where("asset_id = ?", id).First(&asset).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, faults.NotFound("Asset not found")
		}
		return nil, faults.Persistence(err, "Could not load asset")
	}
	return &asset, nil
}

// CreateInput for registering an asset by hand (outside import).
type CreateInput struct {
	AssetTag      string
	EquipmentKind string
	Model         string
	SerialNo      string
	Department    string
	Station       string
	Attributes    datatypes.JSON
	PurchaseDate  *time.Time
}

// Create registers a new asset with status Available. Custody and
// maintenance states are reached only through their own transitions.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Asset, error) {
	if in.AssetTag == "" {
		return nil, faults.Validation("asset_tag is required")
	}
	asset := models.Asset{
		AssetTag:      in.AssetTag,
		EquipmentKind: in.EquipmentKind,
		Model:         in.Model,
		SerialNo:      in.SerialNo,
		Status:        models.AssetStatusAvailable,
		Department:    in.Department,
		Station:       in.Station,
		Attributes:    in.Attributes,
		PurchaseDate:  in.PurchaseDate,
	}
	if err := s.DB.WithContext(ctx).Create(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, faults.Conflict("Asset tag %q already exists", in.AssetTag)
		}
		return nil, faults.Persistence(err, "Could not create asset")
	}
	return &asset, nil
}

// UpdateInput for PATCH. Nil pointers leave the column untouched. There is
// deliberately no Status field: the registry rejects direct status edits.
type UpdateInput struct {
	AssetTag      *string
	EquipmentKind *string
	Model         *string
	SerialNo      *string
	Department    *string
	Station       *string
	Attributes    datatypes.JSON
	PurchaseDate  *time.Time
}

// Update patches descriptive asset fields.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*models.Asset, error) {
	asset, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.AssetTag != nil {
		updates["asset_tag"] = *in.AssetTag
	}
	if in.EquipmentKind != nil {
		updates["equipment_kind"] = *in.EquipmentKind
	}
	if in.Model != nil {
		updates["model"] = *in.Model
	}
	if in.SerialNo != nil {
		updates["serial_no"] = *in.SerialNo
	}
	if in.Department != nil {
		updates["department"] = *in.Department
	}
	if in.Station != nil {
		updates["station"] = *in.Station
	}
	if in.Attributes != nil {
		updates["attributes"] = in.Attributes
	}
	if in.PurchaseDate != nil {
		updates["purchase_date"] = in.PurchaseDate
	}
	if len(updates) == 0 {
		return asset, nil
	}

	if err := s.DB.WithContext(ctx).Model(&models.Asset{}).Where("asset_id = ?", id).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, faults.Conflict("Asset tag already exists")
		}
		return nil, faults.Persistence(err, "Could not update asset")
	}
	return s.Get(ctx, id)
}

// Delete soft-deletes an asset. Assignments and maintenance history remain —
// they are the audit trail the status cache is derived from.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("asset_id = ?", id).Delete(&models.Asset{})
	if res.Error != nil {
		return faults.Persistence(res.Error, "Could not delete asset")
	}
	if res.RowsAffected == 0 {
		return faults.NotFound("Asset not found")
	}
	return nil
}
