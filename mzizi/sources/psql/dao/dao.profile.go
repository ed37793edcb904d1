// mzizi/sources/psql/dao/dao.profile.go
package dao

import (
	"context"
	"encoding/json"

	"mzizi/mzizi/sources/psql/models"
	"mzizi/mzizi/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileDAO struct {
	DB *gorm.DB
}

func NewProfileDAO(db *gorm.DB) *ProfileDAO {
	return &ProfileDAO{DB: db}
}

func toRecord(p types.BusinessProfile) models.Profile {
	goals, _ := json.Marshal(p.Goals)
	return models.Profile{
		ID:              p.ID,
		Email:           p.Email,
		OwnerName:       p.OwnerName,
		BusinessName:    p.BusinessName,
		BusinessType:    p.BusinessType,
		Country:         p.Country,
		Currency:        p.Currency,
		RevenueRange:    p.RevenueRange,
		TeamSize:        p.TeamSize,
		PrimaryStrength: p.PrimaryStrength,
		GoalsJSON:       string(goals),
	}
}

func fromRecord(rec models.Profile) types.BusinessProfile {
	var goals []string
	if rec.GoalsJSON != "" {
		_ = json.Unmarshal([]byte(rec.GoalsJSON), &goals)
	}
	return types.BusinessProfile{
		ID:              rec.ID,
		Email:           rec.Email,
		OwnerName:       rec.OwnerName,
		BusinessName:    rec.BusinessName,
		BusinessType:    rec.BusinessType,
		Country:         rec.Country,
		Currency:        rec.Currency,
		RevenueRange:    rec.RevenueRange,
		TeamSize:        rec.TeamSize,
		PrimaryStrength: rec.PrimaryStrength,
		Goals:           goals,
	}
}

func (dao *ProfileDAO) CreateProfile(ctx context.Context, p types.BusinessProfile) (types.BusinessProfile, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	rec := toRecord(p)
	if err := dao.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return types.BusinessProfile{}, err
	}
	return fromRecord(rec), nil
}

func (dao *ProfileDAO) GetProfileByID(ctx context.Context, id string) (types.BusinessProfile, error) {
	var rec models.Profile
	if err := dao.DB.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return types.BusinessProfile{}, err
	}
	return fromRecord(rec), nil
}

func (dao *ProfileDAO) ListProfiles(ctx context.Context) ([]types.BusinessProfile, error) {
	var recs []models.Profile
	if err := dao.DB.WithContext(ctx).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]types.BusinessProfile, len(recs))
	for i, rec := range recs {
		out[i] = fromRecord(rec)
	}
	return out, nil
}

func (dao *ProfileDAO) UpdateProfile(ctx context.Context, p types.BusinessProfile) (types.BusinessProfile, error) {
	rec := toRecord(p)
	if err := dao.DB.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", p.ID).
		Updates(&rec).Error; err != nil {
		return types.BusinessProfile{}, err
	}
	return dao.GetProfileByID(ctx, p.ID)
}
