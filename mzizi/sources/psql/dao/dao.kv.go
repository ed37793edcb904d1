// mzizi/sources/psql/dao/dao.kv.go
package dao

import (
	"context"
	"errors"

	"mzizi/mzizi/sources/psql/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVDAO is the gorm-backed key-value substrate. It satisfies the session
// adapter's KV interface.
type KVDAO struct {
	DB *gorm.DB
}

func NewKVDAO(db *gorm.DB) *KVDAO {
	return &KVDAO{DB: db}
}

func (dao *KVDAO) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.KVEntry
	err := dao.DB.WithContext(ctx).First(&entry, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

func (dao *KVDAO) Set(ctx context.Context, key, value string) error {
	entry := models.KVEntry{Key: key, Value: value}
	return dao.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (dao *KVDAO) Delete(ctx context.Context, key string) error {
	return dao.DB.WithContext(ctx).Delete(&models.KVEntry{}, "key = ?", key).Error
}
