package repository

import (
	"github.com/bluecilantro/catering-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	GetAll() (map[string]string, error)
	Get(keys ...string) (map[string]string, error)
	Upsert(key, value string) error
}

type gormSettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &gormSettingsRepository{db: db}
}

func (r *gormSettingsRepository) GetAll() (map[string]string, error) {
	var settings []models.Setting
	if err := r.db.Find(&settings).Error; err != nil {
		return nil, err
	}
	return toMap(settings), nil
}

func (r *gormSettingsRepository) Get(keys ...string) (map[string]string, error) {
	var settings []models.Setting
	if err := r.db.Where("`key` IN ?", keys).Find(&settings).Error; err != nil {
		return nil, err
	}
	return toMap(settings), nil
}

func (r *gormSettingsRepository) Upsert(key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error
}

func toMap(settings []models.Setting) map[string]string {
	settingsMap := make(map[string]string, len(settings))
	for _, s := range settings {
		settingsMap[s.Key] = s.Value
	}
	return settingsMap
}
