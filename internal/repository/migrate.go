package repository

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Migrate keeps the schema in sync with the persistence models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&enrollmentModel{},
		&lessonTypeModel{},
		&trainingPackageModel{},
		&bookingModel{},
		&notificationModel{},
		&messageModel{},
	)
}

func splitFeatures(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

func joinFeatures(features []string) string {
	if len(features) == 0 {
		return ""
	}
	b, err := json.Marshal(features)
	if err != nil {
		return ""
	}
	return string(b)
}
