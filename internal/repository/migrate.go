package repository

import (
	"Touchline/internal/model"

	"gorm.io/gorm"
)

// AutoMigrate 建表，三个话题板块共用 model.Topic 结构
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Match{},
		&model.Comment{},
		&model.Like{},
		&model.Attachment{},
	); err != nil {
		return err
	}
	for _, section := range model.Sections() {
		if err := db.Table(section.Table()).AutoMigrate(&model.Topic{}); err != nil {
			return err
		}
	}
	return nil
}
