package controllers

import (
	"lms/database"

	"gorm.io/gorm"
)

func db() *gorm.DB {
	return database.Database.Db
}
