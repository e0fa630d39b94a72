package models

import (
	"log"

	"github.com/allanweber/trading-journal-entry-sub000/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Journal{}, &Entry{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
