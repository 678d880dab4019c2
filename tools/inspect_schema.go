package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/localnerve/foodtrack/internal/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
)

// Prints the DDL the migrations produce, using an in-memory SQLite database.
func main() {
	verbose := flag.Bool("v", false, "log the migration statements")
	flag.Parse()

	level := logger.Silent
	if *verbose {
		level = logger.Info
	}

	db, err := database.Open(sqlite.Open(":memory:"), level)
	if err != nil {
		log.Fatal(err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	var tables []string
	db.Raw("SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name").Scan(&tables)

	for _, table := range tables {
		fmt.Printf("\n=== Table: %s ===\n", table)

		var statements []string
		db.Raw("SELECT sql FROM sqlite_master WHERE tbl_name = ? AND sql IS NOT NULL ORDER BY type DESC", table).Scan(&statements)
		for _, stmt := range statements {
			fmt.Println(stmt + ";")
		}
	}
}
