package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authentity "counter_backend/internal/feature/auth/domain/entity"
	counterentity "counter_backend/internal/feature/counter/domain/entity"
)

// OpenDB opens the relational store and runs migrations.
//
// When DB_HOST is set, a MySQL connection is established with a retry loop so
// the service survives the database coming up slightly later (container
// startup ordering). Otherwise a local SQLite file is used; the path defaults
// to ./counter.db and can be overridden with DB_PATH.
//
// An unreachable store past the deadline is an unrecoverable startup failure:
// the process terminates rather than serving degraded responses.
func OpenDB() *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	if host := os.Getenv("DB_HOST"); host != "" {
		user := os.Getenv("DB_USER")
		pass := os.Getenv("DB_PASSWORD")
		name := os.Getenv("DB_NAME")
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "3306"
		}
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			user, pass, host, port, name)

		deadline := time.Now().Add(60 * time.Second)
		for {
			db, err = gorm.Open(gmysql.Open(dsn), &gorm.Config{})
			if err == nil {
				break
			}
			if time.Now().After(deadline) {
				log.Fatalf("DB connect failed after 60s: %v", err)
			}
			log.Printf("DB connect failed, retrying...: %v", err)
			time.Sleep(3 * time.Second)
		}
	} else {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "./counter.db"
		}
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open sqlite at %s: %v", path, err)
		}
	}

	// マイグレーション（User, Counter）
	if err := db.AutoMigrate(
		&authentity.User{},
		&counterentity.Counter{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
