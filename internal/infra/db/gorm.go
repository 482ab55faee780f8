package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect はDSNでDBに接続して *gorm.DB を返す。
// DSNの組み立ては internal/config 側で行う。
func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}
