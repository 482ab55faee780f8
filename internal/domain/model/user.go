package model

import "time"

type Role string

const (
	RoleHerder   Role = "herder"
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	FullName     string `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone        string `gorm:"type:varchar(30)" json:"phone"`
	//自由記述の住所（配送先はここだけ）
	Address string `gorm:"type:varchar(500)" json:"address"`
	Role    Role   `gorm:"type:varchar(20);not null;index" json:"role"`
	//アバターはdata URIのまま保存（サイズ上限あり）
	Avatar       string    `gorm:"type:text" json:"avatar"`
	TokenVersion int       `gorm:"not null;default:0" json:"-"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
