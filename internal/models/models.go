package models

import "time"

type User struct {
	ID           string `gorm:"primaryKey"           json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null"             json:"-"`
	Role         string `gorm:"not null"             json:"role"`
	// LastLogout is the revocation watermark in unix seconds. Tokens issued
	// at or before it are no longer honored. Nil means no logout recorded.
	LastLogout *int64 `gorm:"column:last_logout" json:"-"`
}

type Document struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	DocumentName string    `gorm:"not null"   json:"document_name"`
	OwnerName    string    `gorm:"not null"   json:"owner_name"`
	FilePath     string    `gorm:"not null"   json:"file_path"`
	UploadDate   time.Time `json:"upload_date"`
}

type Message struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Content string `gorm:"not null"                 json:"content"`
}
