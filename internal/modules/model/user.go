package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID           uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string            `gorm:"type:varchar(255);not null" json:"name"`
	Email        string            `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string            `gorm:"type:varchar(255);not null" json:"-"`
	Settings     datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"settings"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// User <-> Project
	Projects []Project `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (User) TableName() string { return "users" }
