package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
	Name          string          `gorm:"default:Novo Aluno" json:"name"`
	Email         string          `gorm:"unique" json:"email"`
	Password      string          `json:"password"`
	IsVerified    bool            `gorm:"default:false" json:"is_verified"`
	Code          string          `json:"code"`
	CodeCreatedAt time.Time       `gorm:"autoCreateTime" json:"codeCreatedAt"`
	PhoneNumber   string          `gorm:"type:varchar(15)" json:"phoneNumber"`
	Avatar        string          `json:"avatar"`
	Role          int             `gorm:"default:3" json:"role"`
	Active        bool            `gorm:"default:true" json:"active"`
	Belt          string          `gorm:"default:branca" json:"belt"`
	Degree        int             `gorm:"default:0" json:"degree"`
	DateOfBirth   string          `gorm:"default:'01/01/2000'" json:"dateOfBirth"`
	TrainingDays  pq.Int64Array   `gorm:"type:integer[]" json:"trainingDays"`
	CheckIns      []CheckInRecord `gorm:"foreignKey:StudentID" json:"checkins"`
}
