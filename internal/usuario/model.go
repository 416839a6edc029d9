package usuario

import (
	"time"

	"gorm.io/gorm"
)

// Usuario é quem opera o sistema e assina ações de workflow.
type Usuario struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nome  string `gorm:"size:150;not null" json:"nome"`
	Email string `gorm:"size:150;not null;uniqueIndex" json:"email"`
	Senha string `gorm:"size:255;not null" json:"-"`
	Papel string `gorm:"size:50;not null;default:'GESTOR'" json:"papel"`

	IsAdmin bool `gorm:"not null;default:false" json:"isAdmin"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Usuario{})
}
