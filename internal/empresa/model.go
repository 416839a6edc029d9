package empresa

import (
	"time"

	"gorm.io/gorm"
)

// Empresa representa a contratada vinculada a um ou mais contratos.
type Empresa struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nome     string `gorm:"size:150;not null" json:"nome"`
	CNPJ     string `gorm:"size:20;not null;uniqueIndex" json:"cnpj"`
	Endereco string `gorm:"size:255" json:"endereco"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Empresa{})
}
