package contrato

import (
	"time"

	"gorm.io/gorm"

	"github.com/gestcon/api-contratos/internal/empresa"
)

// Contrato é a raiz de agregação: notas fiscais, pagamentos e processos
// referenciam um contrato e não sobrevivem sem ele. A exclusão é lógica
// (DeletedAt) para preservar essas referências.
type Contrato struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	NumeroContrato string          `gorm:"size:100;not null;uniqueIndex" json:"numeroContrato"`
	EmpresaID      uint            `gorm:"not null;index" json:"empresaId"`
	Empresa        empresa.Empresa `gorm:"foreignKey:EmpresaID" json:"empresa"`

	Objeto         string    `gorm:"type:text;not null" json:"objeto"`
	VigenciaInicio time.Time `gorm:"not null" json:"vigenciaInicio"`
	VigenciaFim    time.Time `gorm:"not null" json:"vigenciaFim"`
	ValorTotal     float64   `gorm:"not null" json:"valorTotal"`

	// Mutado somente pelo motor de workflow.
	Status Status `gorm:"size:50;not null;default:'RASCUNHO';index" json:"status"`

	Responsavel string `gorm:"size:150;not null" json:"responsavel"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Contrato{})
}
