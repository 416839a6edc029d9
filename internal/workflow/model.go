package workflow

import (
	"time"

	"gorm.io/gorm"

	"github.com/gestcon/api-contratos/internal/contrato"
)

// ProcessoContrato é o registro de auditoria de uma transição de status.
// Imutável após a criação, exceto o anexo de documento e o arquivamento
// lógico via Ativo; DataAcao é gravada uma única vez.
type ProcessoContrato struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	ContratoID uint              `gorm:"not null;index" json:"contratoId"`
	Contrato   contrato.Contrato `gorm:"foreignKey:ContratoID" json:"-"`

	StatusAnterior contrato.Status `gorm:"size:50;not null" json:"statusAnterior"`
	StatusAtual    contrato.Status `gorm:"size:50;not null;index" json:"statusAtual"`

	AcaoRealizada      string    `gorm:"size:255;not null" json:"acaoRealizada"`
	Observacoes        string    `gorm:"type:text" json:"observacoes"`
	DataAcao           time.Time `gorm:"not null;index" json:"dataAcao"`
	UsuarioResponsavel string    `gorm:"size:150;not null;index" json:"usuarioResponsavel"`
	DocumentoAnexo     string    `gorm:"size:255" json:"documentoAnexo"`
	Ativo              bool      `gorm:"not null;default:true" json:"ativo"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ProcessoContrato{})
}
