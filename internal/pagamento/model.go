package pagamento

import (
	"time"

	"gorm.io/gorm"
)

// Status possíveis de um pagamento.
type Status string

const (
	StatusPendente  Status = "PENDENTE"
	StatusPago      Status = "PAGO"
	StatusAtrasado  Status = "ATRASADO"
	StatusCancelado Status = "CANCELADO"
)

// Pagamento representa uma parcela financeira de um contrato.
type Pagamento struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ContratoID uint `gorm:"not null;index" json:"contratoId"`

	NumeroParcela string `gorm:"size:50;not null" json:"numeroParcela"`

	ValorPrevisto float64  `gorm:"not null" json:"valorPrevisto"`
	ValorPago     *float64 `json:"valorPago,omitempty"`

	DataVencimento time.Time  `gorm:"not null;index" json:"dataVencimento"`
	DataPagamento  *time.Time `json:"dataPagamento,omitempty"`

	Status Status `gorm:"size:50;not null;default:'PENDENTE';index" json:"status"`

	Observacoes            string `gorm:"type:text" json:"observacoes"`
	NumeroNotaFiscal       string `gorm:"size:100" json:"numeroNotaFiscal"`
	DocumentoComprobatorio string `gorm:"size:255" json:"documentoComprobatorio"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UsuarioResponsavel string `gorm:"size:150;not null" json:"usuarioResponsavel"`
}

// EstaAtrasado é calculado na leitura, nunca persistido, para não
// divergir do relógio.
func (p *Pagamento) EstaAtrasado() bool {
	return p.Status == StatusPendente && p.DataVencimento.Before(time.Now())
}

// CalcularDiferenca retorna pago menos previsto; zero enquanto não pago.
func (p *Pagamento) CalcularDiferenca() float64 {
	if p.ValorPago == nil {
		return 0
	}
	return *p.ValorPago - p.ValorPrevisto
}

// RegistrarPagamento quita a parcela com o valor e a data informados.
func (p *Pagamento) RegistrarPagamento(valor float64, data time.Time) {
	p.ValorPago = &valor
	p.DataPagamento = &data
	p.Status = StatusPago
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Pagamento{})
}
