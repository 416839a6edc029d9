package notafiscal

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Status possíveis de uma nota fiscal.
type Status string

const (
	StatusPendente  Status = "PENDENTE"
	StatusAprovada  Status = "APROVADA"
	StatusRejeitada Status = "REJEITADA"
	StatusPaga      Status = "PAGA"
)

var ErrMotivoObrigatorio = errors.New("motivo de rejeição é obrigatório")

// NotaFiscal é o documento fiscal vinculado a um contrato, opcionalmente
// amarrado a um pagamento.
type NotaFiscal struct {
	ID          uint  `gorm:"primaryKey" json:"id"`
	ContratoID  uint  `gorm:"not null;index" json:"contratoId"`
	PagamentoID *uint `gorm:"index" json:"pagamentoId,omitempty"`

	NumeroNota string `gorm:"size:100;not null;uniqueIndex" json:"numeroNota"`
	Serie      string `gorm:"size:20;not null" json:"serie"`

	ValorTotal    float64  `gorm:"not null" json:"valorTotal"`
	ValorImpostos *float64 `json:"valorImpostos,omitempty"`
	// Derivado: sempre recalculado a partir de total e impostos antes de
	// qualquer gravação; nunca aceito do chamador.
	ValorLiquido float64 `json:"valorLiquido"`

	DataEmissao    time.Time  `gorm:"not null" json:"dataEmissao"`
	DataVencimento *time.Time `json:"dataVencimento,omitempty"`

	Status Status `gorm:"size:50;not null;default:'PENDENTE';index" json:"status"`

	DescricaoServicos string `gorm:"type:text" json:"descricaoServicos"`
	Observacoes       string `gorm:"type:text" json:"observacoes"`

	ArquivoPDF  string `gorm:"size:255" json:"arquivoPdf"`
	ArquivoXML  string `gorm:"size:255" json:"arquivoXml"`
	ChaveAcesso string `gorm:"size:100" json:"chaveAcesso"`

	DataUpload       time.Time  `gorm:"not null" json:"dataUpload"`
	DataAprovacao    *time.Time `json:"dataAprovacao,omitempty"`
	UsuarioUpload    string     `gorm:"size:150" json:"usuarioUpload"`
	UsuarioAprovacao string     `gorm:"size:150" json:"usuarioAprovacao"`
	MotivoRejeicao   string     `gorm:"type:text" json:"motivoRejeicao"`
}

// CalcularValorLiquido deriva o líquido: total menos impostos (zero quando
// ausentes).
func (n *NotaFiscal) CalcularValorLiquido() {
	impostos := 0.0
	if n.ValorImpostos != nil {
		impostos = *n.ValorImpostos
	}
	n.ValorLiquido = n.ValorTotal - impostos
}

// Aprovar marca a nota como aprovada, registra quem e quando, e limpa
// qualquer motivo de rejeição anterior.
func (n *NotaFiscal) Aprovar(usuario string) {
	agora := time.Now()
	n.Status = StatusAprovada
	n.UsuarioAprovacao = usuario
	n.DataAprovacao = &agora
	n.MotivoRejeicao = ""
}

// Rejeitar marca a nota como rejeitada; o motivo é obrigatório.
func (n *NotaFiscal) Rejeitar(usuario, motivo string) error {
	if motivo == "" {
		return ErrMotivoObrigatorio
	}
	agora := time.Now()
	n.Status = StatusRejeitada
	n.UsuarioAprovacao = usuario
	n.DataAprovacao = &agora
	n.MotivoRejeicao = motivo
	return nil
}

// EstaVencida é calculada na leitura, nunca persistida.
func (n *NotaFiscal) EstaVencida() bool {
	return n.DataVencimento != nil &&
		n.DataVencimento.Before(time.Now()) &&
		n.Status != StatusPaga
}

// BeforeSave garante o líquido coerente em todo caminho de persistência.
func (n *NotaFiscal) BeforeSave(tx *gorm.DB) error {
	n.CalcularValorLiquido()
	return nil
}

// BeforeCreate grava o instante de upload uma única vez.
func (n *NotaFiscal) BeforeCreate(tx *gorm.DB) error {
	if n.DataUpload.IsZero() {
		n.DataUpload = time.Now()
	}
	if n.Status == "" {
		n.Status = StatusPendente
	}
	return nil
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&NotaFiscal{})
}
