package pagamento

import (
	"time"

	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de Pagamentos.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// CreateInBatch cria múltiplas parcelas de uma vez (ignora se vazio).
func (r *Repository) CreateInBatch(pagamentos []*Pagamento) error {
	if len(pagamentos) == 0 {
		return nil
	}
	return r.DB.Create(pagamentos).Error
}

func (r *Repository) Criar(p *Pagamento) error {
	return r.DB.Create(p).Error
}

func (r *Repository) BuscarPorID(id uint) (*Pagamento, error) {
	var p Pagamento
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListarPorContrato(contratoID uint) ([]Pagamento, error) {
	var pagamentos []Pagamento
	err := r.DB.
		Where("contrato_id = ?", contratoID).
		Order("data_vencimento ASC").
		Find(&pagamentos).Error
	return pagamentos, err
}

func (r *Repository) ListarPorStatus(status Status) ([]Pagamento, error) {
	var pagamentos []Pagamento
	err := r.DB.
		Where("status = ?", status).
		Order("data_vencimento ASC").
		Find(&pagamentos).Error
	return pagamentos, err
}

func (r *Repository) ListarPorUsuario(usuario string) ([]Pagamento, error) {
	var pagamentos []Pagamento
	err := r.DB.
		Where("usuario_responsavel = ?", usuario).
		Order("data_vencimento ASC").
		Find(&pagamentos).Error
	return pagamentos, err
}

// ListarAtrasados busca parcelas pendentes com vencimento no passado.
func (r *Repository) ListarAtrasados() ([]Pagamento, error) {
	var pagamentos []Pagamento
	err := r.DB.
		Where("status = ? AND data_vencimento < ?", StatusPendente, time.Now()).
		Order("data_vencimento ASC").
		Find(&pagamentos).Error
	return pagamentos, err
}

// ListarVencimentoProximo busca parcelas pendentes vencendo até a data limite.
func (r *Repository) ListarVencimentoProximo(dias int) ([]Pagamento, error) {
	hoje := time.Now()
	limite := hoje.AddDate(0, 0, dias)
	var pagamentos []Pagamento
	err := r.DB.
		Where("status = ? AND data_vencimento BETWEEN ? AND ?", StatusPendente, hoje, limite).
		Order("data_vencimento ASC").
		Find(&pagamentos).Error
	return pagamentos, err
}

// Atualizar grava todos os campos de uma parcela existente (Save exige PK).
func (r *Repository) Atualizar(p *Pagamento) error {
	return r.DB.Save(p).Error
}

// AtualizarStatus atualiza o status e ajusta data_pagamento:
// status PAGO grava a data informada, qualquer outro zera (NULL).
func (r *Repository) AtualizarStatus(id uint, status Status, dataPagamento time.Time) error {
	updates := map[string]interface{}{"status": status}
	if status == StatusPago {
		updates["data_pagamento"] = &dataPagamento
	} else {
		updates["data_pagamento"] = nil
	}
	res := r.DB.Model(&Pagamento{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AtualizarComprovante grava o documento comprobatório da parcela.
func (r *Repository) AtualizarComprovante(id uint, caminho string) error {
	return r.DB.Model(&Pagamento{}).
		Where("id = ?", id).
		Update("documento_comprobatorio", caminho).Error
}

func (r *Repository) Deletar(id uint) error {
	res := r.DB.Delete(&Pagamento{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
