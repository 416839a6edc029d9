package notafiscal

import (
	"time"

	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de Notas Fiscais.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Criar(n *NotaFiscal) error {
	return r.DB.Create(n).Error
}

func (r *Repository) BuscarPorID(id uint) (*NotaFiscal, error) {
	var nota NotaFiscal
	if err := r.DB.First(&nota, id).Error; err != nil {
		return nil, err
	}
	return &nota, nil
}

func (r *Repository) BuscarPorNumero(numero string) (*NotaFiscal, error) {
	var nota NotaFiscal
	if err := r.DB.Where("numero_nota = ?", numero).First(&nota).Error; err != nil {
		return nil, err
	}
	return &nota, nil
}

func (r *Repository) ListarPorContrato(contratoID uint) ([]NotaFiscal, error) {
	var notas []NotaFiscal
	err := r.DB.
		Where("contrato_id = ?", contratoID).
		Order("data_emissao DESC").
		Find(&notas).Error
	return notas, err
}

func (r *Repository) ListarPorStatus(status Status) ([]NotaFiscal, error) {
	var notas []NotaFiscal
	err := r.DB.
		Where("status = ?", status).
		Order("data_emissao DESC").
		Find(&notas).Error
	return notas, err
}

// ListarVencidas busca notas com vencimento no passado e ainda não pagas.
func (r *Repository) ListarVencidas() ([]NotaFiscal, error) {
	var notas []NotaFiscal
	err := r.DB.
		Where("data_vencimento < ? AND status <> ?", time.Now(), StatusPaga).
		Order("data_vencimento ASC").
		Find(&notas).Error
	return notas, err
}

func (r *Repository) ListarPorPeriodoEmissao(inicio, fim time.Time) ([]NotaFiscal, error) {
	var notas []NotaFiscal
	err := r.DB.
		Where("data_emissao BETWEEN ? AND ?", inicio, fim).
		Order("data_emissao ASC").
		Find(&notas).Error
	return notas, err
}

// Atualizar grava todos os campos (Save exige PK); os hooks do modelo
// recalculam o valor líquido.
func (r *Repository) Atualizar(n *NotaFiscal) error {
	return r.DB.Save(n).Error
}

func (r *Repository) Deletar(id uint) error {
	res := r.DB.Delete(&NotaFiscal{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
