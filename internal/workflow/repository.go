package workflow

import (
	"time"

	"gorm.io/gorm"

	"github.com/gestcon/api-contratos/internal/contrato"
)

// Repository encapsula o acesso a dados dos processos de contrato.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

func (r *Repository) Criar(p *ProcessoContrato) error {
	return r.DB.Create(p).Error
}

func (r *Repository) BuscarPorID(id uint) (*ProcessoContrato, error) {
	var p ProcessoContrato
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListarPorContrato retorna o histórico completo de um contrato, do
// processo mais recente para o mais antigo.
func (r *Repository) ListarPorContrato(contratoID uint) ([]ProcessoContrato, error) {
	var processos []ProcessoContrato
	err := r.DB.
		Where("contrato_id = ?", contratoID).
		Order("data_acao DESC").
		Find(&processos).Error
	return processos, err
}

func (r *Repository) ListarPorStatus(status contrato.Status) ([]ProcessoContrato, error) {
	var processos []ProcessoContrato
	err := r.DB.
		Where("status_atual = ?", status).
		Order("data_acao DESC").
		Find(&processos).Error
	return processos, err
}

func (r *Repository) ListarPorUsuario(usuario string) ([]ProcessoContrato, error) {
	var processos []ProcessoContrato
	err := r.DB.
		Where("usuario_responsavel = ?", usuario).
		Order("data_acao DESC").
		Find(&processos).Error
	return processos, err
}

func (r *Repository) ListarPorPeriodo(inicio, fim time.Time) ([]ProcessoContrato, error) {
	var processos []ProcessoContrato
	err := r.DB.
		Where("data_acao BETWEEN ? AND ?", inicio, fim).
		Order("data_acao DESC").
		Find(&processos).Error
	return processos, err
}

// UltimoProcesso retorna o processo mais recente de um contrato.
func (r *Repository) UltimoProcesso(contratoID uint) (*ProcessoContrato, error) {
	var p ProcessoContrato
	err := r.DB.
		Where("contrato_id = ?", contratoID).
		Order("data_acao DESC").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ContarPorStatus agrupa a quantidade de processos por status atual.
func (r *Repository) ContarPorStatus() (map[contrato.Status]int64, error) {
	type linha struct {
		StatusAtual contrato.Status
		Total       int64
	}
	var linhas []linha
	err := r.DB.Model(&ProcessoContrato{}).
		Select("status_atual, COUNT(*) AS total").
		Group("status_atual").
		Scan(&linhas).Error
	if err != nil {
		return nil, err
	}
	contagem := make(map[contrato.Status]int64, len(linhas))
	for _, l := range linhas {
		contagem[l.StatusAtual] = l.Total
	}
	return contagem, nil
}

// AtualizarAnexo grava o caminho do documento anexado ao processo.
func (r *Repository) AtualizarAnexo(id uint, caminho string) error {
	res := r.DB.Model(&ProcessoContrato{}).
		Where("id = ?", id).
		Update("documento_anexo", caminho)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Arquivar marca o processo como inativo sem apagar o histórico.
func (r *Repository) Arquivar(id uint) error {
	res := r.DB.Model(&ProcessoContrato{}).
		Where("id = ?", id).
		Update("ativo", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
