package contrato

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Criar(db *gorm.DB, c *Contrato) error
	BuscarPorID(db *gorm.DB, id uint) (*Contrato, error)
	BuscarPorNumero(db *gorm.DB, numero string) (*Contrato, error)
	ListarTodos(db *gorm.DB) ([]Contrato, error)
	ListarPorStatus(db *gorm.DB, status Status) ([]Contrato, error)
	ListarProximosVencimento(db *gorm.DB, dias int) ([]Contrato, error)
	ListarVencidos(db *gorm.DB) ([]Contrato, error)
	Atualizar(db *gorm.DB, c *Contrato) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Contrato) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Contrato, error) {
	var c Contrato
	err := db.Preload("Empresa").First(&c, id).Error
	return &c, err
}

func (r *repositoryImpl) BuscarPorNumero(db *gorm.DB, numero string) (*Contrato, error) {
	var c Contrato
	err := db.Preload("Empresa").Where("numero_contrato = ?", numero).First(&c).Error
	return &c, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Contrato, error) {
	var contratos []Contrato
	err := db.Preload("Empresa").Find(&contratos).Error
	return contratos, err
}

func (r *repositoryImpl) ListarPorStatus(db *gorm.DB, status Status) ([]Contrato, error) {
	var contratos []Contrato
	err := db.Preload("Empresa").Where("status = ?", status).Find(&contratos).Error
	return contratos, err
}

// ListarProximosVencimento busca contratos cuja vigência termina dentro de
// 'dias' a partir de hoje (exclui os já vencidos).
func (r *repositoryImpl) ListarProximosVencimento(db *gorm.DB, dias int) ([]Contrato, error) {
	hoje := time.Now()
	limite := hoje.AddDate(0, 0, dias)
	var contratos []Contrato
	err := db.Preload("Empresa").
		Where("vigencia_fim > ? AND vigencia_fim <= ?", hoje, limite).
		Find(&contratos).Error
	return contratos, err
}

func (r *repositoryImpl) ListarVencidos(db *gorm.DB) ([]Contrato, error) {
	var contratos []Contrato
	err := db.Preload("Empresa").
		Where("vigencia_fim < ?", time.Now()).
		Find(&contratos).Error
	return contratos, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, c *Contrato) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Contrato{}, id).Error
}
