package empresa

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, e *Empresa) error
	BuscarPorID(db *gorm.DB, id uint) (*Empresa, error)
	BuscarPorCNPJ(db *gorm.DB, cnpj string) (*Empresa, error)
	ListarTodas(db *gorm.DB) ([]Empresa, error)
	Atualizar(db *gorm.DB, e *Empresa) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, e *Empresa) error {
	return db.Create(e).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Empresa, error) {
	var e Empresa
	err := db.First(&e, id).Error
	return &e, err
}

func (r *repositoryImpl) BuscarPorCNPJ(db *gorm.DB, cnpj string) (*Empresa, error) {
	var e Empresa
	err := db.Where("cnpj = ?", cnpj).First(&e).Error
	return &e, err
}

func (r *repositoryImpl) ListarTodas(db *gorm.DB) ([]Empresa, error) {
	var empresas []Empresa
	err := db.Find(&empresas).Error
	return empresas, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, e *Empresa) error {
	return db.Save(e).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Empresa{}, id).Error
}
