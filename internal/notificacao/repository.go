package notificacao

import "gorm.io/gorm"

// Repository encapsula o acesso a dados das notificações in-app.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Criar(n *Notificacao) error {
	return r.DB.Create(n).Error
}

func (r *Repository) ListarPorContrato(contratoID uint) ([]Notificacao, error) {
	var notificacoes []Notificacao
	err := r.DB.
		Where("contrato_id = ?", contratoID).
		Order("created_at DESC").
		Find(&notificacoes).Error
	return notificacoes, err
}

func (r *Repository) MarcarLida(id uint) error {
	res := r.DB.Model(&Notificacao{}).
		Where("id = ?", id).
		Update("lida", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
