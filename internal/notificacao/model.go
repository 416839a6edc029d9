package notificacao

import (
	"time"

	"gorm.io/gorm"
)

// Notificacao é o marcador in-app criado a cada disparo, independente do
// resultado da entrega por e-mail.
type Notificacao struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ContratoID uint      `gorm:"not null;index" json:"contratoId"`
	Tipo       string    `gorm:"size:50;not null;index" json:"tipo"`
	Titulo     string    `gorm:"size:255;not null" json:"titulo"`
	Mensagem   string    `gorm:"type:text" json:"mensagem"`
	Lida       bool      `gorm:"not null;default:false" json:"lida"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Notificacao{})
}
