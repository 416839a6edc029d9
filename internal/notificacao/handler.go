package notificacao

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	Repository *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repository: NewRepository(db)}
}

// GET /contratos/{id}/notificacoes
func (h *Handler) ListarPorContrato(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	list, err := h.Repository.ListarPorContrato(uint(id))
	if err != nil {
		http.Error(w, "Erro ao listar notificações", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(list)
}

// PUT /notificacoes/{id}/lida
func (h *Handler) MarcarLida(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Repository.MarcarLida(uint(id)); err != nil {
		if err == gorm.ErrRecordNotFound {
			http.Error(w, "Notificação não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao atualizar notificação", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
