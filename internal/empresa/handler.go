package empresa

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// POST /empresas
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var e Empresa
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Criar(h.DB, &e); err != nil {
		http.Error(w, "Erro ao salvar empresa", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(e)
}

// GET /empresas
func (h *Handler) ListarTodas(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListarTodas(h.DB)
	if err != nil {
		http.Error(w, "Erro ao listar empresas", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(list)
}

// GET /empresas/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	e, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Empresa não encontrada", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(e)
}

// GET /empresas/cnpj/{cnpj}
func (h *Handler) BuscarPorCNPJ(w http.ResponseWriter, r *http.Request) {
	e, err := h.Repository.BuscarPorCNPJ(h.DB, mux.Vars(r)["cnpj"])
	if err != nil {
		http.Error(w, "Empresa não encontrada", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(e)
}

// PUT /empresas/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	e, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Empresa não encontrada", http.StatusNotFound)
		return
	}
	var payload Empresa
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	e.Nome = payload.Nome
	e.CNPJ = payload.CNPJ
	e.Endereco = payload.Endereco
	if err := h.Repository.Atualizar(h.DB, e); err != nil {
		http.Error(w, "Erro ao atualizar empresa", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(e)
}

// DELETE /empresas/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "Erro ao excluir empresa", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
