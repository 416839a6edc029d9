package contrato

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

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

// atualizarContratoRequest não carrega o campo Status de propósito:
// mudança de status só acontece pela rota de workflow.
type atualizarContratoRequest struct {
	NumeroContrato string    `json:"numeroContrato"`
	EmpresaID      uint      `json:"empresaId"`
	Objeto         string    `json:"objeto"`
	VigenciaInicio time.Time `json:"vigenciaInicio"`
	VigenciaFim    time.Time `json:"vigenciaFim"`
	ValorTotal     float64   `json:"valorTotal"`
	Responsavel    string    `json:"responsavel"`
}

type renovarVigenciaRequest struct {
	NovaVigenciaFim time.Time `json:"novaVigenciaFim"`
}

// POST /contratos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req atualizarContratoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	c := Contrato{
		NumeroContrato: req.NumeroContrato,
		EmpresaID:      req.EmpresaID,
		Objeto:         req.Objeto,
		VigenciaInicio: req.VigenciaInicio,
		VigenciaFim:    req.VigenciaFim,
		ValorTotal:     req.ValorTotal,
		Responsavel:    req.Responsavel,
		Status:         StatusRascunho,
	}
	if err := h.Repository.Criar(h.DB, &c); err != nil {
		http.Error(w, "Erro ao salvar contrato", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// GET /contratos
func (h *Handler) ListarTodos(w http.ResponseWriter, r *http.Request) {
	if s := r.URL.Query().Get("status"); s != "" {
		list, err := h.Repository.ListarPorStatus(h.DB, Status(s))
		if err != nil {
			http.Error(w, "Erro ao listar contratos", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(list)
		return
	}
	list, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "Erro ao listar contratos", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(list)
}

// GET /contratos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Contrato não encontrado", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(c)
}

// GET /contratos/numero/{numero}
func (h *Handler) BuscarPorNumero(w http.ResponseWriter, r *http.Request) {
	c, err := h.Repository.BuscarPorNumero(h.DB, mux.Vars(r)["numero"])
	if err != nil {
		http.Error(w, "Contrato não encontrado", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(c)
}

// GET /contratos/vencendo?dias=30
func (h *Handler) ListarProximosVencimento(w http.ResponseWriter, r *http.Request) {
	dias, err := strconv.Atoi(r.URL.Query().Get("dias"))
	if err != nil || dias <= 0 {
		dias = 30
	}
	list, err := h.Repository.ListarProximosVencimento(h.DB, dias)
	if err != nil {
		http.Error(w, "Erro ao listar contratos", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(list)
}

// GET /contratos/vencidos
func (h *Handler) ListarVencidos(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListarVencidos(h.DB)
	if err != nil {
		http.Error(w, "Erro ao listar contratos", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(list)
}

// PUT /contratos/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Contrato não encontrado", http.StatusNotFound)
		return
	}
	var req atualizarContratoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	c.NumeroContrato = req.NumeroContrato
	c.EmpresaID = req.EmpresaID
	c.Objeto = req.Objeto
	c.VigenciaInicio = req.VigenciaInicio
	c.VigenciaFim = req.VigenciaFim
	c.ValorTotal = req.ValorTotal
	c.Responsavel = req.Responsavel
	if err := h.Repository.Atualizar(h.DB, c); err != nil {
		http.Error(w, "Erro ao atualizar contrato", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(c)
}

// PUT /contratos/{id}/vigencia
// Renovação ajusta apenas a data de fim; a mudança de status correspondente
// (ATIVO -> EM_RENOVACAO -> ATIVO) passa pela rota de workflow.
func (h *Handler) RenovarVigencia(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Contrato não encontrado", http.StatusNotFound)
		return
	}
	var req renovarVigenciaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if !req.NovaVigenciaFim.After(c.VigenciaFim) {
		http.Error(w, "Nova vigência deve ser posterior à atual", http.StatusBadRequest)
		return
	}
	c.VigenciaFim = req.NovaVigenciaFim
	if err := h.Repository.Atualizar(h.DB, c); err != nil {
		http.Error(w, "Erro ao renovar contrato", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(c)
}

// DELETE /contratos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "Erro ao excluir contrato", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
