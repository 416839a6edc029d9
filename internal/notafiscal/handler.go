package notafiscal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	Repository *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repository: NewRepository(db)}
}

type aprovarRequest struct {
	Usuario string `json:"usuario"`
}

type rejeitarRequest struct {
	Usuario string `json:"usuario"`
	Motivo  string `json:"motivo"`
}

// POST /contratos/{id}/notas-fiscais
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	contratoID, _ := strconv.Atoi(mux.Vars(r)["id"])
	var nota NotaFiscal
	if err := json.NewDecoder(r.Body).Decode(&nota); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	nota.ContratoID = uint(contratoID)
	nota.Status = StatusPendente
	if err := h.Repository.Criar(&nota); err != nil {
		http.Error(w, "Erro ao salvar nota fiscal", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(nota)
}

// GET /contratos/{id}/notas-fiscais
func (h *Handler) ListarPorContrato(w http.ResponseWriter, r *http.Request) {
	contratoID, _ := strconv.Atoi(mux.Vars(r)["id"])
	notas, err := h.Repository.ListarPorContrato(uint(contratoID))
	if err != nil {
		http.Error(w, "Erro ao listar notas fiscais", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(notas)
}

// GET /notas-fiscais/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	nota, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Nota fiscal não encontrada", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(nota)
}

// GET /notas-fiscais?numero=... ou ?status=... ou ?inicio=...&fim=... (RFC 3339)
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if numero := q.Get("numero"); numero != "" {
		nota, err := h.Repository.BuscarPorNumero(numero)
		if err != nil {
			http.Error(w, "Nota fiscal não encontrada", http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(nota)
		return
	}
	if s := q.Get("status"); s != "" {
		notas, err := h.Repository.ListarPorStatus(Status(s))
		if err != nil {
			http.Error(w, "Erro ao listar notas fiscais", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(notas)
		return
	}
	inicio, errInicio := time.Parse(time.RFC3339, q.Get("inicio"))
	fim, errFim := time.Parse(time.RFC3339, q.Get("fim"))
	if errInicio != nil || errFim != nil {
		http.Error(w, "Informe 'numero', 'status' ou o período 'inicio' e 'fim'", http.StatusBadRequest)
		return
	}
	notas, err := h.Repository.ListarPorPeriodoEmissao(inicio, fim)
	if err != nil {
		http.Error(w, "Erro ao listar notas fiscais", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(notas)
}

// GET /notas-fiscais/vencidas
func (h *Handler) ListarVencidas(w http.ResponseWriter, r *http.Request) {
	notas, err := h.Repository.ListarVencidas()
	if err != nil {
		http.Error(w, "Erro ao listar notas fiscais", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(notas)
}

// PUT /notas-fiscais/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	nota, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Nota fiscal não encontrada", http.StatusNotFound)
		return
	}
	var payload NotaFiscal
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	nota.NumeroNota = payload.NumeroNota
	nota.Serie = payload.Serie
	nota.ValorTotal = payload.ValorTotal
	nota.ValorImpostos = payload.ValorImpostos
	nota.DataEmissao = payload.DataEmissao
	nota.DataVencimento = payload.DataVencimento
	nota.DescricaoServicos = payload.DescricaoServicos
	nota.Observacoes = payload.Observacoes
	nota.ArquivoPDF = payload.ArquivoPDF
	nota.ArquivoXML = payload.ArquivoXML
	nota.ChaveAcesso = payload.ChaveAcesso
	if err := h.Repository.Atualizar(nota); err != nil {
		http.Error(w, "Erro ao atualizar nota fiscal", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(nota)
}

// PUT /notas-fiscais/{id}/aprovar
func (h *Handler) Aprovar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	nota, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Nota fiscal não encontrada", http.StatusNotFound)
		return
	}
	var req aprovarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	nota.Aprovar(req.Usuario)
	if err := h.Repository.Atualizar(nota); err != nil {
		http.Error(w, "Erro ao aprovar nota fiscal", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(nota)
}

// PUT /notas-fiscais/{id}/rejeitar
func (h *Handler) Rejeitar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	nota, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Nota fiscal não encontrada", http.StatusNotFound)
		return
	}
	var req rejeitarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := nota.Rejeitar(req.Usuario, req.Motivo); err != nil {
		if errors.Is(err, ErrMotivoObrigatorio) {
			http.Error(w, "Motivo de rejeição é obrigatório", http.StatusBadRequest)
			return
		}
		http.Error(w, "Erro ao rejeitar nota fiscal", http.StatusInternalServerError)
		return
	}
	if err := h.Repository.Atualizar(nota); err != nil {
		http.Error(w, "Erro ao rejeitar nota fiscal", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(nota)
}

// DELETE /notas-fiscais/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Repository.Deletar(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Nota fiscal não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao excluir nota fiscal", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
