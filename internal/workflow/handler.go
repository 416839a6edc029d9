package workflow

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/gestcon/api-contratos/internal/contrato"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

type alterarStatusRequest struct {
	NovoStatus         contrato.Status `json:"novoStatus"`
	AcaoRealizada      string          `json:"acaoRealizada"`
	UsuarioResponsavel string          `json:"usuarioResponsavel"`
	Observacoes        string          `json:"observacoes"`
}

type anexarDocumentoRequest struct {
	Caminho string `json:"caminho"`
	Usuario string `json:"usuario"`
}

// PUT /contratos/{id}/status
func (h *Handler) AlterarStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var req alterarStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	processo, err := h.Service.AlterarStatus(uint(id), req.NovoStatus, req.AcaoRealizada, req.UsuarioResponsavel, req.Observacoes)
	if err != nil {
		var transicao *ErrTransicaoInvalida
		switch {
		case errors.As(err, &transicao):
			http.Error(w, transicao.Error(), http.StatusConflict)
		case errors.Is(err, gorm.ErrRecordNotFound):
			http.Error(w, "Contrato não encontrado", http.StatusNotFound)
		default:
			http.Error(w, "Erro ao alterar status", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(processo)
}

// GET /contratos/{id}/historico
func (h *Handler) Historico(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	processos, err := h.Service.Historico(uint(id))
	if err != nil {
		http.Error(w, "Erro ao buscar histórico", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(processos)
}

// GET /contratos/{id}/processos/ultimo
func (h *Handler) UltimoProcesso(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	p, err := h.Service.UltimoProcesso(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Contrato sem processos registrados", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao buscar processo", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(p)
}

// GET /workflow/processos?usuario=... ou ?inicio=...&fim=... (RFC 3339)
func (h *Handler) ListarProcessos(w http.ResponseWriter, r *http.Request) {
	if usuario := r.URL.Query().Get("usuario"); usuario != "" {
		processos, err := h.Service.ProcessosPorUsuario(usuario)
		if err != nil {
			http.Error(w, "Erro ao listar processos", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(processos)
		return
	}
	inicio, errInicio := time.Parse(time.RFC3339, r.URL.Query().Get("inicio"))
	fim, errFim := time.Parse(time.RFC3339, r.URL.Query().Get("fim"))
	if errInicio != nil || errFim != nil {
		http.Error(w, "Informe 'usuario' ou o período 'inicio' e 'fim'", http.StatusBadRequest)
		return
	}
	processos, err := h.Service.ProcessosPorPeriodo(inicio, fim)
	if err != nil {
		http.Error(w, "Erro ao listar processos", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(processos)
}

// PUT /processos/{id}/arquivar
func (h *Handler) Arquivar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Service.ArquivarProcesso(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Processo não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao arquivar processo", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// GET /workflow/status/{status}/transicoes
func (h *Handler) ProximosStatus(w http.ResponseWriter, r *http.Request) {
	status := contrato.Status(mux.Vars(r)["status"])
	json.NewEncoder(w).Encode(h.Service.ProximosStatus(status))
}

// GET /workflow/status/{status}/terminal
func (h *Handler) StatusFinal(w http.ResponseWriter, r *http.Request) {
	status := contrato.Status(mux.Vars(r)["status"])
	json.NewEncoder(w).Encode(map[string]bool{"terminal": h.Service.StatusFinal(status)})
}

// GET /workflow/estatisticas
func (h *Handler) Estatisticas(w http.ResponseWriter, r *http.Request) {
	contagem, err := h.Service.Estatisticas()
	if err != nil {
		http.Error(w, "Erro ao calcular estatísticas", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(contagem)
}

// PUT /processos/{id}/anexo
func (h *Handler) AnexarDocumento(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var req anexarDocumentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := h.Service.AdicionarDocumento(uint(id), req.Caminho, req.Usuario); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Processo não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao anexar documento", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
