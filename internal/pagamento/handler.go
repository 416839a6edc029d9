package pagamento

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/gestcon/api-contratos/internal/contrato"
	"github.com/gestcon/api-contratos/internal/notificacao"
)

type Handler struct {
	DB           *gorm.DB
	Repository   *Repository
	Contratos    contrato.Repository
	Notificacoes *notificacao.Service
}

func NewHandler(db *gorm.DB, notificacoes *notificacao.Service) *Handler {
	return &Handler{
		DB:           db,
		Repository:   NewRepository(db),
		Contratos:    contrato.NewRepository(),
		Notificacoes: notificacoes,
	}
}

type registrarPagamentoRequest struct {
	ValorPago     float64   `json:"valorPago"`
	DataPagamento time.Time `json:"dataPagamento"`
}

// POST /contratos/{id}/pagamentos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	contratoID, _ := strconv.Atoi(mux.Vars(r)["id"])
	var p Pagamento
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	p.ContratoID = uint(contratoID)
	p.Status = StatusPendente
	p.ValorPago = nil
	p.DataPagamento = nil
	if err := h.Repository.Criar(&p); err != nil {
		http.Error(w, "Erro ao salvar pagamento", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// POST /contratos/{id}/pagamentos/lote
// Cria o cronograma de parcelas de uma vez só.
func (h *Handler) CriarLote(w http.ResponseWriter, r *http.Request) {
	contratoID, _ := strconv.Atoi(mux.Vars(r)["id"])
	var parcelas []*Pagamento
	if err := json.NewDecoder(r.Body).Decode(&parcelas); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if len(parcelas) == 0 {
		http.Error(w, "Informe ao menos uma parcela", http.StatusBadRequest)
		return
	}
	for _, p := range parcelas {
		p.ContratoID = uint(contratoID)
		p.Status = StatusPendente
		p.ValorPago = nil
		p.DataPagamento = nil
	}
	if err := h.Repository.CreateInBatch(parcelas); err != nil {
		http.Error(w, "Erro ao salvar parcelas", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(parcelas)
}

// GET /contratos/{id}/pagamentos
func (h *Handler) ListarPorContrato(w http.ResponseWriter, r *http.Request) {
	contratoID, _ := strconv.Atoi(mux.Vars(r)["id"])
	pagamentos, err := h.Repository.ListarPorContrato(uint(contratoID))
	if err != nil {
		http.Error(w, "Erro ao listar pagamentos", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(pagamentos)
}

// GET /pagamentos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	p, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Pagamento não encontrado", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(p)
}

// GET /pagamentos/atrasados
func (h *Handler) ListarAtrasados(w http.ResponseWriter, r *http.Request) {
	pagamentos, err := h.Repository.ListarAtrasados()
	if err != nil {
		http.Error(w, "Erro ao listar pagamentos", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(pagamentos)
}

// GET /pagamentos?status=... ou ?usuario=...
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if s := q.Get("status"); s != "" {
		pagamentos, err := h.Repository.ListarPorStatus(Status(s))
		if err != nil {
			http.Error(w, "Erro ao listar pagamentos", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(pagamentos)
		return
	}
	if usuario := q.Get("usuario"); usuario != "" {
		pagamentos, err := h.Repository.ListarPorUsuario(usuario)
		if err != nil {
			http.Error(w, "Erro ao listar pagamentos", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(pagamentos)
		return
	}
	http.Error(w, "Informe 'status' ou 'usuario'", http.StatusBadRequest)
}

// GET /pagamentos/vencendo?dias=7
func (h *Handler) ListarVencimentoProximo(w http.ResponseWriter, r *http.Request) {
	dias, err := strconv.Atoi(r.URL.Query().Get("dias"))
	if err != nil || dias <= 0 {
		dias = 7
	}
	pagamentos, err := h.Repository.ListarVencimentoProximo(dias)
	if err != nil {
		http.Error(w, "Erro ao listar pagamentos", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(pagamentos)
}

// PUT /pagamentos/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	p, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Pagamento não encontrado", http.StatusNotFound)
		return
	}
	var payload Pagamento
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	p.NumeroParcela = payload.NumeroParcela
	p.ValorPrevisto = payload.ValorPrevisto
	p.DataVencimento = payload.DataVencimento
	p.Observacoes = payload.Observacoes
	p.NumeroNotaFiscal = payload.NumeroNotaFiscal
	p.DocumentoComprobatorio = payload.DocumentoComprobatorio
	p.UsuarioResponsavel = payload.UsuarioResponsavel
	if err := h.Repository.Atualizar(p); err != nil {
		http.Error(w, "Erro ao atualizar pagamento", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(p)
}

// PUT /pagamentos/{id}/pagar
func (h *Handler) RegistrarPagamento(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	p, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Pagamento não encontrado", http.StatusNotFound)
		return
	}
	var req registrarPagamentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.DataPagamento.IsZero() {
		req.DataPagamento = time.Now()
	}
	p.RegistrarPagamento(req.ValorPago, req.DataPagamento)
	if err := h.Repository.Atualizar(p); err != nil {
		http.Error(w, "Erro ao registrar pagamento", http.StatusInternalServerError)
		return
	}

	if c, err := h.Contratos.BuscarPorID(h.DB, p.ContratoID); err == nil {
		go h.Notificacoes.NotificarPagamentoRealizado(c, p.NumeroParcela, req.ValorPago)
	}

	json.NewEncoder(w).Encode(p)
}

// PUT /pagamentos/{id}/status
// Muda o status administrativamente (ex.: CANCELADO, ATRASADO); quitação
// passa pela rota de pagamento.
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var req struct {
		Status Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.AtualizarStatus(uint(id), req.Status, time.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Pagamento não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao atualizar status", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// PUT /pagamentos/{id}/comprovante
func (h *Handler) AtualizarComprovante(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var req struct {
		Caminho string `json:"caminho"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.AtualizarComprovante(uint(id), req.Caminho); err != nil {
		http.Error(w, "Erro ao atualizar comprovante", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// DELETE /pagamentos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Repository.Deletar(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Pagamento não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao excluir pagamento", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
