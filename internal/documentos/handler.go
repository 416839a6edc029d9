package documentos

import (
	"encoding/json"
	"net/http"
)

const tamanhoMaximo = 20 << 20 // 20 MiB

type Handler struct {
	Storage *Storage
}

func NewHandler(storage *Storage) *Handler {
	return &Handler{Storage: storage}
}

// POST /documentos recebe multipart no campo "arquivo" e devolve o
// caminho armazenado, usado depois nos anexos de processo, nota e pagamento.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(tamanhoMaximo); err != nil {
		http.Error(w, "Upload inválido", http.StatusBadRequest)
		return
	}
	arquivo, header, err := r.FormFile("arquivo")
	if err != nil {
		http.Error(w, "Campo 'arquivo' ausente", http.StatusBadRequest)
		return
	}
	defer arquivo.Close()

	caminho, err := h.Storage.Salvar(header.Filename, arquivo)
	if err != nil {
		http.Error(w, "Erro ao gravar documento", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"caminho": caminho})
}

// DELETE /documentos?caminho=...
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	caminho := r.URL.Query().Get("caminho")
	if caminho == "" {
		http.Error(w, "Informe 'caminho'", http.StatusBadRequest)
		return
	}
	if err := h.Storage.Remover(caminho); err != nil {
		http.Error(w, "Erro ao remover documento", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
}
