package documentos

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage grava documentos enviados (PDF/XML de notas, comprovantes,
// anexos de processo) sob um diretório base, com nome único para evitar
// colisão entre uploads de mesmo nome.
type Storage struct {
	BaseDir string
}

func NewStorage() *Storage {
	base := os.Getenv("DOCUMENTOS_DIR")
	if base == "" {
		base = "uploads"
	}
	return &Storage{BaseDir: base}
}

// Salvar persiste o conteúdo e retorna o caminho relativo armazenado nas
// entidades (documento_anexo, arquivo_pdf, documento_comprobatorio).
func (s *Storage) Salvar(nomeOriginal string, conteudo io.Reader) (string, error) {
	if err := os.MkdirAll(s.BaseDir, 0o755); err != nil {
		return "", fmt.Errorf("criar diretório de documentos: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(nomeOriginal))
	nome := uuid.NewString() + ext
	caminho := filepath.Join(s.BaseDir, nome)

	f, err := os.Create(caminho)
	if err != nil {
		return "", fmt.Errorf("criar arquivo: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, conteudo); err != nil {
		os.Remove(caminho)
		return "", fmt.Errorf("gravar arquivo: %w", err)
	}
	return caminho, nil
}

// Remover apaga um documento armazenado; caminho fora do diretório base é
// recusado.
func (s *Storage) Remover(caminho string) error {
	rel, err := filepath.Rel(s.BaseDir, caminho)
	if err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("caminho fora do diretório de documentos: %s", caminho)
	}
	return os.Remove(caminho)
}
