package notificacao

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Mailer é o canal externo de entrega. Falhas de entrega são logadas e
// engolidas pelo Service; nenhuma implementação deve segurar a requisição
// além do timeout configurado.
type Mailer interface {
	Enviar(destinatario, assunto, mensagem string) error
}

// WebhookMailer entrega mensagens via POST para o gateway de e-mail
// configurado em NOTIFICACAO_WEBHOOK_URL.
type WebhookMailer struct {
	URL     string
	Cliente *http.Client
}

func NewWebhookMailer() *WebhookMailer {
	return &WebhookMailer{
		URL:     os.Getenv("NOTIFICACAO_WEBHOOK_URL"),
		Cliente: &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *WebhookMailer) Enviar(destinatario, assunto, mensagem string) error {
	payload := map[string]string{
		"de":           "noreply@gestcon.gov.br",
		"destinatario": destinatario,
		"assunto":      assunto,
		"mensagem":     mensagem,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := m.Cliente.Post(m.URL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("gateway de e-mail respondeu %d", resp.StatusCode)
	}
	return nil
}
