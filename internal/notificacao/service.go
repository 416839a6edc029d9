package notificacao

import (
	"fmt"
	"log"

	"github.com/gestcon/api-contratos/internal/contrato"
)

const formatoData = "02/01/2006"

// modelo descreve o par assunto/mensagem disparado para um status.
type modelo struct {
	tipo     string
	assunto  func(c *contrato.Contrato) string
	mensagem func(c *contrato.Contrato, usuario string) string
}

// modelosPorStatus roteia o disparo pelo status recém-atribuído ao contrato.
// Status sem entrada não geram notificação; isso é um caso válido, não erro.
var modelosPorStatus = map[contrato.Status]modelo{
	contrato.StatusEmAnalise: {
		tipo: "ANALISE",
		assunto: func(c *contrato.Contrato) string {
			return "Contrato em Análise - " + c.NumeroContrato
		},
		mensagem: func(c *contrato.Contrato, usuario string) string {
			return fmt.Sprintf(
				"O contrato %s da empresa %s está em análise.\n\nResponsável: %s\nValor: R$ %.2f\nVigência: %s a %s",
				c.NumeroContrato, c.Empresa.Nome, usuario, c.ValorTotal,
				c.VigenciaInicio.Format(formatoData), c.VigenciaFim.Format(formatoData),
			)
		},
	},
	contrato.StatusAprovado: {
		tipo: "APROVACAO",
		assunto: func(c *contrato.Contrato) string {
			return "Contrato Aprovado - " + c.NumeroContrato
		},
		mensagem: func(c *contrato.Contrato, usuario string) string {
			return fmt.Sprintf(
				"O contrato %s foi aprovado com sucesso!\n\nEmpresa: %s\nAprovado por: %s\nPróximo passo: Assinatura do contrato",
				c.NumeroContrato, c.Empresa.Nome, usuario,
			)
		},
	},
	contrato.StatusRejeitado: {
		tipo: "REJEICAO",
		assunto: func(c *contrato.Contrato) string {
			return "Contrato Rejeitado - " + c.NumeroContrato
		},
		mensagem: func(c *contrato.Contrato, usuario string) string {
			return fmt.Sprintf(
				"O contrato %s foi rejeitado.\n\nEmpresa: %s\nRejeitado por: %s\nAção necessária: Revisar documentação e reenviar",
				c.NumeroContrato, c.Empresa.Nome, usuario,
			)
		},
	},
	contrato.StatusAtivo: {
		tipo: "ATIVO",
		assunto: func(c *contrato.Contrato) string {
			return "Contrato Ativado - " + c.NumeroContrato
		},
		mensagem: func(c *contrato.Contrato, usuario string) string {
			return fmt.Sprintf(
				"O contrato %s está agora ATIVO!\n\nEmpresa: %s\nVigência: %s a %s\nValor Total: R$ %.2f",
				c.NumeroContrato, c.Empresa.Nome,
				c.VigenciaInicio.Format(formatoData), c.VigenciaFim.Format(formatoData), c.ValorTotal,
			)
		},
	},
	contrato.StatusVencendo: {
		tipo: "VENCIMENTO",
		assunto: func(c *contrato.Contrato) string {
			return "ALERTA: Contrato Vencendo - " + c.NumeroContrato
		},
		mensagem: func(c *contrato.Contrato, usuario string) string {
			return fmt.Sprintf(
				"ATENÇÃO! O contrato %s está próximo do vencimento.\n\nEmpresa: %s\nData de Vencimento: %s\nAção necessária: Iniciar processo de renovação",
				c.NumeroContrato, c.Empresa.Nome, c.VigenciaFim.Format(formatoData),
			)
		},
	},
	contrato.StatusEncerrado: {
		tipo: "ENCERRAMENTO",
		assunto: func(c *contrato.Contrato) string {
			return "Contrato Encerrado - " + c.NumeroContrato
		},
		mensagem: func(c *contrato.Contrato, usuario string) string {
			return fmt.Sprintf(
				"O contrato %s foi encerrado.\n\nEmpresa: %s\nEncerrado por: %s",
				c.NumeroContrato, c.Empresa.Nome, usuario,
			)
		},
	},
	contrato.StatusInadimplente: {
		tipo: "INADIMPLENCIA",
		assunto: func(c *contrato.Contrato) string {
			return "URGENTE: Contrato Inadimplente - " + c.NumeroContrato
		},
		mensagem: func(c *contrato.Contrato, usuario string) string {
			return fmt.Sprintf(
				"ALERTA! O contrato %s está INADIMPLENTE.\n\nEmpresa: %s\nIdentificado por: %s\nAção necessária: Contatar empresa e verificar pendências",
				c.NumeroContrato, c.Empresa.Nome, usuario,
			)
		},
	},
}

// Service dispara e-mails e grava o marcador in-app correspondente.
type Service struct {
	Mailer     Mailer
	Repository *Repository
}

func NewService(mailer Mailer, repo *Repository) *Service {
	return &Service{Mailer: mailer, Repository: repo}
}

// DispararPorStatus envia a notificação mapeada para o status informado.
// Entrega é melhor esforço: erros são logados e nunca propagados.
func (s *Service) DispararPorStatus(c *contrato.Contrato, status contrato.Status, usuario string) {
	m, ok := modelosPorStatus[status]
	if !ok {
		return
	}
	assunto := m.assunto(c)
	mensagem := m.mensagem(c, usuario)
	s.criarNotificacaoInApp(c.ID, m.tipo, assunto, mensagem)
	s.enviarEmail(c.Responsavel, assunto, mensagem)
}

// NotificarUploadDocumento avisa o responsável sobre um novo documento.
func (s *Service) NotificarUploadDocumento(c *contrato.Contrato, nomeDocumento, usuario string) {
	assunto := "Novo Documento - " + c.NumeroContrato
	mensagem := fmt.Sprintf(
		"Um novo documento foi adicionado ao contrato %s.\n\nDocumento: %s\nEnviado por: %s\nEmpresa: %s",
		c.NumeroContrato, nomeDocumento, usuario, c.Empresa.Nome,
	)
	s.criarNotificacaoInApp(c.ID, "DOCUMENTO", assunto, mensagem)
	s.enviarEmail(c.Responsavel, assunto, mensagem)
}

// NotificarPagamentoRealizado avisa o responsável sobre uma parcela paga.
func (s *Service) NotificarPagamentoRealizado(c *contrato.Contrato, numeroParcela string, valor float64) {
	assunto := "Pagamento Realizado - " + c.NumeroContrato
	mensagem := fmt.Sprintf(
		"Pagamento realizado para o contrato %s.\n\nParcela: %s\nValor: R$ %.2f\nEmpresa: %s",
		c.NumeroContrato, numeroParcela, valor, c.Empresa.Nome,
	)
	s.criarNotificacaoInApp(c.ID, "PAGAMENTO", assunto, mensagem)
	s.enviarEmail(c.Responsavel, assunto, mensagem)
}

// EnviarNotificacaoMultipla repassa o mesmo aviso para vários destinatários.
func (s *Service) EnviarNotificacaoMultipla(destinatarios []string, assunto, mensagem string) {
	for _, d := range destinatarios {
		s.enviarEmail(d, assunto, mensagem)
	}
}

func (s *Service) enviarEmail(destinatario, assunto, mensagem string) {
	if err := s.Mailer.Enviar(destinatario, assunto, mensagem); err != nil {
		log.Printf("Erro ao enviar e-mail para %s: %v", destinatario, err)
		return
	}
	log.Printf("E-mail enviado para: %s", destinatario)
}

func (s *Service) criarNotificacaoInApp(contratoID uint, tipo, titulo, mensagem string) {
	n := Notificacao{
		ContratoID: contratoID,
		Tipo:       tipo,
		Titulo:     titulo,
		Mensagem:   mensagem,
	}
	if err := s.Repository.Criar(&n); err != nil {
		log.Printf("Erro ao gravar notificação in-app do contrato %d: %v", contratoID, err)
	}
}
