package workflow

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gestcon/api-contratos/internal/contrato"
	"github.com/gestcon/api-contratos/internal/notificacao"
)

// ErrTransicaoInvalida identifica o par de status recusado e o contrato.
type ErrTransicaoInvalida struct {
	De         contrato.Status
	Para       contrato.Status
	ContratoID uint
}

func (e *ErrTransicaoInvalida) Error() string {
	return fmt.Sprintf("transição de '%s' para '%s' não é permitida para o contrato %d",
		e.De, e.Para, e.ContratoID)
}

// Service orquestra as transições de status: valida, muda o contrato,
// grava o processo de auditoria e dispara notificações após o commit.
type Service struct {
	DB           *gorm.DB
	Repository   *Repository
	Notificacoes *notificacao.Service
}

func NewService(db *gorm.DB, notificacoes *notificacao.Service) *Service {
	return &Service{
		DB:           db,
		Repository:   NewRepository(db),
		Notificacoes: notificacoes,
	}
}

// AlterarStatus aplica uma transição de workflow ao contrato.
//
// A leitura do contrato, a mudança de status e a gravação do processo
// acontecem na mesma transação; a validação usa o status recarregado do
// banco, nunca um valor vindo do chamador. Transição ilegal não grava
// nada. A notificação sai depois do commit e nunca desfaz a transição.
func (s *Service) AlterarStatus(contratoID uint, novoStatus contrato.Status, acaoRealizada, usuarioResponsavel, observacoes string) (*ProcessoContrato, error) {
	var processo ProcessoContrato
	var c contrato.Contrato

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		consulta := tx.Preload("Empresa")
		// SQLite (usado nos testes) não aceita FOR UPDATE; em Postgres a
		// trava de linha serializa transições concorrentes no mesmo contrato.
		if tx.Dialector.Name() == "postgres" {
			consulta = consulta.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := consulta.First(&c, contratoID).Error; err != nil {
			return err
		}

		if !contrato.TransicaoValida(c.Status, novoStatus) {
			return &ErrTransicaoInvalida{De: c.Status, Para: novoStatus, ContratoID: c.ID}
		}

		processo = ProcessoContrato{
			ContratoID:         c.ID,
			StatusAnterior:     c.Status,
			StatusAtual:        novoStatus,
			AcaoRealizada:      acaoRealizada,
			Observacoes:        observacoes,
			DataAcao:           time.Now(),
			UsuarioResponsavel: usuarioResponsavel,
			Ativo:              true,
		}

		if err := tx.Model(&c).Update("status", novoStatus).Error; err != nil {
			return err
		}
		return s.Repository.WithDB(tx).Criar(&processo)
	})
	if err != nil {
		return nil, err
	}

	go s.Notificacoes.DispararPorStatus(&c, novoStatus, usuarioResponsavel)

	return &processo, nil
}

// Historico retorna todos os processos de um contrato, mais recente primeiro.
func (s *Service) Historico(contratoID uint) ([]ProcessoContrato, error) {
	return s.Repository.ListarPorContrato(contratoID)
}

// UltimoProcesso retorna a ação mais recente registrada para o contrato.
func (s *Service) UltimoProcesso(contratoID uint) (*ProcessoContrato, error) {
	return s.Repository.UltimoProcesso(contratoID)
}

// ProcessosPorUsuario lista as ações registradas por um responsável.
func (s *Service) ProcessosPorUsuario(usuario string) ([]ProcessoContrato, error) {
	return s.Repository.ListarPorUsuario(usuario)
}

// ProcessosPorPeriodo lista as ações registradas dentro do intervalo.
func (s *Service) ProcessosPorPeriodo(inicio, fim time.Time) ([]ProcessoContrato, error) {
	return s.Repository.ListarPorPeriodo(inicio, fim)
}

// ArquivarProcesso marca o processo como inativo mantendo o histórico.
func (s *Service) ArquivarProcesso(processoID uint) error {
	return s.Repository.Arquivar(processoID)
}

// ProximosStatus delega à tabela de transições.
func (s *Service) ProximosStatus(statusAtual contrato.Status) []contrato.Status {
	return contrato.ProximosStatus(statusAtual)
}

// StatusFinal delega à tabela de transições.
func (s *Service) StatusFinal(status contrato.Status) bool {
	return contrato.StatusFinal(status)
}

// Estatisticas conta processos por status atual, para o painel.
func (s *Service) Estatisticas() (map[contrato.Status]int64, error) {
	return s.Repository.ContarPorStatus()
}

// AdicionarDocumento anexa um documento ao processo e avisa o responsável.
func (s *Service) AdicionarDocumento(processoID uint, caminho, usuario string) error {
	p, err := s.Repository.BuscarPorID(processoID)
	if err != nil {
		return err
	}
	if err := s.Repository.AtualizarAnexo(p.ID, caminho); err != nil {
		return err
	}
	var c contrato.Contrato
	if err := s.DB.Preload("Empresa").First(&c, p.ContratoID).Error; err != nil {
		log.Printf("Erro ao carregar contrato %d para notificar anexo: %v", p.ContratoID, err)
		return nil
	}
	go s.Notificacoes.NotificarUploadDocumento(&c, caminho, usuario)
	return nil
}

// VerificarContratosParaNotificacao varre os contratos por vigência e
// dispara os alertas de vencimento próximo e de vencimento estourado.
// Executada por agendador, fora do fluxo de transições.
func (s *Service) VerificarContratosParaNotificacao(contratos contrato.Repository, diasAviso int) {
	proximos, err := contratos.ListarProximosVencimento(s.DB, diasAviso)
	if err != nil {
		log.Printf("Erro ao buscar contratos próximos do vencimento: %v", err)
	} else {
		for i := range proximos {
			s.Notificacoes.DispararPorStatus(&proximos[i], contrato.StatusVencendo, "Sistema")
		}
	}

	vencidos, err := contratos.ListarVencidos(s.DB)
	if err != nil {
		log.Printf("Erro ao buscar contratos vencidos: %v", err)
		return
	}
	for i := range vencidos {
		s.Notificacoes.DispararPorStatus(&vencidos[i], contrato.StatusEncerrado, "Sistema")
	}
}
