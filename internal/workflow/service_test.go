package workflow

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gestcon/api-contratos/internal/contrato"
	"github.com/gestcon/api-contratos/internal/empresa"
	"github.com/gestcon/api-contratos/internal/notificacao"
)

type emailCapturado struct {
	destinatario string
	assunto      string
	mensagem     string
}

// mailerFake entrega num canal para o teste sincronizar com o disparo
// assíncrono pós-commit.
type mailerFake struct {
	enviados chan emailCapturado
	falha    error
}

func newMailerFake() *mailerFake {
	return &mailerFake{enviados: make(chan emailCapturado, 16)}
}

func (m *mailerFake) Enviar(destinatario, assunto, mensagem string) error {
	m.enviados <- emailCapturado{destinatario, assunto, mensagem}
	return m.falha
}

func (m *mailerFake) aguardar(t *testing.T) emailCapturado {
	t.Helper()
	select {
	case e := <-m.enviados:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("nenhum e-mail foi disparado dentro do prazo")
		return emailCapturado{}
	}
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("abrir sqlite em memória: %v", err)
	}
	if err := db.AutoMigrate(
		&empresa.Empresa{},
		&contrato.Contrato{},
		&ProcessoContrato{},
		&notificacao.Notificacao{},
	); err != nil {
		t.Fatalf("migrar esquema: %v", err)
	}
	return db
}

func criarContrato(t *testing.T, db *gorm.DB, status contrato.Status) *contrato.Contrato {
	t.Helper()
	e := empresa.Empresa{Nome: "Construtora Alfa LTDA", CNPJ: "12.345.678/0001-90"}
	if err := db.Create(&e).Error; err != nil {
		t.Fatalf("criar empresa: %v", err)
	}
	c := contrato.Contrato{
		NumeroContrato: "CT-2025/" + strings.ReplaceAll(t.Name(), "/", "-"),
		EmpresaID:      e.ID,
		Objeto:         "Prestação de serviços de manutenção predial",
		VigenciaInicio: time.Now().AddDate(0, -6, 0),
		VigenciaFim:    time.Now().AddDate(0, 6, 0),
		ValorTotal:     250000,
		Status:         status,
		Responsavel:    "gestor@gestcon.gov.br",
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("criar contrato: %v", err)
	}
	return &c
}

func newServiceComMailer(db *gorm.DB, mailer notificacao.Mailer) *Service {
	return NewService(db, notificacao.NewService(mailer, notificacao.NewRepository(db)))
}

func TestAlterarStatus_TransicaoLegal(t *testing.T) {
	db := setupDB(t)
	mailer := newMailerFake()
	svc := newServiceComMailer(db, mailer)
	c := criarContrato(t, db, contrato.StatusAtivo)

	processo, err := svc.AlterarStatus(c.ID, contrato.StatusEncerrado, "Encerramento de contrato", "ops", "vigência cumprida")
	if err != nil {
		t.Fatalf("transição legal falhou: %v", err)
	}

	if processo.StatusAnterior != contrato.StatusAtivo {
		t.Errorf("statusAnterior: esperava ATIVO, veio %s", processo.StatusAnterior)
	}
	if processo.StatusAtual != contrato.StatusEncerrado {
		t.Errorf("statusAtual: esperava ENCERRADO, veio %s", processo.StatusAtual)
	}
	if processo.UsuarioResponsavel != "ops" {
		t.Errorf("usuário: esperava ops, veio %s", processo.UsuarioResponsavel)
	}
	if processo.DataAcao.IsZero() {
		t.Error("dataAcao deve ser gravada na criação")
	}
	if !processo.Ativo {
		t.Error("processo recém-criado deve estar ativo")
	}

	var atualizado contrato.Contrato
	if err := db.First(&atualizado, c.ID).Error; err != nil {
		t.Fatalf("recarregar contrato: %v", err)
	}
	if atualizado.Status != contrato.StatusEncerrado {
		t.Errorf("contrato deveria estar ENCERRADO, veio %s", atualizado.Status)
	}

	var total int64
	db.Model(&ProcessoContrato{}).Where("contrato_id = ?", c.ID).Count(&total)
	if total != 1 {
		t.Errorf("esperava exatamente 1 processo, veio %d", total)
	}

	email := mailer.aguardar(t)
	if !strings.Contains(email.assunto, "Contrato Encerrado") {
		t.Errorf("assunto do e-mail não usa o modelo de encerramento: %q", email.assunto)
	}
	if email.destinatario != c.Responsavel {
		t.Errorf("destinatário: esperava %s, veio %s", c.Responsavel, email.destinatario)
	}

	var marcador notificacao.Notificacao
	if err := db.Where("contrato_id = ? AND tipo = ?", c.ID, "ENCERRAMENTO").First(&marcador).Error; err != nil {
		t.Errorf("marcador in-app de encerramento não foi gravado: %v", err)
	}
}

func TestAlterarStatus_TransicaoIlegalNaoMuta(t *testing.T) {
	db := setupDB(t)
	mailer := newMailerFake()
	svc := newServiceComMailer(db, mailer)
	c := criarContrato(t, db, contrato.StatusAtivo)

	_, err := svc.AlterarStatus(c.ID, contrato.StatusRascunho, "Retorno indevido", "ops", "")
	if err == nil {
		t.Fatal("transição ATIVO -> RASCUNHO deveria ser recusada")
	}
	var transicao *ErrTransicaoInvalida
	if !errors.As(err, &transicao) {
		t.Fatalf("esperava ErrTransicaoInvalida, veio %T: %v", err, err)
	}
	if transicao.De != contrato.StatusAtivo || transicao.Para != contrato.StatusRascunho {
		t.Errorf("erro identifica par errado: %s -> %s", transicao.De, transicao.Para)
	}
	if transicao.ContratoID != c.ID {
		t.Errorf("erro identifica contrato errado: %d", transicao.ContratoID)
	}

	var atualizado contrato.Contrato
	if err := db.First(&atualizado, c.ID).Error; err != nil {
		t.Fatalf("recarregar contrato: %v", err)
	}
	if atualizado.Status != contrato.StatusAtivo {
		t.Errorf("contrato não pode mudar em transição recusada, veio %s", atualizado.Status)
	}

	var total int64
	db.Model(&ProcessoContrato{}).Where("contrato_id = ?", c.ID).Count(&total)
	if total != 0 {
		t.Errorf("transição recusada não pode gravar processo, veio %d", total)
	}

	select {
	case e := <-mailer.enviados:
		t.Errorf("transição recusada não pode notificar, mas enviou %q", e.assunto)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestAlterarStatus_ContratoInexistente(t *testing.T) {
	db := setupDB(t)
	svc := newServiceComMailer(db, newMailerFake())

	_, err := svc.AlterarStatus(9999, contrato.StatusEmAnalise, "Envio para análise", "ops", "")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("esperava gorm.ErrRecordNotFound, veio %v", err)
	}
}

func TestAlterarStatus_ValidaContraStatusRecarregado(t *testing.T) {
	db := setupDB(t)
	svc := newServiceComMailer(db, newMailerFake())
	c := criarContrato(t, db, contrato.StatusRascunho)

	// Outro gravador muda o status entre a leitura do chamador e a chamada.
	if err := db.Model(&contrato.Contrato{}).Where("id = ?", c.ID).
		Update("status", contrato.StatusCancelado).Error; err != nil {
		t.Fatalf("simular escrita concorrente: %v", err)
	}

	// RASCUNHO -> EM_ANALISE seria legal, mas o status fresco é CANCELADO.
	_, err := svc.AlterarStatus(c.ID, contrato.StatusEmAnalise, "Envio para análise", "ops", "")
	var transicao *ErrTransicaoInvalida
	if !errors.As(err, &transicao) {
		t.Fatalf("validação deve usar o status recarregado, veio %v", err)
	}
	if transicao.De != contrato.StatusCancelado {
		t.Errorf("erro deveria partir de CANCELADO, veio %s", transicao.De)
	}
}

func TestHistorico_OrdemDecrescenteECrescimento(t *testing.T) {
	db := setupDB(t)
	mailer := newMailerFake()
	svc := newServiceComMailer(db, mailer)
	c := criarContrato(t, db, contrato.StatusRascunho)

	passos := []struct {
		para contrato.Status
		acao string
	}{
		{contrato.StatusEmAnalise, "Envio para análise"},
		{contrato.StatusAprovado, "Aprovação"},
		{contrato.StatusAssinado, "Assinatura"},
		{contrato.StatusAtivo, "Ativação"},
	}

	for i, passo := range passos {
		if _, err := svc.AlterarStatus(c.ID, passo.para, passo.acao, "gestor", ""); err != nil {
			t.Fatalf("passo %s: %v", passo.acao, err)
		}
		historico, err := svc.Historico(c.ID)
		if err != nil {
			t.Fatalf("buscar histórico: %v", err)
		}
		if len(historico) != i+1 {
			t.Fatalf("histórico deveria ter %d processos, veio %d", i+1, len(historico))
		}
		// Garante timestamps distintos entre transições consecutivas.
		time.Sleep(5 * time.Millisecond)
	}

	historico, err := svc.Historico(c.ID)
	if err != nil {
		t.Fatalf("buscar histórico: %v", err)
	}
	if historico[0].StatusAtual != contrato.StatusAtivo {
		t.Errorf("primeiro item deve ser o mais recente (ATIVO), veio %s", historico[0].StatusAtual)
	}
	for i := 1; i < len(historico); i++ {
		if historico[i].DataAcao.After(historico[i-1].DataAcao) {
			t.Errorf("histórico fora de ordem na posição %d", i)
		}
		if historico[i].StatusAtual != historico[i-1].StatusAnterior {
			t.Errorf("cadeia quebrada: processo %d termina em %s mas o seguinte parte de %s",
				i, historico[i].StatusAtual, historico[i-1].StatusAnterior)
		}
	}

	// EM_ANALISE, APROVADO e ATIVO têm modelo; ASSINADO é no-op.
	for i := 0; i < 3; i++ {
		mailer.aguardar(t)
	}
	select {
	case e := <-mailer.enviados:
		t.Errorf("ASSINADO não tem modelo e não deveria notificar, veio %q", e.assunto)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestUltimoProcessoEArquivar(t *testing.T) {
	db := setupDB(t)
	svc := newServiceComMailer(db, newMailerFake())
	c := criarContrato(t, db, contrato.StatusRascunho)

	if _, err := svc.AlterarStatus(c.ID, contrato.StatusEmAnalise, "Envio para análise", "gestor", ""); err != nil {
		t.Fatalf("transição: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	segundo, err := svc.AlterarStatus(c.ID, contrato.StatusAprovado, "Aprovação", "gestor", "")
	if err != nil {
		t.Fatalf("transição: %v", err)
	}

	ultimo, err := svc.UltimoProcesso(c.ID)
	if err != nil {
		t.Fatalf("último processo: %v", err)
	}
	if ultimo.ID != segundo.ID {
		t.Errorf("último processo deveria ser o da aprovação (%d), veio %d", segundo.ID, ultimo.ID)
	}

	if err := svc.ArquivarProcesso(ultimo.ID); err != nil {
		t.Fatalf("arquivar: %v", err)
	}
	arquivado, err := svc.Repository.BuscarPorID(ultimo.ID)
	if err != nil {
		t.Fatalf("recarregar processo: %v", err)
	}
	if arquivado.Ativo {
		t.Error("processo arquivado deveria estar inativo")
	}
	historico, err := svc.Historico(c.ID)
	if err != nil {
		t.Fatalf("histórico: %v", err)
	}
	if len(historico) != 2 {
		t.Errorf("arquivar não apaga o histórico, veio %d processos", len(historico))
	}

	if err := svc.ArquivarProcesso(9999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("id inexistente deveria retornar ErrRecordNotFound, veio %v", err)
	}
}

func TestEstatisticas(t *testing.T) {
	db := setupDB(t)
	svc := newServiceComMailer(db, newMailerFake())
	c1 := criarContrato(t, db, contrato.StatusRascunho)

	if _, err := svc.AlterarStatus(c1.ID, contrato.StatusEmAnalise, "Envio para análise", "gestor", ""); err != nil {
		t.Fatalf("transição: %v", err)
	}
	if _, err := svc.AlterarStatus(c1.ID, contrato.StatusAprovado, "Aprovação", "gestor", ""); err != nil {
		t.Fatalf("transição: %v", err)
	}

	contagem, err := svc.Estatisticas()
	if err != nil {
		t.Fatalf("estatísticas: %v", err)
	}
	if contagem[contrato.StatusEmAnalise] != 1 {
		t.Errorf("esperava 1 processo EM_ANALISE, veio %d", contagem[contrato.StatusEmAnalise])
	}
	if contagem[contrato.StatusAprovado] != 1 {
		t.Errorf("esperava 1 processo APROVADO, veio %d", contagem[contrato.StatusAprovado])
	}
}

func TestAdicionarDocumento(t *testing.T) {
	db := setupDB(t)
	mailer := newMailerFake()
	svc := newServiceComMailer(db, mailer)
	c := criarContrato(t, db, contrato.StatusRascunho)

	processo, err := svc.AlterarStatus(c.ID, contrato.StatusEmAnalise, "Envio para análise", "gestor", "")
	if err != nil {
		t.Fatalf("transição: %v", err)
	}
	mailer.aguardar(t) // disparo da própria transição

	if err := svc.AdicionarDocumento(processo.ID, "uploads/parecer.pdf", "gestor"); err != nil {
		t.Fatalf("anexar documento: %v", err)
	}

	recarregado, err := svc.Repository.BuscarPorID(processo.ID)
	if err != nil {
		t.Fatalf("recarregar processo: %v", err)
	}
	if recarregado.DocumentoAnexo != "uploads/parecer.pdf" {
		t.Errorf("anexo não gravado, veio %q", recarregado.DocumentoAnexo)
	}

	email := mailer.aguardar(t)
	if !strings.Contains(email.assunto, "Novo Documento") {
		t.Errorf("aviso de upload com assunto inesperado: %q", email.assunto)
	}
}

func TestVerificarContratosParaNotificacao(t *testing.T) {
	db := setupDB(t)
	mailer := newMailerFake()
	svc := newServiceComMailer(db, mailer)

	vencendo := criarContrato(t, db, contrato.StatusAtivo)
	if err := db.Model(&contrato.Contrato{}).Where("id = ?", vencendo.ID).
		Update("vigencia_fim", time.Now().AddDate(0, 0, 10)).Error; err != nil {
		t.Fatalf("ajustar vigência: %v", err)
	}

	svc.VerificarContratosParaNotificacao(contrato.NewRepository(), 30)

	email := mailer.aguardar(t)
	if !strings.Contains(email.assunto, "Contrato Vencendo") {
		t.Errorf("varredura deveria usar o modelo de vencimento, veio %q", email.assunto)
	}
}
