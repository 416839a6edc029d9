package notificacao

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
)

type mailerFake struct {
	enviados []struct{ destinatario, assunto, mensagem string }
	falha    error
}

func (m *mailerFake) Enviar(destinatario, assunto, mensagem string) error {
	m.enviados = append(m.enviados, struct{ destinatario, assunto, mensagem string }{destinatario, assunto, mensagem})
	return m.falha
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
	if err := db.AutoMigrate(&Notificacao{}); err != nil {
		t.Fatalf("migrar esquema: %v", err)
	}
	return db
}

func contratoExemplo() *contrato.Contrato {
	return &contrato.Contrato{
		ID:             42,
		NumeroContrato: "CT-2025/0042",
		Empresa:        empresa.Empresa{Nome: "Construtora Alfa LTDA"},
		VigenciaInicio: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		VigenciaFim:    time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		ValorTotal:     250000,
		Status:         contrato.StatusAtivo,
		Responsavel:    "gestor@gestcon.gov.br",
	}
}

func TestDispararPorStatus_ModeloMapeado(t *testing.T) {
	db := setupDB(t)
	mailer := &mailerFake{}
	svc := NewService(mailer, NewRepository(db))

	svc.DispararPorStatus(contratoExemplo(), contrato.StatusAtivo, "gestor")

	if len(mailer.enviados) != 1 {
		t.Fatalf("esperava 1 e-mail, veio %d", len(mailer.enviados))
	}
	e := mailer.enviados[0]
	if e.destinatario != "gestor@gestcon.gov.br" {
		t.Errorf("destinatário errado: %s", e.destinatario)
	}
	if !strings.Contains(e.assunto, "Contrato Ativado - CT-2025/0042") {
		t.Errorf("assunto fora do modelo: %q", e.assunto)
	}
	if !strings.Contains(e.mensagem, "Construtora Alfa LTDA") {
		t.Errorf("mensagem deveria citar a empresa: %q", e.mensagem)
	}
	if !strings.Contains(e.mensagem, "250000.00") {
		t.Errorf("mensagem deveria citar o valor total: %q", e.mensagem)
	}

	var marcador Notificacao
	if err := db.Where("contrato_id = ? AND tipo = ?", 42, "ATIVO").First(&marcador).Error; err != nil {
		t.Fatalf("marcador in-app não gravado: %v", err)
	}
	if marcador.Lida {
		t.Error("marcador nasce não lido")
	}
}

func TestDispararPorStatus_StatusSemModeloENoOp(t *testing.T) {
	db := setupDB(t)
	mailer := &mailerFake{}
	svc := NewService(mailer, NewRepository(db))

	svc.DispararPorStatus(contratoExemplo(), contrato.StatusAssinado, "gestor")

	if len(mailer.enviados) != 0 {
		t.Errorf("status sem modelo não dispara e-mail, veio %d", len(mailer.enviados))
	}
	var total int64
	db.Model(&Notificacao{}).Count(&total)
	if total != 0 {
		t.Errorf("status sem modelo não grava marcador, veio %d", total)
	}
}

func TestDispararPorStatus_FalhaDeEntregaEngolida(t *testing.T) {
	db := setupDB(t)
	mailer := &mailerFake{falha: errors.New("gateway de e-mail respondeu 503")}
	svc := NewService(mailer, NewRepository(db))

	// Não pode entrar em pânico nem propagar erro.
	svc.DispararPorStatus(contratoExemplo(), contrato.StatusEncerrado, "ops")

	var total int64
	db.Model(&Notificacao{}).Where("tipo = ?", "ENCERRAMENTO").Count(&total)
	if total != 1 {
		t.Errorf("marcador in-app deve existir mesmo com entrega falha, veio %d", total)
	}
}

func TestNotificarPagamentoRealizado(t *testing.T) {
	db := setupDB(t)
	mailer := &mailerFake{}
	svc := NewService(mailer, NewRepository(db))

	svc.NotificarPagamentoRealizado(contratoExemplo(), "3/12", 20833.33)

	if len(mailer.enviados) != 1 {
		t.Fatalf("esperava 1 e-mail, veio %d", len(mailer.enviados))
	}
	if !strings.Contains(mailer.enviados[0].mensagem, "Parcela: 3/12") {
		t.Errorf("mensagem deveria citar a parcela: %q", mailer.enviados[0].mensagem)
	}
}

func TestEnviarNotificacaoMultipla(t *testing.T) {
	db := setupDB(t)
	mailer := &mailerFake{}
	svc := NewService(mailer, NewRepository(db))

	destinatarios := []string{"a@gestcon.gov.br", "b@gestcon.gov.br", "c@gestcon.gov.br"}
	svc.EnviarNotificacaoMultipla(destinatarios, "Aviso geral", "Manutenção programada")

	if len(mailer.enviados) != len(destinatarios) {
		t.Fatalf("esperava %d e-mails, veio %d", len(destinatarios), len(mailer.enviados))
	}
	for i, d := range destinatarios {
		if mailer.enviados[i].destinatario != d {
			t.Errorf("destinatário %d: esperava %s, veio %s", i, d, mailer.enviados[i].destinatario)
		}
	}
}

func TestRepository_MarcarLida(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository(db)

	n := Notificacao{ContratoID: 1, Tipo: "ANALISE", Titulo: "t", Mensagem: "m"}
	if err := repo.Criar(&n); err != nil {
		t.Fatalf("criar notificação: %v", err)
	}
	if err := repo.MarcarLida(n.ID); err != nil {
		t.Fatalf("marcar lida: %v", err)
	}
	list, err := repo.ListarPorContrato(1)
	if err != nil {
		t.Fatalf("listar: %v", err)
	}
	if len(list) != 1 || !list[0].Lida {
		t.Error("notificação deveria constar como lida")
	}

	if err := repo.MarcarLida(9999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("id inexistente deveria retornar ErrRecordNotFound, veio %v", err)
	}
}
