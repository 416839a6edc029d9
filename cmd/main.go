package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/gestcon/api-contratos/internal/auth"
	"github.com/gestcon/api-contratos/internal/contrato"
	"github.com/gestcon/api-contratos/internal/documentos"
	"github.com/gestcon/api-contratos/internal/empresa"
	"github.com/gestcon/api-contratos/internal/notafiscal"
	"github.com/gestcon/api-contratos/internal/notificacao"
	"github.com/gestcon/api-contratos/internal/pagamento"
	"github.com/gestcon/api-contratos/internal/usuario"
	"github.com/gestcon/api-contratos/internal/utils/db"
	"github.com/gestcon/api-contratos/internal/workflow"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado, usando variáveis do ambiente")
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	if err := database.AutoMigrate(
		&empresa.Empresa{},
		&contrato.Contrato{},
		&workflow.ProcessoContrato{},
		&notificacao.Notificacao{},
		&notafiscal.NotaFiscal{},
		&pagamento.Pagamento{},
		&usuario.Usuario{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	// Serviços
	notificacaoService := notificacao.NewService(
		notificacao.NewWebhookMailer(),
		notificacao.NewRepository(database),
	)
	workflowService := workflow.NewService(database, notificacaoService)

	// Handlers
	empresaHandler := empresa.NewHandler(database)
	contratoHandler := contrato.NewHandler(database)
	workflowHandler := workflow.NewHandler(workflowService)
	notificacaoHandler := notificacao.NewHandler(database)
	notaFiscalHandler := notafiscal.NewHandler(database)
	pagamentoHandler := pagamento.NewHandler(database, notificacaoService)
	usuarioHandler := usuario.NewHandler(database)
	documentosHandler := documentos.NewHandler(documentos.NewStorage())

	// Router
	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/login", usuarioHandler.Login).Methods("POST")
	r.HandleFunc("/usuarios", usuarioHandler.Criar).Methods("POST")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	// Usuários
	api.HandleFunc("/usuarios/{id}", usuarioHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/usuarios/{id}", usuarioHandler.Atualizar).Methods("PUT")

	// Administração de usuários (somente admin)
	admin := api.NewRoute().Subrouter()
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/usuarios", usuarioHandler.ListarTodos).Methods("GET")
	admin.HandleFunc("/usuarios/{id}", usuarioHandler.Deletar).Methods("DELETE")

	// Empresas
	api.HandleFunc("/empresas", empresaHandler.Criar).Methods("POST")
	api.HandleFunc("/empresas", empresaHandler.ListarTodas).Methods("GET")
	api.HandleFunc("/empresas/cnpj/{cnpj}", empresaHandler.BuscarPorCNPJ).Methods("GET")
	api.HandleFunc("/empresas/{id}", empresaHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/empresas/{id}", empresaHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/empresas/{id}", empresaHandler.Deletar).Methods("DELETE")

	// Contratos
	api.HandleFunc("/contratos", contratoHandler.Criar).Methods("POST")
	api.HandleFunc("/contratos", contratoHandler.ListarTodos).Methods("GET")
	api.HandleFunc("/contratos/numero/{numero}", contratoHandler.BuscarPorNumero).Methods("GET")
	api.HandleFunc("/contratos/vencendo", contratoHandler.ListarProximosVencimento).Methods("GET")
	api.HandleFunc("/contratos/vencidos", contratoHandler.ListarVencidos).Methods("GET")
	api.HandleFunc("/contratos/{id}", contratoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/contratos/{id}", contratoHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/contratos/{id}", contratoHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/contratos/{id}/vigencia", contratoHandler.RenovarVigencia).Methods("PUT")

	// Workflow
	api.HandleFunc("/contratos/{id}/status", workflowHandler.AlterarStatus).Methods("PUT")
	api.HandleFunc("/contratos/{id}/historico", workflowHandler.Historico).Methods("GET")
	api.HandleFunc("/contratos/{id}/processos/ultimo", workflowHandler.UltimoProcesso).Methods("GET")
	api.HandleFunc("/workflow/processos", workflowHandler.ListarProcessos).Methods("GET")
	api.HandleFunc("/workflow/status/{status}/transicoes", workflowHandler.ProximosStatus).Methods("GET")
	api.HandleFunc("/workflow/status/{status}/terminal", workflowHandler.StatusFinal).Methods("GET")
	api.HandleFunc("/workflow/estatisticas", workflowHandler.Estatisticas).Methods("GET")
	api.HandleFunc("/processos/{id}/anexo", workflowHandler.AnexarDocumento).Methods("PUT")
	api.HandleFunc("/processos/{id}/arquivar", workflowHandler.Arquivar).Methods("PUT")

	// Notificações in-app
	api.HandleFunc("/contratos/{id}/notificacoes", notificacaoHandler.ListarPorContrato).Methods("GET")
	api.HandleFunc("/notificacoes/{id}/lida", notificacaoHandler.MarcarLida).Methods("PUT")

	// Notas fiscais
	api.HandleFunc("/contratos/{id}/notas-fiscais", notaFiscalHandler.Criar).Methods("POST")
	api.HandleFunc("/contratos/{id}/notas-fiscais", notaFiscalHandler.ListarPorContrato).Methods("GET")
	api.HandleFunc("/notas-fiscais", notaFiscalHandler.Buscar).Methods("GET")
	api.HandleFunc("/notas-fiscais/vencidas", notaFiscalHandler.ListarVencidas).Methods("GET")
	api.HandleFunc("/notas-fiscais/{id}", notaFiscalHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/notas-fiscais/{id}", notaFiscalHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/notas-fiscais/{id}", notaFiscalHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/notas-fiscais/{id}/aprovar", notaFiscalHandler.Aprovar).Methods("PUT")
	api.HandleFunc("/notas-fiscais/{id}/rejeitar", notaFiscalHandler.Rejeitar).Methods("PUT")

	// Pagamentos
	api.HandleFunc("/contratos/{id}/pagamentos", pagamentoHandler.Criar).Methods("POST")
	api.HandleFunc("/contratos/{id}/pagamentos", pagamentoHandler.ListarPorContrato).Methods("GET")
	api.HandleFunc("/contratos/{id}/pagamentos/lote", pagamentoHandler.CriarLote).Methods("POST")
	api.HandleFunc("/pagamentos", pagamentoHandler.Listar).Methods("GET")
	api.HandleFunc("/pagamentos/atrasados", pagamentoHandler.ListarAtrasados).Methods("GET")
	api.HandleFunc("/pagamentos/vencendo", pagamentoHandler.ListarVencimentoProximo).Methods("GET")
	api.HandleFunc("/pagamentos/{id}", pagamentoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/pagamentos/{id}", pagamentoHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/pagamentos/{id}", pagamentoHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/pagamentos/{id}/pagar", pagamentoHandler.RegistrarPagamento).Methods("PUT")
	api.HandleFunc("/pagamentos/{id}/status", pagamentoHandler.AtualizarStatus).Methods("PUT")
	api.HandleFunc("/pagamentos/{id}/comprovante", pagamentoHandler.AtualizarComprovante).Methods("PUT")

	// Documentos
	api.HandleFunc("/documentos", documentosHandler.Upload).Methods("POST")
	api.HandleFunc("/documentos", documentosHandler.Remover).Methods("DELETE")

	// Varredura periódica de vigência (alertas de vencimento)
	go func() {
		contratos := contrato.NewRepository()
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			workflowService.VerificarContratosParaNotificacao(contratos, 30)
			<-ticker.C
		}
	}()

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}
	fmt.Println("Servidor rodando em http://localhost:" + porta)
	log.Fatal(http.ListenAndServe(":"+porta, handler))
}
