package contrato

// Status é o conjunto fechado de situações possíveis de um contrato.
// Toda mudança de status passa pelo motor de workflow; atribuição direta
// ao campo Status fora dele quebra a trilha de auditoria.
type Status string

const (
	StatusRascunho           Status = "RASCUNHO"
	StatusEmAnalise          Status = "EM_ANALISE"
	StatusPendenteDocumentos Status = "PENDENTE_DOCUMENTOS"
	StatusAprovado           Status = "APROVADO"
	StatusAssinado           Status = "ASSINADO"
	StatusAtivo              Status = "ATIVO"
	StatusEmRenovacao        Status = "EM_RENOVACAO"
	StatusSuspenso           Status = "SUSPENSO"
	StatusInadimplente       Status = "INADIMPLENTE"
	StatusRejeitado          Status = "REJEITADO"
	StatusEncerrado          Status = "ENCERRADO"
	StatusCancelado          Status = "CANCELADO"

	// StatusVencendo é um gatilho de notificação disparado pela varredura
	// de vigência; não participa da tabela de transições.
	StatusVencendo Status = "VENCENDO"
)

// transicoesValidas mapeia cada status para os destinos permitidos.
// Construído uma única vez na inicialização e nunca mutado; é a única
// fonte de verdade sobre legalidade de transições.
var transicoesValidas = map[Status][]Status{
	StatusRascunho:           {StatusEmAnalise, StatusCancelado},
	StatusEmAnalise:          {StatusAprovado, StatusRejeitado, StatusPendenteDocumentos},
	StatusPendenteDocumentos: {StatusEmAnalise, StatusCancelado},
	StatusAprovado:           {StatusAssinado, StatusRejeitado},
	StatusAssinado:           {StatusAtivo, StatusCancelado},
	StatusAtivo:              {StatusEmRenovacao, StatusSuspenso, StatusEncerrado},
	StatusEmRenovacao:        {StatusAtivo, StatusEncerrado},
	StatusSuspenso:           {StatusAtivo, StatusEncerrado},
	StatusInadimplente:       {StatusAtivo, StatusEncerrado},
	StatusRejeitado:          {StatusRascunho, StatusCancelado},
	StatusEncerrado:          {}, // estado final
	StatusCancelado:          {}, // estado final
}

// TransicaoValida informa se a mudança de statusAtual para novoStatus é
// permitida. Falha fechado: status vazio ou fora da tabela nunca autoriza.
func TransicaoValida(statusAtual, novoStatus Status) bool {
	if statusAtual == "" || novoStatus == "" {
		return false
	}
	for _, s := range transicoesValidas[statusAtual] {
		if s == novoStatus {
			return true
		}
	}
	return false
}

// ProximosStatus retorna os destinos legais a partir de statusAtual.
// Status desconhecidos retornam lista vazia.
func ProximosStatus(statusAtual Status) []Status {
	destinos := transicoesValidas[statusAtual]
	out := make([]Status, len(destinos))
	copy(out, destinos)
	return out
}

// StatusFinal informa se o status não possui transições de saída.
func StatusFinal(status Status) bool {
	return len(transicoesValidas[status]) == 0
}
