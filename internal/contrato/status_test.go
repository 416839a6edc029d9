package contrato

import "testing"

func TestTransicaoValida_TabelaCompleta(t *testing.T) {
	casos := []struct {
		de      Status
		para    Status
		permite bool
	}{
		{StatusRascunho, StatusEmAnalise, true},
		{StatusRascunho, StatusCancelado, true},
		{StatusRascunho, StatusAtivo, false},
		{StatusEmAnalise, StatusAprovado, true},
		{StatusEmAnalise, StatusRejeitado, true},
		{StatusEmAnalise, StatusPendenteDocumentos, true},
		{StatusEmAnalise, StatusAssinado, false},
		{StatusPendenteDocumentos, StatusEmAnalise, true},
		{StatusPendenteDocumentos, StatusCancelado, true},
		{StatusAprovado, StatusAssinado, true},
		{StatusAprovado, StatusRejeitado, true},
		{StatusAssinado, StatusAtivo, true},
		{StatusAssinado, StatusCancelado, true},
		{StatusAtivo, StatusEmRenovacao, true},
		{StatusAtivo, StatusSuspenso, true},
		{StatusAtivo, StatusEncerrado, true},
		{StatusAtivo, StatusRascunho, false},
		{StatusEmRenovacao, StatusAtivo, true},
		{StatusEmRenovacao, StatusEncerrado, true},
		{StatusSuspenso, StatusAtivo, true},
		{StatusInadimplente, StatusAtivo, true},
		{StatusInadimplente, StatusEncerrado, true},
		{StatusRejeitado, StatusRascunho, true},
		{StatusRejeitado, StatusCancelado, true},
		{StatusEncerrado, StatusAtivo, false},
		{StatusEncerrado, StatusRascunho, false},
		{StatusCancelado, StatusRascunho, false},
	}

	for _, c := range casos {
		if got := TransicaoValida(c.de, c.para); got != c.permite {
			t.Errorf("TransicaoValida(%s, %s) = %v, esperado %v", c.de, c.para, got, c.permite)
		}
	}
}

func TestTransicaoValida_FalhaFechado(t *testing.T) {
	if TransicaoValida("", StatusAtivo) {
		t.Error("status de origem vazio não pode autorizar transição")
	}
	if TransicaoValida(StatusAtivo, "") {
		t.Error("status de destino vazio não pode autorizar transição")
	}
	if TransicaoValida("DESCONHECIDO", StatusAtivo) {
		t.Error("status fora da tabela não pode autorizar transição")
	}
	if TransicaoValida(StatusVencendo, StatusAtivo) {
		t.Error("VENCENDO é gatilho de notificação, não origem de transição")
	}
}

func TestProximosStatus(t *testing.T) {
	destinos := ProximosStatus(StatusAtivo)
	esperados := []Status{StatusEmRenovacao, StatusSuspenso, StatusEncerrado}
	if len(destinos) != len(esperados) {
		t.Fatalf("esperava %d destinos para ATIVO, veio %d", len(esperados), len(destinos))
	}
	for i, e := range esperados {
		if destinos[i] != e {
			t.Errorf("destino %d: esperava %s, veio %s", i, e, destinos[i])
		}
	}

	if len(ProximosStatus("DESCONHECIDO")) != 0 {
		t.Error("status desconhecido deve retornar lista vazia")
	}

	// A lista retornada é uma cópia; mutá-la não corrompe a tabela.
	destinos[0] = StatusCancelado
	if ProximosStatus(StatusAtivo)[0] != StatusEmRenovacao {
		t.Error("tabela de transições foi mutada por um chamador")
	}
}

func TestStatusFinal(t *testing.T) {
	finais := []Status{StatusEncerrado, StatusCancelado}
	for _, s := range finais {
		if !StatusFinal(s) {
			t.Errorf("%s deve ser estado final", s)
		}
	}
	naoFinais := []Status{
		StatusRascunho, StatusEmAnalise, StatusPendenteDocumentos,
		StatusAprovado, StatusAssinado, StatusAtivo,
		StatusEmRenovacao, StatusSuspenso, StatusInadimplente, StatusRejeitado,
	}
	for _, s := range naoFinais {
		if StatusFinal(s) {
			t.Errorf("%s não deve ser estado final", s)
		}
	}
}
