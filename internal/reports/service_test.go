package reports

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/urbanbyte/sentinela/internal/backend"
	"github.com/urbanbyte/sentinela/internal/session"
)

type stubClient struct {
	reports []backend.Report
	listErr error
	created []backend.ReportDraft
}

func (s *stubClient) CreateReport(_ context.Context, draft backend.ReportDraft) error {
	s.created = append(s.created, draft)
	return nil
}

func (s *stubClient) StationReports(_ context.Context, _ string) ([]backend.Report, error) {
	return s.reports, s.listErr
}

func inboxReports() []backend.Report {
	return []backend.Report{
		{AlertID: 1, PostID: 10, FirstName: "Ana", LastName: "Silva", Age: "22.0", LastLocation: "Mercado Central", Description: "vista ontem à noite", Priority: 2, Unread: 0},
		{AlertID: 2, PostID: 11, FirstName: "Bruno", LastName: "Costa", Age: "35", LastLocation: "Terminal", Description: "sem novidades", Priority: 1, Unread: 1},
	}
}

func testIdentity() session.Identity {
	return session.Identity{OfficerID: "OF-1", StationID: "PS-1", TownID: 42}
}

func TestLoadDerivesDisplayFields(t *testing.T) {
	client := &stubClient{reports: inboxReports()}
	svc := NewService(client, "https://uploads.example", zerolog.Nop())

	svc.Load(context.Background(), "PS-1")
	rows := svc.Rows()
	if len(rows) != 2 {
		t.Fatalf("linhas inesperadas: %+v", rows)
	}
	if rows[0].FullName != "Ana Silva" {
		t.Fatalf("nome composto inesperado: %q", rows[0].FullName)
	}
	if rows[0].Age != "22" {
		t.Fatalf("idade deveria perder o sufixo decimal: %q", rows[0].Age)
	}
	if !rows[0].Unread || rows[1].Unread {
		t.Fatalf("marcação de não lido invertida: %+v", rows)
	}
	if rows[0].PriorityLabel != "Medium" {
		t.Fatalf("rótulo de prioridade inesperado: %q", rows[0].PriorityLabel)
	}
}

func TestSearchOverLocationAndMessage(t *testing.T) {
	client := &stubClient{reports: inboxReports()}
	svc := NewService(client, "https://uploads.example", zerolog.Nop())
	svc.Load(context.Background(), "PS-1")

	svc.Search("mercado")
	rows := svc.Rows()
	if len(rows) != 1 || rows[0].AlertID != 1 {
		t.Fatalf("busca por local falhou: %+v", rows)
	}
}

func TestSubmitPrefillsScopeAndDefaultPriority(t *testing.T) {
	client := &stubClient{}
	svc := NewService(client, "https://uploads.example", zerolog.Nop())

	svc.Open(10, testIdentity())
	svc.Update(func(d *backend.ReportDraft) { d.Description = "avistada no bairro sul" })

	if err := svc.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(client.created) != 1 {
		t.Fatalf("envios inesperados: %d", len(client.created))
	}
	draft := client.created[0]
	if draft.PostID != 10 || draft.TownID != 42 || draft.StationID != "PS-1" {
		t.Fatalf("escopo não pré-preenchido: %+v", draft)
	}
	if draft.Priority != int(PriorityMedium) {
		t.Fatalf("prioridade padrão inesperada: %d", draft.Priority)
	}
}

func TestSubmitValidationBlocksRequest(t *testing.T) {
	client := &stubClient{}
	svc := NewService(client, "https://uploads.example", zerolog.Nop())

	svc.Open(10, testIdentity())
	if err := svc.Submit(context.Background()); err == nil {
		t.Fatal("descrição vazia deveria falhar na validação")
	}
	if len(client.created) != 0 {
		t.Fatal("validação local deveria bloquear a requisição")
	}
	if svc.Message() == "" {
		t.Fatal("mensagem inline deveria estar preenchida")
	}
}

func TestPriorityMapping(t *testing.T) {
	if PriorityHigh.Label() != "High" {
		t.Fatalf("rótulo inesperado: %q", PriorityHigh.Label())
	}
	if Priority(9).Valid() {
		t.Fatal("prioridade fora do mapa deveria ser inválida")
	}
	if p, ok := PriorityFromLabel("low"); !ok || p != PriorityLow {
		t.Fatalf("PriorityFromLabel: %v %v", p, ok)
	}
}
