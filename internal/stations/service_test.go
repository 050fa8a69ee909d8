package stations

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/urbanbyte/sentinela/internal/backend"
	"github.com/urbanbyte/sentinela/internal/cascade"
)

type stubClient struct {
	stations  []backend.Station
	listErr   error
	created   []backend.StationDraft
	createErr error
}

func (s *stubClient) Stations(_ context.Context, _ int64) ([]backend.Station, error) {
	return s.stations, s.listErr
}

func (s *stubClient) CreateStation(_ context.Context, draft backend.StationDraft, _ *backend.FileField) (*backend.Station, error) {
	s.created = append(s.created, draft)
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &backend.Station{ID: "PS-NEW", Name: draft.Name}, nil
}

type stubOptions struct{}

func (stubOptions) Regions(_ context.Context) ([]backend.Option, error) {
	return []backend.Option{{ID: 1, Name: "Norte"}}, nil
}

func (stubOptions) Zones(_ context.Context, _ int64) ([]backend.Option, error) {
	return []backend.Option{{ID: 4, Name: "Zona A"}}, nil
}

func (stubOptions) Towns(_ context.Context, _ int64) ([]backend.Option, error) {
	return []backend.Option{{ID: 42, Name: "Cidade A"}}, nil
}

func newTestService(client *stubClient) (*Service, *cascade.Selector) {
	selector := cascade.NewSelector(stubOptions{}, zerolog.Nop())
	return NewService(client, selector, "https://uploads.example", 1, zerolog.Nop()), selector
}

func completeSelection(selector *cascade.Selector) {
	ctx := context.Background()
	selector.LoadRegions(ctx)
	selector.Select(ctx, cascade.RankRegion, 1)
	selector.Select(ctx, cascade.RankZone, 4)
	selector.Select(ctx, cascade.RankTown, 42)
}

func TestLoadAndSearch(t *testing.T) {
	client := &stubClient{stations: []backend.Station{
		{ID: "PS-1", Name: "Delegacia Central"},
		{ID: "PS-2", Name: "Delegacia do Porto"},
	}}
	svc, _ := newTestService(client)

	svc.Load(context.Background())
	if len(svc.Rows()) != 2 {
		t.Fatalf("linhas inesperadas: %+v", svc.Rows())
	}

	svc.Search("porto")
	rows := svc.Rows()
	if len(rows) != 1 || rows[0].ID != "PS-2" {
		t.Fatalf("filtro inesperado: %+v", rows)
	}
}

func TestSubmitAddRequiresCompleteSelection(t *testing.T) {
	client := &stubClient{}
	svc, _ := newTestService(client)

	svc.OpenAdd()
	svc.UpdateAdd(func(d *backend.StationDraft) {
		d.Name = "Delegacia Nova"
		d.PhoneNumber = "11999990000"
	})

	err := svc.SubmitAdd(context.Background(), nil)
	if !errors.Is(err, ErrSelectionIncomplete) {
		t.Fatalf("esperava ErrSelectionIncomplete, veio %v", err)
	}
	if len(client.created) != 0 {
		t.Fatal("cadastro sem seletor completo não deveria chegar ao backend")
	}
}

func TestSubmitAddInjectsSelectedTown(t *testing.T) {
	client := &stubClient{}
	svc, selector := newTestService(client)
	completeSelection(selector)

	svc.OpenAdd()
	svc.UpdateAdd(func(d *backend.StationDraft) {
		d.Name = "Delegacia Nova"
		d.PhoneNumber = "11999990000"
	})

	if err := svc.SubmitAdd(context.Background(), nil); err != nil {
		t.Fatalf("SubmitAdd: %v", err)
	}
	if len(client.created) != 1 {
		t.Fatalf("criações inesperadas: %d", len(client.created))
	}
	draft := client.created[0]
	if draft.TownID != 42 || draft.RootID != 1 {
		t.Fatalf("escopo não injetado no rascunho: %+v", draft)
	}

	rows := svc.Rows()
	if len(rows) != 1 || rows[0].ID != "PS-NEW" {
		t.Fatalf("registro canônico não entrou na lista: %+v", rows)
	}
}

func TestSubmitAddValidationBlocksRequest(t *testing.T) {
	client := &stubClient{}
	svc, selector := newTestService(client)
	completeSelection(selector)

	svc.OpenAdd()
	if err := svc.SubmitAdd(context.Background(), nil); err == nil {
		t.Fatal("rascunho em branco deveria falhar na validação")
	}
	if len(client.created) != 0 {
		t.Fatal("validação local deveria bloquear a requisição")
	}
	if svc.Message() == "" {
		t.Fatal("mensagem inline deveria estar preenchida")
	}
}

func TestRowLocationFallsBackToNA(t *testing.T) {
	row := NewRow(backend.Station{ID: "PS-1", Name: "Central", TownName: "Cidade A"}, "https://uploads.example")
	want := "Town: Cidade A, Zone: N/A, Region: N/A"
	if row.Location != want {
		t.Fatalf("localização inesperada: %q", row.Location)
	}
}
