package criminals

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/urbanbyte/sentinela/internal/backend"
	"github.com/urbanbyte/sentinela/internal/session"
)

type stubClient struct {
	criminals []backend.Criminal
	listErr   error
	created   []backend.CriminalDraft
}

func (s *stubClient) Criminals(_ context.Context) ([]backend.Criminal, error) {
	return s.criminals, s.listErr
}

func (s *stubClient) CreateCriminal(_ context.Context, draft backend.CriminalDraft, _ *backend.FileField) (*backend.Criminal, error) {
	s.created = append(s.created, draft)
	return &backend.Criminal{ID: 500, FirstName: draft.FirstName}, nil
}

func intPtr(v int) *int { return &v }

func sampleCriminals() []backend.Criminal {
	return []backend.Criminal{
		{ID: 1, FirstName: "Ana", LastName: "Silva", FaceColor: "Light", HairColor: "Black", Height: "Short", BodyType: "Slim", Gender: "Female", Age: intPtr(22), FileNumber: "F-001"},
		{ID: 2, FirstName: "Bruno", LastName: "Costa", FaceColor: "Dark", HairColor: "Brown", Height: "Tall", BodyType: "Athletic", Gender: "Male", Age: intPtr(35), FileNumber: "F-002"},
		{ID: 3, FirstName: "Carla", LastName: "Souza", FaceColor: "Medium", HairColor: "Blonde", Height: "Average", BodyType: "Average", Gender: "Female", Age: intPtr(67), FileNumber: "F-003"},
	}
}

func loadedService(t *testing.T, client *stubClient) *Service {
	t.Helper()
	svc := NewService(client, "https://uploads.example", zerolog.Nop())
	svc.Load(context.Background())
	if len(svc.Rows()) != len(client.criminals) {
		t.Fatalf("carga inicial inesperada: %d linhas", len(svc.Rows()))
	}
	return svc
}

func TestFilterCombinesCriteria(t *testing.T) {
	client := &stubClient{criminals: sampleCriminals()}
	svc := loadedService(t, client)

	svc.Filter(Filters{Gender: "Female", HairColor: "blonde"})
	rows := svc.Rows()
	if len(rows) != 1 || rows[0].ID != 3 {
		t.Fatalf("conjunção de filtros falhou: %+v", rows)
	}
}

func TestFilterAgeRange(t *testing.T) {
	client := &stubClient{criminals: sampleCriminals()}
	svc := loadedService(t, client)

	svc.Filter(Filters{AgeRange: &AgeRange{Min: 18, Max: 30}})
	rows := svc.Rows()
	if len(rows) != 1 || rows[0].ID != 1 {
		t.Fatalf("faixa fechada falhou: %+v", rows)
	}

	// faixa aberta: 61+
	svc.Filter(Filters{AgeRange: &AgeRange{Min: 61}})
	rows = svc.Rows()
	if len(rows) != 1 || rows[0].ID != 3 {
		t.Fatalf("faixa aberta falhou: %+v", rows)
	}
}

func TestFilterQueryOverNamesAndFileNumber(t *testing.T) {
	client := &stubClient{criminals: sampleCriminals()}
	svc := loadedService(t, client)

	svc.Filter(Filters{Query: "f-002"})
	rows := svc.Rows()
	if len(rows) != 1 || rows[0].ID != 2 {
		t.Fatalf("busca por prontuário falhou: %+v", rows)
	}
}

func TestEmptyFiltersRestoreFullList(t *testing.T) {
	client := &stubClient{criminals: sampleCriminals()}
	svc := loadedService(t, client)

	svc.Filter(Filters{Gender: "Male"})
	if len(svc.Rows()) != 1 {
		t.Fatal("filtro de gênero deveria reduzir a lista")
	}

	svc.Filter(Filters{})
	if len(svc.Rows()) != 3 {
		t.Fatal("filtros vazios deveriam restaurar a lista completa")
	}
}

func TestSubmitAddValidatesCatalogs(t *testing.T) {
	client := &stubClient{}
	svc := NewService(client, "https://uploads.example", zerolog.Nop())

	svc.OpenAdd(session.Identity{StationID: "PS-1"})
	svc.UpdateAdd(func(d *backend.CriminalDraft) {
		d.FirstName = "Ana"
		d.LastName = "Silva"
		d.FaceColor = "Purple"
		d.HairColor = "Black"
		d.Height = "Short"
		d.BodyType = "Slim"
		d.Gender = "Female"
		d.FileNumber = "F-010"
	})

	if err := svc.SubmitAdd(context.Background(), nil); err == nil {
		t.Fatal("valor fora do catálogo deveria falhar na validação")
	}
	if len(client.created) != 0 {
		t.Fatal("validação local deveria bloquear a requisição")
	}
}

func TestSubmitAddBindsStation(t *testing.T) {
	client := &stubClient{}
	svc := NewService(client, "https://uploads.example", zerolog.Nop())

	svc.OpenAdd(session.Identity{StationID: "PS-1"})
	svc.UpdateAdd(func(d *backend.CriminalDraft) {
		d.FirstName = "Ana"
		d.LastName = "Silva"
		d.FaceColor = "Light"
		d.HairColor = "Black"
		d.Height = "Short"
		d.BodyType = "Slim"
		d.Gender = "Female"
		d.FileNumber = "F-010"
	})

	if err := svc.SubmitAdd(context.Background(), nil); err != nil {
		t.Fatalf("SubmitAdd: %v", err)
	}
	if len(client.created) != 1 || client.created[0].StationID != "PS-1" {
		t.Fatalf("delegacia não vinculada ao rascunho: %+v", client.created)
	}
}
