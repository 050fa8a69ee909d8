package posts

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/urbanbyte/sentinela/internal/backend"
	"github.com/urbanbyte/sentinela/internal/location"
	"github.com/urbanbyte/sentinela/internal/session"
)

type stubClient struct {
	cityPosts    []backend.Post
	zonePosts    []backend.Post
	stationPosts []backend.Post
	listErr      error

	cityCalls    []int64
	zoneCalls    []int64
	created      []backend.PostDraft
	createResult *backend.Post
	createErr    error
	updated      map[int64]backend.PostDraft
	inZone       bool
	promotedZone []int64
}

func (s *stubClient) CityPosts(_ context.Context, townID int64) ([]backend.Post, error) {
	s.cityCalls = append(s.cityCalls, townID)
	return s.cityPosts, s.listErr
}

func (s *stubClient) ZonePosts(_ context.Context, zoneID int64) ([]backend.Post, error) {
	s.zoneCalls = append(s.zoneCalls, zoneID)
	return s.zonePosts, s.listErr
}

func (s *stubClient) RegionPosts(_ context.Context, _ int64) ([]backend.Post, error) {
	return nil, s.listErr
}

func (s *stubClient) CountryPosts(_ context.Context, _ int64) ([]backend.Post, error) {
	return nil, s.listErr
}

func (s *stubClient) StationPosts(_ context.Context, _ string) ([]backend.Post, error) {
	return s.stationPosts, s.listErr
}

func (s *stubClient) CreatePost(_ context.Context, draft backend.PostDraft, _ *backend.FileField) (*backend.Post, error) {
	s.created = append(s.created, draft)
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.createResult != nil {
		return s.createResult, nil
	}
	return &backend.Post{ID: 999, FirstName: draft.FirstName}, nil
}

func (s *stubClient) UpdatePost(_ context.Context, postID int64, draft backend.PostDraft) (*backend.Post, error) {
	if s.updated == nil {
		s.updated = map[int64]backend.PostDraft{}
	}
	s.updated[postID] = draft
	return &backend.Post{ID: postID, FirstName: draft.FirstName, PostStatus: draft.PostStatus}, nil
}

func (s *stubClient) PromotePostToZone(_ context.Context, postID, _ int64) error {
	s.promotedZone = append(s.promotedZone, postID)
	return nil
}

func (s *stubClient) PromotePostToRegion(_ context.Context, _, _ int64) error { return nil }

func (s *stubClient) PromotePostToCountry(_ context.Context, _, _ int64) error { return nil }

func (s *stubClient) PostInZone(_ context.Context, _ int64) (bool, error) { return s.inZone, nil }

func (s *stubClient) PostInRegion(_ context.Context, _ int64) (bool, error) { return false, nil }

func (s *stubClient) PostInCountry(_ context.Context, _ int64) (bool, error) { return false, nil }

type resolvedTown struct {
	info *backend.TownInfo
}

func (r resolvedTown) ResolveTown(_ context.Context, _ int64) (*backend.TownInfo, error) {
	if r.info == nil {
		return nil, backend.ErrTownNotFound
	}
	return r.info, nil
}

func newTestService(client *stubClient, info *backend.TownInfo) *Service {
	resolver := location.NewResolver(resolvedTown{info: info}, zerolog.Nop())
	if info != nil {
		resolver.Resolve(context.Background(), info.TownID)
	}
	return NewService(client, resolver, "https://uploads.example", 1, zerolog.Nop())
}

func testIdentity() session.Identity {
	return session.Identity{
		OfficerID: "OF-1",
		Role:      session.RoleTownOfficer,
		StationID: "PS-1",
		TownID:    42,
	}
}

func TestLoadTierCityUsesIdentityTown(t *testing.T) {
	client := &stubClient{cityPosts: []backend.Post{{ID: 1, FirstName: "Ana", PostStatus: 1}}}
	svc := newTestService(client, nil)

	if err := svc.LoadTier(context.Background(), TierCity, testIdentity()); err != nil {
		t.Fatalf("LoadTier: %v", err)
	}

	if len(client.cityCalls) != 1 || client.cityCalls[0] != 42 {
		t.Fatalf("chamadas de cidade inesperadas: %v", client.cityCalls)
	}
	rows := svc.Rows()
	if len(rows) != 1 || rows[0].StatusLabel != "Active" {
		t.Fatalf("linhas inesperadas: %+v", rows)
	}
}

func TestLoadTierZoneWithoutChainSkipsFetch(t *testing.T) {
	client := &stubClient{}
	svc := newTestService(client, nil)

	err := svc.LoadTier(context.Background(), TierZone, testIdentity())
	if !errors.Is(err, ErrScopeUnavailable) {
		t.Fatalf("esperava ErrScopeUnavailable, veio %v", err)
	}
	if len(client.zoneCalls) != 0 {
		t.Fatal("busca de zona não deveria ter ocorrido sem cadeia resolvida")
	}
	if len(svc.Rows()) != 0 {
		t.Fatal("lista deveria ficar vazia")
	}
}

func TestLoadTierZoneUsesResolvedChain(t *testing.T) {
	client := &stubClient{zonePosts: []backend.Post{{ID: 2, PostStatus: 1}}}
	svc := newTestService(client, &backend.TownInfo{TownID: 42, ZoneID: 4, RegionID: 1})

	if err := svc.LoadTier(context.Background(), TierZone, testIdentity()); err != nil {
		t.Fatalf("LoadTier: %v", err)
	}
	if len(client.zoneCalls) != 1 || client.zoneCalls[0] != 4 {
		t.Fatalf("chamadas de zona inesperadas: %v", client.zoneCalls)
	}
}

func TestSearchFiltersRows(t *testing.T) {
	client := &stubClient{cityPosts: []backend.Post{
		{ID: 1, FirstName: "Ana", LastName: "Silva", PostStatus: 1},
		{ID: 2, FirstName: "Bruno", LastName: "Costa", PostStatus: 1},
	}}
	svc := newTestService(client, nil)
	if err := svc.LoadTier(context.Background(), TierCity, testIdentity()); err != nil {
		t.Fatalf("LoadTier: %v", err)
	}

	svc.Search("silva")
	rows := svc.Rows()
	if len(rows) != 1 || rows[0].ID != 1 {
		t.Fatalf("filtro inesperado: %+v", rows)
	}

	svc.Search("  ")
	if len(svc.Rows()) != 2 {
		t.Fatal("filtro vazio deveria restaurar a lista completa")
	}
}

func TestSubmitAddValidationBlocksRequest(t *testing.T) {
	client := &stubClient{}
	svc := newTestService(client, nil)

	svc.OpenAdd(testIdentity())
	err := svc.SubmitAdd(context.Background(), nil)
	if err == nil {
		t.Fatal("rascunho em branco deveria falhar na validação")
	}
	if len(client.created) != 0 {
		t.Fatal("validação local deveria bloquear a requisição")
	}
	if svc.AddMessage() == "" {
		t.Fatal("mensagem inline deveria estar preenchida")
	}
}

func TestSubmitAddAppendsCanonicalRow(t *testing.T) {
	client := &stubClient{createResult: &backend.Post{ID: 77, FirstName: "Ana", PostStatus: 1}}
	svc := newTestService(client, nil)
	if err := svc.LoadTier(context.Background(), TierCity, testIdentity()); err != nil {
		t.Fatalf("LoadTier: %v", err)
	}

	svc.OpenAdd(testIdentity())
	if err := svc.UpdateAdd(func(d *backend.PostDraft) {
		d.FirstName = "Ana"
		d.LastName = "Silva"
		d.Description = "desaparecida desde ontem"
		d.Gender = "Female"
		d.PersonStatus = "Missing"
	}); err != nil {
		t.Fatalf("UpdateAdd: %v", err)
	}
	if err := svc.SubmitAdd(context.Background(), nil); err != nil {
		t.Fatalf("SubmitAdd: %v", err)
	}

	if len(client.created) != 1 {
		t.Fatalf("criações inesperadas: %d", len(client.created))
	}
	draft := client.created[0]
	if draft.TownID != 42 || draft.StationID != "PS-1" || draft.OfficerID != "OF-1" {
		t.Fatalf("campos derivados da identidade não preenchidos: %+v", draft)
	}

	rows := svc.Rows()
	if len(rows) != 1 || rows[0].ID != 77 {
		t.Fatalf("registro canônico não foi acrescentado: %+v", rows)
	}
}

func TestSubmitAddFailureKeepsForm(t *testing.T) {
	client := &stubClient{createErr: errors.New("registro duplicado")}
	svc := newTestService(client, nil)

	svc.OpenAdd(testIdentity())
	svc.UpdateAdd(func(d *backend.PostDraft) {
		d.FirstName = "Ana"
		d.LastName = "Silva"
		d.Description = "desc"
		d.Gender = "Female"
		d.PersonStatus = "Missing"
	})

	if err := svc.SubmitAdd(context.Background(), nil); err == nil {
		t.Fatal("falha do backend deveria propagar")
	}
	// o formulário continua aberto com os campos staged para correção
	if err := svc.UpdateAdd(func(d *backend.PostDraft) {
		if d.FirstName != "Ana" {
			t.Errorf("staged perdido: %+v", d)
		}
	}); err != nil {
		t.Fatalf("formulário deveria seguir aberto: %v", err)
	}
}

func TestSubmitEditReplacesRowInPlace(t *testing.T) {
	client := &stubClient{cityPosts: []backend.Post{
		{ID: 1, FirstName: "Ana", PostStatus: 1},
		{ID: 2, FirstName: "Bruno", PostStatus: 1},
		{ID: 3, FirstName: "Carla", PostStatus: 1},
	}}
	svc := newTestService(client, nil)
	if err := svc.LoadTier(context.Background(), TierCity, testIdentity()); err != nil {
		t.Fatalf("LoadTier: %v", err)
	}

	rows := svc.Rows()
	svc.OpenEdit(rows[1])
	svc.UpdateEdit(func(d *EditDraft) {
		d.FirstName = "Bruno Eduardo"
		d.LastName = "Costa"
		d.Description = "atualizado"
		d.Gender = "Male"
		d.PersonStatus = "Missing"
		d.TownID = 42
		d.PostStatus = int(StatusResolved)
	})
	if err := svc.SubmitEdit(context.Background()); err != nil {
		t.Fatalf("SubmitEdit: %v", err)
	}

	rows = svc.Rows()
	if len(rows) != 3 {
		t.Fatalf("tamanho da lista mudou: %d", len(rows))
	}
	if rows[1].ID != 2 || rows[1].FirstName != "Bruno Eduardo" || rows[1].Status != StatusResolved {
		t.Fatalf("substituição no lugar falhou: %+v", rows[1])
	}
}

func TestPromoteSkipsWhenAlreadyPresent(t *testing.T) {
	client := &stubClient{inZone: true}
	svc := newTestService(client, &backend.TownInfo{TownID: 42, ZoneID: 4, RegionID: 1})

	if err := svc.Promote(context.Background(), 7, TierZone); err != nil {
		t.Fatalf("Promote: %v", err)
	}
	if len(client.promotedZone) != 0 {
		t.Fatal("post já presente não deveria ser replicado de novo")
	}
}

func TestPromoteZoneRequiresChain(t *testing.T) {
	client := &stubClient{}
	svc := newTestService(client, nil)

	if err := svc.Promote(context.Background(), 7, TierZone); !errors.Is(err, ErrScopeUnavailable) {
		t.Fatalf("esperava ErrScopeUnavailable, veio %v", err)
	}
}

func TestVisibleTiersByRole(t *testing.T) {
	cases := []struct {
		role session.Role
		want []Tier
	}{
		{session.RoleTownOfficer, []Tier{TierCity, TierZone, TierRegion, TierCountry}},
		{session.RoleZoneAdmin, []Tier{TierZone, TierRegion, TierCountry}},
		{session.RoleRegionAdmin, []Tier{TierRegion, TierCountry}},
		{session.RoleRootAdmin, []Tier{TierCountry}},
	}
	for _, tc := range cases {
		got := VisibleTiers(tc.role)
		if len(got) != len(tc.want) {
			t.Fatalf("papel %d: abas %v, esperava %v", tc.role, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("papel %d: abas %v, esperava %v", tc.role, got, tc.want)
			}
		}
	}
}

func TestStatusMapping(t *testing.T) {
	if StatusActive.Label() != "Active" || !StatusActive.Active() {
		t.Fatal("mapeamento de Active incorreto")
	}
	if Status(9).Label() != "Unknown" || Status(9).Valid() {
		t.Fatal("situação fora do mapa deveria ser Unknown e inválida")
	}
	if status, ok := StatusFromLabel("resolved"); !ok || status != StatusResolved {
		t.Fatalf("StatusFromLabel: %v %v", status, ok)
	}
}
