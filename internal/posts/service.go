package posts

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/urbanbyte/sentinela/internal/backend"
	"github.com/urbanbyte/sentinela/internal/listview"
	"github.com/urbanbyte/sentinela/internal/location"
	"github.com/urbanbyte/sentinela/internal/session"
)

var (
	// ErrScopeUnavailable indica que o identificador de escopo do nível
	// ainda não foi resolvido; a busca é pulada em vez de usar id indefinido.
	ErrScopeUnavailable = errors.New("escopo do nível ainda não disponível")
)

// Client reúne as operações de posts usadas pelo serviço.
type Client interface {
	CityPosts(ctx context.Context, townID int64) ([]backend.Post, error)
	ZonePosts(ctx context.Context, zoneID int64) ([]backend.Post, error)
	RegionPosts(ctx context.Context, regionID int64) ([]backend.Post, error)
	CountryPosts(ctx context.Context, countryID int64) ([]backend.Post, error)
	StationPosts(ctx context.Context, stationID string) ([]backend.Post, error)
	CreatePost(ctx context.Context, draft backend.PostDraft, photo *backend.FileField) (*backend.Post, error)
	UpdatePost(ctx context.Context, postID int64, draft backend.PostDraft) (*backend.Post, error)
	PromotePostToZone(ctx context.Context, postID, zoneID int64) error
	PromotePostToRegion(ctx context.Context, postID, regionID int64) error
	PromotePostToCountry(ctx context.Context, postID, countryID int64) error
	PostInZone(ctx context.Context, postID int64) (bool, error)
	PostInRegion(ctx context.Context, postID int64) (bool, error)
	PostInCountry(ctx context.Context, postID int64) (bool, error)
}

// EditDraft acompanha o id do post sendo editado junto dos campos staged.
type EditDraft struct {
	PostID int64
	backend.PostDraft
}

// Service coordena as listagens por nível e os fluxos de mutação de posts
// de uma sessão.
type Service struct {
	client         Client
	resolver       *location.Resolver
	logger         zerolog.Logger
	uploadsBaseURL string
	countryID      int64

	view     *listview.View[Row]
	addForm  listview.Form[backend.PostDraft]
	editForm listview.Form[EditDraft]
}

// NewService cria o serviço de posts da sessão.
func NewService(client Client, resolver *location.Resolver, uploadsBaseURL string, countryID int64, logger zerolog.Logger) *Service {
	return &Service{
		client:         client,
		resolver:       resolver,
		logger:         logger,
		uploadsBaseURL: uploadsBaseURL,
		countryID:      countryID,
		view: listview.NewView[Row](func(r Row) string {
			return strconv.FormatInt(r.ID, 10)
		}),
	}
}

// LoadTier busca a listagem do nível informado, escopada pela identidade e
// pela cadeia de localização resolvida. Com a cadeia não resolvida, os
// níveis zona/região pulam a busca e ficam vazios em vez de consultar com
// id indefinido.
func (s *Service) LoadTier(ctx context.Context, tier Tier, identity session.Identity) error {
	if !ValidTier(tier) {
		return fmt.Errorf("nível desconhecido: %s", tier)
	}

	scopeID, err := s.scopeFor(tier, identity)
	if err != nil {
		s.view.Reset(string(tier))
		return err
	}

	scope := fmt.Sprintf("%s:%d", tier, scopeID)
	s.view.Load(ctx, scope, func(ctx context.Context) ([]Row, error) {
		fetched, err := s.fetchTier(ctx, tier, scopeID)
		if err != nil {
			return nil, err
		}
		return s.rows(fetched), nil
	})
	return nil
}

// LoadStation busca os posts registrados pela própria delegacia (tela de
// gestão de posts).
func (s *Service) LoadStation(ctx context.Context, stationID string) {
	s.view.Load(ctx, "station:"+stationID, func(ctx context.Context) ([]Row, error) {
		fetched, err := s.client.StationPosts(ctx, stationID)
		if err != nil {
			return nil, err
		}
		return s.rows(fetched), nil
	})
}

func (s *Service) fetchTier(ctx context.Context, tier Tier, scopeID int64) ([]backend.Post, error) {
	switch tier {
	case TierCity:
		return s.client.CityPosts(ctx, scopeID)
	case TierZone:
		return s.client.ZonePosts(ctx, scopeID)
	case TierRegion:
		return s.client.RegionPosts(ctx, scopeID)
	default:
		return s.client.CountryPosts(ctx, scopeID)
	}
}

func (s *Service) scopeFor(tier Tier, identity session.Identity) (int64, error) {
	switch tier {
	case TierCity:
		if identity.TownID == 0 {
			return 0, ErrScopeUnavailable
		}
		return identity.TownID, nil
	case TierZone:
		chain, ok := s.resolver.Chain()
		if !ok {
			return 0, ErrScopeUnavailable
		}
		return chain.ZoneID, nil
	case TierRegion:
		chain, ok := s.resolver.Chain()
		if !ok {
			return 0, ErrScopeUnavailable
		}
		return chain.RegionID, nil
	default:
		return s.countryID, nil
	}
}

func (s *Service) rows(fetched []backend.Post) []Row {
	rows := make([]Row, 0, len(fetched))
	for _, post := range fetched {
		rows = append(rows, NewRow(post, s.uploadsBaseURL))
	}
	return rows
}

// Search aplica o filtro textual sobre a lista já buscada.
func (s *Service) Search(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		s.view.ClearFilter()
		return
	}
	s.view.SetFilter(func(r Row) bool { return r.MatchesQuery(query) })
}

// Rows devolve a projeção filtrada corrente.
func (s *Service) Rows() []Row {
	return s.view.Visible()
}

// State expõe carregamento e mensagem de erro da última busca.
func (s *Service) State() (loading bool, message string) {
	return s.view.State()
}

// OpenAdd prepara o modelo em branco de inclusão com os campos derivados
// da identidade preenchidos.
func (s *Service) OpenAdd(identity session.Identity) {
	s.addForm.Open(backend.PostDraft{
		TownID:     identity.TownID,
		SubCityID:  1,
		OfficerID:  identity.OfficerID,
		StationID:  identity.StationID,
		PostStatus: int(StatusActive),
	})
}

// UpdateAdd aplica edições à cópia staged de inclusão.
func (s *Service) UpdateAdd(mutate func(*backend.PostDraft)) error {
	return s.addForm.Update(mutate)
}

// SubmitAdd valida e envia o cadastro; em sucesso o registro canônico é
// acrescentado à lista com o filtro corrente reaplicado. O eco na lista
// acontece na fase de commit, com o formulário já fechado.
func (s *Service) SubmitAdd(ctx context.Context, photo *backend.FileField) error {
	var created *backend.Post
	return s.addForm.Submit(ctx,
		validateDraft,
		func(ctx context.Context, staged backend.PostDraft) (backend.PostDraft, error) {
			post, err := s.client.CreatePost(ctx, staged, photo)
			if err != nil {
				return staged, err
			}
			created = post
			return staged, nil
		},
		func(backend.PostDraft) {
			s.view.Append(NewRow(*created, s.uploadsBaseURL))
		},
	)
}

// CancelAdd descarta a cópia staged de inclusão.
func (s *Service) CancelAdd() {
	s.addForm.Close()
}

// AddMessage devolve o erro inline do fluxo de inclusão.
func (s *Service) AddMessage() string {
	return s.addForm.Message()
}

// OpenEdit prepara a cópia staged a partir da linha selecionada.
func (s *Service) OpenEdit(row Row) {
	s.editForm.Open(EditDraft{
		PostID: row.ID,
		PostDraft: backend.PostDraft{
			TownID:       row.Source.TownID,
			SubCityID:    row.Source.SubCityID,
			Description:  row.Source.Description,
			FirstName:    row.Source.FirstName,
			MiddleName:   row.Source.MiddleName,
			LastName:     row.Source.LastName,
			Age:          row.Source.Age,
			LastLocation: row.Source.LastLocation,
			Gender:       row.Source.Gender,
			OfficerID:    row.Source.OfficerID,
			StationID:    row.Source.StationID,
			PostStatus:   row.Source.PostStatus,
			PersonStatus: row.Source.PersonStatus,
		},
	})
}

// UpdateEdit aplica edições à cópia staged de edição.
func (s *Service) UpdateEdit(mutate func(*EditDraft)) error {
	return s.editForm.Update(mutate)
}

// SubmitEdit valida e envia a edição; em sucesso o registro de mesmo id é
// substituído no lugar, preservando tamanho e ordem da lista.
func (s *Service) SubmitEdit(ctx context.Context) error {
	var updated *backend.Post
	return s.editForm.Submit(ctx,
		func(staged EditDraft) error { return validateDraft(staged.PostDraft) },
		func(ctx context.Context, staged EditDraft) (EditDraft, error) {
			post, err := s.client.UpdatePost(ctx, staged.PostID, staged.PostDraft)
			if err != nil {
				return staged, err
			}
			updated = post
			return staged, nil
		},
		func(staged EditDraft) {
			s.view.ReplaceByID(strconv.FormatInt(staged.PostID, 10), NewRow(*updated, s.uploadsBaseURL))
		},
	)
}

// CancelEdit descarta a cópia staged de edição.
func (s *Service) CancelEdit() {
	s.editForm.Close()
}

// EditMessage devolve o erro inline do fluxo de edição.
func (s *Service) EditMessage() string {
	return s.editForm.Message()
}

// Promote replica o post para um nível superior, consultando antes se já
// está presente para não duplicar.
func (s *Service) Promote(ctx context.Context, postID int64, tier Tier) error {
	switch tier {
	case TierZone:
		chain, ok := s.resolver.Chain()
		if !ok {
			return ErrScopeUnavailable
		}
		exists, err := s.client.PostInZone(ctx, postID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		return s.client.PromotePostToZone(ctx, postID, chain.ZoneID)
	case TierRegion:
		chain, ok := s.resolver.Chain()
		if !ok {
			return ErrScopeUnavailable
		}
		exists, err := s.client.PostInRegion(ctx, postID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		return s.client.PromotePostToRegion(ctx, postID, chain.RegionID)
	case TierCountry:
		exists, err := s.client.PostInCountry(ctx, postID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		return s.client.PromotePostToCountry(ctx, postID, s.countryID)
	default:
		return fmt.Errorf("nível não promovível: %s", tier)
	}
}

// validateDraft cobre a validação local que bloqueia a requisição.
func validateDraft(draft backend.PostDraft) error {
	if strings.TrimSpace(draft.FirstName) == "" {
		return errors.New("nome é obrigatório")
	}
	if strings.TrimSpace(draft.LastName) == "" {
		return errors.New("sobrenome é obrigatório")
	}
	if strings.TrimSpace(draft.Description) == "" {
		return errors.New("descrição é obrigatória")
	}
	if draft.TownID == 0 {
		return errors.New("cidade é obrigatória")
	}
	if strings.TrimSpace(draft.Gender) == "" {
		return errors.New("sexo é obrigatório")
	}
	if !ValidPersonStatus(draft.PersonStatus) {
		return errors.New("situação da pessoa inválida")
	}
	if !Status(draft.PostStatus).Valid() {
		return errors.New("situação do post inválida")
	}
	return nil
}
