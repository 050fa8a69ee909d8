package criminals

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/urbanbyte/sentinela/internal/backend"
	"github.com/urbanbyte/sentinela/internal/listview"
	"github.com/urbanbyte/sentinela/internal/session"
)

// Client reúne as operações de procurados usadas pelo serviço.
type Client interface {
	Criminals(ctx context.Context) ([]backend.Criminal, error)
	CreateCriminal(ctx context.Context, draft backend.CriminalDraft, photo *backend.FileField) (*backend.Criminal, error)
}

// Service coordena a listagem com filtros de atributos físicos e o
// cadastro de procurados.
type Service struct {
	client         Client
	logger         zerolog.Logger
	uploadsBaseURL string

	view *listview.View[Row]
	form listview.Form[backend.CriminalDraft]
}

// NewService cria o serviço de procurados da sessão.
func NewService(client Client, uploadsBaseURL string, logger zerolog.Logger) *Service {
	return &Service{
		client:         client,
		logger:         logger,
		uploadsBaseURL: uploadsBaseURL,
		view: listview.NewView[Row](func(r Row) string {
			return strconv.FormatInt(r.ID, 10)
		}),
	}
}

// Load busca a lista completa de procurados.
func (s *Service) Load(ctx context.Context) {
	s.view.Load(ctx, "all", func(ctx context.Context) ([]Row, error) {
		fetched, err := s.client.Criminals(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, 0, len(fetched))
		for _, criminal := range fetched {
			rows = append(rows, NewRow(criminal, s.uploadsBaseURL))
		}
		return rows, nil
	})
}

// Filter aplica os critérios combinados sobre a lista já buscada.
func (s *Service) Filter(filters Filters) {
	if filters.Empty() {
		s.view.ClearFilter()
		return
	}
	s.view.SetFilter(func(r Row) bool { return filters.Matches(r) })
}

// Rows devolve a projeção filtrada corrente.
func (s *Service) Rows() []Row {
	return s.view.Visible()
}

// State expõe carregamento e mensagem de erro da última busca.
func (s *Service) State() (loading bool, message string) {
	return s.view.State()
}

// OpenAdd prepara o rascunho de cadastro vinculado à delegacia de quem
// cadastra.
func (s *Service) OpenAdd(identity session.Identity) {
	s.form.Open(backend.CriminalDraft{StationID: identity.StationID})
}

// UpdateAdd aplica edições ao rascunho staged.
func (s *Service) UpdateAdd(mutate func(*backend.CriminalDraft)) error {
	return s.form.Update(mutate)
}

// SubmitAdd valida e envia o cadastro; em sucesso o registro canônico
// entra na lista.
func (s *Service) SubmitAdd(ctx context.Context, photo *backend.FileField) error {
	var created *backend.Criminal
	return s.form.Submit(ctx,
		validateDraft,
		func(ctx context.Context, staged backend.CriminalDraft) (backend.CriminalDraft, error) {
			criminal, err := s.client.CreateCriminal(ctx, staged, photo)
			if err != nil {
				return staged, err
			}
			created = criminal
			return staged, nil
		},
		func(backend.CriminalDraft) {
			s.view.Append(NewRow(*created, s.uploadsBaseURL))
		},
	)
}

// CancelAdd descarta o rascunho staged.
func (s *Service) CancelAdd() {
	s.form.Close()
}

// Message devolve o erro inline do cadastro.
func (s *Service) Message() string {
	return s.form.Message()
}

func validateDraft(draft backend.CriminalDraft) error {
	if strings.TrimSpace(draft.FirstName) == "" {
		return errors.New("nome é obrigatório")
	}
	if strings.TrimSpace(draft.LastName) == "" {
		return errors.New("sobrenome é obrigatório")
	}
	if !inCatalog(FaceColors, draft.FaceColor) {
		return errors.New("tom de pele inválido")
	}
	if !inCatalog(HairColors, draft.HairColor) {
		return errors.New("cor de cabelo inválida")
	}
	if !inCatalog(Heights, draft.Height) {
		return errors.New("altura inválida")
	}
	if !inCatalog(BodyTypes, draft.BodyType) {
		return errors.New("compleição inválida")
	}
	if !inCatalog(Genders, draft.Gender) {
		return errors.New("gênero inválido")
	}
	if strings.TrimSpace(draft.FileNumber) == "" {
		return errors.New("número do prontuário é obrigatório")
	}
	return nil
}
