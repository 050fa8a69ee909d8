package stations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/urbanbyte/sentinela/internal/backend"
	"github.com/urbanbyte/sentinela/internal/cascade"
	"github.com/urbanbyte/sentinela/internal/listview"
)

// ErrSelectionIncomplete indica cadastro tentado sem o seletor
// região→zona→cidade no estado terminal.
var ErrSelectionIncomplete = errors.New("selecione região, zona e cidade antes de cadastrar")

// Client reúne as operações de delegacias usadas pelo serviço.
type Client interface {
	Stations(ctx context.Context, rootID int64) ([]backend.Station, error)
	CreateStation(ctx context.Context, draft backend.StationDraft, logo *backend.FileField) (*backend.Station, error)
}

// Service coordena a listagem e o cadastro de delegacias. O cadastro só é
// permitido com o seletor dependente completo.
type Service struct {
	client         Client
	selector       *cascade.Selector
	logger         zerolog.Logger
	uploadsBaseURL string
	rootID         int64

	view *listview.View[Row]
	form listview.Form[backend.StationDraft]
}

// NewService cria o serviço de delegacias da sessão.
func NewService(client Client, selector *cascade.Selector, uploadsBaseURL string, rootID int64, logger zerolog.Logger) *Service {
	return &Service{
		client:         client,
		selector:       selector,
		logger:         logger,
		uploadsBaseURL: uploadsBaseURL,
		rootID:         rootID,
		view:           listview.NewView[Row](func(r Row) string { return r.ID }),
	}
}

// Selector expõe o seletor região→zona→cidade do fluxo de cadastro.
func (s *Service) Selector() *cascade.Selector {
	return s.selector
}

// Load busca as delegacias do escopo raiz.
func (s *Service) Load(ctx context.Context) {
	s.view.Load(ctx, fmt.Sprintf("root:%d", s.rootID), func(ctx context.Context) ([]Row, error) {
		fetched, err := s.client.Stations(ctx, s.rootID)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, 0, len(fetched))
		for _, station := range fetched {
			rows = append(rows, NewRow(station, s.uploadsBaseURL))
		}
		return rows, nil
	})
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

// OpenAdd prepara o rascunho em branco de cadastro.
func (s *Service) OpenAdd() {
	s.form.Open(backend.StationDraft{RootID: s.rootID})
}

// UpdateAdd aplica edições ao rascunho staged.
func (s *Service) UpdateAdd(mutate func(*backend.StationDraft)) error {
	return s.form.Update(mutate)
}

// SubmitAdd valida o rascunho e o estado do seletor antes de qualquer
// requisição; em sucesso o registro canônico entra na lista.
func (s *Service) SubmitAdd(ctx context.Context, logo *backend.FileField) error {
	_, _, townID, ok := s.selector.Selection()
	if !ok {
		return ErrSelectionIncomplete
	}
	if err := s.form.Update(func(draft *backend.StationDraft) { draft.TownID = townID }); err != nil {
		return err
	}

	var created *backend.Station
	return s.form.Submit(ctx,
		validateDraft,
		func(ctx context.Context, staged backend.StationDraft) (backend.StationDraft, error) {
			station, err := s.client.CreateStation(ctx, staged, logo)
			if err != nil {
				return staged, err
			}
			created = station
			return staged, nil
		},
		func(backend.StationDraft) {
			s.view.Append(NewRow(*created, s.uploadsBaseURL))
		},
	)
}

// CancelAdd descarta o rascunho staged.
func (s *Service) CancelAdd() {
	s.form.Close()
}

// Message devolve o erro inline do fluxo de cadastro.
func (s *Service) Message() string {
	return s.form.Message()
}

func validateDraft(draft backend.StationDraft) error {
	if strings.TrimSpace(draft.Name) == "" {
		return errors.New("nome da delegacia é obrigatório")
	}
	if strings.TrimSpace(draft.PhoneNumber) == "" {
		return errors.New("telefone principal é obrigatório")
	}
	if draft.TownID == 0 {
		return errors.New("cidade é obrigatória")
	}
	return nil
}
