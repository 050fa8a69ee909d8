package reports

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

// Client reúne as operações de relatórios usadas pelo serviço.
type Client interface {
	CreateReport(ctx context.Context, draft backend.ReportDraft) error
	StationReports(ctx context.Context, stationID string) ([]backend.Report, error)
}

// Service coordena a caixa de entrada de relatórios da delegacia e o
// fluxo de abertura de um novo relatório sobre um post.
type Service struct {
	client         Client
	logger         zerolog.Logger
	uploadsBaseURL string

	view *listview.View[Row]
	form listview.Form[backend.ReportDraft]
}

// NewService cria o serviço de relatórios da sessão.
func NewService(client Client, uploadsBaseURL string, logger zerolog.Logger) *Service {
	return &Service{
		client:         client,
		logger:         logger,
		uploadsBaseURL: uploadsBaseURL,
		view: listview.NewView[Row](func(r Row) string {
			return strconv.FormatInt(r.AlertID, 10)
		}),
	}
}

// Load busca os relatórios destinados à delegacia da sessão.
func (s *Service) Load(ctx context.Context, stationID string) {
	s.view.Load(ctx, "station:"+stationID, func(ctx context.Context) ([]Row, error) {
		fetched, err := s.client.StationReports(ctx, stationID)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, 0, len(fetched))
		for _, report := range fetched {
			rows = append(rows, NewRow(report, s.uploadsBaseURL))
		}
		return rows, nil
	})
}

// Search aplica o filtro textual sobre a caixa de entrada.
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

// Open prepara o rascunho de relatório para um post, pré-preenchendo os
// campos derivados da identidade.
func (s *Service) Open(postID int64, identity session.Identity) {
	s.form.Open(backend.ReportDraft{
		PostID:    postID,
		TownID:    identity.TownID,
		SubCityID: 1,
		StationID: identity.StationID,
		Priority:  int(PriorityMedium),
	})
}

// Update aplica edições ao rascunho staged.
func (s *Service) Update(mutate func(*backend.ReportDraft)) error {
	return s.form.Update(mutate)
}

// Submit valida o rascunho antes de qualquer requisição e envia o
// relatório em uma única chamada.
func (s *Service) Submit(ctx context.Context) error {
	return s.form.Submit(ctx,
		validateDraft,
		func(ctx context.Context, staged backend.ReportDraft) (backend.ReportDraft, error) {
			return staged, s.client.CreateReport(ctx, staged)
		},
		nil,
	)
}

// Cancel descarta o rascunho staged.
func (s *Service) Cancel() {
	s.form.Close()
}

// Message devolve o erro inline do fluxo.
func (s *Service) Message() string {
	return s.form.Message()
}

func validateDraft(draft backend.ReportDraft) error {
	if strings.TrimSpace(draft.Description) == "" {
		return errors.New("descrição do relatório é obrigatória")
	}
	if strings.TrimSpace(draft.StationID) == "" {
		return errors.New("delegacia é obrigatória")
	}
	if draft.TownID == 0 {
		return errors.New("cidade do usuário não disponível")
	}
	if !Priority(draft.Priority).Valid() {
		return errors.New("prioridade inválida")
	}
	return nil
}
