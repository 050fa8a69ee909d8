package officers

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/rs/zerolog"

	"github.com/urbanbyte/sentinela/internal/backend"
	"github.com/urbanbyte/sentinela/internal/listview"
	"github.com/urbanbyte/sentinela/internal/session"
)

// Client reúne as operações de policiais usadas pelo serviço.
type Client interface {
	Officers(ctx context.Context, stationID string) ([]backend.Officer, error)
	RegisterOfficer(ctx context.Context, draft backend.OfficerDraft, photo *backend.FileField) (*backend.Officer, error)
	UpdateOfficer(ctx context.Context, officerID string, draft backend.OfficerDraft) (*backend.Officer, error)
}

// EditDraft carrega o id do policial junto do rascunho de edição.
type EditDraft struct {
	OfficerID string
	backend.OfficerDraft
}

// Service coordena a listagem, o cadastro e a edição de policiais de uma
// delegacia.
type Service struct {
	client         Client
	logger         zerolog.Logger
	uploadsBaseURL string

	view    *listview.View[Row]
	addForm listview.Form[backend.OfficerDraft]
	edit    listview.Form[EditDraft]
}

// NewService cria o serviço de policiais da sessão.
func NewService(client Client, uploadsBaseURL string, logger zerolog.Logger) *Service {
	return &Service{
		client:         client,
		logger:         logger,
		uploadsBaseURL: uploadsBaseURL,
		view:           listview.NewView[Row](func(r Row) string { return r.ID }),
	}
}

// Load busca os policiais da delegacia informada.
func (s *Service) Load(ctx context.Context, stationID string) {
	s.view.Load(ctx, "station:"+stationID, func(ctx context.Context) ([]Row, error) {
		fetched, err := s.client.Officers(ctx, stationID)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, 0, len(fetched))
		for _, officer := range fetched {
			rows = append(rows, NewRow(officer, s.uploadsBaseURL))
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

// OpenAdd prepara o rascunho de cadastro já vinculado à delegacia e à
// cidade de quem cadastra.
func (s *Service) OpenAdd(identity session.Identity) {
	s.addForm.Open(backend.OfficerDraft{
		StationID: identity.StationID,
		TownID:    identity.TownID,
		Role:      int(session.RoleTownOfficer),
	})
}

// UpdateAdd aplica edições ao rascunho de cadastro.
func (s *Service) UpdateAdd(mutate func(*backend.OfficerDraft)) error {
	return s.addForm.Update(mutate)
}

// SubmitAdd valida e envia o cadastro; em sucesso o registro canônico
// entra na lista.
func (s *Service) SubmitAdd(ctx context.Context, photo *backend.FileField) error {
	var created *backend.Officer
	return s.addForm.Submit(ctx,
		validateRegister,
		func(ctx context.Context, staged backend.OfficerDraft) (backend.OfficerDraft, error) {
			officer, err := s.client.RegisterOfficer(ctx, staged, photo)
			if err != nil {
				return staged, err
			}
			created = officer
			return staged, nil
		},
		func(backend.OfficerDraft) {
			s.view.Append(NewRow(*created, s.uploadsBaseURL))
		},
	)
}

// CancelAdd descarta o rascunho de cadastro.
func (s *Service) CancelAdd() {
	s.addForm.Close()
}

// AddMessage devolve o erro inline do cadastro.
func (s *Service) AddMessage() string {
	return s.addForm.Message()
}

// ErrRowNotFound indica edição sobre policial ausente da lista corrente.
var ErrRowNotFound = errors.New("policial não encontrado na lista corrente")

// OpenEdit prepara o rascunho de edição a partir da linha corrente.
func (s *Service) OpenEdit(officerID string) error {
	var found *Row
	for _, row := range s.view.Original() {
		if row.ID == officerID {
			r := row
			found = &r
			break
		}
	}
	if found == nil {
		return ErrRowNotFound
	}
	s.edit.Open(EditDraft{
		OfficerID: found.ID,
		OfficerDraft: backend.OfficerDraft{
			FirstName:   found.Source.FirstName,
			MiddleName:  found.Source.MiddleName,
			LastName:    found.Source.LastName,
			PhoneNumber: found.Source.PhoneNumber,
			Email:       found.Source.Email,
			Role:        found.Source.Role,
			StationID:   found.Source.StationID,
			TownID:      found.Source.TownID,
		},
	})
	return nil
}

// UpdateEdit aplica edições ao rascunho de edição.
func (s *Service) UpdateEdit(mutate func(*EditDraft)) error {
	return s.edit.Update(mutate)
}

// SubmitEdit valida e envia a edição; em sucesso a linha é substituída no
// lugar, preservando a ordem da lista.
func (s *Service) SubmitEdit(ctx context.Context) error {
	var updated *backend.Officer
	return s.edit.Submit(ctx,
		func(staged EditDraft) error { return validateCommon(staged.OfficerDraft) },
		func(ctx context.Context, staged EditDraft) (EditDraft, error) {
			officer, err := s.client.UpdateOfficer(ctx, staged.OfficerID, staged.OfficerDraft)
			if err != nil {
				return staged, err
			}
			updated = officer
			return staged, nil
		},
		func(staged EditDraft) {
			s.view.ReplaceByID(staged.OfficerID, NewRow(*updated, s.uploadsBaseURL))
		},
	)
}

// CancelEdit descarta o rascunho de edição.
func (s *Service) CancelEdit() {
	s.edit.Close()
}

// EditMessage devolve o erro inline da edição.
func (s *Service) EditMessage() string {
	return s.edit.Message()
}

// minPasswordLen é o mínimo aceito pelo backend no cadastro.
const minPasswordLen = 6

func validateCommon(draft backend.OfficerDraft) error {
	if strings.TrimSpace(draft.FirstName) == "" {
		return errors.New("nome é obrigatório")
	}
	if strings.TrimSpace(draft.LastName) == "" {
		return errors.New("sobrenome é obrigatório")
	}
	if strings.TrimSpace(draft.PhoneNumber) == "" {
		return errors.New("telefone é obrigatório")
	}
	email := strings.TrimSpace(draft.Email)
	if email == "" {
		return errors.New("email é obrigatório")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("email inválido")
	}
	if !session.Role(draft.Role).Valid() {
		return errors.New("cargo inválido")
	}
	if strings.TrimSpace(draft.StationID) == "" {
		return errors.New("delegacia é obrigatória")
	}
	return nil
}

func validateRegister(draft backend.OfficerDraft) error {
	if err := validateCommon(draft); err != nil {
		return err
	}
	if len(draft.Password) < minPasswordLen {
		return errors.New("senha deve ter pelo menos 6 caracteres")
	}
	return nil
}
