package settings

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/urbanbyte/sentinela/internal/backend"
	"github.com/urbanbyte/sentinela/internal/session"
)

// Erros de validação local da troca de senha.
var (
	ErrFieldsRequired   = errors.New("todos os campos são obrigatórios")
	ErrPasswordMismatch = errors.New("nova senha e confirmação não conferem")
)

// Client reúne as operações de perfil usadas pelo serviço.
type Client interface {
	DisplayInfo(ctx context.Context, officerID string) (*backend.Officer, error)
	UpdatePassword(ctx context.Context, officerID, oldPassword, newPassword string) error
}

// Profile é o cartão de perfil exibido na tela de configurações.
type Profile struct {
	OfficerID   string `json:"policeOfficerId"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	RoleLabel   string `json:"roleLabel"`
	StationName string `json:"stationName"`
	PhotoURL    string `json:"photoUrl"`
}

// Service carrega o perfil do policial logado e troca a senha dele.
type Service struct {
	client         Client
	logger         zerolog.Logger
	uploadsBaseURL string

	mu      sync.Mutex
	profile *Profile
	message string
}

// NewService cria o serviço de configurações da sessão.
func NewService(client Client, uploadsBaseURL string, logger zerolog.Logger) *Service {
	return &Service{client: client, logger: logger, uploadsBaseURL: uploadsBaseURL}
}

// LoadProfile busca os dados de exibição do policial logado.
func (s *Service) LoadProfile(ctx context.Context, officerID string) error {
	officer, err := s.client.DisplayInfo(ctx, officerID)
	if err != nil {
		s.mu.Lock()
		s.message = err.Error()
		s.mu.Unlock()
		return err
	}

	photo := ""
	if strings.TrimSpace(officer.ImagePath) != "" {
		photo = s.uploadsBaseURL + "/" + officer.ImagePath
	}
	names := []string{officer.FirstName, officer.MiddleName, officer.LastName}
	parts := make([]string, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) != "" {
			parts = append(parts, name)
		}
	}

	s.mu.Lock()
	s.profile = &Profile{
		OfficerID:   officer.ID,
		FullName:    strings.Join(parts, " "),
		PhoneNumber: officer.PhoneNumber,
		Email:       officer.Email,
		RoleLabel:   session.Role(officer.Role).Label(),
		StationName: officer.StationName,
		PhotoURL:    photo,
	}
	s.message = ""
	s.mu.Unlock()
	return nil
}

// Profile devolve o cartão de perfil corrente.
func (s *Service) Profile() (Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return Profile{}, false
	}
	return *s.profile, true
}

// ChangePassword valida localmente antes de qualquer requisição: todos os
// campos preenchidos e nova senha igual à confirmação.
func (s *Service) ChangePassword(ctx context.Context, officerID, oldPassword, newPassword, confirm string) error {
	if strings.TrimSpace(oldPassword) == "" ||
		strings.TrimSpace(newPassword) == "" ||
		strings.TrimSpace(confirm) == "" {
		s.setMessage(ErrFieldsRequired.Error())
		return ErrFieldsRequired
	}
	if newPassword != confirm {
		s.setMessage(ErrPasswordMismatch.Error())
		return ErrPasswordMismatch
	}

	if err := s.client.UpdatePassword(ctx, officerID, oldPassword, newPassword); err != nil {
		s.setMessage(err.Error())
		return err
	}
	s.setMessage("")
	return nil
}

func (s *Service) setMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Message devolve o erro inline corrente.
func (s *Service) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}
