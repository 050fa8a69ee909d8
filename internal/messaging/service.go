package messaging

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/urbanbyte/sentinela/internal/backend"
	"github.com/urbanbyte/sentinela/internal/store"
)

var (
	// ErrEmptyMessage indica envio recusado por conteúdo em branco.
	ErrEmptyMessage = errors.New("mensagem não pode ser vazia")
	// ErrNoConversation indica envio sem conversa aberta.
	ErrNoConversation = errors.New("nenhuma conversa aberta")
)

// unreadCacheTTL limita a validade do contador de não lidas no cache.
const unreadCacheTTL = 30 * time.Second

// Client reúne as operações de mensagens e de diretório de delegacias
// usadas pelo serviço.
type Client interface {
	AllStations(ctx context.Context) ([]backend.Station, error)
	Conversation(ctx context.Context, ownStationID, otherStationID string) ([]backend.Message, error)
	SendMessage(ctx context.Context, senderID, receiverID, content string) (*backend.Message, error)
	MarkConversationRead(ctx context.Context, senderID, receiverID string) error
	UnreadCount(ctx context.Context, ownStationID, otherStationID string) (int, error)
}

// Counterpart é uma delegacia com quem se pode conversar.
type Counterpart struct {
	StationID string `json:"policeStationId"`
	Name      string `json:"name"`
	LogoURL   string `json:"logoUrl"`
	Unread    int    `json:"unread"`
}

// Row é uma mensagem pronta para exibição.
type Row struct {
	ID       int64  `json:"messageId"`
	Content  string `json:"content"`
	Outgoing bool   `json:"outgoing"`
	Read     bool   `json:"read"`
	SentAt   string `json:"sentAt"`
}

// Service coordena o diretório de conversas e a conversa aberta de uma
// delegacia. Contadores de não lidas passam por um cache curto no KV.
type Service struct {
	client         Client
	kv             store.KV
	logger         zerolog.Logger
	uploadsBaseURL string
	ownStationID   string

	mu           sync.Mutex
	counterparts []Counterpart
	activeID     string
	messages     []Row
	message      string
}

// NewService cria o serviço de mensagens da sessão.
func NewService(client Client, kv store.KV, uploadsBaseURL, ownStationID string, logger zerolog.Logger) *Service {
	return &Service{
		client:         client,
		kv:             kv,
		logger:         logger,
		uploadsBaseURL: uploadsBaseURL,
		ownStationID:   ownStationID,
	}
}

func unreadKey(own, other string) string {
	return fmt.Sprintf("sentinela:unread:%s:%s", own, other)
}

// LoadCounterparts monta o diretório: todas as delegacias menos a
// própria, ordenadas por nome, com o contador de não lidas de cada uma.
func (s *Service) LoadCounterparts(ctx context.Context) error {
	stations, err := s.client.AllStations(ctx)
	if err != nil {
		s.mu.Lock()
		s.message = err.Error()
		s.mu.Unlock()
		return err
	}

	counterparts := make([]Counterpart, 0, len(stations))
	for _, station := range stations {
		if station.ID == s.ownStationID {
			continue
		}
		logo := ""
		if strings.TrimSpace(station.Logo) != "" {
			logo = s.uploadsBaseURL + "/" + station.Logo
		}
		counterparts = append(counterparts, Counterpart{
			StationID: station.ID,
			Name:      station.Name,
			LogoURL:   logo,
			Unread:    s.unread(ctx, station.ID),
		})
	}
	sort.Slice(counterparts, func(i, j int) bool {
		return counterparts[i].Name < counterparts[j].Name
	})

	s.mu.Lock()
	s.counterparts = counterparts
	s.message = ""
	s.mu.Unlock()
	return nil
}

// unread resolve o contador via cache e cai para o backend no miss.
// Falha do backend conta como zero para não travar o diretório.
func (s *Service) unread(ctx context.Context, otherID string) int {
	key := unreadKey(s.ownStationID, otherID)
	if cached, err := s.kv.Get(ctx, key); err == nil {
		if count, convErr := strconv.Atoi(cached); convErr == nil {
			return count
		}
	}
	count, err := s.client.UnreadCount(ctx, s.ownStationID, otherID)
	if err != nil {
		s.logger.Warn().Err(err).Str("station", otherID).Msg("falha ao buscar não lidas")
		return 0
	}
	if err := s.kv.Set(ctx, key, strconv.Itoa(count), unreadCacheTTL); err != nil {
		s.logger.Warn().Err(err).Msg("falha ao gravar cache de não lidas")
	}
	return count
}

// Counterparts devolve o diretório corrente.
func (s *Service) Counterparts() []Counterpart {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Counterpart, len(s.counterparts))
	copy(out, s.counterparts)
	return out
}

// OpenConversation busca o histórico com a delegacia informada e marca a
// conversa como lida, zerando o contador local e o cache.
func (s *Service) OpenConversation(ctx context.Context, otherID string) error {
	fetched, err := s.client.Conversation(ctx, s.ownStationID, otherID)
	if err != nil {
		s.mu.Lock()
		s.message = err.Error()
		s.mu.Unlock()
		return err
	}

	rows := make([]Row, 0, len(fetched))
	for _, msg := range fetched {
		rows = append(rows, s.newRow(msg))
	}

	s.mu.Lock()
	s.activeID = otherID
	s.messages = rows
	s.message = ""
	for i := range s.counterparts {
		if s.counterparts[i].StationID == otherID {
			s.counterparts[i].Unread = 0
		}
	}
	s.mu.Unlock()

	if err := s.client.MarkConversationRead(ctx, otherID, s.ownStationID); err != nil {
		s.logger.Warn().Err(err).Str("station", otherID).Msg("falha ao marcar conversa como lida")
	}
	if err := s.kv.Set(ctx, unreadKey(s.ownStationID, otherID), "0", unreadCacheTTL); err != nil {
		s.logger.Warn().Err(err).Msg("falha ao zerar cache de não lidas")
	}
	return nil
}

func (s *Service) newRow(msg backend.Message) Row {
	return Row{
		ID:       msg.ID,
		Content:  msg.Content,
		Outgoing: msg.SenderID == s.ownStationID,
		Read:     msg.Read != 0,
		SentAt:   msg.CreatedAt,
	}
}

// CloseConversation descarta a conversa aberta.
func (s *Service) CloseConversation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = ""
	s.messages = nil
}

// Messages devolve a conversa aberta e a delegacia correspondente.
func (s *Service) Messages() (otherID string, rows []Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Row, len(s.messages))
	copy(out, s.messages)
	return s.activeID, out
}

// Send envia o conteúdo para a conversa aberta; em sucesso a mensagem
// canônica entra no fim do histórico local.
func (s *Service) Send(ctx context.Context, content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyMessage
	}
	s.mu.Lock()
	otherID := s.activeID
	s.mu.Unlock()
	if otherID == "" {
		return ErrNoConversation
	}

	sent, err := s.client.SendMessage(ctx, s.ownStationID, otherID, content)
	if err != nil {
		s.mu.Lock()
		s.message = err.Error()
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	if s.activeID == otherID {
		s.messages = append(s.messages, s.newRow(*sent))
	}
	s.message = ""
	s.mu.Unlock()
	return nil
}

// Message devolve o erro inline corrente.
func (s *Service) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}
