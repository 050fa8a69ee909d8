package posts

import (
	"strconv"
	"strings"
	"time"

	"github.com/urbanbyte/sentinela/internal/backend"
	"github.com/urbanbyte/sentinela/internal/session"
)

// Tier é o nível administrativo de uma listagem de posts.
type Tier string

const (
	TierCity    Tier = "city"
	TierZone    Tier = "zone"
	TierRegion  Tier = "region"
	TierCountry Tier = "country"
)

var allTiers = []Tier{TierCity, TierZone, TierRegion, TierCountry}

// VisibleTiers devolve as abas permitidas para o papel: administradores de
// zona não veem cidade, administradores de região veem só região e país, e
// o administrador raiz vê apenas o país.
func VisibleTiers(role session.Role) []Tier {
	switch role {
	case session.RoleZoneAdmin:
		return []Tier{TierZone, TierRegion, TierCountry}
	case session.RoleRegionAdmin:
		return []Tier{TierRegion, TierCountry}
	case session.RoleRootAdmin:
		return []Tier{TierCountry}
	default:
		return append([]Tier(nil), allTiers...)
	}
}

// ValidTier indica se o valor corresponde a um nível conhecido.
func ValidTier(t Tier) bool {
	for _, tier := range allTiers {
		if tier == t {
			return true
		}
	}
	return false
}

// Status é a situação do post. Os valores numéricos do backend eram
// interpretados de forma divergente entre telas; aqui existe um único
// mapeamento canônico, usado por todas as visões.
type Status int

const (
	StatusActive     Status = 1
	StatusPending    Status = 2
	StatusInfoNeeded Status = 3
	StatusResolved   Status = 4
	StatusClosed     Status = 5
)

var statusLabels = map[Status]string{
	StatusActive:     "Active",
	StatusPending:    "Pending Review",
	StatusInfoNeeded: "Information Needed",
	StatusResolved:   "Resolved",
	StatusClosed:     "Closed",
}

// Label devolve o rótulo de exibição da situação.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "Unknown"
}

// Valid indica se a situação é reconhecida.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Active indica se o post segue em divulgação.
func (s Status) Active() bool {
	return s == StatusActive
}

// StatusFromLabel converte o rótulo de volta para a situação canônica.
func StatusFromLabel(label string) (Status, bool) {
	for status, l := range statusLabels {
		if strings.EqualFold(l, strings.TrimSpace(label)) {
			return status, true
		}
	}
	return 0, false
}

// Situações de pessoa aceitas pelo cadastro.
var PersonStatuses = []string{"Criminal", "Missing", "Victim", "Unknown"}

// ValidPersonStatus indica se a situação da pessoa é aceita.
func ValidPersonStatus(value string) bool {
	for _, status := range PersonStatuses {
		if strings.EqualFold(status, strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}

// Row é a linha de exibição derivada de um registro do backend. Criada na
// busca, substituída em bloco na recarga; muta localmente apenas como eco
// otimista de uma mutação confirmada.
type Row struct {
	ID           int64        `json:"postId"`
	FirstName    string       `json:"firstName"`
	MiddleName   string       `json:"middleName"`
	LastName     string       `json:"lastName"`
	Date         string       `json:"date"`
	Status       Status       `json:"postStatus"`
	StatusLabel  string       `json:"statusLabel"`
	Active       bool         `json:"active"`
	PersonStatus string       `json:"personStatus"`
	PictureURL   string       `json:"pictureUrl"`
	Source       backend.Post `json:"source"`
}

// NewRow deriva a linha de exibição a partir do registro do backend.
func NewRow(post backend.Post, uploadsBaseURL string) Row {
	status := Status(post.PostStatus)
	return Row{
		ID:           post.ID,
		FirstName:    post.FirstName,
		MiddleName:   post.MiddleName,
		LastName:     post.LastName,
		Date:         formatDate(post.CreatedAt),
		Status:       status,
		StatusLabel:  status.Label(),
		Active:       status.Active(),
		PersonStatus: post.PersonStatus,
		PictureURL:   pictureURL(post.ImagePath, uploadsBaseURL),
		Source:       post,
	}
}

// MatchesQuery aplica o filtro textual: id, nomes ou situação da pessoa.
func (r Row) MatchesQuery(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, field := range []string{
		strconv.FormatInt(r.ID, 10),
		r.FirstName,
		r.MiddleName,
		r.LastName,
		r.PersonStatus,
	} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func pictureURL(imagePath, baseURL string) string {
	imagePath = strings.TrimSpace(imagePath)
	if imagePath == "" {
		return ""
	}
	return baseURL + "/" + imagePath
}

// formatDate converte o carimbo do backend para exibição; valores
// ilegíveis são mostrados como vieram.
func formatDate(raw string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000Z", "2006-01-02 15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.Format("01/02/2006")
		}
	}
	return raw
}
