package officers

import (
	"strings"

	"github.com/urbanbyte/sentinela/internal/backend"
	"github.com/urbanbyte/sentinela/internal/session"
)

// Row é a linha de exibição de um policial.
type Row struct {
	ID          string          `json:"policeOfficerId"`
	FirstName   string          `json:"firstName"`
	MiddleName  string          `json:"middleName"`
	LastName    string          `json:"lastName"`
	PhoneNumber string          `json:"phoneNumber"`
	Email       string          `json:"email"`
	Role        int             `json:"role"`
	RoleLabel   string          `json:"roleLabel"`
	StationName string          `json:"stationName"`
	PhotoURL    string          `json:"photoUrl"`
	Source      backend.Officer `json:"source"`
}

// NewRow deriva a linha de exibição do registro do backend.
func NewRow(officer backend.Officer, uploadsBaseURL string) Row {
	photo := ""
	if strings.TrimSpace(officer.ImagePath) != "" {
		photo = uploadsBaseURL + "/" + officer.ImagePath
	}
	return Row{
		ID:          officer.ID,
		FirstName:   officer.FirstName,
		MiddleName:  officer.MiddleName,
		LastName:    officer.LastName,
		PhoneNumber: officer.PhoneNumber,
		Email:       officer.Email,
		Role:        officer.Role,
		RoleLabel:   session.Role(officer.Role).Label(),
		StationName: officer.StationName,
		PhotoURL:    photo,
		Source:      officer,
	}
}

// MatchesQuery aplica o filtro textual sobre id, nomes, email e telefone.
func (r Row) MatchesQuery(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, field := range []string{r.ID, r.FirstName, r.MiddleName, r.LastName, r.Email, r.PhoneNumber, r.RoleLabel} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
