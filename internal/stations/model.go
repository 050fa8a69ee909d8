package stations

import (
	"fmt"
	"strings"

	"github.com/urbanbyte/sentinela/internal/backend"
)

// Row é a linha de exibição de uma delegacia.
type Row struct {
	ID             string          `json:"policeStationId"`
	Name           string          `json:"name"`
	Location       string          `json:"location"`
	PhoneNumber    string          `json:"contact"`
	SecPhoneNumber string          `json:"secContact"`
	LogoURL        string          `json:"logoUrl"`
	Source         backend.Station `json:"source"`
}

// NewRow deriva a linha de exibição do registro do backend.
func NewRow(station backend.Station, uploadsBaseURL string) Row {
	logo := ""
	if strings.TrimSpace(station.Logo) != "" {
		logo = uploadsBaseURL + "/" + station.Logo
	}
	return Row{
		ID:             station.ID,
		Name:           station.Name,
		Location:       formatLocation(station),
		PhoneNumber:    station.PhoneNumber,
		SecPhoneNumber: station.SecPhoneNumber,
		LogoURL:        logo,
		Source:         station,
	}
}

func formatLocation(station backend.Station) string {
	return fmt.Sprintf("Town: %s, Zone: %s, Region: %s",
		orNA(station.TownName), orNA(station.ZoneName), orNA(station.RegionName))
}

func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return "N/A"
	}
	return value
}

// MatchesQuery aplica o filtro textual sobre nome, id e localização.
func (r Row) MatchesQuery(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, field := range []string{r.ID, r.Name, r.Location, r.PhoneNumber} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
