package reports

import (
	"strings"

	"github.com/urbanbyte/sentinela/internal/backend"
)

// Priority é a urgência de um relatório de escalonamento.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

var priorityLabels = map[Priority]string{
	PriorityLow:    "Low",
	PriorityMedium: "Medium",
	PriorityHigh:   "High",
}

// Label devolve o rótulo de exibição da prioridade.
func (p Priority) Label() string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return "Unknown"
}

// Valid indica se a prioridade é reconhecida.
func (p Priority) Valid() bool {
	_, ok := priorityLabels[p]
	return ok
}

// PriorityFromLabel converte o rótulo de volta para a prioridade.
func PriorityFromLabel(label string) (Priority, bool) {
	for priority, l := range priorityLabels {
		if strings.EqualFold(l, strings.TrimSpace(label)) {
			return priority, true
		}
	}
	return 0, false
}

// Row é a linha de exibição de um relatório recebido pela delegacia.
type Row struct {
	AlertID       int64          `json:"alertId"`
	PostID        int64          `json:"postId"`
	FullName      string         `json:"fullName"`
	Age           string         `json:"age"`
	Gender        string         `json:"gender"`
	LastLocation  string         `json:"lastLocation"`
	Message       string         `json:"message"`
	Priority      Priority       `json:"priority"`
	PriorityLabel string         `json:"priorityLabel"`
	Unread        bool           `json:"unread"`
	ReportedAt    string         `json:"reportedAt"`
	PictureURL    string         `json:"pictureUrl"`
	Source        backend.Report `json:"source"`
}

// NewRow deriva a linha de exibição do registro do backend.
func NewRow(report backend.Report, uploadsBaseURL string) Row {
	priority := Priority(report.Priority)
	fullName := strings.TrimSpace(strings.Join([]string{report.FirstName, report.MiddleName, report.LastName}, " "))
	picture := ""
	if strings.TrimSpace(report.ImagePath) != "" {
		picture = uploadsBaseURL + "/" + report.ImagePath
	}
	return Row{
		AlertID:       report.AlertID,
		PostID:        report.PostID,
		FullName:      fullName,
		Age:           strings.TrimSuffix(report.Age, ".0"),
		Gender:        report.Gender,
		LastLocation:  report.LastLocation,
		Message:       report.Description,
		Priority:      priority,
		PriorityLabel: priority.Label(),
		Unread:        report.Unread == 0,
		ReportedAt:    report.CreatedAt,
		PictureURL:    picture,
		Source:        report,
	}
}

// MatchesQuery aplica o filtro textual sobre nome, local e mensagem.
func (r Row) MatchesQuery(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, field := range []string{r.FullName, r.LastLocation, r.Message} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
