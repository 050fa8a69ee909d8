package criminals

import (
	"strconv"
	"strings"

	"github.com/urbanbyte/sentinela/internal/backend"
)

// Catálogos de atributos físicos aceitos nos filtros e no cadastro.
var (
	FaceColors = []string{"Light", "Medium", "Dark"}
	HairColors = []string{"Black", "Brown", "Blonde", "Gray", "Red"}
	Heights    = []string{"Short", "Average", "Tall"}
	BodyTypes  = []string{"Slim", "Average", "Athletic", "Heavy"}
	Genders    = []string{"Male", "Female"}
)

// AgeRange é uma faixa etária fechada do filtro; Max zero significa aberta.
type AgeRange struct {
	Min int
	Max int
}

// AgeRanges são as faixas etárias oferecidas pelo filtro.
var AgeRanges = []AgeRange{
	{Min: 0, Max: 17},
	{Min: 18, Max: 30},
	{Min: 31, Max: 45},
	{Min: 46, Max: 60},
	{Min: 61, Max: 0},
}

func inCatalog(catalog []string, value string) bool {
	for _, item := range catalog {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}

// Row é a linha de exibição de um procurado.
type Row struct {
	ID         int64            `json:"criminalId"`
	FirstName  string           `json:"firstName"`
	MiddleName string           `json:"middleName"`
	LastName   string           `json:"lastName"`
	FaceColor  string           `json:"faceColor"`
	HairColor  string           `json:"hairColor"`
	Height     string           `json:"height"`
	BodyType   string           `json:"bodyType"`
	Age        int              `json:"age"`
	Gender     string           `json:"gender"`
	FileNumber string           `json:"fileNumber"`
	PhotoURL   string           `json:"photoUrl"`
	Source     backend.Criminal `json:"source"`
}

// NewRow deriva a linha de exibição do registro do backend.
func NewRow(criminal backend.Criminal, uploadsBaseURL string) Row {
	photo := ""
	if strings.TrimSpace(criminal.Photo) != "" {
		photo = uploadsBaseURL + "/" + criminal.Photo
	}
	age := 0
	if criminal.Age != nil {
		age = *criminal.Age
	}
	return Row{
		ID:         criminal.ID,
		FirstName:  criminal.FirstName,
		MiddleName: criminal.MiddleName,
		LastName:   criminal.LastName,
		FaceColor:  criminal.FaceColor,
		HairColor:  criminal.HairColor,
		Height:     criminal.Height,
		BodyType:   criminal.BodyType,
		Age:        age,
		Gender:     criminal.Gender,
		FileNumber: criminal.FileNumber,
		PhotoURL:   photo,
		Source:     criminal,
	}
}

// Filters são os critérios combináveis da busca de procurados. Campos
// vazios não restringem.
type Filters struct {
	Query     string
	FaceColor string
	HairColor string
	Height    string
	BodyType  string
	Gender    string
	AgeRange  *AgeRange
}

// Empty informa se nenhum critério está ativo.
func (f Filters) Empty() bool {
	return f.Query == "" && f.FaceColor == "" && f.HairColor == "" &&
		f.Height == "" && f.BodyType == "" && f.Gender == "" && f.AgeRange == nil
}

// Matches aplica todos os critérios ativos em conjunção.
func (f Filters) Matches(r Row) bool {
	if !matchAttr(f.FaceColor, r.FaceColor) {
		return false
	}
	if !matchAttr(f.HairColor, r.HairColor) {
		return false
	}
	if !matchAttr(f.Height, r.Height) {
		return false
	}
	if !matchAttr(f.BodyType, r.BodyType) {
		return false
	}
	if !matchAttr(f.Gender, r.Gender) {
		return false
	}
	if f.AgeRange != nil {
		if r.Age < f.AgeRange.Min {
			return false
		}
		if f.AgeRange.Max > 0 && r.Age > f.AgeRange.Max {
			return false
		}
	}
	return r.matchesQuery(f.Query)
}

func matchAttr(filter, value string) bool {
	return filter == "" || strings.EqualFold(filter, value)
}

func (r Row) matchesQuery(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	fields := []string{
		strconv.FormatInt(r.ID, 10),
		r.FirstName, r.MiddleName, r.LastName, r.FileNumber,
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
