package location

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/urbanbyte/sentinela/internal/backend"
)

// Chain é a cadeia de ancestrais resolvida para uma cidade.
type Chain struct {
	TownID     int64  `json:"townId"`
	ZoneID     int64  `json:"zoneId"`
	RegionID   int64  `json:"regionId"`
	TownName   string `json:"townName"`
	ZoneName   string `json:"zoneName"`
	RegionName string `json:"regionName"`
}

// TownResolver consulta o backend pela cadeia de ancestrais.
type TownResolver interface {
	ResolveTown(ctx context.Context, townID int64) (*backend.TownInfo, error)
}

// Resolver resolve e guarda a última cadeia de ancestrais. O cache tem
// entrada única: trocar a cidade governante invalida o resultado anterior.
//
// A resolução não é segura contra corridas por si só: se a cidade mudar
// antes da resposta anterior chegar, o resultado atrasado é descartado
// comparando a cidade capturada no disparo com a corrente.
type Resolver struct {
	mu      sync.Mutex
	client  TownResolver
	logger  zerolog.Logger
	current int64
	chain   *Chain
}

// NewResolver cria o resolvedor sem cadeia resolvida.
func NewResolver(client TownResolver, logger zerolog.Logger) *Resolver {
	return &Resolver{client: client, logger: logger}
}

// Resolve busca a cadeia da cidade informada. Em falha, o cache é limpo
// para o estado "não resolvido" explícito em vez de manter dados velhos.
func (r *Resolver) Resolve(ctx context.Context, townID int64) {
	r.mu.Lock()
	r.current = townID
	r.chain = nil
	r.mu.Unlock()

	if townID == 0 {
		return
	}

	info, err := r.client.ResolveTown(ctx, townID)

	r.mu.Lock()
	defer r.mu.Unlock()

	// descarta resposta atrasada de uma cidade que já não governa o estado
	if r.current != townID {
		return
	}

	if err != nil {
		r.logger.Warn().Err(err).Int64("town_id", townID).Msg("falha ao resolver cadeia de localização")
		r.chain = nil
		return
	}

	r.chain = &Chain{
		TownID:     info.TownID,
		ZoneID:     info.ZoneID,
		RegionID:   info.RegionID,
		TownName:   info.TownName,
		ZoneName:   info.ZoneName,
		RegionName: info.RegionName,
	}
}

// Chain devolve a cadeia corrente; ok falso significa "não resolvido" e as
// visões dependentes devem pular buscas escopadas em vez de usar ids vazios.
func (r *Resolver) Chain() (Chain, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.chain == nil {
		return Chain{}, false
	}
	return *r.chain, true
}
