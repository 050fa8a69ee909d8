package cascade

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/urbanbyte/sentinela/internal/backend"
)

// Rank identifica um nível do seletor dependente.
type Rank int

const (
	RankRegion Rank = iota
	RankZone
	RankTown
	rankCount
)

// Phase é o estado de um nível do seletor.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseError
)

// Level é o retrato de um nível: fase, opções válidas para o pai corrente,
// valor escolhido e mensagem de erro quando houver.
type Level struct {
	Phase    Phase            `json:"phase"`
	Options  []backend.Option `json:"options"`
	Selected int64            `json:"selected"`
	Message  string           `json:"message,omitempty"`
}

// OptionSource fornece as listas dependentes de cada nível.
type OptionSource interface {
	Regions(ctx context.Context) ([]backend.Option, error)
	Zones(ctx context.Context, regionID int64) ([]backend.Option, error)
	Towns(ctx context.Context, zoneID int64) ([]backend.Option, error)
}

// Selector é o seletor região→zona→cidade. Escolher um valor em um nível
// invalida imediatamente todos os níveis descendentes e dispara a busca das
// opções do nível seguinte; respostas que chegam depois de o pai mudar de
// novo são descartadas.
type Selector struct {
	mu     sync.Mutex
	source OptionSource
	logger zerolog.Logger
	levels [rankCount]Level
	// geração por nível: incrementada sempre que o pai daquele nível muda,
	// capturada no disparo da busca e conferida antes de gravar o resultado
	gen [rankCount]uint64
}

// NewSelector cria o seletor com todos os níveis vazios.
func NewSelector(source OptionSource, logger zerolog.Logger) *Selector {
	return &Selector{source: source, logger: logger}
}

// LoadRegions popula o nível raiz.
func (s *Selector) LoadRegions(ctx context.Context) {
	s.mu.Lock()
	s.resetFrom(RankRegion)
	s.levels[RankRegion].Phase = PhaseLoading
	gen := s.gen[RankRegion]
	s.mu.Unlock()

	options, err := s.source.Regions(ctx)
	s.commit(RankRegion, gen, options, err)
}

// Select registra a escolha em um nível: limpa todos os níveis mais
// profundos antes de qualquer busca e só então dispara a carga do nível
// seguinte, escopada pelo valor recém-escolhido.
func (s *Selector) Select(ctx context.Context, rank Rank, value int64) {
	if rank < RankRegion || rank >= rankCount {
		return
	}

	s.mu.Lock()
	if s.levels[rank].Phase != PhaseLoaded || !s.hasOption(rank, value) {
		s.mu.Unlock()
		return
	}
	s.levels[rank].Selected = value
	child := rank + 1
	if child >= rankCount {
		s.mu.Unlock()
		return
	}
	s.resetFrom(child)
	s.levels[child].Phase = PhaseLoading
	gen := s.gen[child]
	s.mu.Unlock()

	var (
		options []backend.Option
		err     error
	)
	switch child {
	case RankZone:
		options, err = s.source.Zones(ctx, value)
	case RankTown:
		options, err = s.source.Towns(ctx, value)
	}
	s.commit(child, gen, options, err)
}

// ClearSelection desfaz a escolha de um nível; equivale a selecionar
// "nenhum valor": os descendentes são limpos e nenhuma busca é disparada.
func (s *Selector) ClearSelection(rank Rank) {
	if rank < RankRegion || rank >= rankCount {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.levels[rank].Selected = 0
	if rank+1 < rankCount {
		s.resetFrom(rank + 1)
	}
}

// commit grava o resultado de uma busca, descartando-o se o pai tiver
// mudado desde o disparo.
func (s *Selector) commit(rank Rank, gen uint64, options []backend.Option, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen[rank] != gen {
		// o pai mudou enquanto a busca estava em voo
		return
	}

	if err != nil {
		s.logger.Warn().Err(err).Int("rank", int(rank)).Msg("falha ao carregar opções do seletor")
		s.levels[rank] = Level{Phase: PhaseError, Message: err.Error()}
		return
	}
	s.levels[rank] = Level{Phase: PhaseLoaded, Options: options}
}

// resetFrom zera o nível informado e todos os mais profundos, invalidando
// buscas em voo desses níveis.
func (s *Selector) resetFrom(rank Rank) {
	for r := rank; r < rankCount; r++ {
		s.levels[r] = Level{Phase: PhaseEmpty}
		s.gen[r]++
	}
}

func (s *Selector) hasOption(rank Rank, value int64) bool {
	for _, option := range s.levels[rank].Options {
		if option.ID == value {
			return true
		}
	}
	return false
}

// Snapshot devolve uma cópia dos três níveis para renderização.
func (s *Selector) Snapshot() [3]Level {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out [3]Level
	for r := RankRegion; r < rankCount; r++ {
		level := s.levels[r]
		level.Options = append([]backend.Option(nil), level.Options...)
		out[r] = level
	}
	return out
}

// Complete indica o estado terminal: os três níveis carregados e com um
// valor escolhido em cada. Só nesse estado uma submissão dependente é
// permitida.
func (s *Selector) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completeLocked()
}

func (s *Selector) completeLocked() bool {
	for r := RankRegion; r < rankCount; r++ {
		if s.levels[r].Phase != PhaseLoaded || s.levels[r].Selected == 0 {
			return false
		}
	}
	return true
}

// Selection devolve os três ids escolhidos; ok falso fora do estado terminal.
// A checagem e a leitura acontecem sob o mesmo lock para que os ids nunca
// reflitam uma seleção desfeita no meio da chamada.
func (s *Selector) Selection() (regionID, zoneID, townID int64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.completeLocked() {
		return 0, 0, 0, false
	}
	return s.levels[RankRegion].Selected, s.levels[RankZone].Selected, s.levels[RankTown].Selected, true
}
