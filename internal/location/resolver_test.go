package location

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/urbanbyte/sentinela/internal/backend"
)

type stubTownResolver struct {
	infos map[int64]*backend.TownInfo
	err   error

	started chan struct{}
	release chan struct{}
}

func (s *stubTownResolver) ResolveTown(_ context.Context, townID int64) (*backend.TownInfo, error) {
	if s.started != nil {
		close(s.started)
		<-s.release
	}
	if s.err != nil {
		return nil, s.err
	}
	info, ok := s.infos[townID]
	if !ok {
		return nil, backend.ErrTownNotFound
	}
	return info, nil
}

func newStubTownResolver() *stubTownResolver {
	return &stubTownResolver{
		infos: map[int64]*backend.TownInfo{
			42: {TownID: 42, ZoneID: 4, RegionID: 1, TownName: "Cidade A", ZoneName: "Zona A", RegionName: "Norte"},
			77: {TownID: 77, ZoneID: 9, RegionID: 2, TownName: "Cidade B", ZoneName: "Zona B", RegionName: "Sul"},
		},
	}
}

func TestResolverResolvesChain(t *testing.T) {
	client := newStubTownResolver()
	r := NewResolver(client, zerolog.Nop())

	r.Resolve(context.Background(), 42)

	chain, ok := r.Chain()
	if !ok {
		t.Fatal("cadeia deveria estar resolvida")
	}
	if chain.ZoneID != 4 || chain.RegionID != 1 || chain.RegionName != "Norte" {
		t.Fatalf("cadeia inesperada: %+v", chain)
	}
}

func TestResolverFailureClearsChain(t *testing.T) {
	client := newStubTownResolver()
	r := NewResolver(client, zerolog.Nop())

	r.Resolve(context.Background(), 42)
	client.err = errors.New("backend fora do ar")
	r.Resolve(context.Background(), 77)

	if _, ok := r.Chain(); ok {
		t.Fatal("falha deveria deixar a cadeia como não resolvida, não manter a anterior")
	}
}

func TestResolverDiscardsLateResponse(t *testing.T) {
	client := newStubTownResolver()
	client.started = make(chan struct{})
	client.release = make(chan struct{})
	r := NewResolver(client, zerolog.Nop())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.Resolve(context.Background(), 42)
	}()

	<-client.started
	client.started = nil
	// a cidade governante muda antes da resposta anterior chegar
	r.Resolve(context.Background(), 77)
	close(client.release)
	wg.Wait()

	chain, ok := r.Chain()
	if !ok {
		t.Fatal("cadeia da cidade corrente deveria estar resolvida")
	}
	if chain.TownID != 77 {
		t.Fatalf("resposta atrasada sobrescreveu a cidade corrente: %+v", chain)
	}
}

func TestResolverZeroTownSkipsFetch(t *testing.T) {
	client := newStubTownResolver()
	r := NewResolver(client, zerolog.Nop())

	r.Resolve(context.Background(), 0)
	if _, ok := r.Chain(); ok {
		t.Fatal("cidade zero não deveria resolver cadeia")
	}
}
