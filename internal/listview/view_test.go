package listview

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

type item struct {
	ID   string
	Name string
}

func newItemView() *View[item] {
	return NewView[item](func(i item) string { return i.ID })
}

func loadItems(v *View[item], scope string, items []item) {
	v.Load(context.Background(), scope, func(context.Context) ([]item, error) {
		return items, nil
	})
}

func TestViewFilterIsSubsetAndClearRestores(t *testing.T) {
	v := newItemView()
	loadItems(v, "town:5", []item{{"1", "Ana"}, {"2", "Bruno"}, {"3", "Anita"}})

	v.SetFilter(func(i item) bool { return strings.HasPrefix(i.Name, "An") })
	if got := v.Visible(); len(got) != 2 {
		t.Fatalf("filtro deveria manter 2 linhas, manteve %d", len(got))
	}
	if got := v.Original(); len(got) != 3 {
		t.Fatalf("original não pode encolher com filtro: %d", len(got))
	}

	v.ClearFilter()
	if got := v.Visible(); len(got) != 3 {
		t.Fatalf("limpar o filtro deveria restaurar a lista: %d", len(got))
	}
}

func TestViewLoadClearsBeforeFetchResolves(t *testing.T) {
	v := newItemView()
	loadItems(v, "town:5", []item{{"1", "Ana"}})

	started := make(chan struct{})
	release := make(chan struct{})
	go v.Load(context.Background(), "town:6", func(context.Context) ([]item, error) {
		close(started)
		<-release
		return []item{{"9", "Zeca"}}, nil
	})

	<-started
	if got := v.Visible(); len(got) != 0 {
		t.Fatalf("linhas do escopo anterior visíveis durante a carga: %+v", got)
	}
	if loading, _ := v.State(); !loading {
		t.Fatal("deveria estar carregando")
	}
	close(release)
}

func TestViewDiscardsStaleLoad(t *testing.T) {
	v := newItemView()

	started := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		v.Load(context.Background(), "town:5", func(context.Context) ([]item, error) {
			close(started)
			<-release
			return []item{{"1", "Velho"}}, nil
		})
	}()

	<-started
	loadItems(v, "town:6", []item{{"2", "Novo"}})
	close(release)
	wg.Wait()

	got := v.Visible()
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("resposta atrasada não deveria sobrescrever o escopo novo: %+v", got)
	}
	if v.Scope() != "town:6" {
		t.Fatalf("escopo inesperado: %s", v.Scope())
	}
}

func TestViewLoadErrorClearsRows(t *testing.T) {
	v := newItemView()
	loadItems(v, "town:5", []item{{"1", "Ana"}})

	v.Load(context.Background(), "town:5", func(context.Context) ([]item, error) {
		return nil, errors.New("backend fora do ar")
	})

	if got := v.Visible(); len(got) != 0 {
		t.Fatalf("falha de carga deveria limpar as linhas: %+v", got)
	}
	if _, message := v.State(); message == "" {
		t.Fatal("mensagem de erro deveria estar preenchida")
	}
}

func TestViewAppendAndReplacePreserveOrder(t *testing.T) {
	v := newItemView()
	loadItems(v, "town:5", []item{{"1", "Ana"}, {"2", "Bruno"}})

	v.Append(item{"3", "Caio"})
	if got := v.Original(); len(got) != 3 || got[2].ID != "3" {
		t.Fatalf("append deveria adicionar exatamente uma linha no fim: %+v", got)
	}

	if !v.ReplaceByID("2", item{"2", "Breno"}) {
		t.Fatal("substituição deveria encontrar a linha")
	}
	got := v.Original()
	if got[1].Name != "Breno" {
		t.Fatalf("linha não substituída no lugar: %+v", got)
	}
	if got[0].ID != "1" || got[2].ID != "3" {
		t.Fatalf("ordem deveria ser preservada: %+v", got)
	}

	if v.ReplaceByID("99", item{"99", "X"}) {
		t.Fatal("substituição de id ausente não deveria reportar sucesso")
	}
}

func TestViewResetSkipsFetch(t *testing.T) {
	v := newItemView()
	loadItems(v, "town:5", []item{{"1", "Ana"}})

	v.Reset("zone:?")
	if got := v.Visible(); len(got) != 0 {
		t.Fatalf("reset deveria limpar as linhas: %+v", got)
	}
	if loading, _ := v.State(); loading {
		t.Fatal("reset não dispara carga")
	}
}
