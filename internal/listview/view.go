package listview

import (
	"context"
	"sync"
)

// View mantém uma lista buscada por escopo e a projeção filtrada dela.
// A lista "original" é a autoridade em memória; "visible" é derivada pela
// aplicação do filtro corrente e nunca dispara nova consulta ao backend.
type View[T any] struct {
	mu       sync.Mutex
	id       func(T) string
	scope    string
	gen      uint64
	original []T
	visible  []T
	filter   func(T) bool
	loading  bool
	message  string
}

// NewView cria a visão vazia; id extrai o identificador usado em
// substituições otimistas.
func NewView[T any](id func(T) string) *View[T] {
	return &View[T]{id: id}
}

// Load troca o escopo e busca a lista. Original e visible são zeradas
// antes de a busca resolver, para nunca exibir linhas de outro escopo
// durante o carregamento; respostas de um escopo que já mudou são
// descartadas.
func (v *View[T]) Load(ctx context.Context, scope string, fetch func(ctx context.Context) ([]T, error)) {
	v.mu.Lock()
	v.scope = scope
	v.gen++
	gen := v.gen
	v.original = nil
	v.visible = nil
	v.message = ""
	v.loading = true
	v.mu.Unlock()

	items, err := fetch(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.gen != gen {
		// o escopo mudou enquanto a busca estava em voo
		return
	}

	v.loading = false
	if err != nil {
		v.original = nil
		v.visible = nil
		v.message = err.Error()
		return
	}

	v.original = items
	v.visible = v.applyFilter(items)
}

// Reset limpa as listas e troca o escopo sem disparar busca, invalidando
// qualquer resposta em voo. Usado quando o identificador de escopo ainda
// não está disponível e a busca deve ser pulada.
func (v *View[T]) Reset(scope string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.scope = scope
	v.gen++
	v.original = nil
	v.visible = nil
	v.loading = false
	v.message = ""
}

// SetFilter troca o predicado e rederiva visible a partir de original.
func (v *View[T]) SetFilter(pred func(T) bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.filter = pred
	v.visible = v.applyFilter(v.original)
}

// ClearFilter restaura visible para igualar original, sem consulta.
func (v *View[T]) ClearFilter() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.filter = nil
	v.visible = append([]T(nil), v.original...)
}

// Append acrescenta o registro confirmado pela mutação e reaplica o
// filtro corrente, sem repetir a última busca.
func (v *View[T]) Append(item T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.original = append(v.original, item)
	v.visible = v.applyFilter(v.original)
}

// ReplaceByID substitui no lugar o registro de mesmo identificador,
// preservando tamanho e ordem da lista, e reaplica o filtro corrente.
func (v *View[T]) ReplaceByID(id string, item T) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i := range v.original {
		if v.id(v.original[i]) == id {
			v.original[i] = item
			v.visible = v.applyFilter(v.original)
			return true
		}
	}
	return false
}

// Visible devolve uma cópia da projeção filtrada.
func (v *View[T]) Visible() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]T(nil), v.visible...)
}

// Original devolve uma cópia da lista completa do escopo corrente.
func (v *View[T]) Original() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]T(nil), v.original...)
}

// Scope devolve o escopo corrente.
func (v *View[T]) Scope() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scope
}

// State expõe carregamento e a mensagem de erro da última busca, para a
// visão distinguir "carregando", "vazio" e "erro".
func (v *View[T]) State() (loading bool, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading, v.message
}

func (v *View[T]) applyFilter(items []T) []T {
	if v.filter == nil {
		return append([]T(nil), items...)
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if v.filter(item) {
			out = append(out, item)
		}
	}
	return out
}
