package listview

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrSubmitInFlight indica submissão recusada por já existir uma em voo.
	ErrSubmitInFlight = errors.New("já existe uma submissão em andamento")
	// ErrFormClosed indica operação sobre formulário sem cópia preparada.
	ErrFormClosed = errors.New("formulário não está aberto")
)

// Form é o fluxo de mutação modal: prepara uma cópia local (modelo em
// branco para inclusão, linha selecionada para edição), acumula edições só
// na cópia e envia tudo em uma única requisição. Enquanto uma submissão
// está em voo, outra é recusada.
type Form[T any] struct {
	mu      sync.Mutex
	staged  *T
	busy    bool
	message string
}

// Open prepara a cópia local e limpa o erro anterior.
func (f *Form[T]) Open(initial T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	staged := initial
	f.staged = &staged
	f.message = ""
}

// Close descarta a cópia local.
func (f *Form[T]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.staged = nil
	f.busy = false
	f.message = ""
}

// Update aplica edições apenas à cópia local.
func (f *Form[T]) Update(mutate func(*T)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.staged == nil {
		return ErrFormClosed
	}
	mutate(f.staged)
	return nil
}

// Staged devolve a cópia local corrente.
func (f *Form[T]) Staged() (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.staged == nil {
		var zero T
		return zero, false
	}
	return *f.staged, true
}

// Message devolve o erro inline corrente.
func (f *Form[T]) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Submit valida a cópia local antes de qualquer requisição; falha de
// validação bloqueia o envio com mensagem inline. Em sucesso o formulário
// fecha e commit recebe o registro canônico para o enxerto na lista. Em
// falha o formulário permanece aberto com a cópia preservada e a mensagem
// do backend; nenhuma mutação parcial de lista ocorre.
func (f *Form[T]) Submit(
	ctx context.Context,
	validate func(T) error,
	send func(ctx context.Context, staged T) (T, error),
	commit func(T),
) error {
	f.mu.Lock()
	if f.staged == nil {
		f.mu.Unlock()
		return ErrFormClosed
	}
	if f.busy {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	staged := *f.staged

	if validate != nil {
		if err := validate(staged); err != nil {
			f.message = err.Error()
			f.mu.Unlock()
			return err
		}
	}

	f.busy = true
	f.message = ""
	f.mu.Unlock()

	result, err := send(ctx, staged)

	f.mu.Lock()
	f.busy = false
	if err != nil {
		f.message = err.Error()
		f.mu.Unlock()
		return err
	}
	f.staged = nil
	f.message = ""
	f.mu.Unlock()

	if commit != nil {
		commit(result)
	}
	return nil
}
