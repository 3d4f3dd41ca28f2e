// Package state содержит контейнеры состояния клиента: авторизация и заметки.
//
// Контейнер хранит результат последней операции (флаги загрузки, успеха,
// ошибки и сообщение) и её данные. Каждая операция публикует ровно одно
// уведомление pending и ровно одно уведомление с итогом (fulfilled или
// rejected). Подписчики получают копию состояния.
package state

import "sync"

// Phase: стадия операции в уведомлении.
type Phase int

const (
	Pending Phase = iota
	Fulfilled
	Rejected
	// Notice: уведомление без запроса (например, "нет изменений").
	Notice
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	case Notice:
		return "notice"
	default:
		return "unknown"
	}
}

// Event: уведомление подписчику.
type Event[S any] struct {
	Op    string
	Phase Phase
	State S
}

// observable хранит состояние S под мьютексом и рассылает изменения.
//
// Подписчики вызываются вне блокировки, в порядке подписки.
type observable[S any] struct {
	mu     sync.Mutex
	state  S
	clone  func(S) S
	nextID int
	subs   map[int]func(Event[S])
	order  []int
}

func newObservable[S any](initial S, clone func(S) S) *observable[S] {
	if clone == nil {
		clone = func(s S) S { return s }
	}
	return &observable[S]{state: initial, clone: clone, subs: map[int]func(Event[S]){}}
}

func (o *observable[S]) snapshot() S {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.clone(o.state)
}

func (o *observable[S]) subscribe(fn func(Event[S])) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := o.nextID
	o.nextID++
	o.subs[id] = fn
	o.order = append(o.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			delete(o.subs, id)
			for i, v := range o.order {
				if v == id {
					o.order = append(o.order[:i], o.order[i+1:]...)
					break
				}
			}
		})
	}
}

// update применяет mutate и рассылает уведомление.
func (o *observable[S]) update(op string, phase Phase, mutate func(*S)) {
	o.mu.Lock()
	mutate(&o.state)
	ev := Event[S]{Op: op, Phase: phase, State: o.clone(o.state)}
	fns := make([]func(Event[S]), 0, len(o.order))
	for _, id := range o.order {
		fns = append(fns, o.subs[id])
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
