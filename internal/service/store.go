package service

import (
	"sync"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/reducer"
)

// Store owns one session state and applies actions to it one at a time.
type Store struct {
	mu     sync.Mutex
	state  model.SessionState
	logger *logger.Logger
}

func NewStore(logger *logger.Logger) *Store {
	return &Store{state: model.NewSessionState(), logger: logger}
}

// Dispatch applies action and returns a copy of the resulting state.
func (s *Store) Dispatch(action reducer.Action) (model.SessionState, []reducer.Warning) {
	return s.DispatchFunc(func(model.SessionState) reducer.Action { return action })
}

// DispatchFunc builds the action from the current state and applies it
// without letting another dispatch run in between.
func (s *Store) DispatchFunc(build func(current model.SessionState) reducer.Action) (model.SessionState, []reducer.Warning) {
	s.mu.Lock()
	defer s.mu.Unlock()

	action := build(s.state.Clone())
	next, warnings := reducer.Transition(s.state, action)
	s.state = next

	for _, w := range warnings {
		s.logger.Warn("Store: "+w.Message,
			"action", w.Action)
	}
	return next.Clone(), warnings
}

// State returns a copy of the current state.
func (s *Store) State() model.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subtotal sums the current basket.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reducer.Subtotal(s.state.Basket)
}
