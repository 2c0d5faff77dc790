package store

import (
	"context"
	"sync"

	"github.com/artzone/artzone-indexer/internal/store/schema"
)

// memoryStore is an in-memory Store used by tests and local development.
// Values are copied on the way in and out so callers never share state with
// the store.
type memoryStore struct {
	mu sync.Mutex

	tokens        map[string]schema.Token
	artzoneTokens map[string]schema.ArtzoneToken
	users         map[string]schema.User
	balances      map[string]schema.UserBalance
	transfers     map[string]schema.Transfer
	counters      map[string]uint64
	cursors       map[string]uint64
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() Store {
	return &memoryStore{
		tokens:        make(map[string]schema.Token),
		artzoneTokens: make(map[string]schema.ArtzoneToken),
		users:         make(map[string]schema.User),
		balances:      make(map[string]schema.UserBalance),
		transfers:     make(map[string]schema.Transfer),
		counters:      make(map[string]uint64),
		cursors:       make(map[string]uint64),
	}
}

func (s *memoryStore) GetToken(_ context.Context, id string) (*schema.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.tokens[id]
	if !ok {
		return nil, nil
	}
	return &token, nil
}

func (s *memoryStore) SaveToken(_ context.Context, token *schema.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[token.ID] = *token
	return nil
}

func (s *memoryStore) GetArtzoneToken(_ context.Context, id string) (*schema.ArtzoneToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.artzoneTokens[id]
	if !ok {
		return nil, nil
	}
	return &token, nil
}

func (s *memoryStore) SaveArtzoneToken(_ context.Context, token *schema.ArtzoneToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.artzoneTokens[token.ID] = *token
	return nil
}

func (s *memoryStore) GetUser(_ context.Context, id string) (*schema.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *memoryStore) SaveUser(_ context.Context, user *schema.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.ID] = *user
	return nil
}

func (s *memoryStore) GetUserBalance(_ context.Context, id string) (*schema.UserBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	balance, ok := s.balances[id]
	if !ok {
		return nil, nil
	}
	return &balance, nil
}

func (s *memoryStore) SaveUserBalance(_ context.Context, balance *schema.UserBalance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balances[balance.ID] = *balance
	return nil
}

func (s *memoryStore) GetTransfer(_ context.Context, id string) (*schema.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	transfer, ok := s.transfers[id]
	if !ok {
		return nil, nil
	}
	return &transfer, nil
}

func (s *memoryStore) SaveTransfer(_ context.Context, transfer *schema.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transfers[transfer.ID] = *transfer
	return nil
}

func (s *memoryStore) NextSequence(_ context.Context, name string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters[name]++
	return s.counters[name], nil
}

func (s *memoryStore) GetBlockCursor(_ context.Context, chain string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cursors[chain], nil
}

func (s *memoryStore) SetBlockCursor(_ context.Context, chain string, blockNumber uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cursors[chain] = blockNumber
	return nil
}
