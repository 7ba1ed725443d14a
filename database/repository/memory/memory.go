// Package memory provides an in-process implementation of every repository
// interface, honoring the same conditional-update contracts as the Mongo
// implementations. It backs the test suites for the saga protocols and
// serves as the store when no DATABASE_URL is configured.
package memory

import (
	"sync"

	"fixhub/models"
)

// Store holds all records behind one mutex. Each conditional method checks
// its precondition and mutates under the same lock, which is the in-process
// equivalent of a single atomic guarded update.
type Store struct {
	mu        sync.Mutex
	requests  map[string]*models.ServiceRequest
	clients   map[string]*models.Client
	providers map[string]*models.Provider
	ledger    []models.Transaction
	reviews   []models.Review
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		requests:  make(map[string]*models.ServiceRequest),
		clients:   make(map[string]*models.Client),
		providers: make(map[string]*models.Provider),
	}
}

// Requests returns the store's RequestRepository view.
func (s *Store) Requests() *RequestRepo { return &RequestRepo{s: s} }

// Accounts returns the store's AccountRepository view.
func (s *Store) Accounts() *AccountRepo { return &AccountRepo{s: s} }

// Transactions returns the store's TransactionRepository view.
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{s: s} }

// Reviews returns the store's ReviewRepository view.
func (s *Store) Reviews() *ReviewRepo { return &ReviewRepo{s: s} }

func cloneRequest(req *models.ServiceRequest) *models.ServiceRequest {
	c := *req
	return &c
}
