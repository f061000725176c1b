// Package memory implementación en proceso de los repositorios y del TxRunner.
// Se usa en tests de casos de uso y para levantar la API sin PostgreSQL (DB_DRIVER=memory).
// Las transacciones se serializan y el rollback restaura una copia del estado previo.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/solar-epc-api/internal/application/ports"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

// Store estado en memoria compartido por todos los repositorios.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data *dataset
}

type dataset struct {
	companies  map[string]entity.Company
	users      map[string]entity.User
	customers  map[string]entity.Customer
	items      map[string]entity.Item
	ledger     []entity.StockLedgerEntry
	ledgerSeq  int64
	quotations map[string]entity.Quotation
	invoices   map[string]entity.Invoice
	projects   map[string]entity.Project
	payments   []entity.Payment
	series     map[string]int64
}

// New crea un store vacío.
func New() *Store {
	return &Store{data: &dataset{
		companies:  map[string]entity.Company{},
		users:      map[string]entity.User{},
		customers:  map[string]entity.Customer{},
		items:      map[string]entity.Item{},
		quotations: map[string]entity.Quotation{},
		invoices:   map[string]entity.Invoice{},
		projects:   map[string]entity.Project{},
		series:     map[string]int64{},
	}}
}

// clone copia superficial de mapas y slices. Los valores guardados nunca se mutan en
// sitio (los repos reemplazan la entrada completa), así que compartirlos es seguro.
func (d *dataset) clone() *dataset {
	c := &dataset{
		companies:  make(map[string]entity.Company, len(d.companies)),
		users:      make(map[string]entity.User, len(d.users)),
		customers:  make(map[string]entity.Customer, len(d.customers)),
		items:      make(map[string]entity.Item, len(d.items)),
		ledger:     append([]entity.StockLedgerEntry(nil), d.ledger...),
		ledgerSeq:  d.ledgerSeq,
		quotations: make(map[string]entity.Quotation, len(d.quotations)),
		invoices:   make(map[string]entity.Invoice, len(d.invoices)),
		projects:   make(map[string]entity.Project, len(d.projects)),
		payments:   append([]entity.Payment(nil), d.payments...),
		series:     make(map[string]int64, len(d.series)),
	}
	for k, v := range d.companies {
		c.companies[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.customers {
		c.customers[k] = v
	}
	for k, v := range d.items {
		c.items[k] = v
	}
	for k, v := range d.quotations {
		c.quotations[k] = v
	}
	for k, v := range d.invoices {
		c.invoices[k] = v
	}
	for k, v := range d.projects {
		c.projects[k] = v
	}
	for k, v := range d.series {
		c.series[k] = v
	}
	return c
}

// Run ejecuta fn con los repositorios del store. Si fn falla se restaura el estado previo.
func (s *Store) Run(_ context.Context, fn func(repos repository.TxRepositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(s.Repositories()); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// Repositories todos los repositorios sobre este store.
func (s *Store) Repositories() repository.TxRepositories {
	return repository.TxRepositories{
		Companies:  s.Companies(),
		Customers:  s.Customers(),
		Items:      s.Items(),
		Ledger:     s.Ledger(),
		Quotations: s.Quotations(),
		Invoices:   s.Invoices(),
		Projects:   s.Projects(),
		Payments:   s.Payments(),
		Series:     s.Series(),
	}
}

// newestFirst ordena por CreatedAt descendente (empate por ID).
func newestFirst[T any](list []T, createdAt func(T) time.Time, id func(T) string) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := createdAt(list[i]), createdAt(list[j])
		if !a.Equal(b) {
			return a.After(b)
		}
		return id(list[i]) < id(list[j])
	})
}

func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
