package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/solar-epc-api/internal/domain"
	"github.com/jhoicas/solar-epc-api/internal/domain/entity"
	"github.com/jhoicas/solar-epc-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository  = (*CompanyRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.ItemRepository     = (*ItemRepo)(nil)
)

// ── Companies ─────────────────────────────────────────────────────────────────

// CompanyRepo empresas en memoria.
type CompanyRepo struct{ s *Store }

// Companies repositorio de empresas.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s: s} }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.companies {
		if c.GSTIN != "" && strings.EqualFold(existing.GSTIN, c.GSTIN) {
			return domain.ErrDuplicate
		}
	}
	r.s.data.companies[c.ID] = *c
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.data.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CompanyRepo) GetByGSTIN(_ context.Context, gstin string) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.data.companies {
		if strings.EqualFold(c.GSTIN, gstin) {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.data.companies[c.ID] = *c
	return nil
}

func (r *CompanyRepo) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Company, 0, len(r.s.data.companies))
	for _, c := range r.s.data.companies {
		c := c
		list = append(list, &c)
	}
	newestFirst(list, func(c *entity.Company) time.Time { return c.CreatedAt }, func(c *entity.Company) string { return c.ID })
	return page(list, limit, offset), nil
}

// ── Users ─────────────────────────────────────────────────────────────────────

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.data.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.data.users[u.ID] = *u
	return nil
}

func (r *UserRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.User
	for _, u := range r.s.data.users {
		if u.CompanyID == companyID {
			u := u
			list = append(list, &u)
		}
	}
	newestFirst(list, func(u *entity.User) time.Time { return u.CreatedAt }, func(u *entity.User) string { return u.ID })
	return page(list, limit, offset), nil
}

// ── Customers ─────────────────────────────────────────────────────────────────

// CustomerRepo clientes en memoria.
type CustomerRepo struct{ s *Store }

// Customers repositorio de clientes.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.data.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CustomerRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Customer
	for _, c := range r.s.data.customers {
		if c.CompanyID == companyID {
			c := c
			list = append(list, &c)
		}
	}
	newestFirst(list, func(c *entity.Customer) time.Time { return c.CreatedAt }, func(c *entity.Customer) string { return c.ID })
	return page(list, limit, offset), nil
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.data.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, q := range r.s.data.quotations {
		if q.CustomerID == id {
			return domain.ErrConflict
		}
	}
	for _, inv := range r.s.data.invoices {
		if inv.CustomerID == id {
			return domain.ErrConflict
		}
	}
	for _, p := range r.s.data.projects {
		if p.CustomerID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.data.customers, id)
	return nil
}

// ── Items ─────────────────────────────────────────────────────────────────────

// ItemRepo artículos en memoria.
type ItemRepo struct{ s *Store }

// Items repositorio de artículos.
func (s *Store) Items() *ItemRepo { return &ItemRepo{s: s} }

func (r *ItemRepo) Create(_ context.Context, it *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.items {
		if existing.CompanyID == it.CompanyID && strings.EqualFold(existing.SKU, it.SKU) {
			return domain.ErrDuplicate
		}
	}
	r.s.data.items[it.ID] = *it
	return nil
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.data.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

// GetForUpdate igual que GetByID: las transacciones en memoria ya están serializadas.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepo) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, it := range r.s.data.items {
		if it.CompanyID == companyID && strings.EqualFold(it.SKU, sku) {
			it := it
			return &it, nil
		}
	}
	return nil, nil
}

func (r *ItemRepo) Update(_ context.Context, it *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.data.items[it.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *it
	updated.CurrentStock = current.CurrentStock
	updated.PurchasePrice = current.PurchasePrice
	r.s.data.items[it.ID] = updated
	return nil
}

func (r *ItemRepo) UpdateStock(_ context.Context, itemID string, currentStock, purchasePrice decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.data.items[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	it.CurrentStock = currentStock
	it.PurchasePrice = purchasePrice
	it.UpdatedAt = time.Now()
	r.s.data.items[itemID] = it
	return nil
}

func (r *ItemRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Item
	for _, it := range r.s.data.items {
		if it.CompanyID == companyID {
			it := it
			list = append(list, &it)
		}
	}
	newestFirst(list, func(i *entity.Item) time.Time { return i.CreatedAt }, func(i *entity.Item) string { return i.ID })
	return page(list, limit, offset), nil
}

func (r *ItemRepo) ListBelowReorder(_ context.Context, companyID string) ([]*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Item
	for _, it := range r.s.data.items {
		if it.CompanyID == companyID && it.BelowReorder() {
			it := it
			list = append(list, &it)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		di := list[i].ReorderLevel.Sub(list[i].CurrentStock)
		dj := list[j].ReorderLevel.Sub(list[j].CurrentStock)
		if !di.Equal(dj) {
			return di.GreaterThan(dj)
		}
		return list[i].SKU < list[j].SKU
	})
	return list, nil
}

// Delete igual que la clave foránea en PostgreSQL: con entradas en el libro mayor o
// líneas de cotizaciones o facturas devuelve ErrConflict.
func (r *ItemRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.data.ledger {
		if e.ItemID == id {
			return domain.ErrConflict
		}
	}
	for _, q := range r.s.data.quotations {
		if referencesItem(q.Lines, id) {
			return domain.ErrConflict
		}
	}
	for _, inv := range r.s.data.invoices {
		if referencesItem(inv.Lines, id) {
			return domain.ErrConflict
		}
	}
	delete(r.s.data.items, id)
	return nil
}

func referencesItem(lines []entity.DocumentLine, itemID string) bool {
	for _, l := range lines {
		if l.ItemID == itemID {
			return true
		}
	}
	return false
}
