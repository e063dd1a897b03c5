// Package cart implements the client-local shopping cart: one persisted
// line item per product id, with change notification and graceful
// persistence degradation.
package cart

import (
	"github.com/greenhaven-store/greenhaven/internal/clientstore"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// maxEvictAttempts bounds how many oldest entries are dropped while trying
// to fit the cart back into a full durable store.
const maxEvictAttempts = 5

// Item is one product-and-quantity pair with its pricing snapshot.
type Item struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
}

// Store manages the persisted cart. Operations are atomic from the
// caller's perspective and notify same-process subscribers on every change.
// Concurrent access from other processes is last-write-wins through the
// underlying client store.
type Store struct {
	cs   *clientstore.Store
	warn func(string)
}

func NewStore(cs *clientstore.Store) *Store {
	return &Store{
		cs: cs,
		warn: func(msg string) {
			zap.L().Warn(msg)
		},
	}
}

// SetWarnHandler routes user-visible persistence warnings, e.g. to a UI
// toast instead of the log.
func (s *Store) SetWarnHandler(fn func(string)) {
	if fn != nil {
		s.warn = fn
	}
}

// Items returns the current line items. Absent or corrupt storage yields an
// empty cart.
func (s *Store) Items() []Item {
	var items []Item
	_ = s.cs.Get(clientstore.KeyCart, &items)
	if items == nil {
		return []Item{}
	}
	return items
}

// ItemCount returns the total quantity across all line items.
func (s *Store) ItemCount() int {
	n := 0
	for _, item := range s.Items() {
		n += item.Quantity
	}
	return n
}

// Totals returns the priced cart including the flat transport fee.
func (s *Store) Totals() Totals {
	return TotalsWithTransport(s.Items())
}

// Add puts one unit of the product into the cart, incrementing the quantity
// when a line item for the same product already exists.
func (s *Store) Add(product Item) {
	items := s.Items()
	found := false
	for i := range items {
		if items[i].ID == product.ID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		product.Quantity = 1
		items = append(items, product)
	}
	s.persist(items)
}

// Remove deletes the line item for the product id. Absent ids are a no-op.
func (s *Store) Remove(productID int64) {
	items := s.Items()
	out := items[:0]
	for _, item := range items {
		if item.ID != productID {
			out = append(out, item)
		}
	}
	s.persist(out)
}

// UpdateQuantity sets the quantity of the product's line item. A quantity
// of zero or less removes the entry. Unknown ids are a no-op.
func (s *Store) UpdateQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		s.Remove(productID)
		return
	}
	items := s.Items()
	for i := range items {
		if items[i].ID == productID {
			items[i].Quantity = quantity
			s.persist(items)
			return
		}
	}
}

// Clear empties the cart; used after successful order placement.
func (s *Store) Clear() {
	_ = s.cs.Delete(clientstore.KeyCart)
}

// Subscribe registers fn to run after every cart change in this process.
func (s *Store) Subscribe(fn func()) error {
	return s.cs.Subscribe(clientstore.KeyCart, fn)
}

// persist writes the cart back with best-effort degradation: a full durable
// store triggers bounded oldest-first eviction, then the non-durable
// fallback tier, then a warned no-op.
func (s *Store) persist(items []Item) {
	err := s.cs.Put(clientstore.KeyCart, items)
	attempts := 0
	for errors.Is(err, clientstore.ErrQuotaExceeded) && attempts < maxEvictAttempts && len(items) > 1 {
		items = items[1:]
		attempts++
		err = s.cs.Put(clientstore.KeyCart, items)
	}
	if err == nil {
		return
	}
	if verr := s.cs.PutVolatile(clientstore.KeyCart, items); verr != nil {
		s.warn("Votre panier n'a pas pu être sauvegardé.")
		return
	}
	s.warn("Stockage plein : panier conservé temporairement pour cette session.")
}
