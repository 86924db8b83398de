// Package cartstore owns the per-shopper view of a cart. The store mediates
// between the UI-facing handlers, the shopping cart service, and the realtime
// channel; its snapshot is only ever replaced wholesale by service responses
// or pushed snapshots (last write wins, no merging).
package cartstore

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"skishop-bff/internal/domain"
)

// CartService is the slice of the cart service client the store uses.
type CartService interface {
	GetOrCreateBySession(ctx context.Context, sessionID string) (*domain.Cart, error)
	GetOrCreateByCustomer(ctx context.Context, customerID string) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID string, in domain.AddItemInput) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, cartID, sku string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, cartID, sku string) (*domain.Cart, error)
	Clear(ctx context.Context, cartID string) error
	Validate(ctx context.Context, cartID string) (*domain.CartValidation, error)
	MergeGuestCart(ctx context.Context, guestCartID, customerID string) (*domain.Cart, error)
}

// ProductCatalog supplies the product snapshot denormalized into add requests.
type ProductCatalog interface {
	ProductByID(ctx context.Context, productID string) (*domain.Product, error)
}

// IdentityStore persists the narrow identity slice (cart, session, customer
// ids) across visits.
type IdentityStore interface {
	Get(ctx context.Context, deviceID string) (*domain.ShopperIdentity, error)
	Save(ctx context.Context, identity domain.ShopperIdentity) error
}

// Channel is the store's handle on one realtime connection.
type Channel interface {
	Connect()
	Disconnect()
}

// ChannelEvents are the store callbacks a channel reports into. They may be
// invoked from any goroutine.
type ChannelEvents struct {
	OnCartUpdate func(domain.Cart)
	OnError      func(message string)
	OnConnect    func()
	OnDisconnect func()
}

// ChannelFactory builds a realtime channel scoped to one cart id.
type ChannelFactory func(cartID string, events ChannelEvents) Channel

// Store holds one shopper's cart state. All remote failures are converted to
// a stored error message; no method returns an error to its caller.
type Store struct {
	deviceID string
	carts    CartService
	catalog  ProductCatalog
	identity IdentityStore
	channels ChannelFactory
	logger   *log.Logger

	mu         sync.Mutex
	cart       *domain.Cart
	sessionID  string
	customerID string
	errMsg     string
	loading    bool
	channel    Channel
	connected  bool
	gen        int
}

func newStore(deviceID string, carts CartService, catalog ProductCatalog, identity IdentityStore, channels ChannelFactory, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		deviceID: deviceID,
		carts:    carts,
		catalog:  catalog,
		identity: identity,
		channels: channels,
		logger:   logger,
	}
}

func newSessionID() string {
	return fmt.Sprintf("session-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// Initialize resolves a cart by customer id when set, else by session id.
// Fails soft: on error the message is recorded and the cart stays nil.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initializeLocked(ctx)
}

func (s *Store) initializeLocked(ctx context.Context) {
	s.loading = true
	s.errMsg = ""

	var (
		cart *domain.Cart
		err  error
	)
	if s.customerID != "" {
		cart, err = s.carts.GetOrCreateByCustomer(ctx, s.customerID)
	} else {
		if s.sessionID == "" {
			s.sessionID = newSessionID()
		}
		cart, err = s.carts.GetOrCreateBySession(ctx, s.sessionID)
	}
	if err != nil {
		s.fail("could not initialize cart", err)
		return
	}

	s.cart = cart
	s.loading = false
	s.saveIdentityLocked(ctx)
	s.connectLocked()
}

// AddItem fetches the product and sends a denormalized add request. A missing
// cart triggers one initialization before the add; on failure the prior
// snapshot stays untouched.
func (s *Store) AddItem(ctx context.Context, productID, sku string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart == nil {
		s.initializeLocked(ctx)
		if s.cart == nil {
			return
		}
	}

	s.loading = true
	s.errMsg = ""

	product, err := s.catalog.ProductByID(ctx, productID)
	if err != nil {
		s.fail("could not add item to cart", err)
		return
	}

	in := domain.AddItemInput{
		ProductID:   productID,
		SKU:         sku,
		ProductName: product.Name,
		UnitPrice:   product.CurrentPrice,
		Quantity:    quantity,
		Options:     map[string]interface{}{},
	}
	if len(product.ImageURLs) > 0 {
		in.ProductImageURL = product.ImageURLs[0]
	}

	cart, err := s.carts.AddItem(ctx, s.cart.CartID, in)
	if err != nil {
		s.fail("could not add item to cart", err)
		return
	}

	s.cart = cart
	s.loading = false
	s.saveIdentityLocked(ctx)
	s.connectLocked()
}

// RemoveItem deletes the line for sku. No-op without a cart.
func (s *Store) RemoveItem(ctx context.Context, sku string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return
	}
	s.removeItemLocked(ctx, sku)
}

func (s *Store) removeItemLocked(ctx context.Context, sku string) {
	s.loading = true
	s.errMsg = ""

	cart, err := s.carts.RemoveItem(ctx, s.cart.CartID, sku)
	if err != nil {
		s.fail("could not remove item from cart", err)
		return
	}
	s.cart = cart
	s.loading = false
}

// UpdateQuantity changes a line's quantity; quantity <= 0 removes the line.
// No-op without a cart.
func (s *Store) UpdateQuantity(ctx context.Context, sku string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return
	}
	if quantity <= 0 {
		s.removeItemLocked(ctx, sku)
		return
	}

	s.loading = true
	s.errMsg = ""

	cart, err := s.carts.UpdateQuantity(ctx, s.cart.CartID, sku, quantity)
	if err != nil {
		s.fail("could not update item quantity", err)
		return
	}
	s.cart = cart
	s.loading = false
}

// ClearCart empties the remote cart and starts over with a fresh one: guests
// get a brand-new session id (the cleared cart's identity is never reused),
// customers re-resolve by the same customer id. The channel follows the cart.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return
	}

	s.loading = true
	s.errMsg = ""

	if err := s.carts.Clear(ctx, s.cart.CartID); err != nil {
		s.fail("could not clear cart", err)
		return
	}

	s.disconnectLocked()

	var (
		cart *domain.Cart
		err  error
	)
	if s.customerID != "" {
		cart, err = s.carts.GetOrCreateByCustomer(ctx, s.customerID)
	} else {
		s.sessionID = newSessionID()
		cart, err = s.carts.GetOrCreateBySession(ctx, s.sessionID)
	}
	if err != nil {
		// Leave the shopper cartless rather than retrying; the next access
		// re-initializes.
		s.logger.Printf("fresh cart after clear failed: %v", err)
		s.cart = nil
		s.loading = false
		s.saveIdentityLocked(ctx)
		return
	}

	s.cart = cart
	s.loading = false
	s.saveIdentityLocked(ctx)
	s.connectLocked()
}

// ValidateCart asks the service to re-check the cart contents and surfaces
// any validation messages as the store error.
func (s *Store) ValidateCart(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return false
	}

	validation, err := s.carts.Validate(ctx, s.cart.CartID)
	if err != nil {
		s.logger.Printf("validate cart %s: %v", s.cart.CartID, err)
		s.errMsg = "could not validate cart: " + err.Error()
		return false
	}
	if !validation.Valid {
		s.errMsg = strings.Join(validation.Errors, ", ")
	}
	return validation.Valid
}

// MergeGuestCart folds the guest cart into the named customer's cart. No-op
// when the cart is already customer-owned.
func (s *Store) MergeGuestCart(ctx context.Context, customerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil || (s.cart.CustomerID != nil && *s.cart.CustomerID != "") {
		return
	}

	s.loading = true
	s.errMsg = ""

	cart, err := s.carts.MergeGuestCart(ctx, s.cart.CartID, customerID)
	if err != nil {
		s.fail("could not merge guest cart", err)
		return
	}

	s.cart = cart
	s.customerID = customerID
	s.loading = false
	s.saveIdentityLocked(ctx)

	// The merged cart may carry a different id; move the channel over.
	s.disconnectLocked()
	s.connectLocked()
}

// SetCustomerID records the authenticated customer and, when non-empty,
// re-initializes the cart under that identity.
func (s *Store) SetCustomerID(ctx context.Context, customerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customerID = customerID
	if customerID != "" {
		s.disconnectLocked()
		s.initializeLocked(ctx)
		return
	}
	s.saveIdentityLocked(ctx)
}

// ConnectRealtime opens the channel for the current cart. No-op without a
// cart or when already connected.
func (s *Store) ConnectRealtime() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connectLocked()
}

// DisconnectRealtime tears the channel down.
func (s *Store) DisconnectRealtime() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disconnectLocked()
}

// ApplyRemoteSnapshot replaces the local snapshot with a pushed one. Full
// overwrite, never a merge.
func (s *Store) ApplyRemoteSnapshot(cart domain.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = &cart
}

func (s *Store) connectLocked() {
	if s.cart == nil || s.channel != nil || s.channels == nil {
		return
	}
	s.gen++
	gen := s.gen
	s.channel = s.channels(s.cart.CartID, ChannelEvents{
		OnCartUpdate: func(cart domain.Cart) { s.remoteUpdate(gen, cart) },
		OnError:      func(msg string) { s.channelError(gen, msg) },
		OnConnect:    func() { s.setChannelConnected(gen, true) },
		OnDisconnect: func() { s.setChannelConnected(gen, false) },
	})
	s.channel.Connect()
}

func (s *Store) disconnectLocked() {
	if s.channel == nil {
		return
	}
	s.channel.Disconnect()
	s.channel = nil
	s.connected = false
	// Invalidate callbacks still in flight from the old channel.
	s.gen++
}

func (s *Store) remoteUpdate(gen int, cart domain.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.cart = &cart
}

func (s *Store) channelError(gen int, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.errMsg = msg
	s.connected = false
}

func (s *Store) setChannelConnected(gen int, connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.connected = connected
}

func (s *Store) saveIdentityLocked(ctx context.Context) {
	if s.identity == nil {
		return
	}
	rec := domain.ShopperIdentity{
		DeviceID:   s.deviceID,
		SessionID:  s.sessionID,
		CustomerID: s.customerID,
	}
	if s.cart != nil {
		rec.CartID = s.cart.CartID
	}
	if err := s.identity.Save(ctx, rec); err != nil {
		s.logger.Printf("persist shopper identity %s: %v", s.deviceID, err)
	}
}

func (s *Store) fail(msg string, err error) {
	s.logger.Printf("%s: %v", msg, err)
	s.errMsg = msg + ": " + err.Error()
	s.loading = false
}

// Snapshot returns the current cart snapshot, nil when unresolved.
func (s *Store) Snapshot() *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// ItemCount is the sum of line quantities.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return 0
	}
	count := 0
	for _, item := range s.cart.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal from the service-computed totals; 0 without a cart.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return 0
	}
	return s.cart.Totals.SubtotalAmount
}

// Tax from the service-computed totals; 0 without a cart.
func (s *Store) Tax() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return 0
	}
	return s.cart.Totals.TaxAmount
}

// Total from the service-computed totals; 0 without a cart.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return 0
	}
	return s.cart.Totals.TotalAmount
}

// Item looks a line up by SKU, nil when absent.
func (s *Store) Item(sku string) *domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return nil
	}
	for i := range s.cart.Items {
		if s.cart.Items[i].SKU == sku {
			item := s.cart.Items[i]
			return &item
		}
	}
	return nil
}

// SessionID returns the current guest session id.
func (s *Store) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// CustomerID returns the authenticated customer id, empty for guests.
func (s *Store) CustomerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customerID
}

// Connected reports whether the realtime channel is up.
func (s *Store) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Loading reports whether a remote operation is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the current error message, empty when none.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// ClearErr dismisses the current error message.
func (s *Store) ClearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}
