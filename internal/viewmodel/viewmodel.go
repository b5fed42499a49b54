package viewmodel

import (
	"context"
	"log/slog"

	"github.com/studiowebux/productdesk/internal/types"
)

// User-facing failure messages, one per operation
const (
	ErrFetchShortProducts = "Failed to fetch short products"
	ErrFetchProductDetail = "Failed to fetch product detail"
	ErrCreateProduct      = "Failed to create product"
	ErrUpdateProduct      = "Failed to update product"
	ErrDeleteProduct      = "Failed to delete product"
)

// Backend is the subset of the API client the view-model drives
type Backend interface {
	ListProducts(ctx context.Context) ([]types.ShortProduct, error)
	GetProduct(ctx context.Context, id types.ProductID) (types.Product, error)
	CreateProduct(ctx context.Context, p types.Product) (string, error)
	UpdateProduct(ctx context.Context, p types.Product) (string, error)
	DeleteProduct(ctx context.Context, id types.ProductID) error
}

// Handle lets a caller wait for a background call to finish
type Handle struct {
	done chan struct{}
}

func newHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

// Wait blocks until the call has finished, successfully or not
func (h *Handle) Wait() {
	<-h.done
}

// Done is closed when the call has finished
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// ViewModel holds the shared UI state and the operations that update it
type ViewModel struct {
	backend Backend
	logger  *slog.Logger

	list   ListCell
	detail DetailCell
	err    ErrorCell
}

// New creates a view-model on top of backend
func New(backend Backend, logger *slog.Logger) *ViewModel {
	if logger == nil {
		logger = slog.Default()
	}
	return &ViewModel{
		backend: backend,
		logger:  logger,
	}
}

// ShortProducts returns a copy of the current list
func (vm *ViewModel) ShortProducts() []types.ShortProduct {
	return vm.list.Get()
}

// Detail returns the loaded product, if any
func (vm *ViewModel) Detail() (types.Product, bool) {
	return vm.detail.Get()
}

// EditDetail edits the loaded product in place
func (vm *ViewModel) EditDetail(fn func(*types.Product)) bool {
	return vm.detail.Edit(fn)
}

// ReplaceDetail stores p as the loaded product
func (vm *ViewModel) ReplaceDetail(p types.Product) {
	vm.detail.Set(p)
}

// ClearDetail drops the loaded product
func (vm *ViewModel) ClearDetail() {
	vm.detail.Clear()
}

// Error returns the message to show, empty when there is none
func (vm *ViewModel) Error() string {
	return vm.err.Get()
}

// ClearError dismisses the message
func (vm *ViewModel) ClearError() {
	vm.err.Clear()
}

// FetchShortProducts refreshes the list in the background
func (vm *ViewModel) FetchShortProducts() {
	vm.spawn(func(ctx context.Context) {
		products, err := vm.backend.ListProducts(ctx)
		if err != nil {
			vm.fail(ctx, ErrFetchShortProducts, err)
			return
		}
		vm.list.Replace(products)
	})
}

// FetchProductDetail loads one product into the detail cell in the background
func (vm *ViewModel) FetchProductDetail(id types.ProductID) {
	vm.spawn(func(ctx context.Context) {
		product, err := vm.backend.GetProduct(ctx, id)
		if err != nil {
			vm.fail(ctx, ErrFetchProductDetail, err, slog.String("product_id", id.String()))
			return
		}
		vm.detail.Set(product)
	})
}

// CreateProduct posts a new product in the background. The list is not refreshed.
func (vm *ViewModel) CreateProduct(p types.Product) {
	vm.spawn(func(ctx context.Context) {
		resp, err := vm.backend.CreateProduct(ctx, p)
		if err != nil {
			vm.fail(ctx, ErrCreateProduct, err, slog.String("product_id", p.ID.String()))
			return
		}
		vm.logger.LogAttrs(ctx, slog.LevelDebug, "product_created",
			slog.String("product_id", p.ID.String()),
			slog.String("response", resp),
		)
	})
}

// UpdateProduct replaces a product in the background and returns a handle to wait on
func (vm *ViewModel) UpdateProduct(p types.Product) *Handle {
	return vm.spawn(func(ctx context.Context) {
		resp, err := vm.backend.UpdateProduct(ctx, p)
		if err != nil {
			vm.fail(ctx, ErrUpdateProduct, err, slog.String("product_id", p.ID.String()))
			return
		}
		vm.logger.LogAttrs(ctx, slog.LevelDebug, "product_updated",
			slog.String("product_id", p.ID.String()),
			slog.String("response", resp),
		)
	})
}

// DeleteProduct removes a product in the background
func (vm *ViewModel) DeleteProduct(id types.ProductID) {
	vm.spawn(func(ctx context.Context) {
		if err := vm.backend.DeleteProduct(ctx, id); err != nil {
			vm.fail(ctx, ErrDeleteProduct, err, slog.String("product_id", id.String()))
		}
	})
}

// spawn runs fn on its own goroutine. Calls are never cancelled.
func (vm *ViewModel) spawn(fn func(ctx context.Context)) *Handle {
	h := newHandle()
	go func() {
		defer close(h.done)
		fn(context.Background())
	}()
	return h
}

// fail shows the fixed message and keeps the cause in the developer log
func (vm *ViewModel) fail(ctx context.Context, message string, err error, attrs ...slog.Attr) {
	attrs = append(attrs, slog.String("message", message), slog.Any("err", err))
	vm.logger.LogAttrs(ctx, slog.LevelError, "operation_failed", attrs...)
	vm.err.Set(message)
}
