package dashboard

import (
	"context"
	"slices"
	"strings"

	"github.com/angelmondragon/mallkv/internal/orders"
	product "github.com/angelmondragon/mallkv/internal/products"
	"github.com/angelmondragon/mallkv/internal/users"
	"github.com/angelmondragon/mallkv/pkg/enums"
	pkgerrors "github.com/angelmondragon/mallkv/pkg/errors"
	"github.com/angelmondragon/mallkv/pkg/logger"
	"github.com/angelmondragon/mallkv/pkg/money"
	"github.com/angelmondragon/mallkv/pkg/pagination"
)

// DefaultRecentWindow is the number of orders shown in Summary.Recent when no
// window is configured.
const DefaultRecentWindow = 5

type orderSource interface {
	ListAll(ctx context.Context) []orders.Order
}

type productSource interface {
	List(ctx context.Context) []product.Product
}

type userSource interface {
	List(ctx context.Context) []users.User
}

// Summary is the administrative overview of the whole store.
type Summary struct {
	Revenue        float64                   `json:"totalRevenue"`
	TotalOrders    int                       `json:"totalOrders"`
	TotalProducts  int                       `json:"totalProducts"`
	TotalUsers     int                       `json:"totalUsers"`
	OrdersByStatus map[enums.OrderStatus]int `json:"ordersByStatus"`
	Recent         []orders.Order            `json:"recentOrders"`
}

// Service computes admin views on read; nothing here is cached or stored.
type Service struct {
	orders       orderSource
	products     productSource
	users        userSource
	recentWindow int
	logg         *logger.Logger
}

func NewService(ordersSrc orderSource, products productSource, usersSrc userSource, recentWindow int, logg *logger.Logger) *Service {
	if recentWindow <= 0 {
		recentWindow = DefaultRecentWindow
	}
	return &Service{
		orders:       ordersSrc,
		products:     products,
		users:        usersSrc,
		recentWindow: recentWindow,
		logg:         logger.OrNop(logg),
	}
}

// Summary materialises every order shard once. Revenue is the sum of the
// payable totals of all orders regardless of status.
func (s *Service) Summary(ctx context.Context) Summary {
	all := s.orders.ListAll(ctx)

	byStatus := make(map[enums.OrderStatus]int, len(enums.OrderStatuses()))
	for _, status := range enums.OrderStatuses() {
		byStatus[status] = 0
	}
	totals := make([]float64, 0, len(all))
	for _, order := range all {
		totals = append(totals, order.TotalPrice)
		byStatus[order.Status]++
	}

	recent := all[:min(len(all), s.recentWindow)]
	summary := Summary{
		Revenue:        money.Sum(totals...),
		TotalOrders:    len(all),
		TotalProducts:  len(s.products.List(ctx)),
		TotalUsers:     len(s.users.List(ctx)),
		OrdersByStatus: byStatus,
		Recent:         append([]orders.Order(nil), recent...),
	}
	s.logg.Debug(s.logg.WithFields(ctx, map[string]any{
		"orders":  summary.TotalOrders,
		"revenue": summary.Revenue,
	}), "dashboard summary computed")
	return summary
}

// OrderPage is one page of the admin order list.
type OrderPage struct {
	Orders     []orders.Order `json:"orders"`
	NextCursor string         `json:"nextCursor,omitempty"`
}

// OrdersPage pages through every order, newest first with ties broken by id.
func (s *Service) OrdersPage(ctx context.Context, params pagination.Params) (OrderPage, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return OrderPage{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)

	all := s.orders.ListAll(ctx)
	slices.SortStableFunc(all, func(a, b orders.Order) int {
		if c := b.CreateTime.Compare(a.CreateTime); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	if cursor != nil {
		start := slices.IndexFunc(all, func(o orders.Order) bool {
			return cursor.After(o.CreateTime, o.ID)
		})
		if start < 0 {
			start = len(all)
		}
		all = all[start:]
	}

	page := OrderPage{Orders: all[:min(limit, len(all))]}
	if len(all) > limit {
		last := page.Orders[len(page.Orders)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreateTime, ID: last.ID})
	}
	return page, nil
}

// SearchOrders matches term case-insensitively against order ids and item
// names. An empty term returns every order.
func (s *Service) SearchOrders(ctx context.Context, term string) []orders.Order {
	all := s.orders.ListAll(ctx)
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return all
	}
	out := make([]orders.Order, 0)
	for _, order := range all {
		if containsFold(order.ID, needle) || anyItemMatches(order, needle) {
			out = append(out, order)
		}
	}
	return out
}

// SearchProducts matches term case-insensitively against product names.
func (s *Service) SearchProducts(ctx context.Context, term string) []product.Product {
	all := s.products.List(ctx)
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return all
	}
	out := make([]product.Product, 0)
	for _, p := range all {
		if containsFold(p.Name, needle) {
			out = append(out, p)
		}
	}
	return out
}

// SearchUsers matches term against names and, case-insensitively, emails.
func (s *Service) SearchUsers(ctx context.Context, term string) []users.User {
	all := s.users.List(ctx)
	needle := strings.TrimSpace(term)
	if needle == "" {
		return all
	}
	out := make([]users.User, 0)
	for _, u := range all {
		if strings.Contains(u.Name, needle) || containsFold(u.Email, strings.ToLower(needle)) {
			out = append(out, u)
		}
	}
	return out
}

func anyItemMatches(order orders.Order, needle string) bool {
	for _, item := range order.Items {
		if containsFold(item.Name, needle) {
			return true
		}
	}
	return false
}

func containsFold(value, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(value), lowerNeedle)
}
