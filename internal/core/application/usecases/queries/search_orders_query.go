package queries

import (
	"errors"
	"time"

	"traiteur/internal/core/domain/model/account"
	"traiteur/internal/core/domain/model/kernel"
	"traiteur/internal/core/domain/model/order"
	"traiteur/internal/pkg/errs"
	"traiteur/internal/pkg/guard"
)

var (
	ErrSearchOrdersQueryIsNotConstructed = errors.New(
		"SearchOrdersQuery must be created via NewSearchOrdersQuery constructor",
	)
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// SearchFilters narrows the order listing. All filters are optional and
// combine with AND.
type SearchFilters struct {
	// Statut keeps only orders in that status.
	Statut *order.Status

	// Terme matches the order number or the service address, case
	// insensitively.
	Terme string

	// CustomerID keeps only orders of that customer. For non-staff actors
	// the handler forces it to the actor regardless of what it holds.
	CustomerID *kernel.UUID

	// DatePrestation keeps only orders served on that calendar day.
	DatePrestation *time.Time
}

// SearchOrdersQuery lists orders with filtering and pagination. Staff browse
// the whole book; customers are always scoped to their own orders.
type SearchOrdersQuery struct { //nolint:recvcheck //using for validation
	actor   account.Actor
	filters SearchFilters
	page    int
	limit   int

	guard guard.ConstructorGuard
}

// NewSearchOrdersQuery creates a query to list orders. Page numbers start at
// 1 and default to it; the page size defaults to 20 and is capped at 100.
func NewSearchOrdersQuery(
	actor account.Actor,
	filters SearchFilters,
	page int,
	limit int,
) (SearchOrdersQuery, error) {
	q := SearchOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = defaultPageSize
	}

	if err := errors.Join(
		q.setActor(actor),
		q.setFilters(filters),
		q.setPage(page),
		q.setLimit(limit),
	); err != nil {
		return SearchOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q SearchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrSearchOrdersQueryIsNotConstructed)
}

// Actor returns the requesting user.
func (q SearchOrdersQuery) Actor() account.Actor { return q.actor }

// Filters returns the requested filters.
func (q SearchOrdersQuery) Filters() SearchFilters { return q.filters }

// Page returns the 1-based page number.
func (q SearchOrdersQuery) Page() int { return q.page }

// Limit returns the page size.
func (q SearchOrdersQuery) Limit() int { return q.limit }

func (q *SearchOrdersQuery) setActor(actor account.Actor) error {
	if err := actor.ID().Validate(); err != nil {
		return err
	}
	q.actor = actor
	return nil
}

func (q *SearchOrdersQuery) setFilters(filters SearchFilters) error {
	if filters.Statut != nil {
		if err := filters.Statut.Validate(); err != nil {
			return err
		}
	}
	if filters.CustomerID != nil {
		if err := filters.CustomerID.Validate(); err != nil {
			return err
		}
	}
	q.filters = filters
	return nil
}

func (q *SearchOrdersQuery) setPage(page int) error {
	if page < 1 {
		return errs.NewValueIsInvalidError("page")
	}
	q.page = page
	return nil
}

func (q *SearchOrdersQuery) setLimit(limit int) error {
	if limit < 1 || limit > maxPageSize {
		return errs.NewValueIsInvalidError("limit")
	}
	q.limit = limit
	return nil
}

// SearchOrdersResponse is one result page plus the total match count, so the
// HTTP layer can compute page counts without a second round trip.
type SearchOrdersResponse struct {
	Items []OrderResponse `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
