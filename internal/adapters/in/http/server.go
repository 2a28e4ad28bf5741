// Package http exposes the order lifecycle over a JSON API. Identity comes
// from gateway headers, command and query handlers do the actual work, and
// the error taxonomy is mapped onto HTTP statuses in one place.
package http

import (
	"net/http"
	"time"

	"traiteur/internal/core/application/usecases/commands"
	"traiteur/internal/core/application/usecases/queries"
	"traiteur/internal/core/domain/model/kernel"
	"traiteur/internal/core/domain/model/order"
	"traiteur/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler  commands.CreateOrderCommandHandler
	updateOrderHandler  commands.UpdateOrderCommandHandler
	changeStatusHandler commands.ChangeOrderStatusCommandHandler
	cancelOrderHandler  commands.CancelOrderCommandHandler

	getOrderHandler     queries.GetOrderQueryHandler
	searchOrdersHandler queries.SearchOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	searchOrdersHandler queries.SearchOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:  createOrderHandler,
		updateOrderHandler:  updateOrderHandler,
		changeStatusHandler: changeStatusHandler,
		cancelOrderHandler:  cancelOrderHandler,
		getOrderHandler:     getOrderHandler,
		searchOrdersHandler: searchOrdersHandler,
	}
}

// RegisterRoutes mounts the API on the echo instance. Everything under
// /api/commande requires an identity; /health does not.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/commande", ActorMiddleware())
	api.POST("", s.CreateOrder)
	api.GET("", s.SearchOrders)
	api.GET("/:id", s.GetOrder)
	api.PUT("/:id", s.UpdateOrder)
	api.PATCH("/:id/statut", s.ChangeOrderStatus)
	api.PATCH("/:id/annulation", s.CancelOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

type createOrderRequest struct {
	MenuID            string  `json:"menu_id"`
	AdressePrestation string  `json:"adresse_prestation"`
	DatePrestation    string  `json:"date_prestation"`
	HeurePrestation   string  `json:"heure_prestation"`
	NbPersonne        int     `json:"nb_personne"`
	PrixLivraison     *string `json:"prix_livraison"`
}

// CreateOrder handles POST /api/commande - books a menu for the acting
// customer.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	menuID, err := kernel.UUIDFromString(req.MenuID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("menu_id", err))
	}

	datePrestation, err := time.Parse("2006-01-02", req.DatePrestation)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("date_prestation", err))
	}

	prixLivraison := decimal.Zero
	if req.PrixLivraison != nil {
		prixLivraison, err = decimal.NewFromString(*req.PrixLivraison)
		if err != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("prix_livraison", err))
		}
	}

	cmd, err := commands.NewCreateOrderCommand(
		actorFrom(ctx).ID(),
		menuID,
		req.AdressePrestation,
		datePrestation,
		req.HeurePrestation,
		req.NbPersonne,
		prixLivraison,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	ctx.Response().Header().Set(echo.HeaderLocation, "/api/commande/"+created.ID().String())
	return ctx.JSON(http.StatusCreated, map[string]string{
		"id":              created.ID().String(),
		"numero_commande": created.Numero(),
		"statut":          created.Statut().String(),
		"prix_total":      created.PrixTotal().StringFixed(2),
	})
}

// GetOrder handles GET /api/commande/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	query, err := queries.NewGetOrderQuery(orderID, actorFrom(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, resp)
}

// SearchOrders handles GET /api/commande with optional statut, q, user_id,
// date_prestation, page and limit parameters.
func (s *Server) SearchOrders(ctx echo.Context) error {
	filters := queries.SearchFilters{
		Terme: ctx.QueryParam("q"),
	}

	if raw := ctx.QueryParam("statut"); raw != "" {
		statut, err := order.StatusFromString(raw)
		if err != nil {
			return writeError(ctx, err)
		}
		filters.Statut = &statut
	}

	if raw := ctx.QueryParam("user_id"); raw != "" {
		customerID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("user_id", err))
		}
		filters.CustomerID = &customerID
	}

	if raw := ctx.QueryParam("date_prestation"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("date_prestation", err))
		}
		filters.DatePrestation = &day
	}

	page, err := intQueryParam(ctx, "page")
	if err != nil {
		return writeError(ctx, err)
	}
	limit, err := intQueryParam(ctx, "limit")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewSearchOrdersQuery(actorFrom(ctx), filters, page, limit)
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.searchOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, resp)
}

type updateOrderRequest struct {
	AdressePrestation   *string `json:"adresse_prestation"`
	DatePrestation      *string `json:"date_prestation"`
	HeurePrestation     *string `json:"heure_prestation"`
	NbPersonne          *int    `json:"nb_personne"`
	Statut              *string `json:"statut"`
	RestitutionMateriel *bool   `json:"restitution_materiel"`
	PrixLivraison       *string `json:"prix_livraison"`
}

// UpdateOrder handles PUT /api/commande/:id - the role-scoped partial update.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req updateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	patch := commands.OrderPatch{
		AdressePrestation:   req.AdressePrestation,
		HeurePrestation:     req.HeurePrestation,
		NbPersonne:          req.NbPersonne,
		RestitutionMateriel: req.RestitutionMateriel,
	}

	if req.DatePrestation != nil {
		day, parseErr := time.Parse("2006-01-02", *req.DatePrestation)
		if parseErr != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("date_prestation", parseErr))
		}
		patch.DatePrestation = &day
	}

	if req.Statut != nil {
		statut, parseErr := order.StatusFromString(*req.Statut)
		if parseErr != nil {
			return writeError(ctx, parseErr)
		}
		patch.Statut = &statut
	}

	if req.PrixLivraison != nil {
		fee, parseErr := decimal.NewFromString(*req.PrixLivraison)
		if parseErr != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("prix_livraison", parseErr))
		}
		patch.PrixLivraison = &fee
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, actorFrom(ctx), patch)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type changeStatusRequest struct {
	Statut string `json:"statut"`
}

// ChangeOrderStatus handles PATCH /api/commande/:id/statut.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req changeStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	statut, err := order.StatusFromString(req.Statut)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, actorFrom(ctx), statut)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type cancelOrderRequest struct {
	ModeContact string `json:"mode_contact"`
	Motif       string `json:"motif"`
	Type        string `json:"type"`
}

// CancelOrder handles PATCH /api/commande/:id/annulation - the only route
// to the annulee and refusee statuses. The contact evidence is mandatory.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req cancelOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(
		orderID,
		actorFrom(ctx),
		order.ContactMode(req.ModeContact),
		req.Motif,
		order.Status(req.Type),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func intQueryParam(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}

	var value int
	if err := echo.QueryParamsBinder(ctx).Int(name, &value).BindError(); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}
