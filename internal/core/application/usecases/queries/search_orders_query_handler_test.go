package queries_test

import (
	"context"
	"testing"
	"time"

	"traiteur/internal/adapters/out/postgres/menurepo"
	"traiteur/internal/adapters/out/postgres/orderrepo"
	"traiteur/internal/core/application/usecases/queries"
	"traiteur/internal/core/domain/model/account"
	"traiteur/internal/core/domain/model/kernel"
	"traiteur/internal/core/domain/model/menu"
	"traiteur/internal/core/domain/model/order"
	"traiteur/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker implements the repositories' tracker for test purposes.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {
}

// OrderQueriesTestSuite covers the read side: single-order retrieval with its
// visibility rule and the filtered, paginated listing.
type OrderQueriesTestSuite struct {
	suite.Suite
	container     *postgres.PostgresContainer
	db            *gorm.DB
	searchHandler queries.SearchOrdersQueryHandler
	getHandler    queries.GetOrderQueryHandler
	orderRepo     *orderrepo.GormOrderRepository
	menuRepo      *menurepo.GormMenuRepository
	testMenu      *menu.Menu
}

func (suite *OrderQueriesTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &menurepo.MenuDTO{})
	suite.Require().NoError(err)

	suite.searchHandler = queries.NewSearchOrdersQueryHandler(db)
	suite.getHandler = queries.NewGetOrderQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	suite.menuRepo = menurepo.NewGormMenuRepository(db, &mockAggregateTracker{})

	suite.testMenu, err = menu.NewMenu(kernel.NewUUID(), "Buffet campagnard", 2,
		decimal.RequireFromString("12.50"), "charcuterie et fromages", nil, false)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.menuRepo.Add(ctx, suite.testMenu))
}

func (suite *OrderQueriesTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderQueriesTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE commande").Error
	suite.Require().NoError(err)
}

func (suite *OrderQueriesTestSuite) seedOrder(customerID kernel.UUID, adresse string, datePrestation time.Time, statut order.Status) *order.Order {
	ctx := context.Background()

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), order.NewNumero(), customerID, suite.testMenu.ID(),
		adresse, datePrestation, "18:30", 4,
		decimal.RequireFromString("50.00"), decimal.RequireFromString("5.00"),
		decimal.RequireFromString("55.00"), time.Now())
	suite.Require().NoError(err)

	if statut != order.StatusEnAttente {
		cID := customerID
		aggregate = order.RestoreOrder(
			aggregate.ID(), aggregate.Numero(), &cID, aggregate.MenuID(),
			aggregate.AdressePrestation(), aggregate.DatePrestation(),
			aggregate.HeurePrestation(), aggregate.NbPersonne(),
			aggregate.PrixCommande(), aggregate.PrixLivraison(), aggregate.PrixTotal(),
			statut, nil, aggregate.DateCommande(), nil, nil, nil, nil)
	}

	suite.Require().NoError(suite.orderRepo.Add(ctx, aggregate))
	return aggregate
}

func (suite *OrderQueriesTestSuite) employeeActor() account.Actor {
	actor, err := account.NewActor(kernel.NewUUID(), []account.Role{"ROLE_EMPLOYEE"})
	suite.Require().NoError(err)
	return actor
}

func (suite *OrderQueriesTestSuite) customerActor(id kernel.UUID) account.Actor {
	actor, err := account.NewActor(id, []account.Role{"ROLE_USER"})
	suite.Require().NoError(err)
	return actor
}

func (suite *OrderQueriesTestSuite) TestGetOrder_OwnerSeesOwnOrder() {
	customerID := kernel.NewUUID()
	seeded := suite.seedOrder(customerID, "12 rue des Lilas, Lyon",
		time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC), order.StatusEnAttente)

	query, err := queries.NewGetOrderQuery(seeded.ID(), suite.customerActor(customerID))
	suite.Require().NoError(err)

	resp, err := suite.getHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(seeded.Numero(), resp.NumeroCommande)
	suite.Equal("Buffet campagnard", resp.MenuTitre)
	suite.Equal("en_attente", resp.Statut)
	suite.Equal("En attente", resp.StatutLabel)
	suite.True(resp.PrixTotal.Equal(decimal.RequireFromString("55.00")))
}

func (suite *OrderQueriesTestSuite) TestGetOrder_StrangerIsRejected() {
	seeded := suite.seedOrder(kernel.NewUUID(), "12 rue des Lilas, Lyon",
		time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC), order.StatusEnAttente)

	query, err := queries.NewGetOrderQuery(seeded.ID(), suite.customerActor(kernel.NewUUID()))
	suite.Require().NoError(err)

	_, err = suite.getHandler.Handle(context.Background(), query)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrNotAuthorized)
}

func (suite *OrderQueriesTestSuite) TestGetOrder_UnknownID_ReturnsNotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID(), suite.employeeActor())
	suite.Require().NoError(err)

	_, err = suite.getHandler.Handle(context.Background(), query)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderQueriesTestSuite) TestSearch_EmptyDatabase_ReturnsEmptyPage() {
	query, err := queries.NewSearchOrdersQuery(suite.employeeActor(), queries.SearchFilters{}, 1, 20)
	suite.Require().NoError(err)

	resp, err := suite.searchHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(resp.Items)
	suite.Equal(int64(0), resp.Total)
}

func (suite *OrderQueriesTestSuite) TestSearch_StatusFilter() {
	serviceDate := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	suite.seedOrder(kernel.NewUUID(), "12 rue des Lilas, Lyon", serviceDate, order.StatusEnAttente)
	suite.seedOrder(kernel.NewUUID(), "8 quai Saint-Antoine, Lyon", serviceDate, order.StatusAcceptee)
	suite.seedOrder(kernel.NewUUID(), "3 place Bellecour, Lyon", serviceDate, order.StatusAcceptee)

	statut := order.StatusAcceptee
	query, err := queries.NewSearchOrdersQuery(suite.employeeActor(),
		queries.SearchFilters{Statut: &statut}, 1, 20)
	suite.Require().NoError(err)

	resp, err := suite.searchHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Len(resp.Items, 2)
	suite.Equal(int64(2), resp.Total)
	for _, item := range resp.Items {
		suite.Equal("acceptee", item.Statut)
	}
}

func (suite *OrderQueriesTestSuite) TestSearch_TermMatchesNumeroAndAddress() {
	serviceDate := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	target := suite.seedOrder(kernel.NewUUID(), "12 rue des Lilas, Lyon", serviceDate, order.StatusEnAttente)
	suite.seedOrder(kernel.NewUUID(), "8 quai Saint-Antoine, Lyon", serviceDate, order.StatusEnAttente)

	byAddress, err := queries.NewSearchOrdersQuery(suite.employeeActor(),
		queries.SearchFilters{Terme: "lilas"}, 1, 20)
	suite.Require().NoError(err)

	resp, err := suite.searchHandler.Handle(context.Background(), byAddress)
	suite.Require().NoError(err)
	suite.Require().Len(resp.Items, 1)
	suite.Equal(target.Numero(), resp.Items[0].NumeroCommande)

	byNumero, err := queries.NewSearchOrdersQuery(suite.employeeActor(),
		queries.SearchFilters{Terme: target.Numero()}, 1, 20)
	suite.Require().NoError(err)

	resp, err = suite.searchHandler.Handle(context.Background(), byNumero)
	suite.Require().NoError(err)
	suite.Require().Len(resp.Items, 1)
	suite.True(resp.Items[0].ID.IsEqual(target.ID()))
}

func (suite *OrderQueriesTestSuite) TestSearch_DateFilter() {
	suite.seedOrder(kernel.NewUUID(), "12 rue des Lilas, Lyon",
		time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC), order.StatusEnAttente)
	onDate := suite.seedOrder(kernel.NewUUID(), "8 quai Saint-Antoine, Lyon",
		time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC), order.StatusEnAttente)

	day := time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC)
	query, err := queries.NewSearchOrdersQuery(suite.employeeActor(),
		queries.SearchFilters{DatePrestation: &day}, 1, 20)
	suite.Require().NoError(err)

	resp, err := suite.searchHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(resp.Items, 1)
	suite.True(resp.Items[0].ID.IsEqual(onDate.ID()))
}

func (suite *OrderQueriesTestSuite) TestSearch_CustomerIsScopedToOwnOrders() {
	serviceDate := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	customerID := kernel.NewUUID()
	mine := suite.seedOrder(customerID, "12 rue des Lilas, Lyon", serviceDate, order.StatusEnAttente)
	suite.seedOrder(kernel.NewUUID(), "8 quai Saint-Antoine, Lyon", serviceDate, order.StatusEnAttente)

	// Even an explicit filter for someone else's orders is overridden.
	other := kernel.NewUUID()
	query, err := queries.NewSearchOrdersQuery(suite.customerActor(customerID),
		queries.SearchFilters{CustomerID: &other}, 1, 20)
	suite.Require().NoError(err)

	resp, err := suite.searchHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(resp.Items, 1)
	suite.True(resp.Items[0].ID.IsEqual(mine.ID()))
	suite.Equal(int64(1), resp.Total)
}

func (suite *OrderQueriesTestSuite) TestSearch_Pagination() {
	serviceDate := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		suite.seedOrder(kernel.NewUUID(), "12 rue des Lilas, Lyon", serviceDate, order.StatusEnAttente)
	}

	firstPage, err := queries.NewSearchOrdersQuery(suite.employeeActor(), queries.SearchFilters{}, 1, 2)
	suite.Require().NoError(err)

	resp, err := suite.searchHandler.Handle(context.Background(), firstPage)
	suite.Require().NoError(err)
	suite.Len(resp.Items, 2)
	suite.Equal(int64(5), resp.Total)

	lastPage, err := queries.NewSearchOrdersQuery(suite.employeeActor(), queries.SearchFilters{}, 3, 2)
	suite.Require().NoError(err)

	resp, err = suite.searchHandler.Handle(context.Background(), lastPage)
	suite.Require().NoError(err)
	suite.Len(resp.Items, 1)
}

func (suite *OrderQueriesTestSuite) TestSearch_InvalidQuery_ReturnsError() {
	invalidQuery := queries.SearchOrdersQuery{}

	_, err := suite.searchHandler.Handle(context.Background(), invalidQuery)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewSearchOrdersQuery constructor")
}

func TestOrderQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueriesTestSuite))
}
