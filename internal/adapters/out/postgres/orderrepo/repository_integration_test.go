package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"candydelivery/internal/adapters/out/postgres/orderrepo"
	"candydelivery/internal/core/domain/model/kernel"
	"candydelivery/internal/core/domain/model/order"
	"candydelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var assignedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(aggregate any) {
	m.Called(aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence against PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_TracksAggregate() {
	o := suite.createTestOrder(1, "1.5", 3)

	suite.Require().NoError(suite.repository.Add(context.Background(), o))

	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTripsOrder() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrder(1, "0.23", 12, "09:00-12:00", "16:00-21:30")))

	stored, err := suite.repository.Get(ctx, 1)

	suite.Require().NoError(err)
	suite.True(stored.Weight().Equal(decimal.RequireFromString("0.23")))
	suite.Equal(kernel.Region(12), stored.Region())
	suite.Equal([]string{"09:00-12:00", "16:00-21:30"}, kernel.FormatTimeIntervals(stored.DeliveryHours()))
	suite.Equal(order.New, stored.Status())
	suite.Nil(stored.Courier())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), 404)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindEligible_FiltersAndSorts() {
	ctx := context.Background()
	suite.seed(
		suite.createTestOrder(1, "0.01", 2),  // region not requested
		suite.createTestOrder(2, "5", 1),     // heavier than max weight
		suite.createTestOrder(3, "0.23", 12), // eligible
		suite.createTestOrder(5, "0.01", 1),  // eligible, lightest
		suite.createTestOrder(4, "0.23", 1),  // eligible, ties with 3 by weight
	)
	taken := suite.createTestOrder(6, "0.02", 1)
	suite.seed(taken)
	suite.Require().NoError(taken.Assign(9, assignedAt))
	suite.Require().NoError(suite.repository.Claim(ctx, taken))

	eligible, err := suite.repository.FindEligible(ctx, []kernel.Region{1, 12}, decimal.RequireFromString("4.99"))

	suite.Require().NoError(err)
	suite.Equal([]int64{5, 3, 4}, ids(eligible))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_OnlyFromNew() {
	ctx := context.Background()
	o := suite.createTestOrder(1, "1", 1)
	suite.seed(o)
	suite.Require().NoError(o.Assign(7, assignedAt))

	suite.Require().NoError(suite.repository.Claim(ctx, o))

	stored, err := suite.repository.Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal(order.InProcess, stored.Status())
	suite.True(stored.IsAssignedTo(7))
	suite.True(assignedAt.Equal(*stored.AssignTime()))

	err = suite.repository.Claim(ctx, o)
	suite.Require().ErrorIs(err, errs.ErrPreconditionFailed)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsCompletion() {
	ctx := context.Background()
	o := suite.createTestOrder(1, "1", 1)
	suite.seed(o)
	suite.Require().NoError(o.Assign(7, assignedAt))
	suite.Require().NoError(suite.repository.Claim(ctx, o))
	suite.Require().NoError(o.Complete(assignedAt.Add(5*time.Minute), 300))

	suite.Require().NoError(suite.repository.Update(ctx, o))

	completed, err := suite.repository.FindByCourier(ctx, 7, order.Complete)
	suite.Require().NoError(err)
	suite.Require().Len(completed, 1)
	suite.Equal(int64(300), *completed[0].DeliveryTime())

	inProcess, err := suite.repository.FindByCourier(ctx, 7, order.InProcess)
	suite.Require().NoError(err)
	suite.Empty(inProcess)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_EvictionClearsCourier() {
	ctx := context.Background()
	o := suite.createTestOrder(1, "1", 1)
	suite.seed(o)
	suite.Require().NoError(o.Assign(7, assignedAt))
	suite.Require().NoError(suite.repository.Claim(ctx, o))
	suite.Require().NoError(o.Evict("regions", assignedAt.Add(time.Minute)))

	suite.Require().NoError(suite.repository.Update(ctx, o))

	stored, err := suite.repository.Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal(order.New, stored.Status())
	suite.Nil(stored.Courier())
	suite.Nil(stored.AssignTime())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindExistingIDs() {
	ctx := context.Background()
	suite.seed(suite.createTestOrder(2, "1", 1), suite.createTestOrder(4, "1", 1))

	existing, err := suite.repository.FindExistingIDs(ctx, []int64{1, 2, 3, 4})

	suite.Require().NoError(err)
	suite.Equal([]int64{2, 4}, existing)
}

func (suite *OrderRepositoryIntegrationTestSuite) seed(orders ...*order.Order) {
	for _, o := range orders {
		suite.Require().NoError(suite.repository.Add(context.Background(), o))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(
	id int64,
	weight string,
	region kernel.Region,
	hours ...string,
) *order.Order {
	if len(hours) == 0 {
		hours = []string{"09:00-18:00"}
	}
	intervals, err := kernel.ParseTimeIntervals(hours)
	suite.Require().NoError(err)
	o, err := order.NewOrder(id, decimal.RequireFromString(weight), region, intervals)
	suite.Require().NoError(err)
	return o
}

func ids(orders []*order.Order) []int64 {
	out := make([]int64, len(orders))
	for i, o := range orders {
		out[i] = o.ID()
	}
	return out
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
