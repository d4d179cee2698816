package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/testkit/fixtures"
	"ordering/internal/testkit/pgtest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_AssignsGeneratedID() {
	ctx := context.Background()

	first := fixtures.OrderIn(suite.T(), order.TriggerSubmit)
	second := fixtures.OrderIn(suite.T(), order.TriggerSubmit)

	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	suite.Equal(int64(1), first.ID())
	suite.Equal(int64(2), second.ID())
	suite.assertCount("orders", 2)
	suite.assertCount("order_items", 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTrip() {
	ctx := context.Background()
	original := fixtures.OrderIn(suite.T(), order.TriggerSubmit)
	suite.Require().NoError(suite.repository.Add(ctx, original))

	restored, err := suite.repository.Get(ctx, original.ID())

	suite.Require().NoError(err)
	suite.Equal(original.ID(), restored.ID())
	suite.Equal(order.Pending, restored.Status())
	suite.Equal("user-1", restored.Buyer().UserID())
	suite.True(original.Address().IsEqual(restored.Address()))
	suite.Equal("XXXXXXXXXXXX1111", restored.PaymentMethod().MaskedCardNumber())
	suite.Equal(original.Description(), restored.Description())

	items := restored.Items()
	suite.Require().Len(items, 1)
	suite.True(decimal.RequireFromString("9.50").Equal(items[0].UnitPrice()))
	suite.True(decimal.NewFromInt(19).Equal(restored.Total()))

	pendingAt, ok := restored.TransitionedAt(order.Pending)
	suite.True(ok)
	suite.True(fixtures.Now.Equal(pendingAt))
	suite.True(fixtures.Now.Equal(restored.CreatedAt()))
	_, ok = restored.TransitionedAt(order.Paid)
	suite.False(ok)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	restored, err := suite.repository.Get(context.Background(), 404)

	suite.Nil(restored)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Contains(err.Error(), "404")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransitions() {
	ctx := context.Background()
	o := fixtures.OrderIn(suite.T(), order.TriggerSubmit)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	later := fixtures.Now.Add(time.Minute)
	_, err := o.Apply(order.TriggerStockConfirmed, later)
	suite.Require().NoError(err)
	_, err = o.Apply(order.TriggerPaymentFailed, later.Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, o))

	restored, err := suite.repository.GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, restored.Status())
	suite.Equal("Cancelled: PaymentFailed", restored.Description())
	confirmedAt, ok := restored.TransitionedAt(order.StockConfirmed)
	suite.True(ok)
	suite.True(later.Equal(confirmedAt))
	suite.assertCount("order_items", 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UnknownOrder() {
	o := fixtures.DraftOrder(suite.T())
	suite.Require().NoError(o.AssignID(77))

	err := suite.repository.Update(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetPendingSubmittedBefore() {
	ctx := context.Background()

	old := fixtures.OrderIn(suite.T(), order.TriggerSubmit)
	suite.Require().NoError(suite.repository.Add(ctx, old))

	confirmed := fixtures.OrderIn(suite.T(), order.TriggerSubmit, order.TriggerStockConfirmed)
	suite.Require().NoError(suite.repository.Add(ctx, confirmed))

	recent := fixtures.DraftOrder(suite.T())
	_, err := recent.Apply(order.TriggerSubmit, fixtures.Now.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, recent))

	orders, err := suite.repository.GetPendingSubmittedBefore(ctx, fixtures.Now.Add(time.Minute), 10)

	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.Equal(old.ID(), orders[0].ID())
	suite.Len(orders[0].Items(), 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) assertCount(table string, expected int64) {
	var count int64
	suite.Require().NoError(suite.database.DB.Table(table).Count(&count).Error)
	suite.Equal(expected, count)
}
