package queries_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/testkit/fixtures"
	"ordering/internal/testkit/pgtest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	database  *pgtest.Database
	orderRepo *orderrepo.GormOrderRepository
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.orderRepo = orderrepo.NewGormOrderRepository(database.DB)
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *QueryHandlersIntegrationTestSuite) addOrder(buyerID string, triggers ...order.Trigger) *order.Order {
	buyer, err := order.NewBuyer(buyerID, "Buyer "+buyerID)
	suite.Require().NoError(err)
	second, err := order.NewItem(2, "B", decimal.RequireFromString("1.25"), 4)
	suite.Require().NoError(err)

	o, err := order.NewOrder(buyer, fixtures.Address(suite.T()), fixtures.PaymentMethod(suite.T()),
		append(fixtures.Items(suite.T()), second), fixtures.Now)
	suite.Require().NoError(err)
	for _, trigger := range triggers {
		_, err = o.Apply(trigger, fixtures.Now.Add(time.Minute))
		suite.Require().NoError(err)
	}
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder() {
	o := suite.addOrder("user-1", order.TriggerSubmit, order.TriggerStockConfirmed)
	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetOrderQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(o.ID(), view.OrderNumber)
	suite.Equal("StockConfirmed", view.Status)
	suite.Equal("user-1", view.BuyerID)
	suite.Equal("Seattle", view.City)
	suite.True(fixtures.Now.Equal(view.Date))
	suite.Require().Len(view.Items, 2)
	suite.Equal("A", view.Items[0].ProductName)
	suite.True(decimal.NewFromInt(24).Equal(view.Total), view.Total.String())
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_NotFound() {
	query, err := queries.NewGetOrderQuery(999)
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrdersForUser() {
	first := suite.addOrder("user-1", order.TriggerSubmit)
	second := suite.addOrder("user-1", order.TriggerSubmit, order.TriggerCancelRequested)
	suite.addOrder("user-2", order.TriggerSubmit)

	query, err := queries.NewGetOrdersForUserQuery("user-1")
	suite.Require().NoError(err)

	summaries, err := queries.NewGetOrdersForUserQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(summaries, 2)
	suite.Equal(second.ID(), summaries[0].OrderNumber)
	suite.Equal("Cancelled", summaries[0].Status)
	suite.Equal(first.ID(), summaries[1].OrderNumber)
	suite.Equal("Pending", summaries[1].Status)
	suite.True(decimal.NewFromInt(24).Equal(summaries[1].Total))
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrdersForUser_NoOrders() {
	query, err := queries.NewGetOrdersForUserQuery("nobody")
	suite.Require().NoError(err)

	summaries, err := queries.NewGetOrdersForUserQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(summaries)
	suite.Empty(summaries)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetCardTypes() {
	cardTypes, err := queries.NewGetCardTypesQueryHandler(suite.database.DB).
		Handle(context.Background(), queries.NewGetCardTypesQuery())

	suite.Require().NoError(err)
	suite.Equal([]queries.CardType{{ID: 1, Name: "Amex"}, {ID: 2, Name: "Visa"}, {ID: 3, Name: "MasterCard"}}, cardTypes)
}
