package service_test

import (
	"context"
	"testing"

	"github.com/tettoewai/restaurant-pos-sub001/internal/dto"
	"github.com/tettoewai/restaurant-pos-sub001/internal/model"
	"github.com/tettoewai/restaurant-pos-sub001/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	companyID uuid.UUID
	svc       service.OrderService
	orderRepo *stubOrderRepo
	menuRepo  *stubMenuRepo
	promoRepo *stubPromotionRepo
	table     *model.DiningTable
}

func newOrderFixture(t *testing.T, taxRate int) *orderFixture {
	t.Helper()
	companyID := uuid.New()

	menuRepo := newStubMenuRepo()
	orderRepo := newStubOrderRepo(menuRepo)
	userRepo := newStubUserRepo()
	promoRepo := newStubPromotionRepo()

	location := &model.Location{ID: uuid.New(), CompanyID: companyID, Name: "Main Branch", TaxRate: taxRate}
	userRepo.locations[location.ID] = location
	table := &model.DiningTable{ID: uuid.New(), LocationID: location.ID, Name: "Table 1", QRToken: "tok-1"}
	userRepo.tables[table.ID] = table

	return &orderFixture{
		companyID: companyID,
		svc:       service.NewOrderService(orderRepo, menuRepo, userRepo, promoRepo, nil),
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		promoRepo: promoRepo,
		table:     table,
	}
}

func (f *orderFixture) seedMenu(t *testing.T, name, price string) *model.Menu {
	t.Helper()
	m := &model.Menu{CompanyID: f.companyID, Name: name, Price: d(price)}
	require.NoError(t, f.menuRepo.CreateMenu(context.Background(), m))
	return m
}

func (f *orderFixture) seedAddon(t *testing.T, name, price string) *model.Addon {
	t.Helper()
	a := &model.Addon{CompanyID: f.companyID, CategoryID: uuid.New(), Name: name, Price: d(price)}
	require.NoError(t, f.menuRepo.CreateAddon(context.Background(), a))
	return a
}

func (f *orderFixture) order(t *testing.T, lines ...dto.OrderLineRequest) *dto.TableOrdersResponse {
	t.Helper()
	resp, err := f.svc.CreateOrder(context.Background(), dto.CreateOrderRequest{
		TableID: f.table.ID.String(),
		Lines:   lines,
	})
	require.NoError(t, err)
	return resp
}

func TestResolveTable(t *testing.T) {
	f := newOrderFixture(t, 5)

	table, err := f.svc.ResolveTable(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, f.table.ID, table.ID)

	_, err = f.svc.ResolveTable(context.Background(), "bogus")
	require.Error(t, err)
	assert.True(t, service.IsValidation(err))
}

func TestCreateOrderMergesIdenticalLines(t *testing.T) {
	f := newOrderFixture(t, 5)
	curry := f.seedMenu(t, "Chicken Curry", "4000")
	egg := f.seedAddon(t, "Extra Egg", "500")

	line := dto.OrderLineRequest{MenuID: curry.ID.String(), AddonIDs: []string{egg.ID.String()}, Quantity: 1}
	f.order(t, line)
	resp := f.order(t, line)

	// Same menu + addon set folds into one line with the summed quantity.
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, 2, resp.Lines[0].Quantity)
	assert.True(t, resp.SubTotal.Equal(d("9000")))
}

func TestCreateOrderKeepsDifferentAddonSetsApart(t *testing.T) {
	f := newOrderFixture(t, 5)
	curry := f.seedMenu(t, "Chicken Curry", "4000")
	egg := f.seedAddon(t, "Extra Egg", "500")

	f.order(t, dto.OrderLineRequest{MenuID: curry.ID.String(), Quantity: 1})
	resp := f.order(t, dto.OrderLineRequest{MenuID: curry.ID.String(), AddonIDs: []string{egg.ID.String()}, Quantity: 1})

	require.Len(t, resp.Lines, 2)
}

func TestCreateOrderRejectsForeignMenu(t *testing.T) {
	f := newOrderFixture(t, 5)
	foreign := &model.Menu{CompanyID: uuid.New(), Name: "Other Tenant Dish", Price: d("100")}
	require.NoError(t, f.menuRepo.CreateMenu(context.Background(), foreign))

	_, err := f.svc.CreateOrder(context.Background(), dto.CreateOrderRequest{
		TableID: f.table.ID.String(),
		Lines:   []dto.OrderLineRequest{{MenuID: foreign.ID.String(), Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, service.IsValidation(err))
}

func TestCreateOrderGrantsFocPromotionOnce(t *testing.T) {
	f := newOrderFixture(t, 5)
	curry := f.seedMenu(t, "Chicken Curry", "4000")
	tea := f.seedMenu(t, "Tea", "600")

	focMenuID := tea.ID
	require.NoError(t, f.promoRepo.Create(context.Background(), &model.Promotion{
		CompanyID: f.companyID,
		Name:      "Free tea",
		FocMenuID: &focMenuID,
	}))

	resp := f.order(t, dto.OrderLineRequest{MenuID: curry.ID.String(), Quantity: 1})
	require.Len(t, resp.Lines, 2)

	var foc *dto.OrderLineResponse
	for i := range resp.Lines {
		if resp.Lines[i].IsFoc {
			foc = &resp.Lines[i]
		}
	}
	require.NotNil(t, foc)
	assert.Equal(t, tea.ID.String(), foc.MenuID)
	assert.True(t, foc.SubTotal.IsZero(), "free-of-charge line never contributes")

	// A second round of ordering must not grant the same promotion again.
	resp = f.order(t, dto.OrderLineRequest{MenuID: curry.ID.String(), Quantity: 1})
	focCount := 0
	for _, l := range resp.Lines {
		if l.IsFoc {
			focCount++
		}
	}
	assert.Equal(t, 1, focCount)
}

func TestUpdateStatusTransitions(t *testing.T) {
	f := newOrderFixture(t, 5)
	curry := f.seedMenu(t, "Chicken Curry", "4000")
	resp := f.order(t, dto.OrderLineRequest{MenuID: curry.ID.String(), Quantity: 1})
	orderID := uuid.MustParse(resp.Lines[0].ID)
	ctx := context.Background()

	// PENDING cannot jump straight to COMPLETE.
	err := f.svc.UpdateStatus(ctx, f.companyID, orderID, "COMPLETE")
	require.Error(t, err)
	assert.True(t, service.IsStateConflict(err))
	assert.EqualError(t, err, "Cannot move order from PENDING to COMPLETE.")

	require.NoError(t, f.svc.UpdateStatus(ctx, f.companyID, orderID, "COOKING"))
	require.NoError(t, f.svc.UpdateStatus(ctx, f.companyID, orderID, "COMPLETE"))

	// Kitchen can send a line back.
	require.NoError(t, f.svc.UpdateStatus(ctx, f.companyID, orderID, "COOKING"))
	require.NoError(t, f.svc.UpdateStatus(ctx, f.companyID, orderID, "CANCELLED"))

	// CANCELLED is terminal.
	err = f.svc.UpdateStatus(ctx, f.companyID, orderID, "PENDING")
	require.Error(t, err)
	assert.True(t, service.IsStateConflict(err))
}

func TestPayComputesReceiptTotals(t *testing.T) {
	f := newOrderFixture(t, 5)
	curry := f.seedMenu(t, "Chicken Curry", "4000")
	egg := f.seedAddon(t, "Extra Egg", "500")
	tea := f.seedMenu(t, "Tea", "600")

	resp := f.order(t,
		dto.OrderLineRequest{MenuID: curry.ID.String(), AddonIDs: []string{egg.ID.String()}, Quantity: 4},
		dto.OrderLineRequest{MenuID: tea.ID.String(), Quantity: 1},
	)
	require.Len(t, resp.Lines, 2)

	lines := make([]dto.PayLineRequest, 0, len(resp.Lines))
	for _, l := range resp.Lines {
		lines = append(lines, dto.PayLineRequest{OrderID: l.ID, Quantity: l.Remaining})
	}

	receipt, err := f.svc.Pay(context.Background(), f.companyID, dto.PayOrderRequest{
		TableID:  f.table.ID.String(),
		Lines:    lines,
		Discount: d("1000"),
	})
	require.NoError(t, err)

	// (4000+500)×4 + 600×1 = 18600; net 17600; 5% tax 880.
	assert.Equal(t, "R-000001", receipt.Code)
	assert.True(t, receipt.SubTotal.Equal(d("18600")), receipt.SubTotal.String())
	assert.True(t, receipt.Discount.Equal(d("1000")))
	assert.True(t, receipt.Tax.Equal(d("880")), receipt.Tax.String())
	assert.True(t, receipt.Total.Equal(d("18480")), receipt.Total.String())
	assert.Len(t, receipt.Lines, 2)

	// Everything is paid; the table is clean.
	board, err := f.svc.GetTableOrders(context.Background(), f.table.ID)
	require.NoError(t, err)
	assert.Empty(t, board.Lines)
}

func TestPayDiscountNeverGoesNegative(t *testing.T) {
	f := newOrderFixture(t, 5)
	tea := f.seedMenu(t, "Tea", "600")
	resp := f.order(t, dto.OrderLineRequest{MenuID: tea.ID.String(), Quantity: 1})

	receipt, err := f.svc.Pay(context.Background(), f.companyID, dto.PayOrderRequest{
		TableID:  f.table.ID.String(),
		Lines:    []dto.PayLineRequest{{OrderID: resp.Lines[0].ID, Quantity: 1}},
		Discount: d("5000"),
	})
	require.NoError(t, err)

	assert.True(t, receipt.SubTotal.Equal(d("600")))
	assert.True(t, receipt.Tax.IsZero())
	assert.True(t, receipt.Total.IsZero())
}

func TestPayPartialQuantitySplitsLine(t *testing.T) {
	f := newOrderFixture(t, 5)
	curry := f.seedMenu(t, "Chicken Curry", "4000")
	egg := f.seedAddon(t, "Extra Egg", "500")

	resp := f.order(t, dto.OrderLineRequest{
		MenuID: curry.ID.String(), AddonIDs: []string{egg.ID.String()}, Quantity: 3,
	})
	originalID := uuid.MustParse(resp.Lines[0].ID)

	receipt, err := f.svc.Pay(context.Background(), f.companyID, dto.PayOrderRequest{
		TableID: f.table.ID.String(),
		Lines:   []dto.PayLineRequest{{OrderID: originalID.String(), Quantity: 2}},
	})
	require.NoError(t, err)

	// Paid 2 of 3: receipt covers (4000+500)×2.
	assert.True(t, receipt.SubTotal.Equal(d("9000")), receipt.SubTotal.String())
	require.Len(t, receipt.Lines, 1)
	assert.Equal(t, 2, receipt.Lines[0].Quantity)
	assert.NotEqual(t, originalID.String(), receipt.Lines[0].ID, "payment splits off a new record")

	// The split record points back at the original and snapshots the addons.
	split, err := f.orderRepo.FindByID(context.Background(), uuid.MustParse(receipt.Lines[0].ID))
	require.NoError(t, err)
	require.NotNil(t, split.PaidFrom)
	assert.Equal(t, originalID, *split.PaidFrom)
	assert.Equal(t, model.OrderPaid, split.Status)
	require.Len(t, split.Addons, 1)
	assert.True(t, split.Addons[0].Price.Equal(d("500")))

	// The remainder stays on the board, still unpaid.
	board, err := f.svc.GetTableOrders(context.Background(), f.table.ID)
	require.NoError(t, err)
	require.Len(t, board.Lines, 1)
	assert.Equal(t, originalID.String(), board.Lines[0].ID)
	assert.Equal(t, 1, board.Lines[0].Quantity)
	assert.Equal(t, 1, board.Lines[0].Remaining)
}

func TestPayRejectsOverdrawAndDuplicates(t *testing.T) {
	f := newOrderFixture(t, 5)
	tea := f.seedMenu(t, "Tea", "600")
	resp := f.order(t, dto.OrderLineRequest{MenuID: tea.ID.String(), Quantity: 2})
	orderID := resp.Lines[0].ID
	ctx := context.Background()

	_, err := f.svc.Pay(ctx, f.companyID, dto.PayOrderRequest{
		TableID: f.table.ID.String(),
		Lines:   []dto.PayLineRequest{{OrderID: orderID, Quantity: 3}},
	})
	require.Error(t, err)
	assert.True(t, service.IsValidation(err))

	_, err = f.svc.Pay(ctx, f.companyID, dto.PayOrderRequest{
		TableID: f.table.ID.String(),
		Lines: []dto.PayLineRequest{
			{OrderID: orderID, Quantity: 1},
			{OrderID: orderID, Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.True(t, service.IsValidation(err))
}

func TestPayAppliesActiveDiscountPromotions(t *testing.T) {
	f := newOrderFixture(t, 0)
	tea := f.seedMenu(t, "Tea", "600")
	require.NoError(t, f.promoRepo.Create(context.Background(), &model.Promotion{
		CompanyID:      f.companyID,
		Name:           "Everyday 100 off",
		DiscountAmount: d("100"),
	}))

	resp := f.order(t, dto.OrderLineRequest{MenuID: tea.ID.String(), Quantity: 1})

	receipt, err := f.svc.Pay(context.Background(), f.companyID, dto.PayOrderRequest{
		TableID: f.table.ID.String(),
		Lines:   []dto.PayLineRequest{{OrderID: resp.Lines[0].ID, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.True(t, receipt.Discount.Equal(d("100")))
	assert.True(t, receipt.Total.Equal(d("500")))
}

func TestPayFocLineCostsNothing(t *testing.T) {
	f := newOrderFixture(t, 5)
	curry := f.seedMenu(t, "Chicken Curry", "4000")
	tea := f.seedMenu(t, "Tea", "600")
	focMenuID := tea.ID
	require.NoError(t, f.promoRepo.Create(context.Background(), &model.Promotion{
		CompanyID: f.companyID,
		Name:      "Free tea",
		FocMenuID: &focMenuID,
	}))

	resp := f.order(t, dto.OrderLineRequest{MenuID: curry.ID.String(), Quantity: 1})
	lines := make([]dto.PayLineRequest, 0, len(resp.Lines))
	for _, l := range resp.Lines {
		lines = append(lines, dto.PayLineRequest{OrderID: l.ID, Quantity: l.Remaining})
	}

	receipt, err := f.svc.Pay(context.Background(), f.companyID, dto.PayOrderRequest{
		TableID: f.table.ID.String(),
		Lines:   lines,
	})
	require.NoError(t, err)

	// Only the curry is billed; the granted tea rides along at zero.
	assert.True(t, receipt.SubTotal.Equal(d("4000")), receipt.SubTotal.String())
	assert.Len(t, receipt.Lines, 2)
}
