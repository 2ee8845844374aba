package service_test

import (
	"context"
	"testing"

	"github.com/tettoewai/restaurant-pos-sub001/internal/model"
	"github.com/tettoewai/restaurant-pos-sub001/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wmsFixture struct {
	companyID uuid.UUID
	svc       service.WMSService
	wmsRepo   *stubWMSRepo
	menuRepo  *stubMenuRepo
	whRepo    *stubWarehouseRepo
	warehouse *model.Warehouse
}

func newWMSFixture(t *testing.T) *wmsFixture {
	t.Helper()
	companyID := uuid.New()
	wmsRepo := &stubWMSRepo{}
	menuRepo := newStubMenuRepo()
	whRepo := newStubWarehouseRepo()
	warehouse := &model.Warehouse{CompanyID: companyID, Name: "Main"}
	require.NoError(t, whRepo.CreateWarehouse(context.Background(), warehouse))
	return &wmsFixture{
		companyID: companyID,
		svc:       service.NewWMSService(wmsRepo, menuRepo, whRepo, nil),
		wmsRepo:   wmsRepo,
		menuRepo:  menuRepo,
		whRepo:    whRepo,
		warehouse: warehouse,
	}
}

func (f *wmsFixture) seedMenu(t *testing.T, name string) *model.Menu {
	t.Helper()
	m := &model.Menu{CompanyID: f.companyID, Name: name, Price: d("1000")}
	require.NoError(t, f.menuRepo.CreateMenu(context.Background(), m))
	return m
}

func (f *wmsFixture) seedItem(t *testing.T, name string, threshold string) *model.WarehouseItem {
	t.Helper()
	item := &model.WarehouseItem{
		CompanyID:    f.companyID,
		Name:         name,
		Unit:         model.UnitG,
		UnitCategory: model.CategoryMass,
		Threshold:    d(threshold),
	}
	require.NoError(t, f.whRepo.CreateItem(context.Background(), item))
	return item
}

func (f *wmsFixture) addStock(t *testing.T, itemID uuid.UUID, qty string) {
	t.Helper()
	require.NoError(t, f.whRepo.AddStockTx(nil, itemID, f.warehouse.ID, d(qty)))
}

// seedIssues sets up one finding of each kind:
//   - menu "Tea" with no ingredient mapping
//   - addon "Extra Fish" with no ingredient mapping
//   - fish: 200 g required vs 100 g in stock
//   - oil: 400 g in stock at a 500 g threshold
func (f *wmsFixture) seedIssues(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	mohinga := f.seedMenu(t, "Mohinga")
	f.seedMenu(t, "Tea")

	fish := f.seedItem(t, "Fish", "0")
	oil := f.seedItem(t, "Oil", "500")

	require.NoError(t, f.menuRepo.ReplaceMenuIngredients(ctx, mohinga.ID, []model.MenuItemIngredient{
		{ItemID: fish.ID, Quantity: d("200")},
	}))
	addon := &model.Addon{CompanyID: f.companyID, CategoryID: uuid.New(), Name: "Extra Fish", Price: d("500")}
	require.NoError(t, f.menuRepo.CreateAddon(ctx, addon))

	f.addStock(t, fish.ID, "100")
	f.addStock(t, oil.ID, "400")
}

func TestWMSCheckReturnsEmptyArraysNotNil(t *testing.T) {
	f := newWMSFixture(t)

	data, err := f.svc.Check(context.Background(), f.companyID)
	require.NoError(t, err)

	assert.NotNil(t, data.MenusWithoutIngredients)
	assert.NotNil(t, data.AddonsWithoutIngredients)
	assert.NotNil(t, data.NotEnoughIngredients)
	assert.NotNil(t, data.HitThresholdStocks)
	assert.Equal(t, 0, data.IssuesCount())
}

func TestWMSCheckFindsAllFourIssueKinds(t *testing.T) {
	f := newWMSFixture(t)
	f.seedIssues(t)

	data, err := f.svc.Check(context.Background(), f.companyID)
	require.NoError(t, err)

	require.Len(t, data.MenusWithoutIngredients, 1)
	assert.Equal(t, "Tea", data.MenusWithoutIngredients[0].Name)

	// An addon mapped nowhere lands in the global group.
	require.Len(t, data.AddonsWithoutIngredients, 1)
	assert.Empty(t, data.AddonsWithoutIngredients[0].MenuID)
	require.Len(t, data.AddonsWithoutIngredients[0].Addons, 1)
	assert.Equal(t, "Extra Fish", data.AddonsWithoutIngredients[0].Addons[0].Name)

	require.Len(t, data.NotEnoughIngredients, 1)
	short := data.NotEnoughIngredients[0]
	assert.Equal(t, "Fish", short.ItemName)
	assert.True(t, short.Required.Equal(d("200")))
	assert.True(t, short.Stock.Equal(d("100")))
	assert.True(t, short.Shortage.Equal(d("100")))

	require.Len(t, data.HitThresholdStocks, 1)
	hit := data.HitThresholdStocks[0]
	assert.Equal(t, "Oil", hit.ItemName)
	assert.True(t, hit.Threshold.Equal(d("500")))
	assert.True(t, hit.Stock.Equal(d("400")))

	assert.Equal(t, 4, data.IssuesCount())
}

func TestWMSThresholdAtExactBoundaryFires(t *testing.T) {
	f := newWMSFixture(t)
	oil := f.seedItem(t, "Oil", "500")
	f.addStock(t, oil.ID, "500")

	data, err := f.svc.Check(context.Background(), f.companyID)
	require.NoError(t, err)
	require.Len(t, data.HitThresholdStocks, 1, "stock equal to threshold is a hit")
}

func TestWMSZeroThresholdNeverFires(t *testing.T) {
	f := newWMSFixture(t)
	f.seedItem(t, "Rice", "0")

	data, err := f.svc.Check(context.Background(), f.companyID)
	require.NoError(t, err)
	assert.Empty(t, data.HitThresholdStocks)
}

func TestWMSRunScheduledCleanRunWritesNothing(t *testing.T) {
	f := newWMSFixture(t)

	resp, err := f.svc.RunScheduled(context.Background(), f.companyID)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 0, resp.IssuesCount)
	assert.False(t, resp.NotificationCreated)
	assert.Empty(t, f.wmsRepo.results)
	assert.Empty(t, f.wmsRepo.notifications)
}

func TestWMSRunScheduledPersistsSnapshotAndNotifies(t *testing.T) {
	f := newWMSFixture(t)
	f.seedIssues(t)

	resp, err := f.svc.RunScheduled(context.Background(), f.companyID)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 4, resp.IssuesCount)
	assert.True(t, resp.NotificationCreated)
	assert.Equal(t, 1, resp.Details.MenusWithoutIngredients)
	assert.Equal(t, 1, resp.Details.AddonsWithoutIngredients)
	assert.Equal(t, 1, resp.Details.NotEnoughIngredients)
	assert.Equal(t, 1, resp.Details.HitThresholdStocks)

	require.Len(t, f.wmsRepo.results, 1)
	assert.Equal(t, f.companyID, f.wmsRepo.results[0].CompanyID)
	assert.Equal(t, 4, f.wmsRepo.results[0].IssuesCount)

	require.Len(t, f.wmsRepo.notifications, 1)
	n := f.wmsRepo.notifications[0]
	assert.Equal(t, "wms_check", n.Kind)
	assert.Equal(t, f.companyID, n.CompanyID)
	assert.Nil(t, n.ReadAt)
}

func TestWMSRunScheduledAllSweepsEveryTenant(t *testing.T) {
	f := newWMSFixture(t)
	f.seedIssues(t)
	cleanCompany := uuid.New()
	f.wmsRepo.companyIDs = []uuid.UUID{f.companyID, cleanCompany}

	resp, err := f.svc.RunScheduledAll(context.Background())
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 4, resp.IssuesCount, "only the tenant with issues contributes")
	assert.True(t, resp.NotificationCreated)
	require.Len(t, f.wmsRepo.results, 1)
	require.Len(t, f.wmsRepo.notifications, 1)
}

func TestWMSMarkNotificationRead(t *testing.T) {
	f := newWMSFixture(t)
	f.seedIssues(t)
	_, err := f.svc.RunScheduled(context.Background(), f.companyID)
	require.NoError(t, err)

	unread, err := f.svc.ListNotifications(context.Background(), f.companyID, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)

	require.NoError(t, f.svc.MarkNotificationRead(context.Background(), unread[0].ID))

	unread, err = f.svc.ListNotifications(context.Background(), f.companyID, true)
	require.NoError(t, err)
	assert.Empty(t, unread)
}
