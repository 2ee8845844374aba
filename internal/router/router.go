package router

import (
	"time"

	"github.com/tettoewai/restaurant-pos-sub001/internal/config"
	"github.com/tettoewai/restaurant-pos-sub001/internal/handler"
	"github.com/tettoewai/restaurant-pos-sub001/internal/middleware"
	"github.com/tettoewai/restaurant-pos-sub001/internal/realtime"
	"github.com/tettoewai/restaurant-pos-sub001/internal/repository"
	"github.com/tettoewai/restaurant-pos-sub001/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
//
// The publisher, hub and WMS service are shared with the background workers,
// so the composition root owns them and passes them in.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client,
	publisher *realtime.Publisher, hub *realtime.Hub,
	wmsSvc service.WMSService) *gin.Engine {

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	poRepo := repository.NewPurchaseOrderRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	menuSvc := service.NewMenuService(menuRepo, warehouseRepo, promotionRepo, rdb)
	orderSvc := service.NewOrderService(orderRepo, menuRepo, userRepo, promotionRepo, publisher)
	warehouseSvc := service.NewWarehouseService(warehouseRepo, supplierRepo)
	poSvc := service.NewPurchaseOrderService(poRepo, warehouseRepo, supplierRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	menusH := handler.NewMenusHandler(menuSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	warehouseH := handler.NewWarehouseHandler(warehouseSvc)
	poH := handler.NewPurchaseOrdersHandler(poSvc)
	wmsH := handler.NewWMSHandler(wmsSvc)
	wsH := handler.NewWSHandler(hub)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// QR ordering surface — diners are anonymous, the table token is the
	// only credential.
	public := r.Group("/public")
	{
		public.GET("/tables/:token", ordersH.ResolveTable)
		public.POST("/orders", ordersH.CreateOrder)
		public.GET("/orders/:tableId", ordersH.GetTableOrders)
	}

	// External scheduler
	r.GET("/api/cron/wms-check", middleware.CronAuth(cfg.CronSecret), wmsH.CronCheck)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		staff := middleware.RequireRole("waiter", "manager", "admin")
		backoffice := middleware.RequireRole("manager", "admin")

		// Order board + payment — every staff role
		v1.PATCH("/orders/:id/status", staff, ordersH.UpdateStatus)
		v1.POST("/orders/pay", staff, ordersH.Pay)
		v1.GET("/receipts", staff, ordersH.ListReceipts)
		v1.GET("/receipts/:id", staff, ordersH.GetReceipt)
		v1.GET("/ws", staff, wsH.Serve)

		// Catalog — all staff can read, managers write
		v1.GET("/menus", staff, menusH.ListMenus)
		v1.GET("/addons", staff, menusH.ListAddons)
		v1.GET("/menu-categories", staff, menusH.ListMenuCategories)
		v1.GET("/addon-categories", staff, menusH.ListAddonCategories)
		v1.GET("/promotions", staff, menusH.ListPromotions)

		menus := v1.Group("", backoffice)
		{
			menus.POST("/menus", menusH.CreateMenu)
			menus.DELETE("/menus/:id", menusH.DeleteMenu)
			menus.PUT("/menus/:id/ingredients", menusH.SetMenuIngredients)
			menus.GET("/menus/:id/ingredients", menusH.GetMenuIngredients)
			menus.POST("/addons", menusH.CreateAddon)
			menus.PUT("/addons/:id/ingredients", menusH.SetAddonIngredients)
			menus.POST("/menu-categories", menusH.CreateMenuCategory)
			menus.POST("/addon-categories", menusH.CreateAddonCategory)
			menus.POST("/promotions", menusH.CreatePromotion)
			menus.DELETE("/promotions/:id", menusH.DeletePromotion)
		}

		// Warehouse + suppliers — backoffice only
		wh := v1.Group("", backoffice)
		{
			wh.POST("/warehouses", warehouseH.CreateWarehouse)
			wh.GET("/warehouses", warehouseH.ListWarehouses)
			wh.GET("/warehouses/:id/stock", warehouseH.GetStock)
			wh.POST("/warehouse-items", warehouseH.CreateItem)
			wh.GET("/warehouse-items", warehouseH.ListItems)
			wh.PUT("/warehouse-items/:id", warehouseH.UpdateItem)
			wh.POST("/stock/adjust", warehouseH.AdjustStock)
			wh.GET("/stock-movements", warehouseH.ListMovements)
			wh.POST("/suppliers", warehouseH.CreateSupplier)
			wh.GET("/suppliers", warehouseH.ListSuppliers)
		}

		// Purchase orders — backoffice only
		po := v1.Group("/purchase-orders", backoffice)
		{
			po.POST("", poH.Create)
			po.GET("", poH.List)
			po.GET("/:id", poH.Get)
			po.PUT("/:id", poH.Update)
			po.DELETE("/:id", poH.Delete)
			po.POST("/:id/receive", poH.Receive)
			po.POST("/:id/cancel", poH.Cancel)
			po.POST("/:id/correct", poH.Correct)
		}

		// Availability checker + notifications — backoffice only
		wms := v1.Group("", backoffice)
		{
			wms.GET("/wms/check", wmsH.Check)
			wms.GET("/wms/results", wmsH.ListResults)
			wms.GET("/notifications", wmsH.ListNotifications)
			wms.PATCH("/notifications/:id/read", wmsH.MarkNotificationRead)
		}

		// User management — admin only
		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
