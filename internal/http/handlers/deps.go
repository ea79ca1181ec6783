package handlers

import (
	"go.mongodb.org/mongo-driver/mongo"

	"luxejewel/internal/payment"
	"luxejewel/internal/services"
	"luxejewel/internal/store"
)

type Deps struct {
	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	AdminHandler   *AdminHandler
}

func NewDeps(db *mongo.Database, auth *services.AuthService, gw payment.Gateway) *Deps {
	users := store.NewUserStore(db)
	prods := store.NewProductStore(db)
	carts := store.NewCartStore(db)
	orders := store.NewOrderStore(db)

	catalogSvc := services.NewCatalogService(prods)
	cartSvc := services.NewCartService(carts, prods)
	orderSvc := services.NewOrderService(carts, prods, orders, gw)
	analyticsSvc := services.NewAnalyticsService(users, prods, orders)

	return &Deps{
		AuthHandler:    &AuthHandler{Auth: auth},
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		OrderHandler:   &OrderHandler{Orders: orderSvc},
		AdminHandler:   &AdminHandler{AnalyticsSvc: analyticsSvc},
	}
}
