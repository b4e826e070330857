package server

import (
	"github.com/go-chi/chi"
	"github.com/myliquor/myliquor-server/handlers"
	"github.com/myliquor/myliquor-server/middlewares"
)

func adminRoutes(r chi.Router) {
	r.Group(func(admin chi.Router) {
		admin.Use(middlewares.AdminAuthMiddleware)

		// fcm
		admin.Post("/fcm", handlers.RegisterDeviceToken)

		// sales
		admin.Route("/sale", func(sale chi.Router) {
			sale.Get("/", handlers.GetAllSales)
			sale.Post("/", handlers.CreateSale)
			sale.Get("/{saleId}", handlers.GetSaleWithTheme)
			sale.Put("/{saleId}", handlers.UpdateSale)
			sale.Post("/{saleId}/activate", handlers.ActivateSale)

			// products of a sale
			sale.Route("/{saleId}/product", func(product chi.Router) {
				product.Get("/", handlers.GetSaleProducts)
				product.Post("/", handlers.CreateProduct)
				product.Put("/reorder", handlers.ReorderProducts)
			})

			// images
			sale.Post("/{saleId}/image", handlers.UploadProductImage)

			// flyer export
			sale.Get("/{saleId}/flyer", handlers.ExportFlyer)
		})

		// products addressed directly
		admin.Route("/product", func(product chi.Router) {
			product.Put("/{productId}", handlers.UpdateProduct)
			product.Delete("/{productId}", handlers.DeleteProduct)
		})

		// price validation for live form feedback
		admin.Post("/price/validate", handlers.ValidatePrice)

		// themes
		admin.Route("/theme", func(theme chi.Router) {
			theme.Get("/", handlers.GetAllThemes)
			theme.Post("/", handlers.CreateTheme)
			theme.Put("/{themeId}", handlers.UpdateTheme)
			theme.Delete("/{themeId}", handlers.DeleteTheme)
			theme.Post("/header-image", handlers.UploadThemeHeader)
		})
	})
}
