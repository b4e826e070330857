package realtime

import (
	"sort"

	"github.com/myliquor/myliquor-server/models"
)

// ApplySaleEvent folds one sales change event into an in-memory list:
// inserts are added and the list re-sorted newest first, updates replace by
// id, deletes remove by id.
func ApplySaleEvent(sales []models.Sale, ev models.ChangeEvent) []models.Sale {
	switch ev.Type {
	case models.EventInsert:
		sale, ok := ev.New.(models.Sale)
		if !ok {
			return sales
		}
		out := append([]models.Sale{sale}, sales...)
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
		return out
	case models.EventUpdate:
		sale, ok := ev.New.(models.Sale)
		if !ok {
			return sales
		}
		out := make([]models.Sale, len(sales))
		copy(out, sales)
		for i := range out {
			if out[i].ID == sale.ID {
				out[i] = sale
			}
		}
		return out
	case models.EventDelete:
		sale, ok := ev.Old.(models.Sale)
		if !ok {
			return sales
		}
		out := make([]models.Sale, 0, len(sales))
		for _, s := range sales {
			if s.ID != sale.ID {
				out = append(out, s)
			}
		}
		return out
	}
	return sales
}

// ApplyProductEvent folds one sale_products change event into an in-memory
// list, keeping it sorted by position ascending.
func ApplyProductEvent(products []models.SaleProduct, ev models.ChangeEvent) []models.SaleProduct {
	switch ev.Type {
	case models.EventInsert:
		product, ok := ev.New.(models.SaleProduct)
		if !ok {
			return products
		}
		out := append(append([]models.SaleProduct{}, products...), product)
		sortByPosition(out)
		return out
	case models.EventUpdate:
		product, ok := ev.New.(models.SaleProduct)
		if !ok {
			return products
		}
		out := make([]models.SaleProduct, len(products))
		copy(out, products)
		for i := range out {
			if out[i].ID == product.ID {
				out[i] = product
			}
		}
		sortByPosition(out)
		return out
	case models.EventDelete:
		product, ok := ev.Old.(models.SaleProduct)
		if !ok {
			return products
		}
		out := make([]models.SaleProduct, 0, len(products))
		for _, p := range products {
			if p.ID != product.ID {
				out = append(out, p)
			}
		}
		return out
	}
	return products
}

func sortByPosition(products []models.SaleProduct) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Position < products[j].Position
	})
}
