package projection

import (
	"log/slog"
	"math"
	"sort"

	"storefront/internal/metrics"
	"storefront/internal/models"
)

// Project joins the cart mapping with the resolved items into the
// display-ready list. Items whose id is no longer in the mapping are
// dropped; ids the resolver could not hydrate are simply absent, which is
// the steady-state policy for partial availability, not an error. The
// result is sorted by product id so identical inputs always produce an
// identical list.
func Project(mapping models.CartMapping, resolved []models.CartItem) []models.CartItem {
	items := make([]models.CartItem, 0, len(resolved))

	for _, item := range resolved {
		quantity, ok := mapping[item.ID.String()]
		if !ok {
			continue
		}

		item.Quantity = quantity
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})

	return items
}

// Subtotal sums quantity x price over the projected items. An item with a
// non-finite price or a quantity below 1 contributes nothing, and the
// coercion is logged and counted as a data-quality condition rather than
// silently folded into the total. A price of exactly zero is valid.
// The sum is currency-unaware; mixed-currency carts are out of scope.
func Subtotal(items []models.CartItem) models.Money {
	var total float64

	var currency string

	for _, item := range items {
		if currency == "" {
			currency = item.Price.Currency
		}

		amount := item.Price.Amount
		if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
			slog.Warn("skipping cart line with invalid price while totaling",
				slog.String("product_id", item.ID.String()),
				slog.Float64("amount", amount))
			metrics.PriceAnomalies.Inc()

			continue
		}

		if item.Quantity < 1 {
			slog.Warn("skipping cart line with invalid quantity while totaling",
				slog.String("product_id", item.ID.String()),
				slog.Int("quantity", item.Quantity))
			metrics.PriceAnomalies.Inc()

			continue
		}

		total += float64(item.Quantity) * amount
	}

	return models.Money{Amount: total, Currency: currency}
}
