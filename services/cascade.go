package services

import "github.com/recati/comanda-app/models"

// Central cascade rules for hard deletes. Every reference an entity may hold
// is resolved here, in one place, instead of ad hoc filters in each handler:
//
//	Product  -> OrderItem.ProductID (line items removed, orders recomputed)
//	Addon    -> Product.AllowedAddonIDs, OrderItemAddon.AddonID
//	Order    -> Payment.OrderID
//
// Callers run these inside a store mutation; the recalc pass that follows
// restores every derived field.

// cascadeDeleteProduct strips the product from every order's line items and
// returns how many items were removed.
func cascadeDeleteProduct(snap *models.Snapshot, productID uint) int {
	removed := 0
	for i := range snap.Orders {
		order := &snap.Orders[i]
		kept := order.Items[:0]
		for _, item := range order.Items {
			if item.ProductID == productID {
				removed++
				continue
			}
			kept = append(kept, item)
		}
		order.Items = kept
	}
	return removed
}

// cascadeDeleteAddon removes the addon from every product's eligibility set
// and from every placed line item's addon applications.
func cascadeDeleteAddon(snap *models.Snapshot, addonID uint) {
	for i := range snap.Products {
		product := &snap.Products[i]
		kept := product.AllowedAddonIDs[:0]
		for _, id := range product.AllowedAddonIDs {
			if id != addonID {
				kept = append(kept, id)
			}
		}
		product.AllowedAddonIDs = kept
	}
	for i := range snap.Orders {
		order := &snap.Orders[i]
		for j := range order.Items {
			item := &order.Items[j]
			kept := item.Addons[:0]
			for _, app := range item.Addons {
				if app.AddonID != addonID {
					kept = append(kept, app)
				}
			}
			item.Addons = kept
		}
	}
}

// cascadeDeleteOrderPayments drops every payment of an order and returns the
// count for the caller's cascade report.
func cascadeDeleteOrderPayments(snap *models.Snapshot, orderID uint) int {
	removed := 0
	kept := snap.Payments[:0]
	for _, p := range snap.Payments {
		if p.OrderID == orderID {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	snap.Payments = kept
	return removed
}
