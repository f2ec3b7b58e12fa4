package store

import (
	"fmt"
	"time"

	"github.com/recati/comanda-app/models"
)

type seedAddonApp struct {
	name string
	qty  int
}

type seedItem struct {
	product  string
	qty      int
	notes    string
	discount float64
	addons   []seedAddonApp
}

type seedPayment struct {
	method   models.PaymentMethod
	amount   float64
	ref      string
	terminal string
}

type seedOrder struct {
	code       string
	table      string
	notes      string
	status     models.OrderStatus
	delivery   models.DeliveryType
	minutesAgo int
	items      []seedItem
	payments   []seedPayment
}

// SeedSnapshot builds the demo churrascaria dataset used when the gateway
// has no snapshot yet: addons, products with eligibility links, twenty codes
// and a handful of tickets in mixed states.
func SeedSnapshot() *models.Snapshot {
	now := time.Now()
	snap := models.NewSnapshot()

	addonDefs := []struct {
		name  string
		price float64
	}{
		{"Farofa Extra", 3},
		{"Vinagrete", 2.5},
		{"Molho de Alho", 2},
		{"Queijo Coalho Extra", 4.5},
		{"Gelo e Limao", 1.5},
	}
	addonIDs := map[string]uint{}
	for _, def := range addonDefs {
		addon := models.Addon{
			ID:        models.NextID(&snap.Counters.Addon),
			Name:      def.name,
			Price:     models.MoneyFromFloat(def.price),
			Active:    true,
			CreatedAt: now,
		}
		snap.Addons = append(snap.Addons, addon)
		addonIDs[def.name] = addon.ID
	}

	eligibility := map[string][]string{
		"Buffet":                  {"Farofa Extra", "Vinagrete", "Molho de Alho"},
		"Mini Espeto":             {"Farofa Extra", "Vinagrete", "Molho de Alho"},
		"Espeto Completo":         {"Farofa Extra", "Vinagrete", "Molho de Alho", "Queijo Coalho Extra"},
		"Buffet Almoco":           {"Farofa Extra", "Vinagrete", "Molho de Alho"},
		"Bebidas":                 {"Gelo e Limao"},
		"Refrigerante Lata 350ml": {"Gelo e Limao"},
		"Suco Natural 500ml":      {"Gelo e Limao"},
		"Cerveja Long Neck":       {"Gelo e Limao"},
		"Costela Fatiada":         {"Farofa Extra", "Vinagrete", "Molho de Alho", "Queijo Coalho Extra"},
	}

	productDefs := []struct {
		name     string
		price    float64
		stock    int
		image    string
		category string
		desc     string
	}{
		{"Buffet", 59.9, 120, "/static/img/buffet.svg", "Buffet", "Buffet por kg"},
		{"Mini Espeto", 12.9, 180, "/static/img/espeto.svg", "Mini Espeto", "Espeto individual"},
		{"Espeto Completo", 34.9, 110, "/static/img/espeto.svg", "Espeto Completo", "Espeto com acompanhamentos"},
		{"Buffet Almoco", 39.9, 90, "/static/img/prato.svg", "Buffet Almoco", "Prato executivo de almoco"},
		{"Bebidas", 8.9, 250, "/static/img/bebida.svg", "Bebidas", "Item geral de bebidas"},
		{"Refrigerante Lata 350ml", 6.5, 260, "/static/img/bebida.svg", "Bebidas", "Coca, Guarana ou Zero"},
		{"Suco Natural 500ml", 9.5, 130, "/static/img/bebida.svg", "Bebidas", "Laranja ou abacaxi"},
		{"Agua Mineral 500ml", 4, 280, "/static/img/bebida.svg", "Bebidas", "Com ou sem gas"},
		{"Cerveja Long Neck", 12, 180, "/static/img/bebida.svg", "Bebidas", "Garrafa 355ml"},
		{"Pao de Alho", 8, 140, "/static/img/pao.svg", "Acompanhamento", "Unidade"},
		{"Queijo Coalho na Brasa", 11, 120, "/static/img/queijo.svg", "Acompanhamento", "Espeto de queijo"},
		{"Costela Fatiada", 44.9, 70, "/static/img/costela.svg", "Espeto Completo", "Porcao especial"},
	}
	productIDs := map[string]uint{}
	for _, def := range productDefs {
		var allowed []uint
		for _, name := range eligibility[def.name] {
			allowed = append(allowed, addonIDs[name])
		}
		product := models.Product{
			ID:              models.NextID(&snap.Counters.Product),
			Name:            def.name,
			Category:        def.category,
			Description:     def.desc,
			ImageURL:        def.image,
			Price:           models.MoneyFromFloat(def.price),
			Active:          true,
			TracksStock:     true,
			Stock:           def.stock,
			AllowedAddonIDs: allowed,
			CreatedAt:       now,
		}
		snap.Products = append(snap.Products, product)
		productIDs[def.name] = product.ID
	}

	for i := 1; i <= 20; i++ {
		snap.Codes = append(snap.Codes, models.ComandaCode{
			ID:        models.NextID(&snap.Counters.Code),
			Code:      fmt.Sprintf("C-%03d", i),
			Active:    true,
			CreatedAt: now,
		})
	}

	orders := []seedOrder{
		{code: "C-010", status: models.StatusOpen, delivery: models.DeliveryPickup, notes: "Sem mesa", minutesAgo: 25,
			items: []seedItem{{product: "Mini Espeto", qty: 2}}},
		{code: "C-003", status: models.StatusFinalized, delivery: models.DeliveryPickup, table: "5", notes: "Mesa 5", minutesAgo: 300,
			items:    []seedItem{{product: "Espeto Completo", qty: 1}, {product: "Agua Mineral 500ml", qty: 1}},
			payments: []seedPayment{{method: models.MethodPix, amount: 38.9, ref: "PIX-CH-01"}}},
		{code: "C-004", status: models.StatusFinalized, delivery: models.DeliveryDelivery, notes: "Rua das Brasas, 45", minutesAgo: 420,
			items:    []seedItem{{product: "Buffet Almoco", qty: 2}, {product: "Bebidas", qty: 1}},
			payments: []seedPayment{{method: models.MethodCreditCard, amount: 88.7, ref: "NSU-CH-9001", terminal: "MAQ-02"}}},
		{code: "C-007", status: models.StatusCancelled, delivery: models.DeliveryPickup, table: "2", notes: "Cliente desistiu", minutesAgo: 540,
			items: []seedItem{{product: "Buffet", qty: 1}}},
	}

	for _, def := range orders {
		createdAt := now.Add(-time.Duration(def.minutesAgo) * time.Minute)
		order := models.Order{
			ID:           models.NextID(&snap.Counters.Order),
			Code:         def.code,
			Table:        def.table,
			Status:       def.status,
			DeliveryType: def.delivery,
			Notes:        def.notes,
			CreatedAt:    createdAt,
		}
		for _, it := range def.items {
			product := snap.ProductByID(productIDs[it.product])
			item := models.OrderItem{
				ID:          models.NextID(&snap.Counters.Item),
				OrderID:     order.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    it.qty,
				Discount:    models.MoneyFromFloat(it.discount),
				Notes:       it.notes,
			}
			for _, app := range it.addons {
				addon := snap.AddonByID(addonIDs[app.name])
				item.Addons = append(item.Addons, models.OrderItemAddon{
					ID:        models.NextID(&snap.Counters.ItemAddon),
					ItemID:    item.ID,
					AddonID:   addon.ID,
					Name:      addon.Name,
					Quantity:  app.qty,
					UnitPrice: addon.Price,
				})
			}
			if product.TracksStock {
				product.Stock -= it.qty
			}
			order.Items = append(order.Items, item)
		}
		snap.Orders = append(snap.Orders, order)

		for _, pay := range def.payments {
			snap.Payments = append(snap.Payments, models.Payment{
				ID:          models.NextID(&snap.Counters.Payment),
				OrderID:     order.ID,
				Method:      pay.method,
				Status:      models.PaymentApproved,
				Amount:      models.MoneyFromFloat(pay.amount),
				ExternalRef: pay.ref,
				TerminalID:  pay.terminal,
				CreatedAt:   createdAt,
			})
		}
	}

	snap.Recalc()
	return snap
}
