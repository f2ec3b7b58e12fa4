package models

import "strings"

const SnapshotVersion = 1

// Counters hold the next id per entity family. Ids are allocated inside the
// snapshot so the whole store stays a single self-contained value.
type Counters struct {
	Product   uint `json:"product"`
	Addon     uint `json:"addon"`
	Code      uint `json:"code"`
	Order     uint `json:"order"`
	Item      uint `json:"item"`
	ItemAddon uint `json:"item_addon"`
	Payment   uint `json:"payment"`
}

// NextID returns the current counter value (at least 1) and advances it.
func NextID(counter *uint) uint {
	if *counter < 1 {
		*counter = 1
	}
	id := *counter
	*counter++
	return id
}

// Snapshot is the entire store state: what the gateway loads and saves as
// one atomic unit.
type Snapshot struct {
	Version  int           `json:"version"`
	Counters Counters      `json:"counters"`
	Products []Product     `json:"products"`
	Addons   []Addon       `json:"addons"`
	Codes    []ComandaCode `json:"codes"`
	Orders   []Order       `json:"orders"`
	Payments []Payment     `json:"payments"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{Version: SnapshotVersion}
}

func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Version:  s.Version,
		Counters: s.Counters,
		Products: make([]Product, len(s.Products)),
		Addons:   append([]Addon(nil), s.Addons...),
		Codes:    append([]ComandaCode(nil), s.Codes...),
		Orders:   make([]Order, len(s.Orders)),
		Payments: append([]Payment(nil), s.Payments...),
	}
	for i := range s.Products {
		out.Products[i] = s.Products[i].Clone()
	}
	for i := range s.Orders {
		out.Orders[i] = s.Orders[i].Clone()
	}
	return out
}

func (s *Snapshot) ProductByID(id uint) *Product {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i]
		}
	}
	return nil
}

func (s *Snapshot) AddonByID(id uint) *Addon {
	for i := range s.Addons {
		if s.Addons[i].ID == id {
			return &s.Addons[i]
		}
	}
	return nil
}

func (s *Snapshot) CodeByID(id uint) *ComandaCode {
	for i := range s.Codes {
		if s.Codes[i].ID == id {
			return &s.Codes[i]
		}
	}
	return nil
}

// CodeByCode matches case-insensitively; codes are stored upper-cased.
func (s *Snapshot) CodeByCode(code string) *ComandaCode {
	key := strings.ToUpper(strings.TrimSpace(code))
	for i := range s.Codes {
		if s.Codes[i].Code == key {
			return &s.Codes[i]
		}
	}
	return nil
}

func (s *Snapshot) OrderByID(id uint) *Order {
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			return &s.Orders[i]
		}
	}
	return nil
}

// OpenOrderByCode returns the non-terminal order claiming a code, if any.
func (s *Snapshot) OpenOrderByCode(code string) *Order {
	key := strings.ToUpper(strings.TrimSpace(code))
	for i := range s.Orders {
		if s.Orders[i].Code == key && !s.Orders[i].Status.Terminal() {
			return &s.Orders[i]
		}
	}
	return nil
}

func (s *Snapshot) PaymentByID(id uint) *Payment {
	for i := range s.Payments {
		if s.Payments[i].ID == id {
			return &s.Payments[i]
		}
	}
	return nil
}
