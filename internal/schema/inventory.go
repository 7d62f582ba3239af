package schema

// Inventory is the canonical schema for inventory uploads. Alias order is
// priority order: snake_case exports win over title-case report headers.
var Inventory = &Schema{
	Name: "inventory",
	Fields: []FieldSpec{
		{Name: "sku", Aliases: []string{"sku", "SKU", "Sku"}, Required: true},
		{Name: "asin", Aliases: []string{"asin", "ASIN", "Asin"}},
		{Name: "productName", Aliases: []string{"product_name", "Product Name", "name", "Name"}, Required: true},
		{Name: "quantity", Aliases: []string{"quantity", "Quantity", "qty", "Qty"}, Required: true, Numeric: true},
		{Name: "cost", Aliases: []string{"cost", "Cost", "unit_cost", "Unit Cost"}, Required: true, Numeric: true},
		{Name: "price", Aliases: []string{"price", "Price", "unit_price", "Unit Price"}, Required: true, Numeric: true},
	},
}
