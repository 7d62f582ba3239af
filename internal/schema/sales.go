package schema

// Sales is the canonical schema for sales uploads.
var Sales = &Schema{
	Name: "sales",
	Fields: []FieldSpec{
		{Name: "sku", Aliases: []string{"sku", "SKU", "Sku"}, Required: true},
		{Name: "productName", Aliases: []string{"product_name", "Product Name", "name", "Name"}, Required: true},
		{Name: "date", Aliases: []string{"date", "Date", "sale_date", "Sale Date"}, Required: true, IsDate: true},
		{Name: "quantitySold", Aliases: []string{"quantity_sold", "Quantity Sold", "quantity", "Quantity"}, Required: true, Numeric: true},
		{Name: "revenue", Aliases: []string{"revenue", "Revenue", "sales", "Sales"}, Required: true, Numeric: true},
	},
}
