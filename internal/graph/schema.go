package graph

import (
	"strconv"
	"time"

	"crm-service/internal/errs"
	"crm-service/internal/models"
	"crm-service/internal/service"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
)

type createCustomerPayload struct {
	Customer *models.Customer `json:"customer"`
	Message  string           `json:"message"`
}

type bulkCreateCustomersPayload struct {
	Customers []models.Customer `json:"customers"`
	Errors    []string          `json:"errors"`
}

type createProductPayload struct {
	Product *models.Product `json:"product"`
}

type createOrderPayload struct {
	Order *models.Order `json:"order"`
}

type updateLowStockPayload struct {
	Products []models.Product `json:"products"`
	Message  string           `json:"message"`
}

// NewSchema builds the executable schema over the given resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	customerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Customer",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return strconv.FormatInt(customerSource(p.Source).ID, 10), nil
				},
			},
			"name":      &graphql.Field{Type: graphql.String},
			"email":     &graphql.Field{Type: graphql.String},
			"phone":     &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return strconv.FormatInt(productSource(p.Source).ID, 10), nil
				},
			},
			"name": &graphql.Field{Type: graphql.String},
			"price": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return productSource(p.Source).Price.InexactFloat64(), nil
				},
			},
			"stock":     &graphql.Field{Type: graphql.Int},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return strconv.FormatInt(orderSource(p.Source).ID, 10), nil
				},
			},
			"customer": &graphql.Field{Type: customerType},
			"products": &graphql.Field{Type: graphql.NewList(productType)},
			"totalAmount": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return orderSource(p.Source).TotalAmount.InexactFloat64(), nil
				},
			},
			"orderDate": &graphql.Field{Type: graphql.DateTime},
		},
	})

	customerInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CustomerInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"phone": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	productInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProductInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"price": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"stock": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		},
	})

	orderInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "OrderInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"customerId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"productIds": &graphql.InputObjectFieldConfig{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID))),
			},
			"orderDate": &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		},
	})

	customerFilterInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CustomerFilterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"nameContains":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"emailContains": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"createdAfter":  &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"phonePattern":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	productFilterInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProductFilterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"nameContains": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"priceGte":     &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"priceLte":     &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"stockGte":     &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"stockLte":     &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"lowStock":     &graphql.InputObjectFieldConfig{Type: graphql.Int},
		},
	})

	orderFilterInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "OrderFilterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"orderDateGte":   &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"orderDateLte":   &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"totalAmountGte": &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"totalAmountLte": &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"customerName":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"productName":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"productId":      &graphql.InputObjectFieldConfig{Type: graphql.ID},
		},
	})

	listCustomers := &graphql.Field{
		Type: graphql.NewList(customerType),
		Args: graphql.FieldConfigArgument{
			"filter": &graphql.ArgumentConfig{Type: customerFilterInput},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.Customers.ListCustomers(p.Context, decodeCustomerFilter(p.Args))
		},
	}

	listProducts := &graphql.Field{
		Type: graphql.NewList(productType),
		Args: graphql.FieldConfigArgument{
			"filter": &graphql.ArgumentConfig{Type: productFilterInput},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.Products.ListProducts(p.Context, decodeProductFilter(p.Args))
		},
	}

	listOrders := &graphql.Field{
		Type: graphql.NewList(orderType),
		Args: graphql.FieldConfigArgument{
			"filter": &graphql.ArgumentConfig{Type: orderFilterInput},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.Orders.ListOrders(p.Context, decodeOrderFilter(p.Args))
		},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return "Hello, CRM!", nil
				},
			},
			"customers":    listCustomers,
			"allCustomers": listCustomers,
			"products":     listProducts,
			"allProducts":  listProducts,
			"orders":       listOrders,
			"allOrders":    listOrders,
			"totalCustomers": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Customers.CountCustomers(p.Context)
				},
			},
			"totalOrders": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Orders.CountOrders(p.Context)
				},
			},
			"totalRevenue": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					revenue, err := r.Orders.TotalRevenue(p.Context)
					if err != nil {
						return nil, err
					}
					return revenue.InexactFloat64(), nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createCustomer": &graphql.Field{
				Type: graphql.NewObject(graphql.ObjectConfig{
					Name: "CreateCustomerPayload",
					Fields: graphql.Fields{
						"customer": &graphql.Field{Type: customerType},
						"message":  &graphql.Field{Type: graphql.String},
					},
				}),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(customerInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := decodeCustomerInput(p.Args["input"].(map[string]interface{}))
					customer, err := r.Customers.CreateCustomer(p.Context, input)
					if err != nil {
						return nil, err
					}
					return &createCustomerPayload{
						Customer: customer,
						Message:  "Customer created successfully",
					}, nil
				},
			},
			"bulkCreateCustomers": &graphql.Field{
				Type: graphql.NewObject(graphql.ObjectConfig{
					Name: "BulkCreateCustomersPayload",
					Fields: graphql.Fields{
						"customers": &graphql.Field{Type: graphql.NewList(customerType)},
						"errors":    &graphql.Field{Type: graphql.NewList(graphql.String)},
					},
				}),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(customerInput))),
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					rows, _ := p.Args["input"].([]interface{})
					inputs := make([]service.CustomerInput, 0, len(rows))
					for _, row := range rows {
						m, _ := row.(map[string]interface{})
						inputs = append(inputs, decodeCustomerInput(m))
					}
					customers, rowErrors := r.Customers.BulkCreateCustomers(p.Context, inputs)
					return &bulkCreateCustomersPayload{Customers: customers, Errors: rowErrors}, nil
				},
			},
			"createProduct": &graphql.Field{
				Type: graphql.NewObject(graphql.ObjectConfig{
					Name: "CreateProductPayload",
					Fields: graphql.Fields{
						"product": &graphql.Field{Type: productType},
					},
				}),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := decodeProductInput(p.Args["input"].(map[string]interface{}))
					product, err := r.Products.CreateProduct(p.Context, input)
					if err != nil {
						return nil, err
					}
					return &createProductPayload{Product: product}, nil
				},
			},
			"createOrder": &graphql.Field{
				Type: graphql.NewObject(graphql.ObjectConfig{
					Name: "CreateOrderPayload",
					Fields: graphql.Fields{
						"order": &graphql.Field{Type: orderType},
					},
				}),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(orderInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input, err := decodeOrderInput(p.Args["input"].(map[string]interface{}))
					if err != nil {
						return nil, err
					}
					order, err := r.Orders.CreateOrder(p.Context, input)
					if err != nil {
						return nil, err
					}
					return &createOrderPayload{Order: order}, nil
				},
			},
			"updateLowStockProducts": &graphql.Field{
				Type: graphql.NewObject(graphql.ObjectConfig{
					Name: "UpdateLowStockProductsPayload",
					Fields: graphql.Fields{
						"products": &graphql.Field{Type: graphql.NewList(productType)},
						"message":  &graphql.Field{Type: graphql.String},
					},
				}),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					products, message, err := r.Products.UpdateLowStockProducts(p.Context)
					if err != nil {
						return nil, err
					}
					return &updateLowStockPayload{Products: products, Message: message}, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func customerSource(src interface{}) *models.Customer {
	switch v := src.(type) {
	case *models.Customer:
		return v
	case models.Customer:
		return &v
	}
	return &models.Customer{}
}

func productSource(src interface{}) *models.Product {
	switch v := src.(type) {
	case *models.Product:
		return v
	case models.Product:
		return &v
	}
	return &models.Product{}
}

func orderSource(src interface{}) *models.Order {
	switch v := src.(type) {
	case *models.Order:
		return v
	case models.Order:
		return &v
	}
	return &models.Order{}
}

func decodeCustomerInput(m map[string]interface{}) service.CustomerInput {
	input := service.CustomerInput{}
	if v, ok := m["name"].(string); ok {
		input.Name = v
	}
	if v, ok := m["email"].(string); ok {
		input.Email = v
	}
	if v, ok := m["phone"].(string); ok {
		input.Phone = v
	}
	return input
}

func decodeProductInput(m map[string]interface{}) service.ProductInput {
	input := service.ProductInput{}
	if v, ok := m["name"].(string); ok {
		input.Name = v
	}
	if v, ok := asFloat(m["price"]); ok {
		input.Price = decimal.NewFromFloat(v)
	}
	if v, ok := asInt(m["stock"]); ok {
		input.Stock = &v
	}
	return input
}

func decodeOrderInput(m map[string]interface{}) (service.OrderInput, error) {
	input := service.OrderInput{}

	customerID, ok := asID(m["customerId"])
	if !ok {
		// An unparsable id can reference no customer.
		return input, &errs.NotFoundError{Entity: "customer", Message: "Customer does not exist"}
	}
	input.CustomerID = customerID

	if ids, ok := m["productIds"].([]interface{}); ok {
		for _, raw := range ids {
			// Ids that resolve to nothing are dropped, unparsable ones
			// included.
			if id, ok := asID(raw); ok {
				input.ProductIDs = append(input.ProductIDs, id)
			}
		}
	}

	if v, ok := asTime(m["orderDate"]); ok {
		input.OrderDate = &v
	}
	return input, nil
}

func decodeCustomerFilter(args map[string]interface{}) *models.CustomerFilter {
	m, ok := args["filter"].(map[string]interface{})
	if !ok {
		return nil
	}
	f := &models.CustomerFilter{}
	if v, ok := m["nameContains"].(string); ok {
		f.NameContains = v
	}
	if v, ok := m["emailContains"].(string); ok {
		f.EmailContains = v
	}
	if v, ok := asTime(m["createdAfter"]); ok {
		f.CreatedAfter = &v
	}
	if v, ok := m["phonePattern"].(string); ok {
		f.PhonePattern = v
	}
	return f
}

func decodeProductFilter(args map[string]interface{}) *models.ProductFilter {
	m, ok := args["filter"].(map[string]interface{})
	if !ok {
		return nil
	}
	f := &models.ProductFilter{}
	if v, ok := m["nameContains"].(string); ok {
		f.NameContains = v
	}
	if v, ok := asFloat(m["priceGte"]); ok {
		d := decimal.NewFromFloat(v)
		f.PriceGte = &d
	}
	if v, ok := asFloat(m["priceLte"]); ok {
		d := decimal.NewFromFloat(v)
		f.PriceLte = &d
	}
	if v, ok := asInt(m["stockGte"]); ok {
		f.StockGte = &v
	}
	if v, ok := asInt(m["stockLte"]); ok {
		f.StockLte = &v
	}
	if v, ok := asInt(m["lowStock"]); ok {
		f.LowStock = &v
	}
	return f
}

func decodeOrderFilter(args map[string]interface{}) *models.OrderFilter {
	m, ok := args["filter"].(map[string]interface{})
	if !ok {
		return nil
	}
	f := &models.OrderFilter{}
	if v, ok := asTime(m["orderDateGte"]); ok {
		f.OrderDateGte = &v
	}
	if v, ok := asTime(m["orderDateLte"]); ok {
		f.OrderDateLte = &v
	}
	if v, ok := asFloat(m["totalAmountGte"]); ok {
		d := decimal.NewFromFloat(v)
		f.TotalAmountGte = &d
	}
	if v, ok := asFloat(m["totalAmountLte"]); ok {
		d := decimal.NewFromFloat(v)
		f.TotalAmountLte = &d
	}
	if v, ok := m["customerName"].(string); ok {
		f.CustomerName = v
	}
	if v, ok := m["productName"].(string); ok {
		f.ProductName = v
	}
	if v, ok := asID(m["productId"]); ok {
		f.ProductID = &v
	}
	return f
}

func asID(v interface{}) (int64, bool) {
	switch val := v.(type) {
	case string:
		id, err := strconv.ParseInt(val, 10, 64)
		return id, err == nil
	case int:
		return int64(val), true
	case int64:
		return val, true
	case float64:
		return int64(val), true
	}
	return 0, false
}

func asInt(v interface{}) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	}
	return 0, false
}

func asFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	}
	return 0, false
}

func asTime(v interface{}) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		t, err := time.Parse(time.RFC3339, val)
		return t, err == nil
	}
	return time.Time{}, false
}
