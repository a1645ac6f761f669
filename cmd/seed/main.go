// Command seed populates the database with sample customers, products
// and orders for local development.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"crm-service/config"
	"crm-service/internal/errs"
	"crm-service/internal/models"
	"crm-service/internal/store"
	"crm-service/internal/util"

	"github.com/shopspring/decimal"
)

var firstNames = []string{
	"Alice", "Bob", "Carol", "David", "Emma", "Frank", "Grace", "Henry",
	"Irene", "James", "Karen", "Liam", "Mia", "Noah", "Olivia", "Peter",
}

var lastNames = []string{
	"Anderson", "Brown", "Clark", "Davis", "Evans", "Garcia", "Harris",
	"Johnson", "King", "Lewis", "Martin", "Nelson", "Parker", "Roberts",
}

var productWords = []string{
	"Classic", "Compact", "Deluxe", "Eco", "Premium", "Smart", "Ultra",
	"Desk", "Lamp", "Mouse", "Keyboard", "Monitor", "Speaker", "Charger",
}

const (
	seedTarget  = 10
	maxAttempts = 20
)

func main() {
	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	log.Println("Seeding customer data...")
	seedCustomers(ctx, db, rng)
	log.Println("Seeding product data...")
	seedProducts(ctx, db, rng)
	log.Println("Seeding order data...")
	seedOrders(ctx, db, rng)
	log.Println("Done seeding database!")
}

func seedCustomers(ctx context.Context, db *store.Store, rng *rand.Rand) {
	created := 0
	for attempts := 0; created < seedTarget && attempts < maxAttempts; attempts++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		customer := &models.Customer{
			Name:  first + " " + last,
			Email: fmt.Sprintf("%s.%s%d@example.com", first, last, rng.Intn(10000)),
			Phone: fmt.Sprintf("+1%03d%03d%04d", rng.Intn(1000), rng.Intn(1000), rng.Intn(10000)),
		}

		if err := db.CreateCustomer(ctx, customer); err != nil {
			if errs.IsUniqueness(err) {
				continue
			}
			log.Printf("error creating customer: %v", err)
			continue
		}
		created++
		if created%5 == 0 {
			log.Printf("created %d customers...", created)
		}
	}
}

func seedProducts(ctx context.Context, db *store.Store, rng *rand.Rand) {
	created := 0
	for attempts := 0; created < seedTarget && attempts < maxAttempts; attempts++ {
		product := &models.Product{
			Name:  productWords[rng.Intn(7)] + " " + productWords[7+rng.Intn(7)],
			Price: decimal.NewFromInt(int64(rng.Intn(1000))).Add(decimal.NewFromFloat(0.99)),
			Stock: rng.Intn(101),
		}

		if err := db.CreateProduct(ctx, product); err != nil {
			log.Printf("error creating product: %v", err)
			continue
		}
		created++
		if created%5 == 0 {
			log.Printf("created %d products...", created)
		}
	}
}

func seedOrders(ctx context.Context, db *store.Store, rng *rand.Rand) {
	customers, err := db.ListCustomers(ctx, nil)
	if err != nil {
		log.Printf("error listing customers: %v", err)
		return
	}
	products, err := db.ListProducts(ctx, nil)
	if err != nil {
		log.Printf("error listing products: %v", err)
		return
	}
	if len(customers) == 0 || len(products) == 0 {
		log.Println("no customers or products to build orders from")
		return
	}

	created := 0
	for attempts := 0; created < seedTarget && attempts < maxAttempts; attempts++ {
		customer := customers[rng.Intn(len(customers))]

		picked := map[int64]models.Product{}
		for len(picked) < 1+rng.Intn(3) {
			p := products[rng.Intn(len(products))]
			picked[p.ID] = p
		}

		orderProducts := make([]models.Product, 0, len(picked))
		total := decimal.Zero
		for _, p := range picked {
			orderProducts = append(orderProducts, p)
			total = total.Add(p.Price)
		}

		order := &models.Order{
			CustomerID:  customer.ID,
			TotalAmount: total,
			OrderDate:   time.Now(),
		}
		if err := db.CreateOrder(ctx, order, orderProducts); err != nil {
			log.Printf("error creating order: %v", err)
			continue
		}
		created++
		if created%5 == 0 {
			log.Printf("created %d orders...", created)
		}
	}
}
