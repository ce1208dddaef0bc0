package main

import (
	"fmt"
	"time"

	"github.com/salesreport-next/internal/config"
	"github.com/salesreport-next/internal/constants"
	"github.com/salesreport-next/internal/logger"
	"github.com/salesreport-next/internal/models"
	"github.com/salesreport-next/internal/repository"
	"github.com/salesreport-next/internal/service"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认管理员
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// 添加分类
	categoryNames := []string{"Perfumes", "Oud", "Accessories"}
	categoryIDs := map[string]uint{}
	for _, name := range categoryNames {
		var existing models.Category
		if err := models.DB.Where("name = ?", name).First(&existing).Error; err != nil {
			cat := models.Category{Name: name}
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", name, err)
				continue
			}
			stdLog.Printf("Created category: %s", name)
			categoryIDs[name] = cat.ID
		} else {
			stdLog.Printf("Category already exists: %s", name)
			categoryIDs[name] = existing.ID
		}
	}

	// 员工用户
	staff := models.User{
		Email:     "staff@example.com",
		FirstName: "Ahmed",
		LastName:  "Hassan",
	}
	var existingStaff models.User
	if err := models.DB.Where("email = ?", staff.Email).First(&existingStaff).Error; err != nil {
		if err := models.DB.Create(&staff).Error; err != nil {
			stdLog.Printf("Failed to create staff user: %v", err)
		}
	} else {
		staff = existingStaff
	}

	// 商品：主商品、变体、加购件
	products := []models.Product{
		{
			Name:        "Royal Oud Perfume 100ml",
			SKU:         "OUD-100",
			PriceAmount: models.NewMoney4FromDecimal(decimal.NewFromFloat(450)),
			Categories:  []models.Category{{ID: categoryIDs["Perfumes"]}, {ID: categoryIDs["Oud"]}},
		},
		{
			Name:        "Amber Musk 50ml",
			SKU:         "AMB-050",
			PriceAmount: models.NewMoney4FromDecimal(decimal.NewFromFloat(180)),
			Categories:  []models.Category{{ID: categoryIDs["Perfumes"]}},
		},
		{
			Name:        "Gift Wrapping",
			SKU:         "WRAP-01",
			PriceAmount: models.NewMoney4FromDecimal(decimal.NewFromFloat(15)),
			Categories:  []models.Category{{ID: categoryIDs["Accessories"]}},
		},
	}
	productIDs := map[string]uint{}
	for i := range products {
		var existing models.Product
		if err := models.DB.Where("sku = ?", products[i].SKU).First(&existing).Error; err != nil {
			if err := models.DB.Create(&products[i]).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", products[i].SKU, err)
				continue
			}
			stdLog.Printf("Created product: %s", products[i].SKU)
			productIDs[products[i].SKU] = products[i].ID
		} else {
			stdLog.Printf("Product already exists: %s", products[i].SKU)
			productIDs[products[i].SKU] = existing.ID
		}
	}

	// 变体商品挂到主商品下
	parentID := productIDs["OUD-100"]
	variation := models.Product{
		ParentID:    &parentID,
		Name:        "Royal Oud Perfume 100ml - Gold Edition",
		SKU:         "OUD-100-G",
		PriceAmount: models.NewMoney4FromDecimal(decimal.NewFromFloat(520)),
	}
	var existingVar models.Product
	if err := models.DB.Where("sku = ?", variation.SKU).First(&existingVar).Error; err != nil {
		if err := models.DB.Create(&variation).Error; err != nil {
			stdLog.Printf("Failed to create variation: %v", err)
		} else {
			productIDs[variation.SKU] = variation.ID
		}
	} else {
		productIDs[variation.SKU] = existingVar.ID
	}

	orderRepo := repository.NewOrderRepository(models.DB)
	reportRepo := repository.NewReportRepository(models.DB)
	builder := service.NewReportBuilder(
		repository.NewProductRepository(models.DB),
		repository.NewCategoryRepository(models.DB),
		repository.NewUserRepository(models.DB),
	)
	reportService := service.NewReportService(orderRepo, reportRepo, builder)

	// 演示订单
	statuses := []string{
		constants.OrderStatusCompleted,
		constants.OrderStatusProcessing,
		constants.OrderStatusOnHold,
	}
	countries := []string{"SA", "AE", "KW"}
	staffID := staff.ID
	for i := 0; i < 12; i++ {
		orderNo := fmt.Sprintf("DEMO-%04d", i+1)
		var existing models.Order
		if err := models.DB.Where("order_no = ?", orderNo).First(&existing).Error; err == nil {
			continue
		}

		qty := i%3 + 1
		subtotal := decimal.NewFromFloat(450).Mul(decimal.NewFromInt(int64(qty)))
		total := subtotal
		meta := models.JSON{
			constants.MetaKeyPDFInvoiceNumber: fmt.Sprintf("INV-2024-%04d", i+1),
			constants.MetaKeyCompanyVAT:       "310123456700003",
			constants.MetaKeyErpOrderNumber:   fmt.Sprintf("SO-%05d", 1000+i),
			constants.MetaKeyOrderCreator:     fmt.Sprintf("%d", staffID),
		}
		// 每第三单带一个 10% 的整单折扣
		if i%3 == 0 {
			total = subtotal.Mul(decimal.NewFromFloat(0.9))
			meta[constants.MetaKeyCartDiscount] = map[string]interface{}{
				"type":   constants.CartDiscountTypePercent,
				"amount": 10,
			}
		}
		tax := total.Mul(decimal.NewFromFloat(0.15))

		order := models.Order{
			OrderNo:            orderNo,
			Status:             statuses[i%len(statuses)],
			CreatorID:          &staffID,
			BillingFirstName:   fmt.Sprintf("Customer %d", i+1),
			BillingPhone:       fmt.Sprintf("+9665%08d", i+1),
			BillingCountry:     countries[i%len(countries)],
			BillingAddress:     "King Fahd Road 12",
			BillingCity:        "Riyadh",
			PaymentMethodTitle: "Credit Card",
			TransactionID:      fmt.Sprintf("txn_%06d", i+1),
			CustomerNote:       "Please deliver in the morning.\nCall before arrival.",
			ShippingTotal:      models.NewMoney4FromDecimal(decimal.NewFromFloat(25)),
			TotalTax:           models.NewMoney4FromDecimal(tax),
			TotalAmount:        models.NewMoneyFromDecimal(total.Add(tax).Add(decimal.NewFromFloat(25))),
			MetaJSON:           meta,
			CreatedAt:          time.Now().AddDate(0, 0, -i),
		}
		items := []models.OrderItem{
			{
				ItemType:  constants.OrderItemTypeLineItem,
				Name:      "Royal Oud Perfume 100ml",
				ProductID: productIDs["OUD-100"],
				Quantity:  qty,
				Subtotal:  models.NewMoney4FromDecimal(subtotal),
				Total:     models.NewMoney4FromDecimal(total),
				TotalTax:  models.NewMoney4FromDecimal(tax),
			},
		}
		// 每第四单带加购件与优惠码行
		if i%4 == 0 {
			items[0].MetaJSON = models.JSON{
				"_addon_selections": map[string]interface{}{
					"wrapping": fmt.Sprintf("product-%d", productIDs["WRAP-01"]),
				},
			}
			items = append(items, models.OrderItem{
				ItemType: constants.OrderItemTypeCoupon,
				Name:     fmt.Sprintf("WELCOME%d", i+1),
			})
		}

		if err := orderRepo.Create(&order, items); err != nil {
			stdLog.Printf("Failed to create order %s: %v", orderNo, err)
			continue
		}
		if err := reportService.SyncOrder(order.ID, false); err != nil {
			stdLog.Printf("Failed to sync order %s: %v", orderNo, err)
			continue
		}
		stdLog.Printf("Created order: %s", orderNo)
	}

	stdLog.Printf("Seed finished")
}
