package seeders

import (
	"fmt"
	"time"

	"github.com/bxcodec/faker/v3"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hyderoo/dewa-wo-sub001/app/consts"
	"github.com/hyderoo/dewa-wo-sub001/app/models"
)

// DBSeed: isi data awal untuk development. Aman dijalankan berulang,
// data yang sudah ada tidak diduplikasi.
func DBSeed(db *gorm.DB) error {
	if err := seedUsers(db); err != nil {
		return err
	}
	if err := seedCatalogs(db); err != nil {
		return err
	}
	if err := seedServices(db); err != nil {
		return err
	}
	if err := seedPortfolios(db); err != nil {
		return err
	}
	if err := seedTeam(db); err != nil {
		return err
	}
	if err := seedBanks(db); err != nil {
		return err
	}
	if err := seedVirtualAccounts(db); err != nil {
		return err
	}
	if err := seedDemoOrder(db); err != nil {
		return err
	}

	fmt.Println("Seeding selesai.")

	return nil
}

func seedUsers(db *gorm.DB) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Admin Dewa WO",
		Email:    "admin@dewawo.test",
		Phone:    "081234567890",
		Password: string(hashed),
		IsAdmin:  true,
	}
	if err := firstOrCreateUser(db, admin); err != nil {
		return err
	}

	customer := models.User{
		Name:     "Customer Demo",
		Email:    "customer@dewawo.test",
		Phone:    "081298765432",
		Password: string(hashed),
		IsAdmin:  false,
	}
	if err := firstOrCreateUser(db, customer); err != nil {
		return err
	}

	// customer dummy tambahan
	for i := 0; i < 5; i++ {
		u := models.User{
			Name:     faker.Name(),
			Email:    faker.Email(),
			Phone:    faker.Phonenumber(),
			Password: string(hashed),
		}
		if err := firstOrCreateUser(db, u); err != nil {
			return err
		}
	}

	return nil
}

func firstOrCreateUser(db *gorm.DB, user models.User) error {
	var exist models.User
	err := db.Where("email = ?", user.Email).First(&exist).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	return db.Create(&user).Error
}

func seedCatalogs(db *gorm.DB) error {
	var count int64
	db.Model(&models.Catalog{}).Count(&count)
	if count > 0 {
		return nil
	}

	catalogs := []struct {
		Name     string
		PriceMin int64
		PriceMax int64
		Features []string
	}{
		{
			Name:     "Paket Intimate Wedding",
			PriceMin: 25_000_000,
			PriceMax: 40_000_000,
			Features: []string{"Dekorasi standar", "Dokumentasi foto", "MC profesional", "Katering 100 pax"},
		},
		{
			Name:     "Paket Silver",
			PriceMin: 50_000_000,
			PriceMax: 75_000_000,
			Features: []string{"Dekorasi premium", "Dokumentasi foto dan video", "MC profesional", "Katering 300 pax", "Rias pengantin"},
		},
		{
			Name:     "Paket Gold",
			PriceMin: 90_000_000,
			PriceMax: 150_000_000,
			Features: []string{"Dekorasi eksklusif", "Dokumentasi full team", "MC dan hiburan live music", "Katering 500 pax", "Rias pengantin dan keluarga", "Wedding car"},
		},
	}

	for _, c := range catalogs {
		catalog := models.Catalog{
			Name:        c.Name,
			Slug:        slug.Make(c.Name),
			Description: faker.Paragraph(),
			PriceMin:    decimal.NewFromInt(c.PriceMin),
			PriceMax:    decimal.NewFromInt(c.PriceMax),
			IsActive:    true,
		}
		if err := db.Create(&catalog).Error; err != nil {
			return err
		}

		for _, f := range c.Features {
			feature := models.CatalogFeature{
				CatalogID: catalog.ID,
				Name:      f,
			}
			if err := db.Create(&feature).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func seedServices(db *gorm.DB) error {
	var count int64
	db.Model(&models.Service{}).Count(&count)
	if count > 0 {
		return nil
	}

	titles := []string{
		"Wedding Organizer",
		"Dekorasi Pelaminan",
		"Dokumentasi Foto & Video",
		"Katering Prasmanan",
		"Rias Pengantin",
	}

	for _, title := range titles {
		service := models.Service{
			Title:       title,
			Slug:        slug.Make(title),
			Description: faker.Paragraph(),
			IsActive:    true,
		}
		if err := db.Create(&service).Error; err != nil {
			return err
		}
	}

	return nil
}

func seedPortfolios(db *gorm.DB) error {
	var count int64
	db.Model(&models.Portfolio{}).Count(&count)
	if count > 0 {
		return nil
	}

	categories := []string{"Intimate", "Tradisional", "Internasional"}

	for i := 0; i < 6; i++ {
		title := "The Wedding of " + faker.FirstName() + " & " + faker.FirstName()
		portfolio := models.Portfolio{
			Title:       title,
			Slug:        slug.Make(title),
			Category:    categories[i%len(categories)],
			Description: faker.Paragraph(),
			EventDate:   time.Now().AddDate(0, -i, 0),
		}
		if err := db.Create(&portfolio).Error; err != nil {
			return err
		}
	}

	return nil
}

func seedTeam(db *gorm.DB) error {
	var count int64
	db.Model(&models.TeamMember{}).Count(&count)
	if count > 0 {
		return nil
	}

	roles := []string{"Founder & Lead Planner", "Event Coordinator", "Creative Director", "Finance & Admin"}

	for _, role := range roles {
		member := models.TeamMember{
			Name:     faker.Name(),
			Role:     role,
			Bio:      faker.Sentence(),
			IsActive: true,
		}
		if err := db.Create(&member).Error; err != nil {
			return err
		}
	}

	return nil
}

func seedBanks(db *gorm.DB) error {
	var count int64
	db.Model(&models.Bank{}).Count(&count)
	if count > 0 {
		return nil
	}

	bank := models.Bank{
		Name:          "Bank Central Asia",
		Code:          "BCA",
		AccountNumber: "8830127651",
		AccountName:   "PT Dewa Wedding Organizer",
		Branch:        "KCP Surabaya Darmo",
		IsActive:      true,
	}

	return db.Create(&bank).Error
}

func seedVirtualAccounts(db *gorm.DB) error {
	var count int64
	db.Model(&models.VirtualAccount{}).Count(&count)
	if count > 0 {
		return nil
	}

	accounts := []struct {
		Code string
		Name string
	}{
		{Code: "BCA", Name: "BCA Virtual Account"},
		{Code: "BNI", Name: "BNI Virtual Account"},
		{Code: "BRI", Name: "BRIVA"},
	}

	for _, a := range accounts {
		va := models.VirtualAccount{
			BankCode: a.Code,
			Name:     a.Name,
			IsActive: true,
		}

		err := va.SetInstructions([]models.PaymentInstruction{
			{Step: 1, Instruction: "Buka aplikasi mobile banking " + a.Code},
			{Step: 2, Instruction: "Pilih menu Transfer > Virtual Account"},
			{Step: 3, Instruction: "Masukkan nomor virtual account yang tertera"},
			{Step: 4, Instruction: "Periksa nama dan nominal, lalu konfirmasi pembayaran"},
		})
		if err != nil {
			return err
		}

		if err := db.Create(&va).Error; err != nil {
			return err
		}
	}

	return nil
}

// seedDemoOrder: satu booking contoh untuk customer demo.
func seedDemoOrder(db *gorm.DB) error {
	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count > 0 {
		return nil
	}

	var customer models.User
	if err := db.Where("email = ?", "customer@dewawo.test").First(&customer).Error; err != nil {
		return err
	}

	var catalog models.Catalog
	if err := db.Order("price_min ASC").First(&catalog).Error; err != nil {
		return err
	}

	price := catalog.PriceMin
	dpAmount := price.Mul(decimal.NewFromInt(30)).Div(decimal.NewFromInt(100)).Round(2)

	orderModel := models.Order{}
	_, err := orderModel.CreateOrder(db, &models.Order{
		UserID:                customer.ID,
		CatalogID:             catalog.ID,
		EventDate:             time.Now().AddDate(0, 3, 0),
		Venue:                 "Gedung Serbaguna Graha Surya, Surabaya",
		Price:                 price,
		PaidAmount:            decimal.Zero,
		RemainingAmount:       price,
		DownPaymentAmount:     dpAmount,
		DownPaymentPercentage: decimal.NewFromInt(30),
		RequiresDownPayment:   true,
		Status:                consts.OrderStatusPendingPayment,
	})

	return err
}
