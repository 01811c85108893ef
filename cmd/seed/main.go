package main

import (
	"flag"
	"log"

	"github.com/trendpin/notify/internal/config"
	"github.com/trendpin/notify/internal/database"
	"github.com/trendpin/notify/internal/models"
	"github.com/trendpin/notify/internal/services"
)

// seed populates a fresh database with the default catalog, demo recipients
// for every role, and an initial admin user.
func main() {
	adminEmail := flag.String("admin-email", "admin@example.com", "initial admin email")
	adminPassword := flag.String("admin-password", "", "initial admin password (required)")
	flag.Parse()

	if *adminPassword == "" {
		log.Fatal("-admin-password is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.NotificationEvent{},
		&models.NotificationTemplate{},
		&models.TemplateContent{},
		&models.ChannelCredential{},
		&models.Recipient{},
		&models.Notification{},
		&models.Setting{},
		&models.User{},
	); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	if err := services.NewCatalogService(db).EnsureSeeded(); err != nil {
		log.Fatalf("seed catalog: %v", err)
	}

	recipients := []models.Recipient{
		{Role: models.RoleAdmin, Name: "Platform Ops", Email: "ops@example.com", Phone: "+15550100001"},
		{Role: models.RoleRetailer, Name: "Asha Stores", Email: "asha@example.com", Phone: "+15550100002"},
		{Role: models.RoleRetailer, Name: "Zed Mart", Email: "zed@example.com", Phone: "+15550100003"},
		{Role: models.RoleCustomer, Name: "Sam Rivera", Email: "sam@example.com", Phone: "+15550100004"},
	}
	for i := range recipients {
		r := recipients[i]
		err := db.Where("role = ? AND email = ?", r.Role, r.Email).FirstOrCreate(&r).Error
		if err != nil {
			log.Fatalf("seed recipient %s: %v", r.Email, err)
		}
	}

	authService := services.NewAuthService(db, cfg)
	var users int64
	if err := db.Model(&models.User{}).Count(&users).Error; err != nil {
		log.Fatalf("count users: %v", err)
	}
	if users == 0 {
		if _, err := authService.Register(*adminEmail, *adminPassword, "Administrator"); err != nil {
			log.Fatalf("create admin: %v", err)
		}
		log.Printf("created admin user %s", *adminEmail)
	}

	log.Println("seed complete")
}
