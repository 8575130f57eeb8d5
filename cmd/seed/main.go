package main

import (
	"github.com/cantina-pos/internal/config"
	"github.com/cantina-pos/internal/constants"
	"github.com/cantina-pos/internal/logger"
	"github.com/cantina-pos/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	seedMenu(stdLog.Printf)
	seedUsers(stdLog.Printf)

	stdLog.Println("seed done")
}

func seedMenu(logf func(string, ...interface{})) {
	var count int64
	models.DB.Model(&models.MenuItem{}).Count(&count)
	if count > 0 {
		logf("menu already seeded, skipping")
		return
	}

	items := []models.MenuItem{
		{Name: "Tacos al Pastor", Price: models.NewMoneyFromFloat(45.00), Category: "Tacos", Available: true},
		{Name: "Quesadillas", Price: models.NewMoneyFromFloat(55.00), Category: "Antojitos", Available: true},
		{Name: "Enchiladas Verdes", Price: models.NewMoneyFromFloat(85.00), Category: "Platos Fuertes", Available: true},
		{Name: "Pozole Rojo", Price: models.NewMoneyFromFloat(95.00), Category: "Platos Fuertes", Available: true},
		{Name: "Chilaquiles", Price: models.NewMoneyFromFloat(65.00), Category: "Desayunos", Available: true},
		{Name: "Agua de Horchata", Price: models.NewMoneyFromFloat(25.00), Category: "Bebidas", Available: true},
		{Name: "Guacamole", Price: models.NewMoneyFromFloat(45.00), Category: "Entradas", Available: true},
		{Name: "Flan Napolitano", Price: models.NewMoneyFromFloat(40.00), Category: "Postres", Available: true},
	}
	for i := range items {
		if err := models.DB.Create(&items[i]).Error; err != nil {
			logf("failed to seed menu item %s: %v", items[i].Name, err)
		}
	}
	logf("seeded %d menu items", len(items))
}

func seedUsers(logf func(string, ...interface{})) {
	var count int64
	models.DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		logf("users already seeded, skipping")
		return
	}

	users := []struct {
		username string
		password string
		fullName string
		role     string
	}{
		{"admin", "admin123", "Administrador", constants.RoleAdmin},
		{"caja1", "caja123", "Cajero Principal", constants.RoleCashier},
		{"mesero1", "mesero123", "Mesero Uno", constants.RoleWaiter},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			logf("failed to hash password for %s: %v", u.username, err)
			continue
		}
		user := models.User{
			Username:     u.username,
			PasswordHash: string(hash),
			FullName:     u.fullName,
			Role:         u.role,
			Active:       true,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			logf("failed to seed user %s: %v", u.username, err)
		}
	}
	logf("seeded %d users", len(users))
}
