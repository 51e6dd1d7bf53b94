// cmd/seed/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ngeukam/backendmaoni/internal/config"
	"github.com/ngeukam/backendmaoni/internal/model"
	"github.com/ngeukam/backendmaoni/internal/repository"
)

// defaultCategories is the taxonomy every fresh deployment starts with.
var defaultCategories = []string{
	"Restaurant",
	"Hotel",
	"Bar",
	"Café",
	"Boulangerie",
	"Supermarché",
	"Banque",
	"Assurance",
	"Téléphonie",
	"Internet",
	"Transport",
	"Taxi",
	"Location de voiture",
	"Garage",
	"Station service",
	"Pharmacie",
	"Hôpital",
	"Clinique",
	"Dentiste",
	"Opticien",
	"École",
	"Université",
	"Formation",
	"Librairie",
	"Coiffure",
	"Esthétique",
	"Salle de sport",
	"Pressing",
	"Immobilier",
	"Construction",
	"Plomberie",
	"Électricité",
	"Informatique",
	"Électroménager",
	"Habillement",
	"Administration",
	"Autre",
}

// defaultLanguages are the UI languages served by the translation endpoint.
var defaultLanguages = []model.Language{
	{Code: "fr", Name: "Français"},
	{Code: "en", Name: "English"},
}

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed reference data into the maoni database",
	Long:  `Seed inserts the default category taxonomy and languages. Existing rows are kept, so it is safe to run repeatedly.`,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Seed the default business categories",
	Run: func(cmd *cobra.Command, args []string) {
		db := mustOpenDatabase()
		repo := repository.NewCategoryRepository(db)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var created int
		for _, name := range defaultCategories {
			_, isNew, err := repo.GetOrCreateByName(ctx, name)
			if err != nil {
				log.Fatalf("Failed to seed category %q: %v", name, err)
			}
			if isNew {
				created++
			}
		}

		fmt.Printf("Seeded %d categories (%d new)\n", len(defaultCategories), created)
	},
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "Seed the default UI languages",
	Run: func(cmd *cobra.Command, args []string) {
		db := mustOpenDatabase()
		repo := repository.NewTranslationRepository(db)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var created int
		for _, language := range defaultLanguages {
			if _, err := repo.FindLanguageByCode(ctx, language.Code); err == nil {
				continue
			}

			lang := language
			if err := repo.CreateLanguage(ctx, &lang); err != nil {
				log.Fatalf("Failed to seed language %q: %v", language.Code, err)
			}
			created++
		}

		fmt.Printf("Seeded %d languages (%d new)\n", len(defaultLanguages), created)
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Seed everything",
	Run: func(cmd *cobra.Command, args []string) {
		categoriesCmd.Run(cmd, args)
		languagesCmd.Run(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(allCmd)
}

func mustOpenDatabase() *gorm.DB {
	cfg := config.Load()

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
		cfg.Database.SearchPath,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&model.Category{}, &model.Language{}, &model.Translation{}); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	return db
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
