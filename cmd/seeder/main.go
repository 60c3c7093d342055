package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/locvowork/company_reporting/internal/bootstrap"
	"github.com/locvowork/company_reporting/internal/config"
	"github.com/locvowork/company_reporting/internal/database"
	"github.com/locvowork/company_reporting/internal/logger"
)

func main() {
	action := flag.String("action", "seed", "Action to perform: seed, clear")
	dir := flag.String("dir", "", "Directory for the CSV files (default: DATA_DIR)")
	preset := flag.String("preset", "small", "Data preset: small, medium, large, xlarge")
	seed := flag.Int64("seed", 0, "Random seed (default: current time)")
	departments := flag.Int("departments", 0, "Number of departments (overrides preset)")
	employees := flag.Int("employees", 0, "Number of employees (overrides preset)")
	projects := flag.Int("projects", 0, "Number of projects (overrides preset)")

	flag.Parse()

	ctx := context.Background()
	if err := bootstrap.Environment(ctx); err != nil {
		log.Fatal(err)
	}
	if *dir == "" {
		*dir = config.DefaultEnvConfig.DATA_DIR
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	fmt.Println("Company CSV Seeder")
	fmt.Println(strings.Repeat("=", 50))

	seeder := database.NewDataSeeder(*dir, *seed)

	switch *action {
	case "seed":
		performSeed(ctx, seeder, *preset, *seed, *departments, *employees, *projects)
	case "clear":
		performClear(ctx, seeder)
	default:
		fmt.Printf("Unknown action: %s\n", *action)
		flag.PrintDefaults()
	}

	fmt.Println("\nDone!")
}

func performSeed(ctx context.Context, seeder *database.DataSeeder, preset string, seed int64, departments, employees, projects int) {
	var numDepartments, numEmployees, numProjects int

	if departments > 0 && employees > 0 && projects > 0 {
		numDepartments, numEmployees, numProjects = departments, employees, projects
		fmt.Printf("Using custom configuration: %d departments, %d employees, %d projects\n",
			numDepartments, numEmployees, numProjects)
	} else {
		numDepartments, numEmployees, numProjects = database.GetPresetConfig(database.SeedPreset(preset))
		fmt.Printf("Using preset: %s\n", preset)
	}
	fmt.Printf("Seed: %d\n", seed)

	results, err := seeder.SeedData(ctx, numDepartments, numEmployees, numProjects)
	if err != nil {
		logger.ErrorLog(ctx, "Seeding failed: %v", err)
		log.Fatalf("Seeding failed: %v", err)
	}
	for _, res := range results {
		fmt.Printf("  %-28s %6d rows\n", res.File, res.Rows)
	}
}

func performClear(ctx context.Context, seeder *database.DataSeeder) {
	fmt.Println("This will delete the seven CSV files!")
	fmt.Print("Continue? (yes/no): ")

	var response string
	fmt.Scanln(&response)

	if response == "yes" {
		if err := seeder.ClearData(ctx); err != nil {
			log.Fatalf("Clear failed: %v", err)
		}
	} else {
		fmt.Println("Cancelled.")
	}
}
