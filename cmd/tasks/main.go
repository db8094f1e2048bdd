package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/silviacristinaa/tasks/internal/cli"
	"github.com/silviacristinaa/tasks/internal/employees"
	internal_http "github.com/silviacristinaa/tasks/internal/http"
	"github.com/silviacristinaa/tasks/internal/log"
	internal_storage "github.com/silviacristinaa/tasks/internal/storage"
	"github.com/silviacristinaa/tasks/pkg/service"
)

var rootCmd = &cobra.Command{Use: "tasks"}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tasks HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			log.GetLogger().Infof("No .env file found: %v", err)
		}

		connStr, _ := cmd.Flags().GetString("db")
		if connStr == "" {
			connStr = connStringFromEnv()
		}
		store, err := internal_storage.NewPostgresStore(connStr)
		if err != nil {
			log.GetLogger().Errorf("Failed to initialize store: %v", err)
			os.Exit(1)
		}
		defer store.Close()

		employeesURL := os.Getenv("EMPLOYEES_URL")
		if employeesURL == "" {
			log.GetLogger().Errorf("EMPLOYEES_URL is required")
			os.Exit(1)
		}
		client := employees.NewClient(employeesURL, employeesTimeout())
		svc := service.NewTaskService(store, client, log.GetLogger())

		port, _ := cmd.Flags().GetString("port")
		if err := internal_http.StartServer(port, svc); err != nil {
			log.GetLogger().Errorf("Server failed: %v", err)
			os.Exit(1)
		}
	},
}

func connStringFromEnv() string {
	dbUsername := os.Getenv("DB_USERNAME")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")
	if dbUsername == "" || dbPassword == "" || dbHost == "" || dbPort == "" || dbName == "" {
		fmt.Println("Error: --db flag or complete DB_* env vars (DB_USERNAME, DB_PASSWORD, DB_HOST, DB_PORT, DB_NAME) required")
		os.Exit(1)
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUsername, dbPassword, dbHost, dbPort, dbName)
}

// employeesTimeout bounds every employee-directory call, EMPLOYEES_TIMEOUT_MS
// overriding the 5s default.
func employeesTimeout() time.Duration {
	raw := os.Getenv("EMPLOYEES_TIMEOUT_MS")
	if raw == "" {
		return 5 * time.Second
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		log.GetLogger().Errorf("Invalid EMPLOYEES_TIMEOUT_MS %q, using default", raw)
		return 5 * time.Second
	}
	return time.Duration(ms) * time.Millisecond
}

func main() {
	rootCmd.PersistentFlags().String("db", "", "Database connection string (optional if DB_* env vars are set)")
	serveCmd.Flags().String("port", "8080", "HTTP port to listen on")
	rootCmd.AddCommand(serveCmd)
	cli.SetupCLI(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
