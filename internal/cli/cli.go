package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/silviacristinaa/tasks/internal/employees"
	"github.com/silviacristinaa/tasks/internal/log"
	internal_storage "github.com/silviacristinaa/tasks/internal/storage"
	"github.com/silviacristinaa/tasks/pkg/service"
)

// SetupCLI wires the management commands onto the root command. They talk to
// the database directly through the service, the same way the server does.
func SetupCLI(rootCmd *cobra.Command) {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks (CLI)",
		Run: func(cmd *cobra.Command, args []string) {
			svc, closeStore := initService(cmd)
			defer closeStore()
			page, _ := cmd.Flags().GetInt("page")
			size, _ := cmd.Flags().GetInt("size")
			listTasks(svc, page, size)
		},
	}
	listCmd.Flags().Int("page", 0, "Zero-based page number")
	listCmd.Flags().Int("size", 20, "Page size")

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show a single task (CLI)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			svc, closeStore := initService(cmd)
			defer closeStore()
			getTask(svc, parseID(args[0]))
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task (CLI)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			svc, closeStore := initService(cmd)
			defer closeStore()
			deleteTask(svc, parseID(args[0]))
		},
	}

	rootCmd.AddCommand(listCmd, getCmd, deleteCmd)
}

func listTasks(svc *service.TaskService, page, size int) {
	result, err := svc.FindAll(service.PageRequest{Page: page, Size: size})
	if err != nil {
		log.GetLogger().Errorf("Failed to list tasks: %v", err)
		fmt.Fprintf(os.Stderr, "Error: failed to list tasks: %v\n", err)
		os.Exit(1)
	}
	if len(result.Content) == 0 {
		fmt.Fprintf(os.Stdout, "No tasks found.\n")
		return
	}
	fmt.Fprintf(os.Stdout, "Tasks (page %d of %d, %d total):\n", result.Page+1, result.TotalPages, result.TotalElements)
	for _, t := range result.Content {
		fmt.Fprintf(os.Stdout, "- ID: %d, Title: %s, Priority: %s, Status: %s, Employee: %d, %s..%s\n",
			t.ID, t.Title, t.Priority, t.Status, t.EmployeeID, t.StartDate, t.EndDate)
	}
}

func getTask(svc *service.TaskService, id int64) {
	t, err := svc.FindOneByID(id)
	if err != nil {
		log.GetLogger().Errorf("Failed to get task %d: %v", id, err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, "ID: %d\nTitle: %s\nDescription: %s\nStart: %s\nEnd: %s\nPriority: %s\nStatus: %s\nEmployee: %d\n",
		t.ID, t.Title, t.Description, t.StartDate, t.EndDate, t.Priority, t.Status, t.EmployeeID)
}

func deleteTask(svc *service.TaskService, id int64) {
	if err := svc.Delete(id); err != nil {
		log.GetLogger().Errorf("Failed to delete task %d: %v", id, err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, "Deleted task %d\n", id)
}

func parseID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing id as number: %v\n", err)
		os.Exit(1)
	}
	return id
}

func initService(cmd *cobra.Command) (*service.TaskService, func()) {
	dbConnStr, err := cmd.Flags().GetString("db")
	if err != nil {
		log.GetLogger().Errorf("Error retrieving db flag: %v", err)
		os.Exit(1)
	}
	store, err := internal_storage.NewPostgresStore(dbConnStr)
	if err != nil {
		log.GetLogger().Errorf("Failed to initialize store: %v", err)
		os.Exit(1)
	}
	client := employees.NewClient(os.Getenv("EMPLOYEES_URL"), 5*time.Second)
	svc := service.NewTaskService(store, client, log.GetLogger())
	return svc, func() {
		if err := store.Close(); err != nil {
			log.GetLogger().Errorf("Failed to close store: %v", err)
		}
	}
}
