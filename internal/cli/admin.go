package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/society-portal/internal/client"
)

func newAdminCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator surfaces",
	}
	cmd.AddCommand(
		newDashboardCmd(app),
		newAdminBillsCmd(app),
		newResidentsCmd(app),
	)
	return cmd
}

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Society-wide totals and recent payments",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.navigate(client.PathAdminHome); err != nil {
				return err
			}

			stats, err := client.NewDashboard(app.client).Stats(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Total received:  %.2f\n", stats.TotalReceived)
			fmt.Printf("Pending amount:  %.2f\n", stats.PendingAmount)
			fmt.Printf("Total residents: %d\n", stats.TotalResidents)
			if len(stats.RecentPayments) == 0 {
				fmt.Println("No recent transactions recorded")
				return nil
			}
			fmt.Println("Recent payments:")
			for _, p := range stats.RecentPayments {
				fmt.Printf("  %s  flat %-6s %.2f  %s\n",
					p.ResidentName, p.FlatNumber, p.Amount, p.PaidAt.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func newAdminBillsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bills",
		Short: "Manage maintenance bills",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every bill",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.navigate(client.PathAdminBills); err != nil {
				return err
			}

			bills, err := client.NewBillDirectory(app.client).ListBills(cmd.Context())
			if err != nil {
				return err
			}
			for _, b := range bills {
				fmt.Printf("%s  %-20s flat %-6s %8.2f  %s %d  due %s  %s\n",
					b.ID, b.ResidentName, b.FlatNumber, b.Amount,
					b.Month, b.Year, b.DueDate.Format("2006-01-02"), b.Status)
			}
			return nil
		},
	}

	var form client.BillForm
	var dueDate string
	now := time.Now()

	create := &cobra.Command{
		Use:   "create",
		Short: "Raise a bill against a resident",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.navigate(client.PathAdminBills); err != nil {
				return err
			}

			if dueDate != "" {
				parsed, err := time.Parse("2006-01-02", dueDate)
				if err != nil {
					return fmt.Errorf("invalid due date %q: use YYYY-MM-DD", dueDate)
				}
				form.DueDate = parsed
			}

			created, bills, err := client.NewBillDirectory(app.client).CreateBill(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Printf("Created bill %s for %.2f (%s %d)\n", created.ID, created.Amount, created.Month, created.Year)
			fmt.Printf("%d bills on record\n", len(bills))
			return nil
		},
	}

	create.Flags().StringVar(&form.ResidentID, "resident", "", "resident id")
	create.Flags().Float64Var(&form.Amount, "amount", 0, "bill amount")
	create.Flags().StringVar(&form.Month, "month", now.Month().String(), "billing month")
	create.Flags().IntVar(&form.Year, "year", now.Year(), "billing year")
	create.Flags().StringVar(&dueDate, "due", "", "due date (YYYY-MM-DD)")
	create.Flags().StringVar(&form.Description, "description", "Monthly Maintenance", "bill description")
	_ = create.MarkFlagRequired("resident")
	_ = create.MarkFlagRequired("amount")
	_ = create.MarkFlagRequired("due")

	cmd.AddCommand(list, create)
	return cmd
}

func newResidentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "residents",
		Short: "Manage resident accounts",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List residents",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.navigate(client.PathAdminResidents); err != nil {
				return err
			}

			directory := client.NewResidentDirectory(app.client, app.gateway, app.cfg.Billing.DefaultResidentPassword, app.logger)
			residents, err := directory.ListResidents(cmd.Context())
			if err != nil {
				return err
			}
			for _, r := range residents {
				fmt.Printf("%s  %-20s flat %-6s %s  %s\n", r.ID, r.Name, r.FlatNumber, r.Email, r.Contact)
			}
			return nil
		},
	}

	var form client.ResidentForm

	add := &cobra.Command{
		Use:   "add",
		Short: "Register a resident",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.navigate(client.PathAdminResidents); err != nil {
				return err
			}

			directory := client.NewResidentDirectory(app.client, app.gateway, app.cfg.Billing.DefaultResidentPassword, app.logger)
			residents, err := directory.CreateResident(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Printf("Registered %s; %d residents on record\n", form.Email, len(residents))
			return nil
		},
	}

	add.Flags().StringVar(&form.Name, "name", "", "full name")
	add.Flags().StringVar(&form.Email, "email", "", "email address")
	add.Flags().StringVar(&form.Contact, "contact", "", "contact number")
	add.Flags().StringVar(&form.FlatNumber, "flat", "", "flat number")
	add.Flags().StringVar(&form.Password, "password", "", "initial password (defaults when empty)")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("email")
	_ = add.MarkFlagRequired("flat")

	cmd.AddCommand(list, add)
	return cmd
}
