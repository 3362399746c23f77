package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spec-kit/society-portal/internal/api/dto"
	"github.com/spec-kit/society-portal/internal/client"
)

func newBillsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "bills",
		Short: "Show your own bills, pending and paid",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.navigate(client.PathResidentHome); err != nil {
				return err
			}

			_, partition, err := client.NewBillView(app.client).ListOwnBills(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Total due:  %.2f (%d pending)\n", partition.TotalDue, len(partition.Pending))
			fmt.Printf("Total paid: %.2f\n\n", partition.TotalPaid)

			printBills("Pending", partition.Pending)
			printBills("Paid", partition.Paid)
			return nil
		},
	}
}

func newPayCmd(app *App) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "pay BILL_ID",
		Short: "Pay one of your bills",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.navigate(client.PathResidentHome); err != nil {
				return err
			}

			confirm := func(bill dto.BillResponse) bool {
				if assumeYes {
					return true
				}
				answer, err := promptLine(fmt.Sprintf(
					"Pay %.2f for %s %d? [y/N] ", bill.Amount, bill.Month, bill.Year))
				if err != nil {
					return false
				}
				return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
			}

			_, partition, err := client.NewBillView(app.client).Pay(cmd.Context(), args[0], confirm)
			if err != nil {
				return err
			}
			fmt.Println("Payment successful")
			fmt.Printf("Total due is now %.2f\n", partition.TotalDue)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func printBills(title string, bills []dto.BillResponse) {
	fmt.Printf("%s (%d):\n", title, len(bills))
	if len(bills) == 0 {
		fmt.Println("  none")
		return
	}
	for _, b := range bills {
		fmt.Printf("  %s  %8.2f  %s %d  due %s  %s\n",
			b.ID, b.Amount, b.Month, b.Year, b.DueDate.Format("2006-01-02"), b.Description)
	}
}
