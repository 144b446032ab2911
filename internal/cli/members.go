package cli

import (
	"fmt"
	"os"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	memberName  string
	memberPhone string
	memberOrg   string
)

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "Manage members",
	Long:  "Manage member accounts for registration and login",
}

var membersAddCmd = &cobra.Command{
	Use:   "add <handle>",
	Short: "Register a new member",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		handle := args[0]

		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		// Prompt for password
		fmt.Print("Enter password: ")
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		fmt.Print("Confirm password: ")
		confirmPassword, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		if string(password) != string(confirmPassword) {
			return fmt.Errorf("passwords do not match")
		}

		if len(password) < 8 {
			return fmt.Errorf("password must be at least 8 characters")
		}

		name := memberName
		if name == "" {
			name = handle
		}

		user, err := services.AuthService.Register(cmd.Context(), handle, string(password), name, memberPhone, memberOrg)
		if err != nil {
			return fmt.Errorf("failed to register member: %w", err)
		}

		fmt.Printf("Member '%s' (#%d) registered successfully\n", user.Handle, user.ID)
		return nil
	},
}

var membersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all members",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		users, err := services.UserRepo.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list members: %w", err)
		}

		if len(users) == 0 {
			fmt.Println("No members found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "HANDLE\tNAME\tPHONE\tORG\tREGISTERED")
		for _, user := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				user.Handle,
				user.Name,
				orDash(user.Phone),
				orDash(user.Org),
				user.CreatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		w.Flush()

		return nil
	},
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func init() {
	rootCmd.AddCommand(membersCmd)
	membersCmd.AddCommand(membersAddCmd)
	membersCmd.AddCommand(membersListCmd)

	membersAddCmd.Flags().StringVar(&memberName, "name", "", "display name (defaults to the handle)")
	membersAddCmd.Flags().StringVar(&memberPhone, "phone", "", "contact phone (optional)")
	membersAddCmd.Flags().StringVar(&memberOrg, "org", "", "organization (optional)")
}
