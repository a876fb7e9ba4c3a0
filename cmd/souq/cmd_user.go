package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/souq/app/services"
	"github.com/shashiranjanraj/souq/pkg/database"
	"github.com/shashiranjanraj/souq/pkg/orm"
	"github.com/shashiranjanraj/souq/pkg/rbac"
	"github.com/shashiranjanraj/souq/pkg/validate"
)

var newUser services.CreateUserInput

// souq user:create
var userCreateCmd = &cobra.Command{
	Use:   "user:create",
	Short: "Create a dashboard user (admin, manager or user)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if errs := validate.Struct(newUser); validate.HasErrors(errs) {
			return invalidFlags(errs)
		}
		if err := bootDB(); err != nil {
			return err
		}
		defer closeDB()

		user, err := services.NewAuthService(orm.Use(database.DB)).CreateUser(context.Background(), newUser)
		if errors.Is(err, services.ErrDuplicate) {
			return fmt.Errorf("a user with email %s already exists", newUser.Email)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Created %s user #%d <%s>\n", user.Role, user.ID, user.Email)
		return nil
	},
}

func init() {
	f := userCreateCmd.Flags()
	f.StringVar(&newUser.Email, "email", "", "login email")
	f.StringVar(&newUser.Password, "password", "", "password (8-72 characters)")
	f.StringVar(&newUser.Name, "name", "", "display name")
	f.StringVar(&newUser.Role, "role", rbac.RoleUser, "admin, manager or user")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")
	_ = userCreateCmd.MarkFlagRequired("name")
}

func invalidFlags(errs map[string]string) error {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, "  --"+f+": "+errs[f])
	}
	return fmt.Errorf("invalid flags:\n%s", strings.Join(lines, "\n"))
}
