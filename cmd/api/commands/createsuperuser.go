package commands

import (
	"fmt"

	"snippetapi/internal/infra/repository"
	"snippetapi/internal/usecase"
	"snippetapi/internal/validator"

	"github.com/spf13/cobra"
)

var (
	suUsername string
	suEmail    string
	suPassword string
)

// createSuperuserCmd adds an ADMIN user (with profile).
var createSuperuserCmd = &cobra.Command{
	Use:   "createsuperuser",
	Short: "Create an admin user",
	Long: `Create a user with the ADMIN role.

Examples:
  api createsuperuser --username admin --email admin@example.com --password 's3cret-pass'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, gdb, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(gdb)

		in := usecase.RegisterInput{Username: suUsername, Email: suEmail, Password: suPassword}
		if err := validator.New().Validate(&in); err != nil {
			return describe(err)
		}

		users := repository.NewUserGormRepository(gdb)
		uc := usecase.NewAuthUsecase(
			cfg,
			users,
			repository.NewRefreshTokenRepository(gdb),
			repository.NewTxManagerGorm(gdb),
			validator.NewAuthValidator(users),
		)

		out, err := uc.CreateSuperuser(cmd.Context(), in)
		if err != nil {
			return describe(err)
		}
		log.Info("superuser created", "id", out.ID, "username", out.Username)
		fmt.Fprintf(cmd.OutOrStdout(), "Superuser %q created.\n", out.Username)
		return nil
	},
}

func init() {
	createSuperuserCmd.Flags().StringVar(&suUsername, "username", "", "Username (required)")
	createSuperuserCmd.Flags().StringVar(&suEmail, "email", "", "Email (required)")
	createSuperuserCmd.Flags().StringVar(&suPassword, "password", "", "Password, at least 8 characters (required)")
	_ = createSuperuserCmd.MarkFlagRequired("username")
	_ = createSuperuserCmd.MarkFlagRequired("email")
	_ = createSuperuserCmd.MarkFlagRequired("password")
}

// フィールドエラーを1行ずつ表示用にまとめる
func describe(err error) error {
	he, ok := usecase.AsHTTPError(err)
	if !ok || len(he.Fields) == 0 {
		return err
	}
	msg := he.Message
	for field, m := range he.Fields {
		msg += fmt.Sprintf("\n  %s: %s", field, m)
	}
	return fmt.Errorf("%s", msg)
}
