package cmd

import (
	"fmt"

	"docman/config"
	"docman/helper"
	"docman/models"
	"docman/repositories"
	"docman/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var adminReq models.CreateUserRequest

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage administrator accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user holding the admin role",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		res, err := createAdmin(cfg, db, log, adminReq)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "admin %q created with id %d\n", adminReq.Username, res.UserID)
		return nil
	},
}

func init() {
	flags := adminCreateCmd.Flags()
	flags.StringVar(&adminReq.Username, "username", "", "login name")
	flags.StringVar(&adminReq.Email, "email", "", "email address")
	flags.StringVar(&adminReq.Password, "password", "", "password")
	flags.StringVar(&adminReq.Firstname, "firstname", "Admin", "first name")
	flags.StringVar(&adminReq.Lastname, "lastname", "User", "last name")
	for _, name := range []string{"username", "email", "password"} {
		_ = adminCreateCmd.MarkFlagRequired(name)
	}

	adminCmd.AddCommand(adminCreateCmd)
	RootCmd.AddCommand(adminCmd)
}

// createAdmin registers the account through the regular sign-up path and
// then grants it the admin role.
func createAdmin(cfg *config.Config, db *gorm.DB, log *zap.Logger, req models.CreateUserRequest) (*models.AuthResponse, error) {
	userRepo := repositories.NewUserRepository(db)
	blacklist := services.NewBlacklistService(repositories.NewBlacklistRepository(db), nil, log)
	auth := services.NewAuthService(userRepo, services.NewTokenService(cfg.JWT), blacklist, services.AuthOptions{
		DefaultRoleID: cfg.DefaultRoleID,
	}, log)

	if err := helper.NewHTTPHelper(log).Validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid admin account: %w", err)
	}

	res, err := auth.Register(req)
	if err != nil {
		return nil, err
	}

	user, err := userRepo.GetByID(res.UserID)
	if err != nil {
		return nil, err
	}
	if err := userRepo.Update(user, map[string]interface{}{"role_id": cfg.AdminRoleID}); err != nil {
		return nil, err
	}

	res.RoleID = cfg.AdminRoleID
	return res, nil
}
