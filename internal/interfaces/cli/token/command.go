package token

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lineup/internal/infrastructure/auth"
	"lineup/internal/infrastructure/config"
	"lineup/internal/shared/biztime"
)

var (
	env          string
	staffID      uint
	role         string
	refreshToken string
)

// NewCommand returns the token subcommand. There is no staff directory or
// login flow in the engine, so operator tokens are minted here and handed
// out through deployment tooling.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a staff token pair",
		Long:  `Mint a signed access and refresh token pair for a staff member, or rotate an existing refresh token.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().UintVar(&staffID, "staff-id", 0, "Staff member ID to mint tokens for")
	cmd.Flags().StringVar(&role, "role", string(auth.RoleOperator), "Staff role (operator or admin)")
	cmd.Flags().StringVar(&refreshToken, "refresh", "", "Rotate this refresh token instead of minting a new pair")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	biztime.Init(cfg.Queue.UTCOffsetHours)

	svc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, 7)

	var pair *auth.TokenPair
	switch {
	case refreshToken != "":
		pair, err = svc.Refresh(refreshToken)
		if err != nil {
			return fmt.Errorf("failed to rotate refresh token: %w", err)
		}
	default:
		if staffID == 0 {
			return fmt.Errorf("--staff-id is required")
		}
		staffRole, err := parseRole(role)
		if err != nil {
			return err
		}
		pair, err = svc.Generate(staffID, staffRole)
		if err != nil {
			return fmt.Errorf("failed to mint tokens: %w", err)
		}
	}

	fmt.Printf("access_token:  %s\n", pair.AccessToken)
	fmt.Printf("refresh_token: %s\n", pair.RefreshToken)
	fmt.Printf("expires_in:    %ds\n", pair.ExpiresIn)
	return nil
}

func parseRole(s string) (auth.StaffRole, error) {
	switch auth.StaffRole(s) {
	case auth.RoleOperator, auth.RoleAdmin:
		return auth.StaffRole(s), nil
	}
	return "", fmt.Errorf("unknown role %q, expected operator or admin", s)
}
