package cli

import (
	"fmt"

	"github.com/jihun/brolly/internal/core/repository"
	"github.com/jihun/brolly/internal/core/service"
	"github.com/jihun/brolly/internal/infrastructure/sqlite"
	"github.com/jihun/brolly/pkg/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "brolly",
	Short: "Brolly - shared umbrella lending tracker",
	Long: `Brolly tracks members and the lending of a shared umbrella.

It provides:
- Member registration with salted password hashes
- Checkout and return of the shared umbrella with timestamped history
- At most one open rental per member, enforced in storage
- REST API for the front desk
- Administrative export for backups`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/brolly/config.yml)")
}

// initServices initializes all services
func initServices() (*Services, error) {
	// Initialize database
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repositories
	userRepo := sqlite.NewUserRepository(db)
	rentalRepo := sqlite.NewRentalRepository(db)
	authCodeRepo := sqlite.NewAuthCodeRepository(db)
	exportRepo := sqlite.NewExportRepository(db)

	// Initialize services
	admin := service.AdminCredentials{
		Handle:       cfg.AdminHandle,
		PasswordHash: cfg.AdminPasswordHash,
	}
	authService := service.NewAuthService(userRepo, authCodeRepo, admin, cfg.JWTSecretKey, cfg.JWTAlgorithm)
	rentalService := service.NewRentalService(rentalRepo)

	return &Services{
		DB:            db,
		UserRepo:      userRepo,
		RentalRepo:    rentalRepo,
		AuthCodeRepo:  authCodeRepo,
		ExportRepo:    exportRepo,
		AuthService:   authService,
		RentalService: rentalService,
	}, nil
}

// Services holds all initialized services
type Services struct {
	DB            *sqlite.DB
	UserRepo      repository.UserRepository
	RentalRepo    repository.RentalRepository
	AuthCodeRepo  repository.AuthCodeRepository
	ExportRepo    repository.ExportRepository
	AuthService   *service.AuthService
	RentalService *service.RentalService
}

// Close closes all resources
func (s *Services) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}
