package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mhsanaei/rolepanel/config"
	"github.com/mhsanaei/rolepanel/database"
	"github.com/mhsanaei/rolepanel/logger"
	"github.com/mhsanaei/rolepanel/util/common"
	"github.com/mhsanaei/rolepanel/web"
	"github.com/mhsanaei/rolepanel/web/service"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func loadConfig() *config.Config {
	if err := config.LoadEnvFile(""); err != nil {
		log.Fatal("load .env: ", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func openDB(cfg *config.Config) *gorm.DB {
	if cfg.UsesDefaultAdminPassword() {
		logger.Warning("ROLEPANEL_ADMIN_PASSWORD is not set, a new store gets the default admin password")
	}
	db, err := database.InitDB(&cfg.Database, database.Seed{
		AdminLogin:    cfg.AdminLogin,
		AdminPassword: cfg.AdminPassword,
	})
	if err != nil {
		log.Fatal(err)
	}
	return db
}

// closeDB checkpoints and closes db, logging instead of failing.
func closeDB(db *gorm.DB) {
	if err := database.CloseDB(db); err != nil {
		logger.Warning("close db err:", err)
	}
}

func runWebServer() {
	cfg := loadConfig()
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	level, err := logger.ParseLevel(config.GetLogLevel())
	if err != nil {
		log.Fatal(err)
	}
	logger.InitLogger(level)
	defer logger.CloseLogger()

	db := openDB(cfg)
	defer closeDB(db)

	// The store spans SIGHUP restarts so reloading keeps everyone logged in.
	store, closeStore, err := web.NewSessionStore(cfg)
	if err != nil {
		logger.Error("session store err:", err)
		return
	}

	server := web.NewServer(cfg, db, store)
	defer func() {
		if err := common.Combine(server.Stop(), closeStore()); err != nil {
			logger.Warning("stop server err:", err)
		}
	}()
	if err := server.Start(); err != nil {
		logger.Error("start server err:", err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, os.Interrupt)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer(cfg, db, store)
			if err := server.Start(); err != nil {
				logger.Error("restart server err:", err)
				return
			}
		default:
			return
		}
	}
}

func migrateDb() {
	cfg := loadConfig()
	db := openDB(cfg)
	defer closeDB(db)
	fmt.Println("Migration done!")
}

func showSetting() {
	cfg := loadConfig()
	db := openDB(cfg)
	defer closeDB(db)

	count, err := service.NewUserService(db).CountUsers()
	if err != nil {
		fmt.Println("count users failed:", err)
	}
	fmt.Println("current settings as follows:")
	fmt.Println("listen:", cfg.Listen)
	fmt.Println("port:", cfg.Port)
	fmt.Println("db:", cfg.Database.Path)
	fmt.Println("users:", count)
	if cfg.Redis.Addr != "" {
		fmt.Println("redis:", cfg.Redis.Addr)
	}
}

func main() {
	var rootCmd = &cobra.Command{
		Use: config.GetName(),
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables and seed the default roles and admin",
		Run: func(cmd *cobra.Command, args []string) {
			migrateDb()
		},
	}

	var settingCmd = &cobra.Command{
		Use:   "setting",
		Short: "Inspect settings",
	}

	var showCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Run: func(cmd *cobra.Command, args []string) {
			showSetting()
		},
	}

	settingCmd.AddCommand(showCmd)
	rootCmd.AddCommand(runCmd, migrateCmd, settingCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
