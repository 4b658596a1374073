package cobra

import (
	"context"
	"fmt"
	"os"

	"github.com/Anthya1104/exam-simulator-cli/internal/bank"
	"github.com/Anthya1104/exam-simulator-cli/internal/config"
	"github.com/Anthya1104/exam-simulator-cli/internal/logger"
	"github.com/Anthya1104/exam-simulator-cli/internal/server"
	"github.com/Anthya1104/exam-simulator-cli/internal/session"
	"github.com/Anthya1104/exam-simulator-cli/internal/ui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath    string
	dataDirFlag   string
	logLevelFlag  string
	bankFlag      string
	listenFlag    string
	noLogFileFlag bool

	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "exam-simulator",
	Short:         "A timed exam practice CLI with numeric and multiple-choice questions",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTerminal(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version info",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\n", config.Version)
	},
}

var banksCmd = &cobra.Command{
	Use:   "banks",
	Short: "List the question banks in the data dir",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := bank.List(appConfig.DataDir)
		if err != nil {
			return err
		}
		ui.RenderBanks(cmd.OutOrStdout(), names)
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Take an exam in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTerminal(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the exam session over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := appConfig.ListenAddr
		if listenFlag != "" {
			addr = listenFlag
		}
		srv := server.New(newController(), appConfig.DataDir)
		return srv.ListenAndServe(cmd.Context(), addr)
	},
}

func loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	if noLogFileFlag {
		cfg.LogFile = ""
	}

	if err := logger.InitLogger(cfg.LogLevel); err != nil {
		return err
	}
	if err := logger.SetOutputFile(cfg.LogFile); err != nil {
		// file logging is optional
		logrus.Warnf("Logging to stderr only: %v", err)
	}

	logrus.Debugf("Config: %+v", *cfg)
	appConfig = cfg
	return nil
}

func newController() *session.Controller {
	return session.NewController(
		session.WithDuration(appConfig.ExamDuration),
		session.WithTolerance(appConfig.NumericTolerance),
	)
}

func runTerminal(ctx context.Context) error {
	term := ui.NewTerminal(newController(), appConfig.DataDir, os.Stdin, os.Stdout)

	if bankFlag != "" {
		if err := term.Start(bankFlag); err != nil {
			logrus.Warnf("Could not start exam from %s: %v", bankFlag, err)
		}
	} else {
		names, err := bank.List(appConfig.DataDir)
		if err != nil {
			logrus.Warnf("Could not list question banks: %v", err)
		}
		ui.RenderBanks(os.Stdout, names)
	}

	if err := term.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func InitCLI() *cobra.Command {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVarP(&dataDirFlag, "data-dir", "d", "", "Question bank folder (default \"data\")")
	rootCmd.PersistentFlags().StringVarP(&logLevelFlag, "log-level", "l", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&noLogFileFlag, "no-log-file", false, "Do not write the log file")

	rootCmd.Flags().StringVarP(&bankFlag, "bank", "b", "", "Question bank to start right away (file name or list number)")
	runCmd.Flags().StringVarP(&bankFlag, "bank", "b", "", "Question bank to start right away (file name or list number)")
	serveCmd.Flags().StringVar(&listenFlag, "listen", "", "Listen address (default \":8080\")")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(banksCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)

	return rootCmd
}

func ExecuteCmd(ctx context.Context) error {

	return InitCLI().ExecuteContext(ctx)

}
