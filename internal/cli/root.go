// Package cli provides the command-line interface for prox2vmx.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/pvetools/prox2vmx/internal/config"
	"github.com/pvetools/prox2vmx/internal/convert"
	"github.com/pvetools/prox2vmx/internal/logging"
)

var (
	cfgFile     string
	confDirFlag string
	outputDir   string
	logLevel    string
	logFormat   string
	preserveMAC bool

	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "prox2vmx <vmid>",
	Short: "Convert a Proxmox VE VM to VMware format",
	Long: `prox2vmx converts a Proxmox VE virtual machine into a VMware-compatible
one: it reads the qemu-server configuration, maps it into a .vmx descriptor
and transcodes the disk images to .vmdk with qemu-img.

Stop the VM before converting it; disk images copied from under a running
guest will be inconsistent.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that don't touch the host need no config
		switch cmd.Name() {
		case "version", "completion", "help", "__complete":
			return nil
		}
		return loadConfig()
	},
	RunE: runConvert,
}

// loadConfig loads the tool configuration and builds the logger. Flags
// override file and environment settings.
func loadConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	if confDirFlag != "" {
		cfg.ConfDir = confDirFlag
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}

	if errs := config.ValidateConfig(cfg); len(errs) > 0 {
		fmt.Fprint(os.Stderr, config.FormatValidationErrors(errs))
		if config.HasFatal(errs) {
			return fmt.Errorf("invalid configuration")
		}
	}

	log = logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	return nil
}

// parseVMID validates the positional VM ID argument.
func parseVMID(arg string) (int, error) {
	vmid, err := strconv.Atoi(arg)
	if err != nil || vmid <= 0 {
		return 0, fmt.Errorf("invalid VM ID %q: expected a positive integer", arg)
	}
	return vmid, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	vmid, err := parseVMID(args[0])
	if err != nil {
		return err
	}

	runner := convert.NewRunner(cfg, log)
	vmxPath, err := runner.Run(cmd.Context(), vmid, preserveMAC)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), text.FgGreen.Sprintf("Conversion successful: %s", vmxPath))
	return nil
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/prox2vmx/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&confDirFlag, "conf-dir", "", "qemu-server config directory (default: /etc/pve/qemu-server)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text|json)")
	rootCmd.Flags().BoolVar(&preserveMAC, "preserve-mac", false, "preserve the original MAC addresses in the VMX file")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "output directory (default: <name>_<timestamp>)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(inspectCmd)
}
