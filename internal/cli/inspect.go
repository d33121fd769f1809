package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pvetools/prox2vmx/internal/convert"
	"github.com/pvetools/prox2vmx/internal/pve"
)

var inspectPreserveMAC bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <vmid>",
	Short: "Show the field mapping without converting anything",
	Long: `Parse a VM's qemu-server configuration and print the VMX attributes it
would map to, plus the disk images that would be transcoded. Nothing is
written and no external tools are invoked.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectPreserveMAC, "preserve-mac", false, "preserve the original MAC addresses in the mapping")
}

func runInspect(cmd *cobra.Command, args []string) error {
	vmid, err := parseVMID(args[0])
	if err != nil {
		return err
	}

	runner := convert.NewRunner(cfg, log)
	guest, err := pve.ParseFile(runner.ConfPath(vmid))
	if err != nil {
		return err
	}

	desc, tasks, err := convert.Map(guest, convert.Options{
		VMID:        vmid,
		PreserveMAC: inspectPreserveMAC,
		HWVersion:   cfg.HWVersion,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.AppendHeader(table.Row{"VMX Attribute", "Value"})
	for _, key := range desc.Keys() {
		value, _ := desc.Get(key)
		tw.AppendRow(table.Row{key, value})
	}
	tw.Render()

	if len(tasks) == 0 {
		fmt.Fprintln(out, "No disk images to convert.")
		return nil
	}

	dw := table.NewWriter()
	dw.SetOutputMirror(out)
	dw.AppendHeader(table.Row{"Source Volume", "Target Disk"})
	for _, task := range tasks {
		dw.AppendRow(table.Row{task.Volume.ID, task.FileName})
	}
	dw.Render()

	return nil
}
