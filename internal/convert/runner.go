package convert

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pvetools/prox2vmx/internal/config"
	"github.com/pvetools/prox2vmx/internal/pve"
	"github.com/pvetools/prox2vmx/internal/qemuimg"
	"github.com/pvetools/prox2vmx/internal/timing"
	"github.com/pvetools/prox2vmx/internal/vmx"
)

// Runner drives a full conversion: parse the qemu-server config, map it,
// transcode the disks and write the descriptor. One Runner handles one VM
// per Run call; there is no state shared across runs.
type Runner struct {
	Config *config.Config
	Log    *slog.Logger
	Disks  *qemuimg.Converter

	// now is replaceable for tests of output dir naming.
	now func() time.Time
}

// NewRunner creates a Runner from the loaded tool configuration.
func NewRunner(cfg *config.Config, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		Config: cfg,
		Log:    log,
		Disks:  qemuimg.New(cfg.QemuImg, cfg.VMDKOptions, log),
		now:    time.Now,
	}
}

// ConfPath returns the qemu-server config file path for a VM ID.
func (r *Runner) ConfPath(vmid int) string {
	return filepath.Join(r.Config.ConfDir, fmt.Sprintf("%d.conf", vmid))
}

// Run converts the VM with the given ID and returns the path of the
// written .vmx descriptor. Any failure aborts the run; partially converted
// disks are left behind for inspection.
func (r *Runner) Run(ctx context.Context, vmid int, preserveMAC bool) (string, error) {
	timer := timing.New()

	guest, err := pve.ParseFile(r.ConfPath(vmid))
	if err != nil {
		return "", err
	}
	timer.Mark("parse")

	desc, tasks, err := Map(guest, Options{
		VMID:        vmid,
		PreserveMAC: preserveMAC,
		HWVersion:   r.Config.HWVersion,
	})
	if err != nil {
		return "", err
	}
	timer.Mark("map")

	name, _ := desc.Get("displayName")
	r.Log.Info("starting conversion", "vmid", vmid, "name", name, "disks", len(tasks))

	outDir := r.Config.OutputDir
	if outDir == "" {
		outDir = fmt.Sprintf("%s_%s", name, r.now().Format("2006-01-02_1504"))
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", &vmx.WriteError{Path: outDir, Err: err}
	}

	for _, task := range tasks {
		if err := r.convertDisk(ctx, task, outDir); err != nil {
			return "", err
		}
	}
	timer.Mark("convert")

	vmxPath := filepath.Join(outDir, name+".vmx")
	if err := desc.WriteFile(vmxPath); err != nil {
		return "", err
	}
	timer.Mark("write")

	r.Log.Debug("conversion finished", timer.Attrs()...)
	return vmxPath, nil
}

func (r *Runner) convertDisk(ctx context.Context, task DiskTask, outDir string) error {
	src, err := pve.ResolveVolumePath(ctx, r.Config.Pvesm, task.Volume.ID)
	if err != nil {
		return err
	}
	if _, err := os.Stat(src); err != nil {
		r.Log.Warn("disk image not found, skipping conversion", "volume", task.Volume.ID, "path", src)
		return nil
	}

	r.Log.Info("converting disk", "volume", task.Volume.ID, "target", task.FileName)
	return r.Disks.Convert(ctx, src, filepath.Join(outDir, task.FileName))
}
