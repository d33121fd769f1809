package convert

import (
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/pvetools/prox2vmx/internal/pve"
	"github.com/pvetools/prox2vmx/internal/vmx"
)

// DefaultHWVersion is the virtual hardware level written into generated
// descriptors. 19 corresponds to ESXi 7.0U2 / Workstation 16.2.
const DefaultHWVersion = "19"

// Options control how a guest configuration is mapped.
type Options struct {
	// VMID is the source VM's numeric ID, used for fallback naming.
	VMID int

	// PreserveMAC copies the source MAC addresses into the descriptor.
	// When false the address keys are omitted so the target environment
	// assigns fresh ones.
	PreserveMAC bool

	// HWVersion overrides virtualHW.version; empty means DefaultHWVersion.
	HWVersion string
}

// DiskTask is a pending disk image conversion produced by the mapper.
type DiskTask struct {
	Volume   pve.Volume
	FileName string
}

var (
	diskKeyRe = regexp.MustCompile(`^(sata|scsi|efidisk)(\d+)$`)
	netKeyRe  = regexp.MustCompile(`^net(\d+)$`)
)

// Map translates a parsed qemu-server configuration into a VMX descriptor
// plus the list of disks that need transcoding. Attributes the converter
// does not recognize are ignored.
func Map(cfg *pve.GuestConfig, opts Options) (*vmx.Descriptor, []DiskTask, error) {
	memory, ok := cfg.Get("memory")
	if !ok {
		return nil, nil, &MappingError{Field: "memory"}
	}
	cores, ok := cfg.Get("cores")
	if !ok {
		return nil, nil, &MappingError{Field: "cores"}
	}

	name := cfg.GetDefault("name", "")
	if name == "" {
		name = fallbackName(opts.VMID)
	}
	hwVersion := opts.HWVersion
	if hwVersion == "" {
		hwVersion = DefaultHWVersion
	}

	d := vmx.NewDescriptor()
	d.Set(".encoding", "UTF-8")
	d.Set("displayName", name)
	d.Set("numvcpus", cores)
	// qemu-server and VMware both size RAM in MiB, so the value is copied
	// verbatim.
	d.Set("memsize", memory)
	d.Set("guestOS", GuestOS(cfg.GetDefault("ostype", "")))
	d.Set("tools.syncTime", "TRUE")
	d.Set("virtualHW.version", hwVersion)
	d.Set("config.version", "8")

	if cfg.GetDefault("bios", "") == "ovmf" || cfg.Has("efidisk0") {
		d.Set("firmware", "efi")
		d.Set("efi.present", "TRUE")
	}

	if smbios, ok := cfg.Get("smbios1"); ok {
		if _, rest, found := strings.Cut(smbios, "uuid="); found {
			biosUUID, _, _ := strings.Cut(rest, ",")
			d.Set("uuid.bios", biosUUID)
		}
	}

	tasks := mapDisks(cfg, name, d)
	if err := mapNICs(cfg, d, opts.PreserveMAC); err != nil {
		return nil, nil, err
	}
	return d, tasks, nil
}

// mapDisks enumerates disk entries in config order. SCSI disks land on a
// virtual LSI Logic controller, everything else (including EFI disks) on
// SATA. CD-ROM drives are skipped: ISO references would be meaningless on
// the target host.
func mapDisks(cfg *pve.GuestConfig, name string, d *vmx.Descriptor) []DiskTask {
	var tasks []DiskTask
	next := map[string]int{"sata0": 0, "scsi0": 0}

	for _, key := range cfg.Keys() {
		m := diskKeyRe.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		entry, _ := cfg.Get(key)
		vol := pve.ParseVolume(entry)
		if vol.IsCDROM() {
			continue
		}

		bus := "sata0"
		if m[1] == "scsi" {
			bus = "scsi0"
			d.Set("scsi0.virtualDev", "lsilogic")
		}
		d.Set(bus+".present", "TRUE")

		idx := next[bus]
		next[bus] = idx + 1
		fileName := fmt.Sprintf("%s-%s-disk-%d.vmdk", name, bus, idx)
		d.Set(fmt.Sprintf("%s:%d.present", bus, idx), "TRUE")
		d.Set(fmt.Sprintf("%s:%d.fileName", bus, idx), fileName)

		if vol.NeedsConversion() {
			tasks = append(tasks, DiskTask{Volume: vol, FileName: fileName})
		}
	}
	return tasks
}

// mapNICs enumerates network entries in config order.
func mapNICs(cfg *pve.GuestConfig, d *vmx.Descriptor, preserveMAC bool) error {
	for _, key := range cfg.Keys() {
		m := netKeyRe.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		entry, _ := cfg.Get(key)
		dev := pve.ParseNet(entry)

		prefix := "ethernet" + m[1]
		d.Set(prefix+".present", "TRUE")
		networkName := dev.Bridge
		if networkName == "" {
			networkName = "unknown"
		}
		d.Set(prefix+".networkName", networkName)

		if !preserveMAC {
			d.Set(prefix+".addressType", "vpx")
			continue
		}
		if dev.MAC == "" {
			return &MappingError{Field: key + " MAC address"}
		}
		mac, err := normalizeMAC(dev.MAC)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		d.Set(prefix+".addressType", "static")
		d.Set(prefix+".address", mac)
	}
	return nil
}

// normalizeMAC converts a MAC address to uppercase colon-hexadecimal form.
func normalizeMAC(mac string) (string, error) {
	hw, err := net.ParseMAC(mac)
	if err != nil {
		return "", fmt.Errorf("invalid MAC address %q", mac)
	}
	return strings.ToUpper(hw.String()), nil
}

// fallbackName generates a display name for VMs that have none configured.
func fallbackName(vmid int) string {
	return fmt.Sprintf("vm-%d-%.8s", vmid, uuid.NewString())
}
