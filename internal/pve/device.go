package pve

import "strings"

// nicModels are the network adapter models qemu-server accepts. The
// shorthand form "model=MAC" uses these as option keys.
var nicModels = map[string]bool{
	"virtio":        true,
	"e1000":         true,
	"e1000e":        true,
	"e1000-82540em": true,
	"e1000-82544gc": true,
	"e1000-82545em": true,
	"vmxnet3":       true,
	"rtl8139":       true,
	"ne2k_pci":      true,
	"ne2k_isa":      true,
	"pcnet":         true,
	"i82551":        true,
	"i82557b":       true,
	"i82559er":      true,
}

// NetDevice is a parsed netN entry.
type NetDevice struct {
	Model  string
	MAC    string
	Bridge string
}

// ParseNet parses a netN value. Both qemu-server forms are accepted:
// the shorthand "virtio=AA:BB:CC:DD:EE:FF,bridge=vmbr0" and the explicit
// "model=virtio,macaddr=AA:BB:CC:DD:EE:FF,bridge=vmbr0".
func ParseNet(entry string) NetDevice {
	var dev NetDevice
	for _, part := range strings.Split(entry, ",") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		switch {
		case key == "model":
			dev.Model = value
		case key == "macaddr" || key == "mac":
			dev.MAC = value
		case key == "bridge":
			dev.Bridge = value
		case nicModels[key]:
			dev.Model = key
			dev.MAC = value
		}
	}
	return dev
}

// Volume is a parsed disk entry (sataN, scsiN, efidiskN, ideN).
type Volume struct {
	// ID is the storage-qualified volume identifier, e.g.
	// "local-lvm:vm-100-disk-0", or an absolute host path.
	ID      string
	Storage string
	Name    string
	Options map[string]string
}

// ParseVolume parses a disk entry value: a volume identifier followed by
// comma-separated options such as size=32G or media=cdrom.
func ParseVolume(entry string) Volume {
	parts := strings.Split(entry, ",")
	vol := Volume{
		ID:      strings.TrimSpace(parts[0]),
		Options: make(map[string]string),
	}
	for _, part := range parts[1:] {
		if key, value, ok := strings.Cut(part, "="); ok {
			vol.Options[strings.TrimSpace(key)] = value
		}
	}
	if !strings.HasPrefix(vol.ID, "/") {
		if storage, name, ok := strings.Cut(vol.ID, ":"); ok {
			vol.Storage = storage
			vol.Name = name
		}
	}
	return vol
}

// IsCDROM reports whether the entry is a CD-ROM drive rather than a disk.
func (v Volume) IsCDROM() bool {
	return v.ID == "none" || v.Options["media"] == "cdrom"
}

// NeedsConversion reports whether the volume is a file-backed disk image
// qemu-img can transcode. Block-backed volumes (LVM, ZFS zvols) carry no
// file extension and are left alone.
func (v Volume) NeedsConversion() bool {
	for _, ext := range []string{".qcow2", ".vmdk", ".raw"} {
		if strings.HasSuffix(v.ID, ext) {
			return true
		}
	}
	return false
}
