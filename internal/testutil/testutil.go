// Package testutil provides common test helpers for prox2vmx tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// SampleConf is a qemu-server config covering every attribute class the
// converter maps: identity, sizing, firmware, disks, CD-ROM and network.
const SampleConf = `# imported from cluster node pve1
name: web01
memory: 2048
cores: 2
ostype: l26
bios: ovmf
smbios1: uuid=7b2d1f2e-5a3c-4d6e-9f80-1234567890ab
scsi0: local:100/vm-100-disk-0.qcow2,size=32G
sata0: local-lvm:vm-100-disk-1,size=8G
ide2: local:iso/debian-12.iso,media=cdrom,size=628M
net0: virtio=AA:BB:CC:DD:EE:FF,bridge=vmbr0,firewall=1
`

// WriteGuestConf writes a qemu-server config for the given VM ID into dir
// and returns its path.
func WriteGuestConf(t *testing.T, dir string, vmid int, contents string) string {
	t.Helper()

	path := filepath.Join(dir, fmt.Sprintf("%d.conf", vmid))
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write guest config %s: %v", path, err)
	}
	return path
}

// WriteDiskImage creates a small placeholder disk image file for tests that
// exercise the conversion pipeline without a real qemu-img.
func WriteDiskImage(t *testing.T, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("QFI\xfb placeholder"), 0644); err != nil {
		t.Fatalf("failed to write disk image %s: %v", path, err)
	}
}

// WriteStubTool writes an executable shell script named tool into dir and
// returns its path. Used to stand in for qemu-img and pvesm.
func WriteStubTool(t *testing.T, dir, tool, script string) string {
	t.Helper()

	path := filepath.Join(dir, tool)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatalf("failed to write stub %s: %v", path, err)
	}
	return path
}
