package convert

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvetools/prox2vmx/internal/pve"
	"github.com/pvetools/prox2vmx/internal/testutil"
	"github.com/pvetools/prox2vmx/internal/vmx"
)

func parseConf(t *testing.T, conf string) *pve.GuestConfig {
	t.Helper()
	cfg, err := pve.Parse(strings.NewReader(conf))
	require.NoError(t, err)
	return cfg
}

func get(t *testing.T, d *vmx.Descriptor, key string) string {
	t.Helper()
	v, ok := d.Get(key)
	require.True(t, ok, "descriptor should contain %q", key)
	return v
}

func TestMapPreserveMAC(t *testing.T) {
	cfg := parseConf(t, "memory: 2048\ncores: 2\nnet0: virtio=AA:BB:CC:DD:EE:FF,bridge=vmbr0\n")

	d, _, err := Map(cfg, Options{VMID: 100, PreserveMAC: true})
	require.NoError(t, err)

	assert.Equal(t, "2048", get(t, d, "memsize"))
	assert.Equal(t, "2", get(t, d, "numvcpus"))
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", get(t, d, "ethernet0.address"))
	assert.Equal(t, "static", get(t, d, "ethernet0.addressType"))
	assert.Equal(t, "vmbr0", get(t, d, "ethernet0.networkName"))
}

func TestMapWithoutPreserveMAC(t *testing.T) {
	cfg := parseConf(t, "memory: 2048\ncores: 2\nnet0: virtio=AA:BB:CC:DD:EE:FF,bridge=vmbr0\n")

	d, _, err := Map(cfg, Options{VMID: 100})
	require.NoError(t, err)

	assert.False(t, d.Has("ethernet0.address"), "MAC must be omitted so the target assigns one")
	assert.Equal(t, "vpx", get(t, d, "ethernet0.addressType"))
}

func TestMapNormalizesMAC(t *testing.T) {
	cfg := parseConf(t, "memory: 512\ncores: 1\nnet0: virtio=aa-bb-cc-dd-ee-ff,bridge=vmbr0\n")

	d, _, err := Map(cfg, Options{PreserveMAC: true})
	require.NoError(t, err)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", get(t, d, "ethernet0.address"))
}

func TestMapPreserveMACMissingAddress(t *testing.T) {
	cfg := parseConf(t, "memory: 512\ncores: 1\nnet0: bridge=vmbr0\n")

	_, _, err := Map(cfg, Options{PreserveMAC: true})
	var merr *MappingError
	require.ErrorAs(t, err, &merr)
	assert.Contains(t, merr.Field, "net0")
}

func TestMapInvalidMAC(t *testing.T) {
	cfg := parseConf(t, "memory: 512\ncores: 1\nnet0: virtio=not-a-mac,bridge=vmbr0\n")

	_, _, err := Map(cfg, Options{PreserveMAC: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "net0")
}

func TestMapMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		conf  string
		field string
	}{
		{"missing memory", "cores: 2\nname: broken\n", "memory"},
		{"missing cores", "memory: 2048\nname: broken\n", "cores"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Map(parseConf(t, tt.conf), Options{})

			var merr *MappingError
			require.ErrorAs(t, err, &merr)
			assert.Equal(t, tt.field, merr.Field)
		})
	}
}

func TestMapRequiredKeysAlwaysPresent(t *testing.T) {
	// Minimal config: every required descriptor key must still be there.
	cfg := parseConf(t, "memory: 256\ncores: 1\n")

	d, _, err := Map(cfg, Options{VMID: 42})
	require.NoError(t, err)
	assert.NoError(t, d.Validate())
}

func TestMapFallbackName(t *testing.T) {
	cfg := parseConf(t, "memory: 256\ncores: 1\n")

	d, _, err := Map(cfg, Options{VMID: 123})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^vm-123-[0-9a-f]{8}$`), get(t, d, "displayName"))
}

func TestMapGuestOS(t *testing.T) {
	tests := []struct {
		ostype string
		want   string
	}{
		{"win11", "windows2019srvNext-64"},
		{"win10", "windows2019srv-64"},
		{"l26", "otherlinux-64"},
		{"l24", "other24xlinux-64"},
		{"solaris", "other-64"},
		{"", "other-64"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GuestOS(tt.ostype), "ostype %q", tt.ostype)
	}
}

func TestMapEFIFirmware(t *testing.T) {
	for _, conf := range []string{
		"memory: 512\ncores: 1\nbios: ovmf\n",
		"memory: 512\ncores: 1\nefidisk0: local-lvm:vm-100-disk-1,size=4M\n",
	} {
		d, _, err := Map(parseConf(t, conf), Options{})
		require.NoError(t, err)
		assert.Equal(t, "efi", get(t, d, "firmware"))
		assert.Equal(t, "TRUE", get(t, d, "efi.present"))
	}

	d, _, err := Map(parseConf(t, "memory: 512\ncores: 1\nbios: seabios\n"), Options{})
	require.NoError(t, err)
	assert.False(t, d.Has("firmware"))
}

func TestMapBIOSUUID(t *testing.T) {
	cfg := parseConf(t, "memory: 512\ncores: 1\nsmbios1: uuid=7b2d1f2e-5a3c-4d6e-9f80-1234567890ab,manufacturer=UHJveG1veA==\n")

	d, _, err := Map(cfg, Options{})
	require.NoError(t, err)
	assert.Equal(t, "7b2d1f2e-5a3c-4d6e-9f80-1234567890ab", get(t, d, "uuid.bios"))
}

func TestMapDisks(t *testing.T) {
	cfg := parseConf(t, `name: db01
memory: 4096
cores: 4
scsi0: local:100/vm-100-disk-0.qcow2,size=32G
scsi1: local:100/vm-100-disk-1.qcow2,size=64G
sata0: local-lvm:vm-100-disk-2,size=8G
ide2: none,media=cdrom
`)

	d, tasks, err := Map(cfg, Options{VMID: 100})
	require.NoError(t, err)

	assert.Equal(t, "lsilogic", get(t, d, "scsi0.virtualDev"))
	assert.Equal(t, "TRUE", get(t, d, "scsi0.present"))
	assert.Equal(t, "db01-scsi0-disk-0.vmdk", get(t, d, "scsi0:0.fileName"))
	assert.Equal(t, "db01-scsi0-disk-1.vmdk", get(t, d, "scsi0:1.fileName"))
	assert.Equal(t, "TRUE", get(t, d, "sata0.present"))
	assert.Equal(t, "db01-sata0-disk-0.vmdk", get(t, d, "sata0:0.fileName"))

	// The CD-ROM contributes nothing.
	for _, key := range d.Keys() {
		assert.NotContains(t, key, "ide", "CD-ROM entries must be skipped")
	}

	// Only file-backed volumes become conversion tasks; the LVM volume
	// still appears in the descriptor but is not transcoded.
	require.Len(t, tasks, 2)
	assert.Equal(t, "local:100/vm-100-disk-0.qcow2", tasks[0].Volume.ID)
	assert.Equal(t, "db01-scsi0-disk-0.vmdk", tasks[0].FileName)
	assert.Equal(t, "db01-scsi0-disk-1.vmdk", tasks[1].FileName)
}

func TestMapMultipleNICs(t *testing.T) {
	cfg := parseConf(t, `memory: 1024
cores: 2
net0: virtio=AA:BB:CC:DD:EE:00,bridge=vmbr0
net1: e1000=AA:BB:CC:DD:EE:01
`)

	d, _, err := Map(cfg, Options{PreserveMAC: true})
	require.NoError(t, err)

	assert.Equal(t, "AA:BB:CC:DD:EE:00", get(t, d, "ethernet0.address"))
	assert.Equal(t, "AA:BB:CC:DD:EE:01", get(t, d, "ethernet1.address"))
	assert.Equal(t, "unknown", get(t, d, "ethernet1.networkName"), "missing bridge maps to unknown")
}

func TestMapSampleConf(t *testing.T) {
	cfg := parseConf(t, testutil.SampleConf)

	d, tasks, err := Map(cfg, Options{VMID: 100, PreserveMAC: true})
	require.NoError(t, err)
	require.NoError(t, d.Validate())

	assert.Equal(t, "web01", get(t, d, "displayName"))
	assert.Equal(t, "otherlinux-64", get(t, d, "guestOS"))
	assert.Equal(t, "efi", get(t, d, "firmware"))
	assert.Equal(t, "UTF-8", get(t, d, ".encoding"))
	assert.Equal(t, ".encoding", d.Keys()[0], ".encoding must come first")
	require.Len(t, tasks, 1)
	assert.Equal(t, "web01-scsi0-disk-0.vmdk", tasks[0].FileName)
}

func TestMapHWVersionOverride(t *testing.T) {
	cfg := parseConf(t, "memory: 512\ncores: 1\n")

	d, _, err := Map(cfg, Options{HWVersion: "21"})
	require.NoError(t, err)
	assert.Equal(t, "21", get(t, d, "virtualHW.version"))

	d, _, err = Map(cfg, Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultHWVersion, get(t, d, "virtualHW.version"))
}
