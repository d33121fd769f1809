package convert

// guestOSMap translates a qemu-server ostype into the closest VMware
// guestOS identifier. Anything unknown falls back to other-64.
var guestOSMap = map[string]string{
	"win11": "windows2019srvNext-64",
	"win10": "windows2019srv-64",
	"win8":  "windows8srv-64",
	"win7":  "windows7srv-64",
	"w2k8":  "longhorn-64",
	"wxp":   "winNetEnterprise-64",
	"l26":   "otherlinux-64",
	"l24":   "other24xlinux-64",
}

// GuestOS returns the VMware guestOS identifier for a qemu-server ostype.
func GuestOS(ostype string) string {
	if id, ok := guestOSMap[ostype]; ok {
		return id
	}
	return "other-64"
}
