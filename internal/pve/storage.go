package pve

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ResolveVolumePath maps a PVE volume identifier to a host filesystem path
// by shelling out to "pvesm path". Absolute paths are returned unchanged.
func ResolveVolumePath(ctx context.Context, pvesmBin, volume string) (string, error) {
	if strings.HasPrefix(volume, "/") {
		return volume, nil
	}
	if pvesmBin == "" {
		pvesmBin = "pvesm"
	}

	out, err := exec.CommandContext(ctx, pvesmBin, "path", volume).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("pvesm path %s: %w: %s", volume, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("pvesm path %s: %w", volume, err)
	}
	return strings.TrimSpace(string(out)), nil
}
