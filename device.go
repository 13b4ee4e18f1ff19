package metaball

import (
	"strings"

	"golang.org/x/text/cases"
)

// lowPowerCoreLimit is the logical core count at or below which a device is
// treated as low power.
const lowPowerCoreLimit = 4

var mobileMarkers = []string{"mobi", "android", "iphone", "ipad", "ipod"}

// DeviceProfile is the one-shot quality classification made when a scene is
// constructed.
type DeviceProfile struct {
	LowPower bool
	Cores    int
	Mobile   bool
}

// String returns "low-power" or "standard".
func (d DeviceProfile) String() string {
	if d.LowPower {
		return "low-power"
	}
	return "standard"
}

// ClassifyDevice applies a coarse user-agent and core-count heuristic.
// An empty user agent is treated as desktop. A non-positive core count is
// treated as unknown and does not force low power on its own.
func ClassifyDevice(userAgent string, cores int) DeviceProfile {
	ua := cases.Fold().String(userAgent)
	mobile := false
	for _, m := range mobileMarkers {
		if strings.Contains(ua, m) {
			mobile = true
			break
		}
	}
	return DeviceProfile{
		LowPower: mobile || (cores > 0 && cores <= lowPowerCoreLimit),
		Cores:    cores,
		Mobile:   mobile,
	}
}

// RenderScale is the fraction of the viewport resolution the CPU evaluator
// renders at before upscaling.
func (d DeviceProfile) RenderScale() float64 {
	if d.LowPower {
		return 0.5
	}
	return 1
}
