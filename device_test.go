package metaball

import "testing"

func TestClassifyDevice(t *testing.T) {
	tests := []struct {
		name     string
		ua       string
		cores    int
		lowPower bool
		mobile   bool
	}{
		{"desktop", "Mozilla/5.0 (X11; Linux x86_64)", 16, false, false},
		{"android", "Mozilla/5.0 (Linux; Android 14; Pixel 8)", 8, true, true},
		{"iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", 6, true, true},
		{"ipad upper case", "MOZILLA/5.0 (IPAD; CPU OS 17_0)", 8, true, true},
		{"mobi marker", "Opera Mobi", 8, true, true},
		{"four cores", "", 4, true, false},
		{"five cores", "", 5, false, false},
		{"unknown cores", "", 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ClassifyDevice(tt.ua, tt.cores)
			if d.LowPower != tt.lowPower || d.Mobile != tt.mobile {
				t.Errorf("ClassifyDevice() = %+v, want lowPower=%v mobile=%v", d, tt.lowPower, tt.mobile)
			}
		})
	}
}

func TestDeviceProfileRenderScale(t *testing.T) {
	if got := (DeviceProfile{LowPower: true}).RenderScale(); got != 0.5 {
		t.Errorf("low-power RenderScale() = %v, want 0.5", got)
	}
	if got := (DeviceProfile{}).RenderScale(); got != 1 {
		t.Errorf("standard RenderScale() = %v, want 1", got)
	}
	if s := (DeviceProfile{LowPower: true}).String(); s != "low-power" {
		t.Errorf("String() = %q", s)
	}
}
