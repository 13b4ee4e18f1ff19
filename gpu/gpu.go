//go:build !nogpu

package gpu

import (
	"errors"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/metaball"
)

// registered is the evaluator installed by init, nil if registration failed.
var registered *Evaluator

func init() {
	e := &Evaluator{}
	if err := metaball.RegisterEvaluator(e); err != nil {
		metaball.Logger().Warn("metaball: GPU evaluator not available", "err", err)
		return
	}
	registered = e
}

// SetDeviceProvider switches the registered evaluator to a GPU device shared
// by the host application. The provider must also expose its HAL device and
// queue through HalDevice() any and HalQueue() any.
func SetDeviceProvider(provider gpucontext.DeviceProvider) error {
	if registered == nil {
		return errors.New("metaball/gpu: no GPU evaluator registered")
	}
	return registered.SetDeviceProvider(provider)
}
