package vk

import "strconv"

// Result is a native status code. Negative values are errors.
type Result int32

const (
	Success                    Result = 0
	NotReady                   Result = 1
	Incomplete                 Result = 5
	ErrorOutOfHostMemory       Result = -1
	ErrorOutOfDeviceMemory     Result = -2
	ErrorInitializationFailed  Result = -3
	ErrorDeviceLost            Result = -4
	ErrorLayerNotPresent       Result = -6
	ErrorExtensionNotPresent   Result = -7
	ErrorFeatureNotPresent     Result = -8
	ErrorIncompatibleDriver    Result = -9
	ErrorUnknown               Result = -13
	ErrorValidationFailed      Result = -1000011001
	ErrorOutOfPoolMemoryKHR    Result = -1000069000
	ErrorInvalidExternalHandle Result = -1000072003
)

var resultNames = map[Result]string{
	Success:                    "success",
	NotReady:                   "not ready",
	Incomplete:                 "incomplete",
	ErrorOutOfHostMemory:       "out of host memory",
	ErrorOutOfDeviceMemory:     "out of device memory",
	ErrorInitializationFailed:  "initialization failed",
	ErrorDeviceLost:            "device lost",
	ErrorLayerNotPresent:       "layer not present",
	ErrorExtensionNotPresent:   "extension not present",
	ErrorFeatureNotPresent:     "feature not present",
	ErrorIncompatibleDriver:    "incompatible driver",
	ErrorUnknown:               "unknown error",
	ErrorValidationFailed:      "validation failed",
	ErrorOutOfPoolMemoryKHR:    "out of pool memory",
	ErrorInvalidExternalHandle: "invalid external handle",
}

// Error makes Result usable as an error value.
func (r Result) Error() string {
	if name, ok := resultNames[r]; ok {
		return "vk: " + name
	}
	return "vk: result " + strconv.Itoa(int(r))
}

// Err returns nil for non-error codes and r otherwise.
func (r Result) Err() error {
	if r >= 0 {
		return nil
	}
	return r
}
