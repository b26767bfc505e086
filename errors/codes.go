package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Codec errors
const (
	// ErrCodeSerialization indicates a value could not be encoded.
	ErrCodeSerialization ErrorCode = "SERIALIZATION_FAILED"
	// ErrCodeDeserialization indicates encoded text could not be decoded.
	// It is a refinement of ErrCodeSerialization.
	ErrCodeDeserialization ErrorCode = "DESERIALIZATION_FAILED"
)

// Composition errors
const (
	// ErrCodeProviderNotRegistered indicates a registry was resolved with no registrations.
	ErrCodeProviderNotRegistered ErrorCode = "PROVIDER_NOT_REGISTERED"
	// ErrCodeProviderConstruction indicates a registered type or factory failed to build a provider.
	ErrCodeProviderConstruction ErrorCode = "PROVIDER_CONSTRUCTION_FAILED"
	// ErrCodeInvalidConfig indicates the serialization configuration is invalid.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// parentCodes records the refinement hierarchy between codes.
var parentCodes = map[ErrorCode]ErrorCode{
	ErrCodeDeserialization: ErrCodeSerialization,
}

// Refines reports whether code equals ancestor or is a refinement of it.
func (code ErrorCode) Refines(ancestor ErrorCode) bool {
	for c := code; c != ""; c = parentCodes[c] {
		if c == ancestor {
			return true
		}
	}
	return false
}

var configurationCodes = map[ErrorCode]bool{
	ErrCodeProviderNotRegistered: true,
	ErrCodeProviderConstruction:  true,
	ErrCodeInvalidConfig:         true,
}

// IsConfigurationCode returns true if the code indicates a composition or
// configuration mistake rather than a runtime codec failure.
func IsConfigurationCode(code ErrorCode) bool {
	return configurationCodes[code]
}
