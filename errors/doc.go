// Package errors defines the failure taxonomy shared by every serialization
// provider.
//
// All failures are *AppError values carrying an ErrorCode. Two codes form a
// narrow hierarchy: DESERIALIZATION_FAILED refines SERIALIZATION_FAILED, so
// callers may match broadly or narrowly with the standard library:
//
//	if errors.Is(err, serrors.ErrDeserialization) { ... } // decode only
//	if errors.Is(err, serrors.ErrSerialization) { ... }   // encode or decode
//
// The backend's native error is kept as Cause and stays reachable through
// errors.As / errors.Unwrap.
package errors
