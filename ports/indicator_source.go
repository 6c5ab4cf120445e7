package ports

import (
	"goeval/domain/indicator"
)

// IndicatorSource supplies the normalized indicator table for one tier
// level. Implementations own caching; callers treat the returned slice as
// immutable and shared.
type IndicatorSource interface {
	Load(levelKey string) ([]indicator.Definition, error)
}
