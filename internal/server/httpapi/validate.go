package httpapi

import "github.com/swivl/traveldiary/internal/common"

// requireFields is the presence gate applied to POST/PUT bodies before any
// persistence call. It checks presence only, never type, format or length.
func requireFields(values ...string) error {
	for _, v := range values {
		if v == "" {
			return common.ErrValidation
		}
	}
	return nil
}
