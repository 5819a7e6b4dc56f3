// Package service implements the core budget operations: the category
// registry, the transaction ledger, the semester aggregate manager and the
// reimbursement tracker. Handlers pass in parsed JSON bodies as field maps;
// every operation validates before touching the store and returns kinded
// errors from the apperr package.
package service

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/KamiCYun/FDS-DASHBOARD-API/internal/apperr"
)

// requireFields fails on the first field absent from body, in the given
// order. Presence is what counts; a null value passes.
func requireFields(body map[string]interface{}, names ...string) error {
	for _, name := range names {
		if _, ok := body[name]; !ok {
			return apperr.Validationf("'%s' is required.", name)
		}
	}
	return nil
}

// toFloat coerces a JSON value to float64. Numeric strings are accepted.
func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to float", v)
	}
}

// toInt coerces a JSON value to int, truncating fractional numbers.
func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, err
		}
		return int(f), nil
	case string:
		return strconv.Atoi(n)
	default:
		return 0, fmt.Errorf("cannot convert %T to int", v)
	}
}

// toString requires a JSON string value.
func toString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("cannot convert %T to string", v)
	}
	return s, nil
}
