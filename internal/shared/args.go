package shared

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidArgument = errors.New("invalid argument")

// ParseHotelIDs turns "a,b" into its id list. "none" (any case) or a blank argument means no filter.
func ParseHotelIDs(arg string) []string {
	if isNone(arg) {
		return nil
	}
	var out []string
	for _, p := range strings.Split(arg, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseDestinationIDs is ParseHotelIDs for integer destination ids.
func ParseDestinationIDs(arg string) ([]int, error) {
	if isNone(arg) {
		return nil, nil
	}
	var out []int
	for _, p := range strings.Split(arg, ",") {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("destination id %q: %w", p, ErrInvalidArgument)
		}
		out = append(out, n)
	}
	return out, nil
}

func isNone(arg string) bool {
	arg = strings.TrimSpace(arg)
	return arg == "" || strings.EqualFold(arg, "none")
}
