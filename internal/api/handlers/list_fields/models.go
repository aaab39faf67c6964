package list_fields

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/areninha/booking-service/internal/domain"
)

// ToDomainFilter собирает фильтр из query параметров
// location, minPrice, maxPrice, type, amenities (через запятую)
func ToDomainFilter(q url.Values) (domain.FieldFilter, error) {
	filter := domain.FieldFilter{
		Location: strings.TrimSpace(q.Get("location")),
	}

	var err error
	if filter.MinPrice, err = parsePrice(q, "minPrice"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = parsePrice(q, "maxPrice"); err != nil {
		return filter, err
	}

	if t := strings.TrimSpace(q.Get("type")); t != "" {
		fieldType := domain.FieldType(strings.ToUpper(t))
		filter.Type = &fieldType
	}

	for _, raw := range q["amenities"] {
		for _, a := range strings.Split(raw, ",") {
			if a = strings.TrimSpace(a); a != "" {
				filter.Amenities = append(filter.Amenities, a)
			}
		}
	}

	return filter, nil
}

func parsePrice(q url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%s: must be a finite number", key)
	}
	return &v, nil
}
