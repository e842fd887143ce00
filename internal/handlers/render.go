package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/Williamwenda/FoodSlotMachine/internal/models"
)

// TemplateFuncs are the helpers the slot machine templates use.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"stars":   renderStars,
		"percent": formatPercent,
		"dict":    dict,
	}
}

// renderStars draws five stars: full ones for the whole part of the rating,
// a half star for any fraction, empty ones for the rest.
func renderStars(rating models.Rating) template.HTML {
	r := float64(rating)
	full := int(math.Floor(r))
	half := r != math.Floor(r)

	var b strings.Builder
	for i := 0; i < 5; i++ {
		switch {
		case i < full:
			b.WriteString(`<span class="star">★</span>`)
		case i == full && half:
			b.WriteString(`<span class="star">⯨</span>`)
		default:
			b.WriteString(`<span class="star empty">★</span>`)
		}
	}
	return template.HTML(b.String())
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p*100)
}

func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
