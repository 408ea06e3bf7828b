package validation

import (
	"net/url"
	"regexp"

	"github.com/Oudwins/zog"
)

var numericIDRegex = regexp.MustCompile(`^\d+$`)

// isNumericIDPtr checks if a string pointer is a site-assigned numeric id
func isNumericIDPtr(val *string, ctx zog.Ctx) bool {
	if val == nil {
		return false
	}
	return numericIDRegex.MatchString(*val)
}

// isValidURLPtr checks if a string pointer is a valid URL
func isValidURLPtr(val *string, ctx zog.Ctx) bool {
	if val == nil {
		return false
	}
	if *val == "" {
		return false
	}
	_, err := url.Parse(*val)
	return err == nil
}

// EffectDetailSchema validates an extracted EffectDetail before it is
// cached: a record with no name or a non-numeric id would poison future
// cache lookups keyed on them.
var EffectDetailSchema = zog.Struct(zog.Schema{
	"Name":     zog.String().Required().Min(1, zog.Message("name must be a non-empty string")),
	"ID":       zog.String().Required().TestFunc(isNumericIDPtr, zog.Message("id must be a numeric site identifier")),
	"URL":      zog.String().Required().TestFunc(isValidURLPtr, zog.Message("url must be a valid URL")),
	"Effects":  zog.Slice(zog.String()).Required(),
	"CastTime": zog.String().Optional(),
	"Charges":  zog.String().Optional(),
})
