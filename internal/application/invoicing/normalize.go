package invoicing

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/globaltours/invoice-api/internal/application/dto"
	"github.com/globaltours/invoice-api/internal/domain/entity"
)

// Normalization: every legacy shape (string-only stops, journey_type without
// trip_type, negative numerics from misbehaving clients) is converted to the
// canonical form here, once, before any business logic runs. Nothing
// downstream branches on "which legacy shape is this".

var (
	nonDigits    = regexp.MustCompile(`\D`)
	nonFileChars = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespace   = regexp.MustCompile(`\s`)
	nonAlphaNum  = regexp.MustCompile(`[^A-Z0-9]`)
)

// NormalizeStops converts form stops to entity stops: blank locations are
// dropped, legacy entries get a fresh stable ID, and ordering is preserved.
func NormalizeStops(in []dto.StopDTO) []entity.Stop {
	var out []entity.Stop
	for _, s := range in {
		loc := strings.TrimSpace(s.Location)
		if loc == "" {
			continue
		}
		id := s.ID
		if id == "" {
			id = uuid.New().String()
		}
		out = append(out, entity.Stop{
			ID:       id,
			Location: loc,
			City:     strings.TrimSpace(s.City),
		})
	}
	return out
}

// NormalizeCharges clamps negatives to zero and drops zero-amount lines, so
// the persisted record never carries blank charges.
func NormalizeCharges(in []dto.ChargeDTO) []entity.AdditionalCharge {
	var out []entity.AdditionalCharge
	for _, c := range in {
		amount := ClampMoney(c.Amount)
		if amount.IsZero() {
			continue
		}
		chargeType := strings.TrimSpace(c.Type)
		if chargeType == "" {
			chargeType = "Other"
		}
		out = append(out, entity.AdditionalCharge{Type: chargeType, Amount: amount})
	}
	return out
}

// ClampMoney normalizes a monetary input: negatives become zero. The fare
// calculator is total and never sees malformed amounts.
func ClampMoney(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ClampFloat same rule for non-monetary numerics (km, hours).
func ClampFloat(f float64) float64 {
	if f < 0 || f != f { // f != f catches NaN
		return 0
	}
	return f
}

// NormalizePhone strips non-digits and keeps the first 10, matching the
// form's input mask. Returns "" when fewer than 10 digits remain.
func NormalizePhone(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	if len(digits) < 10 {
		return ""
	}
	return digits[:10]
}

// PhoneForMessaging converts a stored number into an international WhatsApp
// target: a bare 10-digit number gets the country code prefixed, anything
// longer is assumed to already carry one.
func PhoneForMessaging(raw, countryCode string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	if len(digits) == 10 {
		return countryCode + digits
	}
	return digits
}

// FormatCabNumber formats a vehicle registration as "AA 00 AA 0000",
// uppercasing and regrouping whatever the user typed.
func FormatCabNumber(raw string) string {
	clean := nonAlphaNum.ReplaceAllString(strings.ToUpper(raw), "")
	if clean == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range clean {
		if i == 2 || i == 4 || i == 6 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	s := b.String()
	if len(s) > 13 {
		s = s[:13]
	}
	return s
}

// TripTypeFor resolves the canonical trip type: explicit trip_type wins,
// otherwise the legacy journey_type is mapped (one-way -> oneway,
// two-way -> roundtrip), defaulting to one way.
func TripTypeFor(tripType, journeyType string) string {
	switch tripType {
	case entity.TripOneWay, entity.TripRoundTrip, entity.TripLocal:
		return tripType
	}
	if journeyType == entity.JourneyTwoWay {
		return entity.TripRoundTrip
	}
	return entity.TripOneWay
}

// JourneyTypeFor derives the legacy journey_type written alongside trip_type
// so pre-migration readers keep working.
func JourneyTypeFor(tripType string) string {
	if tripType == entity.TripRoundTrip {
		return entity.JourneyTwoWay
	}
	return entity.JourneyOneWay
}

// SanitizeFilename builds the PDF filename stem from a customer name:
// non-alphanumeric characters (other than whitespace) are stripped, each
// whitespace character becomes an underscore, capped at 30 characters.
// "Rohit @ Kumar!!" -> "Rohit__Kumar".
func SanitizeFilename(customerName string) string {
	s := nonFileChars.ReplaceAllString(customerName, "")
	s = whitespace.ReplaceAllString(s, "_")
	if len(s) > 30 {
		s = s[:30]
	}
	return s
}

// FormatINR renders an amount with Indian digit grouping (12,34,567) for the
// share message. Fractions are dropped: fares are whole-rupee figures.
func FormatINR(d decimal.Decimal) string {
	s := d.Round(0).String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if len(s) > 3 {
		head := s[:len(s)-3]
		tail := s[len(s)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = strings.Join(groups, ",") + "," + tail
	}
	if neg {
		s = "-" + s
	}
	return s
}
