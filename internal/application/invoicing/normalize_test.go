package invoicing

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globaltours/invoice-api/internal/application/dto"
	"github.com/globaltours/invoice-api/internal/domain/entity"
)

// ── stops ──

func TestNormalizeStops_DropsBlankLocations(t *testing.T) {
	in := []dto.StopDTO{
		{Location: "", City: "Khandala"},
		{Location: "Lonavala", City: ""},
	}

	out := NormalizeStops(in)

	require.Len(t, out, 1)
	assert.Equal(t, "Lonavala", out[0].Location)
	assert.NotEmpty(t, out[0].ID, "legacy stop should receive a generated ID")
}

func TestNormalizeStops_PreservesOrderAndIDs(t *testing.T) {
	in := []dto.StopDTO{
		{ID: "a", Location: "Satara"},
		{ID: "b", Location: "Kolhapur", City: "Kolhapur"},
	}

	out := NormalizeStops(in)

	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
	assert.Equal(t, "Kolhapur", out[1].City)
}

func TestStopDTO_UnmarshalLegacyString(t *testing.T) {
	var stops []dto.StopDTO
	err := json.Unmarshal([]byte(`["Lonavala", {"id":"x","location":"Satara","city":"Satara"}]`), &stops)

	require.NoError(t, err)
	require.Len(t, stops, 2)
	assert.Equal(t, "Lonavala", stops[0].Location)
	assert.Empty(t, stops[0].ID)
	assert.Equal(t, "x", stops[1].ID)
}

// ── charges ──

func TestNormalizeCharges_DropsZeroAmounts(t *testing.T) {
	in := []dto.ChargeDTO{
		{Type: "Toll", Amount: decimal.Zero},
		{Type: "Parking", Amount: decimal.NewFromInt(150)},
	}

	out := NormalizeCharges(in)

	require.Len(t, out, 1)
	assert.Equal(t, "Parking", out[0].Type)
	assert.True(t, out[0].Amount.Equal(decimal.NewFromInt(150)))
}

func TestNormalizeCharges_ClampsNegativesThenDrops(t *testing.T) {
	in := []dto.ChargeDTO{{Type: "Toll", Amount: decimal.NewFromInt(-80)}}

	assert.Empty(t, NormalizeCharges(in))
}

func TestNormalizeCharges_BlankTypeBecomesOther(t *testing.T) {
	out := NormalizeCharges([]dto.ChargeDTO{{Type: "  ", Amount: decimal.NewFromInt(50)}})

	require.Len(t, out, 1)
	assert.Equal(t, "Other", out[0].Type)
}

// ── numerics ──

func TestClampMoney(t *testing.T) {
	assert.True(t, ClampMoney(decimal.NewFromInt(-5)).IsZero())
	assert.True(t, ClampMoney(decimal.NewFromInt(5)).Equal(decimal.NewFromInt(5)))
}

func TestClampFloat(t *testing.T) {
	assert.Equal(t, 0.0, ClampFloat(-1.5))
	assert.Equal(t, 0.0, ClampFloat(math.NaN()))
	assert.Equal(t, 42.5, ClampFloat(42.5))
}

// ── phones ──

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "9876543210", NormalizePhone("98765 43210"))
	assert.Equal(t, "9876543210", NormalizePhone("98765-43210"))
	assert.Equal(t, "", NormalizePhone("12345"))
}

func TestNormalizePhone_KeepsFirstTenDigits(t *testing.T) {
	assert.Equal(t, "9198765432", NormalizePhone("919876543210"))
}

func TestPhoneForMessaging(t *testing.T) {
	assert.Equal(t, "919876543210", PhoneForMessaging("9876543210", "91"))
	assert.Equal(t, "919876543210", PhoneForMessaging("919876543210", "91"), "already-prefixed number left alone")
	assert.Equal(t, "98765", PhoneForMessaging("98765", "91"), "short numbers passed through as-is")
}

// ── cab numbers ──

func TestFormatCabNumber(t *testing.T) {
	assert.Equal(t, "MH 12 AB 1234", FormatCabNumber("mh12ab1234"))
	assert.Equal(t, "MH 12 AB 1234", FormatCabNumber("MH-12 ab 1234"))
	assert.Equal(t, "MH 12", FormatCabNumber("mh12"))
	assert.Equal(t, "", FormatCabNumber("  "))
}

// ── trip types ──

func TestTripTypeFor(t *testing.T) {
	assert.Equal(t, entity.TripLocal, TripTypeFor("local", ""))
	assert.Equal(t, entity.TripRoundTrip, TripTypeFor("", entity.JourneyTwoWay))
	assert.Equal(t, entity.TripOneWay, TripTypeFor("", entity.JourneyOneWay))
	assert.Equal(t, entity.TripOneWay, TripTypeFor("", ""), "defaults to one way")
	assert.Equal(t, entity.TripOneWay, TripTypeFor("bogus", entity.JourneyOneWay))
}

func TestJourneyTypeFor(t *testing.T) {
	assert.Equal(t, entity.JourneyTwoWay, JourneyTypeFor(entity.TripRoundTrip))
	assert.Equal(t, entity.JourneyOneWay, JourneyTypeFor(entity.TripOneWay))
	assert.Equal(t, entity.JourneyOneWay, JourneyTypeFor(entity.TripLocal))
}

// ── filenames ──

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "Rohit__Kumar", SanitizeFilename("Rohit @ Kumar!!"))
	assert.Equal(t, "Asha_Patil", SanitizeFilename("Asha Patil"))
	assert.Equal(t, "", SanitizeFilename("@#$!"))
}

func TestSanitizeFilename_CapsLength(t *testing.T) {
	long := "abcdefghijklmnopqrstuvwxyzabcdefghij"
	assert.Len(t, SanitizeFilename(long), 30)
}

// ── currency ──

func TestFormatINR(t *testing.T) {
	cases := map[string]string{
		"0":        "0",
		"950":      "950",
		"3000":     "3,000",
		"45000":    "45,000",
		"1234567":  "12,34,567",
		"12345678": "1,23,45,678",
	}
	for in, want := range cases {
		d, err := decimal.NewFromString(in)
		require.NoError(t, err)
		assert.Equal(t, want, FormatINR(d), "input %s", in)
	}
}

func TestFormatINR_RoundsFractions(t *testing.T) {
	d, _ := decimal.NewFromString("2999.60")
	assert.Equal(t, "3,000", FormatINR(d))
}
