package serial

import "strings"

const (
	// FallbackStateCode is used when the shipping state is not in the
	// table. CatchAllState bypasses the lookup entirely.
	FallbackStateCode = "TN"
	CatchAllState     = "Others"

	// DefaultSeriesCode is returned outright when no shipping state is
	// available at all.
	DefaultSeriesCode = "TN01"

	// Catch-all orders alternate between these two series by their
	// ordinal position among all catch-all orders.
	catchAllSeriesOdd  = "TN01"
	catchAllSeriesEven = "KL01"
)

// stateCodes maps lowercased state names to RTO-style two-letter codes.
var stateCodes = map[string]string{
	"andhra pradesh":    "AP",
	"arunachal pradesh": "AR",
	"assam":             "AS",
	"bihar":             "BR",
	"chhattisgarh":      "CG",
	"delhi":             "DL",
	"goa":               "GA",
	"gujarat":           "GJ",
	"haryana":           "HR",
	"himachal pradesh":  "HP",
	"jammu and kashmir": "JK",
	"jharkhand":         "JH",
	"karnataka":         "KA",
	"kerala":            "KL",
	"madhya pradesh":    "MP",
	"maharashtra":       "MH",
	"manipur":           "MN",
	"meghalaya":         "ML",
	"mizoram":           "MZ",
	"nagaland":          "NL",
	"odisha":            "OD",
	"puducherry":        "PY",
	"punjab":            "PB",
	"rajasthan":         "RJ",
	"sikkim":            "SK",
	"tamil nadu":        "TN",
	"telangana":         "TS",
	"tripura":           "TR",
	"uttar pradesh":     "UP",
	"uttarakhand":       "UK",
	"west bengal":       "WB",
}

// districtCodes maps lowercased district names to two-digit codes, keyed
// by the resolved state code. Districts missing from the table fall back
// to a stable hash-derived code.
var districtCodes = map[string]map[string]string{
	"TN": {
		"chennai":         "01",
		"coimbatore":      "02",
		"madurai":         "03",
		"tiruchirappalli": "04",
		"salem":           "05",
		"tirunelveli":     "06",
		"erode":           "07",
		"vellore":         "08",
		"thanjavur":       "09",
		"thoothukudi":     "10",
	},
	"KL": {
		"thiruvananthapuram": "01",
		"ernakulam":          "02",
		"kozhikode":          "03",
		"thrissur":           "04",
		"kollam":             "05",
		"palakkad":           "06",
		"kannur":             "07",
		"alappuzha":          "08",
		"kottayam":           "09",
		"malappuram":         "10",
	},
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func stateCode(state string) string {
	if code, ok := stateCodes[normalizeName(state)]; ok {
		return code
	}
	return FallbackStateCode
}

func districtCode(state, district string) string {
	key := normalizeName(district)
	if key != "" {
		if code, ok := districtCodes[state][key]; ok {
			return code
		}
	}
	return hashDistrictCode(key)
}

// hashDistrictCode folds a multiply-and-add string hash into 01..99 so
// unknown districts still resolve deterministically within one build.
func hashDistrictCode(name string) string {
	var h uint32
	for _, r := range name {
		h = h*31 + uint32(r)
	}
	code := h%99 + 1
	return string([]byte{'0' + byte(code/10), '0' + byte(code%10)})
}
