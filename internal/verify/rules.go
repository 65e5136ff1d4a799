package verify

// Rule tables for the verifier. Kept as data so extending an allow-list
// never touches the evaluation logic.

// corporateDomains is the allow-list of known corporate email domains.
var corporateDomains = map[string]string{
	"gtbank.com":           "GTBank",
	"accessbankplc.com":    "Access Bank",
	"zenithbank.com":       "Zenith Bank",
	"ubagroup.com":         "UBA",
	"dangote.com":          "Dangote Group",
	"mtn.com":              "MTN Nigeria",
	"mtnnigeria.net":       "MTN Nigeria",
	"airtel.com":           "Airtel Nigeria",
	"flutterwave.com":      "Flutterwave",
	"paystack.com":         "Paystack",
	"interswitchgroup.com": "Interswitch",
	"andela.com":           "Andela",
	"kpmg.com":             "KPMG",
	"pwc.com":              "PwC",
	"deloitte.com":         "Deloitte",
	"shell.com":            "Shell",
	"chevron.com":          "Chevron",
	"nnpcgroup.com":        "NNPC",
	"nestle.com":           "Nestle",
	"unilever.com":         "Unilever",
}

// institutionSuffix marks the national academic namespace.
const institutionSuffix = ".edu.ng"

// verifiedInstitutions is the allow-list of known academic domains. A
// detected institution outside this list still surfaces as a suggestion, but
// with IsVerified false.
var verifiedInstitutions = map[string]string{
	"pau.edu.ng":                "Pan-Atlantic University",
	"unilag.edu.ng":             "University of Lagos",
	"ui.edu.ng":                 "University of Ibadan",
	"unn.edu.ng":                "University of Nigeria Nsukka",
	"oauife.edu.ng":             "Obafemi Awolowo University",
	"abu.edu.ng":                "Ahmadu Bello University",
	"covenantuniversity.edu.ng": "Covenant University",
	"lasu.edu.ng":               "Lagos State University",
}

// freeMailDomains never qualify as organizational namespaces.
var freeMailDomains = map[string]bool{
	"gmail.com":      true,
	"yahoo.com":      true,
	"outlook.com":    true,
	"hotmail.com":    true,
	"icloud.com":     true,
	"live.com":       true,
	"aol.com":        true,
	"protonmail.com": true,
	"proton.me":      true,
	"yandex.com":     true,
	"zoho.com":       true,
}

// platformHost binds a professional-platform host to its display name.
// Ordered so matching is deterministic.
type platformHost struct {
	host string
	name string
}

var platformHosts = []platformHost{
	{"linkedin.com", "LinkedIn"},
	{"upwork.com", "Upwork"},
	{"fiverr.com", "Fiverr"},
	{"toptal.com", "Toptal"},
	{"freelancer.com", "Freelancer"},
	{"github.com", "GitHub"},
	{"behance.net", "Behance"},
	{"dribbble.com", "Dribbble"},
}

// AcceptedPlatforms lists the recognized platform names for user guidance.
func AcceptedPlatforms() []string {
	names := make([]string, len(platformHosts))
	for i, p := range platformHosts {
		names[i] = p.name
	}
	return names
}
